package appliances

import (
	"database/sql"
)

type appliancesRepo struct{ db *sql.DB }

func New(db *sql.DB) *appliancesRepo {
	return &appliancesRepo{db: db}
}
