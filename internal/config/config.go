// Package config holds env-tagged configuration structs shared between the
// api and migrator binaries. Structs are loaded with envdecode; a local .env
// file is applied first via godotenv when present.
package config

import (
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

type PostgresConfig struct {
	DSN             string        `env:"PG_DSN,required"`
	MaxOpenConns    int           `env:"PG_MAX_OPEN_CONNS,default=10"`
	MaxIdleConns    int           `env:"PG_MAX_IDLE_CONNS,default=5"`
	ConnMaxIdleTime time.Duration `env:"PG_CONN_MAX_IDLE_TIME,default=5m"`
	ConnMaxLifetime time.Duration `env:"PG_CONN_MAX_LIFETIME,default=30m"`
}

// LedgerConfig carries the reserved-account identity. The bank account is
// the counterparty for every trade and the only identity allowed to mint.
type LedgerConfig struct {
	BankAccountID string `env:"BANK_ACCOUNT_ID,default=bank"`
}

// Load fills dst from the environment. A .env file in the working directory
// is read first if one exists; real environment variables win.
func Load(dst any) error {
	// Missing .env is the normal production case.
	_ = godotenv.Load()

	err := envdecode.StrictDecode(dst)
	if err != nil {
		return fmt.Errorf("decode env: %w", err)
	}

	return nil
}
