package main

import (
	"time"

	"github.com/wattmarket/wattmarket/internal/config"
)

type apiConfig struct {
	Port            uint16        `env:"APP_PORT,default=8080"`
	LogLevel        string        `env:"APP_LOG_LEVEL,default=info"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT,default=10s"`

	Ledger   config.LedgerConfig
	Postgres config.PostgresConfig
}
