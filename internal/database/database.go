// Package database opens the relational store shared by the auth and task
// modules.
package database

import (
	"fmt"
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config selects the driver and data source.
type Config struct {
	Driver string
	DSN    string
	Debug  bool
}

// DefaultConfig returns a SQLite file in the working directory.
func DefaultConfig() Config {
	return Config{
		Driver: DriverSQLite,
		DSN:    "tasks.db",
	}
}

// LoadConfig reads DATABASE_DRIVER, DATABASE_DSN and DB_DEBUG.
func LoadConfig() Config {
	config := DefaultConfig()

	if driver := os.Getenv("DATABASE_DRIVER"); driver != "" {
		config.Driver = strings.ToLower(driver)
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		config.DSN = dsn
	}
	config.Debug = os.Getenv("DB_DEBUG") == "true"

	return config
}

// Dialector returns the GORM dialector for the configured driver.
func (c Config) Dialector() (gorm.Dialector, error) {
	switch c.Driver {
	case DriverSQLite, "":
		return sqlite.Open(sqliteDSN(c.DSN)), nil
	case DriverPostgres:
		return postgres.Open(c.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}

// Open connects to the database.
func Open(config Config) (*gorm.DB, error) {
	dialector, err := config.Dialector()
	if err != nil {
		return nil, err
	}

	logLevel := logger.Silent
	if config.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// sqliteDSN turns on foreign keys and a busy timeout for file databases,
// since two modules share the same file.
func sqliteDSN(dsn string) string {
	if dsn == ":memory:" || strings.Contains(dsn, "?") {
		return dsn
	}
	return dsn + "?_foreign_keys=on&_busy_timeout=5000"
}
