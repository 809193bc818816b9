package db

import (
	"database/sql"
	"fmt"
	"log"
	"net/url"

	"account-service/internal/config"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

func buildDSN(cfg *config.Config) string {
	if cfg.DBDriver == config.DriverPostgres {
		return fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
		)
	}

	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	return "file:" + cfg.DBPath + "?" + q.Encode()
}

// NewDatabase opens and pings the store selected by cfg.DBDriver.
func NewDatabase(cfg *config.Config) (*sql.DB, error) {
	return newDatabaseWithDriver(cfg, cfg.DBDriver)
}

func newDatabaseWithDriver(cfg *config.Config, driverName string) (*sql.DB, error) {
	db, err := sql.Open(driverName, buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	// SQLite allows a single writer; one connection serializes
	// transactions instead of surfacing SQLITE_BUSY.
	if cfg.DBDriver == config.DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	return db, nil
}

func InitDB(cfg *config.Config) *sql.DB {
	db, err := NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize DB: %v", err)
	}
	log.Println("Database connection established")
	return db
}
