package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported cache drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open connects to the cache database and verifies the connection.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	name := normalizeDriver(driver)
	if name == "" {
		return nil, fmt.Errorf("unsupported cache driver %q", driver)
	}
	driver = name
	if dsn == "" {
		return nil, fmt.Errorf("cache dsn is empty")
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// sqlite allows a single writer; in-memory databases are per connection.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}

func normalizeDriver(driver string) string {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite", "sqlite3":
		return DriverSQLite
	case "postgres", "postgresql", "pq":
		return DriverPostgres
	default:
		return ""
	}
}
