package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Open connects to the shared Postgres instance holding the problem
// configuration and verifies the connection before returning. The pool is
// sized for the dbtool's short bursts of schema and seed statements.
func Open(databaseURL string) (*sql.DB, error) {
	conn, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("db: open postgres: %w", err)
	}

	conn.SetMaxOpenConns(4)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(30 * time.Minute)

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("db: verify postgres connection: %w", err)
	}

	return conn, nil
}
