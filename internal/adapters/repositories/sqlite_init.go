package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"berth-planner-service/internal/domain"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	createConfigQuery := `
	CREATE TABLE IF NOT EXISTS problem_config (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		document TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT (datetime('now'))
	);
	`

	if _, err := db.Exec(createConfigQuery); err != nil {
		return fmt.Errorf("init schema: create problem_config: %w", err)
	}

	return nil
}

// Populate the database with the default problem configuration from a JSON
// file. An already-seeded database is left untouched.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM problem_config;`).Scan(&count); err != nil {
		return fmt.Errorf("seed config: count rows: %w", err)
	}
	if count > 0 {
		return nil
	}

	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed config: read %q: %w", jsonPath, err)
	}

	var cfg domain.ProblemConfig
	if err := json.Unmarshal(bytes, &cfg); err != nil {
		return fmt.Errorf("seed config: parse json: %w", err)
	}
	if cfg.Berth.Length <= 0 {
		return fmt.Errorf("seed config: invalid berth length: %d", cfg.Berth.Length)
	}
	if len(cfg.Vessels) == 0 {
		return errors.New("seed config: no vessels in seed document")
	}

	document, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("seed config: encode document: %w", err)
	}

	insertQuery := `
	INSERT INTO problem_config (id, document)
	VALUES (1, ?);
	`
	if _, err := db.Exec(insertQuery, string(document)); err != nil {
		return fmt.Errorf("seed config: insert: %w", err)
	}

	return nil
}
