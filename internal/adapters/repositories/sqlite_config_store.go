package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"berth-planner-service/internal/domain"
)

// SQLite-backed implementation of the ConfigStore port. The configuration is
// a single JSON document held in one row.
type SqliteConfigStore struct{ DB *sql.DB }

func NewSqliteConfigStore(db *sql.DB) *SqliteConfigStore {
	return &SqliteConfigStore{DB: db}
}

// Load the active problem configuration.
func (s *SqliteConfigStore) Load(ctx context.Context) (domain.ProblemConfig, error) {
	var cfg domain.ProblemConfig
	if s.DB == nil {
		return cfg, errors.New("sqlite config store: DB is nil")
	}

	query := `
	SELECT document
	FROM problem_config
	WHERE id = 1;
	`
	var document string
	err := s.DB.QueryRowContext(ctx, query).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return cfg, errors.New("load config: no configuration stored")
	}
	if err != nil {
		return cfg, fmt.Errorf("load config: query problem_config: %w", err)
	}

	if err := json.Unmarshal([]byte(document), &cfg); err != nil {
		return cfg, fmt.Errorf("load config: parse document: %w", err)
	}

	return cfg, nil
}

// Save replaces the active problem configuration.
func (s *SqliteConfigStore) Save(ctx context.Context, cfg domain.ProblemConfig) error {
	if s.DB == nil {
		return errors.New("sqlite config store: DB is nil")
	}

	document, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("save config: encode document: %w", err)
	}

	query := `
	INSERT INTO problem_config (id, document, updated_at)
	VALUES (1, ?, datetime('now'))
	ON CONFLICT(id) DO UPDATE SET
		document = excluded.document,
		updated_at = excluded.updated_at;
	`
	if _, err := s.DB.ExecContext(ctx, query, string(document)); err != nil {
		return fmt.Errorf("save config: upsert: %w", err)
	}

	return nil
}
