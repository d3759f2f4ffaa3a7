package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"berth-planner-service/internal/config"
	"berth-planner-service/internal/domain"
	"berth-planner-service/internal/platform/db"
)

// dbtool provisions a shared Postgres instance with the problem_config table
// and the default problem document. The server itself runs on SQLite; this
// tool exists for deployments that point DB at Postgres instead.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/problem_config.json")
	if err := initAndSeed(conn, seedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(conn *sql.DB, seedPath string) error {
	log.Println("Initializing database schema...")
	createConfigQuery := `
	CREATE TABLE IF NOT EXISTS problem_config (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		document JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`
	if _, err := conn.Exec(createConfigQuery); err != nil {
		return fmt.Errorf("init schema: create problem_config: %w", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding database...")
	bytes, err := os.ReadFile(seedPath)
	if err != nil {
		return fmt.Errorf("seed config: read %q: %w", seedPath, err)
	}

	var cfg domain.ProblemConfig
	if err := json.Unmarshal(bytes, &cfg); err != nil {
		return fmt.Errorf("seed config: parse json: %w", err)
	}

	document, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("seed config: encode document: %w", err)
	}

	insertQuery := `
	INSERT INTO problem_config (id, document)
	VALUES (1, $1)
	ON CONFLICT (id) DO NOTHING;
	`
	if _, err := conn.Exec(insertQuery, string(document)); err != nil {
		return fmt.Errorf("seed config: insert: %w", err)
	}
	log.Println("Seeding complete.")

	return nil
}
