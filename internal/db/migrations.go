package db

import (
	"database/sql"
	"fmt"
)

// Conversions are append-only; ids are Snowflake IDs (no AUTOINCREMENT).
// The statements stay within the SQL subset shared by SQLite and PostgreSQL.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS conversions (
  id BIGINT PRIMARY KEY,
  source_type TEXT NOT NULL,
  source TEXT NOT NULL,
  output_types TEXT NOT NULL,
  social_platforms TEXT NOT NULL,
  tone TEXT NOT NULL,
  canonical_url TEXT NOT NULL,
  title TEXT,
  author TEXT,
  word_count INTEGER,
  excerpt TEXT,
  raw_content TEXT NOT NULL,
  outputs TEXT NOT NULL,
  provider TEXT NOT NULL,
  model TEXT NOT NULL,
  created_at TEXT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_conversions_created_at ON conversions(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_conversions_canonical_url ON conversions(canonical_url)`,
}

func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
