// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tender-workers/internal/common/config"
	"tender-workers/internal/common/errors"

	_ "github.com/lib/pq"
)

// PostgresClient wraps the SQL database connection
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres creates a new PostgreSQL client
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

// Ping tests the database connection
func (c *PostgresClient) Ping(ctx context.Context) error {
	if err := c.DB.PingContext(ctx); err != nil {
		return errors.NewDatabaseConnectionFailedError(err)
	}
	return nil
}

// Close closes the database connection
func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// schemaStatements create the tender tables when they do not exist yet.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS company_policies (
		id                     TEXT PRIMARY KEY,
		turnover_ceiling_lakhs TEXT NOT NULL,
		project_types          JSONB NOT NULL DEFAULT '[]',
		updated_at             TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS negative_keywords (
		id          SERIAL PRIMARY KEY,
		keyword     TEXT NOT NULL UNIQUE,
		description TEXT,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS tenders (
		id                      TEXT PRIMARY KEY,
		external_id             TEXT NOT NULL,
		title                   TEXT NOT NULL DEFAULT '',
		department              TEXT,
		organization            TEXT,
		estimated_value         TEXT,
		emd                     TEXT,
		turnover_requirement    TEXT,
		submission_deadline     TIMESTAMPTZ,
		opening_date            TIMESTAMPTZ,
		eligibility_criteria    TEXT,
		checklist               TEXT,
		similar_category        TEXT,
		excel_msme_exemption    BOOLEAN NOT NULL DEFAULT false,
		excel_startup_exemption BOOLEAN NOT NULL DEFAULT false,
		match_percentage        INTEGER,
		eligibility_status      TEXT,
		analysis_status         TEXT,
		analysis                JSONB,
		analyzed_at             TIMESTAMPTZ,
		created_at              TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS tenders_external_id_idx ON tenders (external_id, created_at DESC)`,
}

// EnsureSchema creates the tender tables and indexes.
func (c *PostgresClient) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := c.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
