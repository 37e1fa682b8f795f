package usage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/genum-ai/genum/internal/provider"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id                TEXT PRIMARY KEY,
	vendor            TEXT NOT NULL,
	model             TEXT NOT NULL,
	prompt_tokens     INTEGER NOT NULL DEFAULT 0,
	completion_tokens INTEGER NOT NULL DEFAULT 0,
	total_tokens      INTEGER NOT NULL DEFAULT 0,
	prompt_cost       REAL NOT NULL DEFAULT 0,
	completion_cost   REAL NOT NULL DEFAULT 0,
	total_cost        REAL NOT NULL DEFAULT 0,
	response_time_ms  INTEGER NOT NULL DEFAULT 0,
	status            TEXT NOT NULL DEFAULT '',
	schema_valid      INTEGER,
	error             TEXT NOT NULL DEFAULT '',
	created_at        TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_vendor_model ON runs (vendor, model);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs (created_at);
`

// timeLayout is fixed width so text comparison orders timestamps
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteStore keeps records in a SQLite database
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens the database at path and migrates it
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open usage database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate usage database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save inserts a record
func (s *SQLiteStore) Save(ctx context.Context, r Record) error {
	var schemaValid sql.NullBool
	if r.SchemaValid != nil {
		schemaValid = sql.NullBool{Bool: *r.SchemaValid, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, vendor, model, prompt_tokens, completion_tokens, total_tokens,
			prompt_cost, completion_cost, total_cost, response_time_ms, status, schema_valid, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID.String(), string(r.Vendor), r.Model,
		r.Tokens.Prompt, r.Tokens.Completion, r.Tokens.Total,
		r.Cost.Prompt, r.Cost.Completion, r.Cost.Total,
		r.ResponseTimeMs, r.Status, schemaValid, r.Error,
		r.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to save usage record: %w", err)
	}
	return nil
}

func where(f Filter) (string, []any) {
	var clauses []string
	var args []any
	if f.Vendor != "" {
		clauses = append(clauses, "vendor = ?")
		args = append(args, string(f.Vendor))
	}
	if f.Model != "" {
		clauses = append(clauses, "model = ?")
		args = append(args, f.Model)
	}
	if !f.Since.IsZero() {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, f.Since.UTC().Format(timeLayout))
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// List returns matching records, newest first
func (s *SQLiteStore) List(ctx context.Context, f Filter) ([]Record, error) {
	cond, args := where(f)
	query := `SELECT id, vendor, model, prompt_tokens, completion_tokens, total_tokens,
		prompt_cost, completion_cost, total_cost, response_time_ms, status, schema_valid, error, created_at
		FROM runs` + cond + ` ORDER BY created_at DESC`
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list usage records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			r           Record
			id, vendor  string
			createdAt   string
			schemaValid sql.NullBool
		)
		if err := rows.Scan(&id, &vendor, &r.Model,
			&r.Tokens.Prompt, &r.Tokens.Completion, &r.Tokens.Total,
			&r.Cost.Prompt, &r.Cost.Completion, &r.Cost.Total,
			&r.ResponseTimeMs, &r.Status, &schemaValid, &r.Error, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan usage record: %w", err)
		}

		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid run id %q: %w", id, err)
		}
		if r.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
		}
		r.Vendor = provider.Vendor(vendor)
		if schemaValid.Valid {
			v := schemaValid.Bool
			r.SchemaValid = &v
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Summary aggregates matching records per vendor and model
func (s *SQLiteStore) Summary(ctx context.Context, f Filter) ([]SummaryRow, error) {
	cond, args := where(f)
	rows, err := s.db.QueryContext(ctx, `
		SELECT vendor, model, COUNT(*),
			SUM(CASE WHEN error != '' THEN 1 ELSE 0 END),
			SUM(prompt_tokens), SUM(completion_tokens), SUM(total_tokens),
			SUM(prompt_cost), SUM(completion_cost), SUM(total_cost)
		FROM runs`+cond+`
		GROUP BY vendor, model
		ORDER BY vendor, model`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize usage: %w", err)
	}
	defer rows.Close()

	var out []SummaryRow
	for rows.Next() {
		var (
			row    SummaryRow
			vendor string
		)
		if err := rows.Scan(&vendor, &row.Model, &row.Runs, &row.Failures,
			&row.Tokens.Prompt, &row.Tokens.Completion, &row.Tokens.Total,
			&row.Cost.Prompt, &row.Cost.Completion, &row.Cost.Total); err != nil {
			return nil, fmt.Errorf("failed to scan usage summary: %w", err)
		}
		row.Vendor = provider.Vendor(vendor)
		out = append(out, row)
	}
	return out, rows.Err()
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
