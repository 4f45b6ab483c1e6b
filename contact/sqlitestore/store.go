// Package sqlitestore keeps contact submissions in a local SQLite file.
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/km-arc/go-portfolio/contact"
	"github.com/km-arc/go-portfolio/framework/database"
	"github.com/km-arc/go-portfolio/framework/http/validation"
)

const schema = `
CREATE TABLE IF NOT EXISTS contact_messages (
	id           TEXT PRIMARY KEY,
	submitted_at TEXT NOT NULL,
	user_agent   TEXT NOT NULL DEFAULT '',
	remote_ip    TEXT NOT NULL DEFAULT '',
	email        TEXT NOT NULL DEFAULT '',
	subject      TEXT NOT NULL DEFAULT '',
	fields       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_contact_messages_submitted ON contact_messages(submitted_at);
`

// Store is a contact.Submitter backed by SQLite.
type Store struct {
	db *sql.DB
}

var _ contact.Submitter = (*Store)(nil)

// Open creates the database file (and its directory) when missing and
// ensures the schema exists.
func Open(ctx context.Context, path string, logger *zap.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlitestore: create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: open: %w", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if err := database.Retry(ctx, "sqlite", logger, db.PingContext); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlitestore: schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Submit inserts one submission.
func (s *Store) Submit(ctx context.Context, sub contact.Submission) error {
	fields, err := json.Marshal(sub.Fields)
	if err != nil {
		return fmt.Errorf("sqlitestore: encode fields: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO contact_messages (id, submitted_at, user_agent, remote_ip, email, subject, fields)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sub.ID,
		sub.SubmittedAt.UTC().Format(time.RFC3339Nano),
		sub.UserAgent,
		sub.RemoteIP,
		sub.Value("email"),
		sub.Value("subject"),
		string(fields),
	)
	if err != nil {
		return fmt.Errorf("sqlitestore: insert %s: %w", sub.ID, err)
	}
	return nil
}

// List returns the newest submissions first. A limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]contact.Submission, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, submitted_at, user_agent, remote_ip, fields
		 FROM contact_messages
		 ORDER BY submitted_at DESC, id
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: list: %w", err)
	}
	defer rows.Close()

	var out []contact.Submission
	for rows.Next() {
		var (
			sub         contact.Submission
			submittedAt string
			fields      string
		)
		if err := rows.Scan(&sub.ID, &submittedAt, &sub.UserAgent, &sub.RemoteIP, &fields); err != nil {
			return nil, fmt.Errorf("sqlitestore: scan: %w", err)
		}
		if sub.SubmittedAt, err = time.Parse(time.RFC3339Nano, submittedAt); err != nil {
			return nil, fmt.Errorf("sqlitestore: %s: submitted_at: %w", sub.ID, err)
		}
		var fs []validation.Field
		if err := json.Unmarshal([]byte(fields), &fs); err != nil {
			return nil, fmt.Errorf("sqlitestore: %s: fields: %w", sub.ID, err)
		}
		sub.Fields = fs
		out = append(out, sub)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }
