package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/GregMSThompson/chat-widget/internal/errs"
	"github.com/GregMSThompson/chat-widget/internal/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS widgets (
	widget_id  TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	platform   TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL,
	document   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS widgets_updated_at ON widgets (updated_at DESC);
`

// sqliteWidgetStore keeps widgets in a local SQLite file. Each row carries
// the full widget as JSON next to the columns used for ordering.
type sqliteWidgetStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*sqliteWidgetStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return &sqliteWidgetStore{db: db}, nil
}

func (s *sqliteWidgetStore) Close() error {
	return s.db.Close()
}

func (s *sqliteWidgetStore) Create(ctx context.Context, w *models.Widget) error {
	now := time.Now().UTC()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	w.UpdatedAt = now

	doc, err := json.Marshal(w)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to encode widget", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO widgets (widget_id, name, platform, created_at, updated_at, document)
		 VALUES (?, ?, ?, ?, ?, ?) ON CONFLICT (widget_id) DO NOTHING`,
		w.WidgetID, w.Name, string(w.Platform), w.CreatedAt.UnixNano(), w.UpdatedAt.UnixNano(), string(doc))
	if err != nil {
		return errs.NewDatabaseError("create", "failed to create widget", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.NewAlreadyExistsError("widget id already in use")
	}
	return nil
}

func (s *sqliteWidgetStore) Get(ctx context.Context, widgetID string) (*models.Widget, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM widgets WHERE widget_id = ?`, widgetID).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewNotFoundError("widget not found")
	}
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to get widget", err)
	}
	return decodeWidget(doc)
}

func (s *sqliteWidgetStore) List(ctx context.Context, limit int) ([]*models.Widget, error) {
	query := `SELECT document FROM widgets ORDER BY updated_at DESC, widget_id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list widgets", err)
	}
	defer rows.Close()

	var out []*models.Widget
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to list widgets", err)
		}
		w, err := decodeWidget(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list widgets", err)
	}
	return out, nil
}

func (s *sqliteWidgetStore) Update(ctx context.Context, w *models.Widget) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to update widget", err)
	}
	defer tx.Rollback()

	var createdAt int64
	err = tx.QueryRowContext(ctx, `SELECT created_at FROM widgets WHERE widget_id = ?`, w.WidgetID).Scan(&createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("widget not found")
	}
	if err != nil {
		return errs.NewDatabaseError("update", "failed to update widget", err)
	}

	w.CreatedAt = time.Unix(0, createdAt).UTC()
	w.UpdatedAt = time.Now().UTC()
	doc, err := json.Marshal(w)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to encode widget", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE widgets SET name = ?, platform = ?, updated_at = ?, document = ? WHERE widget_id = ?`,
		w.Name, string(w.Platform), w.UpdatedAt.UnixNano(), string(doc), w.WidgetID)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to update widget", err)
	}
	if err := tx.Commit(); err != nil {
		return errs.NewDatabaseError("update", "failed to update widget", err)
	}
	return nil
}

func (s *sqliteWidgetStore) Delete(ctx context.Context, widgetID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM widgets WHERE widget_id = ?`, widgetID)
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete widget", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.NewNotFoundError("widget not found")
	}
	return nil
}

func decodeWidget(doc string) (*models.Widget, error) {
	var w models.Widget
	if err := json.Unmarshal([]byte(doc), &w); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse widget data", err)
	}
	return &w, nil
}
