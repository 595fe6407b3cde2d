package journal

import (
	"context"
	"database/sql"
	"time"
)

type Kind string

const (
	KindComplete Kind = "complete"
	KindSubmit   Kind = "submit"
)

// Entry is one journal row. Value is empty for masked codes.
type Entry struct {
	ID        string
	SessionID string
	Kind      Kind
	Length    int
	Masked    bool
	Value     string
	CreatedAt time.Time
}

// EntryRepo handles journal entries.
type EntryRepo struct {
	db *sql.DB
}

func NewEntryRepo(db *sql.DB) *EntryRepo { return &EntryRepo{db: db} }

func (r *EntryRepo) Insert(ctx context.Context, e Entry) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO entries(id, session_id, kind, code_length, masked, value, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`, e.ID, e.SessionID, string(e.Kind), e.Length, e.Masked, e.Value, e.CreatedAt)
	return err
}

// Recent lists the newest entries first.
func (r *EntryRepo) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, session_id, kind, code_length, masked, value, created_at
	FROM entries ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		var kind string
		if err := rows.Scan(&e.ID, &e.SessionID, &kind, &e.Length, &e.Masked, &e.Value, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Kind = Kind(kind)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EntryRepo) CountBySession(ctx context.Context, sessionID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries WHERE session_id = ?`, sessionID).Scan(&n)
	return n, err
}
