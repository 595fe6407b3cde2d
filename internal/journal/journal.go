package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ErrClosed is returned by writes after Close.
var ErrClosed = errors.New("journal closed")

// Journal appends entries for one program session.
type Journal struct {
	db      *sql.DB
	entries *EntryRepo
	session string
	closed  bool
}

// Open opens (creating if needed) the journal database at path and applies
// migrations.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir journal dir: %w", err)
	}
	db, err := OpenDB(path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	return &Journal{db: db, entries: NewEntryRepo(db), session: uuid.NewString()}, nil
}

func (j *Journal) Session() string { return j.session }

// Record appends one entry. The value is dropped when masked is set.
func (j *Journal) Record(ctx context.Context, kind Kind, value string, masked bool) (Entry, error) {
	if j == nil || j.closed {
		return Entry{}, ErrClosed
	}
	e := Entry{
		ID:        uuid.NewString(),
		SessionID: j.session,
		Kind:      kind,
		Length:    utf8.RuneCountInString(value),
		Masked:    masked,
		CreatedAt: Now(),
	}
	if !masked {
		e.Value = value
	}
	if err := j.entries.Insert(ctx, e); err != nil {
		return Entry{}, fmt.Errorf("record %s: %w", kind, err)
	}
	return e, nil
}

func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if j == nil || j.closed {
		return nil, ErrClosed
	}
	return j.entries.Recent(ctx, limit)
}

func (j *Journal) SessionCount(ctx context.Context) (int, error) {
	if j == nil || j.closed {
		return 0, ErrClosed
	}
	return j.entries.CountBySession(ctx, j.session)
}

func (j *Journal) Close() error {
	if j == nil || j.closed {
		return nil
	}
	j.closed = true
	return j.db.Close()
}
