package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "nested", "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestJournalRecordAndRecent(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	j := openTemp(t)

	first, err := j.Record(ctx, KindComplete, "1234", false)
	require.NoError(t, err)
	require.Equal(t, 4, first.Length)
	require.Equal(t, j.Session(), first.SessionID)

	_, err = j.Record(ctx, KindSubmit, "1234", false)
	require.NoError(t, err)

	entries, err := j.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, KindSubmit, entries[0].Kind)
	require.Equal(t, KindComplete, entries[1].Kind)
	require.Equal(t, "1234", entries[1].Value)
	require.WithinDuration(t, time.Now(), entries[0].CreatedAt, time.Minute)

	n, err := j.SessionCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestJournalMaskedValueNotStored(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	j := openTemp(t)

	e, err := j.Record(ctx, KindComplete, "日本語", true)
	require.NoError(t, err)
	require.Empty(t, e.Value)
	require.Equal(t, 3, e.Length)

	entries, err := j.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.True(t, entries[0].Masked)
	require.Empty(t, entries[0].Value)

	var stored string
	require.NoError(t, j.db.QueryRowContext(ctx, "SELECT value FROM entries").Scan(&stored))
	require.Empty(t, stored)
}

func TestJournalReopenKeepsEntries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "journal.db")

	j, err := Open(path)
	require.NoError(t, err)
	_, err = j.Record(ctx, KindSubmit, "42", false)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	again, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = again.Close() })
	require.NotEqual(t, j.Session(), again.Session())

	entries, err := again.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "42", entries[0].Value)

	n, err := again.SessionCount(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestJournalClosed(t *testing.T) {
	t.Parallel()

	j := openTemp(t)
	require.NoError(t, j.Close())
	require.NoError(t, j.Close())

	_, err := j.Record(context.Background(), KindComplete, "1", false)
	require.ErrorIs(t, err, ErrClosed)
	_, err = j.Recent(context.Background(), 1)
	require.ErrorIs(t, err, ErrClosed)

	var nilJournal *Journal
	_, err = nilJournal.SessionCount(context.Background())
	require.ErrorIs(t, err, ErrClosed)
}

func TestMigrateIsIdempotent(t *testing.T) {
	t.Parallel()

	db, err := OpenDB(filepath.Join(t.TempDir(), "m.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	var name string
	require.NoError(t, db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='entries'`).Scan(&name))
	require.Equal(t, "entries", name)
}
