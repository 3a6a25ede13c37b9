package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewStore_ConnectionSettings(t *testing.T) {
	st, err := NewStore(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	ctx := context.Background()

	var journalMode string
	require.NoError(t, st.db.QueryRowContext(ctx, `PRAGMA journal_mode;`).Scan(&journalMode))
	require.Equal(t, "wal", journalMode)

	var busyTimeout int
	require.NoError(t, st.db.QueryRowContext(ctx, `PRAGMA busy_timeout;`).Scan(&busyTimeout))
	require.Equal(t, 5000, busyTimeout)

	var foreignKeys int
	require.NoError(t, st.db.QueryRowContext(ctx, `PRAGMA foreign_keys;`).Scan(&foreignKeys))
	require.Equal(t, 1, foreignKeys)
}

func TestNewStore_DSNWithExistingParams(t *testing.T) {
	st, err := NewStore("file:" + filepath.Join(t.TempDir(), "auth.db") + "?mode=rwc")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	var journalMode string
	require.NoError(t, st.db.QueryRowContext(context.Background(), `PRAGMA journal_mode;`).Scan(&journalMode))
	require.Equal(t, "wal", journalMode)
}
