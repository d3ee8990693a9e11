package journaldb

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := InitSQLiteDB(filepath.Join(t.TempDir(), "nested", "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestSaveAndListSyncRuns(t *testing.T) {
	j := openJournal(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	_, err := j.SaveSyncRun(SyncRun{
		Chain: "test", Birthday: 2800000, KeyFingerprint: "aabbccddeeff0011",
		Status: StatusSucceeded, BalanceZat: 8000, StartedAt: base, Duration: 1500 * time.Millisecond,
	})
	require.NoError(t, err)

	id, err := j.SaveSyncRun(SyncRun{
		Chain: "main", KeyFingerprint: "1122334455667788",
		Status: StatusFailed, Error: "sync error in rescan: stream reset", StartedAt: base.Add(time.Minute),
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	runs, err := j.ListSyncRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, id, runs[0].ID)
	assert.Equal(t, StatusFailed, runs[0].Status)
	assert.Equal(t, "sync error in rescan: stream reset", runs[0].Error)

	assert.Equal(t, "test", runs[1].Chain)
	assert.Equal(t, uint32(2800000), runs[1].Birthday)
	assert.Equal(t, uint64(8000), runs[1].BalanceZat)
	assert.Equal(t, 1500*time.Millisecond, runs[1].Duration)
	assert.True(t, base.Equal(runs[1].StartedAt))

	runs, err = j.ListSyncRuns(1)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestClosedJournal(t *testing.T) {
	j, err := InitSQLiteDB(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	require.NoError(t, j.Close())
	require.NoError(t, j.Close())

	_, err = j.SaveSyncRun(SyncRun{})
	assert.ErrorIs(t, err, ErrClosed)
	_, err = j.ListSyncRuns(5)
	assert.ErrorIs(t, err, ErrClosed)
}
