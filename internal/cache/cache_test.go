package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectCreatesAndMigratesFile(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "c0ls-cache.db")
	db, err := Connect(dsn)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, QuickCheck(sqlDB))
}

func TestRecordAndListRuns(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "c0ls-cache.db")
	db, err := Connect(dsn)
	require.NoError(t, err)

	require.NoError(t, RecordRun(db, time.Now(), 5*time.Millisecond, 3, 2, map[string]int{"undefined": 2}))
	require.NoError(t, RecordRun(db, time.Now(), 7*time.Millisecond, 1, 0, map[string]int{}))

	runs, err := RecentRuns(db, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	// newest first.
	assert.Equal(t, 1, runs[0].FileCount)
	assert.Equal(t, 3, runs[1].FileCount)
	assert.Equal(t, 2, runs[1].Diagnostics.Data["undefined"])
}

func TestRecentRunsRespectsLimit(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "c0ls-cache.db")
	db, err := Connect(dsn)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, RecordRun(db, time.Now(), time.Millisecond, i, 0, nil))
	}

	runs, err := RecentRuns(db, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}
