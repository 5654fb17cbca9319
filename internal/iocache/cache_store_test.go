package iocache

import (
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qixiboss/gaitscore/schema"
)

// TestValidateTableName tests the validateTableName function with various inputs.
func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name      string
		tableName string
		wantErr   bool
	}{
		{"valid simple name", "frame_cache", false},
		{"valid name with numbers", "frame_cache_2", false},
		{"valid name starting with underscore", "_frames", false},
		{"valid mixed case", "FrameCache", false},
		{"empty name", "", true},
		{"starts with number", "1_frames", true},
		{"contains dash", "frame-cache", true},
		{"contains space", "frame cache", true},
		{"sql injection attempt", "frames'; DROP TABLE users; --", true},
		{"contains dot", "main.frames", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.tableName)
			if tt.wantErr {
				assert.Error(t, err, "validateTableName should error for %q", tt.tableName)
			} else {
				assert.NoError(t, err, "validateTableName should not error for %q", tt.tableName)
			}
		})
	}
}

// TestQuoteTableName tests the quoteTableName function for all backends.
func TestQuoteTableName(t *testing.T) {
	tests := []struct {
		backend schema.DatabaseBackend
		want    string
	}{
		{schema.SQLiteBackend, `"frame_cache"`},
		{schema.MySQLBackend, "`frame_cache`"},
		{schema.PostgreSQLBackend, `"frame_cache"`},
		{schema.NoneBackend, `"frame_cache"`},
	}
	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			assert.Equal(t, tt.want, quoteTableName("frame_cache", tt.backend))
		})
	}
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "?", placeholder(schema.SQLiteBackend, 3))
	assert.Equal(t, "?", placeholder(schema.MySQLBackend, 1))
	assert.Equal(t, "$3", placeholder(schema.PostgreSQLBackend, 3))
	assert.Equal(t, "?, ?, ?", placeholderList(schema.SQLiteBackend, 3))
	assert.Equal(t, "$1, $2", placeholderList(schema.PostgreSQLBackend, 2))
}

func TestGetCreateTableQuery(t *testing.T) {
	assert.Contains(t, getCreateTableQuery("frame_cache", schema.MySQLBackend), "LONGBLOB")
	assert.Contains(t, getCreateTableQuery("frame_cache", schema.PostgreSQLBackend), "BYTEA")
	assert.Contains(t, getCreateTableQuery("frame_cache", schema.SQLiteBackend), "BLOB")
}

func TestGetUpsertQuery(t *testing.T) {
	tests := []struct {
		backend schema.DatabaseBackend
		want    string
	}{
		{schema.SQLiteBackend, "INSERT OR REPLACE"},
		{schema.MySQLBackend, "ON DUPLICATE KEY UPDATE"},
		{schema.PostgreSQLBackend, "ON CONFLICT (cache_key)"},
	}
	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			store := &CacheStoreImpl{tableName: "frame_cache", backend: tt.backend}
			assert.Contains(t, store.getUpsertQuery(), tt.want)
		})
	}
}

func TestCacheStoreSQLite(t *testing.T) {
	store, err := NewCacheStore(frameCacheTable, schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	t.Run("miss", func(t *testing.T) {
		_, _, _, err := store.Get("missing")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, store.Set("k1", []byte(`{"frames":{}}`), 1, 1000))
		value, version, ts, err := store.Get("k1")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"frames":{}}`), value)
		assert.Equal(t, 1, version)
		assert.Equal(t, int64(1000), ts)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, store.Set("k1", []byte("v2"), 2, 2000))
		value, version, ts, err := store.Get("k1")
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), value)
		assert.Equal(t, 2, version)
		assert.Equal(t, int64(2000), ts)
	})

	t.Run("status", func(t *testing.T) {
		require.NoError(t, store.Set("k2", []byte("v"), 1, 500))
		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.Equal(t, "sqlite", status.Backend)
		assert.True(t, status.Connected)
		assert.Equal(t, 2, status.TotalEntries)
		assert.Equal(t, time.Unix(2000, 0), status.LastEntryTime)
		assert.Equal(t, time.Unix(500, 0), status.OldestEntryTime)
		assert.Positive(t, status.TableSizeBytes)
	})
}

func TestCacheStoreEmptyStatus(t *testing.T) {
	store, err := NewCacheStore(frameCacheTable, schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Zero(t, status.TotalEntries)
	assert.True(t, status.LastEntryTime.IsZero())
}

func TestCacheStoreFilePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	store, err := NewCacheStore(frameCacheTable, schema.SQLiteBackend, path)
	require.NoError(t, err)
	require.NoError(t, store.Set("key", []byte("frames"), 1, 42))
	require.NoError(t, store.Close())

	reopened, err := NewCacheStore(frameCacheTable, schema.SQLiteBackend, path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	value, _, ts, err := reopened.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("frames"), value)
	assert.Equal(t, int64(42), ts)
}

func TestCacheStoreNoneBackend(t *testing.T) {
	store, err := NewCacheStore(frameCacheTable, schema.NoneBackend, "")
	require.NoError(t, err)

	assert.NoError(t, store.Set("k", []byte("v"), 1, 1))
	_, _, _, err = store.Get("k")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.NoError(t, store.Close())
}

func TestNewCacheStoreErrors(t *testing.T) {
	_, err := NewCacheStore("bad-name", schema.SQLiteBackend, ":memory:")
	assert.ErrorContains(t, err, "invalid table name")

	_, err = NewCacheStore(frameCacheTable, "oracle", "")
	assert.ErrorContains(t, err, "unsupported backend")

	_, err = NewCacheStore(frameCacheTable, schema.MySQLBackend, "invalid://connection")
	assert.Error(t, err)
}

func TestCacheStoreManagerConcurrency(t *testing.T) {
	initOnce = sync.Once{}
	closeOnce = sync.Once{}
	t.Cleanup(func() {
		CloseStores()
		Manager = &CacheStoreManager{}
		initOnce = sync.Once{}
		closeOnce = sync.Once{}
	})

	require.NoError(t, InitStores(schema.SQLiteBackend, ":memory:", "", ""))
	assert.Nil(t, Manager.GetHistoryStore())

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Go(func() {
			store := Manager.GetFrameStore()
			if assert.NotNil(t, store) {
				assert.NoError(t, store.Set("concurrent_key", []byte("value"), 1, int64(1000+i)))
			}
		})
	}
	wg.Wait()

	_, _, ts, err := Manager.GetFrameStore().Get("concurrent_key")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, ts, int64(1000))
}

func TestInitStoresErrors(t *testing.T) {
	initOnce = sync.Once{}
	closeOnce = sync.Once{}
	t.Cleanup(func() {
		Manager = &CacheStoreManager{}
		initOnce = sync.Once{}
		closeOnce = sync.Once{}
	})

	err := InitStores(schema.SQLiteBackend, ":memory:", schema.MySQLBackend, "invalid://connection")
	assert.ErrorContains(t, err, "failed to initialize history store")
	assert.Nil(t, Manager.GetFrameStore(), "a failed init leaves the manager empty")
}

func TestInitStoresNoneBackend(t *testing.T) {
	frames, history, err := openStores(schema.NoneBackend, "", "", "")
	require.NoError(t, err)
	assert.Nil(t, frames)
	assert.Nil(t, history)
}

func TestClearCache(t *testing.T) {
	t.Run("sqlite removes the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cache.db")
		store, err := NewCacheStore(frameCacheTable, schema.SQLiteBackend, path)
		require.NoError(t, err)
		require.NoError(t, store.Close())

		require.NoError(t, ClearCache(schema.SQLiteBackend, path, ""))
		assert.NoFileExists(t, path)
		assert.NoError(t, ClearCache(schema.SQLiteBackend, path, ""), "a missing file is fine")
	})

	t.Run("sqlite needs a path", func(t *testing.T) {
		assert.Error(t, ClearCache(schema.SQLiteBackend, "", ""))
	})

	t.Run("none is a no-op", func(t *testing.T) {
		assert.NoError(t, ClearCache(schema.NoneBackend, "", ""))
		assert.NoError(t, ClearHistory("", "", ""))
	})

	t.Run("unknown backend", func(t *testing.T) {
		assert.Error(t, ClearCache("oracle", "", ""))
	})
}
