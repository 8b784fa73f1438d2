package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "session.db")

	store, err := NewSQLiteStorage(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestPutGetDelete(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "user")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, "user", `{"email":"a@b.co"}`))
	require.NoError(t, store.Put(ctx, "user", `{"email":"c@d.co"}`))

	value, ok, err := store.Get(ctx, "user")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"email":"c@d.co"}`, value)

	require.NoError(t, store.Delete(ctx, "user"))
	require.NoError(t, store.Delete(ctx, "user"))
	_, ok, err = store.Get(ctx, "user")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEntriesSurviveReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "session.db")

	store, err := NewSQLiteStorage(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "user", "kept"))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStorage(ctx, dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	value, ok, err := reopened.Get(ctx, "user")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "kept", value)
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Migrate(ctx))
	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestInMemoryDatabase(t *testing.T) {
	store, err := NewSQLiteStorage(context.Background(), ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	require.NoError(t, store.Put(context.Background(), "k", "v"))
}

func TestValidation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := NewSQLiteStorage(ctx, " ")
	assert.ErrorIs(t, err, ErrEmptyString)
	assert.ErrorIs(t, store.Put(ctx, "", "v"), ErrEmptyString)
	//nolint:staticcheck // nil context is rejected explicitly
	_, _, err = store.Get(nil, "user")
	assert.ErrorIs(t, err, ErrNilContext)
}
