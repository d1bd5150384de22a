package sqlite_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/dockyard/internal/logging"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func TestLayoutRepository_CRUD(t *testing.T) {
	ctx := testCtx()
	db, err := sqlite.NewConnection(ctx, filepath.Join(t.TempDir(), "nested", "dockyard.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	version, err := sqlite.SchemaVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	repo := sqlite.NewLayoutRepository(db)

	missing, err := repo.FindBySession(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	first := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, &entity.LayoutRecord{SessionID: "alpha", Document: []byte(`{"v":1}`), UpdatedAt: first}))
	require.NoError(t, repo.Save(ctx, &entity.LayoutRecord{SessionID: "beta", Document: []byte(`{}`), UpdatedAt: first.Add(time.Minute)}))

	got, err := repo.FindBySession(ctx, "alpha")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, `{"v":1}`, string(got.Document))
	assert.True(t, got.UpdatedAt.Equal(first))

	// Upsert replaces the document and bumps the timestamp.
	later := first.Add(time.Hour)
	require.NoError(t, repo.Save(ctx, &entity.LayoutRecord{SessionID: "alpha", Document: []byte(`{"v":2}`), UpdatedAt: later}))

	infos, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, entity.SessionID("alpha"), infos[0].SessionID)
	assert.Equal(t, int64(len(`{"v":2}`)), infos[0].Size)
	assert.True(t, infos[0].UpdatedAt.Equal(later))
	assert.Equal(t, entity.SessionID("beta"), infos[1].SessionID)

	require.NoError(t, repo.Delete(ctx, "alpha"))
	got, err = repo.FindBySession(ctx, "alpha")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting twice is not an error.
	require.NoError(t, repo.Delete(ctx, "alpha"))
}

func TestLayoutRepository_RejectsInvalidSession(t *testing.T) {
	ctx := testCtx()
	db, err := sqlite.NewConnection(ctx, filepath.Join(t.TempDir(), "dockyard.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	err = sqlite.NewLayoutRepository(db).Save(ctx, &entity.LayoutRecord{SessionID: "../etc", Document: []byte(`{}`)})
	assert.ErrorIs(t, err, entity.ErrInvalidSession)
}

func TestNewConnection_ReopenKeepsData(t *testing.T) {
	ctx := testCtx()
	path := filepath.Join(t.TempDir(), "dockyard.db")

	db, err := sqlite.NewConnection(ctx, path)
	require.NoError(t, err)
	require.NoError(t, sqlite.NewLayoutRepository(db).Save(ctx, &entity.LayoutRecord{
		SessionID: "keep", Document: []byte(`{}`), UpdatedAt: time.Now(),
	}))
	require.NoError(t, db.Close())

	db, err = sqlite.NewConnection(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	got, err := sqlite.NewLayoutRepository(db).FindBySession(ctx, "keep")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestNewConnection_EmptyPath(t *testing.T) {
	_, err := sqlite.NewConnection(testCtx(), "")
	assert.Error(t, err)
}

func TestLazyDB_InitializesOnFirstAccess(t *testing.T) {
	ctx := testCtx()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "lazy.db"))
	assert.False(t, lazy.IsInitialized())

	db1, err := lazy.DB(ctx)
	require.NoError(t, err)
	db2, err := lazy.DB(ctx)
	require.NoError(t, err)

	assert.Same(t, db1, db2)
	assert.True(t, lazy.IsInitialized())
	require.NoError(t, lazy.Close())
}

func TestLazyDB_ConcurrentAccess(t *testing.T) {
	ctx := testCtx()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "lazy.db"))
	t.Cleanup(func() { _ = lazy.Close() })

	const goroutines = 8
	var wg sync.WaitGroup
	errs := make(chan error, goroutines)
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := lazy.DB(ctx)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestLazyLayoutRepository_Delegates(t *testing.T) {
	ctx := testCtx()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "lazy.db"))
	t.Cleanup(func() { _ = lazy.Close() })

	repo := sqlite.NewLazyLayoutRepository(lazy)
	assert.False(t, lazy.IsInitialized())

	require.NoError(t, repo.Save(ctx, &entity.LayoutRecord{SessionID: "s1", Document: []byte(`{}`), UpdatedAt: time.Now()}))
	assert.True(t, lazy.IsInitialized())

	infos, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, entity.SessionID("s1"), infos[0].SessionID)
}

func TestLazyDB_ReopensAfterClose(t *testing.T) {
	ctx := testCtx()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "lazy.db"))
	repo := sqlite.NewLazyLayoutRepository(lazy)

	require.NoError(t, repo.Save(ctx, &entity.LayoutRecord{SessionID: "s1", Document: []byte(`{}`), UpdatedAt: time.Now()}))
	require.NoError(t, lazy.Close())
	assert.False(t, lazy.IsInitialized())
	require.NoError(t, lazy.Close())

	got, err := repo.FindBySession(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []byte(`{}`), got.Document)
	require.NoError(t, lazy.Close())
}

func TestLazyDB_FailedOpenIsRetried(t *testing.T) {
	ctx := testCtx()
	lazy := sqlite.NewLazyDB("")

	_, err := lazy.DB(ctx)
	require.Error(t, err)
	_, err = lazy.DB(ctx)
	require.Error(t, err)
	assert.False(t, lazy.IsInitialized())
	assert.Empty(t, lazy.Path())
}
