package badger_test

import (
	"context"
	"testing"
	"time"

	"alcyxob/fitness-tracker/internal/repository"
	"alcyxob/fitness-tracker/internal/repository/badger"
	"alcyxob/fitness-tracker/internal/repository/repositorytest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openInMemory(t *testing.T) *badger.Store {
	t.Helper()
	store := badger.New(badger.InMemoryConfig())
	require.NoError(t, store.Open(context.Background()))
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func TestBadgerStore_Conformance(t *testing.T) {
	repositorytest.RunStoreTests(t, func(t *testing.T) *repository.Store {
		return openInMemory(t).Tables()
	})
}

func TestBadgerStore_NotReadyUntilOpened(t *testing.T) {
	ctx := context.Background()
	store := badger.New(badger.InMemoryConfig())
	tables := store.Tables()

	assert.False(t, store.Ready())
	_, err := tables.Exercises.List(ctx)
	require.ErrorIs(t, err, repository.ErrNotReady)
	_, _, err = tables.Trainings.Get(ctx, "x")
	require.ErrorIs(t, err, repository.ErrNotReady)
	_, err = tables.Workouts.Put(ctx, repositorytest.SampleWorkout())
	require.ErrorIs(t, err, repository.ErrNotReady)
	require.ErrorIs(t, store.ResetDatabase(ctx), repository.ErrNotReady)

	require.NoError(t, store.Open(ctx))
	assert.True(t, store.Ready())
	_, err = tables.Exercises.List(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Close())
	require.NoError(t, store.Close(), "second close is a no-op")
	require.ErrorIs(t, tables.Exercises.Remove(ctx, "x"), repository.ErrNotReady)
}

func TestBadgerStore_PersistsAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	cfg := badger.DefaultConfig(t.TempDir())
	cfg.GCInterval = 0

	store := badger.New(cfg)
	require.NoError(t, store.Open(ctx))
	stored, err := store.Tables().Trainings.Put(ctx, repositorytest.SampleTraining())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened := badger.New(cfg)
	require.NoError(t, reopened.Open(ctx))
	defer reopened.Close()

	got, found, err := reopened.Tables().Trainings.Get(ctx, stored.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, stored, got)

	version, err := reopened.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, repository.StoreVersion, version)
}

func TestBadgerStore_ResetDatabase(t *testing.T) {
	ctx := context.Background()
	store := openInMemory(t)
	tables := store.Tables()

	_, err := tables.Exercises.Put(ctx, repositorytest.SampleExercise())
	require.NoError(t, err)
	_, err = tables.Workouts.Put(ctx, repositorytest.SampleWorkout())
	require.NoError(t, err)

	require.NoError(t, store.ResetDatabase(ctx))

	exercises, err := tables.Exercises.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, exercises)
	workouts, err := tables.Workouts.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, workouts)

	version, err := store.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, repository.StoreVersion, version)

	_, err = tables.Exercises.Put(ctx, repositorytest.SampleExercise())
	require.NoError(t, err, "store is usable after reset")
}

func TestBadgerStore_ResetDatabaseWithGCRunning(t *testing.T) {
	ctx := context.Background()
	cfg := badger.DefaultConfig(t.TempDir())
	cfg.SyncWrites = false
	cfg.GCInterval = time.Millisecond

	store := badger.New(cfg)
	require.NoError(t, store.Open(ctx))
	tables := store.Tables()

	for i := 0; i < 3; i++ {
		_, err := tables.Workouts.Put(ctx, repositorytest.SampleWorkout())
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
		require.NoError(t, store.ResetDatabase(ctx))
	}

	workouts, err := tables.Workouts.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, workouts)
	require.NoError(t, store.Close(), "close stops the restarted GC runner")
}

func TestBadgerStore_OpenRequiresPath(t *testing.T) {
	err := badger.New(badger.Config{}).Open(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path is required")
}

func TestBadgerStore_CollectionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	tables := openInMemory(t).Tables()

	ex, err := tables.Exercises.Put(ctx, repositorytest.SampleExercise().WithID("shared-id"))
	require.NoError(t, err)
	_, err = tables.Trainings.Put(ctx, repositorytest.SampleTraining().WithID("shared-id"))
	require.NoError(t, err)

	got, found, err := tables.Exercises.Get(ctx, "shared-id")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, ex, got)

	require.NoError(t, tables.Trainings.Remove(ctx, "shared-id"))
	_, found, err = tables.Exercises.Get(ctx, "shared-id")
	require.NoError(t, err)
	assert.True(t, found)
}
