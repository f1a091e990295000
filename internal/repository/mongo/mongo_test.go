package mongo_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"alcyxob/fitness-tracker/internal/repository"
	"alcyxob/fitness-tracker/internal/repository/mongo"
	"alcyxob/fitness-tracker/internal/repository/repositorytest"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mongoURIEnv = "FITLOG_TEST_MONGO_URI"

// openTestStore connects to the server named by FITLOG_TEST_MONGO_URI using a
// throwaway database. The test is skipped when the variable is unset.
func openTestStore(t *testing.T) *mongo.Store {
	t.Helper()
	uri := os.Getenv(mongoURIEnv)
	if uri == "" {
		t.Skipf("%s not set", mongoURIEnv)
	}

	name := "fitlog_test_" + strings.ToLower(gofakeit.LetterN(10))
	store := mongo.New(mongo.Config{URI: uri, Name: name})
	require.NoError(t, store.Open(context.Background()))
	t.Cleanup(func() {
		assert.NoError(t, store.ResetDatabase(context.Background()))
		assert.NoError(t, store.Close())
	})
	return store
}

func TestMongoStore_Conformance(t *testing.T) {
	repositorytest.RunStoreTests(t, func(t *testing.T) *repository.Store {
		return openTestStore(t).Tables()
	})
}

func TestMongoStore_NotReadyUntilOpened(t *testing.T) {
	store := mongo.New(mongo.Config{URI: "mongodb://127.0.0.1:1", Name: "unused"})
	assert.False(t, store.Ready())

	_, err := store.Tables().Exercises.List(context.Background())
	require.ErrorIs(t, err, repository.ErrNotReady)
	require.ErrorIs(t, store.ResetDatabase(context.Background()), repository.ErrNotReady)
	require.NoError(t, store.Close())
}

func TestMongoStore_OpenRequiresConfig(t *testing.T) {
	err := mongo.New(mongo.Config{}).Open(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestMongoStore_ResetDatabase(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	tables := store.Tables()

	_, err := tables.Trainings.Put(ctx, repositorytest.SampleTraining())
	require.NoError(t, err)

	require.NoError(t, store.ResetDatabase(ctx))

	trainings, err := tables.Trainings.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, trainings)

	version, err := store.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, repository.StoreVersion, version)
}
