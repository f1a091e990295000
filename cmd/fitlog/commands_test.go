package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"alcyxob/fitness-tracker/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
storage:
  backend: badger
  badger:
    path: %s
    sync_writes: false
    gc_interval: 0s
log:
  level: info
metrics:
  enabled: false
`

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	content := fmt.Sprintf(testConfig, filepath.Join(dir, "db"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))
	return dir
}

// execute runs the root command with fresh flag values and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeSplit(t, args...)
	return out, err
}

// executeSplit also returns what went to stderr.
func executeSplit(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	configPath = "."
	seedFile = ""
	confirmed = false

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	stopTracing()
	return out.String(), errOut.String(), err
}

func TestSeedAndAnalyze(t *testing.T) {
	dir := writeConfig(t)

	out, err := execute(t, "seed", "--config", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 6 exercises and 2 trainings")

	// Start a workout directly against the same database.
	store, err := openStore(context.Background(), cfg.Storage)
	require.NoError(t, err)
	workout, err := newControllers(store.tables).workouts.StartFromTraining(
		context.Background(), "tr-full-body-a", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, store.close())

	out, logs, err := executeSplit(t, "analyze", workout.ID, "--config", dir)
	require.NoError(t, err)
	var analysis map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &analysis), "stdout holds only the analysis: %s", out)
	assert.Contains(t, analysis, "shouldUpdatePlannedValues")
	assert.Contains(t, logs, "badger store opened")

	_, err = execute(t, "analyze", "missing-workout", "--config", dir)
	require.Error(t, err)
}

func TestSeedFromFile(t *testing.T) {
	dir := writeConfig(t)
	seedPath := filepath.Join(dir, "plan.toml")
	require.NoError(t, os.WriteFile(seedPath, []byte(`
[[exercise]]
id = "ex-row"
name = "Row"
kind = "weight"
last_known_weight = 40.0
`), 0o600))

	out, err := execute(t, "seed", "--config", dir, "--file", seedPath)
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 1 exercises and 0 trainings")

	_, err = execute(t, "seed", "--config", dir, "--file", filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
}

func TestResetDB(t *testing.T) {
	dir := writeConfig(t)
	_, err := execute(t, "seed", "--config", dir)
	require.NoError(t, err)

	_, err = execute(t, "reset-db", "--config", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	out, err := execute(t, "reset-db", "--config", dir, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "database reset")

	store, err := openStore(context.Background(), cfg.Storage)
	require.NoError(t, err)
	defer store.shutdown()
	exercises, err := store.tables.Exercises.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, exercises)
}

func TestResetDB_MemoryBackendHasNothingToReset(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("storage:\n  backend: memory\nlog:\n  level: error\n"), 0o600))

	_, err := execute(t, "reset-db", "--config", dir, "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to reset")
}

func TestOpenStore_UnknownBackend(t *testing.T) {
	_, err := openStore(context.Background(), config.StorageConfig{Backend: "sqlite"})
	require.Error(t, err)
}

func TestAnalyze_ExportsSpansWhenTracingEnabled(t *testing.T) {
	dir := writeConfig(t)
	f, err := os.OpenFile(filepath.Join(dir, "config.yaml"), os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.WriteString("tracing:\n  enabled: true\n  exporter: stdout\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, logs, err := executeSplit(t, "analyze", "missing-workout", "--config", dir)
	require.Error(t, err)
	assert.Contains(t, logs, `"Name":"progressionService.suggest"`)
	assert.Contains(t, logs, "record not found")
}

func TestDefaultConfigFlag(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("config.yaml", []byte("storage:\n  backend: memory\nlog:\n  level: error\n"), 0o600))

	out, err := execute(t, "seed")
	require.NoError(t, err, "the default --config of the current directory must load")
	assert.Contains(t, out, "seeded 6 exercises")
}
