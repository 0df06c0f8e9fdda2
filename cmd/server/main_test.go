package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ganot/roadmap/internal/domain/chart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = "../../data/catalog.yaml"

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ROADMAP_CONFIG_PATH", "")
	t.Setenv("ROADMAP_TRANSPORT", "")
	t.Setenv("ROADMAP_LOG_PATH", "")
	t.Setenv("ROADMAP_SEED_PATH", "")
	t.Setenv("ROADMAP_LOG_LEVEL", "error")
	t.Setenv("ROADMAP_DB_PATH", filepath.Join(t.TempDir(), "roadmap.db"))
}

func TestBuildCommand_FromCatalogFile(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := execute(t, "build", "--catalog", sampleCatalog, "--mineral-type", "1", "--start-stage", "103")
	require.NoError(t, err)

	doc, err := chart.Decode([]byte(strings.TrimSpace(stdout)))
	require.NoError(t, err)
	assert.Equal(t, int64(1), doc.MineralType.ID)
	assert.Equal(t, int64(103), doc.StartStage.ID)
	assert.Nil(t, doc.Question)

	ids := make([]int64, 0, len(doc.Stages))
	for _, st := range doc.Stages {
		ids = append(ids, st.ID)
	}
	assert.Equal(t, []int64{103, 104, 105, 106}, ids)
	assert.Equal(t, 0, doc.Stages[0].Start)
	assert.Equal(t, doc.Stages[len(doc.Stages)-1].End(), doc.TotalDuration)
}

func TestBuildCommand_WithQuestion(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := execute(t, "build", "--catalog", sampleCatalog,
		"--mineral-type", "1", "--start-stage", "101", "--question", "1", "--indent")
	require.NoError(t, err)
	assert.Contains(t, stdout, "\n  \"mineral_type\"")

	doc, err := chart.Decode([]byte(stdout))
	require.NoError(t, err)
	require.NotNil(t, doc.Question)
	assert.Equal(t, "coal-reserves", doc.Question.Code)

	ids := make([]int64, 0, len(doc.Stages))
	for _, st := range doc.Stages {
		ids = append(ids, st.ID)
	}
	assert.Equal(t, []int64{101, 102, 103}, ids)
}

func TestBuildCommand_Errors(t *testing.T) {
	isolateEnv(t)

	_, _, err := execute(t, "build", "--catalog", sampleCatalog, "--mineral-type", "1", "--start-stage", "201")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stage not found")

	_, _, err = execute(t, "build", "--catalog", sampleCatalog, "--mineral-type", "1")
	require.Error(t, err)
}

func TestSeedThenBuildFromDatabase(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := execute(t, "seed", sampleCatalog)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Imported 2 mineral types, 10 stages")

	stdout, _, err = execute(t, "build", "--mineral-type", "2", "--start-stage", "201", "--question", "3")
	require.NoError(t, err)

	doc, err := chart.Decode([]byte(strings.TrimSpace(stdout)))
	require.NoError(t, err)
	// 202 is a dependency of the target but not a target itself.
	require.Len(t, doc.Stages, 2)
	assert.Equal(t, int64(201), doc.Stages[0].ID)
	assert.Equal(t, int64(203), doc.Stages[1].ID)
	assert.Equal(t, 12, doc.Stages[1].Start)
}

func TestSeedCommand_RejectsInvalidCatalog(t *testing.T) {
	isolateEnv(t)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
mineral_types:
  - {id: 1, name: Coal, code: coal}
stages:
  - {id: 10, mineral_type: 1, name: Geology, order: 1, duration_months: 0}
`), 0o644))

	_, _, err := execute(t, "seed", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duration must be positive")
}

func TestAPIKeyCreateCommand(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := execute(t, "apikey", "create", "--tenant", "acme", "--token", "secret")
	require.NoError(t, err)
	assert.Equal(t, "secret\n", stdout)

	stdout, _, err = execute(t, "apikey", "create", "--tenant", "acme")
	require.NoError(t, err)
	assert.Len(t, strings.TrimSpace(stdout), 36)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, isTerminal(f))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("info"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("verbose"))
}

func TestLogFileWriter_KeepsNewestBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "roadmap.log")
	w, file, err := newLogFileWriter(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })

	w.maxSize = 16
	w.keepSize = 8

	_, err = w.Write([]byte("0123456789"))
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(data))

	_, err = w.Write([]byte("abcdefghij"))
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "cdefghij", string(data))
}
