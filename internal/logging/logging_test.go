package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func readLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		lines = append(lines, m)
	}
	require.NoError(t, sc.Err())
	return lines
}

func TestWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "courseway.log")
	log, cleanup, err := New(Options{File: path, Level: "info"})
	require.NoError(t, err)

	log.Info("lesson completed", zap.String("lesson", "beginner-lesson1"))
	log.Debug("hidden")
	cleanup()

	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.Equal(t, "lesson completed", lines[0]["msg"])
	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "beginner-lesson1", lines[0]["lesson"])
}

func TestDebugLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	log, cleanup, err := New(Options{File: path, Level: "debug"})
	require.NoError(t, err)

	log.Debug("visible")
	cleanup()

	assert.Len(t, readLines(t, path), 1)
}

func TestBadLevel(t *testing.T) {
	_, _, err := New(Options{File: filepath.Join(t.TempDir(), "x.log"), Level: "loud"})
	assert.Error(t, err)
}

func TestConsoleAlongsideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courseway.log")
	var console bytes.Buffer
	log, cleanup, err := New(Options{File: path, Level: "info", Console: &console})
	require.NoError(t, err)

	log.Warn("progress reset", zap.String("key", "courseway-progress"))
	cleanup()

	assert.Contains(t, console.String(), "progress reset")
	assert.Contains(t, console.String(), "courseway-progress")
	assert.NotContains(t, console.String(), `"msg"`, "console output is not JSON")
	assert.Len(t, readLines(t, path), 1)
}

func TestConsoleOnly(t *testing.T) {
	var console bytes.Buffer
	log, cleanup, err := New(Options{Level: "warn", Console: &console})
	require.NoError(t, err)

	log.Info("below level")
	log.Error("store closed")
	cleanup()

	assert.NotContains(t, console.String(), "below level")
	assert.Contains(t, console.String(), "store closed")
}

func TestNoOutputIsNop(t *testing.T) {
	log, cleanup, err := New(Options{})
	require.NoError(t, err)
	defer cleanup()
	assert.NotNil(t, log)
	log.Info("dropped")
}

func TestDefaultFile(t *testing.T) {
	assert.Equal(t, filepath.Join("/data", "courseway.log"), DefaultFile("/data/courseway.db"))
}
