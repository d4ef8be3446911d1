package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger("world", &buf, WARN)

	l.Info("скрыто %d", 1)
	l.Warn("моб %d застрял", 7)
	l.Error("ошибка")

	out := buf.String()
	assert.NotContains(t, out, "скрыто")
	assert.Contains(t, out, "[WARN] [world] моб 7 застрял")
	assert.Contains(t, out, "[ERROR] [world] ошибка")
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, DEBUG, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, INFO, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestDefaultLoggerSwap(t *testing.T) {
	prev := Default()
	defer SetDefaultLogger(prev)

	var buf bytes.Buffer
	SetDefaultLogger(NewWriterLogger("test", &buf, TRACE))
	Trace("тик %d", 3)
	Debug("отладка")

	assert.Contains(t, buf.String(), "[TRACE] [test] тик 3")
	assert.Contains(t, buf.String(), "[DEBUG] [test] отладка")
}

func TestNewLoggerWritesFile(t *testing.T) {
	prevDir := LogsDir
	LogsDir = t.TempDir()
	defer func() { LogsDir = prevDir }()

	l, err := NewLogger("storage")
	require.NoError(t, err)
	l.Trace("в файл")
	require.NoError(t, l.Close())

	files, err := filepath.Glob(filepath.Join(LogsDir, "storage_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "[TRACE] [storage] в файл")
}

func TestManagerReusesLoggers(t *testing.T) {
	prevDir := LogsDir
	LogsDir = t.TempDir()
	defer func() { LogsDir = prevDir }()

	lm := newLoggerManager()
	lm.SetLevels(WARN, ERROR)
	a, err := lm.GetLogger("world")
	require.NoError(t, err)
	b, err := lm.GetLogger("world")
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, []string{"world"}, lm.ListComponents())

	var buf bytes.Buffer
	a.consoleLogger.SetOutput(&buf)
	a.Info("скрыто")
	a.Warn("видно")
	assert.NotContains(t, buf.String(), "скрыто")
	assert.Contains(t, buf.String(), "видно")

	require.NoError(t, lm.SetLogLevel("world", ERROR, ERROR))
	assert.Error(t, lm.SetLogLevel("missing", ERROR, ERROR))
	require.NoError(t, lm.CloseAll())
	assert.Empty(t, lm.ListComponents())
}
