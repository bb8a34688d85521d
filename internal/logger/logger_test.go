package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T, level LogLevel) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var info, errs bytes.Buffer
	previous := GetLevel()
	SetWriters(&info, &errs)
	SetLevel(level)
	t.Cleanup(func() {
		SetWriters(os.Stdout, os.Stderr)
		SetLevel(previous)
	})
	return &info, &errs
}

func TestLevelFiltering(t *testing.T) {
	info, errs := captureLogs(t, WARN)

	Info("hidden message")
	Warn("shown warning")
	Error("shown error")

	assert.NotContains(t, info.String(), "hidden message")
	assert.Contains(t, info.String(), "[WARN] logger_test.go")
	assert.Contains(t, info.String(), "shown warning")
	assert.Contains(t, errs.String(), "[ERROR]")
	assert.Contains(t, errs.String(), "shown error")
}

func TestArgumentsAreRendered(t *testing.T) {
	info, _ := captureLogs(t, DEBUG)

	Debug("points:", 3, 0.25, map[string]int{"x": 1})

	out := info.String()
	assert.Contains(t, out, "points: 3 0.25 [Object of type map[string]int]")
	assert.Contains(t, out, `"x": 1`)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   DEBUG,
		"INFO":    INFO,
		"":        INFO,
		"warning": WARN,
		" error ": ERROR,
	}
	for name, want := range cases {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	SetLogFile(path)
	t.Cleanup(func() {
		SetLogFile("")
		SetWriters(os.Stdout, os.Stderr)
	})

	require.NoError(t, SetLogOutput('f'))
	Info("written to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")

	assert.Error(t, SetLogOutput('x'))
}
