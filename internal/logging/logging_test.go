package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_TerminalAndFile(t *testing.T) {
	var buf bytes.Buffer
	file := filepath.Join(t.TempDir(), "logs", "snaplist.log")

	l, err := Setup(Options{Level: slog.LevelInfo, Writer: &buf, File: file})
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("task added", "position", 0)
	require.NoError(t, l.Close())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "task added")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "task added", entry["msg"])
	assert.EqualValues(t, 0, entry["position"])
}

func TestSetup_LevelIsAdjustable(t *testing.T) {
	var buf bytes.Buffer
	l, err := Setup(Options{Level: slog.LevelWarn, Writer: &buf})
	require.NoError(t, err)

	l.Info("quiet")
	l.Level.Set(slog.LevelDebug)
	l.Debug("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestToJournalKey(t *testing.T) {
	assert.Equal(t, "IMAGE_PATH", toJournalKey("image.path"))
	assert.Equal(t, "POSITION", toJournalKey("position"))
	assert.Equal(t, "A_B_1", toJournalKey("a-b 1"))
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nobody hears this")
	assert.NoError(t, l.Close())
}
