package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMessengerPrefixes(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	m := NewMessenger(NewFromZap(zap.New(core), ""))

	assert.Equal(t, "Debug: loaded 3 atoms", m.Debug("loaded %d atoms", 3))
	assert.Equal(t, "Info: view refreshed", m.Info("view refreshed"))
	assert.Equal(t, "Error: height of 9 is too high", m.Error("height of %d is too high", 9))

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, MessengerModule, entries[2].ContextMap()["module"])
}

func TestMessengerErrorFrom(t *testing.T) {
	core, _ := observer.New(zapcore.DebugLevel)
	m := NewMessenger(NewFromZap(zap.New(core), ""))

	assert.Equal(t, "Error: "+assert.AnError.Error(), m.ErrorFrom(assert.AnError))
}

func TestGetLogsFiltersAndPages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brain.log")
	l := NewIsolatedLogger(path)

	l.Info("ContextService", "opened", map[string]interface{}{"id": "a"})
	l.Info(MessengerModule, "Info: first", nil)
	l.Warn(MessengerModule, "Info: second", nil)
	l.Error(MessengerModule, "Error: third", nil)
	require.NoError(t, l.Sync())

	all, err := l.GetLogs("", "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, "Error: third", all[0].Message, "newest first")

	msgs, err := NewMessenger(l).History(2, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "Error: third", msgs[0].Message)
	assert.Equal(t, "Info: second", msgs[1].Message)

	errs, err := l.GetLogs(MessengerModule, "ERROR", 10, 0)
	require.NoError(t, err)
	require.Len(t, errs, 1)

	past, err := l.GetLogs("", "", 10, 10)
	require.NoError(t, err)
	assert.Empty(t, past)
}

func TestGetLogsMissingFile(t *testing.T) {
	l := NewFromZap(zap.NewNop(), filepath.Join(t.TempDir(), "missing.log"))

	entries, err := l.GetLogs("", "", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
