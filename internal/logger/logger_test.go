package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdoutHandler_ProductionWritesJSONAtInfo(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(stdoutHandler(&buf, false))

	l.Debug("hidden")
	l.Info("pin created", "pin_id", "p-1")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "pin created", rec["msg"])
	assert.Equal(t, "p-1", rec["pin_id"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestStdoutHandler_DevelopmentEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	h := stdoutHandler(&buf, true)

	assert.True(t, h.Enabled(context.Background(), slog.LevelDebug))
	slog.New(h).Debug("follow toggled", "user_id", "u-1")
	assert.Contains(t, buf.String(), "user_id=u-1")
}

func TestInit_WithoutSentrySetsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	flush := Init(Options{Dev: true})
	require.NotNil(t, flush)
	flush()

	assert.NotSame(t, prev, slog.Default())
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))
}
