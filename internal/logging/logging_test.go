package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatAuto, "auto": FormatAuto, "text": FormatText, "json": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestNewHandler_AutoIsJSONForBuffers(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(Options{Writer: &buf}))

	logger.Info("hello", "n", 3)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, 3.0, line["n"])
}

func TestNewHandler_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(Options{Writer: &buf, Format: FormatText}))

	logger.Info("hello", "n", 3)

	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "n=3")
	assert.NotContains(t, buf.String(), "\x1b[", "no color codes when not a terminal")
}

func TestNewHandler_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(Options{Writer: &buf, Level: slog.LevelWarn}))

	logger.Info("quiet")
	assert.Zero(t, buf.Len())

	logger.Warn("loud")
	assert.NotZero(t, buf.Len())
}

func TestSetup(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	var buf bytes.Buffer
	Setup(Options{Writer: &buf, Format: FormatJSON, Level: slog.LevelDebug})
	slog.Debug("via default")

	assert.Contains(t, buf.String(), "via default")
}

func TestContextLogger(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, nil)).With("request_id", "abc")
	ctx := WithLogger(context.Background(), l)

	FromContext(ctx).Info("scoped")
	assert.Contains(t, buf.String(), `"request_id":"abc"`)
}

func TestAddIf(t *testing.T) {
	attrs := AddIf(nil, "email", "")
	attrs = AddIf(attrs, "role", "Admin")
	attrs = AddIf(attrs, "ts", int64(0))

	assert.Equal(t, []any{"role", "Admin"}, attrs)
}
