package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New("production", &buf)

	l.Debug("hidden")
	l.Info("visible", "key", "value")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "visible", rec["msg"])
	require.Equal(t, "value", rec["key"])
}

func TestNew_DevelopmentWritesDebugText(t *testing.T) {
	var buf bytes.Buffer
	l := New("development", &buf)

	l.Debug("details")

	require.Contains(t, buf.String(), "level=DEBUG")
	require.Contains(t, buf.String(), "msg=details")
}

func TestFrom_FallsBackToDefault(t *testing.T) {
	require.Same(t, slog.Default(), From(context.Background()))
}

func TestIntoFrom_RoundTrip(t *testing.T) {
	l := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := Into(context.Background(), l)
	require.Same(t, l, From(ctx))
}
