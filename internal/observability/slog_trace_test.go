package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/geocoder89/opay/internal/actorctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func logLine(t *testing.T, ctx context.Context) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	log := slog.New(NewTraceHandler(slog.NewJSONHandler(&buf, nil)))
	log.InfoContext(ctx, "view_opened", "page", "login")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line
}

func TestTraceHandler_AddsDeviceFromContext(t *testing.T) {
	ctx := actorctx.WithDeviceID(context.Background(), "dev-42")

	line := logLine(t, ctx)

	assert.Equal(t, "dev-42", line["device_id"])
	assert.NotContains(t, line, "trace_id")
}

func TestTraceHandler_AddsSpanIDs(t *testing.T) {
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1},
		SpanID:     trace.SpanID{2},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	line := logLine(t, ctx)

	assert.Equal(t, sc.TraceID().String(), line["trace_id"])
	assert.Equal(t, sc.SpanID().String(), line["span_id"])
	assert.NotContains(t, line, "device_id")
}
