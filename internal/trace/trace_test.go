package trace

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("LOG_TRACING_ENABLED", "false")
	t.Setenv("LOG_TRACE_SAMPLE_RATIO", "0.25")
	cfg := LoadConfigFromEnv()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 0.25, cfg.SampleRatio)

	t.Setenv("LOG_TRACE_SAMPLE_RATIO", "lots")
	assert.Equal(t, 1.0, LoadConfigFromEnv().SampleRatio)
}

func TestDisabledTracingIsNoop(t *testing.T) {
	require.NoError(t, InitWithConfig(Config{Enabled: false}))
	assert.False(t, Enabled())

	ctx := context.Background()
	got, span := StartSpan(ctx, "noop")
	defer span.End()
	assert.Equal(t, ctx, got)

	_, _, ok := GetTraceFields(got)
	assert.False(t, ok)
}

func TestEnabledTracingExportsSpans(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitWithConfig(Config{Enabled: true, SampleRatio: 1, Writer: &buf}))
	t.Cleanup(func() { enabled = false })
	assert.True(t, Enabled())

	ctx, span := StartSpan(context.Background(), "advisor.test", attribute.String("product_id", "tv-55"))
	traceID, spanID, ok := GetTraceFields(ctx)
	require.True(t, ok)
	assert.Len(t, traceID, 32)
	assert.Len(t, spanID, 16)
	span.End()

	require.NoError(t, Shutdown(context.Background()))
	assert.Contains(t, buf.String(), "advisor.test")
	assert.Contains(t, buf.String(), "tv-55")
}
