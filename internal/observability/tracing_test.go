package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{
		ServiceName: "learnhub-test",
		Enabled:     false,
	})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracing_Enabled(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{
		ServiceName:    "learnhub-test",
		ServiceVersion: "test",
		Environment:    "test",
		Enabled:        true,
		SamplerRatio:   1.0,
	})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NotNil(t, Tracer)
	assert.NoError(t, shutdown(context.Background()))
}

func TestRecordErrorInContext_NoSpan(t *testing.T) {
	// Must be a no-op when the context carries no span.
	RecordErrorInContext(context.Background(), errors.New("boom"))
}
