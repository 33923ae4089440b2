package telemetry

import (
	"testing"

	"github.com/aaravmahajanofficial/bookstore-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetup(t *testing.T) {

	t.Run("No Exporter", func(t *testing.T) {
		shutdown, err := Setup(t.Context(), config.Otel{ServiceName: "bookstore-test", SamplerRatio: 1}, "test")
		require.NoError(t, err)

		_, span := otel.Tracer("test").Start(t.Context(), "op")
		assert.True(t, span.SpanContext().IsValid())
		assert.True(t, span.SpanContext().IsSampled())
		span.End()

		require.NoError(t, shutdown(t.Context()))
	})

	t.Run("Ratio Zero Drops Root Spans", func(t *testing.T) {
		shutdown, err := Setup(t.Context(), config.Otel{ServiceName: "bookstore-test", SamplerRatio: 0}, "test")
		require.NoError(t, err)

		_, span := otel.Tracer("test").Start(t.Context(), "op")
		assert.False(t, span.SpanContext().IsSampled())
		span.End()

		require.NoError(t, shutdown(t.Context()))
	})
}
