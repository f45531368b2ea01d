package tracer

import (
	"context"
	"math"
	"testing"
	"time"

	"brainmode-be/internal/config"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
)

func TestSampleRatio(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  float64
	}{
		{"full", 1, 1},
		{"quarter", 0.25, 0.25},
		{"none", 0, 0},
		{"above one", 1.5, 1},
		{"negative", -1, 1},
		{"nan", math.NaN(), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sampleRatio(tt.ratio))
		})
	}
}

func TestInitTracerDisabled(t *testing.T) {
	shutdown := InitTracer(config.TracingConfig{Enabled: false, Endpoint: "localhost:4318"})
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracerEnabledInstallsProvider(t *testing.T) {
	shutdown := InitTracer(config.TracingConfig{
		Enabled:     true,
		Endpoint:    "127.0.0.1:1",
		ServiceName: "brain-test",
		SampleRatio: 1,
	})
	defer func() {
		// Nothing listens on the endpoint, so do not wait for the export to give up.
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		_ = shutdown(ctx)
	}()

	_, span := otel.Tracer("brainmode-be/internal/tracer").Start(context.Background(), "op")
	assert.True(t, span.SpanContext().IsValid())
	span.End()
}
