package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/orderpad/backend/internal/infrastructure/config"
)

func TestNewMeterProvider_Disabled(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		cfg  config.TelemetryConfig
	}{
		{"telemetry off", config.TelemetryConfig{Enabled: false, MetricsEnabled: true}},
		{"metrics off", config.TelemetryConfig{Enabled: true, MetricsEnabled: false, CollectorEndpoint: "localhost:4317"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mp, err := NewMeterProvider(ctx, tt.cfg, zaptest.NewLogger(t))
			require.NoError(t, err)
			assert.False(t, mp.IsEnabled())
			assert.NotNil(t, mp.Meter("test"))
			assert.NoError(t, mp.Shutdown(ctx))
		})
	}
}

func TestNewMeterProvider_NoopMeterBuildsInstruments(t *testing.T) {
	mp, err := NewMeterProvider(context.Background(), config.TelemetryConfig{}, zaptest.NewLogger(t))
	require.NoError(t, err)

	m, err := NewOrderingMetrics(mp.Meter("orderpad"))
	require.NoError(t, err)
	assert.NotPanics(t, func() {
		m.RecordApply(context.Background(), "Weekday", 3)
	})
}
