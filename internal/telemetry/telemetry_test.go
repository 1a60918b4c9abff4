package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	cli, err := NewCLILogger("error")
	require.NoError(t, err)
	assert.False(t, cli.Core().Enabled(zapcore.WarnLevel))
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetricsWithRegistry(reg)

	m.RecordRequest("create_shipment", "aramex", "success", 0.2)
	m.RecordRequest("create_shipment", "aramex", "success", 0.1)
	m.RecordError("aramex", "carrier_api")
	m.RecordPersistenceError()
	m.RecordEvent("shipment.created", "success")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("create_shipment", "aramex", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CarrierErrors.WithLabelValues("aramex", "carrier_api")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PersistenceErrors))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublished.WithLabelValues("shipment.created", "success")))

	count, err := testutil.GatherAndCount(reg, "aramexbridge_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
