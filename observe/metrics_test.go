package observe

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp)
	require.NoError(t, err)
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func sumByAttr(t *testing.T, m *metricdata.Metrics, key, value string) int64 {
	t.Helper()
	require.NotNil(t, m)
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is %T", m.Name, m.Data)

	var total int64
	for _, dp := range sum.DataPoints {
		if v, ok := dp.Attributes.Value(attribute.Key(key)); ok && v.AsString() == value {
			total += dp.Value
		}
	}
	return total
}

func TestRecordFrame(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordFrame(ctx, true)
	m.RecordFrame(ctx, false)
	m.RecordFrame(ctx, false)

	frames := findMetric(collect(t, reader), "pitchtrack.frames")
	assert.Equal(t, int64(1), sumByAttr(t, frames, "state", FrameActive))
	assert.Equal(t, int64(2), sumByAttr(t, frames, "state", FrameSilent))
}

func TestRecordRestart(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordRestart(ctx, "stuck")
	m.RecordRestart(ctx, "stuck")
	m.RecordRestart(ctx, "read_error")

	restarts := findMetric(collect(t, reader), "pitchtrack.capture.restarts")
	assert.Equal(t, int64(2), sumByAttr(t, restarts, "reason", "stuck"))
	assert.Equal(t, int64(1), sumByAttr(t, restarts, "reason", "read_error"))
}

func TestRecordEstimate(t *testing.T) {
	m, reader := newTestMetrics(t)

	m.RecordEstimate(context.Background(), 3*time.Millisecond)

	got := findMetric(collect(t, reader), "pitchtrack.estimate.duration")
	require.NotNil(t, got)
	hist, ok := got.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(1), hist.DataPoints[0].Count)
	assert.InDelta(t, 0.003, hist.DataPoints[0].Sum, 1e-9)
}

func TestDiscard(t *testing.T) {
	m := Discard()
	require.NotNil(t, m)
	assert.NotPanics(t, func() {
		m.RecordFrame(context.Background(), true)
		m.Results.Add(context.Background(), 1)
		m.Subscribers.Add(context.Background(), -1)
	})
}
