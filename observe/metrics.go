// Package observe holds the OpenTelemetry instruments for the pitch
// tracker. Metrics are exported for scraping through the Prometheus bridge
// set up by InitProvider; tests build Metrics on their own MeterProvider.
package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const meterName = "github.com/agnivade/pitchtrack"

// Frame states used as the "state" attribute of the frames counter.
const (
	FrameSilent = "silent"
	FrameActive = "active"
)

// Metrics holds every instrument. All fields are safe for concurrent use.
type Metrics struct {
	// Frames counts analysed frames by state (silent, active).
	Frames metric.Int64Counter

	// EstimateDuration is the estimator latency per active frame.
	EstimateDuration metric.Float64Histogram

	// Results counts emitted pitch results.
	Results metric.Int64Counter

	// Restarts counts capture reopens by reason (stuck, read_error).
	Restarts metric.Int64Counter

	// ReadErrors counts failed device reads.
	ReadErrors metric.Int64Counter

	// Subscribers is the number of connected result subscribers.
	Subscribers metric.Int64UpDownCounter

	// Dropped counts results dropped for slow subscribers.
	Dropped metric.Int64Counter
}

// estimateBuckets are in seconds; a 4096 sample YIN frame takes a few ms.
var estimateBuckets = []float64{
	0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1,
}

// NewMetrics creates the instruments on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.Frames, err = m.Int64Counter("pitchtrack.frames",
		metric.WithDescription("Analysed frames by gate state."),
	); err != nil {
		return nil, err
	}
	if met.EstimateDuration, err = m.Float64Histogram("pitchtrack.estimate.duration",
		metric.WithDescription("Latency of one pitch estimate."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(estimateBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Results, err = m.Int64Counter("pitchtrack.results",
		metric.WithDescription("Emitted pitch results."),
	); err != nil {
		return nil, err
	}
	if met.Restarts, err = m.Int64Counter("pitchtrack.capture.restarts",
		metric.WithDescription("Capture stream reopens by reason."),
	); err != nil {
		return nil, err
	}
	if met.ReadErrors, err = m.Int64Counter("pitchtrack.capture.read_errors",
		metric.WithDescription("Failed capture reads."),
	); err != nil {
		return nil, err
	}
	if met.Subscribers, err = m.Int64UpDownCounter("pitchtrack.subscribers",
		metric.WithDescription("Connected result subscribers."),
	); err != nil {
		return nil, err
	}
	if met.Dropped, err = m.Int64Counter("pitchtrack.results.dropped",
		metric.WithDescription("Results dropped for slow subscribers."),
	); err != nil {
		return nil, err
	}
	return met, nil
}

// Discard returns Metrics that record nothing.
func Discard() *Metrics {
	met, err := NewMetrics(noop.NewMeterProvider())
	if err != nil {
		panic("observe: noop metrics: " + err.Error())
	}
	return met
}

// RecordFrame counts one frame as active or silent.
func (m *Metrics) RecordFrame(ctx context.Context, active bool) {
	state := FrameSilent
	if active {
		state = FrameActive
	}
	m.Frames.Add(ctx, 1, metric.WithAttributes(attribute.String("state", state)))
}

// RecordEstimate records the latency of one estimator call.
func (m *Metrics) RecordEstimate(ctx context.Context, d time.Duration) {
	m.EstimateDuration.Record(ctx, d.Seconds())
}

// RecordRestart counts one capture reopen.
func (m *Metrics) RecordRestart(ctx context.Context, reason string) {
	m.Restarts.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
