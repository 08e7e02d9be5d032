package pitchtrack

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agnivade/pitchtrack/capture"
	"github.com/agnivade/pitchtrack/estimator"
	"github.com/agnivade/pitchtrack/observe"
)

// EngineState is the lifecycle state of an Engine.
type EngineState int

const (
	Idle EngineState = iota
	Starting
	Running
	Restarting
	Stopping
)

func (s EngineState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Starting:
		return "starting"
	case Running:
		return "running"
	case Restarting:
		return "restarting"
	case Stopping:
		return "stopping"
	default:
		return fmt.Sprintf("EngineState(%d)", int(s))
	}
}

// Stats are cumulative engine counters.
type Stats struct {
	Frames       uint64
	ActiveFrames uint64
	Results      uint64
	Opens        uint64
	Restarts     uint64
	ReadErrors   uint64
}

type engineStats struct {
	frames       atomic.Uint64
	activeFrames atomic.Uint64
	results      atomic.Uint64
	opens        atomic.Uint64
	restarts     atomic.Uint64
	readErrors   atomic.Uint64
}

// Option configures an Engine.
type Option func(*Engine)

// OnResult sets the result callback. It runs on the worker goroutine, so it
// must hand results off quickly and must not call Stop.
func OnResult(fn func(TunerResult)) Option {
	return func(e *Engine) { e.onResult = fn }
}

// OnError sets the callback for errors that end the worker.
func OnError(fn func(error)) Option {
	return func(e *Engine) { e.onError = fn }
}

// OnStateChange sets the callback for lifecycle transitions.
func OnStateChange(fn func(EngineState)) Option {
	return func(e *Engine) { e.onState = fn }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.log = logger }
}

// WithMetrics sets the metric instruments. The default records nothing.
func WithMetrics(m *observe.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// Engine tracks pitch from a capture source on one worker goroutine.
type Engine struct {
	cfg     Config
	source  capture.Source
	factory estimator.Factory
	log     *slog.Logger
	metrics *observe.Metrics

	onResult func(TunerResult)
	onError  func(error)
	onState  func(EngineState)

	mu     sync.Mutex
	state  EngineState
	cancel context.CancelFunc
	done   chan struct{}
	err    error
	active *cycleHandle

	// emitMu orders result callbacks against Stop.
	emitMu   sync.Mutex
	emitOpen bool

	stats engineStats
}

// New validates cfg and returns an idle Engine.
func New(cfg Config, source capture.Source, factory estimator.Factory, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if source == nil {
		return nil, errors.New("nil capture source")
	}
	if factory == nil {
		return nil, errors.New("nil estimator factory")
	}

	e := &Engine{
		cfg:     cfg,
		source:  source,
		factory: factory,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	if e.metrics == nil {
		e.metrics = observe.Discard()
	}
	return e, nil
}

// Start spawns the worker. It is a no-op while the engine is running. It
// fails only while a Stop is in progress; open failures are reported
// through Err and OnError.
func (e *Engine) Start() error {
	e.mu.Lock()
	switch e.state {
	case Idle:
	case Stopping:
		e.mu.Unlock()
		return errors.New("engine is stopping")
	default:
		e.mu.Unlock()
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	e.cancel = cancel
	e.done = done
	e.err = nil
	e.state = Starting
	e.mu.Unlock()

	e.emitMu.Lock()
	e.emitOpen = true
	e.emitMu.Unlock()

	e.notifyState(Starting)
	e.log.Info("engine starting",
		"sample_rate", e.cfg.SampleRate,
		"frame_size", e.cfg.FrameSize,
		"prefer_float", e.cfg.PreferFloat,
	)
	go e.run(ctx, done)
	return nil
}

// Stop cancels the worker, unblocks its read, waits up to JoinTimeout and
// releases the capture cycle whether or not the worker exited. No result
// is delivered after Stop returns.
func (e *Engine) Stop() {
	e.mu.Lock()
	cancel, done := e.cancel, e.done
	if cancel == nil {
		e.mu.Unlock()
		return
	}
	e.cancel = nil
	e.state = Stopping
	e.mu.Unlock()
	e.notifyState(Stopping)

	cancel()

	// The worker registers a new cycle only while the context is live, so
	// any cycle opened before cancel is visible here.
	e.mu.Lock()
	h := e.active
	e.mu.Unlock()
	if h != nil {
		h.interrupt()
	}

	timer := time.NewTimer(e.cfg.JoinTimeout)
	defer timer.Stop()
	select {
	case <-done:
	case <-timer.C:
		e.log.Warn("worker did not exit in time", "timeout", e.cfg.JoinTimeout)
	}

	e.emitMu.Lock()
	e.emitOpen = false
	e.emitMu.Unlock()

	e.mu.Lock()
	h = e.active
	e.active = nil
	e.state = Idle
	e.mu.Unlock()
	if h != nil {
		h.release()
	}

	e.notifyState(Idle)
	e.log.Info("engine stopped")
}

// State returns the current lifecycle state.
func (e *Engine) State() EngineState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Err returns the error that ended the most recent worker, if any.
func (e *Engine) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// Done is closed when the most recent worker exits. It is closed already
// if the engine was never started.
func (e *Engine) Done() <-chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.done == nil {
		c := make(chan struct{})
		close(c)
		return c
	}
	return e.done
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Frames:       e.stats.frames.Load(),
		ActiveFrames: e.stats.activeFrames.Load(),
		Results:      e.stats.results.Load(),
		Opens:        e.stats.opens.Load(),
		Restarts:     e.stats.restarts.Load(),
		ReadErrors:   e.stats.readErrors.Load(),
	}
}

func (e *Engine) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer e.exit(done)
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("worker panic", "panic", r, "stack", string(debug.Stack()))
			e.fail(fmt.Errorf("%w: %v", ErrWorkerPanic, r))
		}
	}()

	w := e.newWorker()
	for {
		outcome, err := e.runCycle(ctx, w)
		switch w.policy.Next(outcome) {
		case ActionReopen:
			e.stats.restarts.Add(1)
			e.metrics.RecordRestart(ctx, outcome.String())
			e.log.Warn("restarting capture",
				"reason", outcome.String(),
				"restart", w.policy.Restarts(),
				"max_restarts", e.cfg.MaxFloatRestarts,
			)
			e.setState(Restarting)
		case ActionFail:
			if outcome == CycleReadError {
				err = fmt.Errorf("%w after %d restarts: %w", ErrRestartBudget, w.policy.Restarts(), err)
			}
			e.fail(err)
			return
		default:
			return
		}
	}
}

// exit returns the engine to Idle when the worker ended on its own.
func (e *Engine) exit(done chan struct{}) {
	e.mu.Lock()
	if e.done != done || e.cancel == nil {
		// Stop owns the transition.
		e.mu.Unlock()
		return
	}
	e.cancel()
	e.cancel = nil
	e.state = Idle
	e.mu.Unlock()
	e.notifyState(Idle)
}

func (e *Engine) fail(err error) {
	e.log.Error("engine worker failed", "error", err)
	e.mu.Lock()
	e.err = err
	e.mu.Unlock()
	if e.onError != nil {
		e.onError(err)
	}
}

// register publishes h as the active cycle unless the engine is stopping.
func (e *Engine) register(ctx context.Context, h *cycleHandle) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if ctx.Err() != nil {
		return false
	}
	e.active = h
	return true
}

func (e *Engine) releaseCycle(h *cycleHandle) {
	e.mu.Lock()
	if e.active == h {
		e.active = nil
	}
	e.mu.Unlock()
	h.release()
}

// setState moves the worker between Running and Restarting. Stop's
// transitions take precedence.
func (e *Engine) setState(s EngineState) {
	e.mu.Lock()
	if e.state == Stopping || e.state == Idle || e.state == s {
		e.mu.Unlock()
		return
	}
	e.state = s
	e.mu.Unlock()
	e.notifyState(s)
}

func (e *Engine) notifyState(s EngineState) {
	if e.onState != nil {
		e.onState(s)
	}
}

func (e *Engine) emit(res TunerResult) {
	e.emitMu.Lock()
	defer e.emitMu.Unlock()
	if !e.emitOpen {
		return
	}
	e.stats.results.Add(1)
	e.metrics.Results.Add(context.Background(), 1)
	if e.onResult != nil {
		e.onResult(res)
	}
}
