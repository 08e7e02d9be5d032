package pitchtrack

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/agnivade/pitchtrack/capture"
	"github.com/agnivade/pitchtrack/estimator"
)

// cycleHandle owns the stream and estimator of one capture cycle. It is
// released exactly once, by the worker at cycle end or by Stop when the
// worker did not exit in time.
type cycleHandle struct {
	stream capture.Stream
	est    estimator.Estimator
	log    *slog.Logger

	releaseOnce sync.Once
}

// interrupt unblocks a pending read without releasing anything.
func (h *cycleHandle) interrupt() {
	swallow(h.log, "stop capture stream", h.stream.Stop)
}

func (h *cycleHandle) release() {
	h.releaseOnce.Do(func() {
		swallow(h.log, "stop capture stream", h.stream.Stop)
		swallow(h.log, "close capture stream", h.stream.Close)
		if h.est != nil {
			swallow(h.log, "close estimator", h.est.Close)
		}
	})
}

// swallow runs a teardown step, logging its error or panic.
func swallow(log *slog.Logger, what string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			log.Debug(what+" panicked", "panic", r)
		}
	}()
	if err := fn(); err != nil {
		log.Debug(what+" failed", "error", err)
	}
}

// worker is the pipeline state that lives for one Start.
type worker struct {
	policy   *RecoveryPolicy
	smoother *Smoother
	frame    []float32
	frames   int
	degraded bool
}

func (e *Engine) newWorker() *worker {
	return &worker{
		policy:   NewRecoveryPolicy(e.cfg.MaxFloatRestarts),
		smoother: NewSmoother(e.cfg.SmoothWindow),
		frame:    make([]float32, e.cfg.FrameSize),
	}
}

// runCycle opens, streams and releases one capture cycle and returns the
// state it ended in.
func (e *Engine) runCycle(ctx context.Context, w *worker) (CycleState, error) {
	if ctx.Err() != nil {
		return CycleDraining, nil
	}

	h, err := e.openCycle()
	if err != nil {
		return CycleOpenFailed, err
	}
	defer e.releaseCycle(h)

	if !e.register(ctx, h) {
		return CycleDraining, nil
	}
	e.setState(Running)
	return e.streamCycle(ctx, w, h)
}

func (e *Engine) openCycle() (*cycleHandle, error) {
	enc := capture.Int16
	if e.cfg.PreferFloat {
		enc = capture.Float32
	}

	stream, err := e.source.Open(capture.StreamConfig{
		SampleRate: e.cfg.SampleRate,
		Encoding:   enc,
		BufferSize: e.cfg.HopSize(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: open %s stream at %d Hz: %w", ErrOpen, enc, e.cfg.SampleRate, err)
	}
	e.stats.opens.Add(1)
	h := &cycleHandle{stream: stream, log: e.log}

	if got := stream.Encoding(); got != enc {
		h.release()
		return nil, fmt.Errorf("%w: device opened a %s stream, want %s", ErrOpen, got, enc)
	}

	est, err := e.factory(e.cfg.SampleRate, e.cfg.FrameSize)
	if err != nil {
		h.release()
		return nil, fmt.Errorf("%w: create estimator: %w", ErrOpen, err)
	}
	h.est = est

	if err := stream.Start(); err != nil {
		h.release()
		return nil, fmt.Errorf("%w: start stream: %w", ErrOpen, err)
	}
	e.log.Debug("capture cycle opened", "encoding", enc.String(), "sample_rate", e.cfg.SampleRate)
	return h, nil
}

// streamCycle runs the per-frame loop until cancellation, a read error or
// stuck input.
func (e *Engine) streamCycle(ctx context.Context, w *worker, h *cycleHandle) (CycleState, error) {
	buf := NewRollingBuffer(e.cfg.FrameSize, e.cfg.HopSize())
	gate := NewSignalGate(e.cfg.LevelThreshold, e.cfg.ZeroPeakEpsilon)
	read := StreamReader(h.stream, buf.Hop())
	watchStuck := h.stream.Encoding() == capture.Float32

	if err := buf.Fill(ctx, read); err != nil {
		return e.readOutcome(ctx, err)
	}

	for {
		if ctx.Err() != nil {
			return CycleDraining, nil
		}

		w.frames++
		e.stats.frames.Add(1)
		frame := buf.Frame(w.frame)
		peak, active := gate.Observe(frame)

		if w.frames%e.cfg.LogEvery == 0 {
			e.log.Debug("capture loop",
				"frame", w.frames,
				"peak", peak,
				"zero_run", gate.ZeroRun(),
				"restarts", w.policy.Restarts(),
			)
		}

		if watchStuck && gate.ZeroRun() >= e.cfg.ZeroPeakFramesToRestart {
			if w.policy.CanRestart() {
				return CycleStuck, nil
			}
			if !w.degraded {
				e.log.Warn("capture stuck at zero with no restarts left; treating as silence",
					"zero_run", gate.ZeroRun(),
					"restarts", w.policy.Restarts(),
				)
				w.degraded = true
			}
			gate.ClampZeroRun(e.cfg.ZeroPeakFramesToRestart)
		}

		e.metrics.RecordFrame(ctx, active)
		if active {
			e.stats.activeFrames.Add(1)
			e.estimate(ctx, w, h.est, frame)
		}

		if err := buf.Advance(ctx, read); err != nil {
			return e.readOutcome(ctx, err)
		}
	}
}

// readOutcome classifies a Fill or Advance error. Cancellation wins over
// the error a stopped stream returns.
func (e *Engine) readOutcome(ctx context.Context, err error) (CycleState, error) {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return CycleDraining, nil
	}
	e.stats.readErrors.Add(1)
	e.metrics.ReadErrors.Add(ctx, 1)
	e.log.Error("capture read failed", "error", err)
	return CycleReadError, err
}

func (e *Engine) estimate(ctx context.Context, w *worker, est estimator.Estimator, frame []float32) {
	start := time.Now()
	hz := est.Estimate(frame)
	e.metrics.RecordEstimate(ctx, time.Since(start))
	if !estimator.Valid(hz) {
		return
	}

	note := NoteFromFrequency(hz, e.cfg.ReferenceHz)
	e.emit(w.smoother.Add(TunerResult{
		PitchHz:  hz,
		NoteName: note.Label(),
		CentsOff: note.Cents,
	}))
}
