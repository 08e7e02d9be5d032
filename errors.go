package pitchtrack

import "errors"

var (
	// ErrOpen means the capture device or estimator could not be
	// initialized. It is fatal for the Start that hit it.
	ErrOpen = errors.New("pitchtrack: open capture cycle")

	// ErrRead wraps a failed device read.
	ErrRead = errors.New("pitchtrack: read capture stream")

	// ErrRestartBudget is reported when a read error arrives after every
	// allowed reopen has been used.
	ErrRestartBudget = errors.New("pitchtrack: restart budget exhausted")

	// ErrWorkerPanic is reported when the worker loop panicked.
	ErrWorkerPanic = errors.New("pitchtrack: worker panic")
)
