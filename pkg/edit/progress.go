package edit

import "sync/atomic"

// Progress receives batch progress and can request a cooperative abort.
// ShouldAbort is polled after each facet.
type Progress interface {
	ReportProgress(fraction float64)
	ShouldAbort() bool
}

type noProgress struct{}

func (noProgress) ReportProgress(float64) {}
func (noProgress) ShouldAbort() bool      { return false }

// AbortFlag is a Progress that can be aborted from another goroutine,
// typically a signal handler.
type AbortFlag struct {
	// OnProgress is called with each reported fraction when set
	OnProgress func(fraction float64)

	aborted atomic.Bool
}

// Abort requests the running batch to stop after the current facet
func (a *AbortFlag) Abort() {
	a.aborted.Store(true)
}

func (a *AbortFlag) ReportProgress(fraction float64) {
	if a.OnProgress != nil {
		a.OnProgress(fraction)
	}
}

func (a *AbortFlag) ShouldAbort() bool {
	return a.aborted.Load()
}
