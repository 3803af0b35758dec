package capture

import "time"

// AcquireStats summarises one display's acquisition behaviour over a run.
type AcquireStats struct {
	Frames      uint64 // frames accepted
	NotReady    uint64 // transient not-ready polls absorbed
	ZeroFrames  uint64 // spurious all-zero first frames discarded
	StaleReused uint64 // animated cycles degraded to the previous region
}

// RunStats summarises one full capture run for instrumentation.
type RunStats struct {
	Displays   int
	Frames     int
	Elapsed    time.Duration
	PerDisplay []AcquireStats
}

// Total folds the per-display counters into one AcquireStats.
func (r RunStats) Total() AcquireStats {
	var t AcquireStats
	for _, s := range r.PerDisplay {
		t.Frames += s.Frames
		t.NotReady += s.NotReady
		t.ZeroFrames += s.ZeroFrames
		t.StaleReused += s.StaleReused
	}
	return t
}
