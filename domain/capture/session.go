package capture

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Acquirer wraps one display's Session with the run's retry policies. It is
// owned by a single control goroutine; nothing here is safe for concurrent
// use, and nothing needs to be.
type Acquirer struct {
	sess      Session
	logger    *slog.Logger
	threshold int
	zeroSleep time.Duration
	sleep     func(time.Duration)
	stats     AcquireStats
}

// NewAcquirer builds an Acquirer. threshold is the not-ready budget per
// animated cycle; zeroSleep is the pause between retries of a discarded
// all-zero frame.
func NewAcquirer(sess Session, logger *slog.Logger, threshold int, zeroSleep time.Duration) *Acquirer {
	if threshold <= 0 {
		threshold = 20
	}
	return &Acquirer{sess: sess, logger: logger, threshold: threshold, zeroSleep: zeroSleep, sleep: time.Sleep}
}

// SetSleep replaces the pause function. Tests inject a no-op so retry
// schedules run without real time passing.
func (a *Acquirer) SetSleep(fn func(time.Duration)) {
	if fn != nil {
		a.sleep = fn
	}
}

func (a *Acquirer) Display() Display    { return a.sess.Display() }
func (a *Acquirer) Stats() AcquireStats { return a.stats }

// Close releases the underlying session.
func (a *Acquirer) Close() error { return a.sess.Close() }

// AcquireInitial blocks until the session yields a usable frame. Not-ready
// is retried without bound; an all-zero buffer is a known artifact right
// after session start and is discarded and retried the same way. Any other
// error is fatal for the run.
func (a *Acquirer) AcquireInitial() (*RawFrame, error) {
	for {
		f, err := a.sess.TryFrame()
		if errors.Is(err, ErrNotReady) {
			a.stats.NotReady++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("capture: display %d: %w", a.sess.Display().Index, err)
		}
		if f.IsZero() {
			a.stats.ZeroFrames++
			if a.logger != nil {
				a.logger.Debug("discarding all-zero frame", "display", a.sess.Display().Index)
			}
			a.sleep(a.zeroSleep)
			continue
		}
		a.stats.Frames++
		return f, nil
	}
}

// AcquireNext performs one animated-cycle acquisition. Not-ready is retried
// up to the threshold; past it, with allowStale set, the cycle degrades to
// reusing the previous frame's region (stale=true, nil frame) so a lagging
// display cannot stall the whole sequence. Without a previous frame the
// starvation is fatal. The zero filter does not apply here: mid-sequence a
// black scene is legitimate content.
func (a *Acquirer) AcquireNext(allowStale bool) (*RawFrame, bool, error) {
	notReady := 0
	for {
		f, err := a.sess.TryFrame()
		if errors.Is(err, ErrNotReady) {
			notReady++
			a.stats.NotReady++
			if notReady > a.threshold {
				if allowStale {
					a.stats.StaleReused++
					if a.logger != nil {
						a.logger.Debug("display starved, reusing previous region",
							"display", a.sess.Display().Index, "polls", notReady)
					}
					return nil, true, nil
				}
				return nil, false, fmt.Errorf("capture: display %d starved after %d polls with no prior frame",
					a.sess.Display().Index, notReady)
			}
			continue
		}
		if err != nil {
			return nil, false, fmt.Errorf("capture: display %d: %w", a.sess.Display().Index, err)
		}
		a.stats.Frames++
		return f, false, nil
	}
}
