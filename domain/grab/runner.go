package grab

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/soocke/screengrab-go/config"
	"github.com/soocke/screengrab-go/domain/capture"
)

// HoldFunc reports whether the hold condition (typically a held key) is
// currently engaged. It is sampled once at the top of every animated
// iteration and is the loop's only termination input.
type HoldFunc func() bool

// Runner drives one capture run: enumeration, session setup, the initial
// full assembly, then the animated loop for as long as the hold condition
// samples true. Single control goroutine; sessions are polled sequentially
// within a cycle.
type Runner struct {
	backend capture.Backend
	cfg     *config.Config
	logger  *slog.Logger
	hold    HoldFunc

	now   func() time.Time
	sleep func(time.Duration)

	stats capture.RunStats
}

// NewRunner builds a Runner. hold may be nil, in which case only the
// initial frame is produced.
func NewRunner(backend capture.Backend, cfg *config.Config, logger *slog.Logger, hold HoldFunc) *Runner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Runner{
		backend: backend,
		cfg:     cfg,
		logger:  logger,
		hold:    hold,
		now:     time.Now,
		sleep:   time.Sleep,
	}
}

// SetClock replaces the wall clock and sleep functions for tests.
func (r *Runner) SetClock(now func() time.Time, sleep func(time.Duration)) {
	if now != nil {
		r.now = now
	}
	if sleep != nil {
		r.sleep = sleep
	}
}

// Stats returns counters for the most recent Run.
func (r *Runner) Stats() capture.RunStats { return r.stats }

// Run performs one full capture run and returns the accumulated sequence.
// The sequence always has at least the initial frame; further frames are
// appended while the hold condition stays engaged.
func (r *Runner) Run() (*FrameSequence, error) {
	start := r.now()

	displays, err := r.backend.Displays()
	if err != nil {
		return nil, fmt.Errorf("enumerate displays: %w", err)
	}
	asm, err := NewAssembler(displays)
	if err != nil {
		return nil, err
	}

	acquirers := make([]*capture.Acquirer, 0, len(displays))
	defer func() {
		for _, a := range acquirers {
			_ = a.Close()
		}
	}()
	zeroSleep := time.Duration(r.cfg.ZeroRetrySleepMicros) * time.Microsecond
	for _, d := range displays {
		sess, err := r.backend.Open(d)
		if err != nil {
			return nil, fmt.Errorf("open display %d: %w", d.Index, err)
		}
		a := capture.NewAcquirer(sess, r.logger, r.cfg.RetryThreshold, zeroSleep)
		a.SetSleep(r.sleep)
		acquirers = append(acquirers, a)
	}

	seq := &FrameSequence{RunID: uuid.NewString(), Origin: asm.Bounds().Min}
	if r.logger != nil {
		r.logger.Debug("capture run started",
			"run_id", seq.RunID,
			"displays", len(displays),
			"bounds", asm.Bounds().String(),
			"backend", r.backend.Name(),
		)
	}

	// Initial full cycle. Blocks until every display delivers.
	canvas, err := r.cycle(acquirers, asm, nil)
	if err != nil {
		return nil, err
	}
	seq.append(canvas, r.now().Sub(start))
	prevTime := r.now()

	// Animated loop. The hold sample at the top is the only exit.
	for r.hold != nil && r.hold() {
		canvas, err := r.cycle(acquirers, asm, seq.last())
		if err != nil {
			return nil, err
		}
		seq.append(canvas, r.now().Sub(prevTime))
		prevTime = r.now()
	}

	r.stats = capture.RunStats{
		Displays:   len(displays),
		Frames:     seq.Len(),
		Elapsed:    r.now().Sub(start),
		PerDisplay: make([]capture.AcquireStats, len(acquirers)),
	}
	for i, a := range acquirers {
		r.stats.PerDisplay[i] = a.Stats()
	}
	return seq, nil
}

// cycle acquires one frame per display, converts, and composes a canvas.
// prev is nil for the initial cycle: acquisition then blocks until ready
// and filters spurious all-zero buffers. With prev set, per-display
// acquisition is bounded and may degrade to reusing prev's region.
func (r *Runner) cycle(acquirers []*capture.Acquirer, asm *Assembler, prev *image.RGBA) (*image.RGBA, error) {
	subs := make([]SubFrame, 0, len(acquirers))
	defer func() {
		for _, s := range subs {
			capture.RecycleFrame(s.Image)
		}
	}()

	for _, a := range acquirers {
		var (
			raw   *capture.RawFrame
			stale bool
			err   error
		)
		if prev == nil {
			raw, err = a.AcquireInitial()
		} else {
			raw, stale, err = a.AcquireNext(true)
		}
		if err != nil {
			return nil, err
		}
		if stale {
			subs = append(subs, SubFrame{Display: a.Display(), Kind: SubFrameStale})
			continue
		}
		img, err := capture.ToRGBA(raw)
		if err != nil {
			return nil, fmt.Errorf("convert display %d: %w", a.Display().Index, err)
		}
		subs = append(subs, SubFrame{Display: a.Display(), Kind: SubFrameCaptured, Image: img})
	}
	return asm.Compose(subs, prev)
}
