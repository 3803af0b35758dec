package grab

import (
	"image"
	"sync"
	"testing"
	"time"

	"github.com/soocke/screengrab-go/config"
	"github.com/soocke/screengrab-go/domain/capture"
)

// fakeBackend simulates a two-display virtual desktop. Each session emits
// solid-colored BGRA frames whose blue channel encodes the capture count,
// so frame freshness is visible in the assembled canvas. Per-display
// scripts can inject not-ready runs.
type fakeBackend struct {
	displays []capture.Display
	// notReadyBefore[i] not-ready responses precede every frame of display i
	// after the initial one.
	notReadyBefore map[int]int
	sessions       []*fakeSession
}

func (b *fakeBackend) Name() string { return "fake" }

func (b *fakeBackend) Displays() ([]capture.Display, error) {
	if len(b.displays) == 0 {
		return nil, capture.ErrNoDisplays
	}
	return b.displays, nil
}

func (b *fakeBackend) Open(d capture.Display) (capture.Session, error) {
	s := &fakeSession{display: d, notReadyBefore: b.notReadyBefore[d.Index]}
	b.sessions = append(b.sessions, s)
	return s, nil
}

type fakeSession struct {
	display        capture.Display
	notReadyBefore int
	frames         int
	pending        int
	primed         bool
	closed         bool
}

func (s *fakeSession) Display() capture.Display { return s.display }

func (s *fakeSession) TryFrame() (*capture.RawFrame, error) {
	if s.primed {
		if s.pending > 0 {
			s.pending--
			return nil, capture.ErrNotReady
		}
	}
	s.frames++
	s.primed = true
	s.pending = s.notReadyBefore
	w, h := s.display.Bounds.Dx(), s.display.Bounds.Dy()
	pix := make([]byte, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i+0] = byte(s.frames)             // B encodes the frame count
		pix[i+1] = byte(10 * s.display.Index) // G encodes the display
		pix[i+2] = 1
	}
	return &capture.RawFrame{Pix: pix, Width: w, Height: h, Stride: w * 4, Format: capture.FormatBGRA}, nil
}

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

// holdFor returns a HoldFunc that samples true exactly n times.
func holdFor(n int) HoldFunc {
	var mu sync.Mutex
	return func() bool {
		mu.Lock()
		defer mu.Unlock()
		n--
		return n >= 0
	}
}

// stepClock advances a fixed amount per reading.
func stepClock(step time.Duration) func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.ZeroRetrySleepMicros = 0
	return cfg
}

func newTestRunner(b capture.Backend, hold HoldFunc, step time.Duration) *Runner {
	r := NewRunner(b, testConfig(), nil, hold)
	r.SetClock(stepClock(step), func(time.Duration) {})
	return r
}

func twoDisplayBackend() *fakeBackend {
	return &fakeBackend{displays: []capture.Display{
		{Index: 0, Bounds: image.Rect(0, 0, 800, 600)},
		{Index: 1, Bounds: image.Rect(800, 0, 1600, 600)},
	}}
}

func TestRun_SingleFrameWhenNeverHeld(t *testing.T) {
	b := twoDisplayBackend()
	seq, err := newTestRunner(b, nil, 10*time.Millisecond).Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if seq.Len() != 1 || len(seq.Delays) != 1 {
		t.Fatalf("got %d frames / %d delays, want 1/1", seq.Len(), len(seq.Delays))
	}
	canvas := seq.Canvases[0]
	if canvas.Bounds().Dx() != 1600 || canvas.Bounds().Dy() != 600 {
		t.Fatalf("canvas %v, want 1600x600", canvas.Bounds())
	}
	if c := canvas.RGBAAt(10, 10); c.G != 0 || c.B != 1 {
		t.Fatalf("display 0 content wrong at (10,10): %v", c)
	}
	if c := canvas.RGBAAt(810, 10); c.G != 10 || c.B != 1 {
		t.Fatalf("display 1 content wrong at (810,10): %v", c)
	}
	if seq.RunID == "" {
		t.Fatalf("missing run id")
	}
	if seq.Origin != (image.Point{}) {
		t.Fatalf("origin %v, want (0,0)", seq.Origin)
	}
	for _, s := range b.sessions {
		if !s.closed {
			t.Fatalf("session %d left open", s.display.Index)
		}
	}
}

func TestRun_HeldThreeIterations(t *testing.T) {
	b := twoDisplayBackend()
	seq, err := newTestRunner(b, holdFor(3), 15*time.Millisecond).Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if seq.Len() != 4 || len(seq.Delays) != 4 {
		t.Fatalf("got %d frames / %d delays, want 4/4", seq.Len(), len(seq.Delays))
	}
	for i, d := range seq.Delays {
		if d == 0 {
			t.Fatalf("delay %d is zero with an advancing clock", i)
		}
	}
	// Every animated frame carries fresher content than its predecessor.
	for i := 1; i < seq.Len(); i++ {
		prev := seq.Canvases[i-1].RGBAAt(10, 10).B
		cur := seq.Canvases[i].RGBAAt(10, 10).B
		if cur != prev+1 {
			t.Fatalf("frame %d blue channel %d, want %d", i, cur, prev+1)
		}
	}
}

func TestRun_StarvedDisplayReusesPreviousRegion(t *testing.T) {
	b := twoDisplayBackend()
	// Display 1 starves past the 20-poll threshold on every animated cycle.
	b.notReadyBefore = map[int]int{1: 21}
	r := newTestRunner(b, holdFor(1), 10*time.Millisecond)
	seq, err := r.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if seq.Len() != 2 {
		t.Fatalf("got %d frames, want 2", seq.Len())
	}
	first, second := seq.Canvases[0], seq.Canvases[1]
	if !regionEqual(t, second, first, image.Rect(800, 0, 1600, 600)) {
		t.Fatalf("starved display's region must be pixel-identical to the previous frame")
	}
	if second.RGBAAt(10, 10).B != first.RGBAAt(10, 10).B+1 {
		t.Fatalf("healthy display's region must still refresh")
	}
	stats := r.Stats()
	if stats.PerDisplay[1].StaleReused != 1 {
		t.Fatalf("stale reuse not recorded: %+v", stats.PerDisplay[1])
	}
}

func TestRun_DelayClampsAtUint16Max(t *testing.T) {
	b := twoDisplayBackend()
	seq, err := newTestRunner(b, nil, 2*time.Minute).Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if seq.Delays[0] != 65535 {
		t.Fatalf("delay %d, want clamp to 65535", seq.Delays[0])
	}
}

func TestRun_NoDisplaysIsFatal(t *testing.T) {
	if _, err := newTestRunner(&fakeBackend{}, nil, time.Millisecond).Run(); err == nil {
		t.Fatalf("zero displays must abort the run")
	}
}

func TestRun_DimensionsStableAcrossRuns(t *testing.T) {
	var dims []image.Rectangle
	for i := 0; i < 2; i++ {
		seq, err := newTestRunner(twoDisplayBackend(), nil, 5*time.Millisecond).Run()
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		dims = append(dims, seq.Canvases[0].Bounds())
	}
	if dims[0] != dims[1] {
		t.Fatalf("canvas dimensions changed across runs: %v vs %v", dims[0], dims[1])
	}
}
