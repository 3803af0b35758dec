package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/soocke/screengrab-go/config"
	"github.com/soocke/screengrab-go/debug"
	"github.com/soocke/screengrab-go/domain/capture"
	"github.com/soocke/screengrab-go/domain/grab"
	"github.com/soocke/screengrab-go/domain/input"
)

const debugLogInterval = 2 * time.Second

// App wires the capture engine together: backend selection, hold-key
// input, debug instrumentation, and the run itself. The resulting
// FrameSequence is handed to OnSequence (cropping/encoding live outside
// this module).
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	// OnSequence, when set, receives the finished sequence of a Run.
	OnSequence func(*grab.FrameSequence)
}

// NewApp builds an App from validated configuration.
func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	_ = cfg.Validate()
	return &App{cfg: cfg, logger: logger}
}

// Run performs one capture run and returns its sequence. The run blocks
// until the initial canvas is assembled and the hold key is released.
func (a *App) Run() (*grab.FrameSequence, error) {
	if a.cfg.Debug {
		debug.StartGoroutineLogger(debugLogInterval, a.logger)
		startPlatformDebug(debugLogInterval, a.logger)
	}

	backend, err := capture.NewBackend(a.cfg.Backend, a.logger)
	if err != nil {
		return nil, fmt.Errorf("select backend: %w", err)
	}
	hold := input.NewKeyHold(a.cfg.HoldKey)

	runner := grab.NewRunner(backend, a.cfg, a.logger, hold.Held)
	seq, err := runner.Run()
	if err != nil {
		return nil, err
	}

	a.logSummary(seq, runner.Stats())
	if a.OnSequence != nil {
		a.OnSequence(seq)
	}
	return seq, nil
}

func (a *App) logSummary(seq *grab.FrameSequence, stats capture.RunStats) {
	if a.logger == nil {
		return
	}
	first := seq.Canvases[0].Bounds()
	total := stats.Total()
	a.logger.Info("capture run finished",
		"run_id", seq.RunID,
		"frames", seq.Len(),
		"canvas", fmt.Sprintf("%dx%d", first.Dx(), first.Dy()),
		"origin", seq.Origin.String(),
		"displays", stats.Displays,
		"elapsed", stats.Elapsed,
		"not_ready_polls", total.NotReady,
		"zero_frames", total.ZeroFrames,
		"stale_reused", total.StaleReused,
	)
}
