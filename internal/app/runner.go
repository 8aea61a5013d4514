package app

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-co-op/gocron/v2"
	"github.com/sourcegraph/conc/panics"

	"github.com/riskibarqy/courtside/internal/platform/logging"
	"github.com/riskibarqy/courtside/internal/usecase"
)

// Cycler runs one poll cycle from the previous cycle's state.
type Cycler interface {
	RunCycle(ctx context.Context, state usecase.CycleState) (usecase.CycleState, usecase.CycleResult, error)
}

type RunnerConfig struct {
	Interval time.Duration
	Location *time.Location
}

// Runner owns the state threaded between cycles and drives them on a
// fixed interval. Cycles never overlap.
type Runner struct {
	cycler Cycler
	cfg    RunnerConfig
	logger *logging.Logger

	mu        sync.Mutex
	state     usecase.CycleState
	scheduler gocron.Scheduler
}

func NewRunner(cycler Cycler, cfg RunnerConfig, logger *logging.Logger) *Runner {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &Runner{cycler: cycler, cfg: cfg, logger: logger}
}

// Tick runs a single cycle. A panic inside the cycle is logged and the held
// state is left as it was.
func (r *Runner) Tick(ctx context.Context) (usecase.CycleResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var (
		next   usecase.CycleState
		result usecase.CycleResult
		err    error
	)
	var pc panics.Catcher
	pc.Try(func() {
		next, result, err = r.cycler.RunCycle(ctx, r.state)
	})
	if recovered := pc.Recovered(); recovered != nil {
		r.logger.ErrorContext(ctx, "poll cycle panicked",
			"panic", recovered.Value,
			"stack", string(recovered.Stack),
		)
		return usecase.CycleResult{}, recovered.AsError()
	}

	r.state = next
	if err != nil {
		r.logger.WarnContext(ctx, "poll cycle finished with errors",
			"cycle_id", result.CycleID,
			"error", err,
		)
	} else if len(result.Written) > 0 {
		r.logger.InfoContext(ctx, "poll cycle wrote artifacts",
			"cycle_id", result.CycleID,
			"game_id", result.GameID,
			"phase", result.Phase,
			"written", result.Written,
		)
	} else {
		r.logger.DebugContext(ctx, "poll cycle unchanged",
			"cycle_id", result.CycleID,
			"phase", result.Phase,
		)
	}
	return result, err
}

// Start schedules Tick every interval, beginning immediately. A tick that
// overruns the interval pushes the next one back instead of queueing.
func (r *Runner) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(r.cfg.Location))
	if err != nil {
		return errors.Wrap(err, "create scheduler")
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(r.cfg.Interval),
		gocron.NewTask(func() {
			_, _ = r.Tick(ctx)
		}),
		gocron.WithName("poll-cycle"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return errors.Wrap(err, "schedule poll cycle")
	}

	r.scheduler = scheduler
	scheduler.Start()
	r.logger.Info("poll runner started", "interval", r.cfg.Interval.String())
	return nil
}

// Stop waits for a running tick to return.
func (r *Runner) Stop() error {
	if r.scheduler == nil {
		return nil
	}
	err := r.scheduler.Shutdown()
	r.scheduler = nil
	return err
}

// State returns a copy of the state that the next cycle will start from.
func (r *Runner) State() usecase.CycleState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}
