package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/courtside/internal/domain/game"
	"github.com/riskibarqy/courtside/internal/platform/cache"
	"github.com/riskibarqy/courtside/internal/platform/logging"
)

type ScheduleConfig struct {
	LookaheadDays int
	Workers       int
	CacheTTL      time.Duration
	Location      *time.Location
}

// ScheduleService looks ahead through upcoming daily scoreboards for the
// tracked team's next game.
type ScheduleService struct {
	provider Provider
	days     *cache.Store[game.Day]
	cfg      ScheduleConfig
	logger   *logging.Logger
}

func NewScheduleService(provider Provider, cfg ScheduleConfig, logger *logging.Logger) *ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.LookaheadDays <= 0 {
		cfg.LookaheadDays = 5
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	return &ScheduleService{
		provider: provider,
		days:     cache.NewStore[game.Day](cfg.CacheTTL),
		cfg:      cfg,
		logger:   logger,
	}
}

// FindNextGame returns the earliest game of ref on the days after now that
// has not finished. Days that cannot be fetched are skipped.
func (s *ScheduleService) FindNextGame(ctx context.Context, ref game.TeamRef, now time.Time) (game.Snapshot, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.FindNextGame", teamAttr(ref))
	defer span.End()

	if ref.TriCode == "" && ref.ID == "" {
		return game.Snapshot{}, false, fmt.Errorf("%w: team is required", ErrInvalidInput)
	}

	dates := s.lookaheadDates(now)
	days := make([]game.Day, len(dates))
	found := make([]bool, len(dates))

	pool, err := ants.NewPool(s.cfg.Workers)
	if err != nil {
		return game.Snapshot{}, false, fmt.Errorf("create lookahead pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, date := range dates {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			days[i], found[i] = s.loadDay(ctx, date)
		}); err != nil {
			workers.Done()
			return game.Snapshot{}, false, fmt.Errorf("submit lookahead day %s: %w", dayKey(date), err)
		}
	}
	workers.Wait()

	for i, day := range days {
		if !found[i] {
			continue
		}
		for _, item := range day.Games {
			if !item.Involves(ref) || item.EndTime != nil {
				continue
			}
			return item, true, nil
		}
	}

	return game.Snapshot{}, false, nil
}

func (s *ScheduleService) loadDay(ctx context.Context, date time.Time) (game.Day, bool) {
	day, err := s.days.GetOrLoad(ctx, dayKey(date), func(ctx context.Context) (game.Day, error) {
		raw, err := s.provider.FetchScoreboardByDate(ctx, date)
		if err != nil {
			return game.Day{}, err
		}
		day, ok := game.DecodeDay(raw)
		if !ok {
			return game.Day{}, fmt.Errorf("%w: scoreboard %s is malformed", ErrNoData, dayKey(date))
		}
		return day, nil
	})
	if err != nil {
		s.logger.WarnContext(ctx, "lookahead day unavailable", "date", dayKey(date), "error", err)
		return game.Day{}, false
	}
	if day.Dropped > 0 {
		s.logger.DebugContext(ctx, "lookahead day dropped games", "date", dayKey(date), "dropped", day.Dropped)
	}
	return day, true
}

func (s *ScheduleService) lookaheadDates(now time.Time) []time.Time {
	local := now.In(s.cfg.Location)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.cfg.Location)
	out := make([]time.Time, 0, s.cfg.LookaheadDays)
	for i := 1; i <= s.cfg.LookaheadDays; i++ {
		out = append(out, midnight.AddDate(0, 0, i))
	}
	return out
}

func dayKey(date time.Time) string {
	return date.Format("20060102")
}
