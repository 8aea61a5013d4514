package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/courtside/internal/domain/artifact"
	"github.com/riskibarqy/courtside/internal/domain/boxscore"
	"github.com/riskibarqy/courtside/internal/domain/game"
	"github.com/riskibarqy/courtside/internal/domain/playbyplay"
	"github.com/riskibarqy/courtside/internal/interfaces/display"
	"github.com/riskibarqy/courtside/internal/platform/id"
	"github.com/riskibarqy/courtside/internal/platform/logging"
)

// NextGameFinder resolves the tracked team's next unfinished game.
type NextGameFinder interface {
	FindNextGame(ctx context.Context, ref game.TeamRef, now time.Time) (game.Snapshot, bool, error)
}

// CycleState is everything carried from one cycle to the next. The driver
// owns it and passes it back into RunCycle.
type CycleState struct {
	Held   artifact.Held
	Cursor boxscore.Cursor
}

type CycleResult struct {
	CycleID string         `json:"cycle_id"`
	GameID  string         `json:"game_id,omitempty"`
	Phase   string         `json:"phase"`
	Frame   display.Frame  `json:"frame"`
	Written []string       `json:"written"`
	Dropped map[string]int `json:"dropped,omitempty"`
}

// PhaseUnavailable marks a cycle that wrote nothing because the today
// scoreboard could not be fetched or decoded.
const PhaseUnavailable = "unavailable"

type TickerConfig struct {
	Team game.TeamRef
	// TaggedFrames prefixes each frame row with its size tag.
	TaggedFrames bool
}

// TickerService runs one poll cycle: fetch, normalize, render, then persist
// only the artifacts that changed since the previous cycle.
type TickerService struct {
	provider   Provider
	nextGame   NextGameFinder
	compositor *display.Compositor
	sink       artifact.Repository
	ids        id.Generator
	cfg        TickerConfig
	logger     *logging.Logger
	now        func() time.Time
}

func NewTickerService(
	provider Provider,
	nextGame NextGameFinder,
	compositor *display.Compositor,
	sink artifact.Repository,
	ids id.Generator,
	cfg TickerConfig,
	logger *logging.Logger,
) *TickerService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if compositor == nil {
		compositor = display.NewCompositor(display.DefaultBudgets(), time.Local)
	}
	if sink == nil {
		sink = artifact.Sinks{}
	}

	return &TickerService{
		provider:   provider,
		nextGame:   nextGame,
		compositor: compositor,
		sink:       sink,
		ids:        ids,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

// cycle collects what one RunCycle call produced.
type cycle struct {
	id      string
	now     time.Time
	state   CycleState
	gameID  string
	written []string
	dropped map[string]int
	err     error
}

func (s *TickerService) RunCycle(ctx context.Context, state CycleState) (CycleState, CycleResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TickerService.RunCycle", teamAttr(s.cfg.Team))
	defer span.End()

	cycleID, err := s.ids.NewID()
	if err != nil {
		return state, CycleResult{}, fmt.Errorf("generate cycle id: %w", err)
	}
	span.SetAttributes(cycleAttrs(cycleID, "", "")...)
	c := &cycle{id: cycleID, now: s.now(), state: state, dropped: map[string]int{}}
	scene := display.Scene{Now: c.now, Cursor: state.Cursor}
	phase := "none"

	today, ok := s.today(ctx, c)
	if !ok {
		// the last frame stays on screen until the scoreboard is back
		s.logger.DebugContext(ctx, "today scoreboard unavailable, keeping last frame", "cycle_id", c.id)
		span.SetAttributes(cycleAttrs("", PhaseUnavailable, "")...)
		return state, CycleResult{CycleID: c.id, Phase: PhaseUnavailable}, nil
	}
	snap, found := today.Find(s.cfg.Team)

	switch {
	case found:
		c.gameID = snap.ID.String()
		scene.Game = &snap
		current := game.Classify(snap, c.now)
		phase = current.String()
		switch current {
		case game.PhaseActive:
			scene.LastAction = s.latestAction(ctx, c, snap)
		case game.PhaseEnded:
			scene.BoxScore = s.boxScore(ctx, c, snap)
			if next, ok := s.findNext(ctx, c); ok {
				scene.Next = &next
			}
		}
	default:
		// no game today: show the next one as pending
		if next, ok := s.findNext(ctx, c); ok {
			c.gameID = next.ID.String()
			scene.Next = &next
			phase = game.PhasePending.String()
		}
	}

	span.SetAttributes(cycleAttrs("", phase, c.gameID)...)
	frame, cursor := s.compositor.Compose(scene)
	c.state.Cursor = cursor
	s.persist(ctx, c, artifact.KindFrame, frame.Encode(s.cfg.TaggedFrames))

	result := CycleResult{
		CycleID: c.id,
		GameID:  c.gameID,
		Phase:   phase,
		Frame:   frame,
		Written: c.written,
	}
	if len(c.dropped) > 0 {
		result.Dropped = c.dropped
	}
	return c.state, result, c.err
}

func (s *TickerService) today(ctx context.Context, c *cycle) (game.Day, bool) {
	raw, err := s.provider.FetchTodayScoreboard(ctx)
	if err != nil {
		s.logAbsent(ctx, "today scoreboard", err)
		return game.Day{}, false
	}
	day, ok := game.DecodeDay(raw)
	if !ok {
		s.logger.WarnContext(ctx, "today scoreboard is malformed", "cycle_id", c.id)
		return game.Day{}, false
	}
	if day.Dropped > 0 {
		c.dropped[artifact.KindToday.String()] = day.Dropped
		s.logger.DebugContext(ctx, "dropped malformed games", "cycle_id", c.id, "dropped", day.Dropped)
	}
	s.persistJSON(ctx, c, artifact.KindToday, day)
	return day, true
}

func (s *TickerService) latestAction(ctx context.Context, c *cycle, snap game.Snapshot) playbyplay.Action {
	raw, err := s.provider.FetchPlayByPlay(ctx, c.gameID)
	if err != nil {
		s.logAbsent(ctx, "play by play", err)
		return nil
	}
	feed, dropped, ok := playbyplay.DecodeFeed(raw, snap.Home.TriCode, snap.Away.TriCode)
	if !ok {
		s.logger.WarnContext(ctx, "play by play is malformed", "cycle_id", c.id, "game_id", c.gameID)
		return nil
	}
	if dropped > 0 {
		c.dropped[artifact.KindPlayByPlay.String()] = dropped
		s.logger.DebugContext(ctx, "dropped unclassified actions", "cycle_id", c.id, "dropped", dropped)
	}
	s.persistJSON(ctx, c, artifact.KindPlayByPlay, feed)

	last, ok := feed.Last()
	if !ok {
		return nil
	}
	return last
}

func (s *TickerService) boxScore(ctx context.Context, c *cycle, snap game.Snapshot) *boxscore.BoxScore {
	raw, err := s.provider.FetchBoxScore(ctx, c.gameID)
	if err != nil {
		s.logAbsent(ctx, "box score", err)
		return nil
	}
	doc, ok := boxscore.DecodeGame(raw)
	if !ok {
		s.logger.WarnContext(ctx, "box score is malformed", "cycle_id", c.id, "game_id", c.gameID)
		return nil
	}
	s.persistJSON(ctx, c, artifact.KindBoxScore, doc)

	own, _, ok := snap.Side(s.cfg.Team)
	if !ok {
		return nil
	}
	side, ok := doc.For(own.TriCode)
	if !ok {
		return nil
	}
	return &side.BoxScore
}

func (s *TickerService) findNext(ctx context.Context, c *cycle) (game.Snapshot, bool) {
	if s.nextGame == nil {
		return game.Snapshot{}, false
	}
	next, ok, err := s.nextGame.FindNextGame(ctx, s.cfg.Team, c.now)
	if err != nil {
		s.logger.WarnContext(ctx, "find next game failed", "cycle_id", c.id, "error", err)
		return game.Snapshot{}, false
	}
	return next, ok
}

func (s *TickerService) persistJSON(ctx context.Context, c *cycle, kind artifact.Kind, v any) {
	body, err := artifact.Encode(v)
	if err != nil {
		s.logger.ErrorContext(ctx, "encode artifact failed", "kind", kind.String(), "error", err)
		return
	}
	s.persist(ctx, c, kind, body)
}

// persist writes body when it differs from the held one. The held state only
// advances after a successful save so a failed write is retried next cycle.
func (s *TickerService) persist(ctx context.Context, c *cycle, kind artifact.Kind, body []byte) {
	held, changed := c.state.Held.Observe(kind, body)
	if !changed {
		return
	}

	item := artifact.Artifact{
		Kind:       kind,
		GameID:     c.gameID,
		CycleID:    c.id,
		Body:       body,
		Digest:     artifact.Digest(body),
		ObservedAt: c.now.UTC(),
	}
	if err := s.sink.Save(ctx, item); err != nil {
		s.logger.ErrorContext(ctx, "save artifact failed", "kind", kind.String(), "cycle_id", c.id, "error", err)
		c.err = errors.Join(c.err, fmt.Errorf("save %s: %w", kind, err))
		return
	}

	c.state.Held = held
	c.written = append(c.written, kind.String())
	s.logger.DebugContext(ctx, "artifact written", "kind", kind.String(), "digest", item.Digest, "cycle_id", c.id)
}

func (s *TickerService) logAbsent(ctx context.Context, document string, err error) {
	if errors.Is(err, ErrNoData) {
		s.logger.DebugContext(ctx, "document not published", "document", document)
		return
	}
	s.logger.WarnContext(ctx, "document unavailable this cycle", "document", document, "error", err)
}
