package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/courtside/internal/domain/artifact"
	"github.com/riskibarqy/courtside/internal/domain/boxscore"
	"github.com/riskibarqy/courtside/internal/domain/game"
	"github.com/riskibarqy/courtside/internal/interfaces/display"
	artifactmock "github.com/riskibarqy/courtside/internal/mocks/domain/artifact"
	usecasemock "github.com/riskibarqy/courtside/internal/mocks/usecase"
	"github.com/riskibarqy/courtside/internal/platform/logging"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestTicker(provider Provider, finder NextGameFinder, sink artifact.Repository) *TickerService {
	compositor := display.NewCompositor(display.Budgets{Small: 20, Medium: 24, Large: 16}, time.FixedZone("CDT", -5*60*60))
	svc := NewTickerService(provider, finder, compositor, sink, &fixedIDs{}, TickerConfig{Team: testTeam}, logging.NewNop())
	svc.now = func() time.Time { return testNow }
	return svc
}

func kindIs(kind artifact.Kind) any {
	return mock.MatchedBy(func(item artifact.Artifact) bool { return item.Kind == kind })
}

func frameLines(f display.Frame) []string {
	out := make([]string, 0, len(f.Lines))
	for _, l := range f.Lines {
		out = append(out, strings.TrimSpace(l.Text))
	}
	return out
}

func TestTickerService_RunCycle_ActiveGameWritesOnlyChanges(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := usecasemock.NewProvider(t)
	sink := artifactmock.NewRepository(t)
	svc := newTestTicker(provider, nil, sink)

	today := todayDoc(scoreboardGame("0022600101", "2026-10-19T23:30:00Z", "PT05M12.00S", "", "MIN", "LAL"))
	provider.On("FetchTodayScoreboard", mock.Anything).Return(today, nil).Twice()
	provider.On("FetchPlayByPlay", mock.Anything, "0022600101").Return([]byte(playByPlayDoc), nil).Twice()

	sink.On("Save", mock.Anything, kindIs(artifact.KindToday)).Return(nil).Once()
	sink.On("Save", mock.Anything, mock.MatchedBy(func(item artifact.Artifact) bool {
		return item.Kind == artifact.KindPlayByPlay && item.GameID == "0022600101" && item.Digest == artifact.Digest(item.Body)
	})).Return(nil).Once()
	sink.On("Save", mock.Anything, kindIs(artifact.KindFrame)).Return(nil).Once()

	state, result, err := svc.RunCycle(ctx, CycleState{})
	if err != nil {
		t.Fatalf("run first cycle: %v", err)
	}
	require.Equal(t, "active", result.Phase)
	require.Equal(t, "0022600101", result.GameID)
	require.Equal(t, []string{"today", "play_by_play", "frame"}, result.Written)
	require.Equal(t, map[string]int{"play_by_play": 1}, result.Dropped)
	require.Equal(t, []string{"Q3 04:58", "MIN        LAL", "81         71"}, frameLines(result.Frame))

	_, second, err := svc.RunCycle(ctx, state)
	if err != nil {
		t.Fatalf("run second cycle: %v", err)
	}
	if len(second.Written) != 0 {
		t.Fatalf("unchanged cycle must not write, wrote %v", second.Written)
	}
	if second.CycleID == result.CycleID {
		t.Fatalf("each cycle needs its own id, got %s twice", second.CycleID)
	}
}

func TestTickerService_RunCycle_EndedGameCyclesOwnLeaders(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := usecasemock.NewProvider(t)
	finder := usecasemock.NewNextGameFinder(t)
	sink := artifactmock.NewRepository(t)
	svc := newTestTicker(provider, finder, sink)

	ended := scoreboardGame("0022600101", "2026-10-19T22:00:00Z", "", `, "endTimeUTC": "2026-10-20T00:20:00Z"`, "MIN", "LAL")
	provider.On("FetchTodayScoreboard", mock.Anything).Return(todayDoc(ended), nil).Twice()
	provider.On("FetchBoxScore", mock.Anything, "0022600101").Return([]byte(boxScoreDoc), nil).Twice()
	finder.On("FindNextGame", mock.Anything, testTeam, testNow).Return(game.Snapshot{}, false, nil).Twice()

	sink.On("Save", mock.Anything, kindIs(artifact.KindToday)).Return(nil).Once()
	sink.On("Save", mock.Anything, kindIs(artifact.KindBoxScore)).Return(nil).Once()
	sink.On("Save", mock.Anything, kindIs(artifact.KindFrame)).Return(nil).Twice()

	state, result, err := svc.RunCycle(ctx, CycleState{})
	if err != nil {
		t.Fatalf("run first cycle: %v", err)
	}
	require.Equal(t, "ended", result.Phase)
	require.Equal(t, "Assists: A. Edwards 6", strings.TrimSpace(result.Frame.Lines[3].Text))
	require.Equal(t, boxscore.Cursor{Index: 1}, state.Cursor)

	state, result, err = svc.RunCycle(ctx, state)
	if err != nil {
		t.Fatalf("run second cycle: %v", err)
	}
	require.Equal(t, "Blocks: R. Gobert 4", strings.TrimSpace(result.Frame.Lines[3].Text))
	require.Equal(t, []string{"frame"}, result.Written, "only the rotated leader line changed")
	require.Equal(t, boxscore.Cursor{Index: 2}, state.Cursor)
}

func TestTickerService_RunCycle_NoGameTodayShowsNextGame(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := usecasemock.NewProvider(t)
	finder := usecasemock.NewNextGameFinder(t)
	sink := artifactmock.NewRepository(t)
	svc := newTestTicker(provider, finder, sink)

	other := scoreboardGame("0022600109", "2026-10-19T23:00:00Z", "PT12M00.00S", "", "BOS", "NYK")
	provider.On("FetchTodayScoreboard", mock.Anything).Return(todayDoc(other), nil).Once()

	next := game.Snapshot{
		StartTime: time.Date(2026, 10, 22, 0, 0, 0, 0, time.UTC),
		Clock:     "",
		Home:      game.Team{TriCode: "MIN"},
		Away:      game.Team{TriCode: "DEN"},
	}
	finder.On("FindNextGame", mock.Anything, testTeam, testNow).Return(next, true, nil).Once()

	sink.On("Save", mock.Anything, kindIs(artifact.KindToday)).Return(nil).Once()
	sink.On("Save", mock.Anything, kindIs(artifact.KindFrame)).Return(nil).Once()

	_, result, err := svc.RunCycle(ctx, CycleState{})
	if err != nil {
		t.Fatalf("run cycle: %v", err)
	}
	require.Equal(t, "pending", result.Phase)
	lines := frameLines(result.Frame)
	require.Equal(t, "7:00PM", lines[0])
	require.Equal(t, "MIN        DEN", lines[1])
}

func TestTickerService_RunCycle_ScoreboardOutageKeepsLastFrame(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := usecasemock.NewProvider(t)
	finder := usecasemock.NewNextGameFinder(t)
	sink := artifactmock.NewRepository(t)
	svc := newTestTicker(provider, finder, sink)

	today := todayDoc(scoreboardGame("0022600101", "2026-10-19T23:30:00Z", "PT05M12.00S", "", "MIN", "LAL"))
	provider.On("FetchTodayScoreboard", mock.Anything).Return(today, nil).Once()
	provider.On("FetchPlayByPlay", mock.Anything, "0022600101").Return([]byte(playByPlayDoc), nil).Once()
	sink.On("Save", mock.Anything, mock.Anything).Return(nil).Times(3)

	state, live, err := svc.RunCycle(ctx, CycleState{})
	if err != nil {
		t.Fatalf("run live cycle: %v", err)
	}
	require.Equal(t, "active", live.Phase)

	provider.On("FetchTodayScoreboard", mock.Anything).Return(nil, errors.New("cdn timeout")).Once()
	provider.On("FetchTodayScoreboard", mock.Anything).Return([]byte(`{"scoreboard": "garbage"}`), nil).Once()

	for _, name := range []string{"timeout", "malformed"} {
		next, result, err := svc.RunCycle(ctx, state)
		if err != nil {
			t.Fatalf("%s: outage is not a cycle error: %v", name, err)
		}
		require.Equal(t, PhaseUnavailable, result.Phase, name)
		require.Empty(t, result.Written, name)
		require.Empty(t, result.Frame.Lines, name)
		require.Equal(t, state, next, name)
	}

	sink.AssertNumberOfCalls(t, "Save", 3)
	finder.AssertNotCalled(t, "FindNextGame", mock.Anything, mock.Anything, mock.Anything)
}

func TestTickerService_RunCycle_FailedSaveIsRetriedNextCycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := usecasemock.NewProvider(t)
	finder := usecasemock.NewNextGameFinder(t)
	sink := artifactmock.NewRepository(t)
	svc := newTestTicker(provider, finder, sink)

	provider.On("FetchTodayScoreboard", mock.Anything).Return(todayDoc(), nil).Twice()
	finder.On("FindNextGame", mock.Anything, testTeam, testNow).Return(game.Snapshot{}, false, nil).Twice()
	sink.On("Save", mock.Anything, kindIs(artifact.KindToday)).Return(nil).Once()
	sink.On("Save", mock.Anything, kindIs(artifact.KindFrame)).Return(errors.New("disk full")).Once()
	sink.On("Save", mock.Anything, kindIs(artifact.KindFrame)).Return(nil).Once()

	state, result, err := svc.RunCycle(ctx, CycleState{})
	if err == nil {
		t.Fatalf("expected save error")
	}
	require.Equal(t, []string{"today"}, result.Written)
	if _, held := state.Held.Last(artifact.KindFrame); held {
		t.Fatalf("failed write must not be held")
	}

	_, result, err = svc.RunCycle(ctx, state)
	if err != nil {
		t.Fatalf("run retry cycle: %v", err)
	}
	require.Equal(t, []string{"frame"}, result.Written)
}
