package display

import (
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/courtside/internal/domain/boxscore"
	"github.com/riskibarqy/courtside/internal/domain/game"
	"github.com/riskibarqy/courtside/internal/domain/playbyplay"
	"github.com/riskibarqy/courtside/internal/platform/flexfield"
	"github.com/stretchr/testify/require"
)

var (
	central = time.FixedZone("CDT", -5*60*60)
	// Monday 2026-10-19 20:00 CDT
	monday = time.Date(2026, 10, 20, 1, 0, 0, 0, time.UTC)
)

func snapshot(start time.Time, clock string) game.Snapshot {
	return game.Snapshot{
		ID:        flexfield.Text("0022600101"),
		StartTime: start,
		Clock:     clock,
		Period:    game.Period{Number: 3},
		Home:      game.Team{TriCode: "MIN", Score: flexfield.Number(78), Wins: flexfield.Number(3), Losses: flexfield.Number(1)},
		Away:      game.Team{TriCode: "LAL", Score: flexfield.Number(71), Wins: flexfield.Text("2"), Losses: flexfield.Text("2")},
	}
}

func compositor(opts ...Option) *Compositor {
	return NewCompositor(Budgets{Small: 20, Medium: 24, Large: 16}, central, opts...)
}

func texts(f Frame) []string {
	out := make([]string, 0, len(f.Lines))
	for _, l := range f.Lines {
		out = append(out, strings.TrimSpace(l.Text))
	}
	return out
}

func sizes(f Frame) []Size {
	out := make([]Size, 0, len(f.Lines))
	for _, l := range f.Lines {
		out = append(out, l.Size)
	}
	return out
}

func TestCompose_NoGame(t *testing.T) {
	t.Parallel()

	frame, cursor := compositor().Compose(Scene{Now: monday, Cursor: boxscore.Cursor{Index: 4}})
	require.Equal(t, []Size{Large}, sizes(frame))
	require.Equal(t, []string{NoGameText}, texts(frame))
	require.Len(t, frame.Lines[0].Text, 16)
	require.Equal(t, uint8(4), cursor.Index)
}

func TestCompose_NoGameTodayShowsNextAsPending(t *testing.T) {
	t.Parallel()

	// future games carry an empty clock upstream; they must not read as ended
	next := snapshot(time.Date(2026, 10, 22, 0, 0, 0, 0, time.UTC), "")
	frame, _ := compositor().Compose(Scene{Next: &next, Now: monday})
	require.Equal(t, []Size{Small, Large, Medium}, sizes(frame))
	require.Equal(t, "7:00PM", strings.TrimSpace(frame.Lines[0].Text))
}

func TestCompose_Active(t *testing.T) {
	t.Parallel()

	snap := snapshot(monday.Add(-time.Hour), "05:12")
	frame, _ := compositor().Compose(Scene{Game: &snap, Now: monday})

	require.Equal(t, []Size{Small, Large, Large}, sizes(frame))
	require.Equal(t, []string{"Q3 05:12", "MIN        LAL", "78         71"}, texts(frame))
	require.Equal(t, " MIN        LAL ", frame.Lines[1].Text)
	require.Equal(t, "  78         71 ", frame.Lines[2].Text)
	for i, l := range frame.Lines {
		require.Len(t, l.Text, compositor().Budgets().Width(l.Size), "line %d", i)
	}
}

func TestCompose_ActivePrefersLatestAction(t *testing.T) {
	t.Parallel()

	snap := snapshot(monday.Add(-time.Hour), "05:12")
	last := playbyplay.New(playbyplay.KindPoints, playbyplay.Info{
		Sequence: 400, Clock: "04:58", Description: "Made 3pts MIN A. Edwards pullup", HomeScore: 81, AwayScore: 71, Quarter: 3,
	})

	frame, _ := compositor().Compose(Scene{Game: &snap, LastAction: last, Now: monday})
	require.Equal(t, []string{"Q3 04:58", "MIN        LAL", "81         71"}, texts(frame))

	withPlay, _ := compositor(WithLastPlay(true)).Compose(Scene{Game: &snap, LastAction: last, Now: monday})
	require.Equal(t, []Size{Small, Large, Large, Medium}, sizes(withPlay))
	require.Equal(t, "Q3 04:58 Made 3pts MIN A", withPlay.Lines[3].Text)
}

func TestCompose_EndedCyclesLeadersAndShowsNextGame(t *testing.T) {
	t.Parallel()

	end := monday.Add(-30 * time.Minute)
	snap := snapshot(monday.Add(-3*time.Hour), "")
	snap.EndTime = &end

	raw, err := flexfield.Decode([]byte(`[
	  {"playerName": "A. Edwards", "statistics": {"assists": 6, "points": 31}},
	  {"playerName": "R. Gobert", "statistics": {"assists": 1, "blocks": 4}}
	]`))
	require.NoError(t, err)
	box, ok := boxscore.Aggregate(raw)
	require.True(t, ok)

	next := snapshot(time.Date(2026, 10, 22, 0, 0, 0, 0, time.UTC), "")
	next.Clock = "12:00"

	c := compositor()
	frame, cursor := c.Compose(Scene{Game: &snap, BoxScore: &box, Next: &next, Now: monday})

	require.Equal(t, []Size{Small, Large, Large, Medium, Small, Large, Medium}, sizes(frame))
	got := texts(frame)
	require.Equal(t, "Monday", got[0], "start time is shown as a weekday in the display zone")
	require.Equal(t, "Assists: A. Edwards 6", got[3])
	require.Equal(t, "7:00PM", got[4])
	require.Equal(t, "W 3 L 1        W 2 L 2", got[6])
	require.Equal(t, uint8(1), cursor.Index)

	frame, cursor = c.Compose(Scene{Game: &snap, BoxScore: &box, Cursor: cursor, Now: monday})
	require.Equal(t, "Blocks: R. Gobert 4", strings.TrimSpace(frame.Lines[3].Text))
	require.Equal(t, uint8(2), cursor.Index)
	require.Len(t, frame.Lines, 4, "no next game means no trailing pending block")
}

func TestCompose_EndedWithoutBoxScore(t *testing.T) {
	t.Parallel()

	snap := snapshot(monday.Add(-3*time.Hour), "")
	frame, cursor := compositor().Compose(Scene{Game: &snap, Cursor: boxscore.Cursor{Index: 9}, Now: monday})
	require.Equal(t, []Size{Small, Large, Large}, sizes(frame))
	require.Equal(t, uint8(9), cursor.Index)

	empty := boxscore.BoxScore{}
	frame, cursor = compositor().Compose(Scene{Game: &snap, BoxScore: &empty, Cursor: boxscore.Cursor{Index: 9}, Now: monday})
	require.Len(t, frame.Lines, 3)
	require.Equal(t, uint8(9), cursor.Index)
}

func TestCompose_Pending(t *testing.T) {
	t.Parallel()

	later := snapshot(monday.Add(90*time.Minute), "12:00")
	frame, _ := compositor().Compose(Scene{Game: &later, Now: monday})
	require.Equal(t, []Size{Small, Large, Medium}, sizes(frame))
	require.Equal(t, []string{"9:30PM", "MIN        LAL", "W 3 L 1        W 2 L 2"}, texts(frame))
	require.Equal(t, " W 3 L 1        W 2 L 2 ", frame.Lines[2].Text)

	// a start before today's date carries the abbreviated weekday
	earlier := snapshot(time.Date(2026, 10, 17, 23, 30, 0, 0, time.UTC), "12:00")
	lines := compositor().pending(earlier, monday)
	require.Equal(t, "Sat 6:30PM", strings.TrimSpace(lines[0].Text))
}
