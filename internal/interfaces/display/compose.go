package display

import (
	"fmt"
	"time"

	"github.com/riskibarqy/courtside/internal/domain/boxscore"
	"github.com/riskibarqy/courtside/internal/domain/game"
	"github.com/riskibarqy/courtside/internal/domain/playbyplay"
)

const NoGameText = "No game today"

// Scene is everything one frame is drawn from.
type Scene struct {
	Game *game.Snapshot
	// LastAction is the latest play of an active game.
	LastAction playbyplay.Action
	// BoxScore and Cursor pick the leader line of an ended game.
	BoxScore *boxscore.BoxScore
	Cursor   boxscore.Cursor
	// Next is the upcoming game. It is drawn under an ended Game, or on its
	// own as a pending game when there is no Game.
	Next *game.Snapshot
	Now  time.Time
}

type Compositor struct {
	budgets      Budgets
	location     *time.Location
	showLastPlay bool
}

type Option func(*Compositor)

// WithLastPlay appends a Medium "Q{n} {clock} {desc}" line to active frames.
func WithLastPlay(enabled bool) Option {
	return func(c *Compositor) {
		c.showLastPlay = enabled
	}
}

func NewCompositor(budgets Budgets, location *time.Location, opts ...Option) *Compositor {
	if budgets.Validate() != nil {
		budgets = DefaultBudgets()
	}
	if location == nil {
		location = time.Local
	}
	c := &Compositor{budgets: budgets, location: location}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Compositor) Budgets() Budgets {
	return c.budgets
}

// Compose renders scene and returns the cursor to use on the next render.
func (c *Compositor) Compose(scene Scene) (Frame, boxscore.Cursor) {
	cursor := scene.Cursor
	if scene.Game == nil {
		if scene.Next != nil {
			return Frame{Lines: c.pending(*scene.Next, scene.Now)}, cursor
		}
		return Frame{Lines: []Line{c.line(Large, Center(NoGameText, c.budgets.Large))}}, cursor
	}

	snap := *scene.Game
	var lines []Line
	switch game.Classify(snap, scene.Now) {
	case game.PhaseActive:
		lines = c.active(snap, scene.LastAction)
	case game.PhaseEnded:
		lines, cursor = c.ended(snap, scene.BoxScore, scene.Cursor)
		if scene.Next != nil {
			lines = append(lines, c.pending(*scene.Next, scene.Now)...)
		}
	default:
		lines = c.pending(snap, scene.Now)
	}
	return Frame{Lines: lines}, cursor
}

func (c *Compositor) active(snap game.Snapshot, last playbyplay.Action) []Line {
	quarter := snap.Period.Number
	clock := snap.Clock
	homeScore, awayScore := snap.Home.Score.String(), snap.Away.Score.String()
	if last != nil {
		info := last.Info()
		quarter, clock = info.Quarter, info.Clock
		homeScore, awayScore = fmt.Sprint(info.HomeScore), fmt.Sprint(info.AwayScore)
	}

	lines := []Line{
		c.line(Small, Center(fmt.Sprintf("Q%d %s", quarter, clock), c.budgets.Small)),
		c.teams(snap),
		c.line(Large, Pair(threeWide(homeScore), threeWide(awayScore), c.budgets.Large)),
	}
	if c.showLastPlay && last != nil {
		lines = append(lines, c.ActionLine(last))
	}
	return lines
}

func (c *Compositor) ended(snap game.Snapshot, box *boxscore.BoxScore, cursor boxscore.Cursor) ([]Line, boxscore.Cursor) {
	lines := []Line{
		c.line(Small, Center(snap.StartTime.In(c.location).Format("Monday"), c.budgets.Small)),
		c.teams(snap),
		c.line(Large, Pair(threeWide(snap.Home.Score), threeWide(snap.Away.Score), c.budgets.Large)),
	}
	if box == nil {
		return lines, cursor
	}
	category, leader, next, ok := box.Next(cursor)
	if !ok {
		return lines, cursor
	}
	text := fmt.Sprintf("%s: %s %d", category.Label(), leader.Name, leader.Value)
	return append(lines, c.line(Medium, Center(text, c.budgets.Medium))), next
}

func (c *Compositor) pending(snap game.Snapshot, now time.Time) []Line {
	start := snap.StartTime.In(c.location)
	today := now.In(c.location)
	layout := "3:04PM"
	if dateBefore(start, today) {
		layout = "Mon 3:04PM"
	}

	homeRecord := fmt.Sprintf("W %s L %s", snap.Home.Wins, snap.Home.Losses)
	awayRecord := fmt.Sprintf("W %s L %s", snap.Away.Wins, snap.Away.Losses)

	return []Line{
		c.line(Small, Center(start.Format(layout), c.budgets.Small)),
		c.teams(snap),
		c.line(Medium, Pair(homeRecord, awayRecord, c.budgets.Medium)),
	}
}

// ActionLine renders one play as a Medium line.
func (c *Compositor) ActionLine(a playbyplay.Action) Line {
	info := a.Info()
	text := fmt.Sprintf("Q%d %s %s", info.Quarter, info.Clock, info.Description)
	return c.line(Medium, Center(text, c.budgets.Medium))
}

func (c *Compositor) teams(snap game.Snapshot) Line {
	return c.line(Large, Pair(threeWide(snap.Home.TriCode), threeWide(snap.Away.TriCode), c.budgets.Large))
}

func (c *Compositor) line(size Size, text string) Line {
	return Line{Size: size, Text: text}
}

func dateBefore(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}
