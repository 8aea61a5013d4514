package game

import (
	"github.com/riskibarqy/courtside/internal/platform/flexfield"
)

// Day is one normalized scoreboard document.
type Day struct {
	Date     string     `json:"gameDate,omitempty"`
	LeagueID string     `json:"leagueId,omitempty"`
	NumGames int        `json:"numGames"`
	Games    []Snapshot `json:"games"`
	// Dropped counts game entries that failed to decode.
	Dropped int `json:"-"`
}

// DecodeDay accepts both the live "todaysScoreboard" shape
// ({scoreboard:{gameDate, leagueId, games}}) and the dated shape
// ({numGames, games}). A game that fails to decode is dropped; the day only
// fails when there is no games list at all.
func DecodeDay(raw []byte) (Day, bool) {
	root, ok := flexfield.DecodeObject(raw)
	if !ok {
		return Day{}, false
	}

	body := root
	if board, ok := root.Object("scoreboard"); ok {
		body = board
	}

	items, ok := body.Array("games")
	if !ok {
		return Day{}, false
	}

	day := Day{
		Date:     body.StringOr("", "gameDate"),
		LeagueID: body.StringOr("", "leagueId"),
		Games:    make([]Snapshot, 0, len(items)),
	}
	for _, item := range items {
		obj, ok := flexfield.AsObject(item)
		if !ok {
			day.Dropped++
			continue
		}
		snapshot, ok := DecodeSnapshot(obj)
		if !ok {
			day.Dropped++
			continue
		}
		day.Games = append(day.Games, snapshot)
	}
	day.NumGames = int(body.UintOr(uint64(len(day.Games)), "numGames"))

	return day, true
}

// Find returns the first game involving the tracked team.
func (d Day) Find(ref TeamRef) (Snapshot, bool) {
	for _, g := range d.Games {
		if g.Involves(ref) {
			return g, true
		}
	}
	return Snapshot{}, false
}
