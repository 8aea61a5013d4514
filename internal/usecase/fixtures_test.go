package usecase

import (
	"fmt"
	"time"

	"github.com/riskibarqy/courtside/internal/domain/game"
)

var (
	testNow  = time.Date(2026, 10, 20, 1, 0, 0, 0, time.UTC)
	testTeam = game.TeamRef{TriCode: "MIN", ID: "1610612750"}

	teamIDs = map[string]string{
		"MIN": "1610612750",
		"LAL": "1610612747",
		"BOS": "1610612738",
		"NYK": "1610612752",
		"DEN": "1610612743",
	}
)

type fixedIDs struct{ next int }

func (g *fixedIDs) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("cycle-%d", g.next), nil
}

// scoreboardGame renders one game object in the live scoreboard shape.
func scoreboardGame(id, start, clock, endField, home, away string) string {
	return fmt.Sprintf(`{
	  "gameId": %q, "gameTimeUTC": %q, "gameClock": %q, "period": 3%s,
	  "homeTeam": {"teamId": %q, "teamTricode": %q, "wins": 3, "losses": 1, "score": 78, "periods": []},
	  "awayTeam": {"teamId": %q, "teamTricode": %q, "wins": "2", "losses": "2", "score": "71", "periods": []}
	}`, id, start, clock, endField, teamIDs[home], home, teamIDs[away], away)
}

func todayDoc(games ...string) []byte {
	body := ""
	for i, g := range games {
		if i > 0 {
			body += ","
		}
		body += g
	}
	return []byte(`{"scoreboard": {"gameDate": "2026-10-19", "leagueId": "00", "games": [` + body + `]}}`)
}

func datedDoc(games ...string) []byte {
	body := ""
	for i, g := range games {
		if i > 0 {
			body += ","
		}
		body += g
	}
	return []byte(fmt.Sprintf(`{"numGames": %d, "games": [%s]}`, len(games), body))
}

const playByPlayDoc = `{
  "game": {
    "gameId": "0022600101",
    "actions": [
      {"actionNumber": 410, "actionType": "3pt", "period": 3, "clock": "PT04M58.00S", "scoreHome": "81", "scoreAway": "71", "shotResult": "Made", "teamTricode": "MIN", "playerNameI": "A. Edwards", "subType": "Pullup"},
      {"actionNumber": 402, "actionType": "turnover", "period": 3, "clock": "PT05M12.00S", "scoreHome": "78", "scoreAway": "71", "teamTricode": "LAL"},
      {"actionNumber": 405, "actionType": "challenge", "period": 3, "clock": "PT05M05.00S", "scoreHome": "78", "scoreAway": "71"}
    ]
  }
}`

const boxScoreDoc = `{
  "game": {
    "gameId": "0022600101",
    "homeTeam": {"teamTricode": "MIN", "players": [
      {"nameI": "A. Edwards", "statistics": {"assists": 6, "points": 31, "reboundsTotal": 5}},
      {"nameI": "R. Gobert", "statistics": {"assists": 1, "blocks": 4, "reboundsTotal": 14}}
    ]},
    "awayTeam": {"teamTricode": "LAL", "players": [
      {"nameI": "L. James", "statistics": {"assists": 11, "points": 27}}
    ]}
  }
}`
