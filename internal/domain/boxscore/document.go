package boxscore

import (
	"github.com/riskibarqy/courtside/internal/platform/flexfield"
)

type TeamBoxScore struct {
	Abv      string   `json:"abv"`
	BoxScore BoxScore `json:"boxScore"`
}

type GameBoxScores struct {
	ID   flexfield.Scalar `json:"id"`
	Home TeamBoxScore     `json:"home"`
	Away TeamBoxScore     `json:"away"`
}

// For returns the side whose tricode matches.
func (g GameBoxScores) For(triCode string) (TeamBoxScore, bool) {
	switch triCode {
	case g.Home.Abv:
		return g.Home, true
	case g.Away.Abv:
		return g.Away, true
	default:
		return TeamBoxScore{}, false
	}
}

// DecodeGame reads {game:{gameId, homeTeam:{teamTricode, players}, awayTeam}}.
func DecodeGame(raw []byte) (GameBoxScores, bool) {
	root, ok := flexfield.DecodeObject(raw)
	if !ok {
		return GameBoxScores{}, false
	}
	body, ok := root.Object("game")
	if !ok {
		return GameBoxScores{}, false
	}
	id, ok := body.Scalar("gameId", "id")
	if !ok {
		return GameBoxScores{}, false
	}
	homeObj, ok := body.Object("homeTeam", "home")
	if !ok {
		return GameBoxScores{}, false
	}
	home, ok := decodeTeam(homeObj)
	if !ok {
		return GameBoxScores{}, false
	}
	awayObj, ok := body.Object("awayTeam", "away")
	if !ok {
		return GameBoxScores{}, false
	}
	away, ok := decodeTeam(awayObj)
	if !ok {
		return GameBoxScores{}, false
	}
	return GameBoxScores{ID: id, Home: home, Away: away}, true
}

func decodeTeam(obj flexfield.Object) (TeamBoxScore, bool) {
	abv, ok := obj.String("teamTricode", "abv")
	if !ok {
		return TeamBoxScore{}, false
	}
	players, ok := obj.Lookup("players")
	if !ok {
		return TeamBoxScore{}, false
	}
	box, ok := Aggregate(players)
	if !ok {
		return TeamBoxScore{}, false
	}
	return TeamBoxScore{Abv: abv, BoxScore: box}, true
}
