package playbyplay

import (
	"fmt"
	"math"
	"strings"

	"github.com/riskibarqy/courtside/internal/domain/game"
	"github.com/riskibarqy/courtside/internal/platform/flexfield"
)

var (
	actionTypeKeys  = []string{"actionType"}
	sequenceKeys    = []string{"actionNumber", "orderNumber"}
	quarterKeys     = []string{"period"}
	clockKeys       = []string{"clock"}
	homeScoreKeys   = []string{"scoreHome"}
	awayScoreKeys   = []string{"scoreAway"}
	subTypeKeys     = []string{"subType"}
	descriptionKeys = []string{"description"}
	teamKeys        = []string{"teamTricode"}
	playerKeys      = []string{"playerNameI"}
	shotResultKeys  = []string{"shotResult"}
	foulDrawnKeys   = []string{"foulDrawnPlayerName"}
	foulTotalKeys   = []string{"foulPersonalTotal"}
)

// Classify turns one raw event into an Action. home and away are the tricodes
// of the game's teams, used to name the other side of a turnover or steal.
// Unrecognized action types and events missing a field their template needs
// yield false.
func Classify(obj flexfield.Object, home, away string) (Action, bool) {
	actionType, ok := obj.String(actionTypeKeys...)
	if !ok {
		return nil, false
	}
	info, ok := decodeInfo(obj)
	if !ok {
		return nil, false
	}

	var (
		kind Kind
		desc string
	)
	switch strings.ToLower(actionType) {
	case "period":
		sub, ok := obj.String(subTypeKeys...)
		if !ok {
			return nil, false
		}
		kind, desc = KindPeriod, fmt.Sprintf("Q%d %s", info.Quarter, sub)
	case "jumpball":
		text, ok := obj.String(descriptionKeys...)
		if !ok {
			return nil, false
		}
		if text == "" {
			team, ok := obj.String(teamKeys...)
			if !ok {
				return nil, false
			}
			text = "Jump won by " + team
		}
		kind, desc = KindJumpBall, text
	case "2pt", "3pt":
		fields, ok := requireStrings(obj, shotResultKeys, teamKeys, playerKeys, subTypeKeys)
		if !ok {
			return nil, false
		}
		points := "2pts"
		if strings.EqualFold(actionType, "3pt") {
			points = "3pts"
		}
		kind = KindPoints
		desc = fmt.Sprintf("%s %s %s %s %s", fields[0], points, fields[1], fields[2], strings.ToLower(fields[3]))
	case "rebound":
		fields, ok := requireStrings(obj, subTypeKeys, playerKeys, teamKeys)
		if !ok {
			return nil, false
		}
		kind, desc = KindRebound, fmt.Sprintf("%s rebound %s (%s)", fields[0], fields[1], fields[2])
	case "block":
		player, ok := obj.String(playerKeys...)
		if !ok {
			return nil, false
		}
		kind, desc = KindBlock, "Block "+player
	case "turnover", "steal":
		from, ok := obj.String(teamKeys...)
		if !ok {
			return nil, false
		}
		to := home
		if from == home {
			to = away
		}
		kind = KindTurnover
		label := "Turnover"
		if strings.EqualFold(actionType, "steal") {
			kind, label = KindSteal, "Steal"
		}
		desc = fmt.Sprintf("%s %s -> %s", label, from, to)
	case "timeout":
		team, ok := obj.String(teamKeys...)
		if !ok {
			return nil, false
		}
		kind, desc = KindTimeout, "Timeout "+team
	case "substitution":
		fields, ok := requireStrings(obj, playerKeys, subTypeKeys)
		if !ok {
			return nil, false
		}
		kind, desc = KindSubstitution, fmt.Sprintf("Sub %s %s", fields[0], fields[1])
	case "foul":
		fields, ok := requireStrings(obj, playerKeys, foulDrawnKeys)
		if !ok {
			return nil, false
		}
		total, ok := obj.Scalar(foulTotalKeys...)
		if !ok {
			return nil, false
		}
		kind, desc = KindFoul, fmt.Sprintf("Foul %s <- %s (%s)", fields[0], fields[1], total)
	case "freethrow":
		fields, ok := requireStrings(obj, playerKeys, subTypeKeys, shotResultKeys)
		if !ok {
			return nil, false
		}
		kind, desc = KindFreeThrow, fmt.Sprintf("Free Throw %s %s %s", fields[0], fields[1], fields[2])
	case "violation":
		fields, ok := requireStrings(obj, teamKeys, subTypeKeys)
		if !ok {
			return nil, false
		}
		kind, desc = KindViolation, fmt.Sprintf("%s %s", fields[0], fields[1])
	case "stoppage":
		sub, ok := obj.String(subTypeKeys...)
		if !ok {
			return nil, false
		}
		kind, desc = KindStoppage, "Stoppage "+sub
	case "game":
		sub, ok := obj.String(subTypeKeys...)
		if !ok {
			return nil, false
		}
		kind, desc = KindGame, "Game "+sub
	default:
		return nil, false
	}

	info.Description = desc
	return New(kind, info), true
}

func decodeInfo(obj flexfield.Object) (Info, bool) {
	sequence, ok := obj.Uint(sequenceKeys...)
	if !ok {
		return Info{}, false
	}
	quarter, ok := obj.Uint(quarterKeys...)
	if !ok || quarter > math.MaxUint8 {
		return Info{}, false
	}
	rawClock, ok := obj.String(clockKeys...)
	if !ok {
		return Info{}, false
	}
	clock, ok := game.NormalizeClock(rawClock)
	if !ok {
		return Info{}, false
	}
	homeScore, ok := obj.Uint(homeScoreKeys...)
	if !ok || homeScore > math.MaxUint16 {
		return Info{}, false
	}
	awayScore, ok := obj.Uint(awayScoreKeys...)
	if !ok || awayScore > math.MaxUint16 {
		return Info{}, false
	}

	return Info{
		Sequence:  sequence,
		Clock:     clock,
		HomeScore: uint16(homeScore),
		AwayScore: uint16(awayScore),
		Quarter:   uint8(quarter),
	}, true
}

func requireStrings(obj flexfield.Object, keys ...[]string) ([]string, bool) {
	out := make([]string, len(keys))
	for i, aliases := range keys {
		v, ok := obj.String(aliases...)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
