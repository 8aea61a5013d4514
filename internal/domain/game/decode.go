package game

import (
	"math"

	"github.com/riskibarqy/courtside/internal/platform/flexfield"
)

// Wire aliases, most specific first.
var (
	gameIDKeys    = []string{"gameId", "id"}
	startTimeKeys = []string{"startTimeUTC", "gameTimeUTC", "startTime"}
	endTimeKeys   = []string{"endTimeUTC", "endTime"}
	clockKeys     = []string{"gameClock", "clock"}
	periodKeys    = []string{"period"}
	homeKeys      = []string{"hTeam", "homeTeam", "home"}
	awayKeys      = []string{"vTeam", "awayTeam", "away"}
	leadersKeys   = []string{"gameLeaders"}

	teamIDKeys       = []string{"teamId", "id"}
	teamNameKeys     = []string{"teamName"}
	teamCityKeys     = []string{"teamCity"}
	triCodeKeys      = []string{"teamTricode", "triCode"}
	winKeys          = []string{"wins", "win"}
	lossKeys         = []string{"losses", "loss"}
	scoreKeys        = []string{"score"}
	inBonusKeys      = []string{"inBonus"}
	timeoutsKeys     = []string{"timeoutsRemaining"}
	lineScoreKeys    = []string{"linescore", "periods"}
	lineScorePeriod  = []string{"period"}
	lineScoreType    = []string{"periodType"}
	lineScoreScore   = []string{"score"}
	periodCurrentKey = []string{"current"}
)

// DecodeSnapshot decodes one game object. It fails only when a required field
// is missing or malformed; optional fields fall back to their zero value.
func DecodeSnapshot(obj flexfield.Object) (Snapshot, bool) {
	id, ok := obj.Scalar(gameIDKeys...)
	if !ok {
		return Snapshot{}, false
	}
	start, ok := obj.Time(startTimeKeys...)
	if !ok {
		return Snapshot{}, false
	}
	clock, ok := obj.String(clockKeys...)
	if !ok {
		return Snapshot{}, false
	}
	rawPeriod, ok := obj.Lookup(periodKeys...)
	if !ok {
		return Snapshot{}, false
	}
	period, ok := DecodePeriod(rawPeriod)
	if !ok {
		return Snapshot{}, false
	}
	homeObj, ok := obj.Object(homeKeys...)
	if !ok {
		return Snapshot{}, false
	}
	home, ok := DecodeTeam(homeObj)
	if !ok {
		return Snapshot{}, false
	}
	awayObj, ok := obj.Object(awayKeys...)
	if !ok {
		return Snapshot{}, false
	}
	away, ok := DecodeTeam(awayObj)
	if !ok {
		return Snapshot{}, false
	}

	out := Snapshot{
		ID:        id,
		StartTime: start,
		Clock:     clock,
		Period:    period,
		Home:      home,
		Away:      away,
	}
	if end, ok := obj.Time(endTimeKeys...); ok {
		out.EndTime = &end
	}
	if leadersObj, ok := obj.Object(leadersKeys...); ok {
		if leaders, ok := decodeLeaders(leadersObj); ok {
			out.Leaders = &leaders
		}
	}

	return out.WithNormalizedClock(), true
}

func DecodeTeam(obj flexfield.Object) (Team, bool) {
	id, ok := obj.Scalar(teamIDKeys...)
	if !ok {
		return Team{}, false
	}
	triCode, ok := obj.String(triCodeKeys...)
	if !ok {
		return Team{}, false
	}
	wins, ok := obj.Scalar(winKeys...)
	if !ok {
		return Team{}, false
	}
	losses, ok := obj.Scalar(lossKeys...)
	if !ok {
		return Team{}, false
	}
	score, ok := obj.Scalar(scoreKeys...)
	if !ok {
		return Team{}, false
	}
	rawPeriods, ok := obj.Array(lineScoreKeys...)
	if !ok {
		return Team{}, false
	}
	periods := make([]LineScore, 0, len(rawPeriods))
	for _, item := range rawPeriods {
		line, ok := decodeLineScore(item)
		if !ok {
			return Team{}, false
		}
		periods = append(periods, line)
	}

	out := Team{
		ID:      id,
		Name:    obj.StringOr("", teamNameKeys...),
		City:    obj.StringOr("", teamCityKeys...),
		TriCode: triCode,
		Wins:    wins,
		Losses:  losses,
		Score:   score,
		Periods: periods,
	}
	if bonus, ok := obj.Scalar(inBonusKeys...); ok {
		out.InBonus = &bonus
	}
	if timeouts, ok := obj.Uint(timeoutsKeys...); ok && timeouts <= math.MaxUint8 {
		v := uint8(timeouts)
		out.TimeoutsRemaining = &v
	}

	return out, true
}

// DecodePeriod accepts {current, type, isHalftime, isEndOfPeriod} or a bare
// period number.
func DecodePeriod(raw any) (Period, bool) {
	if obj, ok := flexfield.AsObject(raw); ok {
		current, ok := obj.Uint(periodCurrentKey...)
		if !ok || current > math.MaxUint8 {
			return Period{}, false
		}
		kind, ok := obj.Uint("type")
		if !ok || kind > math.MaxUint8 {
			return Period{}, false
		}
		halftime, ok := obj.Bool("isHalftime")
		if !ok {
			return Period{}, false
		}
		endOfPeriod, ok := obj.Bool("isEndOfPeriod")
		if !ok {
			return Period{}, false
		}
		return Period{
			Number: uint8(current),
			Detail: &PeriodDetail{Type: uint8(kind), IsHalftime: halftime, IsEndOfPeriod: endOfPeriod},
		}, true
	}

	scalar, ok := flexfield.ScalarFrom(raw)
	if !ok {
		return Period{}, false
	}
	n, ok := scalar.Uint()
	if !ok || n > math.MaxUint8 {
		return Period{}, false
	}
	return Period{Number: uint8(n)}, true
}

func decodeLineScore(raw any) (LineScore, bool) {
	obj, ok := flexfield.AsObject(raw)
	if !ok {
		return LineScore{}, false
	}
	score, ok := obj.Scalar(lineScoreScore...)
	if !ok {
		return LineScore{}, false
	}
	out := LineScore{Score: score, Type: obj.StringOr("", lineScoreType...)}
	if n, ok := obj.Uint(lineScorePeriod...); ok && n <= math.MaxUint8 {
		out.Period = uint8(n)
	}
	return out, true
}

func decodeLeaders(obj flexfield.Object) (Leaders, bool) {
	homeObj, ok := obj.Object("homeLeaders")
	if !ok {
		return Leaders{}, false
	}
	awayObj, ok := obj.Object("awayLeaders")
	if !ok {
		return Leaders{}, false
	}
	home, ok := decodeLeader(homeObj)
	if !ok {
		return Leaders{}, false
	}
	away, ok := decodeLeader(awayObj)
	if !ok {
		return Leaders{}, false
	}
	return Leaders{Home: home, Away: away}, true
}

func decodeLeader(obj flexfield.Object) (Leader, bool) {
	id, ok := obj.Scalar("personId")
	if !ok {
		return Leader{}, false
	}
	return Leader{
		ID:         id,
		Name:       obj.StringOr("", "name"),
		Number:     obj.StringOr("", "jerseyNum"),
		Position:   obj.StringOr("", "position"),
		PlayerSlug: obj.StringOr("", "playerSlug"),
		Points:     clampUint8(obj.UintOr(0, "points")),
		Rebounds:   clampUint8(obj.UintOr(0, "rebounds")),
		Assists:    clampUint8(obj.UintOr(0, "assists")),
	}, true
}

func clampUint8(v uint64) uint8 {
	if v > math.MaxUint8 {
		return math.MaxUint8
	}
	return uint8(v)
}
