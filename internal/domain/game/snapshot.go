package game

import (
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/courtside/internal/platform/flexfield"
)

// Snapshot is the normalized state of one game as reported by a scoreboard.
type Snapshot struct {
	ID        flexfield.Scalar `json:"id"`
	StartTime time.Time        `json:"startTime"`
	EndTime   *time.Time       `json:"endTime,omitempty"`
	Clock     string           `json:"clock"`
	Period    Period           `json:"period"`
	Home      Team             `json:"home"`
	Away      Team             `json:"away"`
	Leaders   *Leaders         `json:"gameLeaders,omitempty"`
}

type Team struct {
	ID                flexfield.Scalar  `json:"id"`
	Name              string            `json:"teamName,omitempty"`
	City              string            `json:"teamCity,omitempty"`
	TriCode           string            `json:"triCode"`
	Wins              flexfield.Scalar  `json:"win"`
	Losses            flexfield.Scalar  `json:"loss"`
	Score             flexfield.Scalar  `json:"score"`
	InBonus           *flexfield.Scalar `json:"inBonus,omitempty"`
	TimeoutsRemaining *uint8            `json:"timeoutsRemaining,omitempty"`
	Periods           []LineScore       `json:"periods"`
}

type LineScore struct {
	Period uint8            `json:"period,omitempty"`
	Type   string           `json:"periodType,omitempty"`
	Score  flexfield.Scalar `json:"score"`
}

// Period is either the rich record some feeds send or a bare number. Both
// resolve to Number; Detail is nil for the bare form.
type Period struct {
	Number uint8
	Detail *PeriodDetail
}

type PeriodDetail struct {
	Type          uint8
	IsHalftime    bool
	IsEndOfPeriod bool
}

type periodRecord struct {
	Current       uint8 `json:"current"`
	Type          uint8 `json:"type"`
	IsHalftime    bool  `json:"isHalftime"`
	IsEndOfPeriod bool  `json:"isEndOfPeriod"`
}

func (p Period) MarshalJSON() ([]byte, error) {
	if p.Detail == nil {
		return []byte(strconv.FormatUint(uint64(p.Number), 10)), nil
	}
	return sonic.Marshal(periodRecord{
		Current:       p.Number,
		Type:          p.Detail.Type,
		IsHalftime:    p.Detail.IsHalftime,
		IsEndOfPeriod: p.Detail.IsEndOfPeriod,
	})
}

type Leaders struct {
	Home Leader `json:"homeLeaders"`
	Away Leader `json:"awayLeaders"`
}

type Leader struct {
	ID         flexfield.Scalar `json:"personId"`
	Name       string           `json:"name"`
	Number     string           `json:"jerseyNum"`
	Position   string           `json:"position"`
	PlayerSlug string           `json:"playerSlug,omitempty"`
	Points     uint8            `json:"points"`
	Rebounds   uint8            `json:"rebounds"`
	Assists    uint8            `json:"assists"`
}

// TeamRef identifies the tracked franchise. Either field may be empty.
type TeamRef struct {
	TriCode string
	ID      string
}

func (r TeamRef) Matches(t Team) bool {
	if r.ID != "" && t.ID.EqualString(r.ID) {
		return true
	}
	return r.TriCode != "" && t.TriCode == r.TriCode
}

// Involves reports whether the tracked team plays in the game.
func (s Snapshot) Involves(ref TeamRef) bool {
	return ref.Matches(s.Home) || ref.Matches(s.Away)
}

// Side returns the tracked team's side and its opponent.
func (s Snapshot) Side(ref TeamRef) (own Team, opponent Team, ok bool) {
	switch {
	case ref.Matches(s.Home):
		return s.Home, s.Away, true
	case ref.Matches(s.Away):
		return s.Away, s.Home, true
	default:
		return Team{}, Team{}, false
	}
}
