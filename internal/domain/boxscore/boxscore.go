package boxscore

import (
	"github.com/bytedance/sonic"
)

type Category uint8

const (
	CategoryAssists Category = iota
	CategoryBlocks
	CategoryFouled
	CategoryFouler
	CategorySteals
	CategoryTurnovers
	CategoryPoints
	CategoryPaintPoints
	CategoryThrees
	CategoryRebounds
	CategoryOffensiveRebounds
	CategoryDefensiveRebounds

	CategoryCount = 12
)

type categorySpec struct {
	label   string
	jsonKey string
	statKey string
}

var categories = [CategoryCount]categorySpec{
	CategoryAssists:           {label: "Assists", jsonKey: "assist", statKey: "assists"},
	CategoryBlocks:            {label: "Blocks", jsonKey: "blocks", statKey: "blocks"},
	CategoryFouled:            {label: "Fouled", jsonKey: "fouled", statKey: "foulsDrawn"},
	CategoryFouler:            {label: "Fouler", jsonKey: "fouler", statKey: "foulsPersonal"},
	CategorySteals:            {label: "Steals", jsonKey: "steals", statKey: "steals"},
	CategoryTurnovers:         {label: "Turnovers", jsonKey: "turnovers", statKey: "turnovers"},
	CategoryPoints:            {label: "Points", jsonKey: "points", statKey: "points"},
	CategoryPaintPoints:       {label: "Paint Pts", jsonKey: "paintPoints", statKey: "pointsInThePaint"},
	CategoryThrees:            {label: "Threes", jsonKey: "threes", statKey: "threePointersMade"},
	CategoryRebounds:          {label: "Rebounds(*)", jsonKey: "rebounds", statKey: "reboundsTotal"},
	CategoryOffensiveRebounds: {label: "Rebounds(o)", jsonKey: "offRebounds", statKey: "reboundsOffensive"},
	CategoryDefensiveRebounds: {label: "Rebounds(d)", jsonKey: "defRebounds", statKey: "reboundsDefensive"},
}

func (c Category) Valid() bool {
	return c < CategoryCount
}

// Label is the text shown on the display, e.g. "Paint Pts".
func (c Category) Label() string {
	if !c.Valid() {
		return ""
	}
	return categories[c].label
}

func (c Category) String() string {
	if !c.Valid() {
		return "unknown"
	}
	return categories[c].jsonKey
}

// TopPlayer is the leader of one category.
type TopPlayer struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// BoxScore holds the per-category leaders of one team. A slot is empty only
// when the roster had no players.
type BoxScore struct {
	slots [CategoryCount]*TopPlayer
}

func (b BoxScore) Leader(c Category) (TopPlayer, bool) {
	if !c.Valid() || b.slots[c] == nil {
		return TopPlayer{}, false
	}
	return *b.slots[c], true
}

func (b BoxScore) Populated() int {
	n := 0
	for _, slot := range b.slots {
		if slot != nil {
			n++
		}
	}
	return n
}

// observe keeps the current leader on ties, so the first player seen wins.
func (b *BoxScore) observe(c Category, name string, value int) {
	current := b.slots[c]
	if current == nil || value > current.Value {
		b.slots[c] = &TopPlayer{Name: name, Value: value}
	}
}

func (b BoxScore) MarshalJSON() ([]byte, error) {
	out := make(map[string]*TopPlayer, CategoryCount)
	for i, def := range categories {
		out[def.jsonKey] = b.slots[i]
	}
	return sonic.ConfigStd.Marshal(out)
}

func (b *BoxScore) UnmarshalJSON(data []byte) error {
	var in map[string]*TopPlayer
	if err := sonic.Unmarshal(data, &in); err != nil {
		return err
	}
	var out BoxScore
	for i, def := range categories {
		out.slots[i] = in[def.jsonKey]
	}
	*b = out
	return nil
}
