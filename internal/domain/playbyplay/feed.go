package playbyplay

import (
	"cmp"
	"slices"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/courtside/internal/platform/flexfield"
)

// Feed is a play-by-play sequence ordered by sequence number.
type Feed []Action

// Last returns the most recent action.
func (f Feed) Last() (Action, bool) {
	if len(f) == 0 {
		return nil, false
	}
	return f[len(f)-1], true
}

// SortBySequence orders actions by sequence number, keeping the input order
// for equal numbers.
func SortBySequence(actions []Action) {
	slices.SortStableFunc(actions, func(a, b Action) int {
		return cmp.Compare(a.Info().Sequence, b.Info().Sequence)
	})
}

// DecodeFeed reads {game:{actions:[...]}} and classifies every event,
// dropping the ones that do not classify. Only a document without an actions
// list fails.
func DecodeFeed(raw []byte, home, away string) (Feed, int, bool) {
	root, ok := flexfield.DecodeObject(raw)
	if !ok {
		return nil, 0, false
	}
	body := root
	if g, ok := root.Object("game"); ok {
		body = g
	}
	items, ok := body.Array("actions")
	if !ok {
		return nil, 0, false
	}

	feed := make(Feed, 0, len(items))
	dropped := 0
	for _, item := range items {
		obj, ok := flexfield.AsObject(item)
		if !ok {
			dropped++
			continue
		}
		action, ok := Classify(obj, home, away)
		if !ok {
			dropped++
			continue
		}
		feed = append(feed, action)
	}
	SortBySequence(feed)

	return feed, dropped, true
}

type envelope struct {
	Type      string `json:"type"`
	Number    uint64 `json:"number"`
	Clock     string `json:"clock"`
	Desc      string `json:"desc"`
	HomeScore uint16 `json:"homeScore"`
	AwayScore uint16 `json:"awayScore"`
	Quarter   uint8  `json:"quarter"`
}

func (f Feed) MarshalJSON() ([]byte, error) {
	out := make([]envelope, 0, len(f))
	for _, action := range f {
		info := action.Info()
		out = append(out, envelope{
			Type:      action.Kind().String(),
			Number:    info.Sequence,
			Clock:     info.Clock,
			Desc:      info.Description,
			HomeScore: info.HomeScore,
			AwayScore: info.AwayScore,
			Quarter:   info.Quarter,
		})
	}
	return sonic.Marshal(out)
}

func (f *Feed) UnmarshalJSON(data []byte) error {
	var in []envelope
	if err := sonic.Unmarshal(data, &in); err != nil {
		return err
	}
	out := make(Feed, 0, len(in))
	for _, item := range in {
		kind, _ := ParseKind(item.Type)
		out = append(out, New(kind, Info{
			Sequence:    item.Number,
			Clock:       item.Clock,
			Description: item.Desc,
			HomeScore:   item.HomeScore,
			AwayScore:   item.AwayScore,
			Quarter:     item.Quarter,
		}))
	}
	*f = out
	return nil
}
