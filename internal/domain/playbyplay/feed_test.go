package playbyplay

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"
)

const playByPlayDoc = `{
  "meta": {"version": 1},
  "game": {
    "gameId": "0022600101",
    "actions": [
      {"actionNumber": 7, "actionType": "2pt", "period": 1, "clock": "PT11M02.00S", "scoreHome": "2", "scoreAway": "0", "shotResult": "Made", "teamTricode": "MIN", "playerNameI": "A. Edwards", "subType": "Jump Shot"},
      {"actionNumber": 2, "actionType": "period", "period": 1, "clock": "PT12M00.00S", "scoreHome": "0", "scoreAway": "0", "subType": "start"},
      {"actionNumber": 4, "actionType": "jumpball", "period": 1, "clock": "PT11M58.00S", "scoreHome": "0", "scoreAway": "0", "description": "", "teamTricode": "LAL"},
      {"actionNumber": 5, "actionType": "memo", "period": 1, "clock": "PT11M50.00S", "scoreHome": "0", "scoreAway": "0"},
      {"actionNumber": 9, "actionType": "rebound", "period": 1, "clock": "PT10M40.00S", "scoreHome": "2", "scoreAway": "0", "subType": "defensive", "teamTricode": "LAL"},
      "garbage"
    ]
  }
}`

func TestDecodeFeed_SortsAndDrops(t *testing.T) {
	t.Parallel()

	feed, dropped, ok := DecodeFeed([]byte(playByPlayDoc), "MIN", "LAL")
	require.True(t, ok)
	require.Equal(t, 3, dropped)
	require.Len(t, feed, 3)

	var seqs []uint64
	for _, a := range feed {
		seqs = append(seqs, a.Info().Sequence)
	}
	require.Equal(t, []uint64{2, 4, 7}, seqs)

	last, ok := feed.Last()
	require.True(t, ok)
	require.Equal(t, KindPoints, last.Kind())
	require.Equal(t, "11:02", last.Info().Clock)

	_, _, ok = DecodeFeed([]byte(`{"game":{}}`), "MIN", "LAL")
	require.False(t, ok)

	empty, _, ok := DecodeFeed([]byte(`{"game":{"actions":[]}}`), "MIN", "LAL")
	require.True(t, ok)
	_, ok = empty.Last()
	require.False(t, ok)
}

func TestSortBySequence_StableForEqualNumbers(t *testing.T) {
	t.Parallel()

	actions := []Action{
		New(KindFoul, Info{Sequence: 3, Description: "b"}),
		New(KindBlock, Info{Sequence: 1}),
		New(KindSteal, Info{Sequence: 3, Description: "c"}),
	}
	SortBySequence(actions)

	require.Equal(t, KindBlock, actions[0].Kind())
	require.Equal(t, "b", actions[1].Info().Description)
	require.Equal(t, "c", actions[2].Info().Description)
}

func TestFeed_JSONEnvelope(t *testing.T) {
	t.Parallel()

	feed := Feed{New(KindTimeout, Info{Sequence: 12, Clock: "03:10", Description: "Timeout MIN", HomeScore: 20, AwayScore: 18, Quarter: 1})}
	raw, err := sonic.Marshal(feed)
	require.NoError(t, err)
	require.JSONEq(t, `[{"type":"timeout","number":12,"clock":"03:10","desc":"Timeout MIN","homeScore":20,"awayScore":18,"quarter":1}]`, string(raw))

	var back Feed
	require.NoError(t, sonic.Unmarshal(raw, &back))
	require.Len(t, back, 1)
	require.Equal(t, KindTimeout, back[0].Kind())
	require.Equal(t, feed[0].Info(), back[0].Info())
}

func TestKind_RoundTripsNames(t *testing.T) {
	t.Parallel()

	for k := KindUnknown; k <= KindGame; k++ {
		parsed, ok := ParseKind(k.String())
		if !ok || parsed != k {
			t.Fatalf("kind %d did not round trip through %q", k, k.String())
		}
		if New(k, Info{}).Kind() != k {
			t.Fatalf("New(%s) built the wrong variant", k)
		}
	}
}
