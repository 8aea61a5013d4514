package boxscore

import (
	"math"

	"github.com/riskibarqy/courtside/internal/platform/flexfield"
)

var (
	playerNameKeys = []string{"playerName", "nameI", "name"}
	statisticsKeys = []string{"statistics"}
)

// Aggregate folds a roster (a JSON array of players with a statistics object)
// into per-category leaders. Players missing a name or statistics are
// skipped; missing stats count as zero. A roster that is not an array fails.
func Aggregate(roster any) (BoxScore, bool) {
	players, ok := roster.([]any)
	if !ok {
		return BoxScore{}, false
	}

	var out BoxScore
	for _, item := range players {
		player, ok := flexfield.AsObject(item)
		if !ok {
			continue
		}
		name, ok := player.String(playerNameKeys...)
		if !ok {
			continue
		}
		stats, ok := player.Object(statisticsKeys...)
		if !ok {
			continue
		}
		for i, def := range categories {
			out.observe(Category(i), name, statValue(stats, def.statKey))
		}
	}

	return out, true
}

func statValue(stats flexfield.Object, key string) int {
	v := stats.UintOr(0, key)
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}
