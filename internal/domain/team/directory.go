package team

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

var ErrUnknownTeam = errors.New("unknown team")

// maxResolveDistance bounds how loose a typo match may be.
const maxResolveDistance = 3

var franchises = []Team{
	{ID: "1610612737", TriCode: "ATL", City: "Atlanta", Name: "Hawks"},
	{ID: "1610612738", TriCode: "BOS", City: "Boston", Name: "Celtics"},
	{ID: "1610612751", TriCode: "BKN", City: "Brooklyn", Name: "Nets"},
	{ID: "1610612766", TriCode: "CHA", City: "Charlotte", Name: "Hornets"},
	{ID: "1610612741", TriCode: "CHI", City: "Chicago", Name: "Bulls"},
	{ID: "1610612739", TriCode: "CLE", City: "Cleveland", Name: "Cavaliers"},
	{ID: "1610612742", TriCode: "DAL", City: "Dallas", Name: "Mavericks"},
	{ID: "1610612743", TriCode: "DEN", City: "Denver", Name: "Nuggets"},
	{ID: "1610612765", TriCode: "DET", City: "Detroit", Name: "Pistons"},
	{ID: "1610612744", TriCode: "GSW", City: "Golden State", Name: "Warriors"},
	{ID: "1610612745", TriCode: "HOU", City: "Houston", Name: "Rockets"},
	{ID: "1610612754", TriCode: "IND", City: "Indiana", Name: "Pacers"},
	{ID: "1610612746", TriCode: "LAC", City: "LA", Name: "Clippers"},
	{ID: "1610612747", TriCode: "LAL", City: "Los Angeles", Name: "Lakers"},
	{ID: "1610612763", TriCode: "MEM", City: "Memphis", Name: "Grizzlies"},
	{ID: "1610612748", TriCode: "MIA", City: "Miami", Name: "Heat"},
	{ID: "1610612749", TriCode: "MIL", City: "Milwaukee", Name: "Bucks"},
	{ID: "1610612750", TriCode: "MIN", City: "Minnesota", Name: "Timberwolves"},
	{ID: "1610612740", TriCode: "NOP", City: "New Orleans", Name: "Pelicans"},
	{ID: "1610612752", TriCode: "NYK", City: "New York", Name: "Knicks"},
	{ID: "1610612760", TriCode: "OKC", City: "Oklahoma City", Name: "Thunder"},
	{ID: "1610612753", TriCode: "ORL", City: "Orlando", Name: "Magic"},
	{ID: "1610612755", TriCode: "PHI", City: "Philadelphia", Name: "76ers"},
	{ID: "1610612756", TriCode: "PHX", City: "Phoenix", Name: "Suns"},
	{ID: "1610612757", TriCode: "POR", City: "Portland", Name: "Trail Blazers"},
	{ID: "1610612758", TriCode: "SAC", City: "Sacramento", Name: "Kings"},
	{ID: "1610612759", TriCode: "SAS", City: "San Antonio", Name: "Spurs"},
	{ID: "1610612761", TriCode: "TOR", City: "Toronto", Name: "Raptors"},
	{ID: "1610612762", TriCode: "UTA", City: "Utah", Name: "Jazz"},
	{ID: "1610612764", TriCode: "WAS", City: "Washington", Name: "Wizards"},
}

// Franchises returns a copy of the franchise table.
func Franchises() []Team {
	return append([]Team(nil), franchises...)
}

// Resolve maps user input ("MIN", "wolves", "Minnesota Timberwolves",
// "timberwolvs") to a franchise. Exact tricode and id matches win, then
// substring matches on city and name, then the closest name by edit
// distance.
func Resolve(query string) (Team, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return Team{}, fmt.Errorf("%w: empty query", ErrUnknownTeam)
	}

	for _, t := range franchises {
		if strings.EqualFold(t.TriCode, q) || t.ID == q {
			return t, nil
		}
	}

	var matches []Team
	for _, t := range franchises {
		if fuzzy.MatchFold(q, t.FullName()) {
			matches = append(matches, t)
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	if len(matches) > 1 {
		return Team{}, fmt.Errorf("%w: %q is ambiguous (%d matches)", ErrUnknownTeam, q, len(matches))
	}

	lower := strings.ToLower(q)
	best, bestDistance := Team{}, maxResolveDistance+1
	for _, t := range franchises {
		for _, candidate := range []string{t.Name, t.FullName()} {
			d := fuzzy.LevenshteinDistance(lower, strings.ToLower(candidate))
			if d < bestDistance {
				best, bestDistance = t, d
			}
		}
	}
	if bestDistance <= maxResolveDistance {
		return best, nil
	}

	return Team{}, fmt.Errorf("%w: %q", ErrUnknownTeam, q)
}
