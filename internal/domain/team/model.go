package team

import (
	"fmt"

	"github.com/riskibarqy/courtside/internal/domain/game"
)

// Team is an NBA franchise.
type Team struct {
	ID      string
	TriCode string
	City    string
	Name    string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if len(t.TriCode) != 3 {
		return fmt.Errorf("team tricode must be 3 letters, got %q", t.TriCode)
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

func (t Team) FullName() string {
	return t.City + " " + t.Name
}

// Ref is what the game feeds are matched against.
func (t Team) Ref() game.TeamRef {
	return game.TeamRef{TriCode: t.TriCode, ID: t.ID}
}
