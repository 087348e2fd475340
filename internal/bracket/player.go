package bracket

import (
	"slices"

	"github.com/google/uuid"
)

type Player struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	TeamIDs []string  `json:"teamIds"`
}

func (p *Player) Owns(teamID string) bool {
	return slices.Contains(p.TeamIDs, teamID)
}

// Pot is the seeding bucket of a team. PotNone means the team was picked without pots.
type Pot int

const (
	PotNone Pot = 0
	Pot1    Pot = 1
	Pot2    Pot = 2
)

type Team struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl"`
	League  string `json:"league"`
	Country string `json:"country"`
	Pot     Pot    `json:"pot,omitempty"`
}
