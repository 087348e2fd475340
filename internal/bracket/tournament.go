package bracket

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

type Phase string

const (
	PhaseSetupPlayers Phase = "setup_players"
	PhaseSetupTeams   Phase = "setup_teams"
	PhasePickTeams    Phase = "pick_teams"
	PhaseAssignTeams  Phase = "assign_teams"
	PhaseBracket      Phase = "bracket"
	PhaseCompleted    Phase = "completed"
)

type AssignmentMode string

const (
	AssignmentUnset  AssignmentMode = ""
	AssignmentManual AssignmentMode = "manual"
	AssignmentRandom AssignmentMode = "random"
)

// AllowedCounts are the player and team counts a tournament can be configured with.
var AllowedCounts = []int{2, 4, 8, 16, 32}

// Tournament is the whole serializable state of a knockout. Anything derived from it
// (round names, total rounds) is recomputed, never stored.
type Tournament struct {
	ID             uuid.UUID      `json:"id"`
	CreatedAt      time.Time      `json:"createdAt"`
	Phase          Phase          `json:"phase"`
	PlayerCount    int            `json:"playerCount"`
	TeamCount      int            `json:"teamCount"`
	AssignmentMode AssignmentMode `json:"assignmentMode,omitempty"`
	PotMode        bool           `json:"potMode"`
	Players        []Player       `json:"players"`
	SelectedTeams  []Team         `json:"selectedTeams"`
	Matches        []Match        `json:"matches"`
	CurrentRound   int            `json:"currentRound"`
	Winner         *Player        `json:"winner"`
}

// Clone returns a deep copy so that engine steps never share slices with their input
func (t *Tournament) Clone() *Tournament {
	c := *t

	c.Players = make([]Player, len(t.Players))
	for i, p := range t.Players {
		p.TeamIDs = slices.Clone(p.TeamIDs)
		c.Players[i] = p
	}

	c.SelectedTeams = slices.Clone(t.SelectedTeams)

	c.Matches = make([]Match, len(t.Matches))
	for i, m := range t.Matches {
		if m.Result != nil {
			r := *m.Result
			m.Result = &r
		}
		if m.Transfer != nil {
			tr := *m.Transfer
			m.Transfer = &tr
		}
		c.Matches[i] = m
	}

	if t.Winner != nil {
		w := *t.Winner
		w.TeamIDs = slices.Clone(t.Winner.TeamIDs)
		c.Winner = &w
	}

	return &c
}

func (t *Tournament) TotalRounds() int {
	return TotalRounds(len(t.SelectedTeams))
}

func (t *Tournament) RoundName(round int) string {
	return RoundName(len(t.SelectedTeams), round)
}

func (t *Tournament) IsFinalRound() bool {
	return t.CurrentRound == t.TotalRounds()
}

func (t *Tournament) TeamsPerPlayer() int {
	if len(t.Players) == 0 {
		return 0
	}
	return len(t.SelectedTeams) / len(t.Players)
}

func (t *Tournament) Match(id uuid.UUID) *Match {
	for i := range t.Matches {
		if t.Matches[i].ID == id {
			return &t.Matches[i]
		}
	}
	return nil
}

func (t *Tournament) Player(id uuid.UUID) *Player {
	for i := range t.Players {
		if t.Players[i].ID == id {
			return &t.Players[i]
		}
	}
	return nil
}

func (t *Tournament) Team(id string) *Team {
	for i := range t.SelectedTeams {
		if t.SelectedTeams[i].ID == id {
			return &t.SelectedTeams[i]
		}
	}
	return nil
}

// Owner returns the player currently owning the team, or nil
func (t *Tournament) Owner(teamID string) *Player {
	for i := range t.Players {
		if t.Players[i].Owns(teamID) {
			return &t.Players[i]
		}
	}
	return nil
}
