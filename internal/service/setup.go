package service

import (
	"fmt"
	"slices"
	"strings"

	"github.com/AdamBeresnev/fc-knockout/internal/bracket"
	"github.com/AdamBeresnev/fc-knockout/internal/catalog"
	"github.com/google/uuid"
)

func (e *Engine) NewTournament() *bracket.Tournament {
	return &bracket.Tournament{
		ID:            uuid.New(),
		CreatedAt:     e.now().UTC(),
		Phase:         bracket.PhaseSetupPlayers,
		PlayerCount:   2,
		TeamCount:     2,
		Players:       []bracket.Player{},
		SelectedTeams: []bracket.Team{},
		Matches:       []bracket.Match{},
		CurrentRound:  1,
	}
}

func inSetup(t *bracket.Tournament, phases ...bracket.Phase) error {
	if !slices.Contains(phases, t.Phase) {
		return fmt.Errorf("%w: %s", ErrWrongPhase, t.Phase)
	}
	return nil
}

// SetPlayers names the players. Going back to this step drops every later choice.
func (e *Engine) SetPlayers(t *bracket.Tournament, names []string) (*bracket.Tournament, error) {
	if err := inSetup(t, bracket.PhaseSetupPlayers, bracket.PhaseSetupTeams); err != nil {
		return nil, err
	}
	if !slices.Contains(bracket.AllowedCounts, len(names)) {
		return nil, fmt.Errorf("%w: %d players, expected one of %v", ErrInvalidConfig, len(names), bracket.AllowedCounts)
	}

	next := t.Clone()
	next.Players = make([]bracket.Player, 0, len(names))
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: player %d has no name", ErrInvalidConfig, i+1)
		}
		next.Players = append(next.Players, bracket.Player{ID: uuid.New(), Name: name, TeamIDs: []string{}})
	}
	next.PlayerCount = len(names)
	next.SelectedTeams = []bracket.Team{}
	next.Phase = bracket.PhaseSetupTeams
	return next, nil
}

func (e *Engine) SetTeamCount(t *bracket.Tournament, teamCount int) (*bracket.Tournament, error) {
	if err := inSetup(t, bracket.PhaseSetupTeams, bracket.PhasePickTeams); err != nil {
		return nil, err
	}
	if err := bracket.ValidateCounts(t.PlayerCount, teamCount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	next := t.Clone()
	next.TeamCount = teamCount
	next.SelectedTeams = []bracket.Team{}
	next.Phase = bracket.PhasePickTeams
	return next, nil
}

// PickTeams selects the catalog teams. With more than two teams both pots must hold exactly
// half of them, with two teams everything goes into pot 1 and pots are not used for seeding.
func (e *Engine) PickTeams(t *bracket.Tournament, pot1, pot2 []string) (*bracket.Tournament, error) {
	if err := inSetup(t, bracket.PhasePickTeams, bracket.PhaseAssignTeams); err != nil {
		return nil, err
	}

	usePots := t.TeamCount > 2
	if usePots {
		if len(pot1) != t.TeamCount/2 || len(pot2) != t.TeamCount/2 {
			return nil, fmt.Errorf("%w: each pot needs %d teams, got %d and %d", ErrInvalidPots, t.TeamCount/2, len(pot1), len(pot2))
		}
	} else {
		pot1 = append(slices.Clone(pot1), pot2...)
		pot2 = nil
		if len(pot1) != t.TeamCount {
			return nil, fmt.Errorf("%w: need %d teams, got %d", ErrInvalidPots, t.TeamCount, len(pot1))
		}
	}

	selected := make([]bracket.Team, 0, t.TeamCount)
	seen := make(map[string]bool, t.TeamCount)
	add := func(ids []string, pot bracket.Pot) error {
		for _, id := range ids {
			team, ok := catalog.Find(id)
			if !ok {
				return fmt.Errorf("%w: unknown team %s", ErrInvalidPots, id)
			}
			if seen[id] {
				return fmt.Errorf("%w: team %s picked twice", ErrInvalidPots, id)
			}
			seen[id] = true
			team.Pot = pot
			selected = append(selected, team)
		}
		return nil
	}
	if err := add(pot1, bracket.Pot1); err != nil {
		return nil, err
	}
	if err := add(pot2, bracket.Pot2); err != nil {
		return nil, err
	}

	next := t.Clone()
	next.SelectedTeams = selected
	next.PotMode = usePots
	next.AssignmentMode = bracket.AssignmentUnset
	for i := range next.Players {
		next.Players[i].TeamIDs = []string{}
	}
	next.Phase = bracket.PhaseAssignTeams
	return next, nil
}

func (e *Engine) AssignTeam(t *bracket.Tournament, playerID uuid.UUID, teamID string) (*bracket.Tournament, error) {
	if err := inSetup(t, bracket.PhaseAssignTeams); err != nil {
		return nil, err
	}
	if t.Team(teamID) == nil {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotSelected, teamID)
	}
	if owner := t.Owner(teamID); owner != nil {
		return nil, fmt.Errorf("%w: %s belongs to %s", ErrTeamAlreadyAssigned, teamID, owner.Name)
	}

	next := t.Clone()
	player := next.Player(playerID)
	if player == nil {
		return nil, ErrPlayerNotFound
	}
	if len(player.TeamIDs) >= next.TeamsPerPlayer() {
		return nil, fmt.Errorf("%w: %s", ErrPlayerFull, player.Name)
	}
	player.TeamIDs = append(player.TeamIDs, teamID)
	next.AssignmentMode = bracket.AssignmentManual
	return next, nil
}

func (e *Engine) UnassignTeam(t *bracket.Tournament, playerID uuid.UUID, teamID string) (*bracket.Tournament, error) {
	if err := inSetup(t, bracket.PhaseAssignTeams); err != nil {
		return nil, err
	}

	next := t.Clone()
	player := next.Player(playerID)
	if player == nil {
		return nil, ErrPlayerNotFound
	}
	player.TeamIDs = slices.DeleteFunc(player.TeamIDs, func(id string) bool { return id == teamID })
	next.AssignmentMode = bracket.AssignmentManual
	return next, nil
}

func (e *Engine) RandomizeAssignment(t *bracket.Tournament) (*bracket.Tournament, error) {
	if err := inSetup(t, bracket.PhaseAssignTeams); err != nil {
		return nil, err
	}

	next := t.Clone()
	next.Players = e.DistributeTeams(next.Players, next.SelectedTeams)
	next.AssignmentMode = bracket.AssignmentRandom
	return next, nil
}

// GenerateBracket seeds round 1 once every player owns their share of the teams
func (e *Engine) GenerateBracket(t *bracket.Tournament) (*bracket.Tournament, error) {
	if err := inSetup(t, bracket.PhaseAssignTeams); err != nil {
		return nil, err
	}
	if err := bracket.ValidateCounts(len(t.Players), len(t.SelectedTeams)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	perPlayer := t.TeamsPerPlayer()
	for _, p := range t.Players {
		if len(p.TeamIDs) != perPlayer {
			return nil, fmt.Errorf("%w: %s has %d of %d", ErrAssignmentIncomplete, p.Name, len(p.TeamIDs), perPlayer)
		}
	}

	next := t.Clone()
	next.Matches = e.Seed(next.Players, next.SelectedTeams)
	next.CurrentRound = 1
	next.Winner = nil
	next.Phase = bracket.PhaseBracket
	return next, nil
}
