package bracket

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

var (
	ErrInvalidSnapshot = errors.New("invalid tournament snapshot")
	ErrInvalidCounts   = errors.New("invalid player or team count")
)

// ValidateCounts checks the configuration rules the bracket math relies on
func ValidateCounts(playerCount, teamCount int) error {
	if !slices.Contains(AllowedCounts, playerCount) {
		return fmt.Errorf("%w: player count %d is not one of %v", ErrInvalidCounts, playerCount, AllowedCounts)
	}
	if !slices.Contains(AllowedCounts, teamCount) || !IsPowerOfTwo(teamCount) {
		return fmt.Errorf("%w: team count %d is not one of %v", ErrInvalidCounts, teamCount, AllowedCounts)
	}
	if teamCount < playerCount {
		return fmt.Errorf("%w: %d teams cannot be shared by %d players", ErrInvalidCounts, teamCount, playerCount)
	}
	if teamCount%playerCount != 0 {
		return fmt.Errorf("%w: %d teams do not divide evenly among %d players", ErrInvalidCounts, teamCount, playerCount)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidSnapshot, fmt.Sprintf(format, args...))
}

// Validate checks that the snapshot is structurally consistent. It is run on every import,
// a snapshot that fails is never adopted.
func (t *Tournament) Validate() error {
	if t.ID == uuid.Nil {
		return invalid("missing id")
	}

	switch t.Phase {
	case PhaseSetupPlayers, PhaseSetupTeams, PhasePickTeams, PhaseAssignTeams, PhaseBracket, PhaseCompleted:
	default:
		return invalid("unknown phase %q", t.Phase)
	}

	switch t.AssignmentMode {
	case AssignmentUnset, AssignmentManual, AssignmentRandom:
	default:
		return invalid("unknown assignment mode %q", t.AssignmentMode)
	}

	if t.CurrentRound < 1 {
		return invalid("current round %d must be at least 1", t.CurrentRound)
	}

	players := make(map[uuid.UUID]bool, len(t.Players))
	for _, p := range t.Players {
		if p.ID == uuid.Nil {
			return invalid("player %q has no id", p.Name)
		}
		if players[p.ID] {
			return invalid("duplicate player %s", p.ID)
		}
		players[p.ID] = true
	}

	teams := make(map[string]bool, len(t.SelectedTeams))
	for _, team := range t.SelectedTeams {
		if team.ID == "" {
			return invalid("team %q has no id", team.Name)
		}
		if teams[team.ID] {
			return invalid("duplicate team %s", team.ID)
		}
		if team.Pot != PotNone && team.Pot != Pot1 && team.Pot != Pot2 {
			return invalid("team %s has pot %d", team.ID, team.Pot)
		}
		teams[team.ID] = true
	}

	owners := make(map[string]uuid.UUID, len(t.SelectedTeams))
	for _, p := range t.Players {
		for _, id := range p.TeamIDs {
			if !teams[id] {
				return invalid("player %s owns unknown team %s", p.ID, id)
			}
			if owner, ok := owners[id]; ok {
				return invalid("team %s is owned by both %s and %s", id, owner, p.ID)
			}
			owners[id] = p.ID
		}
	}

	if t.Phase != PhaseBracket && t.Phase != PhaseCompleted {
		if len(t.Matches) > 0 {
			return invalid("phase %s cannot have matches", t.Phase)
		}
		return nil
	}

	if err := ValidateCounts(t.PlayerCount, t.TeamCount); err != nil {
		return invalid("%v", err)
	}
	if len(t.Players) != t.PlayerCount {
		return invalid("expected %d players, got %d", t.PlayerCount, len(t.Players))
	}
	if len(t.SelectedTeams) != t.TeamCount {
		return invalid("expected %d teams, got %d", t.TeamCount, len(t.SelectedTeams))
	}
	if t.CurrentRound > t.TotalRounds() {
		return invalid("current round %d exceeds %d rounds", t.CurrentRound, t.TotalRounds())
	}

	if err := t.validateMatches(players, teams); err != nil {
		return err
	}

	if t.Phase == PhaseBracket && roundFinished(MatchesForRound(t.Matches, t.CurrentRound)) {
		return invalid("round %d is finished but the bracket did not move on", t.CurrentRound)
	}

	if t.Phase == PhaseCompleted {
		if t.Winner == nil {
			return invalid("completed tournament has no winner")
		}
		if !t.IsFinalRound() {
			return invalid("completed tournament stopped at round %d", t.CurrentRound)
		}
		final := MatchesForRound(t.Matches, t.CurrentRound)
		w, ok := final[0].Winner()
		if !ok || w.PlayerID != t.Winner.ID {
			return invalid("winner does not match the final")
		}
	} else if t.Winner != nil {
		return invalid("winner set before the tournament completed")
	}

	return nil
}

func (t *Tournament) validateMatches(players map[uuid.UUID]bool, teams map[string]bool) error {
	ids := make(map[uuid.UUID]bool, len(t.Matches))
	slots := make(map[[2]int]bool, len(t.Matches))
	perRound := make(map[int]int)

	for _, m := range t.Matches {
		if m.ID == uuid.Nil || ids[m.ID] {
			return invalid("missing or duplicate match id %s", m.ID)
		}
		ids[m.ID] = true

		if m.Round < 1 || m.Round > t.CurrentRound {
			return invalid("match %s is in round %d", m.ID, m.Round)
		}
		if m.MatchIndex < 0 || m.MatchIndex >= MatchesInRound(t.TeamCount, m.Round) {
			return invalid("match %s has index %d", m.ID, m.MatchIndex)
		}
		slot := [2]int{m.Round, m.MatchIndex}
		if slots[slot] {
			return invalid("two matches share round %d index %d", m.Round, m.MatchIndex)
		}
		slots[slot] = true
		perRound[m.Round]++

		for _, s := range []Side{m.Home, m.Away} {
			if !teams[s.TeamID] {
				return invalid("match %s references unknown team %q", m.ID, s.TeamID)
			}
			if !players[s.PlayerID] {
				return invalid("match %s references unknown player %s", m.ID, s.PlayerID)
			}
		}
		if m.Home.TeamID == m.Away.TeamID {
			return invalid("match %s has the same team on both sides", m.ID)
		}

		if err := validateMatchState(m); err != nil {
			return err
		}

		if m.Round < t.CurrentRound && m.Status != MatchCompleted {
			return invalid("match %s of a finished round is not completed", m.ID)
		}
	}

	for r := 1; r <= t.CurrentRound; r++ {
		if perRound[r] != MatchesInRound(t.TeamCount, r) {
			return invalid("round %d has %d matches, expected %d", r, perRound[r], MatchesInRound(t.TeamCount, r))
		}
	}

	for r := 1; r < t.CurrentRound; r++ {
		if err := validateProgression(sortedRound(t.Matches, r), sortedRound(t.Matches, r+1)); err != nil {
			return err
		}
	}

	return nil
}

func sortedRound(matches []Match, round int) []Match {
	out := MatchesForRound(matches, round)
	slices.SortFunc(out, func(a, b Match) int { return a.MatchIndex - b.MatchIndex })
	return out
}

func roundFinished(matches []Match) bool {
	for _, m := range matches {
		if m.Status != MatchCompleted {
			return false
		}
	}
	return len(matches) > 0
}

// validateProgression checks that match i of the next round is played by the winners of
// matches 2i and 2i+1. A resolved self-play match keeps the same two teams, but the owner may
// play either of them at home and the other one belongs to the receiving player.
func validateProgression(prev, next []Match) error {
	for i, m := range next {
		home, ok1 := prev[2*i].Winner()
		away, ok2 := prev[2*i+1].Winner()
		if !ok1 || !ok2 {
			return invalid("match %s follows an unfinished match", m.ID)
		}

		if m.Transfer == nil {
			if m.Home != home || m.Away != away {
				return invalid("match %s is not played by the winners of round %d", m.ID, m.Round-1)
			}
			continue
		}

		sameTeams := (m.Home.TeamID == home.TeamID && m.Away.TeamID == away.TeamID) ||
			(m.Home.TeamID == away.TeamID && m.Away.TeamID == home.TeamID)
		if home.PlayerID != away.PlayerID || m.Home.PlayerID != home.PlayerID || !sameTeams {
			return invalid("match %s transfer does not follow the winners of round %d", m.ID, m.Round-1)
		}
	}
	return nil
}

func validateMatchState(m Match) error {
	switch m.Status {
	case MatchPending, MatchOngoing:
		if m.Result != nil {
			return invalid("match %s has a result but is %s", m.ID, m.Status)
		}
	case MatchCompleted:
		if m.Result == nil {
			return invalid("completed match %s has no result", m.ID)
		}
		if m.IsSelfPlay {
			return invalid("completed match %s is still self-play", m.ID)
		}
		r := m.Result
		if r.HomeScore < 0 || r.AwayScore < 0 || r.HomeScore == r.AwayScore {
			return invalid("match %s has an impossible score %d-%d", m.ID, r.HomeScore, r.AwayScore)
		}
		winner := m.Away
		if r.HomeScore > r.AwayScore {
			winner = m.Home
		}
		if r.WinnerTeamID != winner.TeamID || r.WinnerPlayerID != winner.PlayerID {
			return invalid("match %s winner does not follow its score", m.ID)
		}
	default:
		return invalid("match %s has unknown status %q", m.ID, m.Status)
	}

	if m.IsSelfPlay && m.Home.PlayerID != m.Away.PlayerID {
		return invalid("self-play match %s has two different players", m.ID)
	}
	if !m.IsSelfPlay && m.Home.PlayerID == m.Away.PlayerID {
		return invalid("match %s pits a player against themself without being self-play", m.ID)
	}
	if m.IsSelfPlay && m.Status == MatchOngoing {
		return invalid("self-play match %s cannot be ongoing", m.ID)
	}
	if tr := m.Transfer; tr != nil {
		if tr.ChosenTeamID != m.Home.TeamID || tr.FromPlayerID != m.Home.PlayerID ||
			tr.TransferredTeamID != m.Away.TeamID || tr.ToPlayerID != m.Away.PlayerID {
			return invalid("match %s transfer does not match its sides", m.ID)
		}
	}
	return nil
}
