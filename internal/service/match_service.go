package service

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/AdamBeresnev/fc-knockout/internal/bracket"
	"github.com/google/uuid"
)

// Upper bound for a single score
const maxScore = math.MaxInt32

// ParseScore checks a raw score from the outside world, it has to be a non-negative whole number
func ParseScore(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	f, err := strconv.ParseFloat(raw, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: %q", ErrScoreOutOfRange, raw)
	}
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %q", ErrNonIntegerScore, raw)
	}
	if f < 0 {
		return 0, fmt.Errorf("%w: %s", ErrNegativeScore, raw)
	}
	if f > maxScore {
		return 0, fmt.Errorf("%w: %s", ErrScoreOutOfRange, raw)
	}
	return int(f), nil
}

func ValidateScores(homeScore, awayScore int) error {
	if homeScore < 0 || awayScore < 0 {
		return fmt.Errorf("%w: %d-%d", ErrNegativeScore, homeScore, awayScore)
	}
	if homeScore == awayScore {
		return fmt.Errorf("%w: %d-%d", ErrDrawNotAllowed, homeScore, awayScore)
	}
	return nil
}

func checkPlayable(t *bracket.Tournament) error {
	switch t.Phase {
	case bracket.PhaseBracket:
		return nil
	case bracket.PhaseCompleted:
		return ErrTournamentCompleted
	default:
		return fmt.Errorf("%w: %s", ErrWrongPhase, t.Phase)
	}
}

// findPlayerWithMinTeams picks the player, other than the excluded one, with the fewest
// teams still alive in the given round. Ties go to the first player in list order.
func findPlayerWithMinTeams(players []bracket.Player, exclude uuid.UUID, roundMatches []bracket.Match) (uuid.UUID, bool) {
	counts := make(map[uuid.UUID]int, len(players))
	for _, m := range roundMatches {
		if m.IsCompleted() {
			continue
		}
		counts[m.Home.PlayerID]++
		counts[m.Away.PlayerID]++
	}

	var minPlayer uuid.UUID
	minCount := math.MaxInt
	for _, p := range players {
		if p.ID != exclude && counts[p.ID] < minCount {
			minCount = counts[p.ID]
			minPlayer = p.ID
		}
	}
	return minPlayer, minCount != math.MaxInt
}

// ChooseTeam resolves a self-play match. The owner keeps the chosen team at home and the
// other team moves to the player with the fewest live teams in the round, who plays it away.
func (e *Engine) ChooseTeam(t *bracket.Tournament, matchID uuid.UUID, chosenTeamID string) (*bracket.Tournament, error) {
	if err := checkPlayable(t); err != nil {
		return nil, err
	}

	next := t.Clone()
	match := next.Match(matchID)
	if match == nil {
		return nil, ErrMatchNotFound
	}
	if match.State() != bracket.StateNeedsSelfPlayChoice || match.Home.PlayerID != match.Away.PlayerID {
		return nil, ErrNotSelfPlay
	}

	var transferredTeamID string
	switch chosenTeamID {
	case match.Home.TeamID:
		transferredTeamID = match.Away.TeamID
	case match.Away.TeamID:
		transferredTeamID = match.Home.TeamID
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidTeamChoice, chosenTeamID)
	}

	ownerID := match.Home.PlayerID
	receiverID, ok := findPlayerWithMinTeams(next.Players, ownerID, bracket.MatchesForRound(next.Matches, next.CurrentRound))
	if !ok {
		return nil, ErrNoReceivingPlayer
	}

	match.Home = bracket.Side{TeamID: chosenTeamID, PlayerID: ownerID}
	match.Away = bracket.Side{TeamID: transferredTeamID, PlayerID: receiverID}
	match.IsSelfPlay = false
	match.Transfer = &bracket.Transfer{
		ChosenTeamID:      chosenTeamID,
		TransferredTeamID: transferredTeamID,
		FromPlayerID:      ownerID,
		ToPlayerID:        receiverID,
	}

	if owner := next.Player(ownerID); owner != nil {
		owner.TeamIDs = slices.DeleteFunc(owner.TeamIDs, func(id string) bool { return id == transferredTeamID })
	}
	if receiver := next.Player(receiverID); receiver != nil && !receiver.Owns(transferredTeamID) {
		receiver.TeamIDs = append(receiver.TeamIDs, transferredTeamID)
	}

	return next, nil
}

// StartMatch marks a match as being played. Starting an ongoing match again changes nothing.
func (e *Engine) StartMatch(t *bracket.Tournament, matchID uuid.UUID) (*bracket.Tournament, error) {
	if err := checkPlayable(t); err != nil {
		return nil, err
	}

	next := t.Clone()
	match := next.Match(matchID)
	if match == nil {
		return nil, ErrMatchNotFound
	}

	switch match.State() {
	case bracket.StateNeedsSelfPlayChoice:
		return nil, ErrSelfPlayPending
	case bracket.StateCompleted:
		return nil, ErrMatchCompleted
	}

	match.Status = bracket.MatchOngoing
	return next, nil
}

// CompleteMatch records a decisive result. When it finishes the current round the next round
// is generated, or the tournament is completed if it was the final.
func (e *Engine) CompleteMatch(t *bracket.Tournament, matchID uuid.UUID, homeScore, awayScore int) (*bracket.Tournament, error) {
	if err := ValidateScores(homeScore, awayScore); err != nil {
		return nil, err
	}
	if err := checkPlayable(t); err != nil {
		return nil, err
	}

	next := t.Clone()
	match := next.Match(matchID)
	if match == nil {
		return nil, ErrMatchNotFound
	}

	switch match.State() {
	case bracket.StateNeedsSelfPlayChoice:
		return nil, ErrSelfPlayPending
	case bracket.StateCompleted:
		return nil, ErrMatchCompleted
	}

	winner := match.Away
	if homeScore > awayScore {
		winner = match.Home
	}
	match.Result = &bracket.Result{
		HomeScore:      homeScore,
		AwayScore:      awayScore,
		WinnerTeamID:   winner.TeamID,
		WinnerPlayerID: winner.PlayerID,
	}
	match.Status = bracket.MatchCompleted

	roundMatches := bracket.MatchesForRound(next.Matches, next.CurrentRound)
	for _, m := range roundMatches {
		if !m.IsCompleted() {
			return next, nil
		}
	}

	if !next.IsFinalRound() {
		next.Matches = append(next.Matches, generateNextRoundMatches(roundMatches, next.CurrentRound+1)...)
		next.CurrentRound++
		return next, nil
	}

	next.Phase = bracket.PhaseCompleted
	if champion := next.Player(winner.PlayerID); champion != nil {
		w := *champion
		w.TeamIDs = slices.Clone(champion.TeamIDs)
		next.Winner = &w
	}
	return next, nil
}

// generateNextRoundMatches pairs the winners of consecutive matches: winner of match 0 meets
// winner of match 1, and so on.
func generateNextRoundMatches(completed []bracket.Match, round int) []bracket.Match {
	ordered := slices.Clone(completed)
	slices.SortFunc(ordered, func(a, b bracket.Match) int { return a.MatchIndex - b.MatchIndex })

	winners := make([]bracket.Side, 0, len(ordered))
	for _, m := range ordered {
		if w, ok := m.Winner(); ok {
			winners = append(winners, w)
		}
	}

	return buildMatches(pairUp(winners), round)
}
