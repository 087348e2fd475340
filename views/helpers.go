package views

import (
	"fmt"

	"github.com/AdamBeresnev/fc-knockout/internal/bracket"
)

func scoreLine(m bracket.Match) string {
	if m.Result == nil {
		return "vs"
	}
	return fmt.Sprintf("%d - %d", m.Result.HomeScore, m.Result.AwayScore)
}

func stateLabel(m bracket.Match) string {
	switch m.State() {
	case bracket.StateNeedsSelfPlayChoice:
		return "Pick a team"
	case bracket.StateCompleted:
		return "Full time"
	}
	if m.Status == bracket.MatchOngoing {
		return "Live"
	}
	return "Upcoming"
}

func isWinner(m bracket.Match, teamID string) bool {
	return m.Result != nil && m.Result.WinnerTeamID == teamID
}

func phaseLabel(t bracket.Tournament) string {
	switch t.Phase {
	case bracket.PhaseCompleted:
		if t.Winner != nil {
			return "Won by " + t.Winner.Name
		}
		return "Completed"
	case bracket.PhaseBracket:
		return t.RoundName(t.CurrentRound)
	default:
		return "Setting up"
	}
}
