package bracket

import (
	"github.com/google/uuid"
)

type MatchStatus string

const (
	MatchPending   MatchStatus = "pending"
	MatchOngoing   MatchStatus = "ongoing"
	MatchCompleted MatchStatus = "completed"
)

// MatchState is the derived lifecycle of a match. A self-play match has to be resolved
// before it can be played, and only a completed match carries a result.
type MatchState int

const (
	StateNeedsSelfPlayChoice MatchState = iota
	StatePending
	StateCompleted
)

func (s MatchState) String() string {
	switch s {
	case StateNeedsSelfPlayChoice:
		return "needs_self_play_choice"
	case StatePending:
		return "pending"
	case StateCompleted:
		return "completed"
	}
	return "unknown"
}

// Side is one half of a match: the team and the player who owns it for this match.
type Side struct {
	TeamID   string    `json:"teamId"`
	PlayerID uuid.UUID `json:"playerId"`
}

type Result struct {
	HomeScore      int       `json:"homeScore"`
	AwayScore      int       `json:"awayScore"`
	WinnerTeamID   string    `json:"winnerTeamId"`
	WinnerPlayerID uuid.UUID `json:"winnerPlayerId"`
}

// Transfer records how a self-play match was resolved.
type Transfer struct {
	ChosenTeamID      string    `json:"chosenTeamId"`
	TransferredTeamID string    `json:"transferredTeamId"`
	FromPlayerID      uuid.UUID `json:"fromPlayerId"`
	ToPlayerID        uuid.UUID `json:"toPlayerId"`
}

type Match struct {
	ID uuid.UUID `json:"id"`

	// Position in the bracket, MatchIndex decides the pairing order of the next round
	Round      int `json:"round"`
	MatchIndex int `json:"matchIndex"`

	Home Side `json:"home"`
	Away Side `json:"away"`

	Status     MatchStatus `json:"status"`
	IsSelfPlay bool        `json:"isSelfPlay"`

	Result   *Result   `json:"result,omitempty"`
	Transfer *Transfer `json:"transfer,omitempty"`
}

func NewMatch(round, index int, home, away Side) Match {
	return Match{
		ID:         uuid.New(),
		Round:      round,
		MatchIndex: index,
		Home:       home,
		Away:       away,
		Status:     MatchPending,
		IsSelfPlay: home.PlayerID == away.PlayerID,
	}
}

func (m *Match) State() MatchState {
	switch {
	case m.Status == MatchCompleted:
		return StateCompleted
	case m.IsSelfPlay:
		return StateNeedsSelfPlayChoice
	default:
		return StatePending
	}
}

func (m *Match) IsCompleted() bool {
	return m.Status == MatchCompleted
}

// Winner returns the side that won, ok is false until the match is completed
func (m *Match) Winner() (Side, bool) {
	if m.Status != MatchCompleted || m.Result == nil {
		return Side{}, false
	}
	return Side{TeamID: m.Result.WinnerTeamID, PlayerID: m.Result.WinnerPlayerID}, true
}
