package service

import "errors"

var (
	// Result submission
	ErrNegativeScore   = errors.New("score cannot be negative")
	ErrNonIntegerScore = errors.New("score must be a whole number")
	ErrScoreOutOfRange = errors.New("score is too large")
	ErrDrawNotAllowed  = errors.New("a knockout match cannot end in a draw")

	// Match state
	ErrMatchNotFound     = errors.New("match not found")
	ErrSelfPlayPending   = errors.New("the owner has to pick a team before this match can be played")
	ErrMatchCompleted    = errors.New("match is already completed")
	ErrNotSelfPlay       = errors.New("match is not waiting for a self-play choice")
	ErrInvalidTeamChoice = errors.New("chosen team does not play in this match")
	ErrNoReceivingPlayer = errors.New("no other player can receive the transferred team")

	// Tournament flow
	ErrTournamentCompleted = errors.New("tournament is already completed")
	ErrWrongPhase          = errors.New("operation is not allowed in the current phase")

	// Setup and assignment
	ErrInvalidConfig        = errors.New("invalid tournament configuration")
	ErrTeamNotSelected      = errors.New("team is not part of this tournament")
	ErrTeamAlreadyAssigned  = errors.New("team is already assigned to a player")
	ErrPlayerFull           = errors.New("player already has all of their teams")
	ErrPlayerNotFound       = errors.New("player not found")
	ErrAssignmentIncomplete = errors.New("every player must own the same number of teams")
	ErrInvalidPots          = errors.New("invalid pot selection")

	ErrArchiveUnavailable = errors.New("no archive storage configured")
)
