package bracket

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// semiFinals returns a four team, two player tournament with round 1 already seeded
func semiFinals() *Tournament {
	alice := Player{ID: uuid.New(), Name: "Alice", TeamIDs: []string{"a1", "a2"}}
	bob := Player{ID: uuid.New(), Name: "Bob", TeamIDs: []string{"b1", "b2"}}

	return &Tournament{
		ID:          uuid.New(),
		CreatedAt:   time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC),
		Phase:       PhaseBracket,
		PlayerCount: 2,
		TeamCount:   4,
		PotMode:     true,
		Players:     []Player{alice, bob},
		SelectedTeams: []Team{
			{ID: "a1", Name: "Arsenal", Pot: Pot1},
			{ID: "b1", Name: "Bayern Munich", Pot: Pot1},
			{ID: "a2", Name: "Ajax", Pot: Pot2},
			{ID: "b2", Name: "Benfica", Pot: Pot2},
		},
		Matches: []Match{
			NewMatch(1, 0, Side{TeamID: "a1", PlayerID: alice.ID}, Side{TeamID: "b2", PlayerID: bob.ID}),
			NewMatch(1, 1, Side{TeamID: "b1", PlayerID: bob.ID}, Side{TeamID: "a2", PlayerID: alice.ID}),
		},
		CurrentRound: 1,
	}
}

func TestCloneIsDeep(t *testing.T) {
	original := semiFinals()
	original.Matches[0].Status = MatchCompleted
	original.Matches[0].Result = &Result{HomeScore: 1, AwayScore: 0, WinnerTeamID: "a1", WinnerPlayerID: original.Players[0].ID}
	original.Winner = &Player{ID: original.Players[0].ID, TeamIDs: []string{"a1"}}

	c := original.Clone()
	c.Players[0].TeamIDs[0] = "changed"
	c.SelectedTeams[0].Name = "changed"
	c.Matches[0].Result.HomeScore = 9
	c.Matches[1].Status = MatchOngoing
	c.Winner.TeamIDs[0] = "changed"

	assert.Equal(t, "a1", original.Players[0].TeamIDs[0])
	assert.Equal(t, "Arsenal", original.SelectedTeams[0].Name)
	assert.Equal(t, 1, original.Matches[0].Result.HomeScore)
	assert.Equal(t, MatchPending, original.Matches[1].Status)
	assert.Equal(t, "a1", original.Winner.TeamIDs[0])
}

func TestTournamentLookups(t *testing.T) {
	tournament := semiFinals()
	alice := tournament.Players[0]

	assert.Equal(t, 2, tournament.TotalRounds())
	assert.Equal(t, "Semi Finals", tournament.RoundName(1))
	assert.Equal(t, "Final", tournament.RoundName(2))
	assert.False(t, tournament.IsFinalRound())
	assert.Equal(t, 2, tournament.TeamsPerPlayer())

	require.NotNil(t, tournament.Player(alice.ID))
	assert.Nil(t, tournament.Player(uuid.New()))
	require.NotNil(t, tournament.Team("b2"))
	assert.Equal(t, "Benfica", tournament.Team("b2").Name)
	assert.Nil(t, tournament.Team("zz"))
	assert.Equal(t, alice.ID, tournament.Owner("a2").ID)
	assert.Nil(t, tournament.Owner("zz"))
	require.NotNil(t, tournament.Match(tournament.Matches[1].ID))
	assert.Nil(t, tournament.Match(uuid.New()))

	tournament.Match(tournament.Matches[1].ID).Status = MatchOngoing
	assert.Equal(t, MatchOngoing, tournament.Matches[1].Status)
}

func TestMatchState(t *testing.T) {
	p := uuid.New()
	q := uuid.New()

	selfPlay := NewMatch(2, 0, Side{TeamID: "a", PlayerID: p}, Side{TeamID: "b", PlayerID: p})
	assert.True(t, selfPlay.IsSelfPlay)
	assert.Equal(t, StateNeedsSelfPlayChoice, selfPlay.State())
	assert.Equal(t, "needs_self_play_choice", selfPlay.State().String())

	m := NewMatch(1, 0, Side{TeamID: "a", PlayerID: p}, Side{TeamID: "b", PlayerID: q})
	assert.Equal(t, StatePending, m.State())
	_, ok := m.Winner()
	assert.False(t, ok)

	m.Status = MatchCompleted
	m.Result = &Result{HomeScore: 0, AwayScore: 2, WinnerTeamID: "b", WinnerPlayerID: q}
	assert.Equal(t, StateCompleted, m.State())
	assert.True(t, m.IsCompleted())
	w, ok := m.Winner()
	require.True(t, ok)
	assert.Equal(t, Side{TeamID: "b", PlayerID: q}, w)
}
