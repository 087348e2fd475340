package views

import (
	"bytes"
	"context"
	"testing"

	"github.com/AdamBeresnev/fc-knockout/internal/bracket"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTournament() *bracket.Tournament {
	alice := bracket.Player{ID: uuid.New(), Name: "Alice", TeamIDs: []string{"rma", "bar"}}
	bob := bracket.Player{ID: uuid.New(), Name: "Bob", TeamIDs: []string{"mci", "liv"}}

	semi1 := bracket.NewMatch(1, 1, bracket.Side{TeamID: "bar", PlayerID: alice.ID}, bracket.Side{TeamID: "liv", PlayerID: bob.ID})
	semi0 := bracket.NewMatch(1, 0, bracket.Side{TeamID: "rma", PlayerID: alice.ID}, bracket.Side{TeamID: "mci", PlayerID: bob.ID})
	semi0.Status = bracket.MatchCompleted
	semi0.Result = &bracket.Result{HomeScore: 2, AwayScore: 1, WinnerTeamID: "rma", WinnerPlayerID: alice.ID}

	return &bracket.Tournament{
		ID:           uuid.New(),
		Phase:        bracket.PhaseBracket,
		PlayerCount:  2,
		TeamCount:    4,
		Players:      []bracket.Player{alice, bob},
		CurrentRound: 1,
		SelectedTeams: []bracket.Team{
			{ID: "rma", Name: "Real Madrid"},
			{ID: "bar", Name: "Barcelona"},
			{ID: "mci", Name: "Manchester City"},
			{ID: "liv", Name: "Liverpool"},
		},
		Matches: []bracket.Match{semi1, semi0},
	}
}

func TestPrepareBracketData(t *testing.T) {
	data := PrepareBracketData(sampleTournament())

	require.Len(t, data.Rounds, 1)
	round := data.Rounds[0]
	assert.Equal(t, "Semi Finals", round.Name)
	assert.True(t, round.Current)
	require.Len(t, round.Matches, 2)
	assert.Equal(t, 0, round.Matches[0].MatchIndex)
	assert.Equal(t, "Real Madrid", round.Matches[0].HomeTeam.Name)
	assert.Equal(t, "Bob", round.Matches[0].AwayPlayer)
	assert.Len(t, data.TeamMap, 4)
}

func TestPrepareBracketDataDuringSetup(t *testing.T) {
	tournament := sampleTournament()
	tournament.Phase = bracket.PhaseAssignTeams
	tournament.Matches = nil

	data := PrepareBracketData(tournament)

	assert.Empty(t, data.Rounds)
}

func TestBracketPageRenders(t *testing.T) {
	var buf bytes.Buffer

	err := BracketPage(sampleTournament()).Render(context.Background(), &buf)

	require.NoError(t, err)
	html := buf.String()
	assert.Contains(t, html, "Semi Finals")
	assert.Contains(t, html, "2 - 1")
	assert.Contains(t, html, "Full time")
	assert.Contains(t, html, "Upcoming")
}

func TestIndexRenders(t *testing.T) {
	var buf bytes.Buffer

	err := Index([]bracket.Tournament{*sampleTournament()}).Render(context.Background(), &buf)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "2 players, 4 teams")
}

func TestBracketPageEscapesUserInput(t *testing.T) {
	tournament := sampleTournament()
	tournament.Players[0].Name = "<script>alert(1)</script>"
	tournament.SelectedTeams[0].Name = `Real "Madrid" & Co`
	tournament.SelectedTeams[0].LogoURL = "javascript:alert(1)"
	var buf bytes.Buffer

	err := BracketPage(tournament).Render(context.Background(), &buf)

	require.NoError(t, err)
	html := buf.String()
	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.Contains(t, html, "Real &#34;Madrid&#34; &amp; Co")
	assert.NotContains(t, html, "javascript:alert(1)")
}

func TestIndexWithoutTournaments(t *testing.T) {
	var buf bytes.Buffer

	err := Index(nil).Render(context.Background(), &buf)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No tournaments yet.")
}
