package service

import (
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/AdamBeresnev/fc-knockout/internal/bracket"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newTestEngine(seed uint64) *Engine {
	return NewEngine(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// catalogIDs returns the first n catalog team ids
func catalogIDs(from, n int) []string {
	ids := make([]string, 0, n)
	for i := from; i < from+n; i++ {
		ids = append(ids, strconv.Itoa(i))
	}
	return ids
}

func playerNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = "Player " + strconv.Itoa(i+1)
	}
	return names
}

// newBracket runs the whole setup with a random assignment and returns the seeded tournament
func newBracket(t *testing.T, e *Engine, players, teams int) *bracket.Tournament {
	t.Helper()

	tournament, err := e.SetPlayers(e.NewTournament(), playerNames(players))
	require.NoError(t, err)
	tournament, err = e.SetTeamCount(tournament, teams)
	require.NoError(t, err)
	if teams > 2 {
		tournament, err = e.PickTeams(tournament, catalogIDs(1, teams/2), catalogIDs(1+teams/2, teams/2))
	} else {
		tournament, err = e.PickTeams(tournament, catalogIDs(1, teams), nil)
	}
	require.NoError(t, err)
	tournament, err = e.RandomizeAssignment(tournament)
	require.NoError(t, err)
	tournament, err = e.GenerateBracket(tournament)
	require.NoError(t, err)
	return tournament
}

// playCurrentRound resolves every self-play choice with the home team and lets home win
func playCurrentRound(t *testing.T, e *Engine, tournament *bracket.Tournament) *bracket.Tournament {
	t.Helper()

	round := tournament.CurrentRound
	for _, m := range bracket.MatchesForRound(tournament.Matches, round) {
		var err error
		if m.State() == bracket.StateNeedsSelfPlayChoice {
			tournament, err = e.ChooseTeam(tournament, m.ID, m.Home.TeamID)
			require.NoError(t, err)
		}
		tournament, err = e.CompleteMatch(tournament, m.ID, 2, 1)
		require.NoError(t, err)
	}
	return tournament
}

func side(teamID string, playerID uuid.UUID) bracket.Side {
	return bracket.Side{TeamID: teamID, PlayerID: playerID}
}

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite3", "file::memory:")
	require.NoError(t, err, "Failed to connect to in-memory DB")
	database.SetMaxOpenConns(1)

	driver, err := sqlite3.WithInstance(database.DB, &sqlite3.Config{})
	require.NoError(t, err, "Failed to create migrate driver instance")

	m, err := migrate.NewWithDatabaseInstance("file://../../migrations", "sqlite3", driver)
	require.NoError(t, err, "Failed to create migrate instance")

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to apply migrations")
	}

	return database
}
