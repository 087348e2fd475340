package views

import (
	"slices"

	"github.com/AdamBeresnev/fc-knockout/internal/bracket"
	"github.com/google/uuid"
)

type RoundView struct {
	Number  int
	Name    string
	Current bool
	Matches []MatchView
}

type MatchView struct {
	bracket.Match
	HomeTeam   bracket.Team
	AwayTeam   bracket.Team
	HomePlayer string
	AwayPlayer string
}

type BracketData struct {
	Tournament *bracket.Tournament
	Rounds     []RoundView
	PlayerMap  map[uuid.UUID]bracket.Player
	TeamMap    map[string]bracket.Team
}

// PrepareBracketData groups the matches by round in bracket order so templates can render them
func PrepareBracketData(t *bracket.Tournament) BracketData {
	playerMap := make(map[uuid.UUID]bracket.Player, len(t.Players))
	for _, p := range t.Players {
		playerMap[p.ID] = p
	}

	teamMap := make(map[string]bracket.Team, len(t.SelectedTeams))
	for _, team := range t.SelectedTeams {
		teamMap[team.ID] = team
	}

	var rounds []RoundView
	for r := 1; r <= t.CurrentRound && len(t.Matches) > 0; r++ {
		matches := bracket.MatchesForRound(t.Matches, r)
		slices.SortFunc(matches, func(a, b bracket.Match) int { return a.MatchIndex - b.MatchIndex })

		round := RoundView{
			Number:  r,
			Name:    t.RoundName(r),
			Current: r == t.CurrentRound && t.Phase == bracket.PhaseBracket,
			Matches: make([]MatchView, 0, len(matches)),
		}
		for _, m := range matches {
			round.Matches = append(round.Matches, MatchView{
				Match:      m,
				HomeTeam:   teamMap[m.Home.TeamID],
				AwayTeam:   teamMap[m.Away.TeamID],
				HomePlayer: playerMap[m.Home.PlayerID].Name,
				AwayPlayer: playerMap[m.Away.PlayerID].Name,
			})
		}
		rounds = append(rounds, round)
	}

	return BracketData{
		Tournament: t,
		Rounds:     rounds,
		PlayerMap:  playerMap,
		TeamMap:    teamMap,
	}
}
