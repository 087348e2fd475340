package service

import (
	"slices"

	"github.com/AdamBeresnev/fc-knockout/internal/bracket"
	"github.com/AdamBeresnev/fc-knockout/internal/utils"
	"github.com/google/uuid"
)

func usesPots(teams []bracket.Team) bool {
	return slices.ContainsFunc(teams, func(t bracket.Team) bool { return t.Pot != bracket.PotNone })
}

// Seed builds the round 1 matches from the teams every player owns.
// Without pots (or with only two teams) the ownership list is shuffled and paired in order.
// With pots every match puts a pot 1 team of one player against a pot 2 team of the next one.
func (e *Engine) Seed(players []bracket.Player, teams []bracket.Team) []bracket.Match {
	if !usesPots(teams) || len(teams) == 2 {
		return buildMatches(pairUp(utils.Shuffle(e.rng, ownership(players))), 1)
	}
	return buildMatches(fixSelfPlay(e.pairWithPots(players, teams)), 1)
}

func ownership(players []bracket.Player) []bracket.Side {
	var entries []bracket.Side
	for _, p := range players {
		for _, teamID := range p.TeamIDs {
			entries = append(entries, bracket.Side{TeamID: teamID, PlayerID: p.ID})
		}
	}
	return entries
}

func (e *Engine) pairWithPots(players []bracket.Player, teams []bracket.Team) [][2]bracket.Side {
	if len(players) == 0 {
		return nil
	}

	pots := make(map[string]bracket.Pot, len(teams))
	for _, t := range teams {
		pots[t.ID] = t.Pot
	}

	pot1 := make(map[uuid.UUID][]bracket.Side, len(players))
	pot2 := make(map[uuid.UUID][]bracket.Side, len(players))
	var unpotted []bracket.Side
	for _, p := range players {
		var own1, own2 []bracket.Side
		for _, teamID := range p.TeamIDs {
			side := bracket.Side{TeamID: teamID, PlayerID: p.ID}
			switch pots[teamID] {
			case bracket.Pot1:
				own1 = append(own1, side)
			case bracket.Pot2:
				own2 = append(own2, side)
			default:
				unpotted = append(unpotted, side)
			}
		}
		pot1[p.ID] = utils.Shuffle(e.rng, own1)
		pot2[p.ID] = utils.Shuffle(e.rng, own2)
	}

	order := utils.Shuffle(e.rng, players)
	perPair := len(teams) / len(players) / 2

	pairs := make([][2]bracket.Side, 0, len(teams)/2)
	for slot := 0; slot < perPair; slot++ {
		for i, a := range order {
			b := order[(i+1)%len(order)]
			if len(pot1[a.ID]) == 0 || len(pot2[b.ID]) == 0 {
				continue
			}
			home := pop(pot1, a.ID)
			away := pop(pot2, b.ID)
			pairs = append(pairs, [2]bracket.Side{home, away})
		}
	}

	// Whatever the cycle could not place (uneven manual assignment, one team per player)
	var rest1, rest2 []bracket.Side
	for _, p := range order {
		rest1 = append(rest1, pot1[p.ID]...)
		rest2 = append(rest2, pot2[p.ID]...)
	}
	for len(rest1) > 0 && len(rest2) > 0 {
		pairs = append(pairs, [2]bracket.Side{rest1[0], rest2[0]})
		rest1, rest2 = rest1[1:], rest2[1:]
	}
	remaining := append(append(rest1, rest2...), unpotted...)
	pairs = append(pairs, pairUp(remaining)...)

	return pairs
}

func pop(buckets map[uuid.UUID][]bracket.Side, id uuid.UUID) bracket.Side {
	bucket := buckets[id]
	last := bucket[len(bucket)-1]
	buckets[id] = bucket[:len(bucket)-1]
	return last
}

// fixSelfPlay swaps the away side of every pair where a player meets themself with the away
// side of another pair, as long as the swap does not create a new collision there.
// Pairs that cannot be fixed stay as they are and become self-play matches.
func fixSelfPlay(pairs [][2]bracket.Side) [][2]bracket.Side {
	for i := range pairs {
		owner := pairs[i][0].PlayerID
		if pairs[i][1].PlayerID != owner {
			continue
		}
		for j := range pairs {
			if j == i {
				continue
			}
			if pairs[j][1].PlayerID != owner && pairs[j][0].PlayerID != owner {
				pairs[i][1], pairs[j][1] = pairs[j][1], pairs[i][1]
				break
			}
		}
	}
	return pairs
}

func pairUp(entries []bracket.Side) [][2]bracket.Side {
	pairs := make([][2]bracket.Side, 0, len(entries)/2)
	for i := 0; i+1 < len(entries); i += 2 {
		pairs = append(pairs, [2]bracket.Side{entries[i], entries[i+1]})
	}
	return pairs
}

func buildMatches(pairs [][2]bracket.Side, round int) []bracket.Match {
	matches := make([]bracket.Match, 0, len(pairs))
	for i, pair := range pairs {
		matches = append(matches, bracket.NewMatch(round, i, pair[0], pair[1]))
	}
	return matches
}
