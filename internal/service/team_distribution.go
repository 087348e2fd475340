package service

import (
	"github.com/AdamBeresnev/fc-knockout/internal/bracket"
	"github.com/AdamBeresnev/fc-knockout/internal/utils"
)

// DistributeTeams hands out the selected teams at random so that every player ends up with
// the same number of teams. With pots each player gets an equal share of both pots when
// that is possible.
func (e *Engine) DistributeTeams(players []bracket.Player, teams []bracket.Team) []bracket.Player {
	out := make([]bracket.Player, len(players))
	for i, p := range players {
		p.TeamIDs = []string{}
		out[i] = p
	}
	if len(players) == 0 {
		return out
	}

	perPlayer := len(teams) / len(players)
	deck := utils.Shuffle(e.rng, teams)

	if usesPots(teams) {
		var pot1, pot2 []bracket.Team
		for _, t := range deck {
			switch t.Pot {
			case bracket.Pot1:
				pot1 = append(pot1, t)
			case bracket.Pot2:
				pot2 = append(pot2, t)
			}
		}

		balanced := len(pot1) == len(pot2) && len(pot1)+len(pot2) == len(teams)
		if balanced && perPlayer%2 == 0 {
			half := perPlayer / 2
			for i := range out {
				out[i].TeamIDs = append(teamIDs(pot1[i*half:(i+1)*half]), teamIDs(pot2[i*half:(i+1)*half])...)
			}
			return out
		}
		if balanced {
			deck = append(pot1, pot2...)
		}
	}

	for i := range out {
		out[i].TeamIDs = teamIDs(deck[i*perPlayer : (i+1)*perPlayer])
	}
	return out
}

func teamIDs(teams []bracket.Team) []string {
	ids := make([]string, 0, len(teams))
	for _, t := range teams {
		ids = append(ids, t.ID)
	}
	return ids
}
