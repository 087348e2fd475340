package bracket

import (
	"fmt"
	"math/bits"
)

// TotalRounds is log2 of the team count. The count must be a power of two.
func TotalRounds(teamCount int) int {
	if teamCount <= 1 {
		return 0
	}
	return bits.Len(uint(teamCount)) - 1
}

// MatchesInRound is the number of matches a full bracket has in the given round
func MatchesInRound(teamCount, round int) int {
	if round < 1 {
		return 0
	}
	return teamCount >> round
}

func RoundName(teamCount, round int) string {
	switch m := MatchesInRound(teamCount, round); m {
	case 1:
		return "Final"
	case 2:
		return "Semi Finals"
	case 4:
		return "Quarter Finals"
	default:
		return fmt.Sprintf("Round of %d", m*2)
	}
}

// MatchesForRound keeps the input order, sort by MatchIndex first if bracket order matters
func MatchesForRound(matches []Match, round int) []Match {
	var result []Match
	for _, m := range matches {
		if m.Round == round {
			result = append(result, m)
		}
	}
	return result
}

func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
