package game

import (
	constants "github.com/user-pratik/solomanTHEwise/internal/constants"
)

// Score computes the final score for a guess. Wrong guesses score zero.
// Correct guesses start from 50 minus the questions asked, then pay the
// cumulative hint penalty: the first hint is free, the second costs 5, the
// third another 10, the fourth another 15. The result never goes negative.
func Score(questionsAsked, hintLevel int, correct bool) int {
	if !correct {
		return 0
	}

	base := constants.BaseScore - questionsAsked
	if base < 0 {
		base = 0
	}

	penalty := 0
	if hintLevel > 1 {
		for k := 1; k < hintLevel; k++ {
			penalty += constants.HintPenaltyStep * k
		}
	}

	if score := base - penalty; score > 0 {
		return score
	}
	return 0
}
