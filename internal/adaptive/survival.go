package adaptive

import "math"

// Survival mode rules: three lives, one lost per wrong answer, score only
// computed when the run ends.
const (
	SurvivalStartingLives = 3

	survivalPointsPerCorrect = 100
	survivalPointsPerLevel   = 50
	survivalAccuracyBonusMax = 500
)

// SurvivalFinalScore computes the score of a finished survival run:
// correct*100 + level*50 + floor(accuracy*500). A run with no answered
// questions earns no accuracy bonus.
func SurvivalFinalScore(questionsCorrect, questionsAnswered, level int) int {
	baseScore := questionsCorrect * survivalPointsPerCorrect
	levelBonus := level * survivalPointsPerLevel

	accuracyBonus := 0
	if questionsAnswered > 0 {
		accuracy := float64(questionsCorrect) / float64(questionsAnswered)
		accuracyBonus = int(math.Floor(accuracy * survivalAccuracyBonusMax))
	}

	return baseScore + levelBonus + accuracyBonus
}
