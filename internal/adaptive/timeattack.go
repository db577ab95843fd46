package adaptive

import "math"

// Time-attack scoring: every correct answer earns base points plus a
// streak bonus and a speed bonus, and buys time; wrong answers cost time
// and reset the streak.
const (
	BasePointsPerCorrect  = 100
	StreakBonusPerLevel   = 10
	SpeedBonusMax         = 50
	SpeedThresholdSeconds = 5

	TimeBonusSecondsOnCorrect = 5
	TimePenaltySecondsOnWrong = 2

	timeAttackPointsPerLevel   = 50
	timeAttackAccuracyBonusMax = 1000
)

// QuestionScore computes the points earned by a single answer.
// streakBefore is the streak value before this answer is applied.
// An answer reported with timeTakenSeconds <= 0 gets the full speed bonus.
func QuestionScore(wasCorrect bool, streakBefore, timeTakenSeconds int) int {
	if !wasCorrect {
		return 0
	}

	score := BasePointsPerCorrect
	score += streakBefore * StreakBonusPerLevel

	speedRatio := 1.0
	if timeTakenSeconds > 0 {
		speedRatio = math.Min(1, float64(SpeedThresholdSeconds)/float64(timeTakenSeconds))
	}
	score += int(math.Floor(SpeedBonusMax * speedRatio))

	return score
}

// AdjustTime applies the per-answer timer delta and clamps at zero.
func AdjustTime(timeRemainingSeconds int, wasCorrect bool) int {
	if wasCorrect {
		timeRemainingSeconds += TimeBonusSecondsOnCorrect
	} else {
		timeRemainingSeconds -= TimePenaltySecondsOnWrong
	}
	if timeRemainingSeconds < 0 {
		timeRemainingSeconds = 0
	}
	return timeRemainingSeconds
}

// TimeAttackFinalScore computes the score of a finished time-attack run:
// accumulated points + floor(accuracy*1000) + level*50. A run with no
// answered questions earns no accuracy bonus.
func TimeAttackFinalScore(currentScore, questionsCorrect, questionsAnswered, level int) int {
	accuracyBonus := 0
	if questionsAnswered > 0 {
		accuracy := float64(questionsCorrect) / float64(questionsAnswered)
		accuracyBonus = int(math.Floor(accuracy * timeAttackAccuracyBonusMax))
	}

	return currentScore + accuracyBonus + level*timeAttackPointsPerLevel
}
