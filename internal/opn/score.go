// Package opn computes the OPN index, a 0-1000 score summarizing a
// user's preparation: quality trend (400), recent activity (300),
// competitiveness (200) and momentum (100).
package opn

import (
	"math"
	"time"
)

const (
	QualityTrendMax   = 400.0
	RecentActivityMax = 300.0
	CompetitiveMax    = 200.0
	MomentumMax       = 100.0

	evolutionMax      = 250.0
	testsScoreMax     = 150.0
	questionsScoreMax = 100.0
	activeDaysMax     = 50.0
	positionScoreMax  = 150.0
	diversityMax      = 50.0
	accelerationMax   = 60.0
	improvementMax    = 40.0

	// 500 answered questions in 30 days scores the full questions
	// component; one finished test per day the full tests component.
	questionsPerMonthTarget = 500
	testsPerMonthTarget     = 30
)

// WindowStats aggregates a user's finished tests inside one time window.
type WindowStats struct {
	Correct       int
	Wrong         int
	Questions     int
	TestsFinished int
	ActiveDays    int
}

// HistoricalStats carries the lifetime counters from the user document.
type HistoricalStats struct {
	RightQuestions int
	WrongQuestions int
	CreatedAt      time.Time
}

// UserStats is everything the index needs about one user.
type UserStats struct {
	Last7d     WindowStats
	Last30d    WindowStats
	Last90d    WindowStats
	Historical HistoricalStats
}

// Components holds the four partial scores; Total rounds their sum.
type Components struct {
	QualityTrend   float64
	RecentActivity float64
	Competitive    float64
	Momentum       float64
}

func (c Components) Total() int {
	return int(math.Round(c.QualityTrend + c.RecentActivity + c.Competitive + c.Momentum))
}

// SuccessRate is correct/(correct+wrong), 0 when nothing was answered.
func SuccessRate(correct, wrong int) float64 {
	total := correct + wrong
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// QualityTrend scores the evolution of the success rate: a base for the
// current 30-day rate plus bonuses for improving over the 90-day and
// lifetime rates. Only improvements count, declines score zero.
func QualityTrend(stats UserStats) float64 {
	rate30 := SuccessRate(stats.Last30d.Correct, stats.Last30d.Wrong)
	rate90 := SuccessRate(stats.Last90d.Correct, stats.Last90d.Wrong)
	rateHist := SuccessRate(stats.Historical.RightQuestions, stats.Historical.WrongQuestions)

	improvement30vs90 := 0.0
	if rate90 > 0 {
		improvement30vs90 = (rate30 - rate90) / rate90
	}
	improvement30vsHist := 0.0
	if rateHist > 0 {
		improvement30vsHist = (rate30 - rateHist) / rateHist
	}

	trendPoints := 100*math.Max(0, improvement30vs90) + 50*math.Max(0, improvement30vsHist)
	basePoints := rate30 * 100

	evolution := math.Min(trendPoints+basePoints, evolutionMax)
	return math.Min(evolution, QualityTrendMax)
}

// RecentActivity scores the last 30 days of practice volume: tests
// finished (normalized by account age), questions answered and distinct
// active days.
func RecentActivity(stats UserStats, now time.Time) float64 {
	daysSinceRegistration := math.Max(1, math.Floor(now.Sub(stats.Historical.CreatedAt).Hours()/24))
	testsPerMonth := float64(stats.Last30d.TestsFinished) / (daysSinceRegistration / 30)
	activityRatio := testsPerMonth / testsPerMonthTarget
	testsScore := math.Min(activityRatio*testsScoreMax, testsScoreMax)

	questionsScore := math.Min(float64(stats.Last30d.Questions)/questionsPerMonthTarget*questionsScoreMax, questionsScoreMax)

	daysScore := float64(stats.Last30d.ActiveDays) / 30 * activeDaysMax

	return math.Min(testsScore+questionsScore+daysScore, RecentActivityMax)
}

// PositionPoints maps a mock-ranking position to points. Unranked
// entries (position <= 0) count as last place.
func PositionPoints(position int) int {
	switch {
	case position <= 0:
		return 1
	case position <= 1:
		return 15
	case position <= 3:
		return 12
	case position <= 5:
		return 10
	case position <= 10:
		return 8
	case position <= 25:
		return 5
	case position <= 50:
		return 3
	default:
		return 1
	}
}

// Competitive scores mock-ranking presence: points per position held,
// plus a diversity bonus for covering more of the available mock topics.
// A user with no rankings scores zero.
func Competitive(positions []int, distinctTopics, totalMockTopics int) float64 {
	if len(positions) == 0 {
		return 0
	}

	positionTotal := 0
	for _, p := range positions {
		positionTotal += PositionPoints(p)
	}
	positionScore := math.Min(float64(positionTotal), positionScoreMax)

	diversityScore := 0.0
	if totalMockTopics > 0 {
		diversityScore = float64(distinctTopics) / float64(totalMockTopics) * diversityMax
	}

	return math.Min(positionScore+diversityScore, CompetitiveMax)
}

// Momentum rewards acceleration: answering more per day in the last week
// than the last month, and a better success rate in the last week than
// the last month. Declines score zero.
func Momentum(stats UserStats) float64 {
	perDay7 := float64(stats.Last7d.Questions) / 7
	perDay30 := float64(stats.Last30d.Questions) / 30

	acceleration := 0.0
	if perDay30 > 0 {
		acceleration = math.Max(0, math.Min((perDay7-perDay30)/perDay30*accelerationMax, accelerationMax))
	}

	rate7 := SuccessRate(stats.Last7d.Correct, stats.Last7d.Wrong)
	rate30 := SuccessRate(stats.Last30d.Correct, stats.Last30d.Wrong)

	improvement := 0.0
	if rate30 > 0 {
		improvement = math.Max(0, math.Min((rate7-rate30)/rate30*100, improvementMax))
	}

	return math.Min(acceleration+improvement, MomentumMax)
}
