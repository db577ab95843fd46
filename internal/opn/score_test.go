package opn

import (
	"math"
	"testing"
	"time"
)

func TestSuccessRate(t *testing.T) {
	if got := SuccessRate(0, 0); got != 0 {
		t.Errorf("empty rate = %v, want 0", got)
	}
	if got := SuccessRate(3, 1); got != 0.75 {
		t.Errorf("rate = %v, want 0.75", got)
	}
	if got := SuccessRate(0, 5); got != 0 {
		t.Errorf("all-wrong rate = %v, want 0", got)
	}
}

func TestQualityTrend_NoHistoryScoresBaseOnly(t *testing.T) {
	stats := UserStats{
		Last30d: WindowStats{Correct: 80, Wrong: 20},
	}
	// no 90-day or lifetime rate to improve on: just the base 0.8*100
	if got := QualityTrend(stats); math.Abs(got-80) > 1e-9 {
		t.Errorf("QualityTrend = %v, want 80", got)
	}
}

func TestQualityTrend_ImprovementAddsTrendPoints(t *testing.T) {
	stats := UserStats{
		Last30d:    WindowStats{Correct: 80, Wrong: 20},
		Last90d:    WindowStats{Correct: 60, Wrong: 40},
		Historical: HistoricalStats{RightQuestions: 50, WrongQuestions: 50},
	}
	// base 80, 30v90 improvement (0.8-0.6)/0.6 * 100 = 33.33,
	// 30vHist improvement (0.8-0.5)/0.5 * 50 = 30
	want := 80 + (0.8-0.6)/0.6*100 + (0.8-0.5)/0.5*50
	if got := QualityTrend(stats); math.Abs(got-want) > 1e-9 {
		t.Errorf("QualityTrend = %v, want %v", got, want)
	}
}

func TestQualityTrend_DeclineScoresBaseOnly(t *testing.T) {
	stats := UserStats{
		Last30d: WindowStats{Correct: 50, Wrong: 50},
		Last90d: WindowStats{Correct: 80, Wrong: 20},
	}
	if got := QualityTrend(stats); math.Abs(got-50) > 1e-9 {
		t.Errorf("QualityTrend after decline = %v, want 50", got)
	}
}

func TestQualityTrend_CappedAtEvolutionMax(t *testing.T) {
	stats := UserStats{
		Last30d: WindowStats{Correct: 100, Wrong: 0},
		Last90d: WindowStats{Correct: 1, Wrong: 99},
	}
	if got := QualityTrend(stats); got != 250 {
		t.Errorf("QualityTrend = %v, want cap 250", got)
	}
}

func TestRecentActivity_FullMarks(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	stats := UserStats{
		Last30d: WindowStats{
			TestsFinished: 30,
			Questions:     500,
			ActiveDays:    30,
		},
		Historical: HistoricalStats{CreatedAt: now.AddDate(0, 0, -30)},
	}
	if got := RecentActivity(stats, now); got != 300 {
		t.Errorf("RecentActivity = %v, want 300", got)
	}
}

func TestRecentActivity_NewAccountNotPenalized(t *testing.T) {
	// registered today: daysSinceRegistration clamps to 1, so even one
	// test rates as heavy activity
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	stats := UserStats{
		Last30d:    WindowStats{TestsFinished: 1, Questions: 10, ActiveDays: 1},
		Historical: HistoricalStats{CreatedAt: now},
	}
	got := RecentActivity(stats, now)
	// tests component saturates: 1/(1/30) = 30 per month
	wantTests := 150.0
	wantQuestions := 10.0 / 500 * 100
	wantDays := 1.0 / 30 * 50
	want := wantTests + wantQuestions + wantDays
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("RecentActivity = %v, want %v", got, want)
	}
}

func TestRecentActivity_Inactive(t *testing.T) {
	now := time.Now()
	stats := UserStats{
		Historical: HistoricalStats{CreatedAt: now.AddDate(-1, 0, 0)},
	}
	if got := RecentActivity(stats, now); got != 0 {
		t.Errorf("RecentActivity = %v, want 0", got)
	}
}

func TestPositionPoints(t *testing.T) {
	cases := []struct {
		position int
		want     int
	}{
		{1, 15},
		{2, 12},
		{3, 12},
		{4, 10},
		{5, 10},
		{6, 8},
		{10, 8},
		{11, 5},
		{25, 5},
		{26, 3},
		{50, 3},
		{51, 1},
		{999, 1},
		{0, 1},
		{-1, 1},
	}
	for _, c := range cases {
		if got := PositionPoints(c.position); got != c.want {
			t.Errorf("PositionPoints(%d) = %d, want %d", c.position, got, c.want)
		}
	}
}

func TestCompetitive_NoRankings(t *testing.T) {
	if got := Competitive(nil, 0, 10); got != 0 {
		t.Errorf("Competitive with no rankings = %v, want 0", got)
	}
}

func TestCompetitive_PositionsAndDiversity(t *testing.T) {
	// 15 + 12 + 8 = 35 position points, 3/10 topics = 15 diversity
	got := Competitive([]int{1, 3, 10}, 3, 10)
	if math.Abs(got-50) > 1e-9 {
		t.Errorf("Competitive = %v, want 50", got)
	}
}

func TestCompetitive_PositionPointsCapped(t *testing.T) {
	positions := make([]int, 20)
	for i := range positions {
		positions[i] = 1 // 20 * 15 = 300, cap at 150
	}
	got := Competitive(positions, 20, 20)
	if math.Abs(got-200) > 1e-9 {
		t.Errorf("Competitive = %v, want cap 200", got)
	}
}

func TestCompetitive_ZeroMockTopics(t *testing.T) {
	// no topics in the catalog: diversity contributes nothing
	got := Competitive([]int{1}, 1, 0)
	if got != 15 {
		t.Errorf("Competitive = %v, want 15", got)
	}
}

func TestMomentum_AccelerationAndImprovement(t *testing.T) {
	stats := UserStats{
		// 20/day last week vs 10/day last month: 100% acceleration, capped at 60
		Last7d:  WindowStats{Questions: 140, Correct: 90, Wrong: 10},
		Last30d: WindowStats{Questions: 300, Correct: 240, Wrong: 60},
	}
	// acceleration (20-10)/10*60 = 60 (cap), improvement (0.9-0.8)/0.8*100 = 12.5
	want := 60 + 12.5
	if got := Momentum(stats); math.Abs(got-want) > 1e-9 {
		t.Errorf("Momentum = %v, want %v", got, want)
	}
}

func TestMomentum_NoBaselineScoresZero(t *testing.T) {
	stats := UserStats{
		Last7d: WindowStats{Questions: 50, Correct: 40, Wrong: 10},
	}
	if got := Momentum(stats); got != 0 {
		t.Errorf("Momentum without a 30-day baseline = %v, want 0", got)
	}
}

func TestMomentum_DeclineScoresZero(t *testing.T) {
	stats := UserStats{
		Last7d:  WindowStats{Questions: 7, Correct: 3, Wrong: 4},
		Last30d: WindowStats{Questions: 300, Correct: 240, Wrong: 60},
	}
	if got := Momentum(stats); got != 0 {
		t.Errorf("Momentum during decline = %v, want 0", got)
	}
}

func TestComponentsTotal_Rounds(t *testing.T) {
	c := Components{QualityTrend: 100.3, RecentActivity: 100.3, Competitive: 50.2, Momentum: 10.4}
	if got := c.Total(); got != 261 {
		t.Errorf("Total = %d, want 261", got)
	}
}

func TestComponentsTotal_MaxIndex(t *testing.T) {
	c := Components{
		QualityTrend:   QualityTrendMax,
		RecentActivity: RecentActivityMax,
		Competitive:    CompetitiveMax,
		Momentum:       MomentumMax,
	}
	if got := c.Total(); got != 1000 {
		t.Errorf("max Total = %d, want 1000", got)
	}
}
