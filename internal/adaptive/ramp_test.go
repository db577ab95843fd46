package adaptive

import (
	"math"
	"testing"
)

func TestLevel_SurvivalThresholds(t *testing.T) {
	cases := []struct {
		progress int
		want     int
	}{
		{0, 1},
		{4, 1},
		{5, 2},
		{9, 2},
		{10, 3},
		{25, 6},
	}
	for _, c := range cases {
		if got := SurvivalRamp.Level(c.progress); got != c.want {
			t.Errorf("SurvivalRamp.Level(%d) = %d, want %d", c.progress, got, c.want)
		}
	}
}

func TestLevel_TimeAttackThresholds(t *testing.T) {
	cases := []struct {
		progress int
		want     int
	}{
		{0, 1},
		{2, 1},
		{3, 2},
		{5, 2},
		{6, 3},
		{12, 5},
	}
	for _, c := range cases {
		if got := TimeAttackRamp.Level(c.progress); got != c.want {
			t.Errorf("TimeAttackRamp.Level(%d) = %d, want %d", c.progress, got, c.want)
		}
	}
}

func TestLevel_NegativeProgress(t *testing.T) {
	if got := SurvivalRamp.Level(-3); got != 1 {
		t.Errorf("expected level 1 for negative progress, got %d", got)
	}
}

func TestRange_StartingWindow(t *testing.T) {
	floor, ceiling := SurvivalRamp.Range(1)
	if floor != 0.0 || ceiling != 0.3 {
		t.Errorf("level 1 window = [%.2f, %.2f], want [0.00, 0.30]", floor, ceiling)
	}
}

func TestRange_FloorAdvancesByIncrement(t *testing.T) {
	floor, ceiling := SurvivalRamp.Range(4)
	if math.Abs(floor-0.15) > 1e-9 {
		t.Errorf("survival level 4 floor = %.4f, want 0.15", floor)
	}
	if math.Abs(ceiling-0.45) > 1e-9 {
		t.Errorf("survival level 4 ceiling = %.4f, want 0.45", ceiling)
	}

	floor, ceiling = TimeAttackRamp.Range(3)
	if math.Abs(floor-0.16) > 1e-9 {
		t.Errorf("time attack level 3 floor = %.4f, want 0.16", floor)
	}
	if math.Abs(ceiling-0.46) > 1e-9 {
		t.Errorf("time attack level 3 ceiling = %.4f, want 0.46", ceiling)
	}
}

func TestRange_ClampsAtMaxDifficulty(t *testing.T) {
	for level := 1; level <= 100; level++ {
		floor, ceiling := SurvivalRamp.Range(level)
		if floor < 0 || floor > MaxDifficulty-windowWidth {
			t.Fatalf("level %d floor %.4f out of bounds", level, floor)
		}
		if ceiling < windowWidth || ceiling > MaxDifficulty {
			t.Fatalf("level %d ceiling %.4f out of bounds", level, ceiling)
		}
		if ceiling < floor {
			t.Fatalf("level %d window inverted: [%.4f, %.4f]", level, floor, ceiling)
		}
	}

	// at high levels the window saturates at the top
	floor, ceiling := SurvivalRamp.Range(50)
	if floor != MaxDifficulty-windowWidth || ceiling != MaxDifficulty {
		t.Errorf("saturated window = [%.2f, %.2f], want [0.70, 1.00]", floor, ceiling)
	}
}

func TestRange_MonotonicUntilSaturation(t *testing.T) {
	prevFloor := -1.0
	for level := 1; level <= 30; level++ {
		floor, _ := SurvivalRamp.Range(level)
		if floor < prevFloor {
			t.Fatalf("floor moved backwards at level %d: %.4f < %.4f", level, floor, prevFloor)
		}
		prevFloor = floor
	}
}
