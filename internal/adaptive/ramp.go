package adaptive

// Difficulty window bounds shared by both modes.
const (
	InitialDifficultyFloor   = 0.0
	InitialDifficultyCeiling = 0.3
	MaxDifficulty            = 1.0

	windowWidth = 0.3
)

// Ramp maps a progression counter to a level and a level to a difficulty
// window. Survival levels on questions answered, time-attack on questions
// correct; each mode supplies its own increment.
type Ramp struct {
	Increment         float64
	QuestionsPerLevel int
}

var (
	SurvivalRamp   = Ramp{Increment: 0.05, QuestionsPerLevel: 5}
	TimeAttackRamp = Ramp{Increment: 0.08, QuestionsPerLevel: 3}
)

// Level returns the level reached after progress counted questions.
// Level 1 is the starting level.
func (r Ramp) Level(progress int) int {
	if progress < 0 {
		progress = 0
	}
	return progress/r.QuestionsPerLevel + 1
}

// Range returns the difficulty window for a level. The floor advances by
// Increment per level and the window keeps a fixed width, both clamped so
// the window never leaves [0, MaxDifficulty].
func (r Ramp) Range(level int) (floor, ceiling float64) {
	floor = float64(level-1) * r.Increment
	if floor > MaxDifficulty-windowWidth {
		floor = MaxDifficulty - windowWidth
	}
	if floor < 0 {
		floor = 0
	}

	ceiling = floor + windowWidth
	if ceiling > MaxDifficulty {
		ceiling = MaxDifficulty
	}
	if ceiling < windowWidth {
		ceiling = windowWidth
	}
	return floor, ceiling
}
