package models

import "time"

// SurvivalSession is one survival-mode attempt. A user has at most one
// active survival session; starting a new one deactivates the rest.
type SurvivalSession struct {
	ID                string     `bson:"_id,omitempty" json:"id"`
	UserID            int64      `bson:"user_id" json:"user_id"`
	AcademyID         int        `bson:"academy_id" json:"academy_id"`
	TopicTypeID       *int       `bson:"topic_type_id" json:"topic_type_id"`
	SpecialtyID       *int       `bson:"specialty_id" json:"specialty_id"`
	LivesRemaining    int        `bson:"lives_remaining" json:"lives_remaining"`
	CurrentLevel      int        `bson:"current_level" json:"current_level"`
	QuestionsAnswered int        `bson:"questions_answered" json:"questions_answered"`
	QuestionsCorrect  int        `bson:"questions_correct" json:"questions_correct"`
	QuestionsSeen     []string   `bson:"questions_seen" json:"questions_seen"`
	DifficultyFloor   float64    `bson:"difficulty_floor" json:"difficulty_floor"`
	DifficultyCeiling float64    `bson:"difficulty_ceiling" json:"difficulty_ceiling"`
	IsActive          bool       `bson:"is_active" json:"is_active"`
	FinalScore        *int       `bson:"final_score" json:"final_score"`
	StartedAt         time.Time  `bson:"started_at" json:"started_at"`
	EndedAt           *time.Time `bson:"ended_at" json:"ended_at"`
	LastActivityAt    time.Time  `bson:"last_activity_at" json:"last_activity_at"`
}

// TimeAttackSession is one time-attack attempt. The timer moves only on
// answer submission: +5s on a correct answer, -2s on a wrong one, floor 0.
type TimeAttackSession struct {
	ID                   string     `bson:"_id,omitempty" json:"id"`
	UserID               int64      `bson:"user_id" json:"user_id"`
	AcademyID            int        `bson:"academy_id" json:"academy_id"`
	TopicTypeID          *int       `bson:"topic_type_id" json:"topic_type_id"`
	SpecialtyID          *int       `bson:"specialty_id" json:"specialty_id"`
	TimeLimitSeconds     int        `bson:"time_limit_seconds" json:"time_limit_seconds"`
	TimeRemainingSeconds int        `bson:"time_remaining_seconds" json:"time_remaining_seconds"`
	CurrentStreak        int        `bson:"current_streak" json:"current_streak"`
	BestStreak           int        `bson:"best_streak" json:"best_streak"`
	CurrentScore         int        `bson:"current_score" json:"current_score"`
	CurrentLevel         int        `bson:"current_level" json:"current_level"`
	QuestionsAnswered    int        `bson:"questions_answered" json:"questions_answered"`
	QuestionsCorrect     int        `bson:"questions_correct" json:"questions_correct"`
	QuestionsSeen        []string   `bson:"questions_seen" json:"questions_seen"`
	DifficultyFloor      float64    `bson:"difficulty_floor" json:"difficulty_floor"`
	DifficultyCeiling    float64    `bson:"difficulty_ceiling" json:"difficulty_ceiling"`
	IsActive             bool       `bson:"is_active" json:"is_active"`
	FinalScore           *int       `bson:"final_score" json:"final_score"`
	StartedAt            time.Time  `bson:"started_at" json:"started_at"`
	EndedAt              *time.Time `bson:"ended_at" json:"ended_at"`
	LastActivityAt       time.Time  `bson:"last_activity_at" json:"last_activity_at"`
}
