package models

import "time"

const (
	ModeSurvival   = "survival"
	ModeTimeAttack = "time_attack"
)

// SessionAnswer is the per-question record written on every answer
// submission, for either mode.
type SessionAnswer struct {
	ID               string    `bson:"_id,omitempty" json:"id"`
	Mode             string    `bson:"mode" json:"mode"`
	SessionID        string    `bson:"session_id" json:"session_id"`
	QuestionID       string    `bson:"question_id" json:"question_id"`
	SelectedOptionID *string   `bson:"selected_option_id" json:"selected_option_id"`
	WasCorrect       bool      `bson:"was_correct" json:"was_correct"`
	TimeTakenSeconds int       `bson:"time_taken_seconds" json:"time_taken_seconds"`
	PointsEarned     int       `bson:"points_earned" json:"points_earned"`
	AnsweredAt       time.Time `bson:"answered_at" json:"answered_at"`
}
