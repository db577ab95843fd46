package models

import "time"

// UserAccount carries the lifetime counters kept on the user document.
type UserAccount struct {
	ID             int64     `bson:"_id" json:"id"`
	RightQuestions int       `bson:"right_questions" json:"right_questions"`
	WrongQuestions int       `bson:"wrong_questions" json:"wrong_questions"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// UserTest is one finished practice test, the unit the OPN activity
// windows aggregate over.
type UserTest struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	UserID         int64     `bson:"user_id" json:"user_id"`
	RightQuestions int       `bson:"right_questions" json:"right_questions"`
	WrongQuestions int       `bson:"wrong_questions" json:"wrong_questions"`
	QuestionCount  int       `bson:"question_count" json:"question_count"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// TopicMockRanking is a user's position in one mock-exam topic ranking.
type TopicMockRanking struct {
	ID           string  `bson:"_id,omitempty" json:"id"`
	UserID       int64   `bson:"user_id" json:"user_id"`
	TopicID      int     `bson:"topic_id" json:"topic_id"`
	FirstScore   float64 `bson:"first_score" json:"first_score"`
	RankPosition int     `bson:"rank_position" json:"rank_position"`
}

// OPNIndexRecord is one calculated OPN index snapshot.
type OPNIndexRecord struct {
	ID                  string    `bson:"_id,omitempty" json:"id"`
	UserID              int64     `bson:"user_id" json:"user_id"`
	OPNIndex            int       `bson:"opn_index" json:"opn_index"`
	QualityTrendScore   float64   `bson:"quality_trend_score" json:"quality_trend_score"`
	RecentActivityScore float64   `bson:"recent_activity_score" json:"recent_activity_score"`
	CompetitiveScore    float64   `bson:"competitive_score" json:"competitive_score"`
	MomentumScore       float64   `bson:"momentum_score" json:"momentum_score"`
	GlobalRank          int       `bson:"global_rank" json:"global_rank"`
	CalculatedAt        time.Time `bson:"calculated_at" json:"calculated_at"`
}
