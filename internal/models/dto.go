package models

// Wire shapes for the mode endpoints. Requests are camelCase; session
// payloads serialize with their snake_case document tags. The question
// responses use gameOver/timeUp while the answer responses use
// game_over/time_up: the mobile clients depend on that split.

type StartSessionRequest struct {
	UserID           int64 `json:"userId"`
	AcademyID        int   `json:"academyId"`
	TopicTypeID      *int  `json:"topicTypeId"`
	SpecialtyID      *int  `json:"specialtyId"`
	TimeLimitSeconds int   `json:"timeLimitSeconds"`
}

type SubmitAnswerRequest struct {
	SessionID        string  `json:"sessionId"`
	QuestionID       string  `json:"questionId"`
	SelectedOptionID *string `json:"selectedOptionId"`
	WasCorrect       bool    `json:"wasCorrect"`
	TimeTakenSeconds int     `json:"timeTakenSeconds"`
}

type SurvivalQuestionResponse struct {
	Success  bool             `json:"success"`
	Question *Question        `json:"question,omitempty"`
	Options  []QuestionOption `json:"options,omitempty"`
	Session  *SurvivalSession `json:"session"`
	GameOver bool             `json:"gameOver"`
	Message  string           `json:"message,omitempty"`
}

type SurvivalAnswerResponse struct {
	Success    bool             `json:"success"`
	Session    *SurvivalSession `json:"session"`
	GameOver   bool             `json:"game_over"`
	FinalScore *int             `json:"final_score,omitempty"`
}

type TimeAttackQuestionResponse struct {
	Success  bool               `json:"success"`
	Question *Question          `json:"question,omitempty"`
	Options  []QuestionOption   `json:"options,omitempty"`
	Session  *TimeAttackSession `json:"session"`
	TimeUp   bool               `json:"timeUp"`
	Message  string             `json:"message,omitempty"`
}

type TimeAttackAnswerResponse struct {
	Success      bool               `json:"success"`
	Session      *TimeAttackSession `json:"session"`
	TimeUp       bool               `json:"time_up"`
	FinalScore   *int               `json:"final_score,omitempty"`
	PointsEarned int                `json:"points_earned"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
