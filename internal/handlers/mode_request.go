package handlers

import "quiz-engine/internal/models"

// actionRequest is the envelope both mode endpoints share. The clients
// send one flat JSON object with an action discriminator; fields not
// relevant to the action are simply absent.
type actionRequest struct {
	Action string `json:"action"`

	// start_session
	UserID           int64 `json:"userId"`
	AcademyID        int   `json:"academyId"`
	TopicTypeID      *int  `json:"topicTypeId"`
	SpecialtyID      *int  `json:"specialtyId"`
	TimeLimitSeconds int   `json:"timeLimitSeconds"`

	// get_next_question / submit_answer
	SessionID        string  `json:"sessionId"`
	QuestionID       string  `json:"questionId"`
	SelectedOptionID *string `json:"selectedOptionId"`
	WasCorrect       bool    `json:"wasCorrect"`
	TimeTakenSeconds int     `json:"timeTakenSeconds"`
}

func (r actionRequest) startRequest() models.StartSessionRequest {
	return models.StartSessionRequest{
		UserID:           r.UserID,
		AcademyID:        r.AcademyID,
		TopicTypeID:      r.TopicTypeID,
		SpecialtyID:      r.SpecialtyID,
		TimeLimitSeconds: r.TimeLimitSeconds,
	}
}

func (r actionRequest) answerRequest() models.SubmitAnswerRequest {
	return models.SubmitAnswerRequest{
		SessionID:        r.SessionID,
		QuestionID:       r.QuestionID,
		SelectedOptionID: r.SelectedOptionID,
		WasCorrect:       r.WasCorrect,
		TimeTakenSeconds: r.TimeTakenSeconds,
	}
}
