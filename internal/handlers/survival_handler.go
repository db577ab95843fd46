package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"quiz-engine/internal/models"
	"quiz-engine/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	ActionStartSession    = "start_session"
	ActionGetNextQuestion = "get_next_question"
	ActionSubmitAnswer    = "submit_answer"
)

// SurvivalHandler dispatches the survival-mode endpoint. Any failure,
// including a malformed body or an unknown action, answers 500 with an
// error envelope; the clients only branch on the success flag.
type SurvivalHandler struct {
	Service       *service.SurvivalService
	AnswerService *service.AnswerService
}

func NewSurvivalHandler(s *service.SurvivalService, as *service.AnswerService) *SurvivalHandler {
	return &SurvivalHandler{
		Service:       s,
		AnswerService: as,
	}
}

func (h *SurvivalHandler) Handle(c *gin.Context) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   fmt.Sprintf("Invalid request body: %v", err),
		})
		return
	}

	switch req.Action {
	case ActionStartSession:
		session, err := h.Service.StartSession(context.Background(), req.startRequest())
		if err != nil {
			h.fail(c, err)
			return
		}
		// the clients read the session fields off the top-level body
		c.JSON(http.StatusOK, session)

	case ActionGetNextQuestion:
		resp, err := h.Service.GetNextQuestion(context.Background(), req.SessionID)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)

	case ActionSubmitAnswer:
		resp, err := h.Service.SubmitAnswer(context.Background(), req.answerRequest())
		if err != nil {
			h.fail(c, err)
			return
		}
		h.recordAnswer(req)
		c.JSON(http.StatusOK, resp)

	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   fmt.Sprintf("Unknown action: %s", req.Action),
		})
	}
}

func (h *SurvivalHandler) fail(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Success: false,
		Error:   err.Error(),
	})
}

// SessionAnswers retrieves all recorded answers for a survival session.
func (h *SurvivalHandler) SessionAnswers(c *gin.Context) {
	sessionID := c.Param("id")

	if h.AnswerService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Answer service not available",
		})
		return
	}

	answers, err := h.AnswerService.GetSessionAnswers(context.Background(), models.ModeSurvival, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get answers",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"answers":    answers,
		"count":      len(answers),
		"session_id": sessionID,
	})
}

// recordAnswer keeps a per-answer audit record. Failures are ignored,
// the gameplay response must not depend on it.
func (h *SurvivalHandler) recordAnswer(req actionRequest) {
	if h.AnswerService == nil {
		return
	}
	_ = h.AnswerService.RecordAnswer(context.Background(), &models.SessionAnswer{
		Mode:             models.ModeSurvival,
		SessionID:        req.SessionID,
		QuestionID:       req.QuestionID,
		SelectedOptionID: req.SelectedOptionID,
		WasCorrect:       req.WasCorrect,
		TimeTakenSeconds: req.TimeTakenSeconds,
		AnsweredAt:       time.Now().UTC(),
	})
}
