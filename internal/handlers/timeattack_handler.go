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

// TimeAttackHandler dispatches the time-attack endpoint with the same
// action envelope and error contract as survival mode.
type TimeAttackHandler struct {
	Service       *service.TimeAttackService
	AnswerService *service.AnswerService
}

func NewTimeAttackHandler(s *service.TimeAttackService, as *service.AnswerService) *TimeAttackHandler {
	return &TimeAttackHandler{
		Service:       s,
		AnswerService: as,
	}
}

func (h *TimeAttackHandler) Handle(c *gin.Context) {
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
		h.recordAnswer(req, resp.PointsEarned)
		c.JSON(http.StatusOK, resp)

	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   fmt.Sprintf("Unknown action: %s", req.Action),
		})
	}
}

func (h *TimeAttackHandler) fail(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Success: false,
		Error:   err.Error(),
	})
}

// SessionAnswers retrieves all recorded answers for a time-attack session.
func (h *TimeAttackHandler) SessionAnswers(c *gin.Context) {
	sessionID := c.Param("id")

	if h.AnswerService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Answer service not available",
		})
		return
	}

	answers, err := h.AnswerService.GetSessionAnswers(context.Background(), models.ModeTimeAttack, sessionID)
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

func (h *TimeAttackHandler) recordAnswer(req actionRequest, points int) {
	if h.AnswerService == nil {
		return
	}
	_ = h.AnswerService.RecordAnswer(context.Background(), &models.SessionAnswer{
		Mode:             models.ModeTimeAttack,
		SessionID:        req.SessionID,
		QuestionID:       req.QuestionID,
		SelectedOptionID: req.SelectedOptionID,
		WasCorrect:       req.WasCorrect,
		TimeTakenSeconds: req.TimeTakenSeconds,
		PointsEarned:     points,
		AnsweredAt:       time.Now().UTC(),
	})
}
