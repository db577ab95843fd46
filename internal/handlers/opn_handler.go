package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"quiz-engine/internal/service"

	"github.com/gin-gonic/gin"
)

type OPNHandler struct {
	Service *service.OPNService
}

func NewOPNHandler(s *service.OPNService) *OPNHandler {
	return &OPNHandler{Service: s}
}

// Calculate recomputes the OPN index for one user or for everyone.
func (h *OPNHandler) Calculate(c *gin.Context) {
	var req struct {
		UserID         *int64 `json:"user_id"`
		RecalculateAll bool   `json:"recalculate_all"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request body",
		})
		return
	}
	if req.UserID == nil && !req.RecalculateAll {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "user_id or recalculate_all is required",
		})
		return
	}

	processed, last, err := h.Service.Recalculate(context.Background(), req.UserID, req.RecalculateAll)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	resp := gin.H{
		"success":         true,
		"users_processed": processed,
		"timestamp":       time.Now().UTC(),
	}
	if req.UserID != nil && last != nil {
		resp["result"] = last
	}
	c.JSON(http.StatusOK, resp)
}

// Leaderboard returns the top users by OPN index.
func (h *OPNHandler) Leaderboard(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		limit = 100
	}

	entries, err := h.Service.Leaderboard(context.Background(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"count":       len(entries),
		"leaderboard": entries,
	})
}
