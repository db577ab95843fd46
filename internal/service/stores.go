package service

import (
	"context"
	"errors"

	"quiz-engine/internal/models"
	"quiz-engine/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionNotActive = errors.New("session not active")
)

// SurvivalSessionStore is the durable record of survival attempts.
type SurvivalSessionStore interface {
	FindByID(ctx context.Context, id string) (*models.SurvivalSession, error)
	Create(ctx context.Context, session *models.SurvivalSession) error
	Update(ctx context.Context, id string, update bson.M) error
	DeactivateActive(ctx context.Context, userID int64) error
}

// TimeAttackSessionStore is the durable record of time-attack attempts.
type TimeAttackSessionStore interface {
	FindByID(ctx context.Context, id string) (*models.TimeAttackSession, error)
	Create(ctx context.Context, session *models.TimeAttackSession) error
	Update(ctx context.Context, id string, update bson.M) error
	DeactivateActive(ctx context.Context, userID int64) error
}

// QuestionBank serves candidate questions by difficulty window.
type QuestionBank interface {
	FindByDifficultyRange(ctx context.Context, query repository.QuestionQuery) ([]models.Question, error)
}

// AnswerStore records per-question answer documents.
type AnswerStore interface {
	Create(ctx context.Context, answer *models.SessionAnswer) error
	FindBySession(ctx context.Context, mode, sessionID string) ([]models.SessionAnswer, error)
}
