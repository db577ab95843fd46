package service

import (
	"context"

	"quiz-engine/internal/models"
)

type AnswerService struct {
	Store AnswerStore
}

func NewAnswerService(store AnswerStore) *AnswerService {
	return &AnswerService{Store: store}
}

func (s *AnswerService) RecordAnswer(ctx context.Context, answer *models.SessionAnswer) error {
	return s.Store.Create(ctx, answer)
}

func (s *AnswerService) GetSessionAnswers(ctx context.Context, mode, sessionID string) ([]models.SessionAnswer, error) {
	return s.Store.FindBySession(ctx, mode, sessionID)
}
