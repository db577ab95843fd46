package service

import (
	"context"
	"fmt"

	"quiz-engine/internal/adaptive"
	"quiz-engine/internal/models"
	"quiz-engine/internal/repository"
)

// questionBatchSize is how many candidates one bank query asks for; the
// first one returned is served.
const questionBatchSize = 5

// nextCandidate queries the bank inside the session's difficulty window
// and, when that window is exhausted, retries once over the full range
// with the same filters and exclusions. Returns nil when the bank has no
// unseen questions left at all.
func nextCandidate(ctx context.Context, bank QuestionBank, query repository.QuestionQuery) (*models.Question, error) {
	questions, err := bank.FindByDifficultyRange(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch questions: %w", err)
	}

	if len(questions) == 0 {
		query.MinDifficulty = 0
		query.MaxDifficulty = adaptive.MaxDifficulty
		questions, err = bank.FindByDifficultyRange(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch questions: %w", err)
		}
	}

	if len(questions) == 0 {
		return nil, nil
	}
	return &questions[0], nil
}

// appendSeen records a question id on the exclusion list, keeping it
// duplicate free.
func appendSeen(seen []string, questionID string) []string {
	for _, id := range seen {
		if id == questionID {
			return seen
		}
	}
	return append(seen, questionID)
}
