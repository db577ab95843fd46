package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"quiz-engine/internal/adaptive"
	"quiz-engine/internal/models"
	"quiz-engine/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
)

// SurvivalService runs survival-mode sessions: three lives, level up
// every five answered questions, score settled when the last life goes.
type SurvivalService struct {
	Sessions SurvivalSessionStore
	Bank     QuestionBank
}

func NewSurvivalService(sessions SurvivalSessionStore, bank QuestionBank) *SurvivalService {
	return &SurvivalService{Sessions: sessions, Bank: bank}
}

// StartSession deactivates any previous active sessions of the user and
// creates a fresh one. The question bank is not consulted here.
func (s *SurvivalService) StartSession(ctx context.Context, req models.StartSessionRequest) (*models.SurvivalSession, error) {
	if err := s.Sessions.DeactivateActive(ctx, req.UserID); err != nil {
		log.Printf("warning: failed to deactivate previous survival sessions for user %d: %v", req.UserID, err)
	}

	now := time.Now().UTC()
	session := &models.SurvivalSession{
		UserID:            req.UserID,
		AcademyID:         req.AcademyID,
		TopicTypeID:       req.TopicTypeID,
		SpecialtyID:       req.SpecialtyID,
		LivesRemaining:    adaptive.SurvivalStartingLives,
		CurrentLevel:      1,
		QuestionsSeen:     []string{},
		DifficultyFloor:   adaptive.InitialDifficultyFloor,
		DifficultyCeiling: adaptive.InitialDifficultyCeiling,
		IsActive:          true,
		StartedAt:         now,
		LastActivityAt:    now,
	}

	if err := s.Sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create survival session: %w", err)
	}
	return session, nil
}

// GetNextQuestion advances the difficulty window if a level threshold was
// crossed and serves one unseen question inside it.
func (s *SurvivalService) GetNextQuestion(ctx context.Context, sessionID string) (*models.SurvivalQuestionResponse, error) {
	session, err := s.Sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	// lives check covers sessions whose is_active flag lagged behind
	if !session.IsActive || session.LivesRemaining <= 0 {
		return &models.SurvivalQuestionResponse{
			Success:  false,
			GameOver: true,
			Session:  session,
			Message:  "Game over - no lives remaining",
		}, nil
	}

	newLevel := adaptive.SurvivalRamp.Level(session.QuestionsAnswered)
	if newLevel > session.CurrentLevel {
		floor, ceiling := adaptive.SurvivalRamp.Range(newLevel)
		if err := s.Sessions.Update(ctx, sessionID, bson.M{
			"current_level":      newLevel,
			"difficulty_floor":   floor,
			"difficulty_ceiling": ceiling,
		}); err != nil {
			return nil, fmt.Errorf("failed to update session level: %w", err)
		}
		session.CurrentLevel = newLevel
		session.DifficultyFloor = floor
		session.DifficultyCeiling = ceiling
		log.Printf("survival session %s leveled up to %d, difficulty %.2f-%.2f", sessionID, newLevel, floor, ceiling)
	}

	question, err := nextCandidate(ctx, s.Bank, repository.QuestionQuery{
		AcademyID:     session.AcademyID,
		TopicTypeID:   session.TopicTypeID,
		SpecialtyID:   session.SpecialtyID,
		MinDifficulty: session.DifficultyFloor,
		MaxDifficulty: session.DifficultyCeiling,
		ExcludeIDs:    session.QuestionsSeen,
		Limit:         questionBatchSize,
	})
	if err != nil {
		return nil, err
	}
	if question == nil {
		// the caller decides whether to end the session
		return &models.SurvivalQuestionResponse{
			Success:  false,
			GameOver: true,
			Session:  session,
			Message:  "No more questions available",
		}, nil
	}

	return &models.SurvivalQuestionResponse{
		Success:  true,
		Question: question,
		Options:  question.Options,
		Session:  session,
		GameOver: false,
	}, nil
}

// SubmitAnswer applies one answer: counters, lives and, when the last
// life goes, the final score and deactivation in the same write.
func (s *SurvivalService) SubmitAnswer(ctx context.Context, req models.SubmitAnswerRequest) (*models.SurvivalAnswerResponse, error) {
	session, err := s.Sessions.FindByID(ctx, req.SessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	if !session.IsActive {
		return nil, ErrSessionNotActive
	}

	session.QuestionsAnswered++
	if req.WasCorrect {
		session.QuestionsCorrect++
	} else if session.LivesRemaining > 0 {
		session.LivesRemaining--
	}
	session.QuestionsSeen = appendSeen(session.QuestionsSeen, req.QuestionID)

	now := time.Now().UTC()
	session.LastActivityAt = now

	update := bson.M{
		"questions_answered": session.QuestionsAnswered,
		"questions_correct":  session.QuestionsCorrect,
		"lives_remaining":    session.LivesRemaining,
		"questions_seen":     session.QuestionsSeen,
		"last_activity_at":   now,
	}

	gameOver := session.LivesRemaining <= 0
	if gameOver {
		finalScore := adaptive.SurvivalFinalScore(session.QuestionsCorrect, session.QuestionsAnswered, session.CurrentLevel)
		session.IsActive = false
		session.FinalScore = &finalScore
		session.EndedAt = &now

		update["is_active"] = false
		update["final_score"] = finalScore
		update["ended_at"] = now
	}

	if err := s.Sessions.Update(ctx, req.SessionID, update); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return &models.SurvivalAnswerResponse{
		Success:    true,
		Session:    session,
		GameOver:   gameOver,
		FinalScore: session.FinalScore,
	}, nil
}
