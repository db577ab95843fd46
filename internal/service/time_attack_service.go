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

// DefaultTimeLimitSeconds applies when a start request carries no usable
// time limit.
const DefaultTimeLimitSeconds = 60

// TimeAttackService runs time-attack sessions: a running clock fed by
// correct answers, streak and speed bonuses, level up every three
// correct answers.
type TimeAttackService struct {
	Sessions TimeAttackSessionStore
	Bank     QuestionBank
}

func NewTimeAttackService(sessions TimeAttackSessionStore, bank QuestionBank) *TimeAttackService {
	return &TimeAttackService{Sessions: sessions, Bank: bank}
}

// StartSession deactivates any previous active sessions of the user and
// creates a fresh one with the requested time limit.
func (s *TimeAttackService) StartSession(ctx context.Context, req models.StartSessionRequest) (*models.TimeAttackSession, error) {
	if err := s.Sessions.DeactivateActive(ctx, req.UserID); err != nil {
		log.Printf("warning: failed to deactivate previous time attack sessions for user %d: %v", req.UserID, err)
	}

	timeLimit := req.TimeLimitSeconds
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimitSeconds
	}

	now := time.Now().UTC()
	session := &models.TimeAttackSession{
		UserID:               req.UserID,
		AcademyID:            req.AcademyID,
		TopicTypeID:          req.TopicTypeID,
		SpecialtyID:          req.SpecialtyID,
		TimeLimitSeconds:     timeLimit,
		TimeRemainingSeconds: timeLimit,
		CurrentLevel:         1,
		QuestionsSeen:        []string{},
		DifficultyFloor:      adaptive.InitialDifficultyFloor,
		DifficultyCeiling:    adaptive.InitialDifficultyCeiling,
		IsActive:             true,
		StartedAt:            now,
		LastActivityAt:       now,
	}

	if err := s.Sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create time attack session: %w", err)
	}
	return session, nil
}

// GetNextQuestion advances the difficulty window if a level threshold was
// crossed (time-attack levels on correct answers) and serves one unseen
// question inside it.
func (s *TimeAttackService) GetNextQuestion(ctx context.Context, sessionID string) (*models.TimeAttackQuestionResponse, error) {
	session, err := s.Sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	if !session.IsActive {
		return &models.TimeAttackQuestionResponse{
			Success: false,
			TimeUp:  true,
			Session: session,
			Message: "Time up - session ended",
		}, nil
	}

	newLevel := adaptive.TimeAttackRamp.Level(session.QuestionsCorrect)
	if newLevel > session.CurrentLevel {
		floor, ceiling := adaptive.TimeAttackRamp.Range(newLevel)
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
		log.Printf("time attack session %s leveled up to %d, difficulty %.2f-%.2f", sessionID, newLevel, floor, ceiling)
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
		return &models.TimeAttackQuestionResponse{
			Success: false,
			TimeUp:  true,
			Session: session,
			Message: "No more questions available",
		}, nil
	}

	return &models.TimeAttackQuestionResponse{
		Success:  true,
		Question: question,
		Options:  question.Options,
		Session:  session,
		TimeUp:   false,
	}, nil
}

// SubmitAnswer applies one answer: counters, streaks, score and the
// timer delta. Hitting zero seconds settles the final score and
// deactivates the session in the same write.
func (s *TimeAttackService) SubmitAnswer(ctx context.Context, req models.SubmitAnswerRequest) (*models.TimeAttackAnswerResponse, error) {
	session, err := s.Sessions.FindByID(ctx, req.SessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	if !session.IsActive {
		return nil, ErrSessionNotActive
	}

	// the streak bonus uses the streak before this answer lands
	pointsEarned := adaptive.QuestionScore(req.WasCorrect, session.CurrentStreak, req.TimeTakenSeconds)

	session.QuestionsAnswered++
	if req.WasCorrect {
		session.QuestionsCorrect++
		session.CurrentStreak++
	} else {
		session.CurrentStreak = 0
	}
	if session.CurrentStreak > session.BestStreak {
		session.BestStreak = session.CurrentStreak
	}
	session.CurrentScore += pointsEarned
	session.QuestionsSeen = appendSeen(session.QuestionsSeen, req.QuestionID)
	session.TimeRemainingSeconds = adaptive.AdjustTime(session.TimeRemainingSeconds, req.WasCorrect)

	now := time.Now().UTC()
	session.LastActivityAt = now

	update := bson.M{
		"questions_answered":     session.QuestionsAnswered,
		"questions_correct":      session.QuestionsCorrect,
		"current_streak":         session.CurrentStreak,
		"best_streak":            session.BestStreak,
		"current_score":          session.CurrentScore,
		"questions_seen":         session.QuestionsSeen,
		"time_remaining_seconds": session.TimeRemainingSeconds,
		"last_activity_at":       now,
	}

	timeUp := session.TimeRemainingSeconds <= 0
	if timeUp {
		finalScore := adaptive.TimeAttackFinalScore(session.CurrentScore, session.QuestionsCorrect, session.QuestionsAnswered, session.CurrentLevel)
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

	return &models.TimeAttackAnswerResponse{
		Success:      true,
		Session:      session,
		TimeUp:       timeUp,
		FinalScore:   session.FinalScore,
		PointsEarned: pointsEarned,
	}, nil
}
