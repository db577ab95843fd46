package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quiz-engine/internal/models"
	"quiz-engine/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
)

// In-memory stores used across the service tests. Updates apply the same
// bson.M documents the mongo repositories would send.

type fakeSurvivalStore struct {
	sessions map[string]*models.SurvivalSession
	nextID   int
}

func newFakeSurvivalStore() *fakeSurvivalStore {
	return &fakeSurvivalStore{sessions: make(map[string]*models.SurvivalSession)}
}

func (f *fakeSurvivalStore) FindByID(ctx context.Context, id string) (*models.SurvivalSession, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, errors.New("mongo: no documents in result")
	}
	copied := *session
	return &copied, nil
}

func (f *fakeSurvivalStore) Create(ctx context.Context, session *models.SurvivalSession) error {
	f.nextID++
	session.ID = fmt.Sprintf("surv-%d", f.nextID)
	copied := *session
	f.sessions[session.ID] = &copied
	return nil
}

func (f *fakeSurvivalStore) Update(ctx context.Context, id string, update bson.M) error {
	session, ok := f.sessions[id]
	if !ok {
		return errors.New("mongo: no documents in result")
	}
	for key, value := range update {
		applySurvivalField(session, key, value)
	}
	return nil
}

func (f *fakeSurvivalStore) DeactivateActive(ctx context.Context, userID int64) error {
	for _, session := range f.sessions {
		if session.UserID == userID && session.IsActive {
			session.IsActive = false
		}
	}
	return nil
}

func applySurvivalField(s *models.SurvivalSession, key string, value interface{}) {
	switch key {
	case "current_level":
		s.CurrentLevel = value.(int)
	case "difficulty_floor":
		s.DifficultyFloor = value.(float64)
	case "difficulty_ceiling":
		s.DifficultyCeiling = value.(float64)
	case "questions_answered":
		s.QuestionsAnswered = value.(int)
	case "questions_correct":
		s.QuestionsCorrect = value.(int)
	case "lives_remaining":
		s.LivesRemaining = value.(int)
	case "questions_seen":
		s.QuestionsSeen = value.([]string)
	case "last_activity_at":
		s.LastActivityAt = value.(time.Time)
	case "is_active":
		s.IsActive = value.(bool)
	case "final_score":
		score := value.(int)
		s.FinalScore = &score
	case "ended_at":
		at := value.(time.Time)
		s.EndedAt = &at
	default:
		panic("unexpected survival update field: " + key)
	}
}

type fakeTimeAttackStore struct {
	sessions map[string]*models.TimeAttackSession
	nextID   int
}

func newFakeTimeAttackStore() *fakeTimeAttackStore {
	return &fakeTimeAttackStore{sessions: make(map[string]*models.TimeAttackSession)}
}

func (f *fakeTimeAttackStore) FindByID(ctx context.Context, id string) (*models.TimeAttackSession, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, errors.New("mongo: no documents in result")
	}
	copied := *session
	return &copied, nil
}

func (f *fakeTimeAttackStore) Create(ctx context.Context, session *models.TimeAttackSession) error {
	f.nextID++
	session.ID = fmt.Sprintf("ta-%d", f.nextID)
	copied := *session
	f.sessions[session.ID] = &copied
	return nil
}

func (f *fakeTimeAttackStore) Update(ctx context.Context, id string, update bson.M) error {
	session, ok := f.sessions[id]
	if !ok {
		return errors.New("mongo: no documents in result")
	}
	for key, value := range update {
		applyTimeAttackField(session, key, value)
	}
	return nil
}

func (f *fakeTimeAttackStore) DeactivateActive(ctx context.Context, userID int64) error {
	for _, session := range f.sessions {
		if session.UserID == userID && session.IsActive {
			session.IsActive = false
		}
	}
	return nil
}

func applyTimeAttackField(s *models.TimeAttackSession, key string, value interface{}) {
	switch key {
	case "current_level":
		s.CurrentLevel = value.(int)
	case "difficulty_floor":
		s.DifficultyFloor = value.(float64)
	case "difficulty_ceiling":
		s.DifficultyCeiling = value.(float64)
	case "questions_answered":
		s.QuestionsAnswered = value.(int)
	case "questions_correct":
		s.QuestionsCorrect = value.(int)
	case "current_streak":
		s.CurrentStreak = value.(int)
	case "best_streak":
		s.BestStreak = value.(int)
	case "current_score":
		s.CurrentScore = value.(int)
	case "questions_seen":
		s.QuestionsSeen = value.([]string)
	case "time_remaining_seconds":
		s.TimeRemainingSeconds = value.(int)
	case "last_activity_at":
		s.LastActivityAt = value.(time.Time)
	case "is_active":
		s.IsActive = value.(bool)
	case "final_score":
		score := value.(int)
		s.FinalScore = &score
	case "ended_at":
		at := value.(time.Time)
		s.EndedAt = &at
	default:
		panic("unexpected time attack update field: " + key)
	}
}

// fakeQuestionBank serves a fixed pool sorted by difficulty, honouring
// the window, the exclusion list and the limit. It records every query
// so tests can assert on the fallback behaviour.
type fakeQuestionBank struct {
	pool    []models.Question
	queries []repository.QuestionQuery
}

func (f *fakeQuestionBank) FindByDifficultyRange(ctx context.Context, query repository.QuestionQuery) ([]models.Question, error) {
	f.queries = append(f.queries, query)

	limit := query.Limit
	if limit <= 0 {
		limit = 5
	}

	excluded := make(map[string]struct{}, len(query.ExcludeIDs))
	for _, id := range query.ExcludeIDs {
		excluded[id] = struct{}{}
	}

	var out []models.Question
	for _, q := range f.pool {
		if q.DifficultRate < query.MinDifficulty || q.DifficultRate > query.MaxDifficulty {
			continue
		}
		if _, seen := excluded[q.ID]; seen {
			continue
		}
		if q.AcademyID != query.AcademyID {
			continue
		}
		out = append(out, q)
		if int64(len(out)) >= limit {
			break
		}
	}
	return out, nil
}

type fakeAnswerStore struct {
	answers []models.SessionAnswer
}

func (f *fakeAnswerStore) Create(ctx context.Context, answer *models.SessionAnswer) error {
	f.answers = append(f.answers, *answer)
	return nil
}

func (f *fakeAnswerStore) FindBySession(ctx context.Context, mode, sessionID string) ([]models.SessionAnswer, error) {
	var out []models.SessionAnswer
	for _, a := range f.answers {
		if a.Mode == mode && a.SessionID == sessionID {
			out = append(out, a)
		}
	}
	return out, nil
}

func question(id string, academyID int, difficulty float64) models.Question {
	return models.Question{
		ID:            id,
		Text:          "question " + id,
		AcademyID:     academyID,
		DifficultRate: difficulty,
		Options: []models.QuestionOption{
			{ID: id + "-a", Text: "a", IsCorrect: true, OptionOrder: 1},
			{ID: id + "-b", Text: "b", OptionOrder: 2},
		},
	}
}
