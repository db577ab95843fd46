package repository

import (
	"context"

	"quiz-engine/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type AnswerRepository struct {
	Col *mongo.Collection
}

func NewAnswerRepository(db *mongo.Database) *AnswerRepository {
	return &AnswerRepository{Col: db.Collection("session_answers")}
}

func (r *AnswerRepository) Create(ctx context.Context, answer *models.SessionAnswer) error {
	_, err := r.Col.InsertOne(ctx, answer)
	return err
}

func (r *AnswerRepository) FindBySession(ctx context.Context, mode, sessionID string) ([]models.SessionAnswer, error) {
	cur, err := r.Col.Find(ctx, bson.M{"mode": mode, "session_id": sessionID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var answers []models.SessionAnswer
	for cur.Next(ctx) {
		var a models.SessionAnswer
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, cur.Err()
}
