package repository

import (
	"context"

	"quiz-engine/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type TimeAttackSessionRepository struct {
	Col *mongo.Collection
}

func NewTimeAttackSessionRepository(db *mongo.Database) *TimeAttackSessionRepository {
	return &TimeAttackSessionRepository{Col: db.Collection("time_attack_sessions")}
}

func (r *TimeAttackSessionRepository) FindByID(ctx context.Context, id string) (*models.TimeAttackSession, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var session models.TimeAttackSession
	if err := r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *TimeAttackSessionRepository) Create(ctx context.Context, session *models.TimeAttackSession) error {
	res, err := r.Col.InsertOne(ctx, session)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		session.ID = oid.Hex()
	}
	return nil
}

func (r *TimeAttackSessionRepository) Update(ctx context.Context, id string, update bson.M) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update})
	return err
}

// DeactivateActive flips is_active off for every active session of a user.
func (r *TimeAttackSessionRepository) DeactivateActive(ctx context.Context, userID int64) error {
	_, err := r.Col.UpdateMany(ctx,
		bson.M{"user_id": userID, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false}},
	)
	return err
}
