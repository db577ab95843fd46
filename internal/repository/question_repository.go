package repository

import (
	"context"

	"quiz-engine/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// QuestionQuery selects candidate questions for a session: difficulty
// window, scoping filters and the already-seen exclusion list.
type QuestionQuery struct {
	AcademyID     int
	TopicTypeID   *int
	SpecialtyID   *int
	MinDifficulty float64
	MaxDifficulty float64
	ExcludeIDs    []string
	Limit         int64
}

type QuestionRepository struct {
	Col *mongo.Collection
}

func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{Col: db.Collection("questions")}
}

func (r *QuestionRepository) FindByID(ctx context.Context, id string) (*models.Question, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var question models.Question
	if err := r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&question); err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) Create(ctx context.Context, question *models.Question) error {
	res, err := r.Col.InsertOne(ctx, question)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		question.ID = oid.Hex()
	}
	return nil
}

// FindByDifficultyRange returns up to query.Limit questions inside the
// difficulty window, honoring the scoping filters and the exclusion list.
// Results are ordered by difficult_rate ascending.
func (r *QuestionRepository) FindByDifficultyRange(ctx context.Context, query QuestionQuery) ([]models.Question, error) {
	filter := bson.M{
		"academy_id":     query.AcademyID,
		"difficult_rate": bson.M{"$gte": query.MinDifficulty, "$lte": query.MaxDifficulty},
	}
	if query.TopicTypeID != nil {
		filter["topic_type_id"] = *query.TopicTypeID
	}
	if query.SpecialtyID != nil {
		filter["specialty_id"] = *query.SpecialtyID
	}
	if len(query.ExcludeIDs) > 0 {
		excluded := make([]primitive.ObjectID, 0, len(query.ExcludeIDs))
		for _, id := range query.ExcludeIDs {
			objID, err := primitive.ObjectIDFromHex(id)
			if err != nil {
				continue
			}
			excluded = append(excluded, objID)
		}
		filter["_id"] = bson.M{"$nin": excluded}
	}

	limit := query.Limit
	if limit <= 0 {
		limit = 5
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "difficult_rate", Value: 1}}).
		SetLimit(limit)

	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var questions []models.Question
	for cur.Next(ctx) {
		var q models.Question
		if err := cur.Decode(&q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, cur.Err()
}
