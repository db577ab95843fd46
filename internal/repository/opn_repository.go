package repository

import (
	"context"
	"time"

	"quiz-engine/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OPNRepository reads the user statistics the OPN index is computed from
// and stores the calculated snapshots.
type OPNRepository struct {
	Users    *mongo.Collection
	Tests    *mongo.Collection
	Rankings *mongo.Collection
	Topics   *mongo.Collection
	History  *mongo.Collection
}

func NewOPNRepository(db *mongo.Database) *OPNRepository {
	return &OPNRepository{
		Users:    db.Collection("users"),
		Tests:    db.Collection("user_tests"),
		Rankings: db.Collection("topic_mock_rankings"),
		Topics:   db.Collection("topics"),
		History:  db.Collection("user_opn_index_history"),
	}
}

func (r *OPNRepository) FindUser(ctx context.Context, userID int64) (*models.UserAccount, error) {
	var user models.UserAccount
	if err := r.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *OPNRepository) AllUserIDs(ctx context.Context) ([]int64, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1}).SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.Users.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []int64
	for cur.Next(ctx) {
		var doc struct {
			ID int64 `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID)
	}
	return ids, cur.Err()
}

// TestsSince returns the user's finished tests created on or after cutoff.
func (r *OPNRepository) TestsSince(ctx context.Context, userID int64, cutoff time.Time) ([]models.UserTest, error) {
	cur, err := r.Tests.Find(ctx, bson.M{
		"user_id":    userID,
		"created_at": bson.M{"$gte": cutoff},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var tests []models.UserTest
	for cur.Next(ctx) {
		var t models.UserTest
		if err := cur.Decode(&t); err != nil {
			return nil, err
		}
		tests = append(tests, t)
	}
	return tests, cur.Err()
}

func (r *OPNRepository) RankingsByUser(ctx context.Context, userID int64) ([]models.TopicMockRanking, error) {
	cur, err := r.Rankings.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rankings []models.TopicMockRanking
	for cur.Next(ctx) {
		var rk models.TopicMockRanking
		if err := cur.Decode(&rk); err != nil {
			return nil, err
		}
		rankings = append(rankings, rk)
	}
	return rankings, cur.Err()
}

func (r *OPNRepository) CountMockTopics(ctx context.Context) (int64, error) {
	return r.Topics.CountDocuments(ctx, bson.M{"mode": "Mock"})
}

func (r *OPNRepository) InsertRecord(ctx context.Context, record *models.OPNIndexRecord) error {
	_, err := r.History.InsertOne(ctx, record)
	return err
}

// LatestRecords returns each user's most recent snapshot, highest index
// first. Used to rebuild the global ranking after a recalculation.
func (r *OPNRepository) LatestRecords(ctx context.Context) ([]models.OPNIndexRecord, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "calculated_at", Value: -1}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$user_id"},
			{Key: "latest", Value: bson.D{{Key: "$first", Value: "$$ROOT"}}},
		}}},
		{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$latest"}}}},
		{{Key: "$sort", Value: bson.D{{Key: "opn_index", Value: -1}}}},
	}

	cur, err := r.History.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var records []models.OPNIndexRecord
	for cur.Next(ctx) {
		var rec models.OPNIndexRecord
		if err := cur.Decode(&rec); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, cur.Err()
}

// SetGlobalRank stamps the rank on a user's most recent snapshot.
func (r *OPNRepository) SetGlobalRank(ctx context.Context, userID int64, rank int) error {
	opts := options.FindOneAndUpdate().SetSort(bson.D{{Key: "calculated_at", Value: -1}})
	res := r.History.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"global_rank": rank}},
		opts,
	)
	return res.Err()
}
