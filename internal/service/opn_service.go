package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"quiz-engine/internal/models"
	"quiz-engine/internal/opn"

	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "opn:leaderboard"

// OPNStatsStore provides the statistics the index is computed from and
// keeps the calculated snapshots.
type OPNStatsStore interface {
	FindUser(ctx context.Context, userID int64) (*models.UserAccount, error)
	AllUserIDs(ctx context.Context) ([]int64, error)
	TestsSince(ctx context.Context, userID int64, cutoff time.Time) ([]models.UserTest, error)
	RankingsByUser(ctx context.Context, userID int64) ([]models.TopicMockRanking, error)
	CountMockTopics(ctx context.Context) (int64, error)
	InsertRecord(ctx context.Context, record *models.OPNIndexRecord) error
	LatestRecords(ctx context.Context) ([]models.OPNIndexRecord, error)
	SetGlobalRank(ctx context.Context, userID int64, rank int) error
}

// LeaderboardEntry is one row of the global OPN ranking.
type LeaderboardEntry struct {
	Rank     int   `json:"rank"`
	UserID   int64 `json:"user_id"`
	OPNIndex int   `json:"opn_index"`
}

// OPNService computes OPN index snapshots and maintains the global
// ranking, mirrored into a redis sorted set for the leaderboard.
type OPNService struct {
	Store OPNStatsStore
	Redis *redis.Client
	Now   func() time.Time
}

func NewOPNService(store OPNStatsStore, rdb *redis.Client) *OPNService {
	return &OPNService{Store: store, Redis: rdb, Now: time.Now}
}

// CalculateForUser computes and stores one user's index snapshot.
func (s *OPNService) CalculateForUser(ctx context.Context, userID int64) (*models.OPNIndexRecord, error) {
	stats, err := s.gatherStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	components := opn.Components{
		QualityTrend:   opn.QualityTrend(*stats),
		RecentActivity: opn.RecentActivity(*stats, s.Now()),
		Momentum:       opn.Momentum(*stats),
	}

	competitive, err := s.competitiveScore(ctx, userID)
	if err != nil {
		return nil, err
	}
	components.Competitive = competitive

	record := &models.OPNIndexRecord{
		UserID:              userID,
		OPNIndex:            components.Total(),
		QualityTrendScore:   components.QualityTrend,
		RecentActivityScore: components.RecentActivity,
		CompetitiveScore:    components.Competitive,
		MomentumScore:       components.Momentum,
		CalculatedAt:        s.Now().UTC(),
	}

	if err := s.Store.InsertRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store opn index record: %w", err)
	}
	return record, nil
}

// Recalculate runs the calculation for one user or for everyone, then
// rebuilds the global ranking. Per-user failures during a full
// recalculation are logged and skipped.
func (s *OPNService) Recalculate(ctx context.Context, userID *int64, all bool) (int, *models.OPNIndexRecord, error) {
	var userIDs []int64
	switch {
	case all:
		ids, err := s.Store.AllUserIDs(ctx)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to list users: %w", err)
		}
		userIDs = ids
	case userID != nil:
		userIDs = []int64{*userID}
	default:
		return 0, nil, fmt.Errorf("must provide user_id or recalculate_all=true")
	}

	processed := 0
	var last *models.OPNIndexRecord
	for _, id := range userIDs {
		record, err := s.CalculateForUser(ctx, id)
		if err != nil {
			log.Printf("opn calculation failed for user %d: %v", id, err)
			continue
		}
		processed++
		last = record
	}

	if err := s.RebuildRanks(ctx); err != nil {
		return processed, last, err
	}
	return processed, last, nil
}

// RebuildRanks orders each user's latest snapshot by index, stamps the
// global rank and rewrites the redis leaderboard.
func (s *OPNService) RebuildRanks(ctx context.Context) error {
	records, err := s.Store.LatestRecords(ctx)
	if err != nil {
		return fmt.Errorf("failed to load opn records: %w", err)
	}

	members := make([]redis.Z, 0, len(records))
	for i, record := range records {
		rank := i + 1
		if err := s.Store.SetGlobalRank(ctx, record.UserID, rank); err != nil {
			log.Printf("failed to set global rank for user %d: %v", record.UserID, err)
		}
		members = append(members, redis.Z{
			Score:  float64(record.OPNIndex),
			Member: record.UserID,
		})
	}

	if s.Redis == nil || len(members) == 0 {
		return nil
	}

	pipe := s.Redis.TxPipeline()
	pipe.Del(ctx, leaderboardKey)
	pipe.ZAdd(ctx, leaderboardKey, members...)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("failed to rewrite opn leaderboard cache: %v", err)
	}
	return nil
}

// Leaderboard reads the top entries, preferring the redis sorted set and
// falling back to the store when the cache is unavailable.
func (s *OPNService) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	if s.Redis != nil {
		zs, err := s.Redis.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
		if err == nil && len(zs) > 0 {
			entries := make([]LeaderboardEntry, 0, len(zs))
			for i, z := range zs {
				var userID int64
				if _, err := fmt.Sscan(fmt.Sprint(z.Member), &userID); err != nil {
					continue
				}
				entries = append(entries, LeaderboardEntry{
					Rank:     i + 1,
					UserID:   userID,
					OPNIndex: int(z.Score),
				})
			}
			return entries, nil
		}
		if err != nil {
			log.Printf("opn leaderboard cache read failed, falling back to store: %v", err)
		}
	}

	records, err := s.Store.LatestRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load opn records: %w", err)
	}
	if len(records) > limit {
		records = records[:limit]
	}
	entries := make([]LeaderboardEntry, 0, len(records))
	for i, record := range records {
		entries = append(entries, LeaderboardEntry{
			Rank:     i + 1,
			UserID:   record.UserID,
			OPNIndex: record.OPNIndex,
		})
	}
	return entries, nil
}

// gatherStats collects the windowed and lifetime counters for one user.
func (s *OPNService) gatherStats(ctx context.Context, userID int64) (*opn.UserStats, error) {
	user, err := s.Store.FindUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	now := s.Now()
	stats := &opn.UserStats{
		Historical: opn.HistoricalStats{
			RightQuestions: user.RightQuestions,
			WrongQuestions: user.WrongQuestions,
			CreatedAt:      user.CreatedAt,
		},
	}

	for _, window := range []struct {
		days int
		dest *opn.WindowStats
	}{
		{7, &stats.Last7d},
		{30, &stats.Last30d},
		{90, &stats.Last90d},
	} {
		tests, err := s.Store.TestsSince(ctx, userID, now.AddDate(0, 0, -window.days))
		if err != nil {
			return nil, fmt.Errorf("failed to load tests for user %d: %w", userID, err)
		}
		*window.dest = windowStats(tests)
	}

	return stats, nil
}

func windowStats(tests []models.UserTest) opn.WindowStats {
	var ws opn.WindowStats
	activeDays := make(map[string]struct{})
	for _, t := range tests {
		ws.Correct += t.RightQuestions
		ws.Wrong += t.WrongQuestions
		ws.Questions += t.QuestionCount
		activeDays[t.CreatedAt.Format("2006-01-02")] = struct{}{}
	}
	ws.TestsFinished = len(tests)
	ws.ActiveDays = len(activeDays)
	return ws
}

func (s *OPNService) competitiveScore(ctx context.Context, userID int64) (float64, error) {
	rankings, err := s.Store.RankingsByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to load rankings for user %d: %w", userID, err)
	}
	if len(rankings) == 0 {
		return 0, nil
	}

	positions := make([]int, 0, len(rankings))
	topics := make(map[int]struct{})
	for _, r := range rankings {
		positions = append(positions, r.RankPosition)
		topics[r.TopicID] = struct{}{}
	}

	totalTopics, err := s.Store.CountMockTopics(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count mock topics: %w", err)
	}

	return opn.Competitive(positions, len(topics), int(totalTopics)), nil
}
