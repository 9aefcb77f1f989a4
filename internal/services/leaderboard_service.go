package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/naitfess/prak-tpm-projek-akhir/internal/models"
	apperrors "github.com/naitfess/prak-tpm-projek-akhir/pkg/errors"
	"github.com/naitfess/prak-tpm-projek-akhir/pkg/logger"
)

const (
	leaderboardCacheKeyPrefix = "leaderboard:top:"
	leaderboardCacheTTL       = 30 * time.Second
)

// LeaderboardService is the scoring ledger: the only component that mutates
// user points, and the read side for standings. The redis client is
// optional; a nil client disables caching.
type LeaderboardService struct {
	db    *gorm.DB
	cache *redis.Client
}

// NewLeaderboardService creates a new LeaderboardService
func NewLeaderboardService(db *gorm.DB, cache *redis.Client) *LeaderboardService {
	return &LeaderboardService{db: db, cache: cache}
}

// Credit atomically adds amount to the user's points.
func (s *LeaderboardService) Credit(ctx context.Context, userID uint, amount int) error {
	if err := s.CreditTx(s.db.WithContext(ctx), userID, amount); err != nil {
		return err
	}
	s.InvalidateCache(ctx)
	return nil
}

// CreditTx applies the credit inside the caller's transaction. The
// increment happens in the database, never on a value read earlier, so
// concurrent credits to the same user cannot lose updates.
func (s *LeaderboardService) CreditTx(tx *gorm.DB, userID uint, amount int) error {
	if amount < 0 {
		return apperrors.InvalidInput("credit amount must be non-negative")
	}

	res := tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("points", gorm.Expr("points + ?", amount))
	if res.Error != nil {
		return apperrors.Internal("failed to credit points", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("user not found")
	}

	return nil
}

// GetLeaderboard returns the top users with role=user ordered by points,
// ties broken by earlier registration, each with a 1-based rank.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	if cached, ok := s.readCache(ctx, limit); ok {
		return cached, nil
	}

	var users []models.User
	err := s.db.WithContext(ctx).
		Where("role = ?", models.RoleUser).
		Order("points DESC, created_at ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, apperrors.Internal("failed to load leaderboard", err)
	}

	entries := make([]models.LeaderboardEntry, len(users))
	for i, user := range users {
		entries[i] = models.LeaderboardEntry{
			Rank:     i + 1,
			UserID:   user.ID,
			Username: user.Username,
			Points:   user.Points,
		}
	}

	s.writeCache(ctx, limit, entries)
	return entries, nil
}

// GetUserRank returns the user's standing: one plus the number of users
// with more points or the same points and an earlier registration.
func (s *LeaderboardService) GetUserRank(ctx context.Context, userID uint) (*models.UserRank, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("user not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to load user", err)
	}

	var ahead int64
	err = s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", models.RoleUser).
		Where("points > ? OR (points = ? AND created_at < ?)", user.Points, user.Points, user.CreatedAt).
		Count(&ahead).Error
	if err != nil {
		return nil, apperrors.Internal("failed to compute rank", err)
	}

	var totalUsers int64
	err = s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", models.RoleUser).
		Count(&totalUsers).Error
	if err != nil {
		return nil, apperrors.Internal("failed to count users", err)
	}

	stats, err := s.predictionStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.UserRank{
		Rank:       int(ahead) + 1,
		Username:   user.Username,
		Points:     user.Points,
		TotalUsers: totalUsers,
		Stats:      stats,
	}, nil
}

// GetStats aggregates the standings for the stats endpoint.
func (s *LeaderboardService) GetStats(ctx context.Context) (*models.LeaderboardStats, error) {
	var agg struct {
		TotalUsers   int64
		HighestScore int
		TotalPoints  int64
	}
	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Select("COUNT(id) AS total_users, COALESCE(MAX(points), 0) AS highest_score, COALESCE(SUM(points), 0) AS total_points").
		Where("role = ?", models.RoleUser).
		Scan(&agg).Error
	if err != nil {
		return nil, apperrors.Internal("failed to aggregate stats", err)
	}

	stats := &models.LeaderboardStats{
		TotalUsers:   agg.TotalUsers,
		HighestScore: agg.HighestScore,
		AverageScore: "0",
	}

	if agg.TotalUsers > 0 {
		stats.TotalPoints = agg.TotalPoints
		average := decimal.NewFromInt(agg.TotalPoints).
			Div(decimal.NewFromInt(agg.TotalUsers)).
			Round(2)
		stats.AverageScore = average.String()

		top, err := s.GetLeaderboard(ctx, 1)
		if err != nil {
			return nil, err
		}
		if len(top) > 0 {
			stats.TopUser = &top[0]
		}
	}

	return stats, nil
}

// InvalidateCache drops every cached leaderboard page. Called after any
// point credit.
func (s *LeaderboardService) InvalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}

	iter := s.cache.Scan(ctx, 0, leaderboardCacheKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.cache.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Warn("Failed to invalidate leaderboard cache: ", err)
			return
		}
	}
	if err := iter.Err(); err != nil {
		logger.Warn("Failed to scan leaderboard cache keys: ", err)
	}
}

func (s *LeaderboardService) predictionStats(ctx context.Context, userID uint) (models.PredictionStats, error) {
	var counts struct {
		Total     int
		Correct   int
		Incorrect int
	}
	err := s.db.WithContext(ctx).
		Model(&models.Prediction{}).
		Select(
			"COUNT(id) AS total, "+
				"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS correct, "+
				"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS incorrect",
			true, false,
		).
		Where("user_id = ?", userID).
		Scan(&counts).Error
	if err != nil {
		return models.PredictionStats{}, apperrors.Internal("failed to aggregate prediction stats", err)
	}

	stats := models.PredictionStats{
		Total:     counts.Total,
		Correct:   counts.Correct,
		Incorrect: counts.Incorrect,
		Pending:   counts.Total - counts.Correct - counts.Incorrect,
	}

	settled := counts.Correct + counts.Incorrect
	if settled > 0 {
		stats.AccuracyPercentage = float64(counts.Correct) / float64(settled) * 100
	}

	return stats, nil
}

func (s *LeaderboardService) readCache(ctx context.Context, limit int) ([]models.LeaderboardEntry, bool) {
	if s.cache == nil {
		return nil, false
	}

	payload, err := s.cache.Get(ctx, cacheKey(limit)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("Leaderboard cache read failed: ", err)
		}
		return nil, false
	}

	var entries []models.LeaderboardEntry
	if err := json.Unmarshal([]byte(payload), &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (s *LeaderboardService) writeCache(ctx context.Context, limit int, entries []models.LeaderboardEntry) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(limit), payload, leaderboardCacheTTL).Err(); err != nil {
		logger.Warn("Leaderboard cache write failed: ", err)
	}
}

func cacheKey(limit int) string {
	return fmt.Sprintf("%s%d", leaderboardCacheKeyPrefix, limit)
}
