package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/naitfess/prak-tpm-projek-akhir/internal/models"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// DB exposes the underlying handle for transaction-scoped work.
func (r *Repository) DB() *gorm.DB {
	return r.db
}

// CreateUser creates a new user
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetUserByID retrieves a user by ID
func (r *Repository) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetMatchByID retrieves a match by ID
func (r *Repository) GetMatchByID(ctx context.Context, matchID uint) (*models.Match, error) {
	var match models.Match
	err := r.db.WithContext(ctx).Where("id = ?", matchID).First(&match).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// UpsertPrediction inserts a prediction, or overwrites the outcome of the
// existing (user_id, match_schedule_id) row and resets its status to
// pending. The conflict target is the unique pair index, so two concurrent
// submissions can never produce duplicate rows.
func (r *Repository) UpsertPrediction(ctx context.Context, prediction *models.Prediction) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "match_schedule_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"predicted_team_id": prediction.PredictedTeamID,
			"status":            nil,
			"updated_at":        gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(prediction).Error
}

// GetPredictionByUserAndMatch retrieves a user's prediction for a match
func (r *Repository) GetPredictionByUserAndMatch(ctx context.Context, userID, matchID uint) (*models.Prediction, error) {
	var prediction models.Prediction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND match_schedule_id = ?", userID, matchID).
		First(&prediction).Error
	if err != nil {
		return nil, err
	}
	return &prediction, nil
}

// GetUserPredictions retrieves a page of the user's predictions, newest first
func (r *Repository) GetUserPredictions(
	ctx context.Context,
	userID uint,
	limit int,
	offset int,
) ([]*models.Prediction, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Prediction{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var predictions []*models.Prediction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Match").
		Preload("Match.Team1").
		Preload("Match.Team2").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&predictions).Error

	if err != nil {
		return nil, 0, err
	}

	return predictions, total, nil
}

// GetAllPredictions retrieves a page of all predictions, optionally
// filtered by match
func (r *Repository) GetAllPredictions(
	ctx context.Context,
	matchID uint,
	limit int,
	offset int,
) ([]*models.Prediction, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Prediction{})
	if matchID != 0 {
		query = query.Where("match_schedule_id = ?", matchID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var predictions []*models.Prediction
	err := query.
		Preload("User").
		Preload("Match").
		Preload("Match.Team1").
		Preload("Match.Team2").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&predictions).Error

	if err != nil {
		return nil, 0, err
	}

	return predictions, total, nil
}

// GetPredictionsByMatch retrieves every prediction for a match
func (r *Repository) GetPredictionsByMatch(ctx context.Context, matchID uint) ([]*models.Prediction, error) {
	var predictions []*models.Prediction
	err := r.db.WithContext(ctx).
		Where("match_schedule_id = ?", matchID).
		Find(&predictions).Error

	if err != nil {
		return nil, err
	}

	return predictions, nil
}

// IsUniqueViolation reports whether err is a unique-constraint violation.
// Postgres errors come through lib/pq; the sqlite test driver reports a
// plain string.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key value")
}
