package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/naitfess/prak-tpm-projek-akhir/internal/models"
	"github.com/naitfess/prak-tpm-projek-akhir/internal/repository"
	apperrors "github.com/naitfess/prak-tpm-projek-akhir/pkg/errors"
	"github.com/naitfess/prak-tpm-projek-akhir/pkg/logger"
)

// PredictionService is the admission guard: it decides whether a
// submission may be accepted for a match/user pair and performs the upsert.
type PredictionService struct {
	repo *repository.Repository
}

// NewPredictionService creates a new PredictionService
func NewPredictionService(repo *repository.Repository) *PredictionService {
	return &PredictionService{repo: repo}
}

// SubmitPrediction validates and stores a prediction. A resubmission for
// the same match overwrites the previous pick and resets it to pending;
// there is never more than one row per (user, match).
func (s *PredictionService) SubmitPrediction(
	ctx context.Context,
	userID uint,
	matchID uint,
	predictedTeamID uint,
) (*models.Prediction, error) {
	match, err := s.repo.GetMatchByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("match not found")
		}
		return nil, apperrors.Internal("failed to load match", err)
	}

	if match.IsFinished {
		return nil, apperrors.InvalidState("match already finished")
	}

	if predictedTeamID != models.DrawPrediction &&
		predictedTeamID != match.Team1ID &&
		predictedTeamID != match.Team2ID {
		return nil, apperrors.InvalidInput("predicted team must be one of the teams in the match or 0 for draw")
	}

	prediction := &models.Prediction{
		UserID:          userID,
		MatchScheduleID: matchID,
		PredictedTeamID: predictedTeamID,
		Status:          nil,
	}

	if err := s.repo.UpsertPrediction(ctx, prediction); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("prediction already submitted")
		}
		return nil, apperrors.Internal("failed to store prediction", err)
	}

	stored, err := s.repo.GetPredictionByUserAndMatch(ctx, userID, matchID)
	if err != nil {
		return nil, apperrors.Internal("failed to load prediction", err)
	}

	logger.WithFields(map[string]interface{}{
		"user_id":           userID,
		"match_id":          matchID,
		"predicted_team_id": predictedTeamID,
	}).Debug("Prediction accepted")

	return stored, nil
}

// GetUserPredictions returns a page of the user's predictions
func (s *PredictionService) GetUserPredictions(
	ctx context.Context,
	userID uint,
	page, limit int,
) ([]*models.Prediction, models.Pagination, error) {
	predictions, total, err := s.repo.GetUserPredictions(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, models.Pagination{}, apperrors.Internal("failed to list predictions", err)
	}
	return predictions, models.NewPagination(total, page, limit), nil
}

// GetAllPredictions returns a page of all predictions, optionally filtered
// by match. Admin-only at the HTTP layer.
func (s *PredictionService) GetAllPredictions(
	ctx context.Context,
	matchID uint,
	page, limit int,
) ([]*models.Prediction, models.Pagination, error) {
	predictions, total, err := s.repo.GetAllPredictions(ctx, matchID, limit, (page-1)*limit)
	if err != nil {
		return nil, models.Pagination{}, apperrors.Internal("failed to list predictions", err)
	}
	return predictions, models.NewPagination(total, page, limit), nil
}
