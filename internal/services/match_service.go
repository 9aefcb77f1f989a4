package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/naitfess/prak-tpm-projek-akhir/internal/models"
	apperrors "github.com/naitfess/prak-tpm-projek-akhir/pkg/errors"
)

// MatchService handles match scheduling. Finishing is delegated to the
// settlement service so scoring has a single owner.
type MatchService struct {
	db         *gorm.DB
	settlement *SettlementService
}

// NewMatchService creates a new MatchService
func NewMatchService(db *gorm.DB, settlement *SettlementService) *MatchService {
	return &MatchService{db: db, settlement: settlement}
}

// ListMatches returns a page of matches in kickoff order
func (s *MatchService) ListMatches(ctx context.Context, page, limit int) ([]models.Match, models.Pagination, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Match{}).Count(&total).Error; err != nil {
		return nil, models.Pagination{}, apperrors.Internal("failed to count matches", err)
	}

	var matches []models.Match
	err := s.db.WithContext(ctx).
		Preload("Team1").
		Preload("Team2").
		Order("date ASC, time ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&matches).Error
	if err != nil {
		return nil, models.Pagination{}, apperrors.Internal("failed to list matches", err)
	}

	return matches, models.NewPagination(total, page, limit), nil
}

// GetMatchByID retrieves a match with its teams
func (s *MatchService) GetMatchByID(ctx context.Context, matchID uint) (*models.Match, error) {
	var match models.Match
	err := s.db.WithContext(ctx).
		Preload("Team1").
		Preload("Team2").
		Where("id = ?", matchID).
		First(&match).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("match not found")
		}
		return nil, apperrors.Internal("failed to load match", err)
	}
	return &match, nil
}

// CreateMatch schedules a new match in the open state
func (s *MatchService) CreateMatch(ctx context.Context, req *models.CreateMatchRequest) (*models.Match, error) {
	if req.Team1ID == req.Team2ID {
		return nil, apperrors.InvalidInput("a team cannot play against itself")
	}

	for _, teamID := range []uint{req.Team1ID, req.Team2ID} {
		var team models.Team
		err := s.db.WithContext(ctx).Where("id = ?", teamID).First(&team).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("team not found")
		}
		if err != nil {
			return nil, apperrors.Internal("failed to load team", err)
		}
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	kickoff, err := parseKickoffTime(req.Time)
	if err != nil {
		return nil, err
	}

	match := models.Match{
		Team1ID: req.Team1ID,
		Team2ID: req.Team2ID,
		Date:    date,
		Time:    kickoff,
	}

	if err := s.db.WithContext(ctx).Create(&match).Error; err != nil {
		return nil, apperrors.Internal("failed to create match", err)
	}

	return s.GetMatchByID(ctx, match.ID)
}

// UpdateMatch applies a partial update. Supplying a score (or an explicit
// finished flag) for an open match finishes it and returns the settlement
// result; on an already-finished match the same request is a no-op that
// reports the stored result.
func (s *MatchService) UpdateMatch(
	ctx context.Context,
	matchID uint,
	req *models.UpdateMatchRequest,
) (*models.Match, *models.SettlementResult, error) {
	match, err := s.GetMatchByID(ctx, matchID)
	if err != nil {
		return nil, nil, err
	}

	finishing := req.Score1 != nil || req.Score2 != nil ||
		(req.IsFinished != nil && *req.IsFinished)

	if err := s.applyScheduleChanges(ctx, match, req); err != nil {
		return nil, nil, err
	}

	if !finishing {
		updated, err := s.GetMatchByID(ctx, matchID)
		return updated, nil, err
	}

	score1 := match.Score1
	score2 := match.Score2
	if req.Score1 != nil {
		score1 = *req.Score1
	}
	if req.Score2 != nil {
		score2 = *req.Score2
	}

	result, err := s.settlement.FinishMatch(ctx, matchID, score1, score2)
	if err != nil {
		return nil, nil, err
	}

	updated, err := s.GetMatchByID(ctx, matchID)
	if err != nil {
		return nil, nil, err
	}
	return updated, result, nil
}

// FinishMatch finishes a match with the stored scores
func (s *MatchService) FinishMatch(ctx context.Context, matchID uint) (*models.SettlementResult, error) {
	return s.settlement.FinishWithStoredScores(ctx, matchID)
}

// FinishMatchWithScores finishes a match with an explicit final score
func (s *MatchService) FinishMatchWithScores(ctx context.Context, matchID uint, score1, score2 int) (*models.SettlementResult, error) {
	return s.settlement.FinishMatch(ctx, matchID, score1, score2)
}

// DeleteMatch removes a match and, through the schema constraints, its
// predictions.
func (s *MatchService) DeleteMatch(ctx context.Context, matchID uint) error {
	match, err := s.GetMatchByID(ctx, matchID)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Select("Predictions").Delete(match).Error; err != nil {
		return apperrors.Internal("failed to delete match", err)
	}

	return nil
}

// applyScheduleChanges updates the non-score fields. Rescheduling a
// finished match is rejected.
func (s *MatchService) applyScheduleChanges(ctx context.Context, match *models.Match, req *models.UpdateMatchRequest) error {
	updates := map[string]interface{}{}

	if req.Team1ID != nil || req.Team2ID != nil {
		team1 := match.Team1ID
		team2 := match.Team2ID
		if req.Team1ID != nil {
			team1 = *req.Team1ID
		}
		if req.Team2ID != nil {
			team2 = *req.Team2ID
		}
		if team1 == team2 {
			return apperrors.InvalidInput("a team cannot play against itself")
		}
		updates["team1_id"] = team1
		updates["team2_id"] = team2
	}

	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return err
		}
		updates["date"] = date
	}

	if req.Time != nil {
		kickoff, err := parseKickoffTime(*req.Time)
		if err != nil {
			return err
		}
		updates["time"] = kickoff
	}

	if len(updates) == 0 {
		return nil
	}

	if match.IsFinished {
		return apperrors.InvalidState("cannot reschedule a finished match")
	}

	err := s.db.WithContext(ctx).
		Model(&models.Match{}).
		Where("id = ?", match.ID).
		Updates(updates).Error
	if err != nil {
		return apperrors.Internal("failed to update match", err)
	}

	return nil
}

// parseKickoffTime normalizes HH:MM or HH:MM:SS into HH:MM:SS.
func parseKickoffTime(value string) (string, error) {
	if len(strings.Split(value, ":")) == 2 {
		value += ":00"
	}
	if _, err := time.Parse("15:04:05", value); err != nil {
		return "", apperrors.InvalidInput("time must be in HH:MM or HH:MM:SS format")
	}
	return value, nil
}
