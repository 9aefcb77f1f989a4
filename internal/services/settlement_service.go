package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/naitfess/prak-tpm-projek-akhir/internal/models"
	apperrors "github.com/naitfess/prak-tpm-projek-akhir/pkg/errors"
	"github.com/naitfess/prak-tpm-projek-akhir/pkg/logger"
)

// PointsPerCorrectPrediction is the flat reward credited for each correct
// prediction, independent of odds or participation.
const PointsPerCorrectPrediction = 10

// SettlementService finalizes matches: it flips the finished flag exactly
// once, grades every prediction for the match, and credits points through
// the leaderboard service. All mutations for one settlement happen in a
// single transaction.
type SettlementService struct {
	db     *gorm.DB
	ledger *LeaderboardService
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(db *gorm.DB, ledger *LeaderboardService) *SettlementService {
	return &SettlementService{db: db, ledger: ledger}
}

// FinishMatch records the final score and settles every prediction for the
// match. Finishing an already-finished match is a no-op that reports
// AlreadyFinished; it never re-awards points.
func (s *SettlementService) FinishMatch(ctx context.Context, matchID uint, score1, score2 int) (*models.SettlementResult, error) {
	if score1 < 0 || score2 < 0 {
		return nil, apperrors.InvalidInput("scores must be non-negative")
	}

	var match models.Match
	if err := s.db.WithContext(ctx).Where("id = ?", matchID).First(&match).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("match not found")
		}
		return nil, apperrors.Internal("failed to load match", err)
	}

	if match.IsFinished {
		return s.alreadyFinishedResult(ctx, &match), nil
	}

	match.Score1 = score1
	match.Score2 = score2

	result := &models.SettlementResult{
		MatchID:      matchID,
		Outcome:      match.Outcome(),
		WinnerTeamID: match.WinnerTeamID(),
		Score1:       score1,
		Score2:       score2,
	}

	alreadyFinished := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Compare-and-set on the finished flag. Losing a concurrent race
		// leaves zero rows affected, in which case the settlement sweep is
		// skipped entirely.
		res := tx.Model(&models.Match{}).
			Where("id = ? AND is_finished = ?", matchID, false).
			Updates(map[string]interface{}{
				"score1":      score1,
				"score2":      score2,
				"is_finished": true,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			alreadyFinished = true
			return nil
		}

		var predictions []*models.Prediction
		if err := tx.Preload("User").
			Where("match_schedule_id = ?", matchID).
			Find(&predictions).Error; err != nil {
			return err
		}

		awards, correct, err := s.settlePredictions(tx, &match, predictions)
		if err != nil {
			return err
		}

		result.TotalPredictions = len(predictions)
		result.CorrectCount = correct
		result.Awards = awards

		record := models.SettlementRecord{
			ID:               uuid.New(),
			MatchScheduleID:  matchID,
			Outcome:          result.Outcome,
			WinnerTeamID:     result.WinnerTeamID,
			TotalPredictions: result.TotalPredictions,
			CorrectCount:     result.CorrectCount,
			PointsAwarded:    result.CorrectCount * PointsPerCorrectPrediction,
		}
		return tx.Create(&record).Error
	})

	if err != nil {
		return nil, apperrors.Internal("settlement failed", err)
	}

	if alreadyFinished {
		// Lost the race to a concurrent finish; report the stored result.
		if err := s.db.WithContext(ctx).Where("id = ?", matchID).First(&match).Error; err != nil {
			return nil, apperrors.Internal("failed to reload match", err)
		}
		return s.alreadyFinishedResult(ctx, &match), nil
	}

	s.ledger.InvalidateCache(ctx)

	logger.WithFields(map[string]interface{}{
		"match_id":    matchID,
		"outcome":     result.Outcome,
		"score1":      result.Score1,
		"score2":      result.Score2,
		"predictions": result.TotalPredictions,
		"correct":     result.CorrectCount,
	}).Info("Match settled")

	return result, nil
}

// FinishWithStoredScores finishes a match using the scores already on the
// row; the explicit finish action of the admin UI.
func (s *SettlementService) FinishWithStoredScores(ctx context.Context, matchID uint) (*models.SettlementResult, error) {
	var match models.Match
	if err := s.db.WithContext(ctx).Where("id = ?", matchID).First(&match).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("match not found")
		}
		return nil, apperrors.Internal("failed to load match", err)
	}

	return s.FinishMatch(ctx, matchID, match.Score1, match.Score2)
}

// ResettleFinishedMatches grades any prediction still pending on a finished
// match. A prediction settled earlier keeps its status and its owner is not
// credited again, so repeated sweeps are safe. This is the recovery path
// after a partial failure, and the backfill for matches finished before the
// predictions existed in this system.
func (s *SettlementService) ResettleFinishedMatches(ctx context.Context) ([]models.SettlementResult, error) {
	var matches []models.Match
	if err := s.db.WithContext(ctx).Where("is_finished = ?", true).Find(&matches).Error; err != nil {
		return nil, apperrors.Internal("failed to load finished matches", err)
	}

	results := make([]models.SettlementResult, 0, len(matches))
	credited := false

	for i := range matches {
		match := &matches[i]

		result := models.SettlementResult{
			MatchID:      match.ID,
			Outcome:      match.Outcome(),
			WinnerTeamID: match.WinnerTeamID(),
			Score1:       match.Score1,
			Score2:       match.Score2,
		}

		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var pending []*models.Prediction
			if err := tx.Preload("User").
				Where("match_schedule_id = ? AND status IS NULL", match.ID).
				Find(&pending).Error; err != nil {
				return err
			}

			awards, correct, err := s.settlePredictions(tx, match, pending)
			if err != nil {
				return err
			}

			result.TotalPredictions = len(pending)
			result.CorrectCount = correct
			result.Awards = awards
			return nil
		})
		if err != nil {
			return nil, apperrors.Internal("resettle failed", err)
		}

		if result.CorrectCount > 0 {
			credited = true
		}
		results = append(results, result)
	}

	if credited {
		s.ledger.InvalidateCache(ctx)
	}

	return results, nil
}

// settlePredictions grades the given predictions against the match outcome
// and credits each correct one. Runs inside the caller's transaction.
func (s *SettlementService) settlePredictions(
	tx *gorm.DB,
	match *models.Match,
	predictions []*models.Prediction,
) ([]models.UserAward, int, error) {
	outcome := match.Outcome()
	winnerID := match.WinnerTeamID()

	awards := make([]models.UserAward, 0, len(predictions))
	correctCount := 0

	for _, prediction := range predictions {
		correct := isCorrect(outcome, winnerID, prediction.PredictedTeamID)

		if err := tx.Model(&models.Prediction{}).
			Where("id = ?", prediction.ID).
			Update("status", correct).Error; err != nil {
			return nil, 0, err
		}

		points := 0
		if correct {
			correctCount++
			points = PointsPerCorrectPrediction
			if err := s.ledger.CreditTx(tx, prediction.UserID, points); err != nil {
				return nil, 0, err
			}
		}

		username := ""
		if prediction.User != nil {
			username = prediction.User.Username
		}
		awards = append(awards, models.UserAward{
			UserID:   prediction.UserID,
			Username: username,
			Correct:  correct,
			Points:   points,
		})
	}

	return awards, correctCount, nil
}

// isCorrect applies the single outcome rule: a draw prediction wins on a
// draw, a team prediction wins when that team won.
func isCorrect(outcome models.MatchOutcome, winnerTeamID, predictedTeamID uint) bool {
	if outcome == models.OutcomeDraw {
		return predictedTeamID == models.DrawPrediction
	}
	return predictedTeamID == winnerTeamID
}

// alreadyFinishedResult builds the no-op response for a re-finish attempt,
// reusing the audit record's counts when available.
func (s *SettlementService) alreadyFinishedResult(ctx context.Context, match *models.Match) *models.SettlementResult {
	result := &models.SettlementResult{
		MatchID:         match.ID,
		Outcome:         match.Outcome(),
		WinnerTeamID:    match.WinnerTeamID(),
		Score1:          match.Score1,
		Score2:          match.Score2,
		AlreadyFinished: true,
	}

	var record models.SettlementRecord
	if err := s.db.WithContext(ctx).
		Where("match_schedule_id = ?", match.ID).
		First(&record).Error; err == nil {
		result.TotalPredictions = record.TotalPredictions
		result.CorrectCount = record.CorrectCount
	}

	return result
}
