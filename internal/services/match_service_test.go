package services

import (
	"context"
	"testing"
	"time"

	"github.com/naitfess/prak-tpm-projek-akhir/internal/models"
	"github.com/naitfess/prak-tpm-projek-akhir/internal/repository"
	apperrors "github.com/naitfess/prak-tpm-projek-akhir/pkg/errors"
)

func newMatchFixture(t *testing.T) (*MatchService, *PredictionService, *repository.Repository) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	ledger := NewLeaderboardService(db, nil)
	settlement := NewSettlementService(db, ledger)
	return NewMatchService(db, settlement), NewPredictionService(repo), repo
}

func TestCreateMatch(t *testing.T) {
	service, _, repo := newMatchFixture(t)
	db := repo.DB()
	ctx := context.Background()

	teams := createTestTeams(t, db, "Madrid", "Atletico")

	match, err := service.CreateMatch(ctx, &models.CreateMatchRequest{
		Team1ID: teams[0].ID,
		Team2ID: teams[1].ID,
		Date:    "2025-06-15",
		Time:    "20:45",
	})
	if err != nil {
		t.Fatalf("CreateMatch failed: %v", err)
	}

	if match.IsFinished {
		t.Error("new match must start open")
	}
	if match.Score1 != 0 || match.Score2 != 0 {
		t.Errorf("new match scores = %d-%d, want 0-0", match.Score1, match.Score2)
	}
	if match.Time != "20:45:00" {
		t.Errorf("kickoff time = %s, want normalized 20:45:00", match.Time)
	}
	if match.Team1 == nil || match.Team2 == nil {
		t.Error("expected teams to be preloaded")
	}
}

func TestCreateMatchSameTeamTwice(t *testing.T) {
	service, _, repo := newMatchFixture(t)
	db := repo.DB()

	teams := createTestTeams(t, db, "Valencia")

	_, err := service.CreateMatch(context.Background(), &models.CreateMatchRequest{
		Team1ID: teams[0].ID,
		Team2ID: teams[0].ID,
		Date:    "2025-06-15",
		Time:    "20:45",
	})
	if !apperrors.IsKind(err, apperrors.KindInvalidInput) {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
}

func TestCreateMatchUnknownTeam(t *testing.T) {
	service, _, repo := newMatchFixture(t)
	db := repo.DB()

	teams := createTestTeams(t, db, "Betis")

	_, err := service.CreateMatch(context.Background(), &models.CreateMatchRequest{
		Team1ID: teams[0].ID,
		Team2ID: 9999,
		Date:    "2025-06-15",
		Time:    "20:45",
	})
	if !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestCreateMatchRejectsBadDateAndTime(t *testing.T) {
	service, _, repo := newMatchFixture(t)
	db := repo.DB()
	ctx := context.Background()

	teams := createTestTeams(t, db, "Girona", "Osasuna")

	_, err := service.CreateMatch(ctx, &models.CreateMatchRequest{
		Team1ID: teams[0].ID,
		Team2ID: teams[1].ID,
		Date:    "15/06/2025",
		Time:    "20:45",
	})
	if !apperrors.IsKind(err, apperrors.KindInvalidInput) {
		t.Fatalf("expected InvalidInput for bad date, got %v", err)
	}

	_, err = service.CreateMatch(ctx, &models.CreateMatchRequest{
		Team1ID: teams[0].ID,
		Team2ID: teams[1].ID,
		Date:    "2025-06-15",
		Time:    "quarter past eight",
	})
	if !apperrors.IsKind(err, apperrors.KindInvalidInput) {
		t.Fatalf("expected InvalidInput for bad time, got %v", err)
	}
}

func TestUpdateMatchWithScoresTriggersSettlement(t *testing.T) {
	service, predictions, repo := newMatchFixture(t)
	db := repo.DB()
	ctx := context.Background()

	teams := createTestTeams(t, db, "Sporting", "Braga")
	match := createTestMatch(t, db, teams[0].ID, teams[1].ID)
	user := createTestUser(t, db, "alice", time.Now())

	if _, err := predictions.SubmitPrediction(ctx, user.ID, match.ID, teams[1].ID); err != nil {
		t.Fatalf("SubmitPrediction failed: %v", err)
	}

	score1, score2 := 1, 3
	updated, result, err := service.UpdateMatch(ctx, match.ID, &models.UpdateMatchRequest{
		Score1: &score1,
		Score2: &score2,
	})
	if err != nil {
		t.Fatalf("UpdateMatch failed: %v", err)
	}

	if !updated.IsFinished {
		t.Error("match should be finished after a score update")
	}
	if result == nil {
		t.Fatal("expected settlement result")
	}
	if result.Outcome != models.OutcomeTeam2Win {
		t.Errorf("outcome = %s, want %s", result.Outcome, models.OutcomeTeam2Win)
	}
	if points := userPoints(t, db, user.ID); points != 10 {
		t.Errorf("expected 10 points credited, got %d", points)
	}
}

func TestUpdateMatchScheduleOnlyLeavesMatchOpen(t *testing.T) {
	service, _, repo := newMatchFixture(t)
	db := repo.DB()
	ctx := context.Background()

	teams := createTestTeams(t, db, "Nice", "Monaco")
	match := createTestMatch(t, db, teams[0].ID, teams[1].ID)

	newDate := "2025-07-01"
	updated, result, err := service.UpdateMatch(ctx, match.ID, &models.UpdateMatchRequest{
		Date: &newDate,
	})
	if err != nil {
		t.Fatalf("UpdateMatch failed: %v", err)
	}
	if result != nil {
		t.Error("a schedule-only update must not settle the match")
	}
	if updated.IsFinished {
		t.Error("match should remain open")
	}
}

func TestUpdateMatchRejectsReschedulingFinishedMatch(t *testing.T) {
	service, _, repo := newMatchFixture(t)
	db := repo.DB()
	ctx := context.Background()

	teams := createTestTeams(t, db, "Feyenoord", "Utrecht")
	match := createTestMatch(t, db, teams[0].ID, teams[1].ID)

	db.Model(&models.Match{}).Where("id = ?", match.ID).Update("is_finished", true)

	newDate := "2025-07-01"
	_, _, err := service.UpdateMatch(ctx, match.ID, &models.UpdateMatchRequest{Date: &newDate})
	if !apperrors.IsKind(err, apperrors.KindInvalidState) {
		t.Fatalf("expected InvalidState, got %v", err)
	}
}

func TestFinishMatchUsesStoredScores(t *testing.T) {
	service, predictions, repo := newMatchFixture(t)
	db := repo.DB()
	ctx := context.Background()

	teams := createTestTeams(t, db, "Galatasaray", "Fenerbahce")
	match := createTestMatch(t, db, teams[0].ID, teams[1].ID)
	user := createTestUser(t, db, "alice", time.Now())

	if _, err := predictions.SubmitPrediction(ctx, user.ID, match.ID, models.DrawPrediction); err != nil {
		t.Fatalf("SubmitPrediction failed: %v", err)
	}

	db.Model(&models.Match{}).Where("id = ?", match.ID).
		Updates(map[string]interface{}{"score1": 2, "score2": 2})

	result, err := service.FinishMatch(ctx, match.ID)
	if err != nil {
		t.Fatalf("FinishMatch failed: %v", err)
	}
	if result.Outcome != models.OutcomeDraw {
		t.Errorf("outcome = %s, want %s", result.Outcome, models.OutcomeDraw)
	}
	if points := userPoints(t, db, user.ID); points != 10 {
		t.Errorf("expected 10 points for a correct draw, got %d", points)
	}
}

func TestFinishMatchWithExplicitScores(t *testing.T) {
	service, predictions, repo := newMatchFixture(t)
	db := repo.DB()
	ctx := context.Background()

	teams := createTestTeams(t, db, "Olympiacos", "PAOK")
	match := createTestMatch(t, db, teams[0].ID, teams[1].ID)
	user := createTestUser(t, db, "alice", time.Now())

	if _, err := predictions.SubmitPrediction(ctx, user.ID, match.ID, teams[0].ID); err != nil {
		t.Fatalf("SubmitPrediction failed: %v", err)
	}

	result, err := service.FinishMatchWithScores(ctx, match.ID, 3, 1)
	if err != nil {
		t.Fatalf("FinishMatchWithScores failed: %v", err)
	}
	if result.Outcome != models.OutcomeTeam1Win {
		t.Errorf("outcome = %s, want %s", result.Outcome, models.OutcomeTeam1Win)
	}
	if points := userPoints(t, db, user.ID); points != 10 {
		t.Errorf("expected 10 points credited, got %d", points)
	}
}

func TestDeleteMatchRemovesPredictions(t *testing.T) {
	service, predictions, repo := newMatchFixture(t)
	db := repo.DB()
	ctx := context.Background()

	teams := createTestTeams(t, db, "Basel", "Zurich")
	match := createTestMatch(t, db, teams[0].ID, teams[1].ID)
	user := createTestUser(t, db, "alice", time.Now())

	if _, err := predictions.SubmitPrediction(ctx, user.ID, match.ID, teams[0].ID); err != nil {
		t.Fatalf("SubmitPrediction failed: %v", err)
	}

	if err := service.DeleteMatch(ctx, match.ID); err != nil {
		t.Fatalf("DeleteMatch failed: %v", err)
	}

	var matches int64
	db.Model(&models.Match{}).Where("id = ?", match.ID).Count(&matches)
	if matches != 0 {
		t.Error("match still present after delete")
	}

	var orphaned int64
	db.Model(&models.Prediction{}).Where("match_schedule_id = ?", match.ID).Count(&orphaned)
	if orphaned != 0 {
		t.Errorf("expected predictions to be removed with the match, got %d", orphaned)
	}
}

func TestListMatchesKickoffOrder(t *testing.T) {
	service, _, repo := newMatchFixture(t)
	db := repo.DB()
	ctx := context.Background()

	teams := createTestTeams(t, db, "Anderlecht", "Brugge")

	later, err := service.CreateMatch(ctx, &models.CreateMatchRequest{
		Team1ID: teams[0].ID, Team2ID: teams[1].ID, Date: "2025-06-20", Time: "21:00",
	})
	if err != nil {
		t.Fatalf("CreateMatch failed: %v", err)
	}
	earlier, err := service.CreateMatch(ctx, &models.CreateMatchRequest{
		Team1ID: teams[1].ID, Team2ID: teams[0].ID, Date: "2025-06-20", Time: "18:00",
	})
	if err != nil {
		t.Fatalf("CreateMatch failed: %v", err)
	}

	matches, pagination, err := service.ListMatches(ctx, 1, 10)
	if err != nil {
		t.Fatalf("ListMatches failed: %v", err)
	}
	if pagination.Total != 2 {
		t.Fatalf("total = %d, want 2", pagination.Total)
	}
	if matches[0].ID != earlier.ID || matches[1].ID != later.ID {
		t.Error("matches not in kickoff order")
	}
}
