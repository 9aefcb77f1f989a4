package services

import (
	"context"
	"testing"

	"github.com/naitfess/prak-tpm-projek-akhir/internal/models"
	apperrors "github.com/naitfess/prak-tpm-projek-akhir/pkg/errors"
)

func TestCreateTeam(t *testing.T) {
	db := setupTestDB(t)
	service := NewTeamService(db)
	ctx := context.Background()

	team, err := service.CreateTeam(ctx, &models.TeamRequest{Name: "Arsenal", LogoURL: "https://cdn.example.com/arsenal.png"})
	if err != nil {
		t.Fatalf("CreateTeam failed: %v", err)
	}
	if team.ID == 0 {
		t.Error("expected team ID to be assigned")
	}

	_, err = service.CreateTeam(ctx, &models.TeamRequest{Name: "Arsenal"})
	if !apperrors.IsKind(err, apperrors.KindConflict) {
		t.Fatalf("expected Conflict for duplicate name, got %v", err)
	}
}

func TestUpdateTeamRenameBlockedOnceScheduled(t *testing.T) {
	db := setupTestDB(t)
	service := NewTeamService(db)
	ctx := context.Background()

	teams := createTestTeams(t, db, "Wolves", "Burnley")
	createTestMatch(t, db, teams[0].ID, teams[1].ID)

	_, err := service.UpdateTeam(ctx, teams[0].ID, &models.TeamRequest{Name: "Wanderers"})
	if !apperrors.IsKind(err, apperrors.KindInvalidState) {
		t.Fatalf("expected InvalidState on rename, got %v", err)
	}

	// The logo may still change.
	updated, err := service.UpdateTeam(ctx, teams[0].ID, &models.TeamRequest{
		Name:    "Wolves",
		LogoURL: "https://cdn.example.com/wolves.png",
	})
	if err != nil {
		t.Fatalf("logo update failed: %v", err)
	}
	if updated.LogoURL != "https://cdn.example.com/wolves.png" {
		t.Errorf("logo = %s, want new URL", updated.LogoURL)
	}
}

func TestUpdateTeamRenameAllowedBeforeScheduling(t *testing.T) {
	db := setupTestDB(t)
	service := NewTeamService(db)
	ctx := context.Background()

	teams := createTestTeams(t, db, "Old Name")

	updated, err := service.UpdateTeam(ctx, teams[0].ID, &models.TeamRequest{Name: "New Name"})
	if err != nil {
		t.Fatalf("UpdateTeam failed: %v", err)
	}
	if updated.Name != "New Name" {
		t.Errorf("name = %s, want New Name", updated.Name)
	}
}

func TestDeleteTeamBlockedOnceScheduled(t *testing.T) {
	db := setupTestDB(t)
	service := NewTeamService(db)
	ctx := context.Background()

	teams := createTestTeams(t, db, "Leipzig", "Koln")
	createTestMatch(t, db, teams[0].ID, teams[1].ID)

	err := service.DeleteTeam(ctx, teams[0].ID)
	if !apperrors.IsKind(err, apperrors.KindInvalidState) {
		t.Fatalf("expected InvalidState, got %v", err)
	}
}

func TestDeleteTeam(t *testing.T) {
	db := setupTestDB(t)
	service := NewTeamService(db)
	ctx := context.Background()

	teams := createTestTeams(t, db, "Hamburg")

	if err := service.DeleteTeam(ctx, teams[0].ID); err != nil {
		t.Fatalf("DeleteTeam failed: %v", err)
	}

	_, err := service.GetTeamByID(ctx, teams[0].ID)
	if !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("expected NotFound after delete, got %v", err)
	}
}

func TestListTeamsOrderedByName(t *testing.T) {
	db := setupTestDB(t)
	service := NewTeamService(db)
	ctx := context.Background()

	createTestTeams(t, db, "Zeta", "Alpha", "Mid")

	teams, pagination, err := service.ListTeams(ctx, 1, 10)
	if err != nil {
		t.Fatalf("ListTeams failed: %v", err)
	}
	if pagination.Total != 3 {
		t.Fatalf("total = %d, want 3", pagination.Total)
	}
	if teams[0].Name != "Alpha" || teams[2].Name != "Zeta" {
		t.Error("teams not ordered by name")
	}
}
