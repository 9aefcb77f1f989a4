package services

import (
	"context"
	"testing"

	"github.com/naitfess/prak-tpm-projek-akhir/internal/models"
	apperrors "github.com/naitfess/prak-tpm-projek-akhir/pkg/errors"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	service := NewAuthService(db)
	ctx := context.Background()

	user, err := service.Register(ctx, "alice", "secret123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Role != models.RoleUser {
		t.Errorf("role = %s, want %s", user.Role, models.RoleUser)
	}
	if user.Points != 0 {
		t.Errorf("new user points = %d, want 0", user.Points)
	}
	if user.Password == "secret123" {
		t.Error("password stored in plain text")
	}

	loggedIn, err := service.Login(ctx, "alice", "secret123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Errorf("logged in user ID = %d, want %d", loggedIn.ID, user.ID)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	service := NewAuthService(db)
	ctx := context.Background()

	if _, err := service.Register(ctx, "alice", "secret123"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := service.Register(ctx, "alice", "other456")
	if !apperrors.IsKind(err, apperrors.KindConflict) {
		t.Fatalf("expected Conflict, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	service := NewAuthService(db)
	ctx := context.Background()

	if _, err := service.Register(ctx, "alice", "secret123"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := service.Login(ctx, "alice", "wrong")
	if !apperrors.IsKind(err, apperrors.KindInvalidInput) {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	service := NewAuthService(db)

	_, err := service.Login(context.Background(), "nobody", "whatever")
	if !apperrors.IsKind(err, apperrors.KindInvalidInput) {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
}

func TestEnsureAdmin(t *testing.T) {
	db := setupTestDB(t)
	service := NewAuthService(db)
	ctx := context.Background()

	if err := service.EnsureAdmin(ctx, "admin", "admin123"); err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}

	var admin models.User
	if err := db.Where("username = ?", "admin").First(&admin).Error; err != nil {
		t.Fatalf("admin not created: %v", err)
	}
	if admin.Role != models.RoleAdmin {
		t.Errorf("role = %s, want %s", admin.Role, models.RoleAdmin)
	}

	// Repeat runs are no-ops.
	if err := service.EnsureAdmin(ctx, "admin", "admin123"); err != nil {
		t.Fatalf("second EnsureAdmin failed: %v", err)
	}
	var count int64
	db.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count != 1 {
		t.Errorf("expected a single admin row, got %d", count)
	}
}

func TestEnsureAdminBlankPasswordDisablesSeeding(t *testing.T) {
	db := setupTestDB(t)
	service := NewAuthService(db)

	if err := service.EnsureAdmin(context.Background(), "admin", ""); err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no user seeded, got %d", count)
	}
}
