package services

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/naitfess/prak-tpm-projek-akhir/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.Match{},
		&models.Prediction{},
		&models.News{},
		&models.SettlementRecord{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string, createdAt time.Time) *models.User {
	t.Helper()

	user := &models.User{
		Username:  username,
		Password:  "hashed",
		Role:      models.RoleUser,
		CreatedAt: createdAt,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func createTestTeams(t *testing.T, db *gorm.DB, names ...string) []*models.Team {
	t.Helper()

	teams := make([]*models.Team, 0, len(names))
	for _, name := range names {
		team := &models.Team{Name: name}
		if err := db.Create(team).Error; err != nil {
			t.Fatalf("failed to create team %s: %v", name, err)
		}
		teams = append(teams, team)
	}
	return teams
}

func createTestMatch(t *testing.T, db *gorm.DB, team1, team2 uint) *models.Match {
	t.Helper()

	match := &models.Match{
		Team1ID: team1,
		Team2ID: team2,
		Date:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Time:    "19:30:00",
	}
	if err := db.Create(match).Error; err != nil {
		t.Fatalf("failed to create match: %v", err)
	}
	return match
}

func userPoints(t *testing.T, db *gorm.DB, userID uint) int {
	t.Helper()

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		t.Fatalf("failed to load user %d: %v", userID, err)
	}
	return user.Points
}

func predictionStatus(t *testing.T, db *gorm.DB, userID, matchID uint) *bool {
	t.Helper()

	var prediction models.Prediction
	err := db.Where("user_id = ? AND match_schedule_id = ?", userID, matchID).
		First(&prediction).Error
	if err != nil {
		t.Fatalf("failed to load prediction: %v", err)
	}
	return prediction.Status
}
