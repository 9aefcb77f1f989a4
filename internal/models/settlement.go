package models

import (
	"time"

	"github.com/google/uuid"
)

// SettlementRecord is the audit row written once per finish transition.
// The unique match index means a match can never settle twice.
type SettlementRecord struct {
	ID               uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	MatchScheduleID  uint         `gorm:"not null;uniqueIndex" json:"match_schedule_id"`
	Outcome          MatchOutcome `gorm:"size:20;not null" json:"outcome"`
	WinnerTeamID     uint         `gorm:"not null" json:"winner_team_id"` // 0 on a draw
	TotalPredictions int          `gorm:"not null" json:"total_predictions"`
	CorrectCount     int          `gorm:"not null" json:"correct_count"`
	PointsAwarded    int          `gorm:"not null" json:"points_awarded"`
	CreatedAt        time.Time    `json:"created_at"`
}

func (SettlementRecord) TableName() string {
	return "settlement_records"
}

// UserAward reports the points credited to one user during settlement.
type UserAward struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Correct  bool   `json:"correct"`
	Points   int    `json:"points_awarded"`
}

// SettlementResult summarizes one finishMatch call.
type SettlementResult struct {
	MatchID          uint         `json:"match_id"`
	Outcome          MatchOutcome `json:"outcome"`
	WinnerTeamID     uint         `json:"winner_team_id"`
	Score1           int          `json:"score1"`
	Score2           int          `json:"score2"`
	TotalPredictions int          `json:"total_predictions"`
	CorrectCount     int          `json:"correct_count"`
	Awards           []UserAward  `json:"awards"`
	AlreadyFinished  bool         `json:"already_finished"`
}

// FinishMatchRequest carries the final score for an explicit finish.
type FinishMatchRequest struct {
	Score1 *int `json:"score1" binding:"required,min=0"`
	Score2 *int `json:"score2" binding:"required,min=0"`
}
