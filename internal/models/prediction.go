package models

import (
	"time"
)

// DrawPrediction is the sentinel value for predicting a draw. It is never a
// team id, which is why predicted_team_id carries no foreign key.
const DrawPrediction uint = 0

// Prediction is a user's pick for a match. Status is tri-state: nil while
// the match is open (pending), then true/false once settled.
type Prediction struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;uniqueIndex:idx_user_match" json:"user_id"`
	User            *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	MatchScheduleID uint      `gorm:"not null;uniqueIndex:idx_user_match" json:"match_schedule_id"`
	Match           *Match    `gorm:"foreignKey:MatchScheduleID;constraint:OnDelete:CASCADE" json:"match,omitempty"`
	PredictedTeamID uint      `gorm:"not null" json:"predicted_team_id"`
	Status          *bool     `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName specifies the table name for Prediction model
func (Prediction) TableName() string {
	return "predictions"
}

// IsPending reports whether the prediction has not been settled yet.
func (p *Prediction) IsPending() bool {
	return p.Status == nil
}

// PredictsDraw reports whether the prediction is for a draw.
func (p *Prediction) PredictsDraw() bool {
	return p.PredictedTeamID == DrawPrediction
}

// CreatePredictionRequest represents a prediction submission.
// PredictedTeamID must be one of the match's teams, or 0 for a draw.
type CreatePredictionRequest struct {
	MatchScheduleID uint  `json:"match_schedule_id" binding:"required"`
	PredictedTeamID *uint `json:"predicted_team_id" binding:"required"`
}
