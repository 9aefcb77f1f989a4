package models

import (
	"time"
)

// MatchOutcome is the settled result of a match.
type MatchOutcome string

const (
	OutcomeTeam1Win MatchOutcome = "TEAM1_WIN"
	OutcomeTeam2Win MatchOutcome = "TEAM2_WIN"
	OutcomeDraw     MatchOutcome = "DRAW"
)

// Match represents a scheduled match between two teams. It is created open
// (is_finished = false, 0-0) and transitions to finished exactly once.
type Match struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Team1ID     uint         `gorm:"not null;index" json:"team1_id"`
	Team1       *Team        `gorm:"foreignKey:Team1ID" json:"team1,omitempty"`
	Team2ID     uint         `gorm:"not null;index" json:"team2_id"`
	Team2       *Team        `gorm:"foreignKey:Team2ID" json:"team2,omitempty"`
	Date        time.Time    `gorm:"type:date;not null" json:"date"`
	Time        string       `gorm:"type:time;not null" json:"time"`
	Score1      int          `gorm:"not null;default:0" json:"score1"`
	Score2      int          `gorm:"not null;default:0" json:"score2"`
	IsFinished  bool         `gorm:"not null;default:false" json:"is_finished"`
	Predictions []Prediction `gorm:"foreignKey:MatchScheduleID;constraint:OnDelete:CASCADE" json:"predictions,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TableName keeps the historical table name used by the schema.
func (Match) TableName() string {
	return "match_schedules"
}

// Outcome computes the result from the stored scores. Only meaningful once
// the match is finished; 0-0 is a valid draw, not an unset state.
func (m *Match) Outcome() MatchOutcome {
	switch {
	case m.Score1 > m.Score2:
		return OutcomeTeam1Win
	case m.Score2 > m.Score1:
		return OutcomeTeam2Win
	default:
		return OutcomeDraw
	}
}

// WinnerTeamID returns the winning team's id, or 0 for a draw.
func (m *Match) WinnerTeamID() uint {
	switch m.Outcome() {
	case OutcomeTeam1Win:
		return m.Team1ID
	case OutcomeTeam2Win:
		return m.Team2ID
	default:
		return 0
	}
}

// CreateMatchRequest represents a create match request
type CreateMatchRequest struct {
	Team1ID uint   `json:"team1_id" binding:"required"`
	Team2ID uint   `json:"team2_id" binding:"required"`
	Date    string `json:"date" binding:"required"` // YYYY-MM-DD
	Time    string `json:"time" binding:"required"` // HH:MM or HH:MM:SS
}

// UpdateMatchRequest represents a partial match update. Supplying a score
// for an open match finishes it and triggers settlement.
type UpdateMatchRequest struct {
	Team1ID    *uint   `json:"team1_id"`
	Team2ID    *uint   `json:"team2_id"`
	Date       *string `json:"date"`
	Time       *string `json:"time"`
	Score1     *int    `json:"score1" binding:"omitempty,min=0"`
	Score2     *int    `json:"score2" binding:"omitempty,min=0"`
	IsFinished *bool   `json:"is_finished"`
}
