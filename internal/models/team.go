package models

import (
	"time"
)

// Team represents a football team
type Team struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	LogoURL   string    `gorm:"size:500" json:"logo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Team model
func (Team) TableName() string {
	return "teams"
}

// TeamRequest represents a create/update team request
type TeamRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=100"`
	LogoURL string `json:"logo_url" binding:"omitempty,url"`
}
