package models

import (
	"time"
)

// News represents a news article
type News struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ImageURL  string    `gorm:"size:500" json:"image_url,omitempty"`
	Date      time.Time `gorm:"type:date;not null" json:"date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for News model
func (News) TableName() string {
	return "news"
}

// NewsRequest represents a create/update news request
type NewsRequest struct {
	Title    string `json:"title" binding:"required,min=3,max=255"`
	Content  string `json:"content" binding:"required"`
	ImageURL string `json:"image_url" binding:"omitempty,url"`
	Date     string `json:"date" binding:"required"` // YYYY-MM-DD
}
