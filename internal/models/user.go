package models

import (
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User represents a registered user. Points are only ever mutated by the
// leaderboard service through atomic increments.
type User struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Username    string       `gorm:"uniqueIndex;not null" json:"username"`
	Password    string       `gorm:"not null" json:"-"`
	Points      int          `gorm:"not null;default:0" json:"points"`
	Role        UserRole     `gorm:"size:20;not null;default:user" json:"role"`
	Predictions []Prediction `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"predictions,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserInfo is the public view of a user in API responses
type UserInfo struct {
	ID       uint     `json:"id"`
	Username string   `json:"username"`
	Points   int      `json:"points"`
	Role     UserRole `json:"role"`
}

func (u *User) Info() UserInfo {
	return UserInfo{
		ID:       u.ID,
		Username: u.Username,
		Points:   u.Points,
		Role:     u.Role,
	}
}
