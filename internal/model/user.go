package model

import (
	"time"
)

// User is an account that can visualize and rate films.
type User struct {
	ID           int       `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"unique;not null"`
	Username     string    `json:"username" gorm:"unique;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}

// SessionUser is the slimmed-down user stored in the cookie session.
// It must stay gob-encodable (registered in main).
type SessionUser struct {
	ID       int
	Email    string
	Username string
}
