package model

import (
	"time"
)

// UserFilmVisualization marks a film as watched by a user. At most one row
// per (user, film) pair, enforced by a composite unique index.
type UserFilmVisualization struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	UserID    int       `json:"user" gorm:"not null;uniqueIndex:idx_user_film_visualization"`
	FilmID    int       `json:"film" gorm:"not null;uniqueIndex:idx_user_film_visualization"`
	User      *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Film      *Film     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFilmRating stores the rating a user gave a film, in [0,10]. Same
// one-row-per-(user, film) rule as visualizations. Rows are immutable once
// created; there is no update or delete path.
type UserFilmRating struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	UserID    int       `json:"user" gorm:"not null;uniqueIndex:idx_user_film_rating"`
	FilmID    int       `json:"film" gorm:"not null;uniqueIndex:idx_user_film_rating"`
	Rating    float64   `json:"rating" gorm:"not null;default:0"`
	User      *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Film      *Film     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}
