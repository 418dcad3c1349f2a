package service

import (
	"errors"
	"math"

	"github.com/lib/pq"
	"github.com/user/alternovafilms/internal/model"
	"github.com/user/alternovafilms/internal/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrFilmNotFound means the referenced film id does not exist.
	ErrFilmNotFound = errors.New("film not found")
	// ErrAlreadyRated means the user has already rated this film.
	ErrAlreadyRated = errors.New("you already rated this film")
	// ErrAlreadyVisualized means the user has already visualized this film.
	ErrAlreadyVisualized = errors.New("you already visualized this film")
	// ErrRatingOutOfRange means the rating is outside [0,10].
	ErrRatingOutOfRange = errors.New("rating must be between 0 and 10")
)

// CatalogService owns every write to the catalog: film creation with slug
// assignment, and the engagement records with their derived-counter updates.
// Each operation runs in a single transaction with the film row locked, so
// concurrent requests can neither insert duplicate engagement rows nor lose
// a counter update.
type CatalogService struct {
	repos *repository.Repositories
}

func NewCatalogService(repos *repository.Repositories) *CatalogService {
	return &CatalogService{repos: repos}
}

// CreateFilm persists a film and assigns its slug in two explicit steps:
// insert to obtain the id, then store slug(title, id). The id suffix makes
// the slug unique by construction. The slug is never regenerated, so later
// title edits leave it untouched.
func (s *CatalogService) CreateFilm(film *model.Film) error {
	return s.repos.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(film).Error; err != nil {
			return err
		}
		slug := MakeSlug(film.Title, film.ID)
		film.Slug = &slug
		return tx.Model(&model.Film{}).Where("id = ?", film.ID).
			Update("slug", slug).Error
	})
}

// RecordRating stores a user's rating for a film and refreshes the film's
// average. The film row is locked for the duration, the rating row is
// inserted (the composite unique index turns a duplicate into
// ErrAlreadyRated) and the average is recomputed as the true mean of all
// stored ratings, rounded to one decimal. Returns the new average.
func (s *CatalogService) RecordRating(filmID, userID int, rating float64) (float64, error) {
	if rating < 0 || rating > 10 {
		return 0, ErrRatingOutOfRange
	}

	var newAverage float64
	err := s.repos.DB.Transaction(func(tx *gorm.DB) error {
		var film model.Film
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&film, filmID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFilmNotFound
		}
		if err != nil {
			return err
		}

		record := &model.UserFilmRating{UserID: userID, FilmID: filmID, Rating: rating}
		if err := tx.Create(record).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyRated
			}
			return err
		}

		var average float64
		err = tx.Model(&model.UserFilmRating{}).
			Where("film_id = ?", filmID).
			Select("AVG(rating)").
			Scan(&average).Error
		if err != nil {
			return err
		}

		newAverage = Round1(average)
		return tx.Model(&model.Film{}).Where("id = ?", filmID).
			Update("rating", newAverage).Error
	})
	if err != nil {
		return 0, err
	}
	return newAverage, nil
}

// RecordVisualization stores a user's visualization of a film and bumps the
// film counter by exactly one. Only the first row for a (user, film) pair
// gets through the unique index, so the counter can never double-count.
func (s *CatalogService) RecordVisualization(filmID, userID int) error {
	return s.repos.DB.Transaction(func(tx *gorm.DB) error {
		var film model.Film
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&film, filmID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFilmNotFound
		}
		if err != nil {
			return err
		}

		record := &model.UserFilmVisualization{UserID: userID, FilmID: filmID}
		if err := tx.Create(record).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyVisualized
			}
			return err
		}

		return tx.Model(&model.Film{}).Where("id = ?", filmID).
			Update("visualizations", gorm.Expr("visualizations + 1")).Error
	})
}

// Round1 rounds to one decimal place, the precision stored on Film.Rating.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (class 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
