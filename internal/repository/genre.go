package repository

import (
	"github.com/user/alternovafilms/internal/model"
	"gorm.io/gorm"
)

type GenreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

// ListAll returns every genre ordered by name.
func (r *GenreRepository) ListAll() ([]*model.Genre, error) {
	var genres []*model.Genre
	err := r.db.Order("name ASC").Find(&genres).Error
	return genres, err
}

// Names returns the genre vocabulary for the search filter UI.
func (r *GenreRepository) Names() ([]string, error) {
	var names []string
	err := r.db.Model(&model.Genre{}).Order("name ASC").Pluck("name", &names).Error
	return names, err
}

// FindOrCreate returns the genre with the given name, creating it when
// missing. Matching is case-insensitive so imports don't duplicate entries.
func (r *GenreRepository) FindOrCreate(name string) (*model.Genre, error) {
	var genre model.Genre
	err := r.db.Where("LOWER(name) = LOWER(?)", name).
		Attrs(model.Genre{Name: name}).
		FirstOrCreate(&genre).Error
	if err != nil {
		return nil, err
	}
	return &genre, nil
}
