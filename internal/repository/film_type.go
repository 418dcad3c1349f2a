package repository

import (
	"github.com/user/alternovafilms/internal/model"
	"gorm.io/gorm"
)

type FilmTypeRepository struct {
	db *gorm.DB
}

func NewFilmTypeRepository(db *gorm.DB) *FilmTypeRepository {
	return &FilmTypeRepository{db: db}
}

// ListAll returns every film type ordered by name.
func (r *FilmTypeRepository) ListAll() ([]*model.FilmType, error) {
	var types []*model.FilmType
	err := r.db.Order("name ASC").Find(&types).Error
	return types, err
}

// Names returns the film type vocabulary for the search filter UI.
func (r *FilmTypeRepository) Names() ([]string, error) {
	var names []string
	err := r.db.Model(&model.FilmType{}).Order("name ASC").Pluck("name", &names).Error
	return names, err
}

// FindOrCreate returns the type with the given name, creating it when
// missing (case-insensitive match).
func (r *FilmTypeRepository) FindOrCreate(name string) (*model.FilmType, error) {
	var filmType model.FilmType
	err := r.db.Where("LOWER(name) = LOWER(?)", name).
		Attrs(model.FilmType{Name: name}).
		FirstOrCreate(&filmType).Error
	if err != nil {
		return nil, err
	}
	return &filmType, nil
}
