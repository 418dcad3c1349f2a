package repository

import (
	"errors"
	"strings"

	"github.com/user/alternovafilms/internal/model"
	"gorm.io/gorm"
)

// ErrOrderingNotFound is returned for an ordering value outside the
// allow-list. Handlers map it to a 404.
var ErrOrderingNotFound = errors.New("ordering not found")

// orderSpec is the SQL realized for one accepted ordering key.
type orderSpec struct {
	join  string
	order string
}

// acceptedOrders is the ordering allow-list. "genre" sorts by genre name
// through the join (a film appears once per genre, matching the listing
// semantics of the ordering key); every other key gets title as a stable
// secondary sort.
var acceptedOrders = map[string]orderSpec{
	"": {"", "films.title ASC"},

	"title": {"", "films.title ASC"},
	"genre": {
		"JOIN film_genres ON film_genres.film_id = films.id JOIN genres ON genres.id = film_genres.genre_id",
		"genres.name ASC",
	},
	"-film_type":      {"", "films.film_type_id DESC, films.title ASC"},
	"-rating":         {"", "films.rating DESC, films.title ASC"},
	"-visualizations": {"", "films.visualizations DESC, films.title ASC"},
}

// orderClause resolves an ordering query value against the allow-list.
func orderClause(ordering string) (orderSpec, error) {
	spec, ok := acceptedOrders[ordering]
	if !ok {
		return orderSpec{}, ErrOrderingNotFound
	}
	return spec, nil
}

// SearchParams are the independent search predicates. Each non-empty field
// contributes one AND-composed condition.
type SearchParams struct {
	Title    string
	Genres   []string
	FilmType string
}

// ParseSearchParams normalizes raw query values: genres arrive as one
// comma-separated parameter, blanks are dropped.
func ParseSearchParams(title, genres, filmType string) SearchParams {
	p := SearchParams{
		Title:    strings.TrimSpace(title),
		FilmType: strings.TrimSpace(filmType),
	}
	for _, g := range strings.Split(genres, ",") {
		if g = strings.TrimSpace(g); g != "" {
			p.Genres = append(p.Genres, g)
		}
	}
	return p
}

// Empty reports whether no filter at all was supplied, which is distinct
// from a search that matches zero films.
func (p SearchParams) Empty() bool {
	return p.Title == "" && len(p.Genres) == 0 && p.FilmType == ""
}

// Key is a canonical cache key for this parameter combination.
func (p SearchParams) Key() string {
	return strings.ToLower(p.Title + "|" + strings.Join(p.Genres, ",") + "|" + p.FilmType)
}

type FilmRepository struct {
	db *gorm.DB
}

func NewFilmRepository(db *gorm.DB) *FilmRepository {
	return &FilmRepository{db: db}
}

// List returns one page of the catalog plus the total row count for the
// active ordering. An ordering outside the allow-list fails with
// ErrOrderingNotFound before any query runs.
func (r *FilmRepository) List(ordering string, limit, offset int) ([]*model.Film, int64, error) {
	spec, err := orderClause(ordering)
	if err != nil {
		return nil, 0, err
	}

	q := r.db.Model(&model.Film{})
	if spec.join != "" {
		q = q.Select("films.*").Joins(spec.join)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var films []*model.Film
	err = q.Order(spec.order).
		Preload("Genres").
		Preload("FilmType").
		Limit(limit).
		Offset(offset).
		Find(&films).Error
	return films, total, err
}

// Search applies the supplied predicates (title substring, every listed
// genre, film type — all case-insensitive), deduplicates and sorts by rating
// descending regardless of the listing ordering rules.
func (r *FilmRepository) Search(p SearchParams, limit, offset int) ([]*model.Film, int64, error) {
	base := func() *gorm.DB {
		q := r.db.Model(&model.Film{})
		if p.Title != "" {
			q = q.Where("films.title ILIKE ?", "%"+p.Title+"%")
		}
		for _, genre := range p.Genres {
			q = q.Where(
				"EXISTS (SELECT 1 FROM film_genres fg JOIN genres g ON g.id = fg.genre_id WHERE fg.film_id = films.id AND LOWER(g.name) = LOWER(?))",
				genre,
			)
		}
		if p.FilmType != "" {
			q = q.Joins("JOIN film_types ON film_types.id = films.film_type_id").
				Where("LOWER(film_types.name) = LOWER(?)", p.FilmType)
		}
		return q
	}

	var total int64
	if err := base().Distinct("films.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var films []*model.Film
	err := base().Distinct("films.*").
		Order("films.rating DESC").
		Preload("Genres").
		Preload("FilmType").
		Limit(limit).
		Offset(offset).
		Find(&films).Error
	return films, total, err
}

// FindBySlug looks a film up by its slug. Returns nil when absent.
func (r *FilmRepository) FindBySlug(slug string) (*model.Film, error) {
	var film model.Film
	err := r.db.Preload("Genres").Preload("FilmType").
		Where("slug = ?", slug).
		First(&film).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &film, nil
}

// FindByID looks a film up by primary key. Returns nil when absent.
func (r *FilmRepository) FindByID(id int) (*model.Film, error) {
	var film model.Film
	err := r.db.Preload("Genres").Preload("FilmType").First(&film, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &film, nil
}

// Random returns one random film, or nil on an empty catalog.
func (r *FilmRepository) Random() (*model.Film, error) {
	var film model.Film
	err := r.db.Preload("Genres").Preload("FilmType").
		Order("RANDOM()").
		First(&film).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &film, nil
}

// TopByRating returns the highest rated films, title as tiebreak.
func (r *FilmRepository) TopByRating(limit int) ([]*model.Film, error) {
	var films []*model.Film
	err := r.db.Preload("Genres").Preload("FilmType").
		Order("rating DESC, title ASC").
		Limit(limit).
		Find(&films).Error
	return films, err
}

// TopByVisualizations returns the most seen films, title as tiebreak.
func (r *FilmRepository) TopByVisualizations(limit int) ([]*model.Film, error) {
	var films []*model.Film
	err := r.db.Preload("Genres").Preload("FilmType").
		Order("visualizations DESC, title ASC").
		Limit(limit).
		Find(&films).Error
	return films, err
}
