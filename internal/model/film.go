package model

// Genre is a free-standing lookup table, many2many with Film.
type Genre struct {
	ID   int    `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:80;not null"`
}

// FilmType is a free-standing lookup table, one-to-many with Film.
type FilmType struct {
	ID   int    `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:80;not null"`
}

// Film is a catalog entry. Rating and Visualizations are derived fields,
// mutated only by the catalog service, never directly by clients. Slug is
// assigned exactly once right after the first insert (title + id), so later
// title edits never change it.
type Film struct {
	ID             int       `json:"id" gorm:"primaryKey"`
	Title          string    `json:"title" gorm:"size:100;not null"`
	Genres         []Genre   `json:"genres" gorm:"many2many:film_genres"`
	FilmTypeID     *int      `json:"-"`
	FilmType       *FilmType `json:"film_type,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	Visualizations int       `json:"visualizations" gorm:"not null;default:0"`
	Rating         float64   `json:"rating" gorm:"not null;default:0"`
	Slug           *string   `json:"slug" gorm:"size:100;uniqueIndex"`
}

// GenreNames returns the genre names in declaration order, for serialization.
func (f *Film) GenreNames() []string {
	names := make([]string, 0, len(f.Genres))
	for _, g := range f.Genres {
		names = append(names, g.Name)
	}
	return names
}

// FilmTypeName returns the type name or nil when the film has no type.
func (f *Film) FilmTypeName() *string {
	if f.FilmType == nil {
		return nil
	}
	return &f.FilmType.Name
}
