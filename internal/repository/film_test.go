package repository

import (
	"errors"
	"reflect"
	"testing"
)

func TestOrderClauseAllowList(t *testing.T) {
	tests := []struct {
		ordering  string
		wantOrder string
		wantJoin  bool
	}{
		{"", "films.title ASC", false},
		{"title", "films.title ASC", false},
		{"genre", "genres.name ASC", true},
		{"-film_type", "films.film_type_id DESC, films.title ASC", false},
		{"-rating", "films.rating DESC, films.title ASC", false},
		{"-visualizations", "films.visualizations DESC, films.title ASC", false},
	}

	for _, tt := range tests {
		spec, err := orderClause(tt.ordering)
		if err != nil {
			t.Errorf("orderClause(%q) unexpected error: %v", tt.ordering, err)
			continue
		}
		if spec.order != tt.wantOrder {
			t.Errorf("orderClause(%q) order = %q, want %q", tt.ordering, spec.order, tt.wantOrder)
		}
		if (spec.join != "") != tt.wantJoin {
			t.Errorf("orderClause(%q) join = %q, want join: %v", tt.ordering, spec.join, tt.wantJoin)
		}
	}
}

func TestOrderClauseRejectsUnknownValues(t *testing.T) {
	// Only the exact allow-list entries are valid; in particular the
	// ascending/descending variants not listed are client errors.
	for _, ordering := range []string{"bogus", "rating", "-title", "film_type", "visualizations", "TITLE"} {
		if _, err := orderClause(ordering); !errors.Is(err, ErrOrderingNotFound) {
			t.Errorf("orderClause(%q) error = %v, want ErrOrderingNotFound", ordering, err)
		}
	}
}

func TestParseSearchParams(t *testing.T) {
	p := ParseSearchParams("  matrix ", "Drama, Thriller ,,", " Movie ")

	if p.Title != "matrix" {
		t.Errorf("Title = %q, want %q", p.Title, "matrix")
	}
	if want := []string{"Drama", "Thriller"}; !reflect.DeepEqual(p.Genres, want) {
		t.Errorf("Genres = %v, want %v", p.Genres, want)
	}
	if p.FilmType != "Movie" {
		t.Errorf("FilmType = %q, want %q", p.FilmType, "Movie")
	}
}

func TestSearchParamsEmpty(t *testing.T) {
	if !(SearchParams{}).Empty() {
		t.Error("zero params should be empty")
	}
	if !ParseSearchParams("", " , ,", "").Empty() {
		t.Error("blank-only genres should still be empty")
	}
	if ParseSearchParams("heat", "", "").Empty() {
		t.Error("a title filter alone is not empty")
	}
	if ParseSearchParams("", "Drama", "").Empty() {
		t.Error("a genre filter alone is not empty")
	}
	if ParseSearchParams("", "", "Series").Empty() {
		t.Error("a type filter alone is not empty")
	}
}

func TestSearchParamsKeyIsCaseInsensitive(t *testing.T) {
	a := ParseSearchParams("Heat", "Drama,Thriller", "Movie").Key()
	b := ParseSearchParams("heat", "drama,thriller", "movie").Key()

	if a != b {
		t.Errorf("keys differ: %q vs %q", a, b)
	}
}
