package service

import (
	"testing"
)

func TestMakeSlug(t *testing.T) {
	tests := []struct {
		name  string
		title string
		id    int
		want  string
	}{
		{"simple title", "The Matrix", 1, "the-matrix-1"},
		{"non ascii transliterated", "Amélie", 7, "amelie-7"},
		{"punctuation collapsed", "What's Up, Doc?", 12, "what-s-up-doc-12"},
		{"multiple spaces", "The  Good   Film", 3, "the-good-film-3"},
		{"already lowercase", "heat", 99, "heat-99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MakeSlug(tt.title, tt.id); got != tt.want {
				t.Errorf("MakeSlug(%q, %d) = %q, want %q", tt.title, tt.id, got, tt.want)
			}
		})
	}
}

func TestMakeSlugSameTitleDifferentID(t *testing.T) {
	// Two films can share a title; the id suffix keeps their slugs apart.
	first := MakeSlug("Dune", 10)
	second := MakeSlug("Dune", 11)

	if first == second {
		t.Fatalf("expected distinct slugs, both were %q", first)
	}
}
