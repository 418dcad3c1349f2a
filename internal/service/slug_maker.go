package service

import (
	"fmt"

	"github.com/gosimple/slug"
)

// MakeSlug derives the URL identifier for a film: the title is
// transliterated to ASCII, the numeric id is appended, and the result is
// lowercased with non-alphanumeric runs collapsed to hyphens. Uniqueness
// follows from the id suffix.
func MakeSlug(title string, id int) string {
	return slug.Make(fmt.Sprintf("%s-%d", title, id))
}
