package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/alternovafilms/internal/model"
	"github.com/user/alternovafilms/internal/repository"
)

// Importer seeds the catalog from an HTML film-list export. Films, genres
// and film types are created out-of-band through the importer; end users
// only ever add engagement records.
type Importer struct {
	repos   *repository.Repositories
	catalog *CatalogService
}

func NewImporter(repos *repository.Repositories, catalog *CatalogService) *Importer {
	return &Importer{repos: repos, catalog: catalog}
}

// ImportHTML parses a film table and creates one film per row. Expected
// markup: <table class="films"> rows with td.title, td.film-type and
// td.genres (comma-separated genre names). Rows without a title are
// skipped. Returns the number of films created.
func (im *Importer) ImportHTML(r io.Reader) (int, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return 0, fmt.Errorf("parse import document: %w", err)
	}

	created := 0
	var importErr error

	doc.Find("table.films tbody tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		title := strings.TrimSpace(row.Find("td.title").Text())
		if title == "" {
			return true
		}

		film := &model.Film{Title: title}

		if typeName := strings.TrimSpace(row.Find("td.film-type").Text()); typeName != "" {
			filmType, err := im.repos.FilmType.FindOrCreate(typeName)
			if err != nil {
				importErr = fmt.Errorf("row %d: film type %q: %w", i, typeName, err)
				return false
			}
			film.FilmTypeID = &filmType.ID
		}

		for _, name := range strings.Split(row.Find("td.genres").Text(), ",") {
			if name = strings.TrimSpace(name); name == "" {
				continue
			}
			genre, err := im.repos.Genre.FindOrCreate(name)
			if err != nil {
				importErr = fmt.Errorf("row %d: genre %q: %w", i, name, err)
				return false
			}
			film.Genres = append(film.Genres, *genre)
		}

		if err := im.catalog.CreateFilm(film); err != nil {
			importErr = fmt.Errorf("row %d: create film %q: %w", i, title, err)
			return false
		}
		created++
		return true
	})

	return created, importErr
}
