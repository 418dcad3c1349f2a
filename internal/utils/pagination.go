package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// PageSize is the fixed page size. The page_size query parameter is
// accepted but capped here, so the maximum equals the default.
const PageSize = 9

// ErrPageOutOfRange is returned when the requested page number lies past
// the last page. Handlers map it to a 404.
var ErrPageOutOfRange = errors.New("page out of range")

// Page is the pagination envelope around one slice of results.
type Page struct {
	LastPage      int         `json:"last_page"`
	TotalResults  int64       `json:"total_results"`
	ItemsOnPage   int         `json:"items_on_page"`
	Current       int         `json:"current"`
	Next          *int        `json:"next"`
	Previous      *int        `json:"previous"`
	Results       interface{} `json:"results"`
	Ordering      *string     `json:"ordering"`
	FilteringData interface{} `json:"filtering_data,omitempty"`
}

// NewPage builds the envelope for page `current` of `total` results.
// An empty result set still has one (empty) page.
func NewPage(total int64, current, size int, results interface{}, ordering string) (*Page, error) {
	lastPage := int((total + int64(size) - 1) / int64(size))
	if lastPage < 1 {
		lastPage = 1
	}
	if current < 1 || current > lastPage {
		return nil, ErrPageOutOfRange
	}

	page := &Page{
		LastPage:     lastPage,
		TotalResults: total,
		ItemsOnPage:  size,
		Current:      current,
		Results:      results,
	}
	if current < lastPage {
		next := current + 1
		page.Next = &next
	}
	if current > 1 {
		previous := current - 1
		page.Previous = &previous
	}
	if ordering != "" {
		page.Ordering = &ordering
	}
	return page, nil
}

// ParsePage reads the page number from the query string, defaulting to 1.
func ParsePage(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// ParsePageSize reads page_size from the query string. Values above
// PageSize are clamped down to it.
func ParsePageSize(c *gin.Context) int {
	size, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(PageSize)))
	if err != nil || size < 1 || size > PageSize {
		return PageSize
	}
	return size
}
