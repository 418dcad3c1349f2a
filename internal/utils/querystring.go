package utils

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var orderingLabelClean = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// BuildPageQuery rebuilds the query string for a page link, preserving the
// active ordering and filter parameters while swapping the page number.
func BuildPageQuery(page int, ordering string, filters map[string]string) string {
	values := url.Values{}
	for key, value := range filters {
		if value != "" {
			values.Set(key, value)
		}
	}
	if ordering != "" {
		values.Set("ordering", ordering)
	}
	values.Set("page", strconv.Itoa(page))
	return "?" + values.Encode()
}

// OrderingLabel renders the active ordering for display: the sort-direction
// prefix is stripped, underscores become spaces and the first letter is
// capitalized. An empty ordering names the default.
func OrderingLabel(ordering string) string {
	if ordering == "" {
		return "Sorted by: Default (Title)"
	}
	label := orderingLabelClean.ReplaceAllString(ordering, "")
	label = strings.ReplaceAll(label, "_", " ")
	return "Sorted by: " + capitalize(label)
}

// PageNumbers lists 1..n for the pagination widget.
func PageNumbers(n int) []int {
	if n < 1 {
		return nil
	}
	pages := make([]int, n)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
