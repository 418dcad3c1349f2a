package utils

import (
	"errors"
	"testing"
)

func TestNewPageSplits20ResultsInto3Pages(t *testing.T) {
	// 20 results at the default size paginate as 9/9/2.
	cases := []struct {
		current      int
		wantNext     *int
		wantPrevious *int
	}{
		{1, intPtr(2), nil},
		{2, intPtr(3), intPtr(1)},
		{3, nil, intPtr(2)},
	}

	for _, tc := range cases {
		page, err := NewPage(20, tc.current, PageSize, nil, "")
		if err != nil {
			t.Fatalf("NewPage(20, %d) unexpected error: %v", tc.current, err)
		}
		if page.LastPage != 3 {
			t.Errorf("page %d: LastPage = %d, want 3", tc.current, page.LastPage)
		}
		if page.TotalResults != 20 {
			t.Errorf("page %d: TotalResults = %d, want 20", tc.current, page.TotalResults)
		}
		if !intPtrEqual(page.Next, tc.wantNext) {
			t.Errorf("page %d: Next = %v, want %v", tc.current, page.Next, tc.wantNext)
		}
		if !intPtrEqual(page.Previous, tc.wantPrevious) {
			t.Errorf("page %d: Previous = %v, want %v", tc.current, page.Previous, tc.wantPrevious)
		}
	}
}

func TestNewPageOutOfRange(t *testing.T) {
	if _, err := NewPage(20, 4, PageSize, nil, ""); !errors.Is(err, ErrPageOutOfRange) {
		t.Errorf("page past the end: error = %v, want ErrPageOutOfRange", err)
	}
	if _, err := NewPage(20, 0, PageSize, nil, ""); !errors.Is(err, ErrPageOutOfRange) {
		t.Errorf("page zero: error = %v, want ErrPageOutOfRange", err)
	}
}

func TestNewPageEmptyResultSetHasOnePage(t *testing.T) {
	page, err := NewPage(0, 1, PageSize, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.LastPage != 1 {
		t.Errorf("LastPage = %d, want 1", page.LastPage)
	}
	if page.Next != nil || page.Previous != nil {
		t.Errorf("single page should have nil Next and Previous, got %v / %v", page.Next, page.Previous)
	}
}

func TestNewPageOrderingEcho(t *testing.T) {
	page, err := NewPage(5, 1, PageSize, nil, "-rating")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Ordering == nil || *page.Ordering != "-rating" {
		t.Errorf("Ordering = %v, want -rating", page.Ordering)
	}

	page, err = NewPage(5, 1, PageSize, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Ordering != nil {
		t.Errorf("Ordering = %v, want nil for the default ordering", page.Ordering)
	}
}

func intPtr(v int) *int { return &v }

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
