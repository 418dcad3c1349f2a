package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/user/alternovafilms/internal/model"
)

func newEngagementTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{}
	r := gin.New()
	r.POST("/films/visualize/", h.Visualize)
	r.POST("/films/rate/", h.Rate)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) (*httptest.ResponseRecorder, map[string][]string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	errs := map[string][]string{}
	if w.Code == http.StatusBadRequest {
		if err := json.Unmarshal(w.Body.Bytes(), &errs); err != nil {
			t.Fatalf("decode error body %q: %v", w.Body.String(), err)
		}
	}
	return w, errs
}

func TestVisualizeMissingFields(t *testing.T) {
	r := newEngagementTestRouter()

	w, errs := postJSON(t, r, "/films/visualize/", `{"film": 1}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if _, ok := errs["user"]; !ok {
		t.Errorf("expected a user field error, got %v", errs)
	}
	if _, ok := errs["film"]; ok {
		t.Errorf("film was supplied, it must not be reported: %v", errs)
	}
}

func TestRateMissingRating(t *testing.T) {
	r := newEngagementTestRouter()

	w, errs := postJSON(t, r, "/films/rate/", `{"film": 1, "user": 2}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if got, ok := errs["rating"]; !ok || got[0] != "this field is required" {
		t.Errorf("rating error = %v, want required message", errs)
	}
}

func TestRateOutOfRange(t *testing.T) {
	r := newEngagementTestRouter()

	for _, body := range []string{
		`{"film": 1, "user": 2, "rating": 10.5}`,
		`{"film": 1, "user": 2, "rating": -1}`,
	} {
		w, errs := postJSON(t, r, "/films/rate/", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400 for %s", w.Code, body)
		}
		if got, ok := errs["rating"]; !ok || got[0] != "rating must be between 0 and 10" {
			t.Errorf("rating error = %v for %s", errs, body)
		}
	}
}

func TestRateAcceptsZeroAsPresent(t *testing.T) {
	// A rating of 0 is a valid value; the pointer field keeps it from
	// tripping the required check.
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/films/rate/", strings.NewReader(`{"film": 1, "user": 2, "rating": 0}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var req rateRequest
	if err := c.ShouldBind(&req); err != nil {
		t.Fatalf("rating 0 was rejected by validation: %v", err)
	}
	if req.Rating == nil || *req.Rating != 0 {
		t.Errorf("Rating = %v, want 0", req.Rating)
	}
}

func TestFilmPayloadProjection(t *testing.T) {
	slug := "heat-1"
	film := &model.Film{
		ID:             1,
		Title:          "Heat",
		Genres:         []model.Genre{{ID: 1, Name: "Crime"}, {ID: 2, Name: "Drama"}},
		FilmType:       &model.FilmType{ID: 1, Name: "Movie"},
		Visualizations: 4,
		Rating:         8.8,
		Slug:           &slug,
	}

	payload := filmPayload(film)

	if payload["pk"] != 1 || payload["title"] != "Heat" {
		t.Errorf("unexpected identity fields: %v", payload)
	}
	if got := payload["genre"]; !reflect.DeepEqual(got, []string{"Crime", "Drama"}) {
		t.Errorf("genre = %v", got)
	}
	if got := payload["film_type"].(*string); got == nil || *got != "Movie" {
		t.Errorf("film_type = %v", got)
	}
}

func TestFilmPayloadWithoutType(t *testing.T) {
	film := &model.Film{ID: 2, Title: "Untyped"}

	payload := filmPayload(film)

	if got := payload["film_type"].(*string); got != nil {
		t.Errorf("film_type = %v, want nil", *got)
	}
	if got := payload["genre"]; !reflect.DeepEqual(got, []string{}) {
		t.Errorf("genre = %v, want empty list", got)
	}
	if payload["slug"].(*string) != nil {
		t.Error("slug must be nil before assignment")
	}
}
