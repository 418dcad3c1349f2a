package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/user/alternovafilms/internal/model"
	"github.com/user/alternovafilms/internal/repository"
	"github.com/user/alternovafilms/internal/service"
	"github.com/user/alternovafilms/internal/utils"
)

// filmPayload projects a film to the wire format: genre names and the type
// name instead of nested objects.
func filmPayload(f *model.Film) gin.H {
	return gin.H{
		"pk":             f.ID,
		"title":          f.Title,
		"genre":          f.GenreNames(),
		"film_type":      f.FilmTypeName(),
		"visualizations": f.Visualizations,
		"rating":         f.Rating,
		"slug":           f.Slug,
	}
}

func filmPayloads(films []*model.Film) []gin.H {
	payloads := make([]gin.H, 0, len(films))
	for _, f := range films {
		payloads = append(payloads, filmPayload(f))
	}
	return payloads
}

func filmPayloadOrNil(f *model.Film) interface{} {
	if f == nil {
		return nil
	}
	return filmPayload(f)
}

// FilmList is the paginated catalog listing. Accepted ordering values:
// title, genre, -film_type, -rating, -visualizations; anything else is a
// 404. page_size is accepted but capped at the default.
func (h *Handler) FilmList(c *gin.Context) {
	ordering := c.Query("ordering")
	page := utils.ParsePage(c)
	size := utils.ParsePageSize(c)

	films, total, err := h.Repos.Film.List(ordering, size, (page-1)*size)
	if errors.Is(err, repository.ErrOrderingNotFound) {
		h.notFound(c, "Ordering not found")
		return
	}
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	envelope, err := utils.NewPage(total, page, size, filmPayloads(films), ordering)
	if err != nil {
		h.notFound(c, "Invalid page")
		return
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, envelope)
		return
	}

	c.HTML(http.StatusOK, "films.html", h.RenderData(c, gin.H{
		"Title":         "Films - " + h.Config.SiteName,
		"Films":         films,
		"Page":          envelope,
		"OrderingValue": ordering,
		"Filters":       map[string]string{},
	}))
}

// FilmDetail returns a single film by slug.
func (h *Handler) FilmDetail(c *gin.Context) {
	film, err := h.Repos.Film.FindBySlug(c.Param("slug"))
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if film == nil {
		h.notFound(c, "Film not found")
		return
	}
	h.renderFilm(c, film)
}

// RandomFilm returns one random film.
func (h *Handler) RandomFilm(c *gin.Context) {
	film, err := h.Repos.Film.Random()
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if film == nil {
		h.notFound(c, "Film not found")
		return
	}
	h.renderFilm(c, film)
}

func (h *Handler) renderFilm(c *gin.Context, film *model.Film) {
	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"film": filmPayload(film)})
		return
	}
	c.HTML(http.StatusOK, "film_detail.html", h.RenderData(c, gin.H{
		"Title": film.Title + " - " + h.Config.SiteName,
		"Film":  film,
	}))
}

// visualizeRequest and rateRequest use pointers so that a missing field is
// distinguishable from a zero value (a rating of 0 is valid).
type visualizeRequest struct {
	Film *int `json:"film" form:"film" binding:"required"`
	User *int `json:"user" form:"user" binding:"required"`
}

type rateRequest struct {
	Film   *int     `json:"film" form:"film" binding:"required"`
	User   *int     `json:"user" form:"user" binding:"required"`
	Rating *float64 `json:"rating" form:"rating" binding:"required,gte=0,lte=10"`
}

// Visualize records that the user watched the film. 201 with the film data
// on success; 400 on a duplicate or missing fields; 404 for an unknown film.
func (h *Handler) Visualize(c *gin.Context) {
	var req visualizeRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.BadRequest(c, bindingErrors(err))
		return
	}

	if err := h.Catalog.RecordVisualization(*req.Film, *req.User); err != nil {
		h.renderEngagementError(c, err)
		return
	}

	film, err := h.Repos.Film.FindByID(*req.Film)
	if err != nil || film == nil {
		utils.InternalServerError(c, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "You have visualized this film",
		"film":    filmPayload(film),
	})
}

// Rate records the user's rating and responds with the refreshed film.
func (h *Handler) Rate(c *gin.Context) {
	var req rateRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.BadRequest(c, bindingErrors(err))
		return
	}

	newAverage, err := h.Catalog.RecordRating(*req.Film, *req.User, *req.Rating)
	if err != nil {
		h.renderEngagementError(c, err)
		return
	}

	film, err := h.Repos.Film.FindByID(*req.Film)
	if err != nil || film == nil {
		utils.InternalServerError(c, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("You have rated this film, new average %.1f", newAverage),
		"film":    filmPayload(film),
	})
}

func (h *Handler) renderEngagementError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrFilmNotFound):
		utils.NotFound(c, "Film not found")
	case errors.Is(err, service.ErrAlreadyRated), errors.Is(err, service.ErrAlreadyVisualized):
		utils.BadRequest(c, utils.NonFieldErrors(err.Error()))
	case errors.Is(err, service.ErrRatingOutOfRange):
		utils.BadRequest(c, utils.ValidationErrors{"rating": {err.Error()}})
	default:
		utils.InternalServerError(c, "")
	}
}

// SearchFilms filters the catalog by title substring, genre list (a film
// must carry every listed genre) and film type, all case-insensitive,
// sorted by rating descending. Without any filter it answers with a prompt
// instead of an empty result list. Every response carries the genre/type
// vocabularies for the filter UI.
func (h *Handler) SearchFilms(c *gin.Context) {
	params := repository.ParseSearchParams(c.Query("title"), c.Query("genres"), c.Query("film_type"))

	vocab, err := h.filteringData()
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	if params.Empty() {
		h.renderSearchMessage(c, "Please provide at least one filter", vocab)
		return
	}

	page := utils.ParsePage(c)
	size := utils.ParsePageSize(c)

	cacheKey := fmt.Sprintf("%s|page=%d|size=%d", params.Key(), page, size)
	result, ok := h.searchCache.Get(cacheKey)
	if !ok {
		films, total, err := h.Repos.Film.Search(params, size, (page-1)*size)
		if err != nil {
			utils.InternalServerError(c, "")
			return
		}
		result = searchResult{Films: films, Total: total}
		h.searchCache.Set(cacheKey, result)
	}

	if result.Total == 0 {
		h.renderSearchMessage(c, "No films found", vocab)
		return
	}

	envelope, err := utils.NewPage(result.Total, page, size, filmPayloads(result.Films), c.Query("ordering"))
	if err != nil {
		h.notFound(c, "Invalid page")
		return
	}
	envelope.FilteringData = vocab

	if wantsJSON(c) {
		c.JSON(http.StatusOK, envelope)
		return
	}

	c.HTML(http.StatusOK, "search.html", h.RenderData(c, gin.H{
		"Title":         "Search - " + h.Config.SiteName,
		"Films":         result.Films,
		"Page":          envelope,
		"FilteringData": vocab,
		"OrderingValue": "",
		"Filters": map[string]string{
			"title":     c.Query("title"),
			"genres":    c.Query("genres"),
			"film_type": c.Query("film_type"),
		},
	}))
}

func (h *Handler) renderSearchMessage(c *gin.Context, message string, vocab gin.H) {
	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{
			"message":        message,
			"filtering_data": vocab,
		})
		return
	}
	c.HTML(http.StatusOK, "search.html", h.RenderData(c, gin.H{
		"Title":         "Search - " + h.Config.SiteName,
		"Message":       message,
		"FilteringData": vocab,
		"Filters":       map[string]string{},
	}))
}

// filteringData returns the full genre and film type vocabularies, cached
// for a few minutes.
func (h *Handler) filteringData() (gin.H, error) {
	if cached, ok := utils.CacheGet("filtering_data"); ok {
		return cached.(gin.H), nil
	}

	genres, err := h.Repos.Genre.Names()
	if err != nil {
		return nil, err
	}
	types, err := h.Repos.FilmType.Names()
	if err != nil {
		return nil, err
	}

	vocab := gin.H{"genres": genres, "film_types": types}
	utils.CacheSet("filtering_data", vocab, 5*time.Minute)
	return vocab, nil
}

// bindingErrors turns a binding failure into the field-keyed error map of
// the 400 body.
func bindingErrors(err error) utils.ValidationErrors {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return utils.NonFieldErrors(err.Error())
	}

	errs := utils.ValidationErrors{}
	for _, fe := range fieldErrors {
		field := strings.ToLower(fe.Field())
		errs[field] = append(errs[field], fieldMessage(fe))
	}
	return errs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "gte", "lte":
		return "rating must be between 0 and 10"
	}
	return "invalid value"
}
