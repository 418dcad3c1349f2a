package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/user/alternovafilms/internal/config"
	"github.com/user/alternovafilms/internal/middleware"
	"github.com/user/alternovafilms/internal/model"
	"github.com/user/alternovafilms/internal/repository"
	"github.com/user/alternovafilms/internal/service"
	"github.com/user/alternovafilms/internal/utils"
	"golang.org/x/sync/errgroup"
)

const tokenExpiry = 72 * time.Hour

// Handler bundles the HTTP handlers with their dependencies.
type Handler struct {
	Repos   *repository.Repositories
	Config  *config.Config
	Catalog *service.CatalogService

	searchCache *utils.SearchCache[searchResult]
}

// searchResult is one cached page of search hits.
type searchResult struct {
	Films []*model.Film
	Total int64
}

// NewHandler creates the handler set.
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	return &Handler{
		Repos:       repos,
		Config:      cfg,
		Catalog:     service.NewCatalogService(repos),
		searchCache: utils.NewSearchCache[searchResult](500, 2*time.Minute),
	}
}

// RenderData merges the common template data (site info, current path,
// session user) with page-specific values.
func (h *Handler) RenderData(c *gin.Context, data gin.H) gin.H {
	res := gin.H{
		"SiteName": h.Config.SiteName,
		"SiteUrl":  h.Config.SiteUrl,
		"Path":     c.Request.URL.Path,
	}

	session := sessions.Default(c)
	if userinfo := session.Get("userinfo"); userinfo != nil {
		if su, ok := userinfo.(model.SessionUser); ok {
			res["UserInfo"] = su
		}
	}

	for k, v := range data {
		res[k] = v
	}

	return res
}

// wantsJSON decides the response format: explicit format=json, or an Accept
// header preferring JSON. Everything else renders HTML.
func wantsJSON(c *gin.Context) bool {
	if c.Query("format") == "json" {
		return true
	}
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

// notFound renders a 404 in the negotiated format.
func (h *Handler) notFound(c *gin.Context, detail string) {
	if wantsJSON(c) {
		utils.NotFound(c, detail)
		return
	}
	c.HTML(http.StatusNotFound, "404.html", h.RenderData(c, gin.H{
		"Title":  "Not found - " + h.Config.SiteName,
		"Detail": detail,
	}))
}

// homeFeed is the cached home page payload.
type homeFeed struct {
	TopFilms    []*model.Film
	MostSeen    []*model.Film
	RandomMovie *model.Film
}

// Home is the public home feed: top 5 by rating, top 3 by visualizations
// and one random film, fetched concurrently. The top lists are cached
// briefly; the random pick is fetched per request.
func (h *Handler) Home(c *gin.Context) {
	var feed homeFeed

	if cached, ok := utils.CacheGet("home_feed"); ok {
		feed = cached.(homeFeed)
		random, err := h.Repos.Film.Random()
		if err != nil {
			utils.InternalServerError(c, "")
			return
		}
		feed.RandomMovie = random
	} else {
		g := new(errgroup.Group)
		g.Go(func() error {
			films, err := h.Repos.Film.TopByRating(5)
			feed.TopFilms = films
			return err
		})
		g.Go(func() error {
			films, err := h.Repos.Film.TopByVisualizations(3)
			feed.MostSeen = films
			return err
		})
		g.Go(func() error {
			film, err := h.Repos.Film.Random()
			feed.RandomMovie = film
			return err
		})
		if err := g.Wait(); err != nil {
			utils.InternalServerError(c, "")
			return
		}
		utils.CacheSet("home_feed", homeFeed{TopFilms: feed.TopFilms, MostSeen: feed.MostSeen}, time.Minute)
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{
			"top_films":    filmPayloads(feed.TopFilms),
			"most_seen":    filmPayloads(feed.MostSeen),
			"random_movie": filmPayloadOrNil(feed.RandomMovie),
		})
		return
	}

	c.HTML(http.StatusOK, "home.html", h.RenderData(c, gin.H{
		"Title":       h.Config.SiteName,
		"TopFilms":    feed.TopFilms,
		"MostSeen":    feed.MostSeen,
		"RandomMovie": feed.RandomMovie,
	}))
}

// LoginPage renders the login form; authenticated users go straight home.
func (h *Handler) LoginPage(c *gin.Context) {
	if _, ok := middleware.SessionUser(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "login.html", h.RenderData(c, gin.H{
		"Title":    "Login - " + h.Config.SiteName,
		"Redirect": c.Query("redirect"),
	}))
}

// Login authenticates a user, stores the session and issues a token cookie
// for API clients.
func (h *Handler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	redirect := c.PostForm("redirect")
	if redirect == "" {
		redirect = "/"
	}

	user, err := h.Repos.User.FindByUsername(username)
	if err != nil || user == nil || !h.Repos.User.CheckPassword(user, password) {
		c.HTML(http.StatusOK, "login.html", h.RenderData(c, gin.H{
			"Title": "Login - " + h.Config.SiteName,
			"Error": "Invalid username or password",
		}))
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Username, h.Config.AppSecret, tokenExpiry)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", h.RenderData(c, gin.H{
			"Title": "Login - " + h.Config.SiteName,
			"Error": "Login failed, please retry",
		}))
		return
	}
	c.SetCookie("token", token, int(tokenExpiry.Seconds()), "/", "", false, true)

	session := sessions.Default(c)
	session.Set("userinfo", model.SessionUser{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
	})
	session.Save()

	c.Redirect(http.StatusFound, redirect)
}

// Logout clears the session and sends the user home.
func (h *Handler) Logout(c *gin.Context) {
	if _, ok := middleware.SessionUser(c); ok {
		session := sessions.Default(c)
		session.Clear()
		session.Save()
		c.SetCookie("token", "", -1, "/", "", false, true)
	}
	c.Redirect(http.StatusFound, "/")
}

// RegisterPage renders the registration form.
func (h *Handler) RegisterPage(c *gin.Context) {
	if _, ok := middleware.SessionUser(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "register.html", h.RenderData(c, gin.H{
		"Title": "Register - " + h.Config.SiteName,
	}))
}

// Register creates an account.
func (h *Handler) Register(c *gin.Context) {
	email := c.PostForm("email")
	username := c.PostForm("username")
	password := c.PostForm("password")
	confirmPassword := c.PostForm("confirm_password")

	renderError := func(message string) {
		c.HTML(http.StatusOK, "register.html", h.RenderData(c, gin.H{
			"Title": "Register - " + h.Config.SiteName,
			"Error": message,
		}))
	}

	if password != confirmPassword {
		renderError("The passwords do not match")
		return
	}
	if len(password) < 6 {
		renderError("The password needs at least 6 characters")
		return
	}
	if username == "" || email == "" {
		renderError("Email and username are required")
		return
	}

	if existing, _ := h.Repos.User.FindByEmail(email); existing != nil {
		renderError("This email is already registered")
		return
	}
	if existing, _ := h.Repos.User.FindByUsername(username); existing != nil {
		renderError("This username is taken")
		return
	}

	if _, err := h.Repos.User.Create(email, username, password); err != nil {
		renderError("Registration failed, please retry")
		return
	}

	c.Redirect(http.StatusFound, "/login/")
}
