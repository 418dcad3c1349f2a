package router

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
	"github.com/user/alternovafilms/internal/handler"
	"github.com/user/alternovafilms/internal/middleware"
	"github.com/user/alternovafilms/internal/utils"
)

// RegisterRoutes wires every route. The film endpoints except the home feed
// require authentication.
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public pages
	r.GET("/", h.Home)

	// Auth pages
	r.GET("/login/", h.LoginPage)
	r.POST("/login/", h.Login)
	r.GET("/logout/", h.Logout)
	r.GET("/register/", h.RegisterPage)
	r.POST("/register/", h.Register)

	// Catalog (authenticated)
	films := r.Group("/films")
	films.Use(middleware.RequireAuth(h.Config.AppSecret))
	{
		films.GET("/", h.FilmList)
		films.GET("/detail/:slug/", h.FilmDetail)
		films.GET("/random/", h.RandomFilm)
		films.GET("/search/", h.SearchFilms)
		films.POST("/visualize/", h.Visualize)
		films.POST("/rate/", h.Rate)
	}
}

// LoadTemplates assembles the page templates with multitemplate so every
// page shares the layouts and partials.
func LoadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	partials, err := filepath.Glob(templatesDir + "/partials/*.html")
	if err != nil {
		panic(err)
	}

	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, partials...)
		files = append(files, view)
		return files
	}

	funcMap := template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		// The pagination partial hands over both plain page numbers and
		// the Next/Previous pointers of the envelope.
		"pageQuery": func(page interface{}, ordering string, filters map[string]string) string {
			if p, ok := page.(*int); ok {
				return utils.BuildPageQuery(*p, ordering, filters)
			}
			return utils.BuildPageQuery(page.(int), ordering, filters)
		},
		"orderingLabel": utils.OrderingLabel,
		"pageNumbers":   utils.PageNumbers,
	}

	pages := []string{
		"home", "films", "film_detail", "search",
		"login", "register", "404",
	}

	for _, page := range pages {
		viewPath := templatesDir + "/pages/" + page + ".html"
		r.AddFromFilesFuncs(page+".html", funcMap, assemble(viewPath)...)
	}

	return r
}
