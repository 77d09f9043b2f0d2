package handler

import (
	"embed"
	"log/slog"
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

//go:embed web/index.html
var webFS embed.FS

// RouterDeps wires the HTTP surface.
type RouterDeps struct {
	Searcher       Searcher
	Logger         *slog.Logger
	AllowedOrigins []string
}

// NewRouter builds the gin engine serving the page, search and health routes.
func NewRouter(deps RouterDeps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(logger.With("component", "http")))
	r.Use(cors.New(corsConfig(deps.AllowedOrigins)))

	search := NewSearchHandler(deps.Searcher, logger.With("component", "search"))

	r.GET("/", Index)
	r.POST("/search", search.Search)
	r.GET("/health", search.Health)

	return r
}

// Index serves the single page UI.
func Index(c *gin.Context) {
	page, err := webFS.ReadFile("web/index.html")
	if err != nil {
		c.String(http.StatusInternalServerError, "page unavailable")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
