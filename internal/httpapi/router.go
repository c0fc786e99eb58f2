package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterConfig carries the HTTP-surface settings the router needs.
type RouterConfig struct {
	AuthSecret     string
	AllowedOrigins []string
	Ready          func(ctx context.Context) error
}

func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/readyz", func(c *gin.Context) {
		if cfg.Ready != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 500*time.Millisecond)
			defer cancel()
			if err := cfg.Ready(ctx); err != nil {
				c.String(http.StatusServiceUnavailable, "not ready")
				return
			}
		}
		c.String(http.StatusOK, "ready")
	})

	api := r.Group("/api")
	{
		api.POST("/books", RequireAuth(cfg.AuthSecret), h.CreateBook)
		api.GET("/books", h.ListBooks)
		api.GET("/books/search", h.SearchBooks)
		api.GET("/books/search/author", h.SearchBooksByAuthor)
		api.GET("/books/search/year", h.SearchBooksByReadYear)
		api.GET("/books/count", h.CountBooks)
		api.GET("/books/count/year", h.CountBooksByReadYear)
		api.GET("/books/:id", h.GetBookByID)

		api.POST("/auth/login", h.Login)
	}

	return r
}
