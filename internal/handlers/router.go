package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kaukau001/url-shortener-api/internal/auth"
	"github.com/kaukau001/url-shortener-api/internal/services"
)

type Handler struct {
	links   *services.LinkService
	users   *services.UserService
	log     zerolog.Logger
	started time.Time
}

func NewRouter(log zerolog.Logger, links *services.LinkService, users *services.UserService, tokens *auth.TokenIssuer) *gin.Engine {
	h := &Handler{
		links:   links,
		users:   users,
		log:     log,
		started: time.Now(),
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), AccessLog(log))

	router.GET("/health", h.health)

	router.POST("/auth/register", h.register)
	router.POST("/auth/login", h.login)

	router.POST("/shorten", OptionalAuth(tokens), h.shorten)

	user := router.Group("/user", RequireAuth(tokens))
	{
		user.GET("/urls", h.listURLs)
		user.PATCH("/urls", h.renameCode)
		user.PUT("/urls/:code", h.updateURL)
		user.DELETE("/urls/:code", h.deleteURL)
	}

	router.GET("/:code", h.redirect)

	return router
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.started).String(),
	})
}
