package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kaukau001/url-shortener-api/internal/apperrors"
)

// redirect is the user-facing hot path: any resolution failure collapses to
// 404 rather than a 5xx.
func (h *Handler) redirect(c *gin.Context) {
	originalURL, ok := h.links.Resolve(c.Request.Context(), c.Param("code"))
	if !ok {
		writeError(c, apperrors.NotFound("short url not found"))
		return
	}

	c.Redirect(http.StatusMovedPermanently, originalURL)
}
