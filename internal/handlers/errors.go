package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kaukau001/url-shortener-api/internal/apperrors"
)

// writeError renders the shared error envelope. Every body carries the
// request correlation id alongside the stable machine code.
func writeError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal("unexpected error", err)
	}

	c.JSON(apperrors.HTTPStatus(appErr.Kind), gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
		"requestId": requestIDFrom(c),
	})
}
