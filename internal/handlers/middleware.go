package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kaukau001/url-shortener-api/internal/apperrors"
	"github.com/kaukau001/url-shortener-api/internal/auth"
)

const (
	requestIDHeader = "X-Request-ID"

	ctxRequestIDKey = "requestID"
	ctxUserIDKey    = "userID"
	ctxUserEmailKey = "userEmail"
)

// RequestID attaches a correlation id to every request, honoring an inbound
// X-Request-ID and echoing the id back on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ctxRequestIDKey, requestID)
		c.Header(requestIDHeader, requestID)
		c.Next()
	}
}

func requestIDFrom(c *gin.Context) string {
	return c.GetString(ctxRequestIDKey)
}

// AccessLog writes one line per request with the correlation id.
func AccessLog(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", requestIDFrom(c)).
			Msg("request")
	}
}

// RequireAuth rejects requests without a valid bearer token and stores the
// verified identity in the request context.
func RequireAuth(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			writeError(c, apperrors.Unauthorized("authorization header is required"))
			c.Abort()
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			writeError(c, err)
			c.Abort()
			return
		}

		c.Set(ctxUserIDKey, claims.Subject)
		c.Set(ctxUserEmailKey, claims.Email)
		c.Next()
	}
}

// OptionalAuth picks up an identity when a valid token is present and
// otherwise lets the request through anonymously.
func OptionalAuth(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := tokens.Verify(token); err == nil {
				c.Set(ctxUserIDKey, claims.Subject)
				c.Set(ctxUserEmailKey, claims.Email)
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func userIDFrom(c *gin.Context) (string, bool) {
	userID := c.GetString(ctxUserIDKey)
	return userID, userID != ""
}
