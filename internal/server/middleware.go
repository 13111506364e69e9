package server

import (
	"net/http"
	"strings"
	"time"

	"fullstack/internal/auth"
	"fullstack/internal/domain/errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const userContextKey = "user"

// RequestLogger logs method, path, status, response size and latency for
// every request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		log.Info().
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Int("status", ctx.Writer.Status()).
			Int("size", ctx.Writer.Size()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// RequireUser extracts the bearer token from the Authorization header,
// verifies it and attaches the resolved claims to the request context.
// Requests without a verifiable identity are aborted with 401.
func RequireUser(secret []byte) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errors.ErrTokenMissing.Error()})
			return
		}
		claims, err := auth.ParseToken(strings.TrimSpace(header[len("bearer "):]), secret)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		ctx.Set(userContextKey, claims)
		ctx.Next()
	}
}

// userClaims returns the claims attached by RequireUser.
func userClaims(ctx *gin.Context) (*auth.Claims, bool) {
	v, exists := ctx.Get(userContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

func unknownEndpoint(ctx *gin.Context) {
	ctx.JSON(http.StatusNotFound, gin.H{"error": "unknown endpoint"})
}
