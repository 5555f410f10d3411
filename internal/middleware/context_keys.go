package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/hammamsawalma/edusystem/internal/core/domain"
)

// contextKey is a private type for context value keys to prevent
// collisions with other packages.
type contextKey string

const (
	loggerCtxKey contextKey = "logger"
	actorCtxKey  contextKey = "actor"
)

// GetLoggerFromCtx retrieves the request-scoped logger from a standard
// context, falling back to the default logger.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// GetActorFromContext retrieves the authenticated actor set by the auth
// middleware.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	actor, ok := c.Request.Context().Value(actorCtxKey).(domain.Actor)
	return actor, ok
}

// GetUserIDFromContext retrieves just the authenticated user ID.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	actor, ok := GetActorFromContext(c)
	if !ok {
		return "", false
	}
	return actor.ID, true
}
