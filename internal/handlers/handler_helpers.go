package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hammamsawalma/edusystem/internal/apperrors"
	"github.com/hammamsawalma/edusystem/internal/core/domain"
	"github.com/hammamsawalma/edusystem/internal/dto"
	"github.com/hammamsawalma/edusystem/internal/middleware"
)

// requireActor pulls the authenticated actor out of the request context,
// writing a 401 envelope when the auth middleware did not run.
func requireActor(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Actor not found in context")
		dto.RespondError(c, http.StatusUnauthorized, "Unauthorized")
	}
	return actor, ok
}

// parsePeriod resolves the startDate/endDate query parameters into a
// period, writing a 400 envelope on failure.
func parsePeriod(c *gin.Context) (domain.Period, bool) {
	period, err := domain.ResolvePeriod(c.Query("startDate"), c.Query("endDate"), time.Now())
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid period parameters",
			slog.String("startDate", c.Query("startDate")),
			slog.String("endDate", c.Query("endDate")),
			slog.String("error", err.Error()))
		dto.RespondError(c, http.StatusBadRequest, err.Error())
		return domain.Period{}, false
	}
	return period, true
}

// respondServiceError maps service-layer errors onto HTTP status codes and
// writes the failure envelope. Internal error details are only exposed
// outside release mode.
func respondServiceError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		dto.RespondError(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, apperrors.ErrForbidden):
		dto.RespondError(c, http.StatusForbidden, "You do not have permission to perform this action")
	case errors.Is(err, apperrors.ErrDuplicate):
		dto.RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidPeriod),
		errors.Is(err, apperrors.ErrMissingParameter):
		dto.RespondError(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &appErr):
		msg := appErr.Message
		if appErr.Code >= http.StatusInternalServerError && gin.Mode() == gin.ReleaseMode {
			msg = "Internal server error"
		}
		if appErr.Code >= http.StatusInternalServerError {
			logger.Error("Service error", slog.String("error", err.Error()))
		}
		dto.RespondError(c, appErr.Code, msg)
	default:
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		msg := "Internal server error"
		if gin.Mode() != gin.ReleaseMode {
			msg = err.Error()
		}
		dto.RespondError(c, http.StatusInternalServerError, msg)
	}
}
