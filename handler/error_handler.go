package handler

import (
	"log/slog"
	"net/http"

	"github.com/campusnet/accounts/pkg/logger"
)

// NewErrorHandler returns an ErrorHandler that logs the failure and renders
// it with JSONError. Client errors log at warn, server errors at error.
func NewErrorHandler(log *slog.Logger) ErrorHandler {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(logger.Component("handler"))

	return func(ctx Context, err error) {
		resp := JSONError(err)
		status, _ := ErrorToDetail(err)
		LogError(log, ctx.Request(), err, status)
		if renderErr := resp.Render(ctx.ResponseWriter(), ctx.Request()); renderErr != nil {
			log.ErrorContext(ctx, "render error response", logger.Error(renderErr))
		}
	}
}

// LogError records a request failure with its status.
func LogError(log *slog.Logger, r *http.Request, err error, status int) {
	level := slog.LevelError
	if status < http.StatusInternalServerError {
		level = slog.LevelWarn
	}
	log.LogAttrs(r.Context(), level, "request failed",
		logger.Error(err),
		slog.Int("status", status),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)
}
