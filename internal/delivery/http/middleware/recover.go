package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"shoresquad/internal/delivery/http/helpers"
)

// Recover turns a handler panic into a 500 JSON error and logs the stack.
func Recover(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			requestID, _ := RequestIDFromContext(r.Context())
			logger.ErrorContext(r.Context(), "handler panic",
				"request_id", requestID,
				"path", r.URL.Path,
				"panic", rec,
				"stack", string(debug.Stack()),
			)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		}()
		next.ServeHTTP(w, r)
	})
}
