package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/imgbed/service/internal/response"
)

// Recoverer turns a handler panic into a JSON 500. The stack goes to the log only.
func Recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("panic recovered",
					slog.Any("panic", rec),
					slog.String("request_id", chiMiddleware.GetReqID(r.Context())),
					slog.String("stack", string(debug.Stack())),
				)
				response.InternalError(w, "")
			}()
			next.ServeHTTP(w, r)
		})
	}
}
