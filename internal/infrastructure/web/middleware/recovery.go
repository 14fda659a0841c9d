package middleware

import (
	"fmt"
	"net/http"

	"p2p-volume-tracker/internal/infrastructure/logging"
)

// RecoveryMiddleware turns handler panics into a 500 with the standard error body
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logging.Error(r.Context(), "Handler panicked", logging.Fields{
					logging.FieldError: fmt.Sprint(rec),
					logging.FieldPath:  r.URL.Path,
				})
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"Internal server error","code":"INTERNAL_ERROR"}`))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
