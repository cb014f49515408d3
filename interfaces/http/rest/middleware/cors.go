package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// Cross-origin headers sent on every response
const (
	AllowOrigin  = "*"
	AllowHeaders = "Content-Type,Authorization,X-Amz-Date,X-Api-Key,X-Amz-Security-Token"
	AllowMethods = "GET,POST,PUT,DELETE,OPTIONS"
)

// CORS sets the fixed cross-origin header set on every response and answers
// OPTIONS itself with 200 and an empty body. Browser requests that carry an
// Origin are additionally run through go-chi/cors, which adds Vary and the
// exposed headers.
func CORS() func(http.Handler) http.Handler {
	browser := cors.Handler(cors.Options{
		AllowedOrigins: []string{AllowOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Amz-Date", "X-Api-Key", "X-Amz-Security-Token"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	})

	return func(next http.Handler) http.Handler {
		withBrowser := browser(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", AllowOrigin)
			h.Set("Access-Control-Allow-Headers", AllowHeaders)
			h.Set("Access-Control-Allow-Methods", AllowMethods)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			if r.Header.Get("Origin") != "" {
				withBrowser.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
