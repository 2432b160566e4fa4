package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/vancomm/bingo-server/internal/config"
)

// Cors reflects any origin in development so the cookie-carrying frontend
// can run on another port; otherwise only same-origin requests get headers.
func Cors() Middleware {
	options := cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return config.Development()
		},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
	}
	return cors.New(options).Handler
}
