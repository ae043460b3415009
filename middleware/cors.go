package middleware

import (
	"strings"
	"time"

	"github.com/NomadCrew/pett-server/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware creates a middleware for handling CORS with the given configuration.
// The server only exposes read-only routes, so only safe methods are allowed.
func CORSMiddleware(cfg *config.ServerConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Accept", RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	if len(cfg.AllowedOrigins) == 0 || containsOrigin(cfg.AllowedOrigins, "*") {
		corsConfig.AllowAllOrigins = true
		return cors.New(corsConfig)
	}

	var exact []string
	var suffixes []string
	for _, origin := range cfg.AllowedOrigins {
		// "*.example.com" allows every subdomain of example.com
		if strings.HasPrefix(origin, "*.") {
			suffixes = append(suffixes, strings.TrimPrefix(origin, "*"))
			continue
		}
		exact = append(exact, origin)
	}

	corsConfig.AllowOriginFunc = func(origin string) bool {
		if containsOrigin(exact, origin) {
			return true
		}
		for _, suffix := range suffixes {
			if strings.HasSuffix(origin, suffix) {
				return true
			}
		}
		return false
	}

	return cors.New(corsConfig)
}

// containsOrigin checks if a string is present in the allowed origins slice
func containsOrigin(s []string, str string) bool {
	for _, v := range s {
		if v == str {
			return true
		}
	}
	return false
}
