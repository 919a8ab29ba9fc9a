package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nivela-brasil/intake-backend/config"
)

// CORSMiddleware creates the CORS middleware for the intake API. Every
// response carries Access-Control-Allow-Origin, including validation and
// server failures, and the OPTIONS preflight answers 200 with an empty body.
func CORSMiddleware(cfg *config.ServerConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Length",
			"Content-Type",
			"Accept",
			"X-Requested-With",
		},
		ExposeHeaders:             []string{"Content-Length"},
		MaxAge:                    12 * time.Hour,
		OptionsResponseStatusCode: http.StatusOK,
	}

	if len(cfg.AllowedOrigins) == 0 || containsOrigin(cfg.AllowedOrigins, "*") {
		corsConfig.AllowAllOrigins = true
		delegate := cors.New(corsConfig)

		// gin-contrib skips requests without an Origin header, but the intake
		// contract promises Access-Control-Allow-Origin on every response, so
		// set it up front and answer originless preflights ourselves.
		return func(c *gin.Context) {
			c.Header("Access-Control-Allow-Origin", "*")
			if c.Request.Header.Get("Origin") == "" {
				if c.Request.Method == http.MethodOptions {
					c.AbortWithStatus(http.StatusOK)
					return
				}
				c.Next()
				return
			}
			delegate(c)
		}
	}

	// Explicit origin list: write headers by hand so disallowed origins still
	// get a response (just without CORS headers) and preflights short-circuit.
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if origin == "" {
			c.Header("Access-Control-Allow-Origin", "*")
			c.Header("Access-Control-Allow-Methods", strings.Join(corsConfig.AllowMethods, ", "))
			c.Header("Access-Control-Allow-Headers", strings.Join(corsConfig.AllowHeaders, ", "))
			c.Header("Access-Control-Max-Age", "43200")
			if c.Request.Method == http.MethodOptions {
				c.AbortWithStatus(http.StatusOK)
				return
			}
			c.Next()
			return
		}

		allowed := false
		for _, allowedOrigin := range cfg.AllowedOrigins {
			if allowedOrigin == origin {
				allowed = true
				break
			}
			// Wildcard subdomains, e.g. *.nivela.com.br
			if strings.HasPrefix(allowedOrigin, "*.") {
				domain := strings.TrimPrefix(allowedOrigin, "*")
				if strings.HasSuffix(origin, domain) {
					allowed = true
					break
				}
			}
		}

		if allowed {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", strings.Join(corsConfig.AllowMethods, ", "))
			c.Header("Access-Control-Allow-Headers", strings.Join(corsConfig.AllowHeaders, ", "))
			c.Header("Access-Control-Max-Age", "43200")
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

func containsOrigin(s []string, str string) bool {
	for _, v := range s {
		if v == str {
			return true
		}
	}
	return false
}
