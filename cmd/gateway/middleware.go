// In file: cmd/gateway/middleware.go
package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// contentSecurityPolicy matches the policy the frontend was built against:
// inline scripts/styles allowed, images additionally from OpenWeatherMap
// (weather condition icons).
const contentSecurityPolicy = "default-src 'self'; " +
	"script-src 'self' 'unsafe-inline'; " +
	"connect-src 'self'; " +
	"img-src 'self' data: https://openweathermap.org; " +
	"style-src 'self' 'unsafe-inline'"

// SecurityHeaders sets the standard security response headers on every
// request.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Content-Security-Policy", contentSecurityPolicy)
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "SAMEORIGIN")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

// RequestID tags each request with an id, echoed in the X-Request-ID
// header and attached to log events for correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)

		log.Debug().
			Str("request_id", id).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request received")
		c.Next()
	}
}
