package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/anilvs/casetrack/internal/model"
	"github.com/anilvs/casetrack/internal/service"
)

// RequestLogger logs each request after completion.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			log.Error("request failed", append(fields, zap.String("error", c.Errors.String()))...)
			return
		}
		log.Info("request", fields...)
	}
}

// Recover converts panics into a logged 500 response.
func Recover(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
		}()
		c.Next()
	}
}

// Auth requires a valid bearer token and stores the identity on the context.
func Auth(signKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		id, role, err := service.ParseAccessToken(token, signKey)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		setIdentity(c, id, role)
		c.Next()
	}
}

// OptionalAuth stores the identity when a valid token is present and lets
// anonymous requests through. Complaint filing is open to unregistered citizens.
func OptionalAuth(signKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if id, role, err := service.ParseAccessToken(token, signKey); err == nil {
				setIdentity(c, id, role)
			}
		}
		c.Next()
	}
}

// RequireOfficer rejects requests from non-officer identities.
func RequireOfficer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if role, ok := userRole(c); !ok || role != model.RoleOfficer {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "officer role required"})
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return "", false
	}
	return strings.TrimPrefix(h, prefix), true
}
