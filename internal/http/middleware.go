package http

import (
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"myflix-api/internal/auth"
	"myflix-api/internal/domain"
)

const (
	requestIDHeader = "X-Request-ID"
	currentUserKey  = "currentUser"
)

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		c.Next()

		path := c.Request.URL.Path
		if path == "/health" || path == "/metrics" {
			return
		}

		route := c.FullPath()
		if route == "" {
			route = path
		}
		status := c.Writer.Status()
		entry := h.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"route":      route,
			"status":     status,
			"latency":    time.Since(start),
			"ip":         c.ClientIP(),
		})
		if user := currentUser(c); user != nil {
			entry = entry.WithField("user", user.Username)
		}

		switch {
		case len(c.Errors) > 0:
			entry.WithError(c.Errors.Last().Err).Error("request failed")
		case status >= http.StatusInternalServerError:
			entry.Error("server error")
		case status >= http.StatusBadRequest:
			entry.Warn("client error")
		default:
			entry.Info("request completed")
		}
	}
}

// requireAuth rejects requests without a valid bearer token and stores the resolved
// user in the gin context.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			tokenVerificationsTotal.WithLabelValues("missing").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed bearer token"})
			return
		}

		user, err := h.strategy.Resolve(c.Request.Context(), token)
		switch {
		case err == nil:
		case errors.Is(err, auth.ErrTokenExpired):
			tokenVerificationsTotal.WithLabelValues("expired").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token expired"})
			return
		case errors.Is(err, auth.ErrTokenInvalid):
			tokenVerificationsTotal.WithLabelValues("invalid").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		default:
			tokenVerificationsTotal.WithLabelValues("error").Inc()
			h.internalError(c, err)
			c.Abort()
			return
		}

		tokenVerificationsTotal.WithLabelValues("ok").Inc()
		c.Set(currentUserKey, user)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func currentUser(c *gin.Context) *domain.User {
	value, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := value.(*domain.User)
	return user
}

// actor is the username of the authenticated caller.
func actor(c *gin.Context) string {
	if user := currentUser(c); user != nil {
		return user.Username
	}
	return ""
}
