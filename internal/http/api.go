package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"myflix-api/internal/auth"
	"myflix-api/internal/domain"
	"myflix-api/internal/service"
)

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	movies       service.MovieService
	users        service.UserService
	strategy     auth.Strategy
	tokens       TokenIssuer
	logger       *logrus.Logger
	allowOrigins []string
}

func NewHandler(movies service.MovieService, users service.UserService, strategy auth.Strategy, tokens TokenIssuer, logger *logrus.Logger, allowOrigins []string) *Handler {
	return &Handler{
		movies:       movies,
		users:        users,
		strategy:     strategy,
		tokens:       tokens,
		logger:       logger,
		allowOrigins: allowOrigins,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(h.requestLogger())
	router.Use(corsMiddleware(h.allowOrigins))

	router.GET("/", h.welcome)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/login", h.login)
	router.POST("/users", h.register)

	authed := router.Group("/", h.requireAuth())
	{
		authed.GET("/movies", h.listMovies)
		authed.GET("/movies/:title", h.getMovie)
		authed.GET("/movies/genres/:name", h.getGenre)
		authed.GET("/movies/directors/:name", h.getDirector)

		authed.GET("/users", h.listUsers)
		authed.GET("/users/:username", h.getUser)
		authed.PUT("/users/:username", h.updateUser)
		authed.DELETE("/users/:username", h.deleteUser)
		authed.POST("/users/:username/movies/:movieId/favorite", h.addFavorite)
		authed.DELETE("/users/:username/movies/:movieId/favorite", h.removeFavorite)
	}
}

func (h *Handler) welcome(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to myFlix!")
}
