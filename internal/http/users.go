package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"myflix-api/internal/service"
)

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if errs := decodeJSON(c, &req); len(errs) > 0 {
		validationFailed(c, errs)
		return
	}

	user, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Birthday: req.Birthday.timePtr(),
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	registrationsTotal.Inc()
	h.logger.WithField("user", user.Username).Info("user registered")
	c.JSON(http.StatusCreated, userToResponse(*user))
}

// login accepts credentials either as a JSON body or as query/form parameters.
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		loginsTotal.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and Password are required"})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		loginsTotal.WithLabelValues("failed").Inc()
		h.handleServiceError(c, err)
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		h.internalError(c, err)
		return
	}

	loginsTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, LoginResponse{User: userToResponse(*user), Token: token})
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getUser(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) updateUser(c *gin.Context) {
	if err := service.Authorize(actor(c), c.Param("username")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	var req updateUserRequest
	if errs := decodeJSON(c, &req); len(errs) > 0 {
		validationFailed(c, errs)
		return
	}

	user, err := h.users.Update(c.Request.Context(), actor(c), c.Param("username"), service.UpdateInput{
		Email:    req.Email,
		Password: req.Password,
		Birthday: req.Birthday.timePtr(),
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) addFavorite(c *gin.Context) {
	user, err := h.users.AddFavorite(c.Request.Context(), actor(c), c.Param("username"), c.Param("movieId"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) removeFavorite(c *gin.Context) {
	user, err := h.users.RemoveFavorite(c.Request.Context(), actor(c), c.Param("username"), c.Param("movieId"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) deleteUser(c *gin.Context) {
	username := c.Param("username")
	if err := h.users.Delete(c.Request.Context(), actor(c), username); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.logger.WithFields(logrus.Fields{"user": username}).Info("user deleted")
	c.JSON(http.StatusOK, gin.H{"message": username + " was deleted."})
}
