package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listMovies(c *gin.Context) {
	movies, err := h.movies.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	resp := make([]MovieResponse, len(movies))
	for i := range movies {
		resp[i] = movieToResponse(movies[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getMovie(c *gin.Context) {
	movie, err := h.movies.GetByTitle(c.Request.Context(), c.Param("title"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, movieToResponse(*movie))
}

func (h *Handler) getGenre(c *gin.Context) {
	genre, err := h.movies.GetGenre(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, genreToResponse(*genre))
}

func (h *Handler) getDirector(c *gin.Context) {
	director, err := h.movies.GetDirector(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, directorToResponse(*director))
}
