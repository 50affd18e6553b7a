package http

import (
	"time"

	"myflix-api/internal/domain"
)

type UserResponse struct {
	ID             string   `json:"_id"`
	Username       string   `json:"Username"`
	Email          string   `json:"Email"`
	Birthday       *string  `json:"Birthday,omitempty"`
	FavoriteMovies []string `json:"FavoriteMovies"`
}

type GenreResponse struct {
	Name        string `json:"Name"`
	Description string `json:"Description"`
}

type DirectorResponse struct {
	Name  string  `json:"Name"`
	Bio   string  `json:"Bio"`
	Birth *string `json:"Birth,omitempty"`
	Death *string `json:"Death,omitempty"`
}

type MovieResponse struct {
	ID          string           `json:"_id"`
	Title       string           `json:"Title"`
	Description string           `json:"Description"`
	Genre       GenreResponse    `json:"Genre"`
	Director    DirectorResponse `json:"Director"`
	Actors      []string         `json:"Actors"`
	ImagePath   string           `json:"ImagePath"`
	Featured    bool             `json:"Featured"`
}

type LoginResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

func userToResponse(user domain.User) UserResponse {
	resp := UserResponse{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		Birthday:       formatDate(user.Birthday),
		FavoriteMovies: user.FavoriteMovies,
	}
	if resp.FavoriteMovies == nil {
		resp.FavoriteMovies = []string{}
	}
	return resp
}

func genreToResponse(genre domain.Genre) GenreResponse {
	return GenreResponse{Name: genre.Name, Description: genre.Description}
}

func directorToResponse(director domain.Director) DirectorResponse {
	return DirectorResponse{
		Name:  director.Name,
		Bio:   director.Bio,
		Birth: formatDate(director.Birth),
		Death: formatDate(director.Death),
	}
}

func movieToResponse(movie domain.Movie) MovieResponse {
	resp := MovieResponse{
		ID:          movie.ID,
		Title:       movie.Title,
		Description: movie.Description,
		Genre:       genreToResponse(movie.Genre),
		Director:    directorToResponse(movie.Director),
		Actors:      movie.Actors,
		ImagePath:   movie.ImagePath,
		Featured:    movie.Featured,
	}
	if resp.Actors == nil {
		resp.Actors = []string{}
	}
	return resp
}

func formatDate(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	v := t.UTC().Format(time.RFC3339)
	return &v
}
