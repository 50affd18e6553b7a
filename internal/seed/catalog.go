package seed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"myflix-api/internal/domain"
)

type catalogFile struct {
	Movies []catalogEntry `json:"movies"`
}

// catalogEntry mirrors a movie document. Plot and ImageURL are older names for
// Description and ImagePath.
type catalogEntry struct {
	Title       string `json:"Title"`
	Description string `json:"Description"`
	Plot        string `json:"Plot"`
	Genre       struct {
		Name        string `json:"Name"`
		Description string `json:"Description"`
	} `json:"Genre"`
	Director struct {
		Name  string `json:"Name"`
		Bio   string `json:"Bio"`
		Birth string `json:"Birth"`
		Death string `json:"Death"`
	} `json:"Director"`
	Actors    []string `json:"Actors"`
	ImagePath string   `json:"ImagePath"`
	ImageURL  string   `json:"ImageURL"`
	Featured  bool     `json:"Featured"`
}

// ParseCatalog decodes either a JSON array of movies or an object with a "movies" array.
func ParseCatalog(data []byte) ([]domain.Movie, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	var entries []catalogEntry
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("decode catalog: %w", err)
		}
	} else {
		var file catalogFile
		if err := json.Unmarshal(trimmed, &file); err != nil {
			return nil, fmt.Errorf("decode catalog: %w", err)
		}
		entries = file.Movies
	}

	movies := make([]domain.Movie, 0, len(entries))
	for i, entry := range entries {
		movie, err := entry.toMovie()
		if err != nil {
			return nil, fmt.Errorf("movie %d: %w", i, err)
		}
		movies = append(movies, movie)
	}
	return movies, nil
}

func (e catalogEntry) toMovie() (domain.Movie, error) {
	title := strings.TrimSpace(e.Title)
	if title == "" {
		return domain.Movie{}, fmt.Errorf("title is required")
	}
	description := firstNonEmpty(e.Description, e.Plot)
	if description == "" {
		return domain.Movie{}, fmt.Errorf("%s: description is required", title)
	}

	birth, err := optionalDate(e.Director.Birth)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("%s: director birth: %w", title, err)
	}
	death, err := optionalDate(e.Director.Death)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("%s: director death: %w", title, err)
	}

	actors := e.Actors
	if actors == nil {
		actors = []string{}
	}

	return domain.Movie{
		Title:       title,
		Description: description,
		Genre: domain.Genre{
			Name:        strings.TrimSpace(e.Genre.Name),
			Description: e.Genre.Description,
		},
		Director: domain.Director{
			Name:  strings.TrimSpace(e.Director.Name),
			Bio:   e.Director.Bio,
			Birth: birth,
			Death: death,
		},
		Actors:    actors,
		ImagePath: firstNonEmpty(e.ImagePath, e.ImageURL),
		Featured:  e.Featured,
	}, nil
}

func optionalDate(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := domain.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
