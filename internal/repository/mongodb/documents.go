package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"myflix-api/internal/domain"
	"myflix-api/internal/repository"
)

type movieDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"Title"`
	Description string             `bson:"Description"`
	Genre       genreDocument      `bson:"Genre"`
	Director    directorDocument   `bson:"Director"`
	Actors      []string           `bson:"Actors"`
	ImagePath   string             `bson:"ImagePath,omitempty"`
	Featured    bool               `bson:"Featured"`
}

type genreDocument struct {
	Name        string `bson:"Name"`
	Description string `bson:"Description"`
}

type directorDocument struct {
	Name  string     `bson:"Name"`
	Bio   string     `bson:"Bio"`
	Birth *time.Time `bson:"Birth,omitempty"`
	Death *time.Time `bson:"Death,omitempty"`
}

type userDocument struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty"`
	Username       string               `bson:"Username"`
	Password       string               `bson:"Password"`
	Email          string               `bson:"Email"`
	Birthday       *time.Time           `bson:"Birthday,omitempty"`
	FavoriteMovies []primitive.ObjectID `bson:"FavoriteMovies"`
}

func movieFromDocument(doc movieDocument) domain.Movie {
	actors := doc.Actors
	if actors == nil {
		actors = []string{}
	}
	return domain.Movie{
		ID:          doc.ID.Hex(),
		Title:       doc.Title,
		Description: doc.Description,
		Genre:       domain.Genre(doc.Genre),
		Director:    domain.Director(doc.Director),
		Actors:      actors,
		ImagePath:   doc.ImagePath,
		Featured:    doc.Featured,
	}
}

func movieToDocument(movie *domain.Movie) movieDocument {
	return movieDocument{
		Title:       movie.Title,
		Description: movie.Description,
		Genre:       genreDocument(movie.Genre),
		Director:    directorDocument(movie.Director),
		Actors:      movie.Actors,
		ImagePath:   movie.ImagePath,
		Featured:    movie.Featured,
	}
}

func userFromDocument(doc userDocument) domain.User {
	favorites := make([]string, len(doc.FavoriteMovies))
	for i, id := range doc.FavoriteMovies {
		favorites[i] = id.Hex()
	}
	return domain.User{
		ID:             doc.ID.Hex(),
		Username:       doc.Username,
		PasswordHash:   doc.Password,
		Email:          doc.Email,
		Birthday:       doc.Birthday,
		FavoriteMovies: favorites,
	}
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, repository.ErrInvalidID
	}
	return oid, nil
}
