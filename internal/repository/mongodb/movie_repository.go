package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"myflix-api/internal/domain"
	"myflix-api/internal/repository"
)

type MovieRepository struct {
	collection *mongo.Collection
}

func NewMovieRepository(db *DB) repository.MovieRepository {
	return &MovieRepository{collection: db.Collection(moviesCollection)}
}

func (r *MovieRepository) Init(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "Title", Value: 1}},
			Options: options.Index().SetName("title_ci").SetCollation(caseInsensitive),
		},
		{
			Keys:    bson.D{{Key: "Genre.Name", Value: 1}},
			Options: options.Index().SetName("genre_name_ci").SetCollation(caseInsensitive),
		},
		{
			Keys:    bson.D{{Key: "Director.Name", Value: 1}},
			Options: options.Index().SetName("director_name_ci").SetCollation(caseInsensitive),
		},
	})
	if err != nil {
		return fmt.Errorf("create movie indexes: %w", err)
	}
	return nil
}

func (r *MovieRepository) List(ctx context.Context) ([]domain.Movie, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find movies: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []movieDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode movies: %w", err)
	}

	movies := make([]domain.Movie, len(docs))
	for i := range docs {
		movies[i] = movieFromDocument(docs[i])
	}
	return movies, nil
}

func (r *MovieRepository) GetByID(ctx context.Context, id string) (*domain.Movie, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid}, options.FindOne())
}

func (r *MovieRepository) GetByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	return r.findOne(ctx, bson.M{"Title": title}, options.FindOne().SetCollation(caseInsensitive))
}

func (r *MovieRepository) FindGenre(ctx context.Context, name string) (*domain.Genre, error) {
	opts := options.FindOne().
		SetCollation(caseInsensitive).
		SetProjection(bson.M{"Genre": 1})
	movie, err := r.findOne(ctx, bson.M{"Genre.Name": name}, opts)
	if err != nil {
		return nil, err
	}
	return &movie.Genre, nil
}

func (r *MovieRepository) FindDirector(ctx context.Context, name string) (*domain.Director, error) {
	opts := options.FindOne().
		SetCollation(caseInsensitive).
		SetProjection(bson.M{"Director": 1})
	movie, err := r.findOne(ctx, bson.M{"Director.Name": name}, opts)
	if err != nil {
		return nil, err
	}
	return &movie.Director, nil
}

func (r *MovieRepository) Upsert(ctx context.Context, movie *domain.Movie) (bool, error) {
	opts := options.Replace().SetUpsert(true).SetCollation(caseInsensitive)
	res, err := r.collection.ReplaceOne(ctx, bson.M{"Title": movie.Title}, movieToDocument(movie), opts)
	if err != nil {
		return false, fmt.Errorf("upsert movie %q: %w", movie.Title, err)
	}
	if res.UpsertedID != nil {
		if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
			movie.ID = oid.Hex()
		}
		return true, nil
	}
	return false, nil
}

func (r *MovieRepository) findOne(ctx context.Context, filter any, opts *options.FindOneOptions) (*domain.Movie, error) {
	var doc movieDocument
	if err := r.collection.FindOne(ctx, filter, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find movie: %w", err)
	}
	movie := movieFromDocument(doc)
	return &movie, nil
}
