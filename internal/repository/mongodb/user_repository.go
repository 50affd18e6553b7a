package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"myflix-api/internal/domain"
	"myflix-api/internal/repository"
)

const (
	usernameIndex = "username_ci"
	emailIndex    = "email_ci"
)

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *DB) repository.UserRepository {
	return &UserRepository{collection: db.Collection(usersCollection)}
}

func (r *UserRepository) Init(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "Username", Value: 1}},
			Options: options.Index().SetName(usernameIndex).SetUnique(true).SetCollation(caseInsensitive),
		},
		{
			Keys:    bson.D{{Key: "Email", Value: 1}},
			Options: options.Index().SetName(emailIndex).SetUnique(true).SetCollation(caseInsensitive),
		},
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	doc := userDocument{
		Username:       user.Username,
		Password:       user.PasswordHash,
		Email:          user.Email,
		Birthday:       user.Birthday,
		FavoriteMovies: []primitive.ObjectID{},
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", duplicateError(err)
		}
		return "", fmt.Errorf("insert user: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert user: unexpected id type %T", res.InsertedID)
	}
	user.ID = oid.Hex()
	user.FavoriteMovies = []string{}
	return user.ID, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	cursor, err := r.collection.Find(ctx, bson.D{}, options.Find().SetProjection(bson.M{"Password": 0}))
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]domain.User, len(docs))
	for i := range docs {
		users[i] = userFromDocument(docs[i])
	}
	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"Username": username})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"Email": email})
}

func (r *UserRepository) Update(ctx context.Context, username string, patch domain.UserPatch) (*domain.User, error) {
	if patch.Empty() {
		return r.GetByUsername(ctx, username)
	}

	set := bson.M{}
	if patch.Email != nil {
		set["Email"] = *patch.Email
	}
	if patch.PasswordHash != nil {
		set["Password"] = *patch.PasswordHash
	}
	if patch.Birthday != nil {
		set["Birthday"] = *patch.Birthday
	}

	return r.findOneAndUpdate(ctx, username, bson.M{"$set": set})
}

// AddFavorite appends movieID even when it is already present.
func (r *UserRepository) AddFavorite(ctx context.Context, username, movieID string) (*domain.User, error) {
	oid, err := objectID(movieID)
	if err != nil {
		return nil, err
	}
	return r.findOneAndUpdate(ctx, username, bson.M{"$push": bson.M{"FavoriteMovies": oid}})
}

// RemoveFavorite drops every occurrence of movieID.
func (r *UserRepository) RemoveFavorite(ctx context.Context, username, movieID string) (*domain.User, error) {
	oid, err := objectID(movieID)
	if err != nil {
		return nil, err
	}
	return r.findOneAndUpdate(ctx, username, bson.M{"$pull": bson.M{"FavoriteMovies": oid}})
}

func (r *UserRepository) Delete(ctx context.Context, username string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"Username": username}, options.Delete().SetCollation(caseInsensitive))
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDocument
	err := r.collection.FindOne(ctx, filter, options.FindOne().SetCollation(caseInsensitive)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	user := userFromDocument(doc)
	return &user, nil
}

func (r *UserRepository) findOneAndUpdate(ctx context.Context, username string, update bson.M) (*domain.User, error) {
	opts := options.FindOneAndUpdate().
		SetCollation(caseInsensitive).
		SetReturnDocument(options.After)

	var doc userDocument
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"Username": username}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateError(err)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	user := userFromDocument(doc)
	return &user, nil
}

func duplicateError(err error) error {
	if strings.Contains(err.Error(), emailIndex) {
		return repository.ErrDuplicateEmail
	}
	return repository.ErrDuplicateUsername
}
