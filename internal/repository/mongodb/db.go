package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	moviesCollection = "movies"
	usersCollection  = "users"
)

// caseInsensitive is the collation used by every name lookup and unique index.
var caseInsensitive = &options.Collation{Locale: "en", Strength: 2}

// DB holds the client handle and the selected database.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects to the server at uri and verifies the connection with a ping.
func Open(ctx context.Context, uri, database string, timeout time.Duration) (*DB, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &DB{
		client: client,
		db:     client.Database(database),
	}, nil
}

func (d *DB) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}
