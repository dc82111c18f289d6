package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo is the process-wide database handle. It is constructed once in main
// and injected into the stores that need it.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect builds the handle without requiring the server to be up: the
// driver retries server selection on every operation, so an unreachable
// database at boot heals on first use. Ping reports current reachability.
func Connect(ctx context.Context, uri, dbName string) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	return &Mongo{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return m.client.Ping(ctx, nil)
}

func (m *Mongo) Disconnect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return m.client.Disconnect(ctx)
}

func (m *Mongo) Collection(name string) *mongo.Collection {
	return m.db.Collection(name)
}
