package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"applyapi/internal/config"
)

var mongoConnect = mongo.Connect

// NewMongo connects to MongoDB, verifies the primary is reachable and returns the client and
// the configured database. The caller disconnects the client on shutdown.
func NewMongo(ctx context.Context, c config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	if c.URI == "" || c.Database == "" {
		return nil, nil, fmt.Errorf("invalid mongo config: uri and database are required")
	}

	timeout := time.Duration(c.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	opts := options.Client().
		ApplyURI(c.URI).
		SetAppName("applyapi").
		SetTimeout(timeout)

	client, err := mongoConnect(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(c.Database), nil
}
