// Package docstore connects to the MongoDB document store used as an
// alternative to Postgres.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"resume-builder/internal/shared/telemetry"
)

// Options controls the client pool.
type Options struct {
	ConnectTimeout time.Duration
	MaxPoolSize    uint64
}

// DefaultOptions returns defaults for long-running server processes.
func DefaultOptions() Options {
	return Options{ConnectTimeout: 10 * time.Second, MaxPoolSize: 20}
}

// Store is a connected client bound to one database.
type Store struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// Connect dials uri, pings the primary and selects database.
func Connect(ctx context.Context, uri, database string, opts Options) (*Store, error) {
	if strings.TrimSpace(uri) == "" {
		return nil, errors.New("MONGO_URI is empty")
	}
	if strings.TrimSpace(database) == "" {
		return nil, errors.New("mongo database name is empty")
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 10 * time.Second
	}

	clientOpts := options.Client().ApplyURI(uri).SetConnectTimeout(opts.ConnectTimeout)
	if opts.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(opts.MaxPoolSize)
	}

	connectCtx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	telemetry.Info("mongo.connected", map[string]any{"database": database})
	return &Store{Client: client, Database: client.Database(database)}, nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.Client == nil {
		return nil
	}
	return s.Client.Disconnect(ctx)
}
