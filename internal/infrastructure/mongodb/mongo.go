package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookocean-backend/pkg/logger"
)

// Config holds the document store connection settings
type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	MaxPoolSize    uint64
}

// MongoDB owns the process-wide client. Collections are handed to repositories.
type MongoDB struct {
	Client *mongo.Client
	Config *Config
}

func NewMongoDB(cfg *Config) *MongoDB {
	return &MongoDB{Config: cfg}
}

// Connect dials the deployment with the stable server API v1 and pings admin
func (m *MongoDB) Connect(ctx context.Context) error {
	logger.Info("[MONGO] Connecting to MongoDB...", map[string]interface{}{
		"database": m.Config.Database,
	})

	opts := options.Client().
		ApplyURI(m.Config.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1).
			SetStrict(true).
			SetDeprecationErrors(true)).
		SetConnectTimeout(m.Config.ConnectTimeout)
	if m.Config.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(m.Config.MaxPoolSize)
	}

	connectCtx, cancel := context.WithTimeout(ctx, m.Config.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return fmt.Errorf("mongo connect: %w", err)
	}
	m.Client = client

	if err := m.Ping(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		m.Client = nil
		return err
	}

	logger.Info("[MONGO] Pinged deployment, connected", nil)
	return nil
}

// Ping runs {ping: 1} against the admin database
func (m *MongoDB) Ping(ctx context.Context) error {
	if m.Client == nil {
		return fmt.Errorf("mongo client is not initialized")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := m.Client.Database("admin").RunCommand(pingCtx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return fmt.Errorf("mongo ping failed: %w", err)
	}
	return nil
}

// Collection returns a handle on the configured database
func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.Client.Database(m.Config.Database).Collection(name)
}

func (m *MongoDB) Close(ctx context.Context) error {
	if m.Client == nil {
		return nil
	}
	err := m.Client.Disconnect(ctx)
	m.Client = nil
	return err
}
