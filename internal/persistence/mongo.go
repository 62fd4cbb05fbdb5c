package persistence

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/config"
)

// EmailIndexName names the unique index backing email uniqueness.
const EmailIndexName = "email_unique"

// Mongo wraps the document store client and the users collection.
type Mongo struct {
	Client *mongo.Client
	Users  *mongo.Collection
}

// NewMongo connects to MongoDB and verifies the primary is reachable.
func NewMongo(ctx context.Context, cfg config.MongoConfig, logger *zap.Logger) (*Mongo, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout())
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(cfg.URI).
		SetAppName("alumni-connect").
		SetConnectTimeout(cfg.ConnectTimeout()))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("connected to mongo", zap.String("database", cfg.Database), zap.String("collection", cfg.Collection))
	return &Mongo{
		Client: client,
		Users:  client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// EnsureIndexes creates the unique email index. It is the only real guard
// against concurrent registrations of the same email.
func (m *Mongo) EnsureIndexes(ctx context.Context, logger *zap.Logger) error {
	name, err := m.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(EmailIndexName),
	})
	if err != nil {
		return err
	}
	logger.Info("mongo index ensured", zap.String("index", name))
	return nil
}

// Ping verifies MongoDB connectivity.
func (m *Mongo) Ping(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return errors.New("mongo client not configured")
	}
	return m.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) {
	if m != nil && m.Client != nil {
		_ = m.Client.Disconnect(ctx)
	}
}
