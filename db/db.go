package db

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection   *mongo.Collection
	RecipeCollection *mongo.Collection
	Client           *mongo.Client

	ready atomic.Bool
)

// Ready reports whether the last server heartbeat succeeded. It starts
// false and is only changed by the driver's monitoring callbacks.
func Ready() bool {
	return ready.Load()
}

func setReady(v bool) {
	if ready.Swap(v) != v {
		if v {
			logrus.Info("MongoDB connection is up")
		} else {
			logrus.Warn("MongoDB connection lost")
		}
	}
}

func serverMonitor() *event.ServerMonitor {
	return &event.ServerMonitor{
		ServerHeartbeatSucceeded: func(*event.ServerHeartbeatSucceededEvent) { setReady(true) },
		ServerHeartbeatFailed: func(e *event.ServerHeartbeatFailedEvent) {
			logrus.WithError(e.Failure).Debug("MongoDB heartbeat failed")
			setReady(false)
		},
		ServerClosed: func(*event.ServerClosedEvent) { setReady(false) },
	}
}

// Connect opens the client and binds the collections. The driver connects
// lazily, so a down server does not fail startup; requests are held off by
// the readiness gate until the first heartbeat succeeds.
func Connect(ctx context.Context, uri, database string) error {
	opts := options.Client().
		ApplyURI(uri).
		SetServerMonitor(serverMonitor()).
		SetHeartbeatInterval(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("connect to MongoDB: %w", err)
	}
	Client = client

	d := client.Database(database)
	UserCollection = d.Collection("users")
	RecipeCollection = d.Collection("recipes")
	return nil
}

// CreateIndexes enforces unique emails and indexes the token and list
// lookups.
func CreateIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := UserCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "accessToken", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}

	_, err = RecipeCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "addedBy", Value: 1}}},
		{Keys: bson.D{{Key: "isPublic", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create recipe indexes: %w", err)
	}
	return nil
}

func Disconnect(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	setReady(false)
	return Client.Disconnect(ctx)
}
