//go:build integration

// Package testsupport starts the MongoDB and Redis containers used by
// integration tests.
package testsupport

import (
	"context"
	"fmt"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sfsergim/CivicReport/internal/config"
	"github.com/sfsergim/CivicReport/internal/redisclient"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/redis"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StartMongo starts a single-node replica set, since repository writes run
// in transactions, and returns a connected client. The container is removed
// when the test finishes.
func StartMongo(t *testing.T) *mongo.Client {
	t.Helper()
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7.0", mongodb.WithReplicaSet("rs0"))
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "Failed to start MongoDB container")

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err, "Failed to get MongoDB connection string")

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetDirect(true))
	require.NoError(t, err, "Failed to connect to MongoDB")
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	require.NoError(t, client.Ping(ctx, nil), "Failed to ping MongoDB")
	return client
}

// FreshDatabase returns an empty database with indexes in place
func FreshDatabase(t *testing.T, client *mongo.Client) *mongo.Database {
	t.Helper()

	if config.AppConfig == nil {
		config.AppConfig = &config.Config{}
	}
	config.AppConfig.UserCollection = "users"
	config.AppConfig.OtpCodeCollection = "otp_codes"
	config.AppConfig.ReportCollection = "reports"
	config.AppConfig.AuditLogCollection = "audit_logs"

	name := fmt.Sprintf("civicreport_test_%d", time.Now().UnixNano())
	db := client.Database(name)
	t.Cleanup(func() { _ = db.Drop(context.Background()) })

	require.NoError(t, config.EnsureIndexes(context.Background(), db))
	return db
}

// StartRedis starts a Redis container and returns a traced client
func StartRedis(t *testing.T) *redisclient.Client {
	t.Helper()
	ctx := context.Background()

	container, err := redis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "Failed to start Redis container")

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err, "Failed to get Redis connection string")

	opts, err := goredis.ParseURL(uri)
	require.NoError(t, err)

	client := redisclient.NewClient(goredis.NewClient(opts))
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Ping(ctx).Err())
	return client
}
