package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sfsergim/CivicReport/internal/logging"
	"github.com/sfsergim/CivicReport/internal/redisclient"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
	"go.uber.org/zap"
)

var (
	// MongoDB database handle
	MongoDB *mongo.Database
	// Redis client, nil when Redis is unreachable
	Redis *redisclient.Client
)

// InitMongoDB initializes the MongoDB connection and makes sure the
// collection indexes exist.
func InitMongoDB() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(AppConfig.MongoURI).
		SetMonitor(otelmongo.NewMonitor()).
		SetMaxPoolSize(100).
		SetMinPoolSize(5).
		SetMaxConnIdleTime(5 * time.Minute).
		SetRetryWrites(true).
		SetRetryReads(true)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	MongoDB = client.Database(AppConfig.MongoDatabase)

	if err := EnsureIndexes(ctx, MongoDB); err != nil {
		logging.Logger.Error("failed to ensure indexes on startup", zap.Error(err))
	}

	logging.Logger.Info("connected to MongoDB",
		zap.String("uri", maskMongoURI(AppConfig.MongoURI)),
		zap.String("database", AppConfig.MongoDatabase),
	)
	return nil
}

// DisconnectMongoDB closes the MongoDB client
func DisconnectMongoDB() {
	if MongoDB == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := MongoDB.Client().Disconnect(ctx); err != nil {
		logging.Logger.Warn("failed to disconnect MongoDB", zap.Error(err))
	}
}

// InitRedis initializes the Redis connection. A failed ping leaves Redis nil
// so callers fall back to in-process behaviour.
func InitRedis() {
	redisClient := redis.NewClient(&redis.Options{
		Addr:         AppConfig.RedisURI,
		Password:     AppConfig.RedisPassword,
		DB:           AppConfig.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	client := redisclient.NewClient(redisClient)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logging.Logger.Error("failed to connect to Redis",
			zap.String("uri", AppConfig.RedisURI),
			zap.Error(err))
		_ = redisClient.Close()
		return
	}

	Redis = client
	logging.Logger.Info("connected to Redis",
		zap.String("uri", AppConfig.RedisURI))
}

// maskMongoURI masks credentials in a MongoDB URI
func maskMongoURI(uri string) string {
	at := strings.LastIndex(uri, "@")
	if at < 0 {
		return uri
	}
	scheme := "mongodb://"
	if strings.HasPrefix(uri, "mongodb+srv://") {
		scheme = "mongodb+srv://"
	}
	return scheme + "****:****@" + uri[at+1:]
}

// EnsureIndexes creates required indexes if they don't exist
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	logger := logging.Logger.Named("database")
	logger.Info("ensuring required indexes exist")

	indexes := map[string][]mongo.IndexModel{
		AppConfig.UserCollection: {
			{
				Keys:    bson.D{{Key: "phone", Value: 1}},
				Options: options.Index().SetName("phone_1").SetUnique(true),
			},
		},
		AppConfig.OtpCodeCollection: {
			{
				Keys:    bson.D{{Key: "phone", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("phone_1_created_at_-1"),
			},
			// Expiry is enforced by timestamp comparison; the TTL index only
			// cleans up long-dead codes.
			{
				Keys:    bson.D{{Key: "expires_at", Value: 1}},
				Options: options.Index().SetName("expires_at_ttl").SetExpireAfterSeconds(24 * 60 * 60),
			},
		},
		AppConfig.ReportCollection: {
			{
				Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}},
				Options: options.Index().SetName("status_1_created_at_1"),
			},
			{
				Keys:    bson.D{{Key: "category", Value: 1}},
				Options: options.Index().SetName("category_1"),
			},
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}},
				Options: options.Index().SetName("user_id_1_created_at_1"),
			},
			{
				Keys:    bson.D{{Key: "location", Value: "2dsphere"}},
				Options: options.Index().SetName("location_2dsphere"),
			},
		},
		AppConfig.AuditLogCollection: {
			{
				Keys:    bson.D{{Key: "entity_id", Value: 1}, {Key: "created_at", Value: 1}},
				Options: options.Index().SetName("entity_id_1_created_at_1"),
			},
		},
	}

	for collection, models := range indexes {
		if err := ensureCollectionIndexes(ctx, logger, db.Collection(collection), models); err != nil {
			return err
		}
	}

	logger.Info("all required indexes verified")
	return nil
}

// ensureCollectionIndexes creates the named indexes missing from a collection
func ensureCollectionIndexes(ctx context.Context, logger *logging.SafeLogger, collection *mongo.Collection, models []mongo.IndexModel) error {
	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		logger.Error("failed to list indexes", zap.String("collection", collection.Name()), zap.Error(err))
		return err
	}
	defer cursor.Close(ctx)

	existing := make(map[string]bool)
	for cursor.Next(ctx) {
		var index bson.M
		if err := cursor.Decode(&index); err != nil {
			continue
		}
		if name, ok := index["name"].(string); ok {
			existing[name] = true
		}
	}

	created := 0
	for _, model := range models {
		if model.Options != nil && model.Options.Name != nil && existing[*model.Options.Name] {
			continue
		}
		if _, err := collection.Indexes().CreateOne(ctx, model); err != nil {
			// Another instance may have created it concurrently
			if mongo.IsDuplicateKeyError(err) {
				logger.Info("index already exists (created by another instance)",
					zap.String("collection", collection.Name()))
				continue
			}
			logger.Error("failed to create index",
				zap.String("collection", collection.Name()),
				zap.Error(err))
			return err
		}
		created++
	}

	if created > 0 {
		logger.Info("created collection indexes",
			zap.String("collection", collection.Name()),
			zap.Int("count", created))
	} else {
		logger.Debug("collection indexes already exist",
			zap.String("collection", collection.Name()))
	}
	return nil
}

// StartIndexMaintenance periodically re-checks indexes until ctx is done
func StartIndexMaintenance(ctx context.Context) {
	logger := logging.Logger.Named("database")
	if MongoDB == nil || AppConfig.IndexMaintenanceInterval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(AppConfig.IndexMaintenanceInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				checkCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
				if err := EnsureIndexes(checkCtx, MongoDB); err != nil {
					logger.Error("periodic index check failed", zap.Error(err))
				}
				cancel()
			}
		}
	}()

	logger.Info("started index maintenance routine",
		zap.Duration("interval", AppConfig.IndexMaintenanceInterval))
}
