package config

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"campus-chat/config/common"
	"campus-chat/config/logger"
)

func NewMongo(ctx context.Context, cfg *common.Config, log *logger.AppLogger) (*mongo.Client, *mongo.Database, error) {
	uri, database := cfg.GetMongoConfig()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Store.Error.Error().Err(err).Msg("failed to connect to mongo")
		return nil, nil, err
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		log.Store.Error.Error().Err(err).Msg("failed to ping mongo")
		return nil, nil, err
	}

	log.Store.Info.Info().Str("database", database).Msg("Connection Opened to MongoDB")
	return client, client.Database(database), nil
}
