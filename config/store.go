package config

import (
	"context"
	"fmt"

	"campus-chat/config/common"
	"campus-chat/config/logger"
	"campus-chat/repository"
	"campus-chat/repository/gormstore"
	"campus-chat/repository/jsonfile"
	"campus-chat/repository/memory"
	"campus-chat/repository/mongostore"
)

const (
	StoreMemory   = "memory"
	StoreJSON     = "json"
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
)

// NewStore opens the store named by STORE_DRIVER.
func NewStore(ctx context.Context, cfg *common.Config, log *logger.AppLogger) (repository.Store, error) {
	driver := cfg.GetStoreDriver()
	log.Store.Info.Info().Str("driver", driver).Msg("Opening store")

	switch driver {
	case StoreMemory, "":
		return memory.NewStore(), nil
	case StoreJSON:
		return jsonfile.Open(cfg.GetJSONStorePath())
	case StorePostgres:
		db, err := NewDB(cfg, log)
		if err != nil {
			return nil, err
		}
		return gormstore.NewStore(db), nil
	case StoreMongo:
		client, database, err := NewMongo(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		store := mongostore.NewStore(client, database)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", driver)
	}
}
