package config

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"campus-chat/config/common"
	"campus-chat/config/logger"
	"campus-chat/repository/gormstore"
)

func NewDB(cfg *common.Config, log *logger.AppLogger) (*gorm.DB, error) {
	dbHost, dbUser, dbPassword, dbName, dbPort := cfg.GetDatabaseConfig()
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		dbHost, dbUser, dbPassword, dbName, dbPort,
	)
	db, err := gorm.Open(postgres.Open(dsn), gormstore.Config())
	if err != nil {
		log.Store.Error.Error().Err(err).Msg("failed to connect to database")
		return nil, err
	}

	log.Store.Info.Info().Str("host", dbHost).Str("database", dbName).Msg("Connection Opened to Database")
	conn, err := db.DB()
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(gormstore.Models()...); err != nil {
		log.Store.Error.Error().Err(err).Msg("failed run migration")
		return nil, err
	}

	conn.SetMaxIdleConns(10)
	conn.SetMaxOpenConns(100)
	conn.SetConnMaxLifetime(time.Second * time.Duration(300))
	return db, nil
}
