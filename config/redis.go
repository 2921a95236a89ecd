package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"campus-chat/config/common"
)

// NewRedis returns nil when REDIS_ADDR is unset or the server does not answer.
func NewRedis(ctx context.Context, cfg *common.Config, log *logrus.Logger) *redis.Client {
	addr, password := cfg.GetRedisConfig()
	if addr == "" {
		log.Info("REDIS_ADDR not set, using in-memory token revocation without login throttling")
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.WithError(err).Warnf("redis at %s unavailable, continuing without it", addr)
		_ = client.Close()
		return nil
	}
	return client
}
