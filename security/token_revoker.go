package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRevoker is the logout denylist. A token stays listed until the moment
// its own expiry would have rejected it anyway, so entries never outlive the
// JWT they refer to.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// fingerprint keeps raw bearer tokens out of the denylist storage.
func fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// MemoryTokenRevoker is used when no Redis is configured. Logouts are only
// seen by the process that handled them.
type MemoryTokenRevoker struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

func NewMemoryTokenRevoker() *MemoryTokenRevoker {
	return &MemoryTokenRevoker{expires: make(map[string]time.Time), now: time.Now}
}

// Revoke lists token until expiresAt. Entries that already lapsed are dropped
// on the way, which bounds the map by the number of live logged-out tokens.
func (r *MemoryTokenRevoker) Revoke(_ context.Context, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for key, until := range r.expires {
		if !now.Before(until) {
			delete(r.expires, key)
		}
	}
	if now.Before(expiresAt) {
		r.expires[fingerprint(token)] = expiresAt
	}
	return nil
}

func (r *MemoryTokenRevoker) IsRevoked(_ context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	until, ok := r.expires[fingerprint(token)]
	return ok && r.now().Before(until), nil
}

// Len reports how many tokens are currently held.
func (r *MemoryTokenRevoker) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.expires)
}

// RedisTokenRevoker shares the denylist between instances. Each entry is a
// key that Redis expires together with the token.
type RedisTokenRevoker struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

func NewRedisTokenRevoker(client *redis.Client, prefix string) *RedisTokenRevoker {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "campus-chat:revoked"
	}
	return &RedisTokenRevoker{client: client, prefix: prefix, timeout: 3 * time.Second}
}

func (r *RedisTokenRevoker) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.client.Set(ctx, r.key(token), 1, ttl).Err()
}

func (r *RedisTokenRevoker) IsRevoked(ctx context.Context, token string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	n, err := r.client.Exists(ctx, r.key(token)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *RedisTokenRevoker) key(token string) string {
	return r.prefix + ":" + fingerprint(token)
}
