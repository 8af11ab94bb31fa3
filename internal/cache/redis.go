package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"

	"crane-backend/internal/config"
)

const statsSummaryKey = "orders:stats:summary"

var client *redis.Client

// Init connects to Redis. The service degrades gracefully without it:
// token revocation loses immediacy and the stats cache is skipped.
func Init(cfg *config.Config) error {
	client = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

func tokenKey(token string) string {
	h := sha256.Sum256([]byte(token))
	return "revoked:" + hex.EncodeToString(h[:])[:32]
}

// RevokeToken marks a bearer token as logged out until its natural expiry.
func RevokeToken(ctx context.Context, token string, ttl time.Duration) {
	if client == nil || ttl <= 0 {
		return
	}
	client.Set(ctx, tokenKey(token), 1, ttl)
}

// IsTokenRevoked reports whether a token was logged out. Without Redis
// every token is treated as live; expiry still bounds the session.
func IsTokenRevoked(ctx context.Context, token string) bool {
	if client == nil {
		return false
	}
	n, err := client.Exists(ctx, tokenKey(token)).Result()
	return err == nil && n > 0
}

// GetCachedStatsSummary returns the cached dashboard summary if present.
func GetCachedStatsSummary(ctx context.Context) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, statsSummaryKey).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheStatsSummary caches the dashboard summary for one minute.
func CacheStatsSummary(ctx context.Context, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, statsSummaryKey, data, time.Minute)
}

// InvalidateStatsSummary drops the cached summary after order mutations.
func InvalidateStatsSummary(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, statsSummaryKey)
}
