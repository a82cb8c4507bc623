package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"log/slog"

	"github.com/YashGangan/chatteroo/internal/app"
)

// Sessions is the token revocation store backing logout. A revoked
// token ID is kept in redis until the token would have expired anyway.
type Sessions struct {
	rdb *redis.Client
	log *slog.Logger
}

// NewSessions connects to redis and verifies connectivity
func NewSessions(ctx context.Context, cfg app.Config, log *slog.Logger) (*Sessions, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Sessions{rdb: rdb, log: log}, nil
}

// Revoke blacklists a token ID until its expiry. Tokens that are
// already expired need no entry.
func (s *Sessions) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.rdb.Set(ctx, revokedKey(tokenID), "1", ttl).Err(); err != nil {
		return err
	}
	s.log.Debug("session.revoked", "jti", tokenID)
	return nil
}

// IsRevoked reports whether a token ID has been revoked.
func (s *Sessions) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Close shuts down the redis connection
func (s *Sessions) Close() { _ = s.rdb.Close() }

// key namespacing for revoked token IDs
func revokedKey(tokenID string) string { return "revoked:" + tokenID }
