package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevokedTokenKey 已注销令牌签名前缀
const RevokedTokenKey = "auth:revoked:"

// TokenStore 基于 Redis 的令牌注销名单
type TokenStore struct {
	rdb *redis.Client
}

func NewTokenStore(rdb *redis.Client) *TokenStore {
	return &TokenStore{rdb: rdb}
}

// Revoke 记录签名直到令牌自然过期
func (s *TokenStore) Revoke(ctx context.Context, signature string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, RevokedTokenKey+signature, "1", ttl).Err()
}

// IsRevoked 签名是否已注销
func (s *TokenStore) IsRevoked(ctx context.Context, signature string) (bool, error) {
	_, err := s.rdb.Get(ctx, RevokedTokenKey+signature).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
