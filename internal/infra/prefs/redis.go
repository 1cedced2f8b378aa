package prefs

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps preferences in redis with no expiry; the selection should
// survive restarts the way browser storage did.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) CurrencyCode(ctx context.Context, clientID string) (string, error) {
	code, err := s.client.Get(ctx, currencyKey(clientID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotSet
		}
		return "", fmt.Errorf("prefs: get currency: %w", err)
	}
	return code, nil
}

func (s *RedisStore) SetCurrencyCode(ctx context.Context, clientID, code string) error {
	if err := s.client.Set(ctx, currencyKey(clientID), code, 0).Err(); err != nil {
		return fmt.Errorf("prefs: set currency: %w", err)
	}
	return nil
}

func currencyKey(clientID string) string {
	return "prefs:currency:" + clientID
}

var _ Store = (*RedisStore)(nil)
