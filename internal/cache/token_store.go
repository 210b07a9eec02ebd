package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const loginTokenPrefix = "login:jti:"

// TokenStore хранит идентификаторы использованных одноразовых токенов входа
type TokenStore struct {
	client redis.Cmdable
}

func NewTokenStore(client redis.Cmdable) *TokenStore {
	return &TokenStore{client: client}
}

// Consume атомарно помечает токен использованным.
// Возвращает false, если токен уже был использован раньше.
func (s *TokenStore) Consume(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = time.Second
	}

	ok, err := s.client.SetNX(ctx, loginTokenPrefix+id, time.Now().Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("consume login token: %w", err)
	}

	return ok, nil
}
