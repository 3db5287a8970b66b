package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vkolotikov/loyalty-bolt/internal/models"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func NewRedisClient(cfg *RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// GetClient fetches a cached client record by card number.
func (s *CacheService) GetClient(ctx context.Context, cardNumber string) (*models.Client, error) {
	val, err := s.client.Get(ctx, clientKey(cardNumber)).Bytes()
	if err != nil {
		return nil, err
	}

	var client models.Client
	if err := json.Unmarshal(val, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

// SetClient caches a client record under its card number.
func (s *CacheService) SetClient(ctx context.Context, client *models.Client) error {
	data, err := json.Marshal(client)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, clientKey(client.CardNumber), data, s.ttl).Err()
}

// InvalidateClient drops the cached record for a card number.
func (s *CacheService) InvalidateClient(ctx context.Context, cardNumber string) error {
	return s.client.Del(ctx, clientKey(cardNumber)).Err()
}

func clientKey(cardNumber string) string {
	return fmt.Sprintf("client:%s", cardNumber)
}
