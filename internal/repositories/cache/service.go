package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/omokarogabriel/banking-system/internal/models"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is not in the cache.
var ErrCacheMiss = errors.New("cache miss")

// CacheService wraps a Redis client with JSON marshalling and a default TTL.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCacheService creates a CacheService with the given default TTL.
func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Set stores a value under key with the default TTL.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

// SetWithTTL stores a value under key with an explicit TTL.
func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

// Get loads the value stored under key into dest.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get cache value: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return nil
}

// Delete removes keys from the cache.
func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// GetAccount loads a cached account by account number.
func (s *CacheService) GetAccount(ctx context.Context, accountNumber string) (*models.Account, error) {
	var account models.Account
	if err := s.Get(ctx, accountKey(accountNumber), &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// SetAccount caches an account under its account number.
func (s *CacheService) SetAccount(ctx context.Context, account *models.Account) error {
	return s.Set(ctx, accountKey(account.AccountNumber), account)
}

// DeleteAccount drops a cached account. Called after every balance mutation.
func (s *CacheService) DeleteAccount(ctx context.Context, accountNumber string) error {
	return s.Delete(ctx, accountKey(accountNumber))
}

// HealthCheck pings Redis.
func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client.
func (s *CacheService) Close() error {
	return s.client.Close()
}

func accountKey(accountNumber string) string {
	return fmt.Sprintf("account:%s", accountNumber)
}
