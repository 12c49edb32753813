package user

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Cache holds expiring user snapshots in front of the store. Never
// authoritative; entries may lag the store for up to the TTL.
type Cache interface {
	// Get returns the cached snapshot, or nil on a miss.
	Get(ctx context.Context, id uuid.UUID) (*User, error)
	// Set overwrites the snapshot and resets its TTL.
	Set(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

const cacheKeyPrefix = "user:"

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed user snapshot cache
func NewRedisCache(client *redis.Client, ttl time.Duration) Cache {
	return &redisCache{client: client, ttl: ttl}
}

func (c *redisCache) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	data, err := c.client.Get(ctx, cacheKeyPrefix+id.String()).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("user cache decode: %w", err)
	}
	return &user, nil
}

func (c *redisCache) Set(ctx context.Context, user *User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("user cache encode: %w", err)
	}
	return c.client.Set(ctx, cacheKeyPrefix+user.ID.String(), data, c.ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, id uuid.UUID) error {
	return c.client.Del(ctx, cacheKeyPrefix+id.String()).Err()
}
