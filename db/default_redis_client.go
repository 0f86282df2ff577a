package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// DefaultRedisClient struct holds the Redis client and context
type DefaultRedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewDefaultRedisClient initializes a new Redis client wrapper
func NewDefaultRedisClient(ctx context.Context, client *redis.Client) *DefaultRedisClient {
	// Test the connection
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	fmt.Println("Connected to Redis")

	return &DefaultRedisClient{
		client: client,
		ctx:    ctx,
	}
}

// Set sets a key-value pair in Redis with no expiry
func (r *DefaultRedisClient) Set(key, value string) error {
	return r.client.Set(r.ctx, key, value, 0).Err()
}

// SetWithTTL sets a key-value pair that Redis evicts after ttl
func (r *DefaultRedisClient) SetWithTTL(key, value string, ttl time.Duration) error {
	return r.client.Set(r.ctx, key, value, ttl).Err()
}

// Get retrieves the value for a given key from Redis
func (r *DefaultRedisClient) Get(key string) (string, error) {
	return r.client.Get(r.ctx, key).Result()
}

// Keys lists all keys matching the given pattern
func (r *DefaultRedisClient) Keys(pattern string) ([]string, error) {
	return r.client.Keys(r.ctx, pattern).Result()
}

// Del removes a key
func (r *DefaultRedisClient) Del(key string) error {
	return r.client.Del(r.ctx, key).Err()
}

func (r *DefaultRedisClient) Ping() error {
	_, err := r.client.Ping(r.ctx).Result()
	return err
}

func (r *DefaultRedisClient) GetContext() context.Context {
	return r.ctx
}
