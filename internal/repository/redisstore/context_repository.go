package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"brainmode-be/internal/repository/contract"
	"brainmode-be/pkg/brain"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "brain:context:"

// ContextRepository stores contexts as JSON in redis so several service instances can share
// views. Every save refreshes the expiry.
type ContextRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewContextRepository(rdb *redis.Client, ttl time.Duration) *ContextRepository {
	return &ContextRepository{rdb: rdb, ttl: ttl}
}

func key(id string) string {
	return keyPrefix + id
}

func (r *ContextRepository) Save(ctx context.Context, id string, c *brain.Context) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode context %s: %w", id, err)
	}
	if err := r.rdb.Set(ctx, key(id), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save context %s: %w", id, err)
	}
	return nil
}

func (r *ContextRepository) FindByID(ctx context.Context, id string) (*brain.Context, error) {
	data, err := r.rdb.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, contract.ErrContextNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load context %s: %w", id, err)
	}

	var c brain.Context
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode context %s: %w", id, err)
	}
	if c.AtomsByID == nil {
		c.AtomsByID = brain.AtomCache{}
	}
	if c.ViewProperties == nil {
		c.ViewProperties = map[string]string{}
	}
	return &c, nil
}

func (r *ContextRepository) Delete(ctx context.Context, id string) error {
	n, err := r.rdb.Del(ctx, key(id)).Result()
	if err != nil {
		return fmt.Errorf("delete context %s: %w", id, err)
	}
	if n == 0 {
		return contract.ErrContextNotFound
	}
	return nil
}

var _ contract.ContextRepository = (*ContextRepository)(nil)
