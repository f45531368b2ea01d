package memory

import (
	"context"
	"time"

	"brainmode-be/internal/repository/contract"
	"brainmode-be/pkg/brain"

	"github.com/patrickmn/go-cache"
)

// ContextRepository keeps contexts in process memory. Idle views expire after ttl.
type ContextRepository struct {
	cache *cache.Cache
}

func NewContextRepository(ttl, cleanupInterval time.Duration) *ContextRepository {
	return &ContextRepository{
		cache: cache.New(ttl, cleanupInterval),
	}
}

func (r *ContextRepository) Save(_ context.Context, id string, c *brain.Context) error {
	r.cache.Set(id, c.Copy(), cache.DefaultExpiration)
	return nil
}

func (r *ContextRepository) FindByID(_ context.Context, id string) (*brain.Context, error) {
	if x, found := r.cache.Get(id); found {
		return x.(*brain.Context).Copy(), nil
	}
	return nil, contract.ErrContextNotFound
}

func (r *ContextRepository) Delete(_ context.Context, id string) error {
	if _, found := r.cache.Get(id); !found {
		return contract.ErrContextNotFound
	}
	r.cache.Delete(id)
	return nil
}

// Count returns the number of live views, expired ones included until the next cleanup.
func (r *ContextRepository) Count() int {
	return r.cache.ItemCount()
}

var _ contract.ContextRepository = (*ContextRepository)(nil)
