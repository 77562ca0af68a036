package repository

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/buhba/boba-diary-engine/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

var _ domain.EntryRepository = (*CachedEntryRepository)(nil)

const (
	entryListCacheKey = "entries:all"
	entryListCacheTTL = 30 * time.Minute
)

// CachedEntryRepository caches the full diary listing. Every aggregate in
// the stats layer is computed from the complete entry set, so the list is
// the only read worth caching; single-entry reads pass straight through.
type CachedEntryRepository struct {
	next  domain.EntryRepository
	cache *redis.Client
}

func NewCachedEntryRepository(next domain.EntryRepository, cache *redis.Client) *CachedEntryRepository {
	return &CachedEntryRepository{
		next:  next,
		cache: cache,
	}
}

func (r *CachedEntryRepository) invalidate(ctx context.Context) {
	if err := r.cache.Del(ctx, entryListCacheKey).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate entry list: %v", err)
	}
}

func (r *CachedEntryRepository) List(ctx context.Context) ([]*domain.Entry, error) {
	val, err := r.cache.Get(ctx, entryListCacheKey).Result()
	if err == nil {
		var entries []*domain.Entry
		if err := json.Unmarshal([]byte(val), &entries); err == nil {
			return entries, nil
		}

		log.Printf("[CACHE] Corrupted entry list payload, cleaning up key")
		r.cache.Del(ctx, entryListCacheKey)
	} else if err != redis.Nil {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	entries, err := r.next.List(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(entries); err == nil {
		if setErr := r.cache.Set(ctx, entryListCacheKey, data, entryListCacheTTL).Err(); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return entries, nil
}

func (r *CachedEntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedEntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	if err := r.next.Create(ctx, entry); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedEntryRepository) Update(ctx context.Context, entry *domain.Entry) error {
	if err := r.next.Update(ctx, entry); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedEntryRepository) Delete(ctx context.Context, id string) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}
