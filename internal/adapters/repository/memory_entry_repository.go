package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/buhba/boba-diary-engine/internal/core/domain"
)

type InMemoryEntryRepository struct {
	store map[string]*domain.Entry

	mu sync.RWMutex
}

func NewInMemoryEntryRepository() *InMemoryEntryRepository {
	return &InMemoryEntryRepository{
		store: make(map[string]*domain.Entry),
	}
}

func (r *InMemoryEntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[entry.ID]; ok {
		return domain.ErrEntryConflict
	}

	clone := *entry
	r.store[entry.ID] = &clone
	return nil
}

func (r *InMemoryEntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.store[id]
	if !ok {
		return nil, domain.ErrEntryNotFound
	}

	clone := *entry
	return &clone, nil
}

func (r *InMemoryEntryRepository) List(ctx context.Context) ([]*domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]*domain.Entry, 0, len(r.store))
	for _, e := range r.store {
		clone := *e
		entries = append(entries, &clone)
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.After(entries[j].Date)
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	return entries, nil
}

func (r *InMemoryEntryRepository) Update(ctx context.Context, entry *domain.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.store[entry.ID]
	if !ok {
		return domain.ErrEntryNotFound
	}
	if current.Version != entry.Version-1 {
		return domain.ErrEntryConflict
	}

	clone := *entry
	r.store[entry.ID] = &clone
	return nil
}

func (r *InMemoryEntryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrEntryNotFound
	}

	delete(r.store, id)
	return nil
}
