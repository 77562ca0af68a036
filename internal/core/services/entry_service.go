package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/buhba/boba-diary-engine/internal/core/domain"
	"github.com/buhba/boba-diary-engine/internal/core/stats"
	"github.com/buhba/boba-diary-engine/internal/core/workers"
)

type EntryService struct {
	repo   domain.EntryRepository
	worker *workers.SummaryWorker
}

func NewEntryService(repo domain.EntryRepository, worker *workers.SummaryWorker) *EntryService {
	return &EntryService{
		repo:   repo,
		worker: worker,
	}
}

type CreateEntryInput struct {
	ImageURI string
	Flavor   string
	Price    decimal.Decimal
	ShopName string
	Location string
	Date     time.Time
	Occasion string
	Rating   *int
	Notes    string
}

type UpdateEntryInput struct {
	ID      string
	Patch   domain.EntryPatch
	Version int
}

func (s *EntryService) Create(ctx context.Context, input CreateEntryInput) (*domain.Entry, error) {
	entry := domain.NewEntry(input.Flavor, input.Price, input.ShopName, input.Location, input.ImageURI, input.Date)
	entry.Occasion = input.Occasion
	entry.Rating = input.Rating
	entry.Notes = input.Notes

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.worker.Enqueue()

	return entry, nil
}

func (s *EntryService) Update(ctx context.Context, input UpdateEntryInput) (*domain.Entry, error) {
	existing, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Version > 0 && existing.Version != input.Version {
		return nil, domain.ErrEntryConflict
	}

	existing.Apply(input.Patch)

	if err := existing.Validate(); err != nil {
		return nil, err
	}

	existing.Version++

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.worker.Enqueue()

	return existing, nil
}

func (s *EntryService) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns the whole diary, newest first.
func (s *EntryService) List(ctx context.Context) ([]*domain.Entry, error) {
	return s.repo.List(ctx)
}

// Recent returns the n newest entries for the home dashboard.
func (s *EntryService) Recent(ctx context.Context, n int) ([]*domain.Entry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

func (s *EntryService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.worker.Enqueue()

	return nil
}

func (s *EntryService) TotalSpent(ctx context.Context) (decimal.Decimal, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return stats.TotalSpent(entries), nil
}

func (s *EntryService) Count(ctx context.Context) (int, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	return stats.Count(entries), nil
}
