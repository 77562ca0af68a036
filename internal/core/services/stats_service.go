package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/buhba/boba-diary-engine/internal/core/domain"
	"github.com/buhba/boba-diary-engine/internal/core/stats"
	"github.com/buhba/boba-diary-engine/internal/core/workers"
)

const summaryCacheTTL = 30 * time.Minute

// StatsService answers the home and statistics screens. The aggregation
// itself is pure; this service only supplies the entry snapshot and caches
// the all-time summary. A nil cache disables caching entirely.
type StatsService struct {
	repo  domain.EntryRepository
	cache *redis.Client
}

func NewStatsService(repo domain.EntryRepository, cache *redis.Client) *StatsService {
	return &StatsService{
		repo:  repo,
		cache: cache,
	}
}

// Overview returns the all-time summary, read through the cache the summary
// worker keeps warm. now comes from the caller so results stay deterministic.
func (s *StatsService) Overview(ctx context.Context, now time.Time) (*domain.Summary, error) {
	if s.cache != nil {
		val, err := s.cache.Get(ctx, workers.SummaryCacheKey).Result()
		if err == nil {
			var cached domain.Summary
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return &cached, nil
			}

			log.Println("[CACHE] Corrupted summary payload, cleaning up key")
			s.cache.Del(ctx, workers.SummaryCacheKey)
		} else if err != redis.Nil {
			log.Printf("[CACHE] Redis read error: %v", err)
		}
	}

	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	summary := stats.Summarize(entries, now)

	if s.cache != nil {
		if data, err := json.Marshal(summary); err == nil {
			if setErr := s.cache.Set(ctx, workers.SummaryCacheKey, data, summaryCacheTTL).Err(); setErr != nil {
				log.Printf("[CACHE] Redis set error: %v", setErr)
			}
		}
	}

	return &summary, nil
}

// Breakdown computes the windowed series for the stats screen. Never cached:
// the window boundaries move with now.
func (s *StatsService) Breakdown(ctx context.Context, window domain.Window, now time.Time) (*domain.Breakdown, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	breakdown := stats.WindowBreakdown(entries, window, now)
	return &breakdown, nil
}
