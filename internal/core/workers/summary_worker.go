package workers

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/buhba/boba-diary-engine/internal/core/domain"
	"github.com/buhba/boba-diary-engine/internal/core/stats"
)

// SummaryCacheKey is where the precomputed all-time summary lives in redis.
// The stats service reads through the same key.
const SummaryCacheKey = "stats:summary"

const summaryCacheTTL = 30 * time.Minute

type EntryLister interface {
	List(ctx context.Context) ([]*domain.Entry, error)
}

type SummaryJob struct{}

// SummaryWorker keeps the cached home-screen summary warm: the entry service
// enqueues a refresh after every write, the worker recomputes the rollup and
// rewrites the redis key so the next dashboard load skips the full scan.
type SummaryWorker struct {
	entries EntryLister
	cache   *redis.Client
	jobs    chan SummaryJob
}

func NewSummaryWorker(entries EntryLister, cache *redis.Client) *SummaryWorker {
	return &SummaryWorker{
		entries: entries,
		cache:   cache,
		jobs:    make(chan SummaryJob, 100),
	}
}

func (w *SummaryWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Summary Worker started in background...")
		for {
			select {
			case <-w.jobs:
				w.processJob(ctx)
			case <-ctx.Done():
				log.Println("Summary Worker shutting down...")
				return
			}
		}
	}()
}

func (w *SummaryWorker) Enqueue() {
	select {
	case w.jobs <- SummaryJob{}:
	default:
		log.Println("Summary Worker queue full! Dropping refresh job")
	}
}

func (w *SummaryWorker) processJob(ctx context.Context) {
	if w.entries == nil || w.cache == nil {
		return
	}

	list, err := w.entries.List(ctx)
	if err != nil {
		log.Printf("Worker Error fetching entries: %v", err)
		return
	}

	summary := stats.Summarize(list, time.Now().UTC())

	data, err := json.Marshal(summary)
	if err != nil {
		log.Printf("Worker Failed to encode summary: %v", err)
		return
	}

	if err := w.cache.Set(ctx, SummaryCacheKey, data, summaryCacheTTL).Err(); err != nil {
		log.Printf("Worker Failed to refresh summary cache: %v", err)
		return
	}

	log.Printf("Summary cache refreshed: %d drinks, %s spent", summary.DrinkCount, summary.TotalSpent)
}
