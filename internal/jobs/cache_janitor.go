package jobs

import (
	"context"
	"log"
	"time"

	"codelearn/internal/cache"
)

// CacheJanitor periodically prunes expired entries from the ephemeral cache
// tiers so irrelevant-video results and playlist aggregates don't pile up.
type CacheJanitor struct {
	caches   []*cache.Ephemeral
	interval time.Duration
}

// NewCacheJanitor creates a janitor over the given ephemeral caches.
func NewCacheJanitor(interval time.Duration, caches ...*cache.Ephemeral) *CacheJanitor {
	return &CacheJanitor{
		caches:   caches,
		interval: interval,
	}
}

// Start begins the background prune loop.
func (j *CacheJanitor) Start(ctx context.Context) {
	log.Printf("Cache janitor started (interval: %v, caches: %d)", j.interval, len(j.caches))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Cache janitor stopped")
			return
		case <-ticker.C:
			j.pruneAll()
		}
	}
}

func (j *CacheJanitor) pruneAll() {
	total := 0
	for _, c := range j.caches {
		total += c.Prune()
	}
	if total > 0 {
		log.Printf("Cache janitor: pruned %d expired entries", total)
	}
}
