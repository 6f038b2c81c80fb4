package cache

import (
	"context"
	"errors"
	"log/slog"

	"github.com/goccy/go-json"

	"codelearn/internal/db"
	"codelearn/internal/metrics"
	"codelearn/internal/models"
)

// DurableStore is the persisted tier of the cache. *db.DB satisfies it;
// tests substitute fakes.
type DurableStore interface {
	FindEvaluation(ctx context.Context, key string) (*models.CachedEvaluation, error)
	UpsertEvaluation(ctx context.Context, key, videoID string, payload []byte) (*models.CachedEvaluation, error)
}

// Tiered composes the durable store and an ephemeral tier. Durable hits are
// authoritative and always preferred over ephemeral hits for the same key.
type Tiered struct {
	durable   DurableStore
	ephemeral *Ephemeral
}

// NewTiered creates a two-tier cache over the given stores.
func NewTiered(durable DurableStore, ephemeral *Ephemeral) *Tiered {
	return &Tiered{durable: durable, ephemeral: ephemeral}
}

// Lookup probes the durable tier first, then the ephemeral tier. A durable
// hit counts as a use of the stored record. Returns nil without error on a
// full miss.
func (t *Tiered) Lookup(ctx context.Context, key string) (*models.Evaluation, error) {
	ce, err := t.durable.FindEvaluation(ctx, key)
	if err == nil {
		var eval models.Evaluation
		if uerr := json.Unmarshal(ce.Payload, &eval); uerr != nil {
			slog.Warn("discarding unreadable cache payload", "key", key, "error", uerr)
		} else {
			metrics.RecordCacheHit("durable")
			return &eval, nil
		}
	} else if !errors.Is(err, db.ErrEvaluationNotFound) {
		// Durable tier unavailable; fall through to the ephemeral tier.
		slog.Warn("durable cache lookup failed", "key", key, "error", err)
	}

	if value, ok := t.ephemeral.Get(key); ok {
		if eval, ok := value.(*models.Evaluation); ok {
			metrics.RecordCacheHit("ephemeral")
			return eval, nil
		}
	}

	metrics.RecordCacheMiss()
	return nil, nil
}

// Store writes an evaluation through to the durable tier when persistable,
// otherwise into the ephemeral tier only. The caller decides persistability;
// the cache is policy-free.
func (t *Tiered) Store(ctx context.Context, key string, eval *models.Evaluation, persistable bool) error {
	if !persistable {
		t.ephemeral.Set(key, eval)
		return nil
	}

	payload, err := json.Marshal(eval)
	if err != nil {
		return err
	}
	if _, err := t.durable.UpsertEvaluation(ctx, key, eval.VideoID, payload); err != nil {
		return err
	}
	return nil
}
