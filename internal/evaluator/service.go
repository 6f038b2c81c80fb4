// Package evaluator orchestrates the evaluation pipeline: cache probe,
// metadata fetch, comment analysis, model assessment, scoring and
// write-through caching.
package evaluator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"codelearn/internal/comments"
	"codelearn/internal/metrics"
	"codelearn/internal/models"
	"codelearn/internal/scoring"
	"codelearn/internal/validation"
)

// Number of top-level comments analyzed per video.
const maxCommentsAnalyzed = 50

// MetadataProvider fetches video and playlist metadata from the outside
// world. *youtube.Client satisfies it.
type MetadataProvider interface {
	Video(ctx context.Context, id string) (*models.Video, error)
	Comments(ctx context.Context, videoID string, max int) ([]models.Comment, error)
	Playlist(ctx context.Context, id string) (*models.Playlist, error)
	PlaylistItems(ctx context.Context, playlistID string, max int) ([]models.PlaylistItem, error)
}

// ModelProvider performs the model assessment call. *gemini.Client
// satisfies it.
type ModelProvider interface {
	AssessVideo(ctx context.Context, video *models.Video, signals models.CommentSignals) (models.Assessment, error)
}

// EvaluationCache is the two-tier evaluation cache. *cache.Tiered
// satisfies it.
type EvaluationCache interface {
	Lookup(ctx context.Context, key string) (*models.Evaluation, error)
	Store(ctx context.Context, key string, eval *models.Evaluation, persistable bool) error
}

// AggregateCache holds playlist aggregates for their ephemeral lifetime.
// *cache.Ephemeral satisfies it.
type AggregateCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// Service is the caller-facing evaluation API. All dependencies are
// injected so tests can run the full pipeline against fakes.
type Service struct {
	metadata   MetadataProvider
	model      ModelProvider
	cache      EvaluationCache
	aggregates AggregateCache
	extractor  *comments.Extractor
	engine     *scoring.Engine
	sampleSize int
}

// New creates the evaluation service.
func New(metadata MetadataProvider, model ModelProvider, evalCache EvaluationCache, aggregates AggregateCache, extractor *comments.Extractor, engine *scoring.Engine, sampleSize int) *Service {
	if sampleSize <= 0 {
		sampleSize = 5
	}
	return &Service{
		metadata:   metadata,
		model:      model,
		cache:      evalCache,
		aggregates: aggregates,
		extractor:  extractor,
		engine:     engine,
		sampleSize: sampleSize,
	}
}

// EvaluateVideo evaluates a single video, serving from cache when possible.
// Relevant results are written through to the durable tier; irrelevant ones
// only to the ephemeral tier.
func (s *Service) EvaluateVideo(ctx context.Context, videoID string) (*models.Evaluation, error) {
	start := time.Now()
	key := validation.NormalizeKey(videoID)

	if cached, err := s.cache.Lookup(ctx, key); err != nil {
		return nil, err
	} else if cached != nil {
		return cached, nil
	}

	video, err := s.metadata.Video(ctx, videoID)
	if err != nil {
		return nil, err
	}

	commentSet, err := s.metadata.Comments(ctx, videoID, maxCommentsAnalyzed)
	if err != nil {
		// Missing comments degrade the signal, they don't sink the evaluation.
		slog.Warn("comment fetch failed, evaluating without comment signals", "video_id", videoID, "error", err)
		commentSet = nil
	}
	signals := s.extractor.Analyze(commentSet)

	assessment, err := s.model.AssessVideo(ctx, video, signals)
	if err != nil {
		return nil, fmt.Errorf("assessing video %s: %w", videoID, err)
	}

	eval := s.engine.Score(assessment, video.Stats, signals)
	eval.VideoID = video.ID
	eval.VideoTitle = video.Title

	// Only results worth keeping long term go durable; the caller-side
	// judgment here is relevance to the platform.
	persistable := eval.IsRelevant
	if err := s.cache.Store(ctx, key, &eval, persistable); err != nil {
		slog.Warn("cache store failed", "key", key, "error", err)
	}

	metrics.ObserveEvaluationDuration("video", time.Since(start).Seconds())
	return &eval, nil
}
