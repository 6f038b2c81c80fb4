package evaluator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"codelearn/internal/metrics"
	"codelearn/internal/models"
	"codelearn/internal/scoring"
	"codelearn/internal/validation"
)

// List caps on the aggregate result.
const (
	maxAggStrengths       = 5
	maxAggWeaknesses      = 5
	maxAggRedFlags        = 3
	maxAggIrrelevantItems = 3
)

// EvaluatePlaylist evaluates a bounded sample of playlist members and folds
// the results into one collection-level verdict. Members that fail to
// evaluate are skipped, so a partially broken playlist still yields an
// aggregate. Aggregates live only in the ephemeral tier.
func (s *Service) EvaluatePlaylist(ctx context.Context, playlistID string) (*models.PlaylistAggregate, error) {
	start := time.Now()
	key := validation.NormalizeKey("playlist", playlistID)

	if cached, ok := s.aggregates.Get(key); ok {
		if agg, ok := cached.(*models.PlaylistAggregate); ok {
			metrics.RecordCacheHit("ephemeral")
			return agg, nil
		}
	}
	metrics.RecordCacheMiss()

	playlist, err := s.metadata.Playlist(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	items, err := s.metadata.PlaylistItems(ctx, playlistID, s.sampleSize)
	if err != nil {
		return nil, fmt.Errorf("listing playlist %s: %w", playlistID, err)
	}
	if len(items) > s.sampleSize {
		items = items[:s.sampleSize]
	}

	agg := &models.PlaylistAggregate{
		PlaylistID:    playlist.ID,
		PlaylistTitle: playlist.Title,
		SampledCount:  len(items),
		EvaluatedAt:   time.Now().UTC(),
	}

	var (
		scoreSum  int
		subSums   models.SubScores
		strengths []string
		weakness  []string
		redFlags  []string
	)
	seenStrength := map[string]bool{}
	seenWeakness := map[string]bool{}
	seenRedFlag := map[string]bool{}

	for _, item := range items {
		eval, err := s.EvaluateVideo(ctx, item.VideoID)
		if err != nil {
			// A failed member is neither relevant nor irrelevant; it just
			// doesn't contribute.
			slog.Warn("skipping playlist member", "playlist_id", playlistID, "video_id", item.VideoID, "error", err)
			continue
		}
		agg.Items = append(agg.Items, *eval)

		if !eval.IsRelevant {
			agg.IrrelevantCount++
			if len(agg.IrrelevantItems) < maxAggIrrelevantItems {
				agg.IrrelevantItems = append(agg.IrrelevantItems, models.IrrelevantItem{
					VideoID:          eval.VideoID,
					Title:            eval.VideoTitle,
					DetectedCategory: eval.DetectedCategory,
				})
			}
			continue
		}

		agg.RelevantCount++
		scoreSum += eval.CompositeScore
		subSums.ContentQuality += eval.SubScores.ContentQuality
		subSums.TeachingClarity += eval.SubScores.TeachingClarity
		subSums.PracticalValue += eval.SubScores.PracticalValue
		subSums.UpToDateScore += eval.SubScores.UpToDateScore
		subSums.CommentSentiment += eval.SubScores.CommentSentiment
		subSums.Engagement += eval.SubScores.Engagement

		strengths = mergeBounded(strengths, eval.Strengths, maxAggStrengths, seenStrength)
		weakness = mergeBounded(weakness, eval.Weaknesses, maxAggWeaknesses, seenWeakness)
		redFlags = mergeBounded(redFlags, eval.RedFlags, maxAggRedFlags, seenRedFlag)
	}

	if agg.RelevantCount > 0 {
		n := float64(agg.RelevantCount)
		agg.AverageCompositeScore = int(float64(scoreSum)/n + 0.5)
		agg.AverageSubScores = models.SubScores{
			ContentQuality:   subSums.ContentQuality / n,
			TeachingClarity:  subSums.TeachingClarity / n,
			PracticalValue:   subSums.PracticalValue / n,
			UpToDateScore:    subSums.UpToDateScore / n,
			CommentSentiment: subSums.CommentSentiment / n,
			Engagement:       subSums.Engagement / agg.RelevantCount,
		}
		agg.QualityTier = scoring.TierForScore(agg.AverageCompositeScore)
		agg.Recommendation = scoring.RecommendationForScore(agg.AverageCompositeScore)
	} else {
		agg.QualityTier = models.TierNotApplicable
		agg.Recommendation = models.RecNotRecommended
	}

	agg.Strengths = strengths
	agg.Weaknesses = weakness
	agg.RedFlags = redFlags

	// A playlist where most evaluated members are off-topic is not worth
	// recommending regardless of how well the on-topic minority scored.
	evaluated := agg.RelevantCount + agg.IrrelevantCount
	if evaluated > 0 && agg.IrrelevantCount*2 > evaluated {
		agg.Recommendation = models.RecNotRecommended
		agg.RedFlags = mergeBounded(agg.RedFlags,
			[]string{fmt.Sprintf("%d of %d sampled videos are not programming tutorials", agg.IrrelevantCount, evaluated)},
			maxAggRedFlags, seenRedFlag)
	}

	s.aggregates.Set(key, agg)
	metrics.ObserveEvaluationDuration("playlist", time.Since(start).Seconds())
	return agg, nil
}

// mergeBounded appends unseen entries from src until dst reaches max.
func mergeBounded(dst, src []string, max int, seen map[string]bool) []string {
	for _, s := range src {
		if len(dst) >= max {
			break
		}
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		dst = append(dst, s)
	}
	return dst
}
