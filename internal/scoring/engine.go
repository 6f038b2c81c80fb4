// Package scoring blends model-derived sub-scores, heuristic comment
// signals and raw engagement statistics into one reproducible composite
// score. No randomness anywhere: identical inputs yield identical output.
package scoring

import (
	"fmt"
	"math"
	"time"

	"codelearn/internal/models"
)

// Bounded list caps on the evaluation result.
const (
	maxStrengths  = 5
	maxWeaknesses = 5
	maxRedFlags   = 3
)

// Engine computes composite quality scores.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine with the given parameters.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Score folds an assessment, engagement stats and comment signals into a
// complete Evaluation. An irrelevant assessment short-circuits to an
// all-zero result.
func (e *Engine) Score(assessment models.Assessment, stats models.Stats, signals models.CommentSignals) models.Evaluation {
	if !assessment.IsRelevant {
		return e.irrelevant(assessment, signals)
	}

	engagement := EngagementScore(stats)

	w := e.cfg.Weights
	weighted := 10*(assessment.ContentQuality*w.ContentQuality+
		assessment.TeachingClarity*w.TeachingClarity+
		assessment.PracticalValue*w.PracticalValue+
		assessment.UpToDateScore*w.UpToDate+
		assessment.CommentSentiment*w.CommentSentiment) +
		float64(engagement)*w.Engagement

	penalties := e.penalties(signals)
	adjusted := weighted - float64(penalties.Outdated) - float64(penalties.Confusion)
	adjusted *= e.multiplier(assessment.Recommendation)

	composite := clamp(int(math.Round(adjusted)), 0, 100)

	return models.Evaluation{
		IsRelevant:       true,
		DetectedCategory: assessment.DetectedCategory,
		SubScores: models.SubScores{
			ContentQuality:   assessment.ContentQuality,
			TeachingClarity:  assessment.TeachingClarity,
			PracticalValue:   assessment.PracticalValue,
			UpToDateScore:    assessment.UpToDateScore,
			CommentSentiment: assessment.CommentSentiment,
			Engagement:       engagement,
		},
		Penalties:      penalties,
		CompositeScore: composite,
		QualityTier:    TierForScore(composite),
		Recommendation: RecommendationForScore(composite),
		Strengths:      capList(assessment.Strengths, maxStrengths),
		Weaknesses:     capList(assessment.Weaknesses, maxWeaknesses),
		RedFlags:       capList(assessment.RedFlags, maxRedFlags),
		CommentSignals: signals,
		EvaluatedAt:    time.Now().UTC(),
	}
}

// irrelevant returns the zeroed evaluation for a video the model classified
// as outside the platform's scope.
func (e *Engine) irrelevant(assessment models.Assessment, signals models.CommentSignals) models.Evaluation {
	category := assessment.DetectedCategory
	if category == "" {
		category = "unknown"
	}
	return models.Evaluation{
		IsRelevant:       false,
		DetectedCategory: category,
		CompositeScore:   0,
		QualityTier:      models.TierNotApplicable,
		Recommendation:   models.RecNotRecommended,
		RedFlags:         []string{fmt.Sprintf("not a programming tutorial (detected category: %s)", category)},
		CommentSignals:   signals,
		EvaluatedAt:      time.Now().UTC(),
	}
}

// penalties computes the named deductions from comment signals.
func (e *Engine) penalties(signals models.CommentSignals) models.Penalties {
	var p models.Penalties

	switch {
	case signals.OutdatedIndicators >= 5:
		p.Outdated = e.cfg.OutdatedPenaltyHigh
	case signals.OutdatedIndicators >= 3:
		p.Outdated = e.cfg.OutdatedPenaltyMid
	case signals.OutdatedIndicators >= 1:
		p.Outdated = e.cfg.OutdatedPenaltyLow
	}

	if signals.TotalAnalyzed > 0 {
		ratio := float64(signals.ConfusionIndicators) / float64(signals.TotalAnalyzed)
		switch {
		case ratio > e.cfg.ConfusionRatioHigh:
			p.Confusion = e.cfg.ConfusionPenaltyHi
		case ratio > e.cfg.ConfusionRatioLow:
			p.Confusion = e.cfg.ConfusionPenaltyLow
		}
	}

	return p
}

func (e *Engine) multiplier(recommendation string) float64 {
	if m, ok := e.cfg.Multipliers[recommendation]; ok {
		return m
	}
	return 1.0
}

// EngagementScore computes the 0-100 engagement sub-score from raw counters.
// Like and comment ratios saturate (5% and 0.5% respectively) so viral
// outliers don't dominate, and a tiered view-count bonus adds diminishing
// credibility up to +15.
func EngagementScore(stats models.Stats) int {
	if stats.ViewCount <= 0 {
		return 0
	}
	views := float64(stats.ViewCount)

	likeRatio := float64(stats.LikeCount) / views
	likeComponent := math.Min(likeRatio/0.05, 1.0) * 45

	commentRatio := float64(stats.CommentCount) / views
	commentComponent := math.Min(commentRatio/0.005, 1.0) * 40

	var viewBonus float64
	switch {
	case stats.ViewCount >= 1_000_000:
		viewBonus = 15
	case stats.ViewCount >= 100_000:
		viewBonus = 12
	case stats.ViewCount >= 10_000:
		viewBonus = 8
	case stats.ViewCount >= 1_000:
		viewBonus = 4
	}

	return clamp(int(math.Round(likeComponent+commentComponent+viewBonus)), 0, 100)
}

// TierForScore maps a composite score to its quality tier.
func TierForScore(score int) string {
	switch {
	case score >= 85:
		return models.TierExcellent
	case score >= 70:
		return models.TierGood
	case score >= 55:
		return models.TierAverage
	case score >= 40:
		return models.TierBelowAverage
	default:
		return models.TierPoor
	}
}

// RecommendationForScore maps a composite score to a recommendation category.
func RecommendationForScore(score int) string {
	switch {
	case score >= 80:
		return models.RecHighlyRecommended
	case score >= 65:
		return models.RecRecommended
	case score >= 50:
		return models.RecAcceptable
	case score >= 35:
		return models.RecNotRecommended
	default:
		return models.RecAvoid
	}
}

func capList(list []string, max int) []string {
	if len(list) > max {
		return list[:max]
	}
	return list
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
