package models

import "time"

// Quality tiers, from best to worst. NotApplicable is reserved for videos
// that are not relevant to the platform.
const (
	TierExcellent     = "excellent"
	TierGood          = "good"
	TierAverage       = "average"
	TierBelowAverage  = "below_average"
	TierPoor          = "poor"
	TierNotApplicable = "not_applicable"
)

// Recommendation categories, from strongest to weakest.
const (
	RecHighlyRecommended = "highly_recommended"
	RecRecommended       = "recommended"
	RecAcceptable        = "acceptable"
	RecNotRecommended    = "not_recommended"
	RecAvoid             = "avoid"
)

// SubScores are the model-derived quality dimensions on a 0-10 scale, plus
// the engagement score (0-100) computed locally from raw view/like/comment
// counts rather than by the model.
type SubScores struct {
	ContentQuality   float64 `json:"content_quality"`
	TeachingClarity  float64 `json:"teaching_clarity"`
	PracticalValue   float64 `json:"practical_value"`
	UpToDateScore    float64 `json:"up_to_date_score"`
	CommentSentiment float64 `json:"comment_sentiment"`
	Engagement       int     `json:"engagement"`
}

// Penalties are the named deductions applied to the composite score.
type Penalties struct {
	Outdated  int `json:"outdated"`
	Confusion int `json:"confusion"`
}

// Evaluation is the result of scoring a single video. It is a value object:
// once returned by the pipeline it is never mutated.
type Evaluation struct {
	VideoID          string         `json:"video_id"`
	VideoTitle       string         `json:"video_title"`
	IsRelevant       bool           `json:"is_relevant"`
	DetectedCategory string         `json:"detected_category"`
	SubScores        SubScores      `json:"sub_scores"`
	Penalties        Penalties      `json:"penalties"`
	CompositeScore   int            `json:"composite_score"`
	QualityTier      string         `json:"quality_tier"`
	Recommendation   string         `json:"recommendation"`
	Strengths        []string       `json:"strengths,omitempty"`
	Weaknesses       []string       `json:"weaknesses,omitempty"`
	RedFlags         []string       `json:"red_flags,omitempty"`
	CommentSignals   CommentSignals `json:"comment_signals"`
	EvaluatedAt      time.Time      `json:"evaluated_at"`
}
