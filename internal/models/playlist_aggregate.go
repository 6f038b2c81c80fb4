package models

import "time"

// IrrelevantItem records a sampled playlist member that turned out not to be
// relevant to the platform. Kept for transparency rather than discarded.
type IrrelevantItem struct {
	VideoID          string `json:"video_id"`
	Title            string `json:"title"`
	DetectedCategory string `json:"detected_category"`
}

// PlaylistAggregate folds the evaluations of a bounded sample of playlist
// members into one collection-level verdict.
type PlaylistAggregate struct {
	PlaylistID            string           `json:"playlist_id"`
	PlaylistTitle         string           `json:"playlist_title"`
	SampledCount          int              `json:"sampled_count"`
	RelevantCount         int              `json:"relevant_count"`
	IrrelevantCount       int              `json:"irrelevant_count"`
	AverageCompositeScore int              `json:"average_composite_score"`
	AverageSubScores      SubScores        `json:"average_sub_scores"`
	QualityTier           string           `json:"quality_tier"`
	Recommendation        string           `json:"recommendation"`
	Strengths             []string         `json:"strengths,omitempty"`
	Weaknesses            []string         `json:"weaknesses,omitempty"`
	RedFlags              []string         `json:"red_flags,omitempty"`
	Items                 []Evaluation     `json:"items"`
	IrrelevantItems       []IrrelevantItem `json:"irrelevant_items,omitempty"`
	EvaluatedAt           time.Time        `json:"evaluated_at"`
}
