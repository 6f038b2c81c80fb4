package models

// Assessment is the model provider's judgment of a single video, after the
// response has been normalized (missing fields defaulted). The scoring
// engine folds it together with engagement stats and comment signals.
type Assessment struct {
	IsRelevant       bool     `json:"is_relevant"`
	DetectedCategory string   `json:"detected_category"`
	ContentQuality   float64  `json:"content_quality"`
	TeachingClarity  float64  `json:"teaching_clarity"`
	PracticalValue   float64  `json:"practical_value"`
	UpToDateScore    float64  `json:"up_to_date_score"`
	CommentSentiment float64  `json:"comment_sentiment"`
	Recommendation   string   `json:"recommendation"`
	Strengths        []string `json:"strengths,omitempty"`
	Weaknesses       []string `json:"weaknesses,omitempty"`
	RedFlags         []string `json:"red_flags,omitempty"`
}
