package models

// Overall sentiment buckets derived from positive/negative comment ratios.
const (
	SentimentVeryPositive = "very_positive"
	SentimentPositive     = "positive"
	SentimentMixed        = "mixed"
	SentimentNegative     = "negative"
	SentimentVeryNegative = "very_negative"
	SentimentUnknown      = "unknown"
)

// CommentSignals is the heuristic summary of a video's comment section,
// derived purely from comment text and like counts. Deterministic for a
// given input set.
type CommentSignals struct {
	TotalAnalyzed       int      `json:"total_analyzed"`
	PositiveCount       int      `json:"positive_count"`
	NegativeCount       int      `json:"negative_count"`
	NeutralCount        int      `json:"neutral_count"`
	ConfusionIndicators int      `json:"confusion_indicators"`
	OutdatedIndicators  int      `json:"outdated_indicators"`
	QuestionCount       int      `json:"question_count"`
	PraiseCount         int      `json:"praise_count"`
	ComplaintCount      int      `json:"complaint_count"`
	OverallSentiment    string   `json:"overall_sentiment"`
	TopConcerns         []string `json:"top_concerns,omitempty"`
	TopPraises          []string `json:"top_praises,omitempty"`
}
