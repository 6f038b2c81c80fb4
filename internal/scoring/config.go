package scoring

// Weights blend the five 0-10 model sub-scores and the 0-100 engagement
// score into the composite. They must sum to 1 so a perfect set of inputs
// yields the maximum composite of 100.
type Weights struct {
	ContentQuality   float64
	TeachingClarity  float64
	PracticalValue   float64
	UpToDate         float64
	CommentSentiment float64
	Engagement       float64
}

// Sum returns the total weight, used by tests to guard the invariant.
func (w Weights) Sum() float64 {
	return w.ContentQuality + w.TeachingClarity + w.PracticalValue +
		w.UpToDate + w.CommentSentiment + w.Engagement
}

// Config holds all scoring parameters. Instances are injected into the
// engine so tests can score with custom tables.
type Config struct {
	Weights Weights

	// Outdated penalty escalates in discrete steps on the raw count of
	// outdated-signal comments.
	OutdatedPenaltyLow  int // count >= 1
	OutdatedPenaltyMid  int // count >= 3
	OutdatedPenaltyHigh int // count >= 5

	// Confusion penalty keys off the ratio of confusion-signal comments to
	// total comments analyzed, not the raw count.
	ConfusionRatioLow   float64 // ratio > low threshold
	ConfusionRatioHigh  float64
	ConfusionPenaltyLow int
	ConfusionPenaltyHi  int

	// Multipliers map the model's recommendation category to a composite
	// multiplier. Unknown categories multiply by 1.
	Multipliers map[string]float64
}

// DefaultConfig returns the production scoring parameters.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			ContentQuality:   0.20,
			TeachingClarity:  0.25,
			PracticalValue:   0.20,
			UpToDate:         0.15,
			CommentSentiment: 0.10,
			Engagement:       0.10,
		},
		OutdatedPenaltyLow:  4,
		OutdatedPenaltyMid:  10,
		OutdatedPenaltyHigh: 15,
		ConfusionRatioLow:   0.10,
		ConfusionRatioHigh:  0.20,
		ConfusionPenaltyLow: 5,
		ConfusionPenaltyHi:  10,
		Multipliers: map[string]float64{
			"highly_recommended": 1.05,
			"recommended":        1.00,
			"acceptable":         0.92,
			"not_recommended":    0.80,
			"avoid":              0.70,
		},
	}
}
