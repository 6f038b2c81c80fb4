// Package comments derives heuristic quality signals from a video's comment
// section without any model or network calls.
package comments

import (
	"strings"

	"codelearn/internal/models"
)

// Exemplar quote caps.
const (
	maxTopConcerns = 3
	maxTopPraises  = 3
)

// Extractor scans free-text community feedback against keyword tables.
type Extractor struct {
	keywords Keywords
}

// NewExtractor creates an extractor using the given keyword tables.
func NewExtractor(kw Keywords) *Extractor {
	return &Extractor{keywords: kw}
}

// Analyze derives counts and exemplar quotes from a comment set. Pure
// function of its input: the same comments always produce the same signals.
func (e *Extractor) Analyze(comments []models.Comment) models.CommentSignals {
	signals := models.CommentSignals{
		TotalAnalyzed:    len(comments),
		OverallSentiment: models.SentimentUnknown,
	}
	if len(comments) == 0 {
		return signals
	}

	for _, c := range comments {
		text := strings.ToLower(c.Text)

		positive := containsAny(text, e.keywords.Positive)
		negative := containsAny(text, e.keywords.Negative)
		confusion := containsAny(text, e.keywords.Confusion)
		outdated := containsAny(text, e.keywords.Outdated)
		complaint := containsAny(text, e.keywords.Complaint)

		// A comment lands in exactly one sentiment bucket: mixed or
		// keyword-free comments count as neutral.
		switch {
		case positive && !negative:
			signals.PositiveCount++
		case negative && !positive:
			signals.NegativeCount++
		default:
			signals.NeutralCount++
		}

		if confusion {
			signals.ConfusionIndicators++
		}
		if outdated {
			signals.OutdatedIndicators++
		}
		if containsAny(text, e.keywords.Question) {
			signals.QuestionCount++
		}
		if complaint {
			signals.ComplaintCount++
		}

		if containsAny(text, e.keywords.Praise) {
			signals.PraiseCount++
			if c.LikeCount >= e.keywords.PraiseLikeThreshold && len(signals.TopPraises) < maxTopPraises {
				signals.TopPraises = append(signals.TopPraises, trimQuote(c.Text))
			}
		}

		// Well-liked concern comments become exemplar quotes, first three in
		// insertion order.
		if (confusion || outdated || complaint) &&
			c.LikeCount >= e.keywords.ConcernLikeThreshold &&
			len(signals.TopConcerns) < maxTopConcerns {
			signals.TopConcerns = append(signals.TopConcerns, trimQuote(c.Text))
		}
	}

	signals.OverallSentiment = overallSentiment(signals.PositiveCount, signals.NegativeCount, signals.TotalAnalyzed)
	return signals
}

// overallSentiment buckets the positive and negative ratios into a category.
func overallSentiment(positive, negative, total int) string {
	if total == 0 {
		return models.SentimentUnknown
	}
	posRatio := float64(positive) / float64(total)
	negRatio := float64(negative) / float64(total)

	switch {
	case posRatio > 0.70:
		return models.SentimentVeryPositive
	case posRatio > 0.50:
		return models.SentimentPositive
	case negRatio > 0.60:
		return models.SentimentVeryNegative
	case negRatio > 0.40:
		return models.SentimentNegative
	default:
		return models.SentimentMixed
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// trimQuote bounds exemplar quotes to a readable length.
func trimQuote(text string) string {
	text = strings.TrimSpace(text)
	if len(text) > 140 {
		text = text[:140]
	}
	return text
}
