package comments

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Keywords are the heuristic tables the extractor matches comments against.
// They ship with built-in defaults and can be overridden by a versioned YAML
// file so scoring behavior changes are reviewable independent of code changes.
type Keywords struct {
	Version   int      `yaml:"version"`
	Positive  []string `yaml:"positive"`
	Negative  []string `yaml:"negative"`
	Confusion []string `yaml:"confusion"`
	Outdated  []string `yaml:"outdated"`
	Question  []string `yaml:"question"`
	Praise    []string `yaml:"praise"`
	Complaint []string `yaml:"complaint"`

	// Like-count thresholds for capturing exemplar quotes.
	ConcernLikeThreshold int64 `yaml:"concern_like_threshold"`
	PraiseLikeThreshold  int64 `yaml:"praise_like_threshold"`
}

// DefaultKeywords returns the built-in heuristic tables.
func DefaultKeywords() Keywords {
	return Keywords{
		Version: 1,
		Positive: []string{
			"great", "excellent", "awesome", "amazing", "helpful", "thank",
			"thanks", "love this", "best", "clear", "well explained",
			"finally understand", "perfect",
		},
		Negative: []string{
			"bad", "worst", "terrible", "waste", "useless", "boring",
			"wrong", "misleading", "disappointing",
		},
		Confusion: []string{
			"confused", "confusing", "don't understand", "dont understand",
			"lost me", "unclear", "hard to follow", "makes no sense",
		},
		Outdated: []string{
			"outdated", "deprecated", "no longer works", "doesn't work anymore",
			"doesnt work anymore", "old version", "not working in",
		},
		Question: []string{
			"how do i", "how can i", "why does", "what if", "can you explain",
			"anyone know",
		},
		Praise: []string{
			"best tutorial", "best explanation", "saved me", "life saver",
			"lifesaver", "subscribed", "better than my professor",
		},
		Complaint: []string{
			"too fast", "too slow", "can't hear", "cant hear", "bad audio",
			"skipped", "incomplete", "clickbait", "just reading",
		},
		ConcernLikeThreshold: 3,
		PraiseLikeThreshold:  5,
	}
}

// LoadKeywords reads keyword tables from a YAML file, falling back to the
// defaults when path is empty. Missing sections keep their default values.
func LoadKeywords(path string) (Keywords, error) {
	kw := DefaultKeywords()
	if path == "" {
		return kw, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return kw, fmt.Errorf("reading heuristics file: %w", err)
	}

	var override Keywords
	if err := yaml.Unmarshal(data, &override); err != nil {
		return kw, fmt.Errorf("parsing heuristics file: %w", err)
	}

	if override.Version != 0 {
		kw.Version = override.Version
	}
	if len(override.Positive) > 0 {
		kw.Positive = override.Positive
	}
	if len(override.Negative) > 0 {
		kw.Negative = override.Negative
	}
	if len(override.Confusion) > 0 {
		kw.Confusion = override.Confusion
	}
	if len(override.Outdated) > 0 {
		kw.Outdated = override.Outdated
	}
	if len(override.Question) > 0 {
		kw.Question = override.Question
	}
	if len(override.Praise) > 0 {
		kw.Praise = override.Praise
	}
	if len(override.Complaint) > 0 {
		kw.Complaint = override.Complaint
	}
	if override.ConcernLikeThreshold > 0 {
		kw.ConcernLikeThreshold = override.ConcernLikeThreshold
	}
	if override.PraiseLikeThreshold > 0 {
		kw.PraiseLikeThreshold = override.PraiseLikeThreshold
	}

	return kw, nil
}
