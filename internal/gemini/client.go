// Package gemini calls the model provider to assess video quality, rotating
// between configured API keys when one is rate limited or rejected.
package gemini

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"codelearn/internal/metrics"
	"codelearn/internal/models"
)

const systemInstruction = `You are a strict reviewer of programming tutorial videos for a learning platform.
Judge only from the provided metadata and community feedback summary. Respond with a single JSON object and nothing else.`

const assessPromptFormat = `Assess this video as a programming tutorial.

Title: %s
Channel: %s
Duration: %s
Description: %s

Statistics: %d views, %d likes, %d comments.

Community feedback summary:
- overall sentiment: %s
- %d of %d analyzed comments report confusion
- %d comments call the content outdated
- top concerns: %s

Return a JSON object with exactly these fields:
{
  "is_relevant": <true if this is a programming/software tutorial>,
  "detected_category": "<what the video actually is>",
  "content_quality": <0-10>,
  "teaching_clarity": <0-10>,
  "practical_value": <0-10>,
  "up_to_date_score": <0-10>,
  "comment_sentiment": <0-10>,
  "recommendation": "<highly_recommended|recommended|acceptable|not_recommended|avoid>",
  "strengths": ["..."],
  "weaknesses": ["..."],
  "red_flags": ["..."]
}`

// Client assesses videos through the provider's generateContent endpoint.
type Client struct {
	baseURL string
	model   string
	rotator *Rotator
	client  *http.Client

	temperature float64
	maxTokens   int
}

// NewClient creates a model provider client over the given rotator.
func NewClient(baseURL, model string, rotator *Rotator) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       model,
		rotator:     rotator,
		client:      &http.Client{Timeout: 30 * time.Second},
		temperature: 0.2,
		maxTokens:   1024,
	}
}

type generateRequest struct {
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMimeType string  `json:"responseMimeType"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// rawAssessment mirrors the provider's JSON with pointer fields so absent
// values are distinguishable from zeroes; normalize supplies the defaults.
type rawAssessment struct {
	IsRelevant       *bool    `json:"is_relevant"`
	DetectedCategory *string  `json:"detected_category"`
	ContentQuality   *float64 `json:"content_quality"`
	TeachingClarity  *float64 `json:"teaching_clarity"`
	PracticalValue   *float64 `json:"practical_value"`
	UpToDateScore    *float64 `json:"up_to_date_score"`
	CommentSentiment *float64 `json:"comment_sentiment"`
	Recommendation   *string  `json:"recommendation"`
	Strengths        []string `json:"strengths"`
	Weaknesses       []string `json:"weaknesses"`
	RedFlags         []string `json:"red_flags"`
}

// Named defaults for every optional response field, applied in one place.
const (
	defaultSubScore       = 5.0
	defaultCategory       = "unknown"
	defaultRecommendation = "acceptable"
)

// normalize converts a loosely parsed response into a complete Assessment.
// Missing fields get neutral defaults rather than causing errors.
func (ra rawAssessment) normalize() models.Assessment {
	a := models.Assessment{
		IsRelevant:       true,
		DetectedCategory: defaultCategory,
		ContentQuality:   defaultSubScore,
		TeachingClarity:  defaultSubScore,
		PracticalValue:   defaultSubScore,
		UpToDateScore:    defaultSubScore,
		CommentSentiment: defaultSubScore,
		Recommendation:   defaultRecommendation,
		Strengths:        ra.Strengths,
		Weaknesses:       ra.Weaknesses,
		RedFlags:         ra.RedFlags,
	}
	if ra.IsRelevant != nil {
		a.IsRelevant = *ra.IsRelevant
	}
	if ra.DetectedCategory != nil && *ra.DetectedCategory != "" {
		a.DetectedCategory = *ra.DetectedCategory
	}
	if ra.ContentQuality != nil {
		a.ContentQuality = clampScore(*ra.ContentQuality)
	}
	if ra.TeachingClarity != nil {
		a.TeachingClarity = clampScore(*ra.TeachingClarity)
	}
	if ra.PracticalValue != nil {
		a.PracticalValue = clampScore(*ra.PracticalValue)
	}
	if ra.UpToDateScore != nil {
		a.UpToDateScore = clampScore(*ra.UpToDateScore)
	}
	if ra.CommentSentiment != nil {
		a.CommentSentiment = clampScore(*ra.CommentSentiment)
	}
	if ra.Recommendation != nil && *ra.Recommendation != "" {
		a.Recommendation = *ra.Recommendation
	}
	return a
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}

// AssessVideo asks the model to judge a video, trying credentials through
// the rotator. Configuration errors, exhausted credentials and terminal
// provider errors surface to the caller per the rotator's contract.
func (c *Client) AssessVideo(ctx context.Context, video *models.Video, signals models.CommentSignals) (models.Assessment, error) {
	prompt := buildPrompt(video, signals)

	body, err := json.Marshal(generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: systemInstruction}}},
		Contents:          []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:      c.temperature,
			MaxOutputTokens:  c.maxTokens,
			ResponseMimeType: "application/json",
		},
	})
	if err != nil {
		return models.Assessment{}, err
	}

	var assessment models.Assessment
	err = c.rotator.Do(ctx, func(ctx context.Context, credential string) error {
		parsed, callErr := c.call(ctx, credential, body)
		if callErr != nil {
			return callErr
		}
		assessment = parsed
		return nil
	})
	if err != nil {
		metrics.RecordModelCall("error")
		return models.Assessment{}, err
	}

	metrics.RecordModelCall("ok")
	return assessment, nil
}

// call performs one generateContent request with a single credential.
func (c *Client) call(ctx context.Context, credential string, body []byte) (models.Assessment, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, credential)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return models.Assessment{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return models.Assessment{}, fmt.Errorf("model provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return models.Assessment{}, &APIError{StatusCode: resp.StatusCode, Body: string(b)}
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return models.Assessment{}, fmt.Errorf("decoding model response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return models.Assessment{}, fmt.Errorf("empty model response")
	}

	var ra rawAssessment
	text := gr.Candidates[0].Content.Parts[0].Text
	if err := json.Unmarshal([]byte(text), &ra); err != nil {
		return models.Assessment{}, fmt.Errorf("parsing assessment JSON: %w", err)
	}
	return ra.normalize(), nil
}

func buildPrompt(video *models.Video, signals models.CommentSignals) string {
	concerns := "none"
	if len(signals.TopConcerns) > 0 {
		concerns = strings.Join(signals.TopConcerns, "; ")
	}
	description := video.Description
	if len(description) > 1000 {
		description = description[:1000]
	}
	return fmt.Sprintf(assessPromptFormat,
		video.Title,
		video.ChannelTitle,
		video.Duration,
		description,
		video.Stats.ViewCount,
		video.Stats.LikeCount,
		video.Stats.CommentCount,
		signals.OverallSentiment,
		signals.ConfusionIndicators,
		signals.TotalAnalyzed,
		signals.OutdatedIndicators,
		concerns,
	)
}
