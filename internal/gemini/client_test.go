package gemini

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"codelearn/internal/models"
)

func testVideo() *models.Video {
	return &models.Video{
		ID:           "dQw4w9WgXcQ",
		Title:        "Go Tutorial for Beginners",
		ChannelTitle: "CodeChannel",
		Duration:     "PT45M",
		Stats:        models.Stats{ViewCount: 10_000, LikeCount: 500, CommentCount: 50},
	}
}

// assessmentBody wraps an assessment JSON string in the provider's response
// envelope.
func assessmentBody(t *testing.T, assessment string) []byte {
	t.Helper()
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": assessment}}}},
		},
	}
	body, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshaling test response: %v", err)
	}
	return body
}

func TestNormalizeAppliesDefaults(t *testing.T) {
	var ra rawAssessment
	if err := json.Unmarshal([]byte(`{}`), &ra); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}

	a := ra.normalize()

	if !a.IsRelevant {
		t.Error("IsRelevant default = false, want true")
	}
	if a.DetectedCategory != "unknown" {
		t.Errorf("DetectedCategory = %q, want unknown", a.DetectedCategory)
	}
	for name, score := range map[string]float64{
		"ContentQuality":   a.ContentQuality,
		"TeachingClarity":  a.TeachingClarity,
		"PracticalValue":   a.PracticalValue,
		"UpToDateScore":    a.UpToDateScore,
		"CommentSentiment": a.CommentSentiment,
	} {
		if score != defaultSubScore {
			t.Errorf("%s = %v, want neutral default %v", name, score, defaultSubScore)
		}
	}
	if a.Recommendation != defaultRecommendation {
		t.Errorf("Recommendation = %q, want %q", a.Recommendation, defaultRecommendation)
	}
}

func TestNormalizeClampsScores(t *testing.T) {
	var ra rawAssessment
	if err := json.Unmarshal([]byte(`{"content_quality": 14, "teaching_clarity": -2}`), &ra); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}

	a := ra.normalize()
	if a.ContentQuality != 10 {
		t.Errorf("ContentQuality = %v, want clamped to 10", a.ContentQuality)
	}
	if a.TeachingClarity != 0 {
		t.Errorf("TeachingClarity = %v, want clamped to 0", a.TeachingClarity)
	}
}

func TestAssessVideo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "good-key" {
			t.Errorf("key = %q, want good-key", r.URL.Query().Get("key"))
		}
		w.Write(assessmentBody(t, `{
			"is_relevant": true,
			"detected_category": "programming_tutorial",
			"content_quality": 8,
			"teaching_clarity": 7,
			"practical_value": 9,
			"up_to_date_score": 6,
			"comment_sentiment": 7,
			"recommendation": "recommended",
			"strengths": ["hands-on examples"]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "gemini-2.0-flash", NewRotator([]string{"good-key"}))

	a, err := client.AssessVideo(context.Background(), testVideo(), models.CommentSignals{OverallSentiment: models.SentimentPositive})
	if err != nil {
		t.Fatalf("AssessVideo() error = %v", err)
	}
	if !a.IsRelevant || a.ContentQuality != 8 || a.Recommendation != "recommended" {
		t.Errorf("AssessVideo() = %+v, parsed fields wrong", a)
	}
	if len(a.Strengths) != 1 {
		t.Errorf("Strengths = %v, want one entry", a.Strengths)
	}
}

func TestAssessVideoRotatesOnRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") == "limited-key" {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write(assessmentBody(t, `{"is_relevant": true, "content_quality": 7}`))
	}))
	defer srv.Close()

	rotator := NewRotator([]string{"limited-key", "spare-key"})
	client := NewClient(srv.URL, "gemini-2.0-flash", rotator)

	a, err := client.AssessVideo(context.Background(), testVideo(), models.CommentSignals{})
	if err != nil {
		t.Fatalf("AssessVideo() error = %v", err)
	}
	if a.ContentQuality != 7 {
		t.Errorf("ContentQuality = %v, want 7 from the second credential", a.ContentQuality)
	}
	if rotator.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", rotator.Cursor())
	}
}

func TestAssessVideoExhaustsCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "gemini-2.0-flash", NewRotator([]string{"k1", "k2"}))

	_, err := client.AssessVideo(context.Background(), testVideo(), models.CommentSignals{})
	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Errorf("AssessVideo() error = %v, want ExhaustedError", err)
	}
}

func TestAssessVideoTerminalError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "gemini-2.0-flash", NewRotator([]string{"k1", "k2"}))

	_, err := client.AssessVideo(context.Background(), testVideo(), models.CommentSignals{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("AssessVideo() error = %v, want terminal APIError 400", err)
	}
	if calls != 1 {
		t.Errorf("provider calls = %d, want 1 (no rotation)", calls)
	}
}
