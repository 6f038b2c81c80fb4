package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"

	"codelearn/internal/gemini"
	"codelearn/internal/models"
	"codelearn/internal/youtube"
)

type fakeEvaluator struct {
	eval    *models.Evaluation
	agg     *models.PlaylistAggregate
	err     error
	lastID  string
	invoked int
}

func (f *fakeEvaluator) EvaluateVideo(ctx context.Context, videoID string) (*models.Evaluation, error) {
	f.invoked++
	f.lastID = videoID
	return f.eval, f.err
}

func (f *fakeEvaluator) EvaluatePlaylist(ctx context.Context, playlistID string) (*models.PlaylistAggregate, error) {
	f.invoked++
	f.lastID = playlistID
	return f.agg, f.err
}

func newTestApp(svc Evaluator) *fiber.App {
	app := fiber.New()
	h := NewEvaluationHandler(svc)
	app.Get("/api/videos/:id/evaluation", h.GetVideo)
	app.Get("/api/playlists/:id/evaluation", h.GetPlaylist)
	return app
}

func doRequest(t *testing.T, app *fiber.App, path string) (*http.Response, map[string]any) {
	t.Helper()
	req, _ := http.NewRequest("GET", path, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	var envelope map[string]any
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("decoding response %q: %v", body, err)
	}
	return resp, envelope
}

func TestGetVideoSuccess(t *testing.T) {
	svc := &fakeEvaluator{eval: &models.Evaluation{
		VideoID:        "dQw4w9WgXcQ",
		IsRelevant:     true,
		CompositeScore: 78,
		QualityTier:    models.TierGood,
	}}
	app := newTestApp(svc)

	resp, envelope := doRequest(t, app, "/api/videos/dQw4w9WgXcQ/evaluation")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if envelope["status"] != "ok" {
		t.Errorf("envelope status = %v, want ok", envelope["status"])
	}
	data, _ := envelope["data"].(map[string]any)
	if data["composite_score"] != float64(78) {
		t.Errorf("composite_score = %v, want 78", data["composite_score"])
	}
	if svc.lastID != "dQw4w9WgXcQ" {
		t.Errorf("service got id %q", svc.lastID)
	}
}

func TestGetVideoInvalidID(t *testing.T) {
	svc := &fakeEvaluator{}
	app := newTestApp(svc)

	resp, _ := doRequest(t, app, "/api/videos/not-an-id/evaluation")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if svc.invoked != 0 {
		t.Errorf("service invoked %d times for invalid id, want 0", svc.invoked)
	}
}

func TestGetVideoNotFound(t *testing.T) {
	app := newTestApp(&fakeEvaluator{err: youtube.ErrVideoNotFound})

	resp, envelope := doRequest(t, app, "/api/videos/dQw4w9WgXcQ/evaluation")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	if envelope["status"] != "error" {
		t.Errorf("envelope status = %v, want error", envelope["status"])
	}
}

func TestGetVideoCredentialsExhausted(t *testing.T) {
	err := &gemini.ExhaustedError{Last: errors.New("quota exceeded")}
	app := newTestApp(&fakeEvaluator{err: err})

	resp, _ := doRequest(t, app, "/api/videos/dQw4w9WgXcQ/evaluation")
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
}

func TestGetVideoInternalError(t *testing.T) {
	app := newTestApp(&fakeEvaluator{err: errors.New("boom")})

	resp, _ := doRequest(t, app, "/api/videos/dQw4w9WgXcQ/evaluation")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
}

func TestGetPlaylistSuccess(t *testing.T) {
	svc := &fakeEvaluator{agg: &models.PlaylistAggregate{
		PlaylistID:            "PLabcdefghijklm",
		SampledCount:          5,
		RelevantCount:         4,
		AverageCompositeScore: 72,
	}}
	app := newTestApp(svc)

	resp, envelope := doRequest(t, app, "/api/playlists/PLabcdefghijklm/evaluation")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	data, _ := envelope["data"].(map[string]any)
	if data["average_composite_score"] != float64(72) {
		t.Errorf("average_composite_score = %v, want 72", data["average_composite_score"])
	}
}

func TestGetPlaylistInvalidID(t *testing.T) {
	app := newTestApp(&fakeEvaluator{})

	resp, _ := doRequest(t, app, "/api/playlists/short/evaluation")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestGetPlaylistNotFound(t *testing.T) {
	app := newTestApp(&fakeEvaluator{err: youtube.ErrPlaylistNotFound})

	resp, _ := doRequest(t, app, "/api/playlists/PLabcdefghijklm/evaluation")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
