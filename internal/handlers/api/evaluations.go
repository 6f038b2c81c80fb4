// Package api exposes the evaluation pipeline over a JSON API.
package api

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"

	"codelearn/internal/gemini"
	"codelearn/internal/models"
	"codelearn/internal/validation"
	"codelearn/internal/youtube"
)

// Evaluator is the evaluation service consumed by the handlers.
// *evaluator.Service satisfies it.
type Evaluator interface {
	EvaluateVideo(ctx context.Context, videoID string) (*models.Evaluation, error)
	EvaluatePlaylist(ctx context.Context, playlistID string) (*models.PlaylistAggregate, error)
}

// EvaluationHandler serves video and playlist evaluations.
type EvaluationHandler struct {
	svc Evaluator
}

// NewEvaluationHandler creates an evaluation handler.
func NewEvaluationHandler(svc Evaluator) *EvaluationHandler {
	return &EvaluationHandler{svc: svc}
}

// GetVideo evaluates a single video by ID.
func (h *EvaluationHandler) GetVideo(c fiber.Ctx) error {
	id := c.Params("id")
	if !validation.ValidateVideoID(id) {
		return jsonError(c, fiber.StatusBadRequest, "invalid video id")
	}

	eval, err := h.svc.EvaluateVideo(c.Context(), id)
	if err != nil {
		return evaluationError(c, "video", id, err)
	}
	return jsonSuccess(c, eval)
}

// GetPlaylist evaluates a sampled playlist by ID.
func (h *EvaluationHandler) GetPlaylist(c fiber.Ctx) error {
	id := c.Params("id")
	if !validation.ValidatePlaylistID(id) {
		return jsonError(c, fiber.StatusBadRequest, "invalid playlist id")
	}

	agg, err := h.svc.EvaluatePlaylist(c.Context(), id)
	if err != nil {
		return evaluationError(c, "playlist", id, err)
	}
	return jsonSuccess(c, agg)
}

// evaluationError maps pipeline failures onto HTTP statuses.
func evaluationError(c fiber.Ctx, kind, id string, err error) error {
	var exhausted *gemini.ExhaustedError
	switch {
	case errors.Is(err, youtube.ErrVideoNotFound):
		return jsonError(c, fiber.StatusNotFound, "video not found")
	case errors.Is(err, youtube.ErrPlaylistNotFound):
		return jsonError(c, fiber.StatusNotFound, "playlist not found")
	case errors.Is(err, gemini.ErrNoCredentials), errors.As(err, &exhausted):
		return jsonError(c, fiber.StatusServiceUnavailable, "evaluation temporarily unavailable")
	default:
		log.Printf("Evaluation failed for %s %s: %v", kind, id, err)
		return jsonError(c, fiber.StatusInternalServerError, "failed to evaluate "+kind)
	}
}
