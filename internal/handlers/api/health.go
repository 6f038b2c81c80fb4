package api

import (
	"github.com/gofiber/fiber/v3"

	"codelearn/internal/db"
)

// SystemHandler serves health and cache statistics endpoints.
type SystemHandler struct {
	db *db.DB
}

// NewSystemHandler creates a system handler.
func NewSystemHandler(database *db.DB) *SystemHandler {
	return &SystemHandler{db: database}
}

// Health reports whether the service and its database are reachable.
func (h *SystemHandler) Health(c fiber.Ctx) error {
	if err := h.db.Ping(c.Context()); err != nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "database unreachable")
	}
	return jsonSuccess(c, fiber.Map{"healthy": true})
}

// Stats reports how many evaluations the durable cache holds.
func (h *SystemHandler) Stats(c fiber.Ctx) error {
	count, err := h.db.CountEvaluations(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to count evaluations")
	}
	return jsonSuccess(c, fiber.Map{"cached_evaluations": count})
}
