package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"codelearn/internal/db"
	"codelearn/internal/handlers/api"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(database *db.DB, svc api.Evaluator) {
	evaluationHandler := api.NewEvaluationHandler(svc)
	systemHandler := api.NewSystemHandler(database)

	s.App.Get("/api/videos/:id/evaluation", evaluationHandler.GetVideo)
	s.App.Get("/api/playlists/:id/evaluation", evaluationHandler.GetPlaylist)

	s.App.Get("/healthz", systemHandler.Health)
	s.App.Get("/api/stats", systemHandler.Stats)

	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
