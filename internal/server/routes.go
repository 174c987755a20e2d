package server

import (
	"context"
	"log"

	"pickmycollege/internal/db"
	"pickmycollege/internal/handlers"
	"pickmycollege/internal/handlers/api"
	"pickmycollege/internal/middleware"
	"pickmycollege/internal/provider"
	"pickmycollege/internal/recommender"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, database *db.DB, pipeline *recommender.Pipeline, keys *provider.KeyManager) error {
	recommendHandler := api.NewRecommendHandler(pipeline)
	probeHandler := api.NewProbeHandler(database)
	adminHandler := api.NewAdminHandler(database, keys)

	// Public API
	s.App.Get("/api/recommendations", recommendHandler.Recommend)
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)

	// Admin surface - only wired when OIDC is configured.
	if s.Cfg.OIDCIssuer == "" {
		log.Println("OIDC not configured; admin routes disabled. Set OIDC_* and ADMIN_EMAILS to enable.")
		return nil
	}

	authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg)
	if err != nil {
		return err
	}
	authMiddleware := middleware.NewAuthMiddleware(s.Cfg)

	s.App.Get("/auth/login", authHandler.Login)
	s.App.Get("/auth/callback", authHandler.Callback)
	s.App.Get("/auth/logout", authHandler.Logout)

	s.App.Get("/admin/analytics", authMiddleware.RequireAdmin, adminHandler.Analytics)
	s.App.Get("/admin/keys", authMiddleware.RequireAdmin, adminHandler.Keys)
	s.App.Post("/admin/keys/reset", authMiddleware.RequireAdmin, adminHandler.ResetKeys)

	return nil
}
