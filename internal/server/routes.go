package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"seodash/internal/handlers/api"
	"seodash/internal/middleware"
	"seodash/internal/queries"
)

// Dependencies are the services the routes are served from. Settings, Executions
// and Database are nil when no relational store is configured.
type Dependencies struct {
	Engine     *queries.Engine
	Catalog    api.QueryCatalog
	Clients    api.ClientLister
	Settings   api.SettingsReader
	Executions api.ExecutionReader
	Database   api.Pinger
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(d Dependencies) {
	queryHandler := api.NewQueryHandler(d.Engine, d.Catalog)
	clientHandler := api.NewClientHandler(d.Clients, d.Executions)
	settingsHandler := api.NewSettingsHandler(d.Settings, s.Cfg)
	healthHandler := api.NewHealthHandler(s.Cfg.DataDir, d.Database)

	s.App.Get("/healthz", healthHandler.Healthz)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	apiGroup := s.App.Group("/api")

	apiGroup.Get("/queries", queryHandler.List)
	apiGroup.Post("/queries/execute", queryHandler.Execute)

	apiGroup.Get("/clients", clientHandler.List)
	apiGroup.Get("/clients/:clientCode/executions", middleware.RequireIdentifiers("clientCode"), clientHandler.Executions)
	apiGroup.Post("/clients/:clientCode/queries/:queryId", middleware.RequireIdentifiers("clientCode", "queryId"), queryHandler.ExecuteForClient)
	apiGroup.Post("/clients/:clientCode/run", middleware.RequireIdentifiers("clientCode"), queryHandler.Run)

	apiGroup.Get("/branding", settingsHandler.Branding)
	apiGroup.Get("/footprint-surfaces", settingsHandler.FootprintSurfaces)
}
