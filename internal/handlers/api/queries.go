package api

import (
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"

	"seodash/internal/models"
	"seodash/internal/queries"
)

// QueryCatalog lists the configured query definitions.
type QueryCatalog interface {
	All() []models.QueryDefinition
}

// QueryHandler executes dashboard queries via JSON API.
type QueryHandler struct {
	engine  *queries.Engine
	catalog QueryCatalog
}

// NewQueryHandler creates a new API query handler.
func NewQueryHandler(engine *queries.Engine, catalog QueryCatalog) *QueryHandler {
	return &QueryHandler{engine: engine, catalog: catalog}
}

// catalogEntry is a query definition with whether an aggregator backs it.
type catalogEntry struct {
	models.QueryDefinition
	Implemented bool `json:"implemented"`
}

// List returns the query catalog.
func (h *QueryHandler) List(c fiber.Ctx) error {
	implemented := make(map[string]bool)
	for _, t := range queries.RegisteredTypes() {
		implemented[t] = true
	}

	defs := h.catalog.All()
	entries := make([]catalogEntry, 0, len(defs))
	for _, d := range defs {
		entries = append(entries, catalogEntry{QueryDefinition: d, Implemented: implemented[d.QueryType]})
	}
	return jsonSuccess(c, entries)
}

// Execute runs a catalog query named in the request body.
func (h *QueryHandler) Execute(c fiber.Ctx) error {
	var body struct {
		ClientCode string `json:"clientCode"`
		QueryID    string `json:"queryId"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.engine.Execute(c.Context(), body.ClientCode, body.QueryID)
	if err != nil {
		return queryError(c, err)
	}
	return jsonSuccess(c, result)
}

// ExecuteForClient runs a catalog query addressed by route parameters.
func (h *QueryHandler) ExecuteForClient(c fiber.Ctx) error {
	result, err := h.engine.Execute(c.Context(), c.Params("clientCode"), c.Params("queryId"))
	if err != nil {
		return queryError(c, err)
	}
	return jsonSuccess(c, result)
}

// Run executes an inline query definition for a client without the catalog.
func (h *QueryHandler) Run(c fiber.Ctx) error {
	var body struct {
		QueryType string             `json:"queryType"`
		Title     string             `json:"title"`
		Config    models.QueryConfig `json:"config"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	def := models.QueryDefinition{
		Title:     body.Title,
		QueryType: body.QueryType,
		Config:    body.Config,
	}
	result, err := h.engine.Run(c.Context(), c.Params("clientCode"), def)
	if err != nil {
		return queryError(c, err)
	}
	return jsonSuccess(c, result)
}
