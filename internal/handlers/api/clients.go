package api

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"seodash/internal/models"
)

// ClientLister reads the client collection.
type ClientLister interface {
	Clients(ctx context.Context) ([]models.Client, error)
}

// ExecutionReader reads the query execution log.
type ExecutionReader interface {
	GetRecentExecutions(ctx context.Context, clientCode string, limit int) ([]models.QueryExecution, error)
}

// ClientHandler serves client listings.
type ClientHandler struct {
	clients    ClientLister
	executions ExecutionReader
}

// NewClientHandler creates a new API client handler. executions may be nil.
func NewClientHandler(clients ClientLister, executions ExecutionReader) *ClientHandler {
	return &ClientHandler{clients: clients, executions: executions}
}

// List returns every known client.
func (h *ClientHandler) List(c fiber.Ctx) error {
	clients, err := h.clients.Clients(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to load clients")
	}
	if clients == nil {
		clients = []models.Client{}
	}
	return jsonSuccess(c, clients)
}

// executionView is the JSON shape of an execution log entry.
type executionView struct {
	ID         string `json:"id"`
	QueryID    string `json:"queryId"`
	QueryType  string `json:"queryType"`
	Outcome    string `json:"outcome"`
	DurationMS int64  `json:"durationMs"`
	ExecutedAt string `json:"executedAt"`
}

// Executions returns the latest query executions of a client.
func (h *ClientHandler) Executions(c fiber.Ctx) error {
	if h.executions == nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "execution log is not configured")
	}

	limit := 20
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 200 {
		limit = v
	}

	clients, err := h.clients.Clients(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to load clients")
	}
	code := c.Params("clientCode")
	client, ok := findClient(clients, code)
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "client not found: "+code)
	}

	rows, err := h.executions.GetRecentExecutions(c.Context(), client.Code, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to load executions")
	}

	views := make([]executionView, 0, len(rows))
	for _, r := range rows {
		views = append(views, executionView{
			ID:         r.ID.String(),
			QueryID:    r.QueryID,
			QueryType:  r.QueryType,
			Outcome:    r.Outcome,
			DurationMS: r.DurationMS,
			ExecutedAt: r.ExecutedAt.UTC().Format(time.RFC3339),
		})
	}
	return jsonSuccess(c, views)
}

// findClient matches a client code case-insensitively, as the query engine does.
func findClient(clients []models.Client, code string) (models.Client, bool) {
	for _, cl := range clients {
		if strings.EqualFold(cl.Code, code) {
			return cl, true
		}
	}
	return models.Client{}, false
}
