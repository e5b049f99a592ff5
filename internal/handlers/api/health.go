package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"seodash/internal/store"
)

// Pinger checks a backing service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service liveness.
type HealthHandler struct {
	dataDir string
	db      Pinger
}

// NewHealthHandler creates a new health handler. database may be nil.
func NewHealthHandler(dataDir string, database Pinger) *HealthHandler {
	return &HealthHandler{dataDir: dataDir, db: database}
}

// Healthz reports which collections are present and whether the database answers.
func (h *HealthHandler) Healthz(c fiber.Ctx) error {
	s := store.New(h.dataDir)
	collections := make(map[string]bool, len(store.Collections))
	for _, name := range store.Collections {
		_, err := s.Stat(name)
		collections[name] = err == nil
	}

	status := fiber.Map{"collections": collections}
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			status["database"] = "unavailable"
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"success": false, "result": status})
		}
		status["database"] = "ok"
	}
	return jsonSuccess(c, status)
}
