package api

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"

	"seodash/internal/config"
	"seodash/internal/db"
	"seodash/internal/models"
)

// SettingsReader reads admin-managed settings.
type SettingsReader interface {
	AppBranding(ctx context.Context) (*models.AppBranding, error)
	FootprintSurfaces(ctx context.Context) ([]models.FootprintSurface, error)
}

// SettingsHandler serves branding and the footprint-surface catalog.
type SettingsHandler struct {
	settings SettingsReader
	cfg      *config.Config
}

// NewSettingsHandler creates a new API settings handler. settings may be nil when
// no relational store is configured.
func NewSettingsHandler(settings SettingsReader, cfg *config.Config) *SettingsHandler {
	return &SettingsHandler{settings: settings, cfg: cfg}
}

// Branding returns the stored branding, falling back to the configured site values.
func (h *SettingsHandler) Branding(c fiber.Ctx) error {
	fallback := &models.AppBranding{
		SiteTitle:   h.cfg.SiteTitle,
		SiteTagline: h.cfg.SiteTagline,
		LogoURL:     h.cfg.SiteLogoURL,
	}
	if h.settings == nil {
		return jsonSuccess(c, fallback)
	}

	branding, err := h.settings.AppBranding(c.Context())
	if err != nil {
		if errors.Is(err, db.ErrBrandingNotFound) || errors.Is(err, db.ErrSettingsUnavailable) {
			return jsonSuccess(c, fallback)
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to load branding")
	}
	return jsonSuccess(c, branding)
}

// FootprintSurfaces returns the active footprint surfaces.
func (h *SettingsHandler) FootprintSurfaces(c fiber.Ctx) error {
	if h.settings == nil {
		return jsonSuccess(c, []models.FootprintSurface{})
	}

	surfaces, err := h.settings.FootprintSurfaces(c.Context())
	if err != nil {
		if errors.Is(err, db.ErrSettingsUnavailable) {
			return jsonError(c, fiber.StatusServiceUnavailable, err.Error())
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to load footprint surfaces")
	}
	if surfaces == nil {
		surfaces = []models.FootprintSurface{}
	}
	return jsonSuccess(c, surfaces)
}
