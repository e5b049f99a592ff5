package db

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"seodash/internal/models"
)

// settingsReader is the subset of DB used by GuardedSettings.
type settingsReader interface {
	GetAppBranding(ctx context.Context) (*models.AppBranding, error)
	ListFootprintSurfaces(ctx context.Context) ([]models.FootprintSurface, error)
}

// GuardedSettings reads admin settings through a circuit breaker so a database outage
// fails fast with ErrSettingsUnavailable instead of stalling every request.
type GuardedSettings struct {
	reader settingsReader
	cb     *gobreaker.CircuitBreaker
}

// NewGuardedSettings wraps r with a circuit breaker.
func NewGuardedSettings(r settingsReader, log zerolog.Logger) *GuardedSettings {
	cbSettings := gobreaker.Settings{
		Name:        "settings-store",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrBrandingNotFound) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	}

	return &GuardedSettings{
		reader: r,
		cb:     gobreaker.NewCircuitBreaker(cbSettings),
	}
}

// AppBranding returns the branding row.
func (g *GuardedSettings) AppBranding(ctx context.Context) (*models.AppBranding, error) {
	v, err := g.cb.Execute(func() (interface{}, error) {
		return g.reader.GetAppBranding(ctx)
	})
	if err != nil {
		return nil, translateBreakerErr(err)
	}
	return v.(*models.AppBranding), nil
}

// FootprintSurfaces returns the active footprint surfaces.
func (g *GuardedSettings) FootprintSurfaces(ctx context.Context) ([]models.FootprintSurface, error) {
	v, err := g.cb.Execute(func() (interface{}, error) {
		return g.reader.ListFootprintSurfaces(ctx)
	})
	if err != nil {
		return nil, translateBreakerErr(err)
	}
	return v.([]models.FootprintSurface), nil
}

func translateBreakerErr(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrSettingsUnavailable
	}
	return err
}
