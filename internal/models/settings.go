package models

import (
	"time"

	"github.com/google/uuid"
)

// AppBranding is the admin-managed dashboard branding.
type AppBranding struct {
	SiteTitle    string    `json:"siteTitle"`
	SiteTagline  string    `json:"siteTagline"`
	LogoURL      string    `json:"logoUrl,omitempty"`
	PrimaryColor string    `json:"primaryColor,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FootprintSurface is a third-party site where a brand can appear in search results.
type FootprintSurface struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Domain    string    `json:"domain"`
	Category  string    `json:"category"`
	SortOrder int       `json:"sortOrder"`
	Active    bool      `json:"active"`
}
