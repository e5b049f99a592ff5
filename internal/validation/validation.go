package validation

import (
	"net/url"
	"regexp"
	"strings"

	"seodash/internal/models"
)

// IdentifierPattern defines the valid client code / query id format: alphanumeric, hyphens, underscores.
var IdentifierPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateIdentifier checks if a client code, query id or query type matches the allowed pattern.
func ValidateIdentifier(id string) bool {
	if id == "" || len(id) > 100 {
		return false
	}
	return IdentifierPattern.MatchString(id)
}

// NormalizeDomain canonicalizes a domain or URL for equality comparisons: lowercase host
// without scheme, credentials, port, path, query, trailing dots or leading "www." labels.
// NormalizeDomain(NormalizeDomain(x)) == NormalizeDomain(x) for every x.
func NormalizeDomain(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))

	// A "://" counts as a scheme separator only before the first path, query or fragment character.
	if i := strings.Index(s, "://"); i >= 0 {
		if j := strings.IndexAny(s, "/?#"); j >= i {
			s = s[i+3:]
		}
	}
	s = strings.TrimLeft(s, "/")
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndex(s, "@"); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.Index(s, ":"); i >= 0 {
		s = s[:i]
	}

	for {
		prev := s
		s = strings.Trim(s, ". ")
		s = strings.TrimPrefix(s, "www.")
		if s == prev {
			return s
		}
	}
}

// IsOwnedDomain reports whether candidate is one of the owned domains or a subdomain of one.
func IsOwnedDomain(candidate string, owned []string) bool {
	c := NormalizeDomain(candidate)
	if c == "" {
		return false
	}
	for _, o := range owned {
		d := NormalizeDomain(o)
		if d == "" {
			continue
		}
		if c == d || strings.HasSuffix(c, "."+d) {
			return true
		}
	}
	return false
}

// NormalizeLocation maps a record or config location to models.LocationIndia or models.LocationGlobal.
func NormalizeLocation(location string) string {
	switch strings.ToLower(strings.TrimSpace(location)) {
	case "india", "in":
		return models.LocationIndia
	default:
		return models.LocationGlobal
	}
}

// ValidateLocationFilter checks a config location filter. Empty means no filter.
func ValidateLocationFilter(location string) bool {
	switch strings.ToLower(strings.TrimSpace(location)) {
	case "", models.LocationIndia, models.LocationGlobal:
		return true
	default:
		return false
	}
}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
// This prevents javascript:, data:, vbscript:, and other dangerous URL schemes.
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}
