package models

// Competition type tags.
const (
	CompetitionSelf = "Self"
	CompetitionMain = "Main Competitor"
)

// Client is an analyzed account with its canonical and owned domains.
type Client struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Domain      string   `json:"domain"`
	Domains     []string `json:"domains,omitempty"`
	LogoURL     string   `json:"logoUrl,omitempty"`
	BrandColors []string `json:"brandColors,omitempty"`
}

// OwnedDomains returns the canonical domain followed by the additional owned domains.
// Values are returned as stored; callers compare them through validation.NormalizeDomain.
func (c *Client) OwnedDomains() []string {
	domains := make([]string, 0, len(c.Domains)+1)
	if c.Domain != "" {
		domains = append(domains, c.Domain)
	}
	for _, d := range c.Domains {
		if d != "" {
			domains = append(domains, d)
		}
	}
	return domains
}

// Competitor is a domain tracked against exactly one client.
type Competitor struct {
	ClientCode      string   `json:"clientCode"`
	Domain          string   `json:"domain"`
	Name            string   `json:"name,omitempty"`
	CompetitionType string   `json:"competitionType"`
	Active          *bool    `json:"isActive,omitempty"`
	BrandNames      []string `json:"brandNames,omitempty"`
	Logos           []string `json:"logos,omitempty"`
	Importance      float64  `json:"importanceScore,omitempty"`
}

// IsActive reports whether the competitor is active. A missing flag counts as active.
func (c *Competitor) IsActive() bool {
	return c.Active == nil || *c.Active
}

// IsSelf reports whether the row re-expresses one of the client's own domains.
func (c *Competitor) IsSelf() bool {
	return c.CompetitionType == CompetitionSelf
}

// IsMain reports whether the row is tagged as a main competitor.
func (c *Competitor) IsMain() bool {
	return c.CompetitionType == CompetitionMain
}

// DisplayName returns the competitor name, falling back to its first brand alias and then its domain.
func (c *Competitor) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	if len(c.BrandNames) > 0 && c.BrandNames[0] != "" {
		return c.BrandNames[0]
	}
	return c.Domain
}
