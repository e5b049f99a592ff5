package models

// Locations recognized by query configs and records.
const (
	LocationIndia  = "india"
	LocationGlobal = "global"
)

// KeywordAPIRecord is a tracked keyword with a search volume measurement and no ranking.
type KeywordAPIRecord struct {
	ClientCode   string `json:"clientCode"`
	Location     string `json:"location"`
	Keyword      string `json:"keyword"`
	SearchVolume int64  `json:"searchVolume"`
}

// DomainKeywordRecord is an observed SERP position of a domain for a keyword in a location.
// Position is nil when the domain was not found in the results.
type DomainKeywordRecord struct {
	ClientCode   string `json:"clientCode"`
	Domain       string `json:"domain"`
	Keyword      string `json:"keyword"`
	Location     string `json:"location"`
	Position     *int   `json:"position"`
	SearchVolume int64  `json:"searchVolume"`
}

// Ranked reports whether the record carries a usable position in 1..100.
func (r *DomainKeywordRecord) Ranked() bool {
	return r.Position != nil && *r.Position >= 1 && *r.Position <= 100
}
