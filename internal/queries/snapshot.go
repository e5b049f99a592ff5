package queries

import (
	"sort"

	"seodash/internal/analysis"
	"seodash/internal/models"
	"seodash/internal/validation"
)

// OwnedDomains returns the client's normalized domains followed by the domains of its Self
// competitor rows, without duplicates.
func (s *Snapshot) OwnedDomains() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(d string) {
		n := validation.NormalizeDomain(d)
		if n == "" || seen[n] {
			return
		}
		seen[n] = true
		out = append(out, n)
	}

	for _, d := range s.Client.OwnedDomains() {
		add(d)
	}
	for i := range s.Competitors {
		if s.Competitors[i].IsSelf() {
			add(s.Competitors[i].Domain)
		}
	}
	return out
}

// ownership answers "is this the client's domain" for one execution.
type ownership struct {
	owned []string
	cache map[string]bool
}

func (s *Snapshot) ownership() *ownership {
	return &ownership{owned: s.OwnedDomains(), cache: make(map[string]bool)}
}

func (o *ownership) is(domain string) bool {
	if v, ok := o.cache[domain]; ok {
		return v
	}
	v := validation.IsOwnedDomain(domain, o.owned)
	o.cache[domain] = v
	return v
}

// Rivals returns the active competitors that are not the client itself, one per normalized
// domain. The first row for a domain wins.
func (s *Snapshot) Rivals() []models.Competitor {
	own := s.ownership()
	seen := make(map[string]bool)
	var out []models.Competitor
	for _, c := range s.Competitors {
		if !c.IsActive() || c.IsSelf() {
			continue
		}
		d := validation.NormalizeDomain(c.Domain)
		if d == "" || seen[d] || own.is(d) {
			continue
		}
		seen[d] = true
		c.Domain = d
		out = append(out, c)
	}
	return out
}

// BrandAliases returns the brand names of every active competitor row, Self rows included.
func (s *Snapshot) BrandAliases() []string {
	var out []string
	for i := range s.Competitors {
		if s.Competitors[i].IsActive() {
			out = append(out, s.Competitors[i].BrandNames...)
		}
	}
	return out
}

// Classifier builds the term classifier for this execution.
func (s *Snapshot) Classifier() *analysis.Classifier {
	return analysis.NewClassifier(s.Terms, s.BrandAliases())
}

// keywordKey identifies a keyword within a location.
type keywordKey struct {
	keyword  string
	location string
}

func recordKey(keyword, location string) keywordKey {
	return keywordKey{keyword: models.NormalizeTerm(keyword), location: validation.NormalizeLocation(location)}
}

func matchesLocation(location, filter string) bool {
	return filter == "" || validation.NormalizeLocation(location) == filter
}

// trackedVolumes returns the max search volume per (keyword, location) over tracked keywords
// and SERP records.
func (s *Snapshot) trackedVolumes(filter string) map[keywordKey]int64 {
	vols := make(map[keywordKey]int64)
	note := func(k keywordKey, v int64) {
		if k.keyword == "" {
			return
		}
		if cur, ok := vols[k]; !ok || v > cur {
			vols[k] = v
		}
	}
	for _, r := range s.KeywordAPI {
		if matchesLocation(r.Location, filter) {
			note(recordKey(r.Keyword, r.Location), r.SearchVolume)
		}
	}
	for _, r := range s.DomainKeywords {
		if matchesLocation(r.Location, filter) {
			note(recordKey(r.Keyword, r.Location), r.SearchVolume)
		}
	}
	return vols
}

// bestPositions returns the lowest ranked position per (keyword, location) among records
// whose domain passes include.
func (s *Snapshot) bestPositions(filter string, include func(domain string) bool) map[keywordKey]int {
	best := make(map[keywordKey]int)
	for i := range s.DomainKeywords {
		r := &s.DomainKeywords[i]
		if !r.Ranked() || !matchesLocation(r.Location, filter) || !include(r.Domain) {
			continue
		}
		k := recordKey(r.Keyword, r.Location)
		if cur, ok := best[k]; !ok || *r.Position < cur {
			best[k] = *r.Position
		}
	}
	return best
}

// sortedKeys returns keys ordered by volume descending, then keyword and location.
func sortedKeys(vols map[keywordKey]int64) []keywordKey {
	keys := make([]keywordKey, 0, len(vols))
	for k := range vols {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if vols[keys[i]] != vols[keys[j]] {
			return vols[keys[i]] > vols[keys[j]]
		}
		if keys[i].keyword != keys[j].keyword {
			return keys[i].keyword < keys[j].keyword
		}
		return keys[i].location < keys[j].location
	})
	return keys
}

func positionPtr(best map[keywordKey]int, k keywordKey) *int {
	if p, ok := best[k]; ok {
		return &p
	}
	return nil
}

func truncate[T any](rows []T, limit int) []T {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}
