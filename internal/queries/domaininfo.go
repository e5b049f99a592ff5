package queries

import (
	"sort"

	"seodash/internal/analysis"
	"seodash/internal/models"
	"seodash/internal/validation"
)

// CompetitorInfo is a competitor row as shown on the domain profile.
type CompetitorInfo struct {
	Domain          string   `json:"domain"`
	Name            string   `json:"name"`
	CompetitionType string   `json:"competitionType"`
	Active          bool     `json:"isActive"`
	Importance      float64  `json:"importanceScore"`
	BrandNames      []string `json:"brandNames,omitempty"`
}

// DomainStats summarizes the SERP presence of one domain.
type DomainStats struct {
	Domain           string `json:"domain"`
	IsSelf           bool   `json:"isSelf"`
	RankedKeywords   int    `json:"rankedKeywords"`
	Top3             int    `json:"top3"`
	Top10            int    `json:"top10"`
	BestPosition     int    `json:"bestPosition"`
	EstimatedTraffic int64  `json:"estimatedTraffic"`
}

// DomainInfo is the client profile with its competitive landscape.
type DomainInfo struct {
	Client       models.Client    `json:"client"`
	OwnedDomains []string         `json:"ownedDomains"`
	Competitors  []CompetitorInfo `json:"competitors"`
	Domains      []DomainStats    `json:"domains"`
}

func domainInfo(s *Snapshot, cfg models.QueryConfig) (any, error) {
	out := DomainInfo{
		Client:       s.Client,
		OwnedDomains: s.OwnedDomains(),
		Competitors:  make([]CompetitorInfo, 0, len(s.Competitors)),
	}
	if out.OwnedDomains == nil {
		out.OwnedDomains = []string{}
	}

	for i := range s.Competitors {
		c := &s.Competitors[i]
		out.Competitors = append(out.Competitors, CompetitorInfo{
			Domain:          validation.NormalizeDomain(c.Domain),
			Name:            c.DisplayName(),
			CompetitionType: c.CompetitionType,
			Active:          c.IsActive(),
			Importance:      c.Importance,
			BrandNames:      c.BrandNames,
		})
	}
	sort.SliceStable(out.Competitors, func(i, j int) bool {
		if out.Competitors[i].Importance != out.Competitors[j].Importance {
			return out.Competitors[i].Importance > out.Competitors[j].Importance
		}
		return out.Competitors[i].Domain < out.Competitors[j].Domain
	})

	// per domain: (keyword, location) -> best position
	best := make(map[string]map[keywordKey]int)
	vols := s.trackedVolumes(cfg.Location)
	for i := range s.DomainKeywords {
		r := &s.DomainKeywords[i]
		if !r.Ranked() || !matchesLocation(r.Location, cfg.Location) {
			continue
		}
		d := validation.NormalizeDomain(r.Domain)
		if d == "" {
			continue
		}
		if best[d] == nil {
			best[d] = make(map[keywordKey]int)
		}
		k := recordKey(r.Keyword, r.Location)
		if cur, ok := best[d][k]; !ok || *r.Position < cur {
			best[d][k] = *r.Position
		}
	}

	own := s.ownership()
	out.Domains = make([]DomainStats, 0, len(best))
	for d, kws := range best {
		row := DomainStats{Domain: d, IsSelf: own.is(d), RankedKeywords: len(kws)}
		for k, p := range kws {
			if p <= 3 {
				row.Top3++
			}
			if p <= 10 {
				row.Top10++
			}
			if row.BestPosition == 0 || p < row.BestPosition {
				row.BestPosition = p
			}
			row.EstimatedTraffic += analysis.EstimateTraffic(vols[k], p)
		}
		out.Domains = append(out.Domains, row)
	}
	sort.Slice(out.Domains, func(i, j int) bool {
		a, b := out.Domains[i], out.Domains[j]
		if a.IsSelf != b.IsSelf {
			return a.IsSelf
		}
		if a.EstimatedTraffic != b.EstimatedTraffic {
			return a.EstimatedTraffic > b.EstimatedTraffic
		}
		return a.Domain < b.Domain
	})
	out.Domains = truncate(out.Domains, cfg.Limit)

	return out, nil
}
