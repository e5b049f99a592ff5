package queries

import (
	"sort"

	"seodash/internal/models"
	"seodash/internal/validation"
)

// BrandDomain is the brand-keyword footprint of one domain.
type BrandDomain struct {
	Domain       string `json:"domain"`
	Name         string `json:"name"`
	IsSelf       bool   `json:"isSelf"`
	Keywords     int    `json:"keywords"`
	TotalVolume  int64  `json:"totalVolume"`
	BestPosition int    `json:"bestPosition"`
}

// BrandPower compares how much branded search each domain captures.
type BrandPower struct {
	BrandKeywords int           `json:"brandKeywords"`
	Domains       []BrandDomain `json:"domains"`
}

func brandPower(s *Snapshot, cfg models.QueryConfig) (any, error) {
	cls := s.Classifier()
	own := s.ownership()
	rivals := rivalIndex(s.Rivals())

	isBrand := make(map[string]bool)
	// per domain: keyword -> max volume
	volumes := make(map[string]map[string]int64)
	bestPos := make(map[string]int)

	for i := range s.DomainKeywords {
		r := &s.DomainKeywords[i]
		if !r.Ranked() || !matchesLocation(r.Location, cfg.Location) {
			continue
		}
		kw := models.NormalizeTerm(r.Keyword)
		brand, seen := isBrand[kw]
		if !seen {
			brand = cls.Classify(kw).Bucket == models.BucketBrand
			isBrand[kw] = brand
		}
		if !brand {
			continue
		}

		d := validation.NormalizeDomain(r.Domain)
		if d == "" {
			continue
		}
		if volumes[d] == nil {
			volumes[d] = make(map[string]int64)
		}
		if cur, ok := volumes[d][kw]; !ok || r.SearchVolume > cur {
			volumes[d][kw] = r.SearchVolume
		}
		if cur, ok := bestPos[d]; !ok || *r.Position < cur {
			bestPos[d] = *r.Position
		}
	}

	out := BrandPower{Domains: make([]BrandDomain, 0, len(volumes))}
	brandKeywords := make(map[string]bool)
	for d, kws := range volumes {
		row := BrandDomain{Domain: d, Name: d, IsSelf: own.is(d), Keywords: len(kws), BestPosition: bestPos[d]}
		for kw, v := range kws {
			row.TotalVolume += v
			brandKeywords[kw] = true
		}
		if row.IsSelf && s.Client.Name != "" {
			row.Name = s.Client.Name
		} else if rd, ok := rivalOf(d, rivals); ok {
			rival := rivals[rd]
			row.Name = rival.DisplayName()
		}
		out.Domains = append(out.Domains, row)
	}
	out.BrandKeywords = len(brandKeywords)

	sort.Slice(out.Domains, func(i, j int) bool {
		a, b := out.Domains[i], out.Domains[j]
		if a.IsSelf != b.IsSelf {
			return a.IsSelf
		}
		if a.TotalVolume != b.TotalVolume {
			return a.TotalVolume > b.TotalVolume
		}
		return a.Domain < b.Domain
	})
	out.Domains = truncate(out.Domains, cfg.Limit)

	return out, nil
}
