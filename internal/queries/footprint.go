package queries

import (
	"seodash/internal/analysis"
	"seodash/internal/models"
	"seodash/internal/validation"
)

const defaultFootprintKeywords = 5

// SurfaceFootprint is the client's keyword presence on one third-party surface.
type SurfaceFootprint struct {
	Name             string          `json:"name"`
	Domain           string          `json:"domain"`
	Category         string          `json:"category"`
	RankedKeywords   int             `json:"rankedKeywords"`
	BestPosition     *int            `json:"bestPosition"`
	EstimatedTraffic int64           `json:"estimatedTraffic"`
	TopKeywords      []RankedKeyword `json:"topKeywords"`
}

// DigitalFootprint lists the footprint surfaces appearing in the client's SERPs.
type DigitalFootprint struct {
	SurfacesTracked int                `json:"surfacesTracked"`
	SurfacesPresent int                `json:"surfacesPresent"`
	TotalTraffic    int64              `json:"totalTraffic"`
	Surfaces        []SurfaceFootprint `json:"surfaces"`
}

func digitalFootprint(s *Snapshot, cfg models.QueryConfig) (any, error) {
	vols := s.trackedVolumes(cfg.Location)
	sample := cfg.LimitOr(defaultFootprintKeywords)

	out := DigitalFootprint{Surfaces: make([]SurfaceFootprint, 0, len(s.Surfaces))}
	for _, surface := range s.Surfaces {
		if !surface.Active {
			continue
		}
		domain := validation.NormalizeDomain(surface.Domain)
		if domain == "" {
			continue
		}
		out.SurfacesTracked++

		onSurface := func(d string) bool { return validation.IsOwnedDomain(d, []string{domain}) }
		best := s.bestPositions(cfg.Location, onSurface)

		row := SurfaceFootprint{
			Name:           surface.Name,
			Domain:         domain,
			Category:       surface.Category,
			RankedKeywords: len(best),
			TopKeywords:    []RankedKeyword{},
		}
		keys := make(map[keywordKey]int64, len(best))
		for k, p := range best {
			keys[k] = vols[k]
			row.EstimatedTraffic += analysis.EstimateTraffic(vols[k], p)
			if row.BestPosition == nil || p < *row.BestPosition {
				pos := p
				row.BestPosition = &pos
			}
		}
		for _, k := range truncate(sortedKeys(keys), sample) {
			row.TopKeywords = append(row.TopKeywords, RankedKeyword{
				Keyword:      k.keyword,
				Location:     k.location,
				Domain:       domain,
				Position:     best[k],
				SearchVolume: vols[k],
			})
		}

		if row.RankedKeywords > 0 {
			out.SurfacesPresent++
		}
		out.TotalTraffic += row.EstimatedTraffic
		out.Surfaces = append(out.Surfaces, row)
	}

	return out, nil
}
