package queries

import (
	"sort"

	"seodash/internal/analysis"
	"seodash/internal/models"
)

// Quadrant names, in display order per view.
const (
	QuadrantStrongholds     = "Strongholds"
	QuadrantPriorityTargets = "Priority Targets"
	QuadrantNicheWins       = "Niche Wins"
	QuadrantMonitor         = "Monitor"

	QuadrantCriticalGaps  = "Critical Gaps"
	QuadrantContestedGaps = "Contested Gaps"
	QuadrantNicheGaps     = "Niche Gaps"
	QuadrantMinorGaps     = "Minor Gaps"

	QuadrantBlueOcean     = "Blue Ocean"
	QuadrantEmerging      = "Emerging"
	QuadrantUntappedNiche = "Untapped Niche"
	QuadrantCrowdedNiche  = "Crowded Niche"
)

var (
	keywordQuadrants   = []string{QuadrantStrongholds, QuadrantPriorityTargets, QuadrantNicheWins, QuadrantMonitor}
	gapQuadrants       = []string{QuadrantCriticalGaps, QuadrantContestedGaps, QuadrantNicheGaps, QuadrantMinorGaps}
	blueOceanQuadrants = []string{QuadrantBlueOcean, QuadrantEmerging, QuadrantUntappedNiche, QuadrantCrowdedNiche}
)

// QuadrantKeyword is one keyword placed in a 2×2 view.
type QuadrantKeyword struct {
	Keyword          string `json:"keyword"`
	Location         string `json:"location"`
	SearchVolume     int64  `json:"searchVolume"`
	Position         *int   `json:"position"`
	Competitor       string `json:"competitor,omitempty"`
	Quadrant         string `json:"quadrant"`
	PotentialTraffic int64  `json:"potentialTraffic,omitempty"`
}

// QuadrantSummary aggregates one quadrant.
type QuadrantSummary struct {
	Name        string `json:"name"`
	Count       int    `json:"count"`
	TotalVolume int64  `json:"totalVolume"`
}

// QuadrantResult is the shared shape of the 2×2 views.
type QuadrantResult struct {
	Percentile      float64           `json:"percentile"`
	VolumeThreshold int64             `json:"volumeThreshold"`
	Total           int               `json:"total"`
	Quadrants       []QuadrantSummary `json:"quadrants"`
	Keywords        []QuadrantKeyword `json:"keywords"`
}

// pick returns one of four quadrants: high volume first, then whether the rank condition holds.
func pick(order []string, high, cond bool) string {
	switch {
	case high && cond:
		return order[0]
	case high:
		return order[1]
	case cond:
		return order[2]
	default:
		return order[3]
	}
}

// buildQuadrants summarizes rows and sorts them by quadrant order, then volume.
func buildQuadrants(order []string, p float64, threshold int64, rows []QuadrantKeyword, limit int) QuadrantResult {
	rank := make(map[string]int, len(order))
	res := QuadrantResult{
		Percentile:      p,
		VolumeThreshold: threshold,
		Total:           len(rows),
		Quadrants:       make([]QuadrantSummary, len(order)),
	}
	for i, name := range order {
		rank[name] = i
		res.Quadrants[i].Name = name
	}
	for _, r := range rows {
		q := &res.Quadrants[rank[r.Quadrant]]
		q.Count++
		q.TotalVolume += r.SearchVolume
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rank[rows[i].Quadrant] != rank[rows[j].Quadrant] {
			return rank[rows[i].Quadrant] < rank[rows[j].Quadrant]
		}
		if rows[i].SearchVolume != rows[j].SearchVolume {
			return rows[i].SearchVolume > rows[j].SearchVolume
		}
		if rows[i].Keyword != rows[j].Keyword {
			return rows[i].Keyword < rows[j].Keyword
		}
		return rows[i].Location < rows[j].Location
	})
	if rows == nil {
		rows = []QuadrantKeyword{}
	}
	res.Keywords = truncate(rows, limit)
	return res
}

func volumesOf(vols map[keywordKey]int64, keys []keywordKey) []int64 {
	out := make([]int64, 0, len(keys))
	for _, k := range keys {
		out = append(out, vols[k])
	}
	return out
}

// keywordQuadrant crosses the P70 volume threshold with whether the client ranks in the top 10.
func keywordQuadrant(s *Snapshot, cfg models.QueryConfig) (any, error) {
	vols := s.trackedVolumes(cfg.Location)
	keys := sortedKeys(vols)
	threshold := analysis.RankPercentile(volumesOf(vols, keys), analysis.QuadrantPercentile)

	own := s.ownership()
	clientBest := s.bestPositions(cfg.Location, own.is)

	rows := make([]QuadrantKeyword, 0, len(keys))
	for _, k := range keys {
		pos := positionPtr(clientBest, k)
		top10 := pos != nil && *pos <= 10
		rows = append(rows, QuadrantKeyword{
			Keyword:      k.keyword,
			Location:     k.location,
			SearchVolume: vols[k],
			Position:     pos,
			Quadrant:     pick(keywordQuadrants, vols[k] >= threshold, top10),
		})
	}
	return buildQuadrants(keywordQuadrants, analysis.QuadrantPercentile, threshold, rows, cfg.Limit), nil
}

// competitorGap covers keywords where the client has no ranking but a competitor does.
// The P70 threshold is computed over the gap set only.
func competitorGap(s *Snapshot, cfg models.QueryConfig) (any, error) {
	vols := s.trackedVolumes(cfg.Location)
	own := s.ownership()
	clientBest := s.bestPositions(cfg.Location, own.is)
	rivals := rivalIndex(s.Rivals())
	rivalBest, rivalDomain := s.bestRivalPositions(cfg.Location, rivals)

	var keys []keywordKey
	for _, k := range sortedKeys(vols) {
		if _, clientRanks := clientBest[k]; clientRanks {
			continue
		}
		if _, rivalRanks := rivalBest[k]; rivalRanks {
			keys = append(keys, k)
		}
	}
	threshold := analysis.RankPercentile(volumesOf(vols, keys), analysis.QuadrantPercentile)

	rows := make([]QuadrantKeyword, 0, len(keys))
	for _, k := range keys {
		pos := rivalBest[k]
		rival := rivals[rivalDomain[k]]
		rows = append(rows, QuadrantKeyword{
			Keyword:      k.keyword,
			Location:     k.location,
			SearchVolume: vols[k],
			Position:     &pos,
			Competitor:   rival.DisplayName(),
			Quadrant:     pick(gapQuadrants, vols[k] >= threshold, pos <= 10),
		})
	}
	return buildQuadrants(gapQuadrants, analysis.QuadrantPercentile, threshold, rows, cfg.Limit), nil
}

// BlueOcean adds the traffic available to a first-place ranking.
type BlueOcean struct {
	QuadrantResult
	TotalPotentialTraffic int64 `json:"totalPotentialTraffic"`
}

// blueOcean covers keywords nobody tracked ranks in the top 10 for. The P50 threshold is
// crossed with whether the best observed rank leaves the field open (none or beyond 30).
func blueOcean(s *Snapshot, cfg models.QueryConfig) (any, error) {
	vols := s.trackedVolumes(cfg.Location)
	anyBest := s.bestPositions(cfg.Location, func(string) bool { return true })

	var keys []keywordKey
	for _, k := range sortedKeys(vols) {
		if p, ok := anyBest[k]; ok && p <= 10 {
			continue
		}
		keys = append(keys, k)
	}
	threshold := analysis.RankPercentile(volumesOf(vols, keys), analysis.BlueOceanPercentile)

	out := BlueOcean{}
	rows := make([]QuadrantKeyword, 0, len(keys))
	for _, k := range keys {
		pos := positionPtr(anyBest, k)
		open := pos == nil || *pos > 30
		potential := analysis.EstimateTraffic(vols[k], 1)
		out.TotalPotentialTraffic += potential
		rows = append(rows, QuadrantKeyword{
			Keyword:          k.keyword,
			Location:         k.location,
			SearchVolume:     vols[k],
			Position:         pos,
			Quadrant:         pick(blueOceanQuadrants, vols[k] >= threshold, open),
			PotentialTraffic: potential,
		})
	}
	out.QuadrantResult = buildQuadrants(blueOceanQuadrants, analysis.BlueOceanPercentile, threshold, rows, cfg.Limit)
	return out, nil
}
