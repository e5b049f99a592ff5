package queries

import (
	"sort"

	"seodash/internal/analysis"
	"seodash/internal/models"
)

// DomainTraffic is the modeled organic traffic of one competitor.
type DomainTraffic struct {
	Domain         string  `json:"domain"`
	Name           string  `json:"name"`
	Traffic        int64   `json:"traffic"`
	TrafficPercent float64 `json:"trafficPercent"`
	RankedKeywords int     `json:"rankedKeywords"`
}

// MarketSize estimates the share of the keyword market captured by the client and its competitors.
type MarketSize struct {
	TotalMarketVolume    int64           `json:"totalMarketVolume"`
	UniqueKeywords       int             `json:"uniqueKeywords"`
	ClientTraffic        int64           `json:"clientTraffic"`
	ClientTrafficPercent float64         `json:"clientTrafficPercent"`
	ClientKeywords       int             `json:"clientRankedKeywords"`
	Competitors          []DomainTraffic `json:"competitors"`
}

func marketSize(s *Snapshot, cfg models.QueryConfig) (any, error) {
	// Market keywords are unique by text across locations, at their max volume.
	market := make(map[string]int64)
	for k, v := range s.trackedVolumes(cfg.Location) {
		if cur, ok := market[k.keyword]; !ok || v > cur {
			market[k.keyword] = v
		}
	}

	var total int64
	for _, v := range market {
		total += v
	}

	own := s.ownership()
	clientTraffic, clientKeywords := trafficFor(s, cfg.Location, market, own.is)

	out := MarketSize{
		TotalMarketVolume:    total,
		UniqueKeywords:       len(market),
		ClientTraffic:        clientTraffic,
		ClientTrafficPercent: analysis.SharePercent(clientTraffic, total),
		ClientKeywords:       clientKeywords,
		Competitors:          []DomainTraffic{},
	}

	rivals := rivalIndex(s.Rivals())
	for domain, rival := range rivals {
		traffic, ranked := trafficFor(s, cfg.Location, market, func(d string) bool {
			r, ok := rivalOf(d, rivals)
			return ok && r == domain
		})
		out.Competitors = append(out.Competitors, DomainTraffic{
			Domain:         domain,
			Name:           rival.DisplayName(),
			Traffic:        traffic,
			TrafficPercent: analysis.SharePercent(traffic, total),
			RankedKeywords: ranked,
		})
	}
	sort.Slice(out.Competitors, func(i, j int) bool {
		if out.Competitors[i].Traffic != out.Competitors[j].Traffic {
			return out.Competitors[i].Traffic > out.Competitors[j].Traffic
		}
		return out.Competitors[i].Domain < out.Competitors[j].Domain
	})
	out.Competitors = truncate(out.Competitors, cfg.Limit)

	return out, nil
}

// trafficFor sums the estimated traffic of the best position per unique keyword over
// records whose domain passes include.
func trafficFor(s *Snapshot, filter string, market map[string]int64, include func(string) bool) (int64, int) {
	best := make(map[string]int)
	for k, p := range s.bestPositions(filter, include) {
		if cur, ok := best[k.keyword]; !ok || p < cur {
			best[k.keyword] = p
		}
	}

	var traffic int64
	for kw, p := range best {
		traffic += analysis.EstimateTraffic(market[kw], p)
	}
	return traffic, len(best)
}
