package queries

import (
	"sort"

	"seodash/internal/analysis"
	"seodash/internal/models"
)

// OpportunityKeyword is one classified cell of the opportunity matrix.
type OpportunityKeyword struct {
	Keyword        string                `json:"keyword"`
	Location       string                `json:"location"`
	SearchVolume   int64                 `json:"searchVolume"`
	ClientPosition *int                  `json:"clientPosition"`
	RankBucket     analysis.RankBucket   `json:"rankBucket"`
	VolumeBucket   analysis.VolumeBucket `json:"volumeBucket"`
	analysis.Opportunity
}

// OpportunitySummary counts keywords per opportunity type. Counts always holds all six types.
type OpportunitySummary struct {
	Total  int            `json:"total"`
	Counts map[string]int `json:"counts"`
}

// OpportunityMatrix classifies purchase-intent keywords by client rank and volume.
type OpportunityMatrix struct {
	VolumeThreshold int64                `json:"volumeThreshold"`
	Summary         OpportunitySummary   `json:"summary"`
	Keywords        []OpportunityKeyword `json:"keywords"`
}

func opportunityMatrix(s *Snapshot, cfg models.QueryConfig) (any, error) {
	own := s.ownership()
	mains := make(map[string]models.Competitor)
	for _, r := range s.Rivals() {
		if r.IsMain() {
			mains[r.Domain] = r
		}
	}
	inScope := func(domain string) bool {
		if own.is(domain) {
			return true
		}
		_, ok := rivalOf(domain, mains)
		return ok
	}

	cls := s.Classifier()
	vols := make(map[keywordKey]int64)
	for i := range s.DomainKeywords {
		r := &s.DomainKeywords[i]
		if !matchesLocation(r.Location, cfg.Location) || !inScope(r.Domain) {
			continue
		}
		if !cls.Matches(r.Keyword, models.BucketInclude) || cls.Matches(r.Keyword, models.BucketBrand) {
			continue
		}
		k := recordKey(r.Keyword, r.Location)
		if cur, ok := vols[k]; !ok || r.SearchVolume > cur {
			vols[k] = r.SearchVolume
		}
	}

	volumes := make([]int64, 0, len(vols))
	for _, v := range vols {
		volumes = append(volumes, v)
	}
	threshold := analysis.TopPercentileThreshold(volumes, analysis.OpportunityTopShare)

	clientBest := s.bestPositions(cfg.Location, own.is)
	out := OpportunityMatrix{
		VolumeThreshold: threshold,
		Summary:         OpportunitySummary{Counts: make(map[string]int, len(analysis.OpportunityTypes))},
		Keywords:        make([]OpportunityKeyword, 0, len(vols)),
	}
	for _, t := range analysis.OpportunityTypes {
		out.Summary.Counts[t] = 0
	}

	for _, k := range sortedKeys(vols) {
		pos := positionPtr(clientBest, k)
		rank := analysis.ClassifyRank(pos)
		volume := analysis.ClassifyVolume(vols[k], threshold)
		opp := analysis.ClassifyOpportunity(rank, volume)

		out.Summary.Counts[opp.Type]++
		out.Keywords = append(out.Keywords, OpportunityKeyword{
			Keyword:        k.keyword,
			Location:       k.location,
			SearchVolume:   vols[k],
			ClientPosition: pos,
			RankBucket:     rank,
			VolumeBucket:   volume,
			Opportunity:    opp,
		})
	}
	out.Summary.Total = len(out.Keywords)

	// Rows are already in volume order; a stable sort keeps it within a priority.
	sort.SliceStable(out.Keywords, func(i, j int) bool {
		return analysis.PriorityOrder(out.Keywords[i].Priority) < analysis.PriorityOrder(out.Keywords[j].Priority)
	})
	out.Keywords = truncate(out.Keywords, cfg.Limit)

	return out, nil
}
