package queries

import (
	"sort"

	"seodash/internal/models"
	"seodash/internal/validation"
)

const defaultRankingSample = 5

// RankedKeyword is one of the client's ranking keywords.
type RankedKeyword struct {
	Keyword      string `json:"keyword"`
	Location     string `json:"location"`
	Domain       string `json:"domain"`
	Position     int    `json:"position"`
	SearchVolume int64  `json:"searchVolume"`
}

// ClientRankings counts the distinct keywords the client ranks for per location.
// The top-10 counters hold keywords ranked below the top 3, up to position 100.
type ClientRankings struct {
	Domains             []string        `json:"domains"`
	UniqueTop3India     int             `json:"uniqueTop3India"`
	UniqueTop10India    int             `json:"uniqueTop10India"`
	UniqueTop3Global    int             `json:"uniqueTop3Global"`
	UniqueTop10Global   int             `json:"uniqueTop10Global"`
	TotalRankedKeywords int             `json:"totalRankedKeywords"`
	Keywords            []RankedKeyword `json:"keywords"`
}

func clientRankings(s *Snapshot, cfg models.QueryConfig) (any, error) {
	own := s.ownership()

	best := make(map[keywordKey]RankedKeyword)
	for i := range s.DomainKeywords {
		r := &s.DomainKeywords[i]
		if !r.Ranked() || !matchesLocation(r.Location, cfg.Location) || !own.is(r.Domain) {
			continue
		}
		k := recordKey(r.Keyword, r.Location)
		if k.keyword == "" {
			continue
		}
		cur, ok := best[k]
		if ok && (cur.Position < *r.Position || (cur.Position == *r.Position && cur.SearchVolume >= r.SearchVolume)) {
			continue
		}
		best[k] = RankedKeyword{
			Keyword:      k.keyword,
			Location:     k.location,
			Domain:       validation.NormalizeDomain(r.Domain),
			Position:     *r.Position,
			SearchVolume: r.SearchVolume,
		}
	}

	out := ClientRankings{
		Domains:             s.OwnedDomains(),
		TotalRankedKeywords: len(best),
	}
	perLocation := make(map[string][]RankedKeyword)
	for _, rk := range best {
		top3 := rk.Position <= 3
		switch {
		case rk.Location == models.LocationIndia && top3:
			out.UniqueTop3India++
		case rk.Location == models.LocationIndia:
			out.UniqueTop10India++
		case top3:
			out.UniqueTop3Global++
		default:
			out.UniqueTop10Global++
		}
		perLocation[rk.Location] = append(perLocation[rk.Location], rk)
	}

	sample := cfg.LimitOr(defaultRankingSample)
	out.Keywords = []RankedKeyword{}
	for _, loc := range []string{models.LocationIndia, models.LocationGlobal} {
		rows := perLocation[loc]
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].SearchVolume != rows[j].SearchVolume {
				return rows[i].SearchVolume > rows[j].SearchVolume
			}
			if rows[i].Position != rows[j].Position {
				return rows[i].Position < rows[j].Position
			}
			return rows[i].Keyword < rows[j].Keyword
		})
		out.Keywords = append(out.Keywords, truncate(rows, sample)...)
	}

	return out, nil
}
