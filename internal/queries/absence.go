package queries

import (
	"strconv"
	"strings"

	"seodash/internal/models"
	"seodash/internal/validation"
)

// unrankedLabel is shown when the client has no recorded position.
const unrankedLabel = ">100"

// AbsentKeyword is a tracked keyword where the client is outside the top 10.
type AbsentKeyword struct {
	Keyword        string `json:"keyword"`
	Location       string `json:"location"`
	SearchVolume   int64  `json:"searchVolume"`
	ClientRank     string `json:"clientRank"`
	ClientPosition *int   `json:"clientPosition"`
	TopCompetitor  string `json:"topCompetitor,omitempty"`
	CompetitorRank *int   `json:"competitorRank,omitempty"`
}

// KeywordsAbsence lists tracked keywords the client does not rank on page one for.
type KeywordsAbsence struct {
	TotalTracked int             `json:"totalTracked"`
	TotalAbsent  int             `json:"totalAbsent"`
	Keywords     []AbsentKeyword `json:"keywords"`
}

func keywordsAbsence(s *Snapshot, cfg models.QueryConfig) (any, error) {
	vols := make(map[keywordKey]int64)
	for _, r := range s.KeywordAPI {
		if !matchesLocation(r.Location, cfg.Location) {
			continue
		}
		k := recordKey(r.Keyword, r.Location)
		if k.keyword == "" {
			continue
		}
		if cur, ok := vols[k]; !ok || r.SearchVolume > cur {
			vols[k] = r.SearchVolume
		}
	}
	// SERP records can carry a fresher volume for a tracked keyword.
	for _, r := range s.DomainKeywords {
		k := recordKey(r.Keyword, r.Location)
		if cur, ok := vols[k]; ok && r.SearchVolume > cur {
			vols[k] = r.SearchVolume
		}
	}

	own := s.ownership()
	clientBest := s.bestPositions(cfg.Location, own.is)
	rivals := rivalIndex(s.Rivals())
	rivalBest, rivalDomain := s.bestRivalPositions(cfg.Location, rivals)

	out := KeywordsAbsence{TotalTracked: len(vols), Keywords: []AbsentKeyword{}}
	for _, k := range sortedKeys(vols) {
		pos := positionPtr(clientBest, k)
		if pos != nil && *pos <= 10 {
			continue
		}
		row := AbsentKeyword{
			Keyword:        k.keyword,
			Location:       k.location,
			SearchVolume:   vols[k],
			ClientRank:     unrankedLabel,
			ClientPosition: pos,
		}
		if pos != nil {
			row.ClientRank = strconv.Itoa(*pos)
		}
		if p, ok := rivalBest[k]; ok {
			rival := rivals[rivalDomain[k]]
			row.TopCompetitor = rival.DisplayName()
			row.CompetitorRank = &p
		}
		out.Keywords = append(out.Keywords, row)
	}

	out.TotalAbsent = len(out.Keywords)
	out.Keywords = truncate(out.Keywords, cfg.Limit)
	return out, nil
}

// rivalIndex maps normalized rival domains to their rows.
func rivalIndex(rivals []models.Competitor) map[string]models.Competitor {
	idx := make(map[string]models.Competitor, len(rivals))
	for _, r := range rivals {
		idx[r.Domain] = r
	}
	return idx
}

// rivalOf returns the rival domain that domain belongs to, matching subdomains too.
func rivalOf(domain string, rivals map[string]models.Competitor) (string, bool) {
	d := validation.NormalizeDomain(domain)
	for d != "" {
		if _, ok := rivals[d]; ok {
			return d, true
		}
		dot := strings.IndexByte(d, '.')
		if dot < 0 {
			break
		}
		d = d[dot+1:]
	}
	return "", false
}

// bestRivalPositions returns the best rival position per keyword and the rival holding it.
// Ties go to the alphabetically first domain.
func (s *Snapshot) bestRivalPositions(filter string, rivals map[string]models.Competitor) (map[keywordKey]int, map[keywordKey]string) {
	best := make(map[keywordKey]int)
	holder := make(map[keywordKey]string)
	for i := range s.DomainKeywords {
		r := &s.DomainKeywords[i]
		if !r.Ranked() || !matchesLocation(r.Location, filter) {
			continue
		}
		d, ok := rivalOf(r.Domain, rivals)
		if !ok {
			continue
		}
		k := recordKey(r.Keyword, r.Location)
		cur, seen := best[k]
		if !seen || *r.Position < cur || (*r.Position == cur && d < holder[k]) {
			best[k] = *r.Position
			holder[k] = d
		}
	}
	return best, holder
}
