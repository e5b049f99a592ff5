package queries

import (
	"seodash/internal/analysis"
	"seodash/internal/models"
)

// BucketSummary aggregates the keywords resolved to one bucket.
type BucketSummary struct {
	Bucket      models.Bucket `json:"bucket"`
	Label       string        `json:"label"`
	Count       int           `json:"count"`
	TotalVolume int64         `json:"totalVolume"`
	Terms       int           `json:"dictionaryTerms"`
}

// ClassifiedKeyword is a tracked keyword with the rule that classified it.
type ClassifiedKeyword struct {
	Keyword      string `json:"keyword"`
	SearchVolume int64  `json:"searchVolume"`
	Label        string `json:"label"`
	analysis.Resolution
}

// TermBuckets is the bucket distribution of the client's tracked keywords.
type TermBuckets struct {
	TotalKeywords int                 `json:"totalKeywords"`
	Buckets       []BucketSummary     `json:"buckets"`
	Keywords      []ClassifiedKeyword `json:"keywords"`
}

func termBuckets(s *Snapshot, cfg models.QueryConfig) (any, error) {
	cls := s.Classifier()

	// Keywords are classified by text, so locations collapse at max volume.
	vols := make(map[keywordKey]int64)
	for k, v := range s.trackedVolumes(cfg.Location) {
		text := keywordKey{keyword: k.keyword}
		if cur, ok := vols[text]; !ok || v > cur {
			vols[text] = v
		}
	}

	out := TermBuckets{
		TotalKeywords: len(vols),
		Buckets:       make([]BucketSummary, len(models.Buckets)),
		Keywords:      make([]ClassifiedKeyword, 0, len(vols)),
	}
	index := make(map[models.Bucket]int, len(models.Buckets))
	for i, b := range models.Buckets {
		index[b] = i
		out.Buckets[i] = BucketSummary{Bucket: b, Label: b.Label(), Terms: len(cls.Terms(b))}
	}

	for _, k := range sortedKeys(vols) {
		res := cls.Classify(k.keyword)
		sum := &out.Buckets[index[res.Bucket]]
		sum.Count++
		sum.TotalVolume += vols[k]
		out.Keywords = append(out.Keywords, ClassifiedKeyword{
			Keyword:      k.keyword,
			SearchVolume: vols[k],
			Label:        res.Bucket.Label(),
			Resolution:   res,
		})
	}
	out.Keywords = truncate(out.Keywords, cfg.Limit)

	return out, nil
}
