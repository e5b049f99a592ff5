package analysis

import (
	"sort"
	"strings"

	"seodash/internal/models"
)

// Strategy names the resolution step that produced a bucket.
type Strategy string

const (
	StrategyExact     Strategy = "exact"
	StrategySubstring Strategy = "substring"
	StrategyDefault   Strategy = "default"
)

// substringOrder is the bucket order tried by the substring heuristic.
var substringOrder = []models.Bucket{
	models.BucketBrand,
	models.BucketInclude,
	models.BucketReview,
	models.BucketExclude,
}

// Resolution is the outcome of classifying one keyword.
type Resolution struct {
	Bucket   models.Bucket `json:"bucket"`
	Term     string        `json:"term,omitempty"`
	Strategy Strategy      `json:"strategy"`
}

type resolver func(c *Classifier, keyword string) (Resolution, bool)

// Classifier resolves keywords to buckets. Build one per request with NewClassifier;
// it is read-only afterwards.
type Classifier struct {
	exact     map[string]models.Bucket
	terms     map[models.Bucket][]string
	resolvers []resolver
}

// NewClassifier builds a classifier from curated entries and competitor brand aliases.
//
// Later entries override earlier ones for the same term, except that a term tagged brand
// anywhere (entries or aliases) is never tagged exclude. Aliases only fill terms the
// dictionary does not mention.
func NewClassifier(entries []models.TermEntry, brandAliases []string) *Classifier {
	brand := make(map[string]bool)
	for _, e := range entries {
		if e.Bucket == models.BucketBrand {
			brand[models.NormalizeTerm(e.Term)] = true
		}
	}
	for _, a := range brandAliases {
		if t := models.NormalizeTerm(a); t != "" {
			brand[t] = true
		}
	}

	exact := make(map[string]models.Bucket, len(entries)+len(brandAliases))
	for _, e := range entries {
		t := models.NormalizeTerm(e.Term)
		if t == "" {
			continue
		}
		if e.Bucket == models.BucketExclude && brand[t] {
			continue
		}
		exact[t] = e.Bucket
	}
	for _, a := range brandAliases {
		t := models.NormalizeTerm(a)
		if t == "" {
			continue
		}
		if _, ok := exact[t]; !ok {
			exact[t] = models.BucketBrand
		}
	}

	terms := make(map[models.Bucket][]string)
	for t, b := range exact {
		if b == models.BucketUnassigned {
			continue
		}
		terms[b] = append(terms[b], t)
	}
	for b := range terms {
		list := terms[b]
		sort.Slice(list, func(i, j int) bool {
			if len(list[i]) != len(list[j]) {
				return len(list[i]) > len(list[j])
			}
			return list[i] < list[j]
		})
	}

	return &Classifier{
		exact:     exact,
		terms:     terms,
		resolvers: []resolver{exactOverride, heuristicSubstring, fallback},
	}
}

// Classify resolves a keyword by trying exact override, substring heuristic and default in order.
func (c *Classifier) Classify(keyword string) Resolution {
	k := models.NormalizeTerm(keyword)
	for _, r := range c.resolvers {
		if res, ok := r(c, k); ok {
			return res
		}
	}
	return Resolution{Bucket: models.BucketUnassigned, Strategy: StrategyDefault}
}

// Matches reports whether keyword belongs to bucket. An exact dictionary entry decides alone;
// otherwise any term of the bucket contained in the keyword matches.
func (c *Classifier) Matches(keyword string, bucket models.Bucket) bool {
	k := models.NormalizeTerm(keyword)
	if k == "" {
		return false
	}
	if b, ok := c.exact[k]; ok {
		return b == bucket
	}
	return c.containsTerm(k, bucket) != ""
}

// Terms returns the terms of a bucket after sanitization, longest first.
func (c *Classifier) Terms(bucket models.Bucket) []string {
	out := make([]string, len(c.terms[bucket]))
	copy(out, c.terms[bucket])
	return out
}

func (c *Classifier) containsTerm(keyword string, bucket models.Bucket) string {
	for _, t := range c.terms[bucket] {
		if strings.Contains(keyword, t) {
			return t
		}
	}
	return ""
}

func exactOverride(c *Classifier, keyword string) (Resolution, bool) {
	b, ok := c.exact[keyword]
	if !ok || keyword == "" {
		return Resolution{}, false
	}
	return Resolution{Bucket: b, Term: keyword, Strategy: StrategyExact}, true
}

func heuristicSubstring(c *Classifier, keyword string) (Resolution, bool) {
	if keyword == "" {
		return Resolution{}, false
	}
	for _, b := range substringOrder {
		if t := c.containsTerm(keyword, b); t != "" {
			return Resolution{Bucket: b, Term: t, Strategy: StrategySubstring}, true
		}
	}
	return Resolution{}, false
}

func fallback(_ *Classifier, _ string) (Resolution, bool) {
	return Resolution{Bucket: models.BucketUnassigned, Strategy: StrategyDefault}, true
}
