package models

import (
	"fmt"
	"sort"
	"strings"
)

// Bucket is a closed set of keyword classification labels.
type Bucket string

const (
	BucketUnassigned Bucket = "unassigned"
	BucketInclude    Bucket = "include"
	BucketBrand      Bucket = "brand"
	BucketReview     Bucket = "review"
	BucketExclude    Bucket = "exclude"
)

// Buckets lists every bucket in display order.
var Buckets = []Bucket{BucketInclude, BucketBrand, BucketReview, BucketExclude, BucketUnassigned}

// Label returns the canonical display label.
func (b Bucket) Label() string {
	switch b {
	case BucketInclude:
		return "Include | Buy"
	case BucketBrand:
		return "Brand"
	case BucketReview:
		return "Review"
	case BucketExclude:
		return "Exclude | Noise"
	default:
		return "Unassigned"
	}
}

// bucketAliases maps a compacted label (lowercase, no spaces) to its bucket.
var bucketAliases = map[string]Bucket{
	"":                BucketUnassigned,
	"unset":           BucketUnassigned,
	"unassigned":      BucketUnassigned,
	"none":            BucketUnassigned,
	"include":         BucketInclude,
	"buy":             BucketInclude,
	"include|buy":     BucketInclude,
	"brand":           BucketBrand,
	"review":          BucketReview,
	"research":        BucketReview,
	"review|research": BucketReview,
	"exclude":         BucketExclude,
	"noise":           BucketExclude,
	"exclude|noise":   BucketExclude,
}

// ParseBucket normalizes a user-supplied label. Case and whitespace are ignored, so
// "include", "include|buy" and "Include | Buy" all resolve to BucketInclude.
func ParseBucket(label string) (Bucket, error) {
	compact := strings.ToLower(strings.Join(strings.Fields(label), ""))
	if b, ok := bucketAliases[compact]; ok {
		return b, nil
	}
	return BucketUnassigned, fmt.Errorf("unknown bucket label %q", label)
}

// NormalizeTerm trims and lowercases a dictionary term or keyword.
func NormalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// TermEntry is one curated term-to-bucket assignment.
type TermEntry struct {
	Term   string `json:"term"`
	Bucket Bucket `json:"bucket"`
}

// AIProfile carries a client's curated term dictionary as stored in the flat-file collection.
// TermDictionary holds per-term labels; the bucket lists are the same data grouped by bucket.
type AIProfile struct {
	ClientCode     string            `json:"clientCode"`
	TermDictionary map[string]string `json:"termDictionary,omitempty"`
	IncludeTerms   []string          `json:"includeTerms,omitempty"`
	BrandTerms     []string          `json:"brandTerms,omitempty"`
	ReviewTerms    []string          `json:"reviewTerms,omitempty"`
	ExcludeTerms   []string          `json:"excludeTerms,omitempty"`
}

// Entries converts the loosely typed profile into term entries. Bucket lists come first,
// then dictionary labels in term order. Entries with unknown labels are dropped and
// reported in rejected; unassigned entries are kept so they can shadow substring matches.
func (p *AIProfile) Entries() (entries []TermEntry, rejected []string) {
	lists := []struct {
		bucket Bucket
		terms  []string
	}{
		{BucketBrand, p.BrandTerms},
		{BucketInclude, p.IncludeTerms},
		{BucketReview, p.ReviewTerms},
		{BucketExclude, p.ExcludeTerms},
	}
	for _, l := range lists {
		for _, t := range l.terms {
			if NormalizeTerm(t) == "" {
				continue
			}
			entries = append(entries, TermEntry{Term: t, Bucket: l.bucket})
		}
	}

	terms := make([]string, 0, len(p.TermDictionary))
	for t := range p.TermDictionary {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	for _, t := range terms {
		if NormalizeTerm(t) == "" {
			continue
		}
		b, err := ParseBucket(p.TermDictionary[t])
		if err != nil {
			rejected = append(rejected, fmt.Sprintf("%s=%s", t, p.TermDictionary[t]))
			continue
		}
		entries = append(entries, TermEntry{Term: t, Bucket: b})
	}
	return entries, rejected
}
