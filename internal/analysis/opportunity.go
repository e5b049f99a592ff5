package analysis

// RankBucket groups a client position.
type RankBucket string

const (
	RankTop    RankBucket = "Top"
	RankMedium RankBucket = "Medium"
	RankLow    RankBucket = "Low"
)

// VolumeBucket groups a keyword volume against the top-share threshold.
type VolumeBucket string

const (
	VolumeHigh VolumeBucket = "High"
	VolumeLow  VolumeBucket = "Low"
)

// Opportunity types.
const (
	OpportunityCoreAssets     = "Core Assets"
	OpportunityDoingNothing   = "Doing Nothing"
	OpportunityLowHanging     = "Low-Hanging Fruit"
	OpportunitySecondPriority = "Second Priority"
	OpportunityLongTerm       = "Long-Term Opportunity"
	OpportunityCanIgnore      = "Can Ignore"
)

// Priority levels.
const (
	PriorityCritical   = "Critical"
	PriorityVeryHigh   = "Very High"
	PriorityMediumHigh = "Medium-High"
	PriorityMedium     = "Medium"
	PriorityLow        = "Low"
	PriorityNone       = "None"
)

// OpportunityTypes lists every type in priority order.
var OpportunityTypes = []string{
	OpportunityCoreAssets,
	OpportunityLowHanging,
	OpportunityLongTerm,
	OpportunitySecondPriority,
	OpportunityDoingNothing,
	OpportunityCanIgnore,
}

// Opportunity is the classification of a (rank, volume) pair.
type Opportunity struct {
	Type        string `json:"opportunityType"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
}

type matrixKey struct {
	rank   RankBucket
	volume VolumeBucket
}

var opportunityMatrix = map[matrixKey]Opportunity{
	{RankTop, VolumeHigh}: {
		OpportunityCoreAssets, PriorityCritical,
		"Top-10 rankings on high-volume keywords. Protect these positions.",
	},
	{RankTop, VolumeLow}: {
		OpportunityDoingNothing, PriorityLow,
		"Already ranking in the top 10 for low-volume keywords. No action needed.",
	},
	{RankMedium, VolumeHigh}: {
		OpportunityLowHanging, PriorityVeryHigh,
		"High-volume keywords ranking 11-30. A small push can reach page one.",
	},
	{RankMedium, VolumeLow}: {
		OpportunitySecondPriority, PriorityMedium,
		"Low-volume keywords ranking 11-30. Improve after the low-hanging fruit.",
	},
	{RankLow, VolumeHigh}: {
		OpportunityLongTerm, PriorityMediumHigh,
		"High-volume keywords ranking beyond 30 or not at all. Needs sustained content investment.",
	},
	{RankLow, VolumeLow}: {
		OpportunityCanIgnore, PriorityNone,
		"Low-volume keywords ranking beyond 30 or not at all. Safe to ignore.",
	},
}

var priorityRank = map[string]int{
	PriorityCritical:   0,
	PriorityVeryHigh:   1,
	PriorityMediumHigh: 2,
	PriorityMedium:     3,
	PriorityLow:        4,
	PriorityNone:       5,
}

// PriorityOrder returns a sort key for a priority level; unknown levels sort last.
func PriorityOrder(priority string) int {
	if r, ok := priorityRank[priority]; ok {
		return r
	}
	return len(priorityRank)
}

// ClassifyRank buckets a position: ≤10 Top, 11–30 Medium, beyond 30 or unranked Low.
func ClassifyRank(position *int) RankBucket {
	if position == nil || *position < 1 {
		return RankLow
	}
	switch {
	case *position <= 10:
		return RankTop
	case *position <= 30:
		return RankMedium
	default:
		return RankLow
	}
}

// ClassifyVolume buckets a volume against the threshold: ≥ threshold is High.
func ClassifyVolume(volume, threshold int64) VolumeBucket {
	if volume >= threshold {
		return VolumeHigh
	}
	return VolumeLow
}

// ClassifyOpportunity maps a (rank, volume) pair to its opportunity. Every pair has exactly one outcome.
func ClassifyOpportunity(rank RankBucket, volume VolumeBucket) Opportunity {
	if rank != RankTop && rank != RankMedium {
		rank = RankLow
	}
	if volume != VolumeHigh {
		volume = VolumeLow
	}
	return opportunityMatrix[matrixKey{rank, volume}]
}
