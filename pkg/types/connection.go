// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DomainRelation classifies the domain relationship of an insight pair.
type DomainRelation string

const (
	RelationSame     DomainRelation = "same"
	RelationAdjacent DomainRelation = "adjacent"
	RelationCross    DomainRelation = "cross"
)

// ConnectionHint is an unordered pair of filtered insights whose cosine
// similarity cleared the configured floor. Exactly one hint exists per
// unordered pair: A's key always sorts before B's.
type ConnectionHint struct {
	// A and B are the two insights, ordered by Key.
	A FilteredInsight `json:"a" yaml:"a"`
	B FilteredInsight `json:"b" yaml:"b"`

	// Similarity is the cosine similarity of the pair's embeddings, in
	// [floor, 1].
	Similarity float64 `json:"similarity" yaml:"similarity"`

	// Relation classifies the two source domains.
	Relation DomainRelation `json:"relation" yaml:"relation"`

	// Unexpectedness is 0-100, banded by Relation: same domain [30,50],
	// adjacent [50,80], cross [80,100].
	Unexpectedness float64 `json:"unexpectedness" yaml:"unexpectedness"`
}

// Domains returns the pair's source domains in A, B order.
func (h ConnectionHint) Domains() (SourceDomain, SourceDomain) {
	return h.A.SourceDomain, h.B.SourceDomain
}

// EarliestFetch returns the older of the two fetch timestamps.
func (h ConnectionHint) EarliestFetch() time.Time {
	if h.A.FetchedAt.Before(h.B.FetchedAt) {
		return h.A.FetchedAt
	}
	return h.B.FetchedAt
}

// ThreeWayConnection is a triangle in the hint graph: three insights,
// pairwise similar above the floor, from three pairwise-distinct domains.
type ThreeWayConnection struct {
	// A, B, C are the three insights, ordered by Key.
	A FilteredInsight `json:"a" yaml:"a"`
	B FilteredInsight `json:"b" yaml:"b"`
	C FilteredInsight `json:"c" yaml:"c"`

	// SimilarityAB, SimilarityAC, SimilarityBC are the three pairwise
	// cosine similarities.
	SimilarityAB float64 `json:"similarity_ab" yaml:"similarity_ab"`
	SimilarityAC float64 `json:"similarity_ac" yaml:"similarity_ac"`
	SimilarityBC float64 `json:"similarity_bc" yaml:"similarity_bc"`

	// AverageSimilarity is the mean of the three pairwise similarities.
	AverageSimilarity float64 `json:"average_similarity" yaml:"average_similarity"`
}

// Insights returns the three members in canonical order.
func (t ThreeWayConnection) Insights() []FilteredInsight {
	return []FilteredInsight{t.A, t.B, t.C}
}

// EarliestFetch returns the oldest of the three fetch timestamps.
func (t ThreeWayConnection) EarliestFetch() time.Time {
	earliest := t.A.FetchedAt
	if t.B.FetchedAt.Before(earliest) {
		earliest = t.B.FetchedAt
	}
	if t.C.FetchedAt.Before(earliest) {
		earliest = t.C.FetchedAt
	}
	return earliest
}

// ImpactTier labels a final score for downstream consumers.
type ImpactTier string

const (
	TierBreakthrough ImpactTier = "breakthrough"
	TierHighValue    ImpactTier = "high-value"
	TierGood         ImpactTier = "good"
	TierSupporting   ImpactTier = "supporting"
)

// TierFor returns the impact tier for a clamped final score.
func TierFor(score float64) ImpactTier {
	switch {
	case score >= 85:
		return TierBreakthrough
	case score >= 80:
		return TierHighValue
	case score >= 60:
		return TierGood
	default:
		return TierSupporting
	}
}

// ConnectionScore is the final ranked output record. Exactly one of Hint or
// ThreeWay is set.
type ConnectionScore struct {
	Hint     *ConnectionHint     `json:"hint,omitempty" yaml:"hint,omitempty"`
	ThreeWay *ThreeWayConnection `json:"three_way,omitempty" yaml:"three_way,omitempty"`

	// SemanticSimilarity is the raw cosine scaled to 0-100.
	SemanticSimilarity float64 `json:"semantic_similarity" yaml:"semantic_similarity"`

	// Unexpectedness is the pair's (or for three-ways, the maximum
	// member pair's) unexpectedness, 0-100.
	Unexpectedness float64 `json:"unexpectedness" yaml:"unexpectedness"`

	// TopicalRelevance is 0-100, derived upstream from the category boost.
	TopicalRelevance float64 `json:"topical_relevance" yaml:"topical_relevance"`

	// CompetitiveAdvantage is 0-100, supplied per run.
	CompetitiveAdvantage float64 `json:"competitive_advantage" yaml:"competitive_advantage"`

	// Timeliness is 0-100, derived upstream from fetch recency.
	Timeliness float64 `json:"timeliness" yaml:"timeliness"`

	// ThreeWayBonus is the additive bonus applied to three-way connections,
	// zero for pairs.
	ThreeWayBonus float64 `json:"three_way_bonus" yaml:"three_way_bonus"`

	// FinalScore is the weighted composite clamped to [0, 100].
	FinalScore float64 `json:"final_score" yaml:"final_score"`

	// Tier labels FinalScore for downstream consumers.
	Tier ImpactTier `json:"tier" yaml:"tier"`
}

// IsThreeWay reports whether the record references a three-way connection.
func (s ConnectionScore) IsThreeWay() bool {
	return s.ThreeWay != nil
}

// EarliestFetch returns the oldest fetch timestamp among the referenced
// insights. Used as the final sort tie-breaker.
func (s ConnectionScore) EarliestFetch() time.Time {
	if s.ThreeWay != nil {
		return s.ThreeWay.EarliestFetch()
	}
	return s.Hint.EarliestFetch()
}

// RunSummary holds per-stage counts for one analysis run.
type RunSummary struct {
	// TotalInsights is the raw insight count the run started with.
	TotalInsights int `json:"total_insights" yaml:"total_insights"`

	// FilteredOut is how many insights matched no dictionary and were dropped.
	FilteredOut int `json:"filtered_out" yaml:"filtered_out"`

	// EmbedDropped is how many surviving insights lost their embedding to
	// exhausted provider retries.
	EmbedDropped int `json:"embed_dropped" yaml:"embed_dropped"`

	// Hints is the number of pairwise connections above the floor.
	Hints int `json:"hints" yaml:"hints"`

	// Triangles is the number of three-way connections found.
	Triangles int `json:"triangles" yaml:"triangles"`

	// Emitted is the number of ranked scores returned after top-N truncation.
	Emitted int `json:"emitted" yaml:"emitted"`
}

// AnalysisResult is the run-level output: ranked scores plus observability
// counts. Partial provider failures surface only in the summary.
type AnalysisResult struct {
	// RunID uniquely identifies this analysis run.
	RunID string `json:"run_id" yaml:"run_id"`

	// Scores is sorted descending by FinalScore, truncated to top-N.
	Scores []ConnectionScore `json:"scores" yaml:"scores"`

	Summary RunSummary `json:"summary" yaml:"summary"`
}
