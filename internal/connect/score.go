// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package connect

import (
	"math"
	"sort"
	"time"

	"github.com/pdiddy/connection-engine/pkg/types"
)

// boostSpan is the width of the category boost range (1.0 to 1.3) used to
// project boosts onto the 0-100 topical relevance scale.
const boostSpan = 0.3

// Scorer turns hints and triangles into ranked connection scores. It is
// built once per run; now is fixed at construction so two rankings of the
// same inputs agree.
type Scorer struct {
	cfg   types.ScoringConfig
	adj   Adjacency
	floor float64
	now   time.Time
}

// NewScorer builds a scorer. floor is the similarity floor the hints were
// generated with, needed to re-derive unexpectedness for triangle edges.
func NewScorer(cfg types.ScoringConfig, adj Adjacency, floor float64, now time.Time) *Scorer {
	return &Scorer{cfg: cfg, adj: adj, floor: floor, now: now}
}

// Rank scores every hint and triangle, sorts descending by final score, and
// truncates to the configured top N. Ties rank three-way connections ahead
// of pairs, then earlier-fetched evidence ahead of later.
func (s *Scorer) Rank(hints []types.ConnectionHint, triangles []types.ThreeWayConnection) []types.ConnectionScore {
	scores := make([]types.ConnectionScore, 0, len(hints)+len(triangles))
	for i := range hints {
		scores = append(scores, s.scoreHint(&hints[i]))
	}
	for i := range triangles {
		scores = append(scores, s.scoreTriangle(&triangles[i]))
	}

	sort.SliceStable(scores, func(i, j int) bool {
		a, b := scores[i], scores[j]
		if a.FinalScore != b.FinalScore {
			return a.FinalScore > b.FinalScore
		}
		if a.IsThreeWay() != b.IsThreeWay() {
			return a.IsThreeWay()
		}
		return a.EarliestFetch().Before(b.EarliestFetch())
	})

	if s.cfg.TopN > 0 && len(scores) > s.cfg.TopN {
		scores = scores[:s.cfg.TopN]
	}
	return scores
}

func (s *Scorer) scoreHint(h *types.ConnectionHint) types.ConnectionScore {
	score := types.ConnectionScore{
		Hint:                 h,
		SemanticSimilarity:   h.Similarity * 100,
		Unexpectedness:       h.Unexpectedness,
		TopicalRelevance:     topicalRelevance(h.A.CategoryBoost, h.B.CategoryBoost),
		CompetitiveAdvantage: s.cfg.CompetitiveAdvantage,
		Timeliness:           s.timeliness(h.EarliestFetch()),
	}
	s.finish(&score)
	return score
}

func (s *Scorer) scoreTriangle(t *types.ThreeWayConnection) types.ConnectionScore {
	// A triangle's unexpectedness is its most surprising edge.
	unexp := s.edgeUnexpectedness(t.A, t.B, t.SimilarityAB)
	if u := s.edgeUnexpectedness(t.A, t.C, t.SimilarityAC); u > unexp {
		unexp = u
	}
	if u := s.edgeUnexpectedness(t.B, t.C, t.SimilarityBC); u > unexp {
		unexp = u
	}

	score := types.ConnectionScore{
		ThreeWay:             t,
		SemanticSimilarity:   t.AverageSimilarity * 100,
		Unexpectedness:       unexp,
		TopicalRelevance:     topicalRelevance(t.A.CategoryBoost, t.B.CategoryBoost, t.C.CategoryBoost),
		CompetitiveAdvantage: s.cfg.CompetitiveAdvantage,
		Timeliness:           s.timeliness(t.EarliestFetch()),
		ThreeWayBonus:        s.cfg.ThreeWayBonus,
	}
	s.finish(&score)
	return score
}

func (s *Scorer) edgeUnexpectedness(a, b types.FilteredInsight, sim float64) float64 {
	return Unexpectedness(s.adj.Classify(a.SourceDomain, b.SourceDomain), sim, s.floor)
}

// finish computes the weighted composite, applies the bonus, clamps to
// [0, 100], and assigns the tier.
func (s *Scorer) finish(score *types.ConnectionScore) {
	w := s.cfg.Weights
	final := w.Similarity*score.SemanticSimilarity +
		w.Unexpectedness*score.Unexpectedness +
		w.TopicalRelevance*score.TopicalRelevance +
		w.CompetitiveAdvantage*score.CompetitiveAdvantage +
		w.Timeliness*score.Timeliness +
		score.ThreeWayBonus
	score.FinalScore = clamp(final, 0, 100)
	score.Tier = types.TierFor(score.FinalScore)
}

// timeliness decays exponentially from 100 with the configured half-life.
// A non-positive half-life disables decay.
func (s *Scorer) timeliness(fetchedAt time.Time) float64 {
	if s.cfg.TimelinessHalfLife <= 0 {
		return 100
	}
	age := s.now.Sub(fetchedAt)
	if age <= 0 {
		return 100
	}
	halves := float64(age) / float64(s.cfg.TimelinessHalfLife)
	return 100 * math.Pow(0.5, halves)
}

// topicalRelevance projects the mean category boost of the member insights
// onto 0-100: no boost scores 0, the full 1.3 boost scores 100.
func topicalRelevance(boosts ...float64) float64 {
	var sum float64
	for _, b := range boosts {
		sum += b
	}
	mean := sum / float64(len(boosts))
	return clamp((mean-1.0)/boostSpan*100, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
