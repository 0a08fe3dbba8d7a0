// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package connect

import (
	"context"
	"sort"
	"sync"

	"github.com/pdiddy/connection-engine/internal/embed"
	"github.com/pdiddy/connection-engine/pkg/types"
)

// unexpectedness bands per domain relation.
const (
	sameBandLow      = 30.0
	sameBandHigh     = 50.0
	adjacentBandLow  = 50.0
	adjacentBandHigh = 80.0
	crossBandLow     = 80.0
	crossBandHigh    = 100.0
)

// band returns the unexpectedness range for a relation.
func band(rel types.DomainRelation) (lo, hi float64) {
	switch rel {
	case types.RelationSame:
		return sameBandLow, sameBandHigh
	case types.RelationAdjacent:
		return adjacentBandLow, adjacentBandHigh
	default:
		return crossBandLow, crossBandHigh
	}
}

// Unexpectedness places a pair inside its relation band. Higher similarity
// nudges the value toward the band's upper end, so scoring is reproducible
// given identical inputs.
func Unexpectedness(rel types.DomainRelation, similarity, floor float64) float64 {
	lo, hi := band(rel)
	span := 1.0 - floor
	if span <= 0 {
		return lo
	}
	frac := (similarity - floor) / span
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return lo + frac*(hi-lo)
}

// GenerateHints computes all pairwise connection hints among insights with
// resolved embeddings. Each unordered pair is evaluated exactly once
// (i < j over key-sorted insights, A before B), and only pairs at or above
// the similarity floor become hints.
//
// The i-loop is sharded across workers: similarity between two fixed
// vectors has no cross-shard dependency, and the scorer re-sorts anyway,
// so shard outputs are concatenated as they come.
func GenerateHints(ctx context.Context, insights []types.FilteredInsight, vectors map[string][]float32, adj Adjacency, cfg types.ConnectionConfig) []types.ConnectionHint {
	floor := cfg.SimilarityFloor

	// Only insights that actually resolved an embedding participate.
	pool := make([]types.FilteredInsight, 0, len(insights))
	for _, in := range insights {
		if _, ok := vectors[in.Key]; ok {
			pool = append(pool, in)
		}
	}
	pool = capPool(pool, cfg.MaxInsights)

	// Canonical pair order falls out of key-sorting the pool.
	sort.Slice(pool, func(i, j int) bool { return pool[i].Key < pool[j].Key })

	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	if workers > len(pool) {
		workers = len(pool)
	}
	if workers == 0 {
		return nil
	}

	shards := make([][]types.ConnectionHint, workers)
	var wg sync.WaitGroup

	// Stride partitioning of the outer index balances the triangular
	// workload better than contiguous ranges.
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(shard int) {
			defer wg.Done()
			for i := shard; i < len(pool); i += workers {
				if ctx.Err() != nil {
					return
				}
				vi := vectors[pool[i].Key]
				for j := i + 1; j < len(pool); j++ {
					sim := embed.CosineSimilarity(vi, vectors[pool[j].Key])
					if sim < floor {
						continue
					}
					rel := adj.Classify(pool[i].SourceDomain, pool[j].SourceDomain)
					shards[shard] = append(shards[shard], types.ConnectionHint{
						A:              pool[i],
						B:              pool[j],
						Similarity:     sim,
						Relation:       rel,
						Unexpectedness: Unexpectedness(rel, sim, floor),
					})
				}
			}
		}(w)
	}
	wg.Wait()

	var hints []types.ConnectionHint
	for _, s := range shards {
		hints = append(hints, s...)
	}
	return hints
}

// capPool guards the O(n²) comparison. When the pool exceeds the cap it
// keeps the newest insights per domain, trimming the most over-represented
// domains first, rather than silently scaling to thousands of pairs.
func capPool(pool []types.FilteredInsight, maxInsights int) []types.FilteredInsight {
	if maxInsights <= 0 || len(pool) <= maxInsights {
		return pool
	}

	byDomain := make(map[types.SourceDomain][]types.FilteredInsight)
	for _, in := range pool {
		byDomain[in.SourceDomain] = append(byDomain[in.SourceDomain], in)
	}
	for _, group := range byDomain {
		sort.Slice(group, func(i, j int) bool {
			if !group[i].FetchedAt.Equal(group[j].FetchedAt) {
				return group[i].FetchedAt.After(group[j].FetchedAt)
			}
			return group[i].Key < group[j].Key
		})
	}

	domains := make([]types.SourceDomain, 0, len(byDomain))
	for d := range byDomain {
		domains = append(domains, d)
	}
	sort.Slice(domains, func(i, j int) bool { return domains[i] < domains[j] })

	// Round-robin across domains, newest first, until the cap is reached.
	capped := make([]types.FilteredInsight, 0, maxInsights)
	for rank := 0; len(capped) < maxInsights; rank++ {
		advanced := false
		for _, d := range domains {
			group := byDomain[d]
			if rank >= len(group) {
				continue
			}
			advanced = true
			capped = append(capped, group[rank])
			if len(capped) == maxInsights {
				break
			}
		}
		if !advanced {
			break
		}
	}
	return capped
}
