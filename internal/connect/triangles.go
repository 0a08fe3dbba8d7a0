// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package connect

import (
	"github.com/pdiddy/connection-engine/pkg/types"
)

// FindTriangles lists three-way connections in the hint graph: triples
// whose three pairwise hints all exist and whose three source domains are
// pairwise distinct.
//
// For each hint (A,B) with A.Key < B.Key, candidate Cs come from
// intersecting A's and B's neighbor sets, keeping only C.Key > B.Key so
// every triangle is emitted exactly once. Neighbor-set intersection beats
// brute-force triple iteration on the sparse graph the similarity floor
// leaves behind.
func FindTriangles(hints []types.ConnectionHint) []types.ThreeWayConnection {
	if len(hints) == 0 {
		return nil
	}

	type edge struct {
		other      types.FilteredInsight
		similarity float64
	}

	neighbors := make(map[string]map[string]edge)
	addEdge := func(from, to types.FilteredInsight, sim float64) {
		m, ok := neighbors[from.Key]
		if !ok {
			m = make(map[string]edge)
			neighbors[from.Key] = m
		}
		m[to.Key] = edge{other: to, similarity: sim}
	}
	for _, h := range hints {
		addEdge(h.A, h.B, h.Similarity)
		addEdge(h.B, h.A, h.Similarity)
	}

	var triangles []types.ThreeWayConnection
	for _, h := range hints {
		if h.A.SourceDomain == h.B.SourceDomain {
			continue
		}

		// Intersect the smaller neighbor set against the larger.
		na, nb := neighbors[h.A.Key], neighbors[h.B.Key]
		small, big := na, nb
		swapped := false
		if len(nb) < len(na) {
			small, big = nb, na
			swapped = true
		}
		for key, es := range small {
			// Canonical ordering: only C beyond B closes this triangle here.
			if key <= h.B.Key {
				continue
			}
			eb, ok := big[key]
			if !ok {
				continue
			}
			c := es.other
			if c.SourceDomain == h.A.SourceDomain || c.SourceDomain == h.B.SourceDomain {
				continue
			}

			simAC, simBC := es.similarity, eb.similarity
			if swapped {
				simAC, simBC = eb.similarity, es.similarity
			}

			triangles = append(triangles, types.ThreeWayConnection{
				A:                 h.A,
				B:                 h.B,
				C:                 c,
				SimilarityAB:      h.Similarity,
				SimilarityAC:      simAC,
				SimilarityBC:      simBC,
				AverageSimilarity: (h.Similarity + simAC + simBC) / 3,
			})
		}
	}
	return triangles
}
