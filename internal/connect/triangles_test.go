// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package connect

import (
	"math"
	"testing"
	"time"

	"github.com/pdiddy/connection-engine/pkg/types"
)

func hint(a, b types.FilteredInsight, sim float64) types.ConnectionHint {
	if a.Key > b.Key {
		a, b = b, a
	}
	return types.ConnectionHint{A: a, B: b, Similarity: sim}
}

func TestFindTrianglesBasic(t *testing.T) {
	now := time.Now()
	a := insight("a", types.DomainConsumerReviews, now)
	b := insight("b", types.DomainWeatherFeeds, now)
	c := insight("c", types.DomainSearchTrends, now)

	hints := []types.ConnectionHint{
		hint(a, b, 0.90),
		hint(a, c, 0.80),
		hint(b, c, 0.70),
	}

	triangles := FindTriangles(hints)
	if len(triangles) != 1 {
		t.Fatalf("len(triangles) = %d, want 1", len(triangles))
	}
	tri := triangles[0]
	if tri.A.Key != "a" || tri.B.Key != "b" || tri.C.Key != "c" {
		t.Errorf("members = (%s, %s, %s), want (a, b, c)", tri.A.Key, tri.B.Key, tri.C.Key)
	}
	if tri.SimilarityAB != 0.90 || tri.SimilarityAC != 0.80 || tri.SimilarityBC != 0.70 {
		t.Errorf("similarities = (%.2f, %.2f, %.2f), want (0.90, 0.80, 0.70)",
			tri.SimilarityAB, tri.SimilarityAC, tri.SimilarityBC)
	}
	if math.Abs(tri.AverageSimilarity-0.80) > 1e-9 {
		t.Errorf("AverageSimilarity = %.4f, want 0.80", tri.AverageSimilarity)
	}
}

func TestFindTrianglesRequiresDistinctDomains(t *testing.T) {
	now := time.Now()
	a := insight("a", types.DomainForumPosts, now)
	b := insight("b", types.DomainForumPosts, now)
	c := insight("c", types.DomainSearchTrends, now)

	hints := []types.ConnectionHint{
		hint(a, b, 0.9),
		hint(a, c, 0.9),
		hint(b, c, 0.9),
	}
	if triangles := FindTriangles(hints); len(triangles) != 0 {
		t.Errorf("len(triangles) = %d, want 0 when two members share a domain", len(triangles))
	}
}

func TestFindTrianglesRequiresAllThreeEdges(t *testing.T) {
	now := time.Now()
	a := insight("a", types.DomainConsumerReviews, now)
	b := insight("b", types.DomainWeatherFeeds, now)
	c := insight("c", types.DomainSearchTrends, now)

	hints := []types.ConnectionHint{
		hint(a, b, 0.9),
		hint(a, c, 0.9),
	}
	if triangles := FindTriangles(hints); len(triangles) != 0 {
		t.Errorf("len(triangles) = %d, want 0 with a missing edge", len(triangles))
	}
}

func TestFindTrianglesEmittedOnce(t *testing.T) {
	now := time.Now()
	// Four insights, four distinct domains, complete graph: C(4,3) = 4
	// triangles, each exactly once.
	members := []types.FilteredInsight{
		insight("a", types.DomainConsumerReviews, now),
		insight("b", types.DomainWeatherFeeds, now),
		insight("c", types.DomainSearchTrends, now),
		insight("d", types.DomainSECFilings, now),
	}
	var hints []types.ConnectionHint
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			hints = append(hints, hint(members[i], members[j], 0.8))
		}
	}

	triangles := FindTriangles(hints)
	if len(triangles) != 4 {
		t.Fatalf("len(triangles) = %d, want 4", len(triangles))
	}
	seen := make(map[string]bool)
	for _, tri := range triangles {
		id := tri.A.Key + tri.B.Key + tri.C.Key
		if seen[id] {
			t.Errorf("triangle %s emitted twice", id)
		}
		seen[id] = true
		if !(tri.A.Key < tri.B.Key && tri.B.Key < tri.C.Key) {
			t.Errorf("triangle %s not in canonical key order", id)
		}
	}
}

func TestFindTrianglesNoHints(t *testing.T) {
	if triangles := FindTriangles(nil); triangles != nil {
		t.Errorf("FindTriangles(nil) = %v, want nil", triangles)
	}
}
