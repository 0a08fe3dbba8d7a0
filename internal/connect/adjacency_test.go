// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package connect

import (
	"testing"

	"github.com/pdiddy/connection-engine/pkg/types"
)

func TestClassifyDefaults(t *testing.T) {
	adj := NewAdjacency(nil)

	tests := []struct {
		name string
		x, y types.SourceDomain
		want types.DomainRelation
	}{
		{"same domain", types.DomainForumPosts, types.DomainForumPosts, types.RelationSame},
		{"adjacent consumer signals", types.DomainConsumerReviews, types.DomainForumPosts, types.RelationAdjacent},
		{"adjacent filings", types.DomainSECFilings, types.DomainRegulatory, types.RelationAdjacent},
		{"cross reviews vs weather", types.DomainConsumerReviews, types.DomainWeatherFeeds, types.RelationCross},
		{"cross jobs vs trends", types.DomainJobPostings, types.DomainSearchTrends, types.RelationCross},
		{"unknown domain is cross", types.SourceDomain("carrier-pigeons"), types.DomainNewsFeeds, types.RelationCross},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adj.Classify(tt.x, tt.y); got != tt.want {
				t.Errorf("Classify(%s, %s) = %s, want %s", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestClassifyIsSymmetric(t *testing.T) {
	adj := NewAdjacency(nil)
	for x := range defaultAdjacency {
		for _, y := range defaultAdjacency[x] {
			if adj.Classify(x, y) != adj.Classify(y, x) {
				t.Errorf("Classify(%s, %s) != Classify(%s, %s)", x, y, y, x)
			}
		}
	}
}

func TestNewAdjacencyCustomTable(t *testing.T) {
	adj := NewAdjacency(map[types.SourceDomain][]types.SourceDomain{
		types.DomainPatents: {types.DomainPodcasts},
	})

	if got := adj.Classify(types.DomainPodcasts, types.DomainPatents); got != types.RelationAdjacent {
		t.Errorf("custom pair = %s, want adjacent (symmetric)", got)
	}
	// Default pairs are gone once a custom table is supplied.
	if got := adj.Classify(types.DomainSECFilings, types.DomainRegulatory); got != types.RelationCross {
		t.Errorf("default pair under custom table = %s, want cross", got)
	}
}
