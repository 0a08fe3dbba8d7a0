// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package connect discovers cross-domain connections among embedded
// insights: pairwise similarity hints, triangle detection, and composite
// scoring.
package connect

import (
	"github.com/pdiddy/connection-engine/pkg/types"
)

// defaultAdjacency maps each domain to the domains whose signals commonly
// overlap with it. Pairs absent from the table (including any unknown
// domain) are fully cross-domain, which earns the highest unexpectedness
// band.
var defaultAdjacency = map[types.SourceDomain][]types.SourceDomain{
	types.DomainConsumerReviews: {
		types.DomainForumPosts,
		types.DomainSocialConsumer,
		types.DomainSearchTrends,
	},
	types.DomainForumPosts: {
		types.DomainConsumerReviews,
		types.DomainSocialConsumer,
	},
	types.DomainSocialConsumer: {
		types.DomainConsumerReviews,
		types.DomainForumPosts,
		types.DomainSearchTrends,
	},
	types.DomainSocialProfessional: {
		types.DomainJobPostings,
		types.DomainPodcasts,
	},
	types.DomainJobPostings: {
		types.DomainSocialProfessional,
	},
	types.DomainSearchTrends: {
		types.DomainConsumerReviews,
		types.DomainSocialConsumer,
		types.DomainNewsFeeds,
	},
	types.DomainNewsFeeds: {
		types.DomainSearchTrends,
		types.DomainWeatherFeeds,
	},
	types.DomainWeatherFeeds: {
		types.DomainNewsFeeds,
	},
	types.DomainSECFilings: {
		types.DomainRegulatory,
		types.DomainPatents,
	},
	types.DomainRegulatory: {
		types.DomainSECFilings,
	},
	types.DomainPatents: {
		types.DomainSECFilings,
	},
	types.DomainPodcasts: {
		types.DomainSocialProfessional,
	},
}

// Adjacency answers domain-relation queries for one run. Built once from
// config and read-only afterwards.
type Adjacency struct {
	pairs map[[2]types.SourceDomain]bool
}

// NewAdjacency builds the relation table. A nil or empty table uses the
// built-in defaults. Adjacency is symmetric regardless of which direction
// the table declares.
func NewAdjacency(table map[types.SourceDomain][]types.SourceDomain) Adjacency {
	if len(table) == 0 {
		table = defaultAdjacency
	}
	pairs := make(map[[2]types.SourceDomain]bool)
	for from, neighbors := range table {
		for _, to := range neighbors {
			pairs[[2]types.SourceDomain{from, to}] = true
			pairs[[2]types.SourceDomain{to, from}] = true
		}
	}
	return Adjacency{pairs: pairs}
}

// Classify returns the domain relation of a pair. Unknown domains never
// appear in the table, so they classify as cross-domain.
func (a Adjacency) Classify(x, y types.SourceDomain) types.DomainRelation {
	if x == y {
		return types.RelationSame
	}
	if a.pairs[[2]types.SourceDomain{x, y}] {
		return types.RelationAdjacent
	}
	return types.RelationCross
}
