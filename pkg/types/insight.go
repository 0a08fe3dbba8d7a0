// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// SourceDomain identifies the category of data source an insight came from.
// Unknown tags are valid input: they classify as fully cross-domain and use
// the catch-all pain dictionary.
type SourceDomain string

const (
	DomainConsumerReviews    SourceDomain = "consumer-reviews"
	DomainForumPosts         SourceDomain = "forum-posts"
	DomainSECFilings         SourceDomain = "sec-filings"
	DomainSocialProfessional SourceDomain = "social-professional"
	DomainSocialConsumer     SourceDomain = "social-consumer"
	DomainJobPostings        SourceDomain = "job-postings"
	DomainSearchTrends       SourceDomain = "search-trends"
	DomainNewsFeeds          SourceDomain = "news-feeds"
	DomainWeatherFeeds       SourceDomain = "weather-feeds"
	DomainRegulatory         SourceDomain = "regulatory"
	DomainPatents            SourceDomain = "patents"
	DomainPodcasts           SourceDomain = "podcasts"
)

// KnownDomains lists every domain the engine recognizes for pain-dictionary
// lookup and adjacency classification.
var KnownDomains = []SourceDomain{
	DomainConsumerReviews,
	DomainForumPosts,
	DomainSECFilings,
	DomainSocialProfessional,
	DomainSocialConsumer,
	DomainJobPostings,
	DomainSearchTrends,
	DomainNewsFeeds,
	DomainWeatherFeeds,
	DomainRegulatory,
	DomainPatents,
	DomainPodcasts,
}

// IsKnown reports whether d is one of the enumerated source domains.
func (d SourceDomain) IsKnown() bool {
	for _, k := range KnownDomains {
		if d == k {
			return true
		}
	}
	return false
}

// RawInsight is one scraped text snippet tagged with its source domain.
// Produced by the (external) acquisition layer, immutable once created.
type RawInsight struct {
	// Text is the snippet itself, typically one or two sentences.
	Text string `json:"text" yaml:"text"`

	// SourceDomain tags where the snippet was scraped from.
	SourceDomain SourceDomain `json:"source_domain" yaml:"source_domain"`

	// FetchedAt is when the acquisition layer obtained the snippet.
	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at"`
}

// FilterMatch names which dictionary an insight matched.
type FilterMatch string

const (
	MatchIndustry FilterMatch = "industry"
	MatchAudience FilterMatch = "audience"
	MatchPain     FilterMatch = "pain"
)

// FilteredInsight is a RawInsight that passed the dictionary filter.
// Matched is never empty: an insight matching none of industry, audience,
// or pain is dropped instead of constructed.
type FilteredInsight struct {
	RawInsight `yaml:",inline"`

	// Key is a stable identifier derived from the insight text, used to
	// associate embeddings and to order pairs canonically.
	Key string `json:"key" yaml:"key"`

	// Matched lists the dictionaries the insight text matched.
	Matched []FilterMatch `json:"matched" yaml:"matched"`

	// CategoryBoost is in [1.0, 1.3]: 1.3 for a full category-dictionary
	// match, intermediate values for partial matches, 1.0 otherwise.
	CategoryBoost float64 `json:"category_boost" yaml:"category_boost"`
}

// MatchedAny reports whether the insight matched the given filter.
func (f FilteredInsight) MatchedAny(m FilterMatch) bool {
	for _, got := range f.Matched {
		if got == m {
			return true
		}
	}
	return false
}
