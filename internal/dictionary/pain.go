// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dictionary

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/connection-engine/pkg/types"
)

// PainTable maps each source domain to its pain dictionary. Pain language
// differs by platform: review complaints read nothing like SEC risk
// disclosures. The table is loaded once per process and shared read-only
// across concurrent runs; it is explicit state passed into the filter, not
// a package-level mutable.
type PainTable struct {
	byDomain map[types.SourceDomain]*Dictionary
	catchAll *Dictionary
}

// ForDomain returns the pain dictionary for a domain, or the catch-all for
// unrecognized domains. Never nil.
func (p PainTable) ForDomain(d types.SourceDomain) *Dictionary {
	if dict, ok := p.byDomain[d]; ok {
		return dict
	}
	return p.catchAll
}

// Domains returns the domains with dedicated pain dictionaries.
func (p PainTable) Domains() []types.SourceDomain {
	domains := make([]types.SourceDomain, 0, len(p.byDomain))
	for _, d := range types.KnownDomains {
		if _, ok := p.byDomain[d]; ok {
			domains = append(domains, d)
		}
	}
	return domains
}

// defaultPainTerms is the built-in per-domain pain vocabulary.
var defaultPainTerms = map[types.SourceDomain][]string{
	types.DomainConsumerReviews: {
		"frustrating", "waste of money", "disappointed", "broken", "useless",
		"takes forever", "slow", "confusing", "overpriced", "refund",
		"never again", "terrible", "stopped working", "hidden fees",
	},
	types.DomainForumPosts: {
		"anyone else", "how do i", "struggling", "workaround", "cant figure out",
		"gave up", "rant", "is it just me", "annoying", "help",
	},
	types.DomainSECFilings: {
		"risk factor", "material weakness", "adverse effect", "litigation",
		"impairment", "regulatory scrutiny", "declining margins",
		"customer attrition", "supply constraints", "restructuring",
	},
	types.DomainSocialProfessional: {
		"burnout", "understaffed", "hiring freeze", "layoffs", "churn",
		"lost a client", "pipeline dried up", "budget cuts", "turnover",
	},
	types.DomainSocialConsumer: {
		"fail", "scam", "worst", "avoid", "ripoff", "cancelled",
		"unsubscribed", "done with", "never buying",
	},
	types.DomainJobPostings: {
		"fast paced", "wear many hats", "backlog", "technical debt",
		"urgent", "immediate start", "high volume", "scaling challenges",
	},
	types.DomainSearchTrends: {
		"alternative to", "vs", "cancel", "refund", "why is", "not working",
		"cheaper", "complaints", "problems with",
	},
	types.DomainNewsFeeds: {
		"shortage", "recall", "lawsuit", "outage", "breach", "strike",
		"price hike", "closure", "investigation",
	},
	types.DomainWeatherFeeds: {
		"storm", "heatwave", "flooding", "drought", "freeze", "disruption",
		"advisory", "severe",
	},
	types.DomainRegulatory: {
		"violation", "penalty", "non compliance", "enforcement", "recall",
		"ban", "deadline", "mandate", "fine",
	},
	types.DomainPatents: {
		"infringement", "prior art", "invalidation", "dispute", "expiring",
	},
	types.DomainPodcasts: {
		"biggest mistake", "struggled with", "almost failed", "hardest part",
		"pain point", "lesson learned",
	},
}

// catchAllPainTerms backs pain matching for unknown domains.
var catchAllPainTerms = []string{
	"problem", "issue", "struggle", "pain", "difficult", "expensive",
	"slow", "broken", "risk", "shortage", "complaint", "failure",
}

// DefaultPainTable builds the built-in pain table.
func DefaultPainTable() PainTable {
	byDomain := make(map[types.SourceDomain]*Dictionary, len(defaultPainTerms))
	for domain, terms := range defaultPainTerms {
		dict := NewDictionary("pain:" + string(domain))
		for _, t := range terms {
			dict.Add(t)
		}
		byDomain[domain] = dict
	}

	catchAll := NewDictionary("pain:cross-domain")
	for _, t := range catchAllPainTerms {
		catchAll.Add(t)
	}

	return PainTable{byDomain: byDomain, catchAll: catchAll}
}

// painTableFile is the YAML shape of a pain table override file: a map of
// domain to term list, with an optional "cross-domain" catch-all entry.
type painTableFile map[string][]string

// LoadPainTable reads a YAML override file and merges it over the built-in
// table. Domains present in the file replace the built-in entry; absent
// domains keep their defaults.
func LoadPainTable(path string) (PainTable, error) {
	table := DefaultPainTable()
	if path == "" {
		return table, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return PainTable{}, fmt.Errorf("reading pain table %s: %w", path, err)
	}

	var file painTableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return PainTable{}, fmt.Errorf("parsing pain table %s: %w", path, err)
	}

	for domain, terms := range file {
		dict := NewDictionary("pain:" + domain)
		for _, t := range terms {
			dict.Add(t)
		}
		if domain == "cross-domain" {
			table.catchAll = dict
			continue
		}
		table.byDomain[types.SourceDomain(domain)] = dict
	}

	return table, nil
}
