// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dictionary

import (
	"github.com/pdiddy/connection-engine/pkg/types"
)

// Dictionaries holds the four term sets for one analysis run.
type Dictionaries struct {
	Industry *Dictionary
	Audience *Dictionary
	Category *Dictionary
	Pain     PainTable
}

// industryExpansions maps a normalized industry string to related terms.
// Raw terms with no entry fall back to themselves verbatim.
var industryExpansions = map[string][]string{
	"e commerce": {
		"ecommerce", "online retail", "online store", "checkout", "cart",
		"shopify", "marketplace", "fulfillment", "conversion rate",
	},
	"saas": {
		"software", "subscription", "cloud", "platform", "onboarding",
		"churn", "integration", "api",
	},
	"fitness": {
		"gym", "workout", "training", "wellness", "membership", "exercise",
	},
	"restaurants": {
		"restaurant", "dining", "menu", "delivery", "takeout", "reservation",
		"food service",
	},
	"real estate": {
		"property", "listing", "mortgage", "rental", "broker", "housing",
	},
	"healthcare": {
		"health", "patient", "clinic", "telehealth", "insurance", "provider",
	},
	"logistics": {
		"shipping", "freight", "warehouse", "supply chain", "delivery",
		"last mile",
	},
	"finance": {
		"banking", "payments", "lending", "fintech", "investment", "compliance",
	},
	"education": {
		"learning", "course", "student", "curriculum", "tuition", "enrollment",
	},
	"travel": {
		"booking", "hotel", "flight", "itinerary", "tourism", "hospitality",
	},
}

// audienceExpansions maps a normalized audience or role string to related terms.
var audienceExpansions = map[string][]string{
	"small business owner": {
		"small business", "smb", "owner", "entrepreneur", "founder",
		"self employed",
	},
	"operations manager": {
		"operations", "ops", "process", "efficiency", "workflow", "manager",
	},
	"marketing manager": {
		"marketing", "campaign", "brand", "acquisition", "growth", "cmo",
	},
	"developer": {
		"engineer", "developer", "programmer", "devops", "software team",
	},
	"parent": {
		"parents", "family", "kids", "children", "household",
	},
	"freelancer": {
		"freelance", "contractor", "gig", "independent", "solo",
	},
	"executive": {
		"ceo", "cfo", "coo", "leadership", "board", "c suite",
	},
	"retailer": {
		"retail", "merchant", "store owner", "shopkeeper", "seller",
	},
}

// BuildDictionaries constructs the Industry, Audience, and Category
// dictionaries from the profile and attaches the pain table. It never
// fails: unexpandable terms are kept verbatim, and a degenerate profile
// yields single-term dictionaries.
func BuildDictionaries(profile types.BusinessProfile, pain PainTable) Dictionaries {
	industry := NewDictionary("industry")
	expandInto(industry, profile.Industry, industryExpansions)
	if industry.Len() == 0 {
		// Worst case is a single generic term, never an empty gate.
		industry.Add("business")
	}

	audience := NewDictionary("audience")
	for _, a := range profile.Audience {
		expandInto(audience, a, audienceExpansions)
	}
	if audience.Len() == 0 {
		audience.Add("customer")
	}

	category := NewDictionary("category")
	for _, c := range profile.Categories {
		category.Add(c)
		for _, tok := range tokenize(c) {
			// Individual words carry less weight than the full category term.
			category.AddWeighted(tok, 0.5)
		}
	}

	return Dictionaries{
		Industry: industry,
		Audience: audience,
		Category: category,
		Pain:     pain,
	}
}

// expandInto adds the raw term plus any expansion-table entries for it.
func expandInto(d *Dictionary, raw string, table map[string][]string) {
	norm := NormalizeTerm(raw)
	if norm == "" {
		return
	}
	d.Add(norm)
	for _, related := range table[norm] {
		d.Add(related)
	}
}
