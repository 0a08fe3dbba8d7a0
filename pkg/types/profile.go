// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// BusinessProfile describes the business subject of an analysis run.
// Consumed once by the dictionary builder. A degenerate profile (empty
// fields) degrades to single-term dictionaries, it never fails the run.
type BusinessProfile struct {
	// Industry is the target industry (e.g. "e-commerce").
	Industry string `json:"industry" yaml:"industry"`

	// Audience lists audience or role descriptions (e.g. "operations manager").
	Audience []string `json:"audience" yaml:"audience"`

	// Categories lists product or category terms (e.g. "checkout software").
	Categories []string `json:"categories" yaml:"categories"`
}

// IsEmpty reports whether the profile carries no terms at all.
func (p BusinessProfile) IsEmpty() bool {
	return p.Industry == "" && len(p.Audience) == 0 && len(p.Categories) == 0
}
