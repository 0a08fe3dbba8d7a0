// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dictionary builds term dictionaries from a business profile and
// applies them as the coarse relevance gate in front of embedding analysis.
package dictionary

import (
	"sort"
	"strings"
	"unicode"
)

// Dictionary is a named, deduplicated set of lowercase terms with a weight
// per term. Built once per run, read-only afterwards.
type Dictionary struct {
	Name string

	// tokens holds single-word terms for O(1) membership checks.
	tokens map[string]float64

	// phrases holds multi-word terms, matched against the normalized
	// token stream.
	phrases map[string]float64
}

// NewDictionary returns an empty dictionary with the given name.
func NewDictionary(name string) *Dictionary {
	return &Dictionary{
		Name:    name,
		tokens:  make(map[string]float64),
		phrases: make(map[string]float64),
	}
}

// Add inserts a term with weight 1.0. Terms are normalized to lowercase
// single-space form; empty terms and duplicates are ignored.
func (d *Dictionary) Add(term string) {
	d.AddWeighted(term, 1.0)
}

// AddWeighted inserts a term with an explicit weight. An existing entry
// keeps the higher weight.
func (d *Dictionary) AddWeighted(term string, weight float64) {
	norm := NormalizeTerm(term)
	if norm == "" {
		return
	}
	target := d.tokens
	if strings.ContainsRune(norm, ' ') {
		target = d.phrases
	}
	if existing, ok := target[norm]; !ok || weight > existing {
		target[norm] = weight
	}
}

// Len returns the number of distinct terms.
func (d *Dictionary) Len() int {
	return len(d.tokens) + len(d.phrases)
}

// Terms returns all terms in sorted order, for display and tests.
func (d *Dictionary) Terms() []string {
	terms := make([]string, 0, d.Len())
	for t := range d.tokens {
		terms = append(terms, t)
	}
	for p := range d.phrases {
		terms = append(terms, p)
	}
	sort.Strings(terms)
	return terms
}

// Matches reports whether the prepared document contains any term.
func (d *Dictionary) Matches(doc Document) bool {
	return d.MatchWeight(doc) > 0
}

// MatchWeight returns the highest weight among matching terms, with a half
// credit for multi-word phrases whose words all appear individually but not
// in sequence. Zero means no match at all.
func (d *Dictionary) MatchWeight(doc Document) float64 {
	var best float64
	for tok, w := range d.tokens {
		if doc.tokenSet[tok] && w > best {
			best = w
		}
	}
	for phrase, w := range d.phrases {
		if strings.Contains(doc.joined, " "+phrase+" ") {
			if w > best {
				best = w
			}
			continue
		}
		// Partial credit: every word of the phrase present, out of sequence.
		if doc.hasAllWords(phrase) && w/2 > best {
			best = w / 2
		}
	}
	return best
}

// Document is a normalized insight text prepared once so that every
// dictionary check runs in time linear in the text length.
type Document struct {
	// joined is the lowercase token stream with sentinel spaces on both
	// ends, so phrase containment respects word boundaries.
	joined string

	tokenSet map[string]bool
}

// Prepare normalizes text for dictionary matching.
func Prepare(text string) Document {
	tokens := tokenize(text)
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return Document{
		joined:   " " + strings.Join(tokens, " ") + " ",
		tokenSet: set,
	}
}

func (doc Document) hasAllWords(phrase string) bool {
	for _, w := range strings.Fields(phrase) {
		if !doc.tokenSet[w] {
			return false
		}
	}
	return true
}

// NormalizeTerm lowercases a term and collapses it to single-space form,
// stripping punctuation the tokenizer would drop.
func NormalizeTerm(term string) string {
	return strings.Join(tokenize(term), " ")
}

// tokenize splits text into lowercase alphanumeric words.
func tokenize(text string) []string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Fields(b.String())
}
