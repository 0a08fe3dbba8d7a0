// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dictionary

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"

	"github.com/pdiddy/connection-engine/pkg/types"
)

// InsightKey generates a stable identifier from insight text. The key is
// the first 16 hex characters of SHA-256(text), consistent across runs so
// cached embeddings survive restarts.
func InsightKey(text string) string {
	h := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%x", h)[:16]
}

// Filter checks one insight against the industry, audience, and pain
// dictionaries. It returns nil when the insight matches none of the three;
// otherwise it returns a FilteredInsight whose Matched set is non-empty and
// whose CategoryBoost reflects the category-dictionary match.
//
// The stage is a recall gate, not a ranking step: matching any single
// dictionary is enough to survive.
func Filter(in types.RawInsight, dicts Dictionaries, boostMax float64) *types.FilteredInsight {
	doc := Prepare(in.Text)

	var matched []types.FilterMatch
	if dicts.Industry.Matches(doc) {
		matched = append(matched, types.MatchIndustry)
	}
	if dicts.Audience.Matches(doc) {
		matched = append(matched, types.MatchAudience)
	}
	if dicts.Pain.ForDomain(in.SourceDomain).Matches(doc) {
		matched = append(matched, types.MatchPain)
	}
	if len(matched) == 0 {
		return nil
	}

	return &types.FilteredInsight{
		RawInsight:    in,
		Key:           InsightKey(in.Text),
		Matched:       matched,
		CategoryBoost: categoryBoost(doc, dicts.Category, boostMax),
	}
}

// categoryBoost interpolates between 1.0 (no category match) and boostMax
// (full match). Partial phrase matches land in between, e.g. 1.15 at the
// default 1.3 maximum.
func categoryBoost(doc Document, category *Dictionary, boostMax float64) float64 {
	if category == nil || category.Len() == 0 {
		return 1.0
	}
	weight := category.MatchWeight(doc)
	if weight > 1.0 {
		weight = 1.0
	}
	return 1.0 + (boostMax-1.0)*weight
}

// FilterAll runs the dictionary filter over all insights with a bounded
// worker pool. Order is irrelevant downstream, so shards append to their
// own slice and results are concatenated. Returns the survivors and the
// dropped count.
func FilterAll(ctx context.Context, insights []types.RawInsight, dicts Dictionaries, cfg types.FilterConfig) ([]types.FilteredInsight, int) {
	if len(insights) == 0 {
		return nil, 0
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	if workers > len(insights) {
		workers = len(insights)
	}

	boostMax := cfg.CategoryBoostMax
	if boostMax < 1.0 {
		boostMax = 1.3
	}

	shards := make([][]types.FilteredInsight, workers)
	var wg sync.WaitGroup

	chunk := (len(insights) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > len(insights) {
			end = len(insights)
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(shard int, batch []types.RawInsight) {
			defer wg.Done()
			for _, in := range batch {
				if ctx.Err() != nil {
					return
				}
				if fi := Filter(in, dicts, boostMax); fi != nil {
					shards[shard] = append(shards[shard], *fi)
				}
			}
		}(w, insights[start:end])
	}
	wg.Wait()

	var survivors []types.FilteredInsight
	for _, s := range shards {
		survivors = append(survivors, s...)
	}
	return survivors, len(insights) - len(survivors)
}
