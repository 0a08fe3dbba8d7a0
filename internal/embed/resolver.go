// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package embed

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/pdiddy/connection-engine/pkg/types"
)

// backoffBase controls the base duration for per-batch exponential backoff.
// Tests override this to avoid real sleeps.
var backoffBase = time.Second

// Resolver obtains embedding vectors for filtered insights: exact-text
// deduplication against the cache, bounded batches, a concurrency cap on
// in-flight provider calls, and per-batch retry. A batch that exhausts its
// retries is dropped and counted; a partial result always beats none.
type Resolver struct {
	embedder Embedder
	cache    *Cache
	cfg      types.EmbeddingConfig
}

// NewResolver builds a resolver around an embedder and a cache.
func NewResolver(embedder Embedder, cache *Cache, cfg types.EmbeddingConfig) *Resolver {
	return &Resolver{embedder: embedder, cache: cache, cfg: cfg}
}

// Resolve returns a map from insight key to embedding vector, plus the
// number of insights dropped to exhausted provider retries. Identical
// insight text resolves to one provider input regardless of how many
// insights carry it. Vectors already cached are never recomputed.
func (r *Resolver) Resolve(ctx context.Context, insights []types.FilteredInsight, w io.Writer) (map[string][]float32, int, error) {
	resolved := make(map[string][]float32, len(insights))

	// Dedup by key: identical text shares one embedding.
	pending := make(map[string]string) // key → text
	for _, in := range insights {
		if vec, ok := r.cache.Get(in.Key); ok {
			resolved[in.Key] = vec
			continue
		}
		pending[in.Key] = in.Text
	}
	if len(pending) == 0 {
		return resolved, 0, nil
	}

	batchSize := r.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 64
	}
	concurrency := r.cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	// Deterministic batch composition: identical inputs produce identical
	// provider calls across runs.
	keys := make([]string, 0, len(pending))
	for key := range pending {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	type batch struct {
		keys  []string
		texts []string
	}
	var batches []batch
	current := batch{}
	for _, key := range keys {
		current.keys = append(current.keys, key)
		current.texts = append(current.texts, pending[key])
		if len(current.keys) == batchSize {
			batches = append(batches, current)
			current = batch{}
		}
	}
	if len(current.keys) > 0 {
		batches = append(batches, current)
	}

	var (
		mu      sync.Mutex
		dropped int
		wg      sync.WaitGroup
		sem     = make(chan struct{}, concurrency)
	)

	for i, b := range batches {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(n int, b batch) {
			defer wg.Done()
			defer func() { <-sem }()

			vectors, err := r.embedBatchWithRetry(ctx, b.texts)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// Dropped insights never reach the hint generator; the
				// run proceeds on whatever embeddings were obtained.
				dropped += len(b.keys)
				fmt.Fprintf(w, "warning: embedding batch %d dropped (%d insights): %v\n", n, len(b.keys), err)
				return
			}
			for i, key := range b.keys {
				r.cache.Put(key, vectors[i])
				resolved[key] = vectors[i]
			}
		}(i, b)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		// A cancelled run discards partial results instead of half-merging.
		return nil, 0, err
	}
	return resolved, dropped, nil
}

// embedBatchWithRetry calls the provider with exponential backoff between
// attempts. The context is checked before every wait so a caller-imposed
// deadline aborts cleanly mid-retry.
func (r *Resolver) embedBatchWithRetry(ctx context.Context, texts []string) ([][]float32, error) {
	maxRetries := r.cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		vectors, err := r.embedder.EmbedBatch(ctx, texts)
		if err == nil {
			if len(vectors) != len(texts) {
				return nil, fmt.Errorf("provider returned %d vectors for %d texts", len(vectors), len(texts))
			}
			return vectors, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
}
