// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package embed

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pdiddy/connection-engine/pkg/types"
)

func init() {
	backoffBase = 1 * time.Millisecond
}

// fakeEmbedder returns a deterministic vector per text and can be scripted
// to fail batches containing a marker text.
type fakeEmbedder struct {
	mu        sync.Mutex
	calls     int
	seenTexts []string
	failOn    string
	failCount int
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.seenTexts = append(f.seenTexts, texts...)

	for _, text := range texts {
		if f.failOn != "" && strings.Contains(text, f.failOn) {
			f.failCount++
			return nil, fmt.Errorf("simulated provider failure")
		}
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = []float32{float32(len(text)), 1, 0}
	}
	return vectors, nil
}

func resolverCfg() types.EmbeddingConfig {
	return types.EmbeddingConfig{
		BatchSize:   4,
		Concurrency: 2,
		MaxRetries:  1,
	}
}

func makeInsights(texts ...string) []types.FilteredInsight {
	insights := make([]types.FilteredInsight, len(texts))
	for i, text := range texts {
		insights[i] = types.FilteredInsight{
			RawInsight: types.RawInsight{Text: text, SourceDomain: types.DomainForumPosts},
			Key:        fmt.Sprintf("key-%s", text),
			Matched:    []types.FilterMatch{types.MatchPain},
		}
	}
	return insights
}

func TestResolveAll(t *testing.T) {
	f := &fakeEmbedder{}
	r := NewResolver(f, NewCache(), resolverCfg())

	var buf bytes.Buffer
	resolved, dropped, err := r.Resolve(context.Background(), makeInsights("a", "bb", "ccc"), &buf)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if dropped != 0 {
		t.Errorf("dropped = %d, want 0", dropped)
	}
	if len(resolved) != 3 {
		t.Fatalf("len(resolved) = %d, want 3", len(resolved))
	}
	if v := resolved["key-bb"]; v[0] != 2 {
		t.Errorf("vector for 'bb' = %v, want first component 2", v)
	}
}

func TestResolveDeduplicatesIdenticalText(t *testing.T) {
	f := &fakeEmbedder{}
	r := NewResolver(f, NewCache(), resolverCfg())

	insights := makeInsights("same", "same", "same", "other")
	// Identical text shares a key, so only two distinct texts remain.
	var buf bytes.Buffer
	resolved, _, err := r.Resolve(context.Background(), insights, &buf)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(resolved) != 2 {
		t.Errorf("len(resolved) = %d, want 2 distinct keys", len(resolved))
	}
	if len(f.seenTexts) != 2 {
		t.Errorf("provider saw %d texts, want 2 after dedup", len(f.seenTexts))
	}
}

func TestResolveCacheHitSkipsProvider(t *testing.T) {
	f := &fakeEmbedder{}
	cache := NewCache()
	cache.Put("key-warm", []float32{42, 0, 0})
	r := NewResolver(f, cache, resolverCfg())

	var buf bytes.Buffer
	resolved, _, err := r.Resolve(context.Background(), makeInsights("warm"), &buf)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if f.calls != 0 {
		t.Errorf("provider calls = %d, want 0 on full cache hit", f.calls)
	}
	if v := resolved["key-warm"]; v[0] != 42 {
		t.Errorf("resolved vector = %v, want the cached one", v)
	}
}

func TestResolveDropsFailedBatch(t *testing.T) {
	f := &fakeEmbedder{failOn: "poison"}
	r := NewResolver(f, NewCache(), resolverCfg())

	// Batch size 4 and sorted keys: the poison text lands in one batch and
	// only that batch is dropped.
	texts := []string{"poison-a", "poison-b", "poison-c", "poison-d", "z-1", "z-2", "z-3", "z-4"}
	var buf bytes.Buffer
	resolved, dropped, err := r.Resolve(context.Background(), makeInsights(texts...), &buf)
	if err != nil {
		t.Fatalf("Resolve must not fail the run for a dropped batch: %v", err)
	}
	if dropped != 4 {
		t.Errorf("dropped = %d, want 4", dropped)
	}
	if len(resolved) != 4 {
		t.Errorf("len(resolved) = %d, want the 4 healthy insights", len(resolved))
	}
	if !strings.Contains(buf.String(), "warning:") {
		t.Error("dropped batch should be logged as a warning")
	}
}

func TestResolveRetriesBeforeDropping(t *testing.T) {
	f := &fakeEmbedder{failOn: "flaky"}
	cfg := resolverCfg()
	cfg.MaxRetries = 2
	r := NewResolver(f, NewCache(), cfg)

	var buf bytes.Buffer
	_, dropped, err := r.Resolve(context.Background(), makeInsights("flaky"), &buf)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
	if f.failCount != 3 {
		t.Errorf("provider attempts = %d, want 3 (initial + 2 retries)", f.failCount)
	}
}

func TestResolveCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &fakeEmbedder{}
	r := NewResolver(f, NewCache(), resolverCfg())

	var buf bytes.Buffer
	resolved, _, err := r.Resolve(ctx, makeInsights("a", "b"), &buf)
	if err == nil {
		t.Fatal("cancelled context should surface as an error")
	}
	if resolved != nil {
		t.Error("partial results must be discarded on cancellation")
	}
}

func TestResolveEmptyInput(t *testing.T) {
	r := NewResolver(&fakeEmbedder{}, NewCache(), resolverCfg())
	var buf bytes.Buffer
	resolved, dropped, err := r.Resolve(context.Background(), nil, &buf)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(resolved) != 0 || dropped != 0 {
		t.Errorf("empty input should resolve to empty output, got %d/%d", len(resolved), dropped)
	}
}
