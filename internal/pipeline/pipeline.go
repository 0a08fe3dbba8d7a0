// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline wires the analysis stages into one run: dictionary
// filter, embedding resolution, pairwise hints, triangle detection, and
// scoring.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/connection-engine/internal/connect"
	"github.com/pdiddy/connection-engine/internal/dictionary"
	"github.com/pdiddy/connection-engine/internal/embed"
	"github.com/pdiddy/connection-engine/pkg/types"
)

// Engine runs the connection-discovery pipeline. Construction validates the
// configuration and loads the pain table; those are the only fatal error
// sources besides context cancellation. Everything else degrades: filtered
// insights are counted, dropped embedding batches are counted, and the run
// emits whatever it could score.
type Engine struct {
	cfg      types.EngineConfig
	embedder embed.Embedder
	cache    *embed.Cache
	pain     dictionary.PainTable
	out      io.Writer
}

// New builds an engine. out receives stage warnings (dropped batches) and
// must not be nil; io.Discard silences them.
func New(cfg types.EngineConfig, embedder embed.Embedder, cache *embed.Cache, out io.Writer) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	pain, err := dictionary.LoadPainTable(cfg.Filter.PainTablePath)
	if err != nil {
		return nil, fmt.Errorf("loading pain table: %w", err)
	}
	if cache == nil {
		cache = embed.NewCache()
	}
	return &Engine{
		cfg:      cfg,
		embedder: embedder,
		cache:    cache,
		pain:     pain,
		out:      out,
	}, nil
}

// Analyze runs one full analysis over the given profile and raw insights.
// The result is deterministic for identical inputs and configuration, up to
// the run ID.
func (e *Engine) Analyze(ctx context.Context, profile types.BusinessProfile, insights []types.RawInsight) (types.AnalysisResult, error) {
	result := types.AnalysisResult{
		RunID:   uuid.NewString(),
		Summary: types.RunSummary{TotalInsights: len(insights)},
	}
	if err := ctx.Err(); err != nil {
		return types.AnalysisResult{}, err
	}

	dicts := dictionary.BuildDictionaries(profile, e.pain)

	filtered, filteredOut := dictionary.FilterAll(ctx, insights, dicts, e.cfg.Filter)
	result.Summary.FilteredOut = filteredOut
	if err := ctx.Err(); err != nil {
		return types.AnalysisResult{}, err
	}
	if len(filtered) == 0 {
		return result, nil
	}

	resolver := embed.NewResolver(e.embedder, e.cache, e.cfg.Embedding)
	vectors, embedDropped, err := resolver.Resolve(ctx, filtered, e.out)
	if err != nil {
		return types.AnalysisResult{}, err
	}
	result.Summary.EmbedDropped = embedDropped
	if len(vectors) < 2 {
		// Fewer than two embedded insights cannot form a pair.
		return result, nil
	}

	adj := connect.NewAdjacency(e.cfg.Connection.Adjacency)
	hints := connect.GenerateHints(ctx, filtered, vectors, adj, e.cfg.Connection)
	if err := ctx.Err(); err != nil {
		return types.AnalysisResult{}, err
	}
	result.Summary.Hints = len(hints)

	triangles := connect.FindTriangles(hints)
	result.Summary.Triangles = len(triangles)

	scorer := connect.NewScorer(e.cfg.Scoring, adj, e.cfg.Connection.SimilarityFloor, time.Now())
	result.Scores = scorer.Rank(hints, triangles)
	result.Summary.Emitted = len(result.Scores)
	return result, nil
}
