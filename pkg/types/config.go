// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the per-call HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "connection-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FilterConfig holds settings for the dictionary filter stage.
type FilterConfig struct {
	// PainTablePath optionally overrides the built-in per-domain pain
	// dictionaries with a YAML file.
	PainTablePath string `json:"pain_table_path,omitempty" yaml:"pain_table_path,omitempty"`

	// CategoryBoostMax is the boost applied on a full category match
	// (default 1.3). Partial matches interpolate between 1.0 and this.
	CategoryBoostMax float64 `json:"category_boost_max" yaml:"category_boost_max"`

	// Workers caps the filter worker pool (default 4).
	Workers int `json:"workers" yaml:"workers"`
}

// EmbeddingConfig holds settings for the embedding resolver stage. The
// resolver is the only component performing network I/O.
type EmbeddingConfig struct {
	HTTPConfig `yaml:",inline"`

	// Endpoint is the embeddings API base URL (an OpenAI-compatible
	// /v1/embeddings endpoint).
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Model is the embedding model identifier.
	Model string `json:"model" yaml:"model"`

	// Dimensions is the expected vector dimensionality (default 1536).
	Dimensions int `json:"dimensions" yaml:"dimensions"`

	// APIKey authenticates against the provider.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BatchSize is the number of texts per provider call (default 64).
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// Concurrency caps in-flight provider batches (default 4).
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// MaxRetries is the per-batch retry attempt count (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// RequestsPerMinute feeds the client rate limiter (default 60).
	RequestsPerMinute int `json:"requests_per_minute" yaml:"requests_per_minute"`

	// CachePath optionally persists the text-to-vector cache in a SQLite
	// file. Empty means in-memory only.
	CachePath string `json:"cache_path,omitempty" yaml:"cache_path,omitempty"`
}

// ConnectionConfig holds settings for pairwise hint generation and the
// three-way detector.
type ConnectionConfig struct {
	// SimilarityFloor is the minimum cosine similarity for a hint
	// (default 0.65). Must be in [0, 1].
	SimilarityFloor float64 `json:"similarity_floor" yaml:"similarity_floor"`

	// MaxInsights guards the O(n²) comparison: above this count the
	// newest insights per domain are kept and the rest set aside
	// (default 400).
	MaxInsights int `json:"max_insights" yaml:"max_insights"`

	// Workers caps the pairwise comparison shards (default 4).
	Workers int `json:"workers" yaml:"workers"`

	// Adjacency maps each domain to the domains considered adjacent to it.
	// Pairs absent from the table are fully cross-domain. Empty uses the
	// built-in table.
	Adjacency map[SourceDomain][]SourceDomain `json:"adjacency,omitempty" yaml:"adjacency,omitempty"`
}

// ScoringWeights are the five composite weights. They are fractions of the
// final 0-100 score and must be non-negative.
type ScoringWeights struct {
	Similarity           float64 `json:"similarity" yaml:"similarity"`
	Unexpectedness       float64 `json:"unexpectedness" yaml:"unexpectedness"`
	TopicalRelevance     float64 `json:"topical_relevance" yaml:"topical_relevance"`
	CompetitiveAdvantage float64 `json:"competitive_advantage" yaml:"competitive_advantage"`
	Timeliness           float64 `json:"timeliness" yaml:"timeliness"`
}

// DefaultScoringWeights returns the standard weighting.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		Similarity:           0.30,
		Unexpectedness:       0.25,
		TopicalRelevance:     0.15,
		CompetitiveAdvantage: 0.15,
		Timeliness:           0.10,
	}
}

// ScoringConfig holds settings for the connection scorer.
type ScoringConfig struct {
	Weights ScoringWeights `json:"weights" yaml:"weights"`

	// ThreeWayBonus is added to three-way connection scores before
	// clamping (default 40).
	ThreeWayBonus float64 `json:"three_way_bonus" yaml:"three_way_bonus"`

	// CompetitiveAdvantage is the per-run 0-100 input for that sub-score
	// (default 50, neutral).
	CompetitiveAdvantage float64 `json:"competitive_advantage" yaml:"competitive_advantage"`

	// TimelinessHalfLife is how long until an insight's timeliness
	// sub-score halves (default 7 days).
	TimelinessHalfLife time.Duration `json:"timeliness_half_life" yaml:"timeliness_half_life"`

	// TopN truncates the ranked output (default 25).
	TopN int `json:"top_n" yaml:"top_n"`
}

// EngineConfig groups all stage configurations for one analysis run.
type EngineConfig struct {
	Filter     FilterConfig     `json:"filter" yaml:"filter"`
	Embedding  EmbeddingConfig  `json:"embedding" yaml:"embedding"`
	Connection ConnectionConfig `json:"connection" yaml:"connection"`
	Scoring    ScoringConfig    `json:"scoring" yaml:"scoring"`
}

// DefaultEngineConfig returns a fully populated configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Filter: FilterConfig{
			CategoryBoostMax: 1.3,
			Workers:          4,
		},
		Embedding: EmbeddingConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   30 * time.Second,
				UserAgent: "connection-engine/0.1",
			},
			Endpoint:          "https://api.openai.com/v1/embeddings",
			Model:             "text-embedding-3-small",
			Dimensions:        1536,
			BatchSize:         64,
			Concurrency:       4,
			MaxRetries:        3,
			RequestsPerMinute: 60,
		},
		Connection: ConnectionConfig{
			SimilarityFloor: 0.65,
			MaxInsights:     400,
			Workers:         4,
		},
		Scoring: ScoringConfig{
			Weights:              DefaultScoringWeights(),
			ThreeWayBonus:        40,
			CompetitiveAdvantage: 50,
			TimelinessHalfLife:   7 * 24 * time.Hour,
			TopN:                 25,
		},
	}
}

// Validate rejects malformed configuration before any work begins. This is
// the only fatal error class: everything past validation degrades instead
// of failing the run.
func (c EngineConfig) Validate() error {
	if c.Connection.SimilarityFloor < 0 || c.Connection.SimilarityFloor > 1 {
		return fmt.Errorf("connection.similarity_floor %.3f outside [0, 1]", c.Connection.SimilarityFloor)
	}
	w := c.Scoring.Weights
	for _, pair := range []struct {
		name  string
		value float64
	}{
		{"similarity", w.Similarity},
		{"unexpectedness", w.Unexpectedness},
		{"topical_relevance", w.TopicalRelevance},
		{"competitive_advantage", w.CompetitiveAdvantage},
		{"timeliness", w.Timeliness},
	} {
		if pair.value < 0 {
			return fmt.Errorf("scoring.weights.%s is negative: %f", pair.name, pair.value)
		}
	}
	if c.Scoring.ThreeWayBonus < 0 {
		return fmt.Errorf("scoring.three_way_bonus is negative: %f", c.Scoring.ThreeWayBonus)
	}
	if c.Scoring.CompetitiveAdvantage < 0 || c.Scoring.CompetitiveAdvantage > 100 {
		return fmt.Errorf("scoring.competitive_advantage %.1f outside [0, 100]", c.Scoring.CompetitiveAdvantage)
	}
	if c.Embedding.BatchSize <= 0 {
		return fmt.Errorf("embedding.batch_size must be positive, got %d", c.Embedding.BatchSize)
	}
	if c.Embedding.Concurrency <= 0 {
		return fmt.Errorf("embedding.concurrency must be positive, got %d", c.Embedding.Concurrency)
	}
	if c.Filter.CategoryBoostMax < 1.0 || c.Filter.CategoryBoostMax > 1.3 {
		return fmt.Errorf("filter.category_boost_max %.2f outside [1.0, 1.3]", c.Filter.CategoryBoostMax)
	}
	return nil
}
