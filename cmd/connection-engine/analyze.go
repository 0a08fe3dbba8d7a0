// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/connection-engine/internal/embed"
	"github.com/pdiddy/connection-engine/internal/pipeline"
	"github.com/pdiddy/connection-engine/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run connection discovery over a profile and an insights file",
	Long: `Analyze runs the full pipeline: dictionary filtering against the business
profile, embedding of surviving insights, cross-domain connection hints,
three-way detection, and composite scoring. Results print as a ranked table
by default; use --json or --yaml for machine-readable output.`,
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	profilePath, _ := cmd.Flags().GetString("profile")
	insightsPath, _ := cmd.Flags().GetString("insights")

	profile, err := loadProfile(profilePath)
	if err != nil {
		return err
	}
	insights, err := loadInsights(insightsPath)
	if err != nil {
		return err
	}

	cfg, err := engineConfig(cmd)
	if err != nil {
		return err
	}

	cache, err := embed.OpenCache(cfg.Embedding.CachePath)
	if err != nil {
		return fmt.Errorf("opening embedding cache: %w", err)
	}
	defer cache.Close()

	client := embed.NewClient(cfg.Embedding)
	engine, err := pipeline.New(cfg, client, cache, os.Stderr)
	if err != nil {
		return err
	}

	result, err := engine.Analyze(context.Background(), profile, insights)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	yamlOutput, _ := cmd.Flags().GetBool("yaml")
	return formatAnalyzeOutput(result, jsonOutput, yamlOutput)
}

// engineConfig assembles the run configuration: defaults, then the viper
// config file, then command-line flag overrides.
func engineConfig(cmd *cobra.Command) (types.EngineConfig, error) {
	cfg := types.DefaultEngineConfig()
	if viper.ConfigFileUsed() != "" {
		if err := viper.UnmarshalKey("engine", &cfg); err != nil {
			return cfg, fmt.Errorf("parsing engine config: %w", err)
		}
	}

	if cmd.Flags().Changed("floor") {
		cfg.Connection.SimilarityFloor, _ = cmd.Flags().GetFloat64("floor")
	}
	if cmd.Flags().Changed("top") {
		cfg.Scoring.TopN, _ = cmd.Flags().GetInt("top")
	}
	if cmd.Flags().Changed("cache-db") {
		cfg.Embedding.CachePath, _ = cmd.Flags().GetString("cache-db")
	}
	if cmd.Flags().Changed("pain-table") {
		cfg.Filter.PainTablePath, _ = cmd.Flags().GetString("pain-table")
	}

	apiKey, _ := cmd.Flags().GetString("api-key")
	cfg.Embedding.APIKey = secretDefault("openai-api-key", apiKey)
	return cfg, nil
}

func loadProfile(path string) (types.BusinessProfile, error) {
	var profile types.BusinessProfile
	if path == "" {
		return profile, fmt.Errorf("--profile is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return profile, fmt.Errorf("reading profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return profile, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	if profile.IsEmpty() {
		return profile, fmt.Errorf("profile %s has no industry, audience, or categories", path)
	}
	return profile, nil
}

func loadInsights(path string) ([]types.RawInsight, error) {
	if path == "" {
		return nil, fmt.Errorf("--insights is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading insights: %w", err)
	}

	var insights []types.RawInsight
	if strings.HasSuffix(path, ".json") {
		err = json.Unmarshal(data, &insights)
	} else {
		err = yaml.Unmarshal(data, &insights)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing insights %s: %w", path, err)
	}
	return insights, nil
}

func formatAnalyzeOutput(result types.AnalysisResult, jsonOutput, yamlOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	if yamlOutput {
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(result)
	}

	s := result.Summary
	fmt.Fprintf(os.Stdout, "Run %s: %d insights, %d filtered out, %d embeddings dropped\n",
		result.RunID, s.TotalInsights, s.FilteredOut, s.EmbedDropped)
	fmt.Fprintf(os.Stdout, "%d hints, %d three-way connections, %d scored\n\n",
		s.Hints, s.Triangles, s.Emitted)

	if len(result.Scores) == 0 {
		fmt.Println("No connections found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-6s  %-13s  %-5s  %s\n",
		"Rank", "Score", "Tier", "Kind", "Connection")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 96))

	for i, score := range result.Scores {
		kind := "pair"
		var desc string
		if score.IsThreeWay() {
			kind = "3way"
			t := score.ThreeWay
			desc = fmt.Sprintf("%s + %s + %s", t.A.SourceDomain, t.B.SourceDomain, t.C.SourceDomain)
		} else {
			h := score.Hint
			desc = fmt.Sprintf("%s + %s (%s)", h.A.SourceDomain, h.B.SourceDomain, h.Relation)
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-6.1f  %-13s  %-5s  %s\n",
			i+1, score.FinalScore, score.Tier, kind, desc)
	}

	fmt.Fprintf(os.Stdout, "\n%d connections\n", len(result.Scores))
	return nil
}

func init() {
	analyzeCmd.Flags().String("profile", "", "business profile YAML file (required)")
	analyzeCmd.Flags().String("insights", "", "raw insights YAML or JSON file (required)")
	analyzeCmd.Flags().Float64("floor", 0.65, "minimum cosine similarity for a connection hint")
	analyzeCmd.Flags().Int("top", 25, "number of ranked connections to emit")
	analyzeCmd.Flags().String("cache-db", "", "SQLite file for the persistent embedding cache")
	analyzeCmd.Flags().String("pain-table", "", "YAML file overriding the built-in pain dictionaries")
	analyzeCmd.Flags().String("api-key", "", "embeddings API key (default: .secrets/openai-api-key)")
	analyzeCmd.Flags().Bool("json", false, "output the full result as JSON")
	analyzeCmd.Flags().Bool("yaml", false, "output the full result as YAML")

	rootCmd.AddCommand(analyzeCmd)
}
