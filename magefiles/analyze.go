//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Analyze runs connection discovery using the built CLI. Profile and
// insights paths come from CE_PROFILE and CE_INSIGHTS, defaulting to the
// data/ layout created by Init.
func Analyze() error {
	profile := os.Getenv("CE_PROFILE")
	if profile == "" {
		profile = filepath.Join("data", "profiles", "profile.yaml")
	}
	insights := os.Getenv("CE_INSIGHTS")
	if insights == "" {
		insights = filepath.Join("data", "insights", "insights.yaml")
	}

	bin := filepath.Join(binDir, binName)
	cmd := exec.Command(bin, "analyze",
		"--profile", profile,
		"--insights", insights,
		"--cache-db", filepath.Join("data", "cache", "embeddings.db"))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("connection-engine analyze: %w", err)
	}
	return nil
}
