// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/connection-engine/internal/dictionary"
)

var dictionaryCmd = &cobra.Command{
	Use:   "dictionary",
	Short: "Show the filter dictionaries built from a business profile",
	Long: `Dictionary builds the industry, audience, and category term sets from a
business profile and prints them along with the per-domain pain
dictionaries. Useful for checking what the filter stage will match before
running a full analysis.`,
	RunE: runDictionary,
}

func runDictionary(cmd *cobra.Command, args []string) error {
	profilePath, _ := cmd.Flags().GetString("profile")
	painPath, _ := cmd.Flags().GetString("pain-table")
	domainFilter, _ := cmd.Flags().GetString("domain")

	profile, err := loadProfile(profilePath)
	if err != nil {
		return err
	}
	pain, err := dictionary.LoadPainTable(painPath)
	if err != nil {
		return err
	}

	dicts := dictionary.BuildDictionaries(profile, pain)

	printTerms := func(name string, d *dictionary.Dictionary) {
		fmt.Fprintf(os.Stdout, "%s (%d terms):\n", name, d.Len())
		for _, t := range d.Terms() {
			fmt.Fprintf(os.Stdout, "  %s\n", t)
		}
		fmt.Fprintln(os.Stdout)
	}
	printTerms("industry", dicts.Industry)
	printTerms("audience", dicts.Audience)
	printTerms("category", dicts.Category)

	fmt.Fprintln(os.Stdout, "pain dictionaries:")
	for _, domain := range dicts.Pain.Domains() {
		if domainFilter != "" && string(domain) != domainFilter {
			continue
		}
		d := dicts.Pain.ForDomain(domain)
		fmt.Fprintf(os.Stdout, "  %-20s  %s\n", domain, strings.Join(d.Terms(), ", "))
	}
	return nil
}

func init() {
	dictionaryCmd.Flags().String("profile", "", "business profile YAML file (required)")
	dictionaryCmd.Flags().String("pain-table", "", "YAML file overriding the built-in pain dictionaries")
	dictionaryCmd.Flags().String("domain", "", "show the pain dictionary for one source domain only")

	rootCmd.AddCommand(dictionaryCmd)
}
