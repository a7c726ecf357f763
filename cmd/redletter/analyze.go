// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/redletter/internal/passage"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [passage]",
	Short: "Show the direct-speech masks a passage produces",
	Long: `Analyze fetches the passage in the reference edition only and prints the
per-verse direct-speech masks that would drive coloring, without rendering
any target edition. Useful for checking why a verse does or does not color.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("export", "", "write masks to a YAML file")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide exactly one passage (e.g. \"John 8:12-16\")")
	}

	p, log, cleanup, err := newPipeline(cmd, loadConfig())
	if err != nil {
		return err
	}
	defer cleanup()

	tr := passage.NewTrace(log)
	masks, err := p.AnalyzeReference(cmd.Context(), args[0], tr)
	if err != nil {
		return err
	}

	labels := make([]string, 0, len(masks))
	for label := range masks {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		fmt.Printf("verse %s:\n", label)
		for i, e := range masks[label] {
			switch {
			case e.WholeVerseImplicit:
				fmt.Printf("  span %d: whole verse, direct speech\n", i)
			case e.DirectSpeech:
				fmt.Printf("  span %d: direct speech\n", i)
			default:
				fmt.Printf("  span %d: not direct speech\n", i)
			}
		}
	}
	if len(masks) == 0 {
		fmt.Println("no masks: passage has no quotations and no mostly-red verses")
	}

	if exportPath, _ := cmd.Flags().GetString("export"); exportPath != "" {
		out, err := yaml.Marshal(masks)
		if err != nil {
			return fmt.Errorf("encoding masks: %w", err)
		}
		if err := os.WriteFile(exportPath, out, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", exportPath, err)
		}
		fmt.Fprintf(os.Stderr, "Wrote masks for %d verse(s) to %s\n", len(masks), exportPath)
	}
	return nil
}
