// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/redletter/internal/passage"
	"github.com/pdiddy/redletter/internal/render"
	"github.com/pdiddy/redletter/internal/webui"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [passages] [editions...]",
	Short: "Fetch passages and print them with red letters applied",
	Long: `Fetch retrieves each passage in each requested edition and prints the
rendered result. The first argument lists passages (comma separated), the
rest are edition codes. With red letters on (the default), the reference
edition is analyzed first and its direct-speech masks are transferred onto
every verse that can take one; verses where the transfer fails print
uncolored.`,
	Example: `  redletter fetch "John 8:12" NIV KJV
  redletter fetch "John 8:12, Luke 7:19-21" LSG --plain`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().Bool("verse-numbers", true, "prepend verse numbers")
	fetchCmd.Flags().Bool("red-letter", true, "transfer red letters from the reference edition")
	fetchCmd.Flags().Bool("plain", false, "strip markup for terminal output")
	fetchCmd.Flags().Bool("trace", false, "print analysis trace to stderr")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	fetchCmd.Flags().Duration("delay", 0, "pause between page fetches (default 1s)")
	fetchCmd.Flags().String("cache-dir", "", "page cache directory (overrides config)")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("provide a passage list and at least one edition (e.g. \"John 8:12\" NIV)")
	}
	passages := webui.SplitPassages(args[0])
	editions := webui.SplitEditions(strings.Join(args[1:], " "))
	if len(passages) == 0 {
		return fmt.Errorf("no passages in %q", args[0])
	}

	verseNumbers, _ := cmd.Flags().GetBool("verse-numbers")
	redLetter, _ := cmd.Flags().GetBool("red-letter")
	plain, _ := cmd.Flags().GetBool("plain")
	showTrace, _ := cmd.Flags().GetBool("trace")

	cfg := loadConfig()
	if timeout, _ := cmd.Flags().GetDuration("timeout"); timeout > 0 {
		cfg.Gateway.Timeout = timeout
	}
	if delay, _ := cmd.Flags().GetDuration("delay"); delay > 0 {
		cfg.Gateway.RequestDelay = delay
	}
	if dir, _ := cmd.Flags().GetString("cache-dir"); dir != "" {
		cfg.Cache.Dir = dir
	}

	p, log, cleanup, err := newPipeline(cmd, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	tr := passage.NewTrace(log)
	blocks, err := p.FetchAll(cmd.Context(), passage.Request{
		Passages: passages,
		Editions: editions,
		Options: passage.Options{
			VerseNumbers: verseNumbers,
			RedLetter:    redLetter,
		},
	}, tr)

	for _, block := range blocks {
		for _, rp := range block.Passages {
			text := rp.HTML
			if plain {
				text = render.PlainText(text)
			}
			fmt.Printf("=== %s - %s ===\n%s\n\n", block.Edition, rp.Ref, text)
		}
	}
	if showTrace {
		for _, line := range tr.Lines() {
			fmt.Fprintln(os.Stderr, line)
		}
	}
	return err
}
