// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/redletter/internal/webui"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the passage fetcher web UI",
	Long: `Serve starts the web UI: a single page with a fetch form, per-edition
result boxes with rich-text copy buttons, a client-side red-letter toggle,
and the analysis trace behind a debug fold.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :5001)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Serve.Addr = addr
	}

	p, log, cleanup, err := newPipeline(cmd, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ui := webui.NewServer(p, log)
	log.Info("listening", zap.String("addr", cfg.Serve.Addr))
	return http.ListenAndServe(cfg.Serve.Addr, ui.Routes())
}
