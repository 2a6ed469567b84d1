package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asimons81/guide-generator/internal/server"
	"github.com/asimons81/guide-generator/internal/wordpress"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for driving pipeline sessions stage by stage.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (defaults to PORT, then 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	port := cfg.Port
	if cmd.Flags().Changed("port") {
		port = servePort
	}

	client, err := newLLMClient(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	srv, err := server.New(server.Config{
		Port:     port,
		LLM:      client,
		CMS:      wordpress.New(cfg.WordPressURL, cfg.Username, cfg.AppPassword, nil),
		StateDir: cfg.StateDir,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
