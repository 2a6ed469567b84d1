// Package main provides the entry point for the article pipeline CLI and its
// HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "article_agent",
	Short: "AI article pipeline for WordPress",
	Long:  "article_agent takes a topic and keyword through SEO strategy, drafting, image planning, image upload, and publishing as a WordPress draft.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
