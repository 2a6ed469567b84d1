package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/asimons81/guide-generator/internal/drafting"
	"github.com/asimons81/guide-generator/internal/workflow"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Generate the article draft",
	Long:  "Generate the full HTML article body from the refined strategy, print the advisory SEO checklist, and move the session on to image planning.",
	RunE:  runDraft,
}

var (
	draftSessionID   string
	draftContentFile string
	draftOutFile     string
)

func init() {
	draftCmd.Flags().StringVar(&draftSessionID, "session", "", "Session ID (required)")
	draftCmd.Flags().StringVar(&draftContentFile, "content-file", "", "Use an edited HTML file as the article body instead of generating")
	draftCmd.Flags().StringVar(&draftOutFile, "out", "", "Also write the article body to this file for editing")
	_ = draftCmd.MarkFlagRequired("session")

	rootCmd.AddCommand(draftCmd)
}

func runDraft(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	sess, err := loadSession(store, draftSessionID)
	if err != nil {
		return err
	}
	if sess.Stage != workflow.StageDraft {
		return fmt.Errorf("session %s is at stage %q, not ready for drafting", sess.ID, sess.Stage)
	}

	switch {
	case draftContentFile != "":
		data, err := os.ReadFile(draftContentFile)
		if err != nil {
			return fmt.Errorf("failed to read content file: %w", err)
		}
		sess.Article.Content = string(data)
	case strings.TrimSpace(sess.Article.Content) == "":
		ctx := context.Background()
		client, err := newLLMClient(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		content, err := drafting.Generate(ctx, client, &sess.Article)
		if err != nil {
			return err
		}
		sess.Article.Content = content
	}

	if err := sess.Advance(); err != nil {
		return err
	}
	if err := store.Save(sess); err != nil {
		return err
	}

	if draftOutFile != "" {
		if err := os.WriteFile(draftOutFile, []byte(sess.Article.Content), 0o644); err != nil {
			return fmt.Errorf("failed to write article body: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Article body written to %s\n", draftOutFile)
	}

	checks := drafting.Checklist(&sess.Article)
	printer(cfg).PrintChecklist(checks)
	passed := 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
	}

	fmt.Fprintf(os.Stdout, "Draft ready (%d words, %d/%d SEO checks passed)\n",
		len(strings.Fields(sess.Article.Content)), passed, len(checks))
	fmt.Fprintf(os.Stdout, "Next: article_agent plan-images --session %s\n", sess.ID)
	return nil
}
