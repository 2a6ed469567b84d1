package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/asimons81/guide-generator/internal/strategy"
	"github.com/asimons81/guide-generator/internal/types"
	"github.com/asimons81/guide-generator/internal/workflow"
)

var strategyCmd = &cobra.Command{
	Use:   "strategy",
	Short: "Generate the SEO strategy for a topic",
	Long:  "Generate title, meta description, slug, focus keyphrase, outline, and taxonomy suggestions for a topic/keyword pair, and start a new pipeline session.",
	RunE:  runStrategy,
}

var (
	strategyTopic     string
	strategyKeyword   string
	strategyTone      string
	strategyWordCount int
	strategySessionID string
)

func init() {
	strategyCmd.Flags().StringVar(&strategyTopic, "topic", "", "Article topic (required)")
	strategyCmd.Flags().StringVar(&strategyKeyword, "keyword", "", "Primary keyword (required)")
	strategyCmd.Flags().StringVar(&strategyTone, "tone", types.ToneProfessional, "Tone: Professional, Casual, Enthusiastic, Technical, or Conversational")
	strategyCmd.Flags().IntVar(&strategyWordCount, "word-count", 1500, "Target word count (800-3000)")
	strategyCmd.Flags().StringVar(&strategySessionID, "session", "", "Existing session to regenerate the strategy for")
	_ = strategyCmd.MarkFlagRequired("topic")
	_ = strategyCmd.MarkFlagRequired("keyword")

	rootCmd.AddCommand(strategyCmd)
}

func runStrategy(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	req := &types.StrategyRequest{
		Topic:     strategyTopic,
		Keyword:   strategyKeyword,
		Tone:      strategyTone,
		WordCount: strategyWordCount,
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	var sess *workflow.Session
	if strategySessionID != "" {
		if sess, err = loadSession(store, strategySessionID); err != nil {
			return err
		}
		if sess.Stage != workflow.StageStrategy {
			return fmt.Errorf("session %s is at stage %q; go back to regenerate the strategy", sess.ID, sess.Stage)
		}
	} else {
		sess = workflow.NewSession()
	}

	ctx := context.Background()
	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	strat, err := strategy.Generate(ctx, client, req)
	if err != nil {
		return err
	}
	strategy.Apply(&sess.Article, req, strat)

	if err := sess.Advance(); err != nil {
		return err
	}
	if err := store.Save(sess); err != nil {
		return err
	}

	printer(cfg).PrintStrategy(&sess.Article)
	fmt.Fprintf(os.Stdout, "Strategy generated for %q\n", sess.Article.Title)
	fmt.Fprintf(os.Stdout, "Session: %s\n", sess.ID)
	fmt.Fprintf(os.Stdout, "Next: article_agent refine --session %s (optional) or article_agent draft --session %s\n", sess.ID, sess.ID)
	return nil
}
