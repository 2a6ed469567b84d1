package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/asimons81/guide-generator/internal/imageplan"
	"github.com/asimons81/guide-generator/internal/workflow"
)

var planImagesCmd = &cobra.Command{
	Use:   "plan-images",
	Short: "Generate the image plan",
	Long:  "Generate 3-5 image descriptors (one featured, the rest placed after article sections) and print copy-ready generation prompts for an external image tool.",
	RunE:  runPlanImages,
}

var (
	planSessionID   string
	planPromptsFile string
)

func init() {
	planImagesCmd.Flags().StringVar(&planSessionID, "session", "", "Session ID (required)")
	planImagesCmd.Flags().StringVar(&planPromptsFile, "prompts-out", "", "Also write the prompt listing to this file")
	_ = planImagesCmd.MarkFlagRequired("session")

	rootCmd.AddCommand(planImagesCmd)
}

func runPlanImages(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	sess, err := loadSession(store, planSessionID)
	if err != nil {
		return err
	}
	if sess.Stage != workflow.StageImagePlan {
		return fmt.Errorf("session %s is at stage %q, not ready for image planning", sess.ID, sess.Stage)
	}

	// a failed generation leaves the plan unset; re-running retries
	if sess.Article.ImagePlan.Count() == 0 {
		ctx := context.Background()
		client, err := newLLMClient(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		plan, err := imageplan.Generate(ctx, client, &sess.Article)
		if err != nil {
			return err
		}
		sess.Article.ImagePlan = plan
	}

	if err := sess.Advance(); err != nil {
		return err
	}
	if err := store.Save(sess); err != nil {
		return err
	}

	listing := imageplan.PromptListing(sess.Article.ImagePlan)
	if planPromptsFile != "" {
		if err := os.WriteFile(planPromptsFile, []byte(listing), 0o644); err != nil {
			return fmt.Errorf("failed to write prompt listing: %w", err)
		}
	}

	printer(cfg).PrintImagePlan(sess.Article.ImagePlan)
	fmt.Fprintf(os.Stdout, "Image plan ready (%d images)\n\n%s\n", sess.Article.ImagePlan.Count(), listing)
	fmt.Fprintf(os.Stdout, "Generate the images externally, then: article_agent upload --session %s <files...>\n", sess.ID)
	return nil
}
