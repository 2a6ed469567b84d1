package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/asimons81/guide-generator/internal/publish"
	"github.com/asimons81/guide-generator/internal/wordpress"
	"github.com/asimons81/guide-generator/internal/workflow"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish the article as a WordPress draft",
	Long:  "Upload the attached images to the WordPress media library, splice them into the article body, and create the post in draft status for human review.",
	RunE:  runPublish,
}

var (
	publishSessionID string
	publishReset     bool
)

func init() {
	publishCmd.Flags().StringVar(&publishSessionID, "session", "", "Session ID (required)")
	publishCmd.Flags().BoolVar(&publishReset, "reset", false, "Reset the session after a successful publish")
	_ = publishCmd.MarkFlagRequired("session")

	rootCmd.AddCommand(publishCmd)
}

func runPublish(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	sess, err := loadSession(store, publishSessionID)
	if err != nil {
		return err
	}
	if sess.Stage != workflow.StagePublish {
		return fmt.Errorf("session %s is at stage %q, not ready to publish", sess.ID, sess.Stage)
	}

	cms := wordpress.New(cfg.WordPressURL, cfg.Username, cfg.AppPassword, nil)
	publisher := publish.New(cms, nil)

	// a failed run leaves the session untouched for a retry
	report, err := publisher.Run(context.Background(), &sess.Article, sess.Images)
	if err != nil {
		return err
	}

	printer(cfg).PrintPublishReport(report)
	fmt.Fprintf(os.Stdout, "Draft created: #%d %s\n", report.PostID, report.PostTitle)
	fmt.Fprintf(os.Stdout, "Review it at: %s\n", report.PostLink)
	for _, w := range report.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	if publishReset {
		sess.Reset()
		if err := store.Save(sess); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Session reset for the next article\n")
	}
	return nil
}
