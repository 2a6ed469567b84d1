package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session state",
	Long:  "Show the current stage and article fields of one session, or list all checkpointed sessions.",
	RunE:  runStatus,
}

var backCmd = &cobra.Command{
	Use:   "back",
	Short: "Move a session one stage back",
	Long:  "Move a session exactly one stage back. Nothing is cleared; re-running the earlier stage overwrites its output.",
	RunE:  runBack,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset a session to the start",
	Long:  "Clear a session's article, images, and stage, keeping its identity.",
	RunE:  runReset,
}

var (
	statusSessionID string
	backSessionID   string
	resetSessionID  string
)

func init() {
	statusCmd.Flags().StringVar(&statusSessionID, "session", "", "Session ID (omit to list all sessions)")
	backCmd.Flags().StringVar(&backSessionID, "session", "", "Session ID (required)")
	resetCmd.Flags().StringVar(&resetSessionID, "session", "", "Session ID (required)")
	_ = backCmd.MarkFlagRequired("session")
	_ = resetCmd.MarkFlagRequired("session")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(backCmd)
	rootCmd.AddCommand(resetCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	if statusSessionID == "" {
		ids, err := store.List()
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Fprintln(os.Stdout, "No sessions")
			return nil
		}
		for _, id := range ids {
			sess, err := store.Load(id)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not read session %s: %v\n", id, err)
				continue
			}
			fmt.Fprintf(os.Stdout, "%s  stage %d (%s)  %s\n", sess.ID, sess.Stage, sess.Stage, sess.Article.Topic)
		}
		return nil
	}

	sess, err := loadSession(store, statusSessionID)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Session: %s\n", sess.ID)
	fmt.Fprintf(os.Stdout, "Stage:   %d (%s)\n", sess.Stage, sess.Stage)
	fmt.Fprintf(os.Stdout, "Topic:   %s\n", sess.Article.Topic)
	if sess.Article.Title != "" {
		fmt.Fprintf(os.Stdout, "Title:   %s\n", sess.Article.Title)
	}
	if sess.Article.ImagePlan.Count() > 0 {
		fmt.Fprintf(os.Stdout, "Images:  %d planned, %d attached\n", sess.Article.ImagePlan.Count(), len(sess.Images))
	}
	printer(cfg).PrintStrategy(&sess.Article)
	return nil
}

func runBack(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	sess, err := loadSession(store, backSessionID)
	if err != nil {
		return err
	}

	if err := sess.Back(); err != nil {
		return err
	}
	if err := store.Save(sess); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Session is now at stage %d (%s)\n", sess.Stage, sess.Stage)
	return nil
}

func runReset(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	sess, err := loadSession(store, resetSessionID)
	if err != nil {
		return err
	}

	sess.Reset()
	if err := store.Save(sess); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Session %s reset\n", sess.ID)
	return nil
}
