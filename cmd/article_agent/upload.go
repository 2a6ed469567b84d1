package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/asimons81/guide-generator/internal/types"
	"github.com/asimons81/guide-generator/internal/workflow"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [files...]",
	Short: "Attach the generated images to the session",
	Long:  "Attach image files (png, jpg, jpeg, webp) to the session, in image-plan order. The file count must exactly match the plan's descriptor count.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUpload,
}

var uploadSessionID string

func init() {
	uploadCmd.Flags().StringVar(&uploadSessionID, "session", "", "Session ID (required)")
	_ = uploadCmd.MarkFlagRequired("session")

	rootCmd.AddCommand(uploadCmd)
}

func runUpload(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	sess, err := loadSession(store, uploadSessionID)
	if err != nil {
		return err
	}
	if sess.Stage != workflow.StageUpload {
		return fmt.Errorf("session %s is at stage %q, not ready for uploads", sess.ID, sess.Stage)
	}

	files := make([]types.UploadedImage, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		files = append(files, types.UploadedImage{Filename: filepath.Base(path), Data: data})
	}

	if err := sess.AttachImages(files); err != nil {
		return err
	}
	if err := sess.Advance(); err != nil {
		return err
	}
	if err := store.Save(sess); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%d images attached\n", len(files))
	fmt.Fprintf(os.Stdout, "Next: article_agent publish --session %s\n", sess.ID)
	return nil
}
