package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/asimons81/guide-generator/internal/strategy"
	"github.com/asimons81/guide-generator/internal/types"
	"github.com/asimons81/guide-generator/internal/workflow"
)

var refineCmd = &cobra.Command{
	Use:   "refine",
	Short: "Review and edit the generated strategy",
	Long:  "Apply edits to the generated strategy fields and move the session on to drafting. Flags left unset keep their generated values.",
	RunE:  runRefine,
}

var (
	refineSessionID   string
	refineTitle       string
	refineMeta        string
	refineSlug        string
	refineKeyphrase   string
	refineOutlineFile string
	refineCategories  string
	refineTags        string
)

func init() {
	refineCmd.Flags().StringVar(&refineSessionID, "session", "", "Session ID (required)")
	refineCmd.Flags().StringVar(&refineTitle, "title", "", "Override the article title")
	refineCmd.Flags().StringVar(&refineMeta, "meta", "", "Override the meta description")
	refineCmd.Flags().StringVar(&refineSlug, "slug", "", "Override the URL slug")
	refineCmd.Flags().StringVar(&refineKeyphrase, "keyphrase", "", "Override the focus keyphrase")
	refineCmd.Flags().StringVar(&refineOutlineFile, "outline-file", "", "Path to an edited outline JSON file")
	refineCmd.Flags().StringVar(&refineCategories, "categories", "", "Comma-separated category names")
	refineCmd.Flags().StringVar(&refineTags, "tags", "", "Comma-separated tag names")
	_ = refineCmd.MarkFlagRequired("session")

	rootCmd.AddCommand(refineCmd)
}

func runRefine(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	sess, err := loadSession(store, refineSessionID)
	if err != nil {
		return err
	}
	if sess.Stage != workflow.StageRefine {
		return fmt.Errorf("session %s is at stage %q, not ready for refinement", sess.ID, sess.Stage)
	}

	// start from the generated values; only explicit flags override
	req := &types.RefineRequest{
		Title:           sess.Article.Title,
		MetaDescription: sess.Article.MetaDescription,
		Slug:            sess.Article.Slug,
		FocusKeyphrase:  sess.Article.FocusKeyphrase,
		OutlineJSON:     strategy.OutlineText(sess.Article.Outline),
		Categories:      strings.Join(sess.Article.Categories, ", "),
		Tags:            strings.Join(sess.Article.Tags, ", "),
	}
	if cmd.Flags().Changed("title") {
		req.Title = refineTitle
	}
	if cmd.Flags().Changed("meta") {
		req.MetaDescription = refineMeta
	}
	if cmd.Flags().Changed("slug") {
		req.Slug = refineSlug
	}
	if cmd.Flags().Changed("keyphrase") {
		req.FocusKeyphrase = refineKeyphrase
	}
	if cmd.Flags().Changed("categories") {
		req.Categories = refineCategories
	}
	if cmd.Flags().Changed("tags") {
		req.Tags = refineTags
	}
	if refineOutlineFile != "" {
		data, err := os.ReadFile(refineOutlineFile)
		if err != nil {
			return fmt.Errorf("failed to read outline file: %w", err)
		}
		req.OutlineJSON = string(data)
	}

	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	if err := strategy.Refine(&sess.Article, req); err != nil {
		return err
	}
	if err := sess.Advance(); err != nil {
		return err
	}
	if err := store.Save(sess); err != nil {
		return err
	}

	printer(cfg).PrintStrategy(&sess.Article)
	fmt.Fprintf(os.Stdout, "Strategy refined\n")
	fmt.Fprintf(os.Stdout, "Next: article_agent draft --session %s\n", sess.ID)
	return nil
}
