package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show a document's full content",
	Long: `Prints a document by id. The view is counted into the document's
popularity statistics.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	if browseService == nil {
		return errors.New("browse service not configured")
	}
	if _, err := requireSession(cmd.Context()); err != nil {
		return err
	}

	if err := browseService.Load(cmd.Context()); err != nil {
		return fmt.Errorf("loading documents: %w", err)
	}

	doc := browseService.SelectResult(args[0])
	if doc == nil {
		return fmt.Errorf("document %q not found", args[0])
	}

	cmd.Printf("%s\n", doc.Title)
	cmd.Printf("category: %s", doc.Category)
	if len(doc.Tags) > 0 {
		cmd.Printf("  tags: %v", doc.Tags)
	}
	cmd.Println()
	cmd.Printf("added: %s by %s\n", doc.CreatedAt.Format("2006-01-02 15:04"), doc.CreatedBy)
	if doc.FileURL != "" {
		cmd.Printf("attachment: %s (%s)\n", doc.FileURL, doc.FileType)
	}
	cmd.Println()
	cmd.Println(doc.Content)
	return nil
}
