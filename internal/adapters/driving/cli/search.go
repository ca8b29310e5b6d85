package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search documents by title and content",
	Long: `Searches the knowledge base for documents whose title or content
contains the query, case-insensitively. Results are ordered newest
first. The search is recorded in your search history.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if browseService == nil {
		return errors.New("browse service not configured")
	}
	if _, err := requireSession(cmd.Context()); err != nil {
		return err
	}

	if err := browseService.SubmitSearch(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	results := browseService.Displayed()
	if searchJSON {
		return outputDocumentsJSON(cmd, results)
	}

	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}
	outputDocumentsTable(cmd, results)
	return nil
}

func outputDocumentsJSON(cmd *cobra.Command, docs []domain.Document) error {
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal documents: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputDocumentsTable(cmd *cobra.Command, docs []domain.Document) {
	for i, doc := range docs {
		cmd.Printf("[%d] %s\n", i+1, doc.Title)
		cmd.Printf("    id: %s  category: %s  added: %s\n",
			doc.ID, doc.Category, doc.CreatedAt.Format("2006-01-02"))
		if snippet := firstLine(doc.Content); snippet != "" {
			cmd.Printf("    %s\n", snippet)
		}
	}
	cmd.Println()
	cmd.Printf("%d document(s)\n", len(docs))
}

// firstLine returns the first line of content, truncated for display.
func firstLine(content string) string {
	const maxLen = 80

	for i, r := range content {
		if r == '\n' {
			content = content[:i]
			break
		}
	}
	if len(content) > maxLen {
		return content[:maxLen] + "..."
	}
	return content
}
