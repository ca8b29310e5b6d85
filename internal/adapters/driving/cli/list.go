package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
)

var (
	listCategory string
	listJSON     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents, optionally filtered by category",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the categories present in the knowledge base",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

func init() {
	listCmd.Flags().StringVarP(&listCategory, "category", "c", domain.CategoryAll, "filter by category")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output documents as JSON")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if browseService == nil {
		return errors.New("browse service not configured")
	}
	if _, err := requireSession(cmd.Context()); err != nil {
		return err
	}

	if err := browseService.Load(cmd.Context()); err != nil {
		return fmt.Errorf("loading documents: %w", err)
	}
	browseService.ChangeCategory(listCategory)

	docs := browseService.Displayed()
	if listJSON {
		return outputDocumentsJSON(cmd, docs)
	}

	if len(docs) == 0 {
		cmd.Println("No documents.")
		return nil
	}
	outputDocumentsTable(cmd, docs)
	return nil
}

func runCategories(cmd *cobra.Command, _ []string) error {
	if browseService == nil {
		return errors.New("browse service not configured")
	}
	if _, err := requireSession(cmd.Context()); err != nil {
		return err
	}

	if err := browseService.Load(cmd.Context()); err != nil {
		return fmt.Errorf("loading documents: %w", err)
	}

	categories := browseService.Categories()
	if len(categories) == 0 {
		cmd.Println("No categories.")
		return nil
	}
	cmd.Println(strings.Join(categories, "\n"))
	return nil
}
