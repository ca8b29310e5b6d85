package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show usage statistics",
	Long: `Shows the knowledge base usage snapshot: document and search
totals, your recent searches and the most viewed documents.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if statsService == nil {
		return errors.New("stats service not configured")
	}
	if _, err := requireSession(cmd.Context()); err != nil {
		return err
	}

	stats, err := statsService.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading statistics: %w", err)
	}

	cmd.Printf("Documents: %d\n", stats.TotalDocuments)
	cmd.Printf("Your searches: %d\n", stats.TotalSearches)

	cmd.Println()
	cmd.Println("Recent searches:")
	if len(stats.RecentSearches) == 0 {
		cmd.Println("  (none)")
	}
	for _, s := range stats.RecentSearches {
		cmd.Printf("  %-30q %d result(s)  %s\n",
			s.Query, s.ResultsCount, s.CreatedAt.Format("2006-01-02 15:04"))
	}

	cmd.Println()
	cmd.Println("Most viewed:")
	if len(stats.PopularDocuments) == 0 {
		cmd.Println("  (none)")
	}
	for _, p := range stats.PopularDocuments {
		cmd.Printf("  %-40s %d view(s)\n", p.Title, p.ViewCount)
	}
	return nil
}
