package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
	"github.com/keystone-labs/kbs-cli/internal/normalisers"
)

var (
	addTitle       string
	addContent     string
	addContentFile string
	addCategory    string
	addTags        []string
	addFileURL     string
	addFileType    string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a document to the knowledge base",
	Long: `Adds a new document. Content comes from --content or is read from
a file via --content-file; Markdown and HTML files are converted to
plain text and supply a title when --title is omitted. Category
defaults to general.`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "document title (extracted from --content-file when omitted)")
	addCmd.Flags().StringVar(&addContent, "content", "", "document content")
	addCmd.Flags().StringVar(&addContentFile, "content-file", "", "read content from file")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "document category")
	addCmd.Flags().StringSliceVar(&addTags, "tags", nil, "comma-separated tags")
	addCmd.Flags().StringVar(&addFileURL, "file-url", "", "attachment URL")
	addCmd.Flags().StringVar(&addFileType, "file-type", "", "attachment type, e.g. pdf")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}
	if _, err := requireSession(cmd.Context()); err != nil {
		return err
	}

	draft := domain.DocumentDraft{
		Title:    addTitle,
		Content:  addContent,
		Category: addCategory,
		Tags:     addTags,
		FileURL:  addFileURL,
		FileType: addFileType,
	}

	if addContentFile != "" {
		if addContent != "" {
			return errors.New("use either --content or --content-file, not both")
		}
		data, err := os.ReadFile(addContentFile)
		if err != nil {
			return fmt.Errorf("reading content file: %w", err)
		}

		norm, err := fileNormalisers.Normalise(addContentFile, data)
		switch {
		case errors.Is(err, normalisers.ErrUnsupportedFile):
			draft.Content = string(data)
		case err != nil:
			return err
		default:
			draft.Content = norm.Content
			draft.Metadata = norm.Metadata
			if draft.Title == "" {
				draft.Title = norm.Title
			}
		}
	}

	if err := ingestService.Add(cmd.Context(), draft); err != nil {
		return err
	}

	cmd.Printf("Added %q\n", draft.Title)
	return nil
}
