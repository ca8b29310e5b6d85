package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/keystone-labs/kbs-cli/internal/logger"
)

var (
	watchCategory string
	watchTags     []string
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Ingest files dropped into a directory",
	Long: `Watches a directory and adds every new or rewritten text file as a
document. Markdown, HTML and plain text files are recognised; titles
come from headings or the file name. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchCategory, "category", "c", "", "category for ingested documents")
	watchCmd.Flags().StringSliceVar(&watchTags, "tags", nil, "tags for ingested documents")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}
	if _, err := requireSession(cmd.Context()); err != nil {
		return err
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("checking watch directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	cmd.Printf("Watching %s, press Ctrl+C to stop.\n", dir)
	return watchLoop(cmd.Context(), cmd, watcher)
}

// watchLoop processes filesystem events until the context is cancelled.
func watchLoop(ctx context.Context, cmd *cobra.Command, watcher *fsnotify.Watcher) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if err := ingestFile(ctx, event.Name); err != nil {
				logger.Warn("skipping %s: %v", event.Name, err)
				continue
			}
			cmd.Printf("Added %s\n", filepath.Base(event.Name))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error: %v", err)
		}
	}
}

// ingestFile turns one file into a document draft and adds it.
func ingestFile(ctx context.Context, path string) error {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return errors.New("hidden file")
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() || !info.Mode().IsRegular() {
		return errors.New("not a regular file")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	draft, err := fileNormalisers.Normalise(path, data)
	if err != nil {
		return err
	}
	draft.Category = watchCategory
	draft.Tags = watchTags
	return ingestService.Add(ctx, draft)
}
