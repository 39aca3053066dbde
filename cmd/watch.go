package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/patternbook/patternbook/internal/config"
	"github.com/patternbook/patternbook/internal/loader"
	"github.com/patternbook/patternbook/internal/registry"
	"github.com/patternbook/patternbook/internal/renderer"
	"github.com/patternbook/patternbook/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Aliases: []string{"w"},
	Short:   "Re-render the document when catalog sources change",
	Long: `Watch the catalog source paths and re-render the output document on
every change. The document is written atomically only when the whole
catalog renders; a broken edit leaves the previous document in place.

Examples:
  patternbook watch                 # Watch and write the configured output
  patternbook watch -o docs/p.md    # Watch with an explicit output file`,
	RunE: runWatch,
}

var watchOutput string

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "Output file (overrides output.path from config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if watchOutput != "" {
		cfg.Output.Path = watchOutput
	}

	logger := newLogger()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := registry.NewCatalogRegistry()
	reg.SetTitle(cfg.Output.Title)
	l := loader.NewCatalogLoader(reg)
	r := renderer.NewDocumentRenderer()

	renderOnce := func() {
		reg.Clear()
		if err := l.LoadPaths(cfg.Catalog.SourcePaths, cfg.Catalog.ExcludePatterns); err != nil {
			for _, loadErr := range l.Errors().GetAllErrors() {
				logger.Warn(ctx, loadErr, "catalog load issue")
			}
			return
		}

		document, err := r.Render(reg.Snapshot())
		if err != nil {
			logger.Error(ctx, err, "render failed, keeping previous document")
			return
		}
		if err := writeAtomic(cfg.Output.Path, document); err != nil {
			logger.Error(ctx, err, "write failed", "path", cfg.Output.Path)
			return
		}
		logger.Info(ctx, "document rendered", "path", cfg.Output.Path, "entries", reg.Count())
	}

	renderOnce()

	fw, err := watcher.NewFileWatcher(300 * time.Millisecond)
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer fw.Stop()

	fw.AddFilter(watcher.CatalogFilter)
	fw.AddFilter(watcher.NoGitFilter)
	fw.AddHandler(func(events []watcher.ChangeEvent) error {
		logger.Info(ctx, "catalog changed", "files", len(events))
		renderOnce()
		return nil
	})

	for _, path := range cfg.Catalog.SourcePaths {
		if err := fw.AddRecursive(path); err != nil {
			logger.Warn(ctx, err, "cannot watch path", "path", path)
		}
	}
	if err := fw.Start(ctx); err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}

	fmt.Fprintln(os.Stderr, "Watching catalog sources. Press Ctrl+C to stop.")
	<-ctx.Done()
	return nil
}

// writeAtomic writes content via a temp file and rename so readers
// never observe a half-written document.
func writeAtomic(path, content string) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmp, err := os.CreateTemp(dir, ".patternbook-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
