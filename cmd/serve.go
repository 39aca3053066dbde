package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/patternbook/patternbook/internal/config"
	"github.com/patternbook/patternbook/internal/loader"
	"github.com/patternbook/patternbook/internal/registry"
	"github.com/patternbook/patternbook/internal/server"
	"github.com/patternbook/patternbook/internal/watcher"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the catalog preview server",
	Long: `Start a local HTTP server that renders the catalog on every request.
With hot reload enabled, catalog source files are watched and connected
browsers reload automatically when the catalog changes.

Examples:
  patternbook serve                 # Serve on the configured host/port
  patternbook serve -p 3000         # Override the port
  patternbook serve --disable-browser`,
	RunE: runServe,
}

var serveFlags *StandardFlags

func init() {
	rootCmd.AddCommand(serveCmd)

	serveFlags = AddStandardFlags(serveCmd, "server")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if lookupChanged(cmd.Flags(), "port") {
		cfg.Server.Port = serveFlags.Port
	}
	if lookupChanged(cmd.Flags(), "host") {
		cfg.Server.Host = serveFlags.Host
	}

	logger := newLogger()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := registry.NewCatalogRegistry()
	reg.SetTitle(cfg.Output.Title)

	l := loader.NewCatalogLoader(reg)
	if err := l.LoadPaths(cfg.Catalog.SourcePaths, cfg.Catalog.ExcludePatterns); err != nil {
		// Serve anyway: the page reports render errors, and a watch
		// cycle can fix the catalog without restarting
		for _, loadErr := range l.Errors().GetAllErrors() {
			logger.Warn(ctx, loadErr, "catalog load issue")
		}
	}

	srv := server.New(cfg, reg, logger)

	if cfg.Development.HotReload {
		fw, err := watcher.NewFileWatcher(300 * time.Millisecond)
		if err != nil {
			return fmt.Errorf("creating file watcher: %w", err)
		}
		defer fw.Stop()

		fw.AddFilter(watcher.CatalogFilter)
		fw.AddFilter(watcher.NoGitFilter)
		fw.AddHandler(func(events []watcher.ChangeEvent) error {
			logger.Info(ctx, "catalog changed, reloading", "files", len(events))
			reg.Clear()
			if err := l.LoadPaths(cfg.Catalog.SourcePaths, cfg.Catalog.ExcludePatterns); err != nil {
				for _, loadErr := range l.Errors().GetAllErrors() {
					logger.Warn(ctx, loadErr, "catalog load issue")
				}
			}
			srv.NotifyReload(ctx)
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
	}

	if cfg.Server.Open && !serveFlags.DisableBrowser {
		go openBrowser(srv.URL())
	}

	return srv.Start(ctx)
}

// openBrowser opens the preview URL with the platform's opener. Failure
// is non-fatal; the URL is already logged.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
