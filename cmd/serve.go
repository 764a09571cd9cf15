package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/docgrid/internal/catalog"
	"github.com/conneroisu/docgrid/internal/config"
	"github.com/conneroisu/docgrid/internal/logging"
	"github.com/conneroisu/docgrid/internal/server"
	"github.com/conneroisu/docgrid/internal/watcher"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the preview server with hot reload",
	Long: `Start the preview server with hot reload capability.
Watches the catalog file for changes and pushes live updates to connected
browsers over WebSocket.

Examples:
  docgrid serve                    # Serve on the configured host and port
  docgrid serve -p 3000            # Serve on port 3000
  docgrid serve --no-open          # Don't open the browser`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 8080, "Port to serve on")
	serveCmd.Flags().String("host", "localhost", "Host to bind to")
	serveCmd.Flags().Bool("no-open", false, "Don't open browser automatically")
	serveCmd.Flags().String("catalog", "categories.yml", "Category catalog file")

	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	viper.BindPFlag("server.no-open", serveCmd.Flags().Lookup("no-open"))
	viper.BindPFlag("catalog.path", serveCmd.Flags().Lookup("catalog"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := newCommandLogger("serve")

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("failed to load catalog %s: %w", cfg.Catalog.Path, err)
	}

	srv := server.New(cfg, cat, logger)

	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		cancel()
	}()

	if cfg.Development.HotReload {
		fileWatcher, watchErr := watchCatalog(ctx, cfg.Catalog.Path, cat, logger)
		if watchErr != nil {
			// The server still works without the watcher, reloads just
			// require a manual browser refresh
			log.Printf("Warning: catalog watching disabled: %v", watchErr)
		} else {
			defer fileWatcher.Stop()
		}
	}

	url := fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("Starting docgrid preview server at %s\n", url)

	if cfg.Server.Open && !cfg.Server.NoOpen {
		openBrowser(url)
	}

	if err := srv.Serve(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// watchCatalog reloads the catalog whenever its file changes on disk.
func watchCatalog(ctx context.Context, path string, cat *catalog.Catalog, logger logging.Logger) (*watcher.FileWatcher, error) {
	fileWatcher, err := watcher.NewFileWatcher(300 * time.Millisecond)
	if err != nil {
		return nil, err
	}

	fileWatcher.AddFilter(watcher.YAMLFilter)
	fileWatcher.AddFilter(watcher.NoGitFilter)
	fileWatcher.AddHandler(func(events []watcher.ChangeEvent) error {
		section, loadErr := catalog.LoadFile(path)
		if loadErr != nil {
			// Keep serving the last good catalog while the file is broken
			logger.Warn(ctx, loadErr, "catalog reload failed", "path", path)
			return nil
		}
		cat.Replace(section)
		logger.Info(ctx, "catalog reloaded", "path", path, "categories", len(section.Categories))
		return nil
	})

	if err := fileWatcher.AddPath(filepath.Clean(path)); err != nil {
		fileWatcher.Stop()
		return nil, err
	}

	if err := fileWatcher.Start(ctx); err != nil {
		fileWatcher.Stop()
		return nil, err
	}

	return fileWatcher, nil
}

// openBrowser opens the given URL in the default browser, best effort.
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
	if err := cmd.Start(); err != nil {
		log.Printf("Warning: failed to open browser: %v", err)
	}
}
