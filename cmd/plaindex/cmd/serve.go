package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/plainhq/plaindex/internal/config"
	idxerrors "github.com/plainhq/plaindex/internal/errors"
	"github.com/plainhq/plaindex/internal/index"
	"github.com/plainhq/plaindex/internal/logging"
	mcpserver "github.com/plainhq/plaindex/internal/mcp"
	"github.com/plainhq/plaindex/internal/nav"
	"github.com/plainhq/plaindex/internal/scanner"
	"github.com/plainhq/plaindex/internal/watcher"
)

type serveOptions struct {
	transport string
	noWatch   bool
}

func newServeCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Index the workspace and serve MCP requests",
		Long: `Index the workspace and serve concept queries over MCP.

The index is rebuilt at startup, then kept current by watching the
document roots for changes. Stdout carries JSON-RPC exclusively; all
diagnostics go to the log file.

Examples:
  plaindex serve
  plaindex serve --no-watch
  plaindex serve --debug`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.transport, "transport", "t", "stdio", "Transport: stdio")
	cmd.Flags().BoolVar(&opts.noWatch, "no-watch", false, "Disable file watching (index once at startup)")

	return cmd
}

// runServe builds the index, acquires the workspace lock, and runs the
// MCP server alongside the file watcher until the context ends.
//
// The MCP protocol requires stdout to carry JSON-RPC messages
// exclusively, so nothing here writes to stdout.
func runServe(ctx context.Context, opts serveOptions) error {
	// File logging only; stderr stays quiet unless --debug set it up.
	if loggingCleanup == nil {
		logCfg := logging.DefaultConfig()
		logCfg.WriteToStderr = false
		if logger, cleanup, err := logging.Setup(logCfg); err == nil {
			slog.SetDefault(logger)
			defer cleanup()
		}
	}

	root, err := config.FindProjectRoot(".")
	if err != nil {
		return err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	if opts.transport == "" {
		opts.transport = cfg.Server.Transport
	}

	// One server per workspace.
	dataDir := filepath.Join(root, config.DataDirName)
	lock := index.NewWorkspaceLock(dataDir)
	acquired, err := lock.TryLock()
	if err != nil {
		return err
	}
	if !acquired {
		return idxerrors.New(idxerrors.ErrCodeWorkspaceLocked,
			fmt.Sprintf("another plaindex server is already indexing %s", root), nil).
			WithSuggestion("stop the other server or remove a stale lock at " + lock.Path())
	}
	defer func() { _ = lock.Unlock() }()

	roots := cfg.AbsoluteRoots(root)
	coord := index.NewCoordinator(index.CoordinatorConfig{
		Roots:        roots,
		Extension:    cfg.Docs.Extension,
		ExcludeDirs:  cfg.Exclude.Dirs,
		IgnoreMarker: cfg.Exclude.Marker,
		Scanner:      scanner.New(),
	})

	slog.Info("Building initial index", slog.String("root", root))
	if err := coord.Rebuild(ctx); err != nil {
		return fmt.Errorf("initial indexing failed: %w", err)
	}

	navigator, err := nav.New(coord)
	if err != nil {
		return err
	}
	server, err := mcpserver.NewServer(navigator, coord)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	if !opts.noWatch {
		debounce, err := cfg.DebounceWindow()
		if err != nil {
			return err
		}
		w := watcher.NewFSWatcher(watcher.Options{
			DebounceWindow: debounce,
			Extension:      cfg.Docs.Extension,
			ExcludeDirs:    cfg.Exclude.Dirs,
			IgnoreMarker:   cfg.Exclude.Marker,
		})
		if err := w.Start(ctx, roots); err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}
		defer func() { _ = w.Stop() }()

		g.Go(func() error {
			return runWatchLoop(ctx, w, coord)
		})
	}

	g.Go(func() error {
		return server.Serve(ctx, opts.transport)
	})

	err = g.Wait()
	if err == context.Canceled {
		return nil
	}
	return err
}

// runWatchLoop applies debounced file events to the index until the
// context ends or the watcher closes its channels.
func runWatchLoop(ctx context.Context, w watcher.Watcher, coord *index.Coordinator) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.Events():
			if !ok {
				return nil
			}
			switch event.Operation {
			case watcher.OpDelete:
				coord.Remove(event.Path)
			default:
				if err := coord.Update(ctx, event.Path); err != nil {
					slog.Warn("failed to apply file event",
						slog.String("path", event.Path),
						slog.String("error", err.Error()))
				}
			}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			slog.Warn("watcher error", slog.String("error", err.Error()))
		}
	}
}
