package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/plainhq/plaindex/internal/config"
	"github.com/plainhq/plaindex/internal/index"
	"github.com/plainhq/plaindex/internal/nav"
	"github.com/plainhq/plaindex/internal/scanner"
)

// workspace bundles the loaded configuration and a freshly built index
// for one CLI invocation.
type workspace struct {
	root  string
	cfg   *config.Config
	coord *index.Coordinator
	nav   *nav.Navigator
}

// openWorkspace locates the workspace root, loads configuration, and
// builds the in-memory concept index. Every query command pays one
// rebuild because the index has no on-disk form.
func openWorkspace(ctx context.Context) (*workspace, error) {
	root, err := config.FindProjectRoot(".")
	if err != nil {
		root, _ = os.Getwd()
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	coord := index.NewCoordinator(index.CoordinatorConfig{
		Roots:        cfg.AbsoluteRoots(root),
		Extension:    cfg.Docs.Extension,
		ExcludeDirs:  cfg.Exclude.Dirs,
		IgnoreMarker: cfg.Exclude.Marker,
		Scanner:      scanner.New(),
	})
	if err := coord.Rebuild(ctx); err != nil {
		return nil, fmt.Errorf("indexing failed: %w", err)
	}

	navigator, err := nav.New(coord)
	if err != nil {
		return nil, err
	}

	return &workspace{
		root:  root,
		cfg:   cfg,
		coord: coord,
		nav:   navigator,
	}, nil
}
