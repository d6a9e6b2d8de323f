package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"arbor/internal/config"
	"arbor/internal/git"
	"arbor/internal/render"
	"arbor/internal/worktree"
)

// session bundles what every command needs: the discovered repository,
// its merged configuration and the orchestrator over both.
type session struct {
	Config *config.Config
	Orch   *worktree.Orchestrator
}

// openSession discovers the repository from the working directory and
// wires up the orchestrator.
func openSession(ctx context.Context) (*session, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	gw := git.New()
	commonDir, err := gw.CommonDir(ctx, cwd)
	if err != nil {
		return nil, err
	}
	repoRoot, err := gw.RepoRoot(ctx, cwd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(repoRoot)
	if err != nil {
		return nil, err
	}

	return &session{
		Config: cfg,
		Orch:   worktree.New(gw, cfg, repoRoot, commonDir),
	}, nil
}

// jsonRequested reads the root-level --json flag.
func jsonRequested(cmd *cobra.Command) bool {
	jsonOut, _ := cmd.Flags().GetBool("json")
	return jsonOut
}

// emitJSON writes v as JSON to the command's stdout with the configured
// indent.
func emitJSON(cmd *cobra.Command, cfg *config.Config, v interface{}) error {
	out, err := render.JSON(v, cfg.UI.JSONIndent)
	if err != nil {
		return err
	}
	cmd.Println(out)
	return nil
}
