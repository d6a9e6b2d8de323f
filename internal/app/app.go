// Package app wires the CLI together and is the entry point used by main.
package app

import (
	"context"

	"arbor/internal/cli"
)

// App represents the main application
type App struct {
	CLI *cli.Manager
}

// New creates a new application instance
func New() *App {
	return &App{}
}

// Run starts the application
func (a *App) Run(args []string) error {
	return a.RunWithContext(context.Background(), args)
}

// RunWithContext starts the application with a context for cancellation.
// Repository discovery and config loading happen per command, so that
// help and doctor still work when something is misconfigured.
func (a *App) RunWithContext(ctx context.Context, args []string) error {
	a.CLI = cli.New()

	// Show help if no arguments provided
	if len(args) == 0 {
		return a.CLI.ExecuteWithContext(ctx, []string{"--help"})
	}

	return a.CLI.ExecuteWithContext(ctx, args)
}
