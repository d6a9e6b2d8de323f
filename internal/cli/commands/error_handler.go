package commands

import (
	"fmt"

	"arbor/internal/errors"
	"arbor/internal/logger"
)

// HandleError processes errors and provides user-friendly output
func HandleError(err error) error {
	if err == nil {
		return nil
	}

	ae, ok := err.(*errors.ArborError)
	if !ok {
		return err
	}

	// Log the full error for debugging
	logger.WithError(err).Debug("Operation failed")

	switch ae.Code {
	case errors.ErrRepoNotFound:
		return fmt.Errorf("%v\n\nTip: Run arbor from inside a git repository.", err)

	case errors.ErrLockHeld:
		return fmt.Errorf("%v\n\nTip: Wait for the other arbor process to finish, or remove a stale lock file.", err)

	case errors.ErrWorktreeNotFound:
		return fmt.Errorf("%v\n\nTip: Use 'arbor list' to see available worktrees.", err)

	case errors.ErrWorktreeExists:
		return fmt.Errorf("%v\n\nTip: Use 'arbor where <branch>' to find the existing worktree.", err)

	case errors.ErrWorktreePathOccupied:
		return fmt.Errorf("%v\n\nTip: Remove the directory, or use --force to reclaim an empty one.", err)

	case errors.ErrSourceBranchNotFound:
		return fmt.Errorf("%v\n\nTip: Check the branch name, or fetch the remote it lives on.", err)

	case errors.ErrUnpushedCommits:
		return fmt.Errorf("%v\n\nTip: Push the branch first, or use --force to discard the commits.", err)

	case errors.ErrTemplateUnknownVar:
		return fmt.Errorf("%v\n\nTip: Check worktree_path_template in your arbor config.", err)

	case errors.ErrAborted:
		return fmt.Errorf("%v\n\nTip: Re-run with --yes to confirm.", err)

	default:
		return err
	}
}
