package errors

import "fmt"

// Configuration errors

func ConfigParseError(path string, cause error) *ArborError {
	return WrapWithDetails(ErrConfigParse, "Failed to parse configuration", fmt.Sprintf("Path: %s", path), cause)
}

func ConfigValidationError(field, reason string) *ArborError {
	return NewWithDetails(ErrConfigValidation, "Configuration validation failed",
		fmt.Sprintf("Field: %s, Reason: %s", field, reason))
}

// Repository errors

func RepoNotFound(cause error) *ArborError {
	return Wrap(ErrRepoNotFound, "Not in a git repository", cause)
}

// Template errors

func TemplateUnknownVariable(name string) *ArborError {
	return NewWithDetails(ErrTemplateUnknownVar, "Unknown template variable", fmt.Sprintf("$%s", name))
}

// Lock errors

func LockHeld(path string, pid int) *ArborError {
	details := fmt.Sprintf("Lock file: %s", path)
	if pid > 0 {
		details = fmt.Sprintf("Lock file: %s, held by PID %d", path, pid)
	}
	return NewWithDetails(ErrLockHeld, "Another arbor process is running in this repository", details)
}

func LockIO(path string, cause error) *ArborError {
	return WrapWithDetails(ErrLockIO, "Cannot access lock file", fmt.Sprintf("Path: %s", path), cause)
}

// Git errors

func GitCommandFailed(args []string, stderr string, cause error) *ArborError {
	return WrapWithDetails(ErrGitCommand, "Git command failed",
		fmt.Sprintf("Command: git %v, Stderr: %s", args, stderr), cause)
}

func BranchAlreadyCheckedOut(branch, path string) *ArborError {
	return NewWithDetails(ErrBranchAlreadyCheckedOut, "Branch is already checked out in another worktree",
		fmt.Sprintf("Branch: %s, Worktree: %s", branch, path))
}

func UnpushedCommits(branch string, count int) *ArborError {
	return NewWithDetails(ErrUnpushedCommits, "Branch has unpushed commits",
		fmt.Sprintf("Branch: %s, Commits: %d", branch, count))
}

func WorktreeNotFound(branch string) *ArborError {
	return NewWithDetails(ErrWorktreeNotFound, "No worktree found for branch", fmt.Sprintf("Branch: %s", branch))
}

func WorktreeExists(branch, path string) *ArborError {
	return NewWithDetails(ErrWorktreeExists, "Branch already has a worktree",
		fmt.Sprintf("Branch: %s, Path: %s", branch, path))
}

func WorktreePathOccupied(path string) *ArborError {
	return NewWithDetails(ErrWorktreePathOccupied, "Directory already exists", fmt.Sprintf("Path: %s", path))
}

func SourceBranchNotFound(branch string) *ArborError {
	return NewWithDetails(ErrSourceBranchNotFound, "Source branch does not exist", fmt.Sprintf("Branch: %s", branch))
}

// Hook errors

func HookFailed(name string, exitCode int, stderr string) *ArborError {
	return NewWithDetails(ErrHookFailed, "Hook failed",
		fmt.Sprintf("Hook: %s, Exit code: %d, Stderr: %s", name, exitCode, stderr))
}

func HookTimeout(name string, seconds int) *ArborError {
	return NewWithDetails(ErrHookTimeout, "Hook timed out",
		fmt.Sprintf("Hook: %s, Timeout: %ds", name, seconds))
}

// Synchronization errors

func SkippedDirty(branch string) *ArborError {
	return NewWithDetails(ErrSkippedDirty, "Skipped dirty worktree (use --stash to auto-stash)",
		fmt.Sprintf("Branch: %s", branch))
}

func UpdateConflict(branch, strategy string, cause error) *ArborError {
	return WrapWithDetails(ErrUpdateConflict, "Update failed",
		fmt.Sprintf("Branch: %s, Strategy: %s", branch, strategy), cause)
}

func StashRestoreConflict(branch string, cause error) *ArborError {
	return WrapWithDetails(ErrStashRestoreConflict, "Failed to restore stashed changes (run 'git stash pop' manually)",
		fmt.Sprintf("Branch: %s", branch), cause)
}

// Input errors

var ErrOperationAborted = New(ErrAborted, "aborted by user")
