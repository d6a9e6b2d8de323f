package worktree

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"arbor/internal/editor"
	"arbor/internal/errors"
	"arbor/internal/hooks"
	"arbor/internal/template"
)

// CreateOptions holds the per-invocation inputs of the create operation.
type CreateOptions struct {
	Branch string
	From   string // source branch; empty selects the configured base
	Track  bool   // set upstream to origin/<branch> when it exists
	Force  bool   // allow reuse of an existing empty target directory
}

// CreateResult reports a finished create operation. HookResults may
// contain failures while the worktree itself was created successfully.
type CreateResult struct {
	Branch      string
	Source      string
	Path        string
	HookResults []hooks.Result
}

// HooksFailed reports whether any post-create hook failed.
func (r *CreateResult) HooksFailed() bool {
	return len(hooks.Failed(r.HookResults)) > 0
}

// Create makes a new worktree for a branch at its templated path and runs
// the post-create hook pipeline. Hook failures do not roll back the
// created worktree; they are surfaced on the result.
func (o *Orchestrator) Create(ctx context.Context, opts CreateOptions) (*CreateResult, error) {
	handle, err := o.acquireLock()
	if err != nil {
		return nil, err
	}
	defer handle.Release()

	log := o.opLogger("create")

	// The prefixed name is the branch everywhere: git, the worktree path
	// (a prefix slash nests the directory) and the hook environment.
	gitBranch := o.applyAutoPrefix(opts.Branch)

	log.WithField("branch", gitBranch).Info("Fetching from origin")
	if err := o.gw.FetchOrigin(ctx, o.repoRoot); err != nil {
		return nil, err
	}

	source := o.resolveBase(ctx, opts.From)
	if !o.gw.RefExists(ctx, o.repoRoot, source) {
		return nil, errors.SourceBranchNotFound(source)
	}

	if existing, err := o.gw.WorktreePathForBranch(ctx, o.repoRoot, gitBranch); err != nil {
		return nil, err
	} else if existing != "" {
		return nil, errors.WorktreeExists(gitBranch, existing)
	}

	wtRoot, err := o.worktreeRoot()
	if err != nil {
		return nil, err
	}

	tctx := template.NewContext(o.repoRoot, wtRoot, gitBranch, source, time.Now())
	path, err := template.Resolve(o.cfg.Paths.WorktreePathTemplate, tctx)
	if err != nil {
		return nil, err
	}

	if err := o.prepareTargetDir(path, opts.Force); err != nil {
		return nil, err
	}

	createBranch := !o.gw.RefExists(ctx, o.repoRoot, gitBranch)

	log.WithFields(map[string]interface{}{"path": path, "source": source}).Info("Creating worktree")
	if err := o.gw.CreateWorktree(ctx, o.repoRoot, path, gitBranch, source, createBranch); err != nil {
		return nil, err
	}

	if opts.Track {
		upstream := "origin/" + gitBranch
		if o.gw.RefExists(ctx, o.repoRoot, upstream) {
			if err := o.gw.SetUpstream(ctx, path, gitBranch, upstream); err != nil {
				return nil, err
			}
			log.WithField("upstream", upstream).Info("Set upstream tracking")
		}
	}

	if err := editor.WriteVSCodeSettings(path, gitBranch, filepath.Base(o.repoRoot), o.cfg.VSCode); err != nil {
		log.WithError(err).Warn("Failed to write editor settings")
	}

	// Hooks see the same context, plus the now-known worktree path.
	hookCtx := tctx.With(template.KeyWorktreePath, path)
	results := o.hookRunner().Run(ctx, path, hookCtx)

	return &CreateResult{
		Branch:      gitBranch,
		Source:      source,
		Path:        path,
		HookResults: results,
	}, nil
}

// prepareTargetDir ensures the worktree target path is available and its
// parent exists. An existing empty directory may be reclaimed with force.
func (o *Orchestrator) prepareTargetDir(path string, force bool) error {
	if info, err := os.Stat(path); err == nil {
		if !force || !info.IsDir() {
			return errors.WorktreePathOccupied(path)
		}
		entries, err := os.ReadDir(path)
		if err != nil || len(entries) > 0 {
			return errors.WorktreePathOccupied(path)
		}
		if err := os.Remove(path); err != nil {
			return errors.Wrap(errors.ErrInternal, "Failed to remove empty directory", err).
				WithContext("path", path)
		}
	}

	return os.MkdirAll(filepath.Dir(path), 0755)
}
