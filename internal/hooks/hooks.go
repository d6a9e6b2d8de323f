// Package hooks discovers and runs post-create hook scripts. Hooks are
// executable files in the local and global hook directories; every local
// hook runs before any global hook, each group in lexicographic filename
// order.
package hooks

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"arbor/internal/config"
	"arbor/internal/errors"
	"arbor/internal/logger"
	"arbor/internal/template"
)

// EnvPrefix is prepended to every template context key exported into a
// hook's environment.
const EnvPrefix = "WT_"

// Origin tells which hook directory a script came from.
type Origin string

const (
	OriginLocal  Origin = "local"
	OriginGlobal Origin = "global"
)

// Descriptor is a discovered hook. Descriptors are recomputed on every
// creation event and never persisted.
type Descriptor struct {
	Path   string
	Name   string
	Origin Origin
}

// Result records the outcome of one hook execution.
type Result struct {
	Descriptor
	Err      error
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// OK reports whether the hook succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Runner executes post-create hooks with bounded time and a defined
// failure policy.
type Runner struct {
	localDir  string
	globalDir string
	cfg       config.HooksConfig
}

// NewRunner creates a hook runner. localDir and globalDir are the hook
// directories themselves; either may be empty or nonexistent.
func NewRunner(localDir, globalDir string, cfg config.HooksConfig) *Runner {
	return &Runner{localDir: localDir, globalDir: globalDir, cfg: cfg}
}

// Discover lists executable hooks in execution order.
func (r *Runner) Discover() []Descriptor {
	var hooks []Descriptor
	hooks = append(hooks, collectExecutable(r.localDir, OriginLocal)...)
	hooks = append(hooks, collectExecutable(r.globalDir, OriginGlobal)...)
	return hooks
}

// NonExecutable lists files that look like hooks but cannot run, so the
// caller can warn instead of silently skipping them.
func (r *Runner) NonExecutable() []string {
	var paths []string
	paths = append(paths, collectNonExecutable(r.localDir)...)
	paths = append(paths, collectNonExecutable(r.globalDir)...)
	return paths
}

// Run executes all discovered hooks for a new worktree. The first failing
// hook aborts the remaining queue unless continue_on_error is set; either
// way every executed hook's outcome is returned. Hook failure never rolls
// back the worktree.
func (r *Runner) Run(ctx context.Context, worktreePath string, tctx template.Context) []Result {
	hooks := r.Discover()
	if len(hooks) == 0 {
		return nil
	}

	for _, path := range r.NonExecutable() {
		logger.Warnf("Hook %s is not executable, run: chmod +x %s", path, path)
	}

	env := BuildEnv(tctx)

	var results []Result
	for _, hook := range hooks {
		result := r.runOne(ctx, hook, worktreePath, env)
		results = append(results, result)

		if !result.OK() && !r.cfg.ContinueOnError {
			break
		}
	}
	return results
}

// runOne runs a single hook as a child process with the worktree as its
// working directory, enforcing the configured wall-clock timeout.
func (r *Runner) runOne(ctx context.Context, hook Descriptor, worktreePath string, env []string) Result {
	timeout := time.Duration(r.cfg.TimeoutSeconds) * time.Second
	hookCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(hookCtx, hook.Path)
	cmd.Dir = worktreePath
	cmd.Env = env
	// Without a wait delay, Run blocks past the deadline on the stdout and
	// stderr pipes while any descendant the hook spawned keeps them open.
	cmd.WaitDelay = time.Second

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	started := time.Now()
	err := cmd.Run()
	result := Result{
		Descriptor: hook,
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		Duration:   time.Since(started),
	}

	if err != nil {
		if hookCtx.Err() == context.DeadlineExceeded {
			result.Err = errors.HookTimeout(hook.Name, r.cfg.TimeoutSeconds)
		} else if exitErr, ok := err.(*exec.ExitError); ok {
			result.Err = errors.HookFailed(hook.Name, exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		} else {
			result.Err = errors.Wrap(errors.ErrHookFailed, "Failed to execute hook", err).
				WithContext("hook", hook.Name)
		}
	}
	return result
}

// Failed filters results down to the failures.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	return failed
}

// BuildEnv returns the parent environment plus every template context
// entry re-exported as an uppercase, prefixed variable.
func BuildEnv(tctx template.Context) []string {
	env := os.Environ()
	keys := make([]string, 0, len(tctx))
	for key := range tctx {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		env = append(env, EnvPrefix+strings.ToUpper(key)+"="+tctx[key])
	}
	return env
}

// collectExecutable lists executable regular files in dir, sorted
// lexicographically by filename.
func collectExecutable(dir string, origin Origin) []Descriptor {
	entries := readDirSorted(dir)

	var hooks []Descriptor
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		info, err := entry.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if isExecutable(info.Mode(), entry.Name()) {
			hooks = append(hooks, Descriptor{Path: path, Name: entry.Name(), Origin: origin})
		}
	}
	return hooks
}

// collectNonExecutable lists files with script-looking names that are not
// executable.
func collectNonExecutable(dir string) []string {
	entries := readDirSorted(dir)

	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		ext := filepath.Ext(name)
		looksLikeScript := ext == "" || ext == ".sh" || ext == ".bash" || ext == ".py"
		if looksLikeScript && !isExecutable(info.Mode(), name) {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths
}

func readDirSorted(dir string) []os.DirEntry {
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries
}

// isExecutable is the executability predicate: the execute bit on Unix,
// a recognized suffix on Windows.
func isExecutable(mode os.FileMode, name string) bool {
	if runtime.GOOS == "windows" {
		switch strings.ToLower(filepath.Ext(name)) {
		case ".exe", ".bat", ".cmd", ".ps1":
			return true
		}
		return false
	}
	return mode&0111 != 0
}
