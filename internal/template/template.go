// Package template implements $VARNAME substitution for worktree path
// templates and the hook environment. Substitution is literal string
// replacement only; there is no expression evaluation, so branch names and
// paths cannot inject behavior.
package template

import (
	"path/filepath"
	"regexp"
	"time"

	"arbor/internal/errors"
)

// Context maps template variable names to resolved values. It is built once
// per operation and never mutated; With returns an extended copy.
type Context map[string]string

// Variable names available in templates and re-exported to hooks.
const (
	KeyRepoRoot     = "REPO_ROOT"
	KeyRepoName     = "REPO_NAME"
	KeyWorktreeRoot = "WT_ROOT"
	KeyBranchName   = "BRANCH_NAME"
	KeySourceBranch = "SOURCE_BRANCH"
	KeyDateISO      = "DATE_ISO"
	KeyTimeISO      = "TIME_ISO"
	KeyWorktreePath = "WORKTREE_PATH"
)

var varPattern = regexp.MustCompile(`\$([A-Z_][A-Z0-9_]*)`)

// NewContext builds the template context for one operation.
func NewContext(repoRoot, wtRoot, branch, sourceBranch string, now time.Time) Context {
	return Context{
		KeyRepoRoot:     repoRoot,
		KeyRepoName:     filepath.Base(repoRoot),
		KeyWorktreeRoot: wtRoot,
		KeyBranchName:   branch,
		KeySourceBranch: sourceBranch,
		KeyDateISO:      now.Format("2006-01-02"),
		KeyTimeISO:      now.Format("15:04:05"),
	}
}

// With returns a copy of the context extended with one entry.
func (c Context) With(key, value string) Context {
	next := make(Context, len(c)+1)
	for k, v := range c {
		next[k] = v
	}
	next[key] = value
	return next
}

// Resolve substitutes every $NAME placeholder in tmpl from the context.
// Referencing a name absent from the context fails; a placeholder is never
// silently replaced with an empty string.
func Resolve(tmpl string, ctx Context) (string, error) {
	var missing string

	result := varPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := match[1:]
		value, ok := ctx[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return match
		}
		return value
	})

	if missing != "" {
		return "", errors.TemplateUnknownVariable(missing)
	}
	return result, nil
}

// DefaultRoot returns the default worktree root for a repository: the
// sibling directory <parent>/<repo>-worktrees.
func DefaultRoot(repoRoot string) string {
	return filepath.Join(filepath.Dir(repoRoot), filepath.Base(repoRoot)+"-worktrees")
}

// ResolveRoot expands the configured worktree root template, which may
// reference $REPO_ROOT and $REPO_NAME. An empty template selects the
// default sibling directory.
func ResolveRoot(repoRoot, rootTemplate string) (string, error) {
	if rootTemplate == "" {
		return DefaultRoot(repoRoot), nil
	}

	ctx := Context{
		KeyRepoRoot: repoRoot,
		KeyRepoName: filepath.Base(repoRoot),
	}
	return Resolve(rootTemplate, ctx)
}
