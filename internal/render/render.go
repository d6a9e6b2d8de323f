// Package render formats operation results for the terminal and for
// machine consumption.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"arbor/internal/git"
	"arbor/internal/worktree"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	branchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

// JSON marshals v with the configured indent. indent 0 produces compact
// output.
func JSON(v interface{}, indent int) (string, error) {
	if indent <= 0 {
		data, err := json.Marshal(v)
		return string(data), err
	}
	data, err := json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	return string(data), err
}

// WorktreeList renders the short list view.
func WorktreeList(worktrees []git.WorktreeInfo) string {
	if len(worktrees) == 0 {
		return dimStyle.Render("No worktrees.")
	}

	var b strings.Builder
	rows := [][]string{{"BRANCH", "PATH"}}
	for _, wt := range worktrees {
		branch := wt.Branch
		switch {
		case wt.Bare:
			branch = "(bare)"
		case wt.Detached:
			branch = "(detached " + wt.Head + ")"
		}
		rows = append(rows, []string{branch, wt.Path})
	}
	writeColumns(&b, rows)
	return b.String()
}

// StatusTable renders the detailed status view.
func StatusTable(statuses []worktree.Status) string {
	if len(statuses) == 0 {
		return dimStyle.Render("No worktrees.")
	}

	rows := [][]string{{"BRANCH", "SHA", "DIRTY", "AHEAD", "BEHIND", "BEHIND-MAIN", "PATH"}}
	for _, s := range statuses {
		if s.Err != nil {
			rows = append(rows, []string{s.Branch, "-", "-", "-", "-", "-",
				errStyle.Render("error: " + s.Err.Error())})
			continue
		}
		dirty := ""
		if s.Dirty {
			dirty = warnStyle.Render("*")
		}
		branch := branchStyle.Render(s.Branch)
		if s.Locked {
			branch += dimStyle.Render(" (locked)")
		}
		rows = append(rows, []string{
			branch, s.SHA, dirty,
			fmt.Sprintf("%d", s.Ahead), fmt.Sprintf("%d", s.Behind),
			fmt.Sprintf("%d", s.BehindBase), s.Path,
		})
	}

	var b strings.Builder
	writeColumns(&b, rows)
	return b.String()
}

// SyncResults renders the pull-main outcome, one line per worktree.
func SyncResults(results []worktree.SyncResult) string {
	if len(results) == 0 {
		return dimStyle.Render("No worktrees to update.")
	}

	var b strings.Builder
	for _, r := range results {
		switch r.Action {
		case worktree.SyncUpdated:
			fmt.Fprintf(&b, "%s %s (%s)", okStyle.Render("updated"), branchStyle.Render(r.Branch), r.Strategy)
			if r.StashErr != nil {
				fmt.Fprintf(&b, " %s", warnStyle.Render("stash conflict: resolve and run: git stash pop"))
			}
		case worktree.SyncSkippedDirty:
			fmt.Fprintf(&b, "%s %s (dirty, use --autostash)", warnStyle.Render("skipped"), branchStyle.Render(r.Branch))
		default:
			fmt.Fprintf(&b, "%s %s: %v", errStyle.Render("failed"), branchStyle.Render(r.Branch), r.Err)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// PruneResults renders the prune-merged outcome, one line per branch.
func PruneResults(results []worktree.PruneResult) string {
	if len(results) == 0 {
		return dimStyle.Render("No merged branches to prune.")
	}

	var b strings.Builder
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(&b, "%s %s: %v\n", errStyle.Render("failed"), branchStyle.Render(r.Branch), r.Err)
			continue
		}
		var parts []string
		if r.WorktreeRemoved {
			parts = append(parts, "worktree removed")
		}
		if r.BranchDeleted {
			parts = append(parts, "branch deleted")
		}
		if len(parts) == 0 {
			parts = append(parts, "nothing to do")
		}
		fmt.Fprintf(&b, "%s %s (%s)\n", okStyle.Render("pruned"), branchStyle.Render(r.Branch), strings.Join(parts, ", "))
	}
	return b.String()
}

// Doctor renders the doctor report.
func Doctor(report *worktree.DoctorReport) string {
	var b strings.Builder
	for _, check := range report.Checks {
		mark := okStyle.Render("ok")
		if !check.OK {
			mark = errStyle.Render("FAIL")
		}
		fmt.Fprintf(&b, "%-4s %s", mark, check.Name)
		if check.Note != "" {
			fmt.Fprintf(&b, "  %s", dimStyle.Render(check.Note))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// HookFailures renders the post-create hook failures.
func HookFailures(result *worktree.CreateResult) string {
	var b strings.Builder
	for _, hr := range result.HookResults {
		if hr.OK() {
			continue
		}
		fmt.Fprintf(&b, "%s hook %s (%s): %v\n", errStyle.Render("failed"), hr.Name, hr.Origin, hr.Err)
	}
	return b.String()
}

// writeColumns renders rows as left-aligned columns two spaces apart.
// Column widths are measured with lipgloss so styled cells line up.
func writeColumns(b *strings.Builder, rows [][]string) {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	for rowIdx, row := range rows {
		for i, cell := range row {
			if rowIdx == 0 {
				cell = headerStyle.Render(cell)
			}
			b.WriteString(cell)
			if i < len(row)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+2))
			}
		}
		b.WriteByte('\n')
	}
}
