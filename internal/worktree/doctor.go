package worktree

import (
	"context"
	"fmt"
	"os"
	"strings"

	"arbor/internal/config"
	"arbor/internal/hooks"
)

// Check is one doctor finding.
type Check struct {
	Name string `json:"name"`
	OK   bool   `json:"ok"`
	Note string `json:"note,omitempty"`
}

// DoctorReport aggregates environment and configuration checks.
type DoctorReport struct {
	Checks []Check
}

// Issues returns the failed checks.
func (r *DoctorReport) Issues() []Check {
	var issues []Check
	for _, c := range r.Checks {
		if !c.OK {
			issues = append(issues, c)
		}
	}
	return issues
}

func (r *DoctorReport) add(name string, ok bool, note string) {
	r.Checks = append(r.Checks, Check{Name: name, OK: ok, Note: note})
}

// Doctor verifies the environment: git availability, repository
// discovery, config files, worktree-root writability and the hook
// inventory. Read-only; takes no lock.
func (o *Orchestrator) Doctor(ctx context.Context) *DoctorReport {
	report := &DoctorReport{}

	if version, err := o.gw.Version(ctx); err != nil {
		report.add("git available", false, err.Error())
	} else {
		report.add("git available", true, version)
	}

	if o.gw.IsRepository(o.repoRoot) {
		report.add("repository root", true, o.repoRoot)
	} else {
		report.add("repository root", false, o.repoRoot+" does not look like a git repository")
	}

	if globalPath, err := config.GlobalPath(); err == nil {
		if _, err := os.Stat(globalPath); err == nil {
			report.add("global config", true, globalPath)
		} else {
			report.add("global config", true, "not present (optional): "+globalPath)
		}
	}

	localPath := config.LocalPath(o.repoRoot)
	if _, err := os.Stat(localPath); err == nil {
		report.add("local config", true, localPath)
	} else {
		report.add("local config", true, "not present (optional): "+localPath)
	}

	wtRoot, err := o.worktreeRoot()
	if err != nil {
		report.add("worktree root", false, err.Error())
		return report
	}
	report.add("worktree root", true, wtRoot)

	if info, err := os.Stat(wtRoot); err == nil && info.IsDir() {
		if writable(wtRoot) {
			report.add("worktree root writable", true, "")
		} else {
			report.add("worktree root writable", false, "cannot write to "+wtRoot)
		}
	} else {
		report.add("worktree root writable", true, "does not exist yet (will be created)")
	}

	runner := o.hookRunner()

	hooksFound := runner.Discover()
	localCount, globalCount := 0, 0
	for _, hook := range hooksFound {
		if hook.Origin == hooks.OriginLocal {
			localCount++
		} else {
			globalCount++
		}
	}
	report.add("hooks", true, fmt.Sprintf("%d local + %d global", localCount, globalCount))

	if nonExec := runner.NonExecutable(); len(nonExec) > 0 {
		note := fmt.Sprintf("%d hook(s) not executable, run chmod +x on: %s",
			len(nonExec), strings.Join(nonExec, ", "))
		report.add("hooks executable", false, note)
	}

	return report
}

// writable probes a directory for write access by creating a temp file.
func writable(dir string) bool {
	f, err := os.CreateTemp(dir, ".arbor-doctor-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}
