// Package editor generates per-worktree editor integration files. The only
// integration today is a .vscode/settings.json that makes each worktree's
// window visually distinct.
package editor

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"arbor/internal/config"
)

// WriteVSCodeSettings creates .vscode/settings.json in a new worktree.
// Existing settings are never overwritten. Disabled unless
// vscode.create_settings is set.
func WriteVSCodeSettings(worktreePath, branch, repoName string, cfg config.VSCodeConfig) error {
	if !cfg.CreateSettings {
		return nil
	}

	vscodeDir := filepath.Join(worktreePath, ".vscode")
	settingsPath := filepath.Join(vscodeDir, "settings.json")

	if _, err := os.Stat(settingsPath); err == nil {
		return nil
	}

	settings := map[string]interface{}{}

	if cfg.ColorBorders {
		color := BranchColor(branch)
		text := contrastingTextColor(color)
		settings["workbench.colorCustomizations"] = map[string]string{
			"titleBar.activeBackground":   "#" + color,
			"titleBar.inactiveBackground": "#" + color,
			"titleBar.activeForeground":   text,
			"titleBar.inactiveForeground": text,
		}
	}

	if cfg.CustomTitle {
		settings["window.title"] = fmt.Sprintf("%s${separator}%s", repoName, branch)
	}

	if err := os.MkdirAll(vscodeDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(settingsPath, append(data, '\n'), 0644)
}

// BranchColor derives a deterministic 6-digit hex color from a branch name.
func BranchColor(branch string) string {
	sum := sha256.Sum256([]byte(branch))
	return hex.EncodeToString(sum[:])[:6]
}

// contrastingTextColor picks white or black text for a background color
// using the WCAG relative luminance formula.
func contrastingTextColor(hexColor string) string {
	if luminance(hexColor) < 0.5 {
		return "#ffffff"
	}
	return "#000000"
}

func luminance(hexColor string) float64 {
	channel := func(offset int) float64 {
		var v int
		fmt.Sscanf(hexColor[offset:offset+2], "%02x", &v)
		c := float64(v) / 255
		if c <= 0.03928 {
			return c / 12.92
		}
		return math.Pow((c+0.055)/1.055, 2.4)
	}

	r := channel(0)
	g := channel(2)
	b := channel(4)
	return 0.2126*r + 0.7152*g + 0.0722*b
}
