// Package util collects small, dependency-backed helpers shared by the
// cli and edit-application layers: atomic file writes and unified
// diffs, the way the teacher's own util package backs its dispatcher
// and runner.
package util

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// WriteFileAtomic writes data to path by writing to a sibling temp file,
// fsyncing, then renaming over the destination, so a crash mid-write
// never leaves a truncated file behind.
func WriteFileAtomic(path string, data []byte, mode os.FileMode) error {
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()
	defer func() { _ = tmp.Close() }()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

const (
	colorReset = "\x1b[0m"
	colorRed   = "\x1b[31m"
	colorGreen = "\x1b[32m"
	colorCyan  = "\x1b[36m"
)

// UnifiedDiff renders a unified diff between orig and mod, optionally
// ANSI-colored, for the CLI's "format --diff" output.
func UnifiedDiff(orig, mod, filename string, context int, color bool) string {
	d := difflib.UnifiedDiff{
		A:        difflib.SplitLines(orig),
		B:        difflib.SplitLines(mod),
		FromFile: "a/" + filename,
		ToFile:   "b/" + filename,
		Context:  context,
	}
	text, err := difflib.GetUnifiedDiffString(d)
	if err != nil {
		return "(diff error: " + err.Error() + ")"
	}
	if !color {
		return text
	}

	var sb strings.Builder
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if i == len(lines)-1 && l == "" {
			continue
		}
		switch {
		case strings.HasPrefix(l, "+"):
			sb.WriteString(colorGreen + l + colorReset + "\n")
		case strings.HasPrefix(l, "-"):
			sb.WriteString(colorRed + l + colorReset + "\n")
		case strings.HasPrefix(l, "@"):
			sb.WriteString(colorCyan + l + colorReset + "\n")
		default:
			sb.WriteString(l + "\n")
		}
	}
	return sb.String()
}
