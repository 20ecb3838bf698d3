package cli

import (
	"os"

	"github.com/azdavis/c0ls/internal/edit"
	"github.com/azdavis/c0ls/internal/parse"
	"github.com/azdavis/c0ls/internal/util"
)

// FormatResult is one file's formatting outcome.
type FormatResult struct {
	Path      string
	Original  string
	Formatted string
	Changed   bool
}

// FormatFile reparses path's own content and re-emits it through
// internal/edit's whitespace-normalizing formatter. It never reuses a
// project-wide Db, since formatting is a per-file, parse-only query that
// shouldn't require the whole project's `#use` graph to resolve first.
func FormatFile(path string) (FormatResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FormatResult{}, Wrap(ErrIO, "reading "+path, err)
	}
	if !ValidExtension(path) {
		return FormatResult{}, CLIError{Code: ErrBadExtension, Message: path + " is not a .c0 or .h0 file"}
	}
	src := string(data)
	p := parse.Parse(src)
	formatted := edit.Format(p.Root)
	return FormatResult{Path: path, Original: src, Formatted: formatted, Changed: formatted != src}, nil
}

// Diff renders a unified diff between r.Original and r.Formatted.
func (r FormatResult) Diff() (string, error) {
	return util.UnifiedDiff(r.Original, r.Formatted, r.Path, 3, false), nil
}

// Write rewrites r.Path with r.Formatted atomically. c0ls runs one file
// per invocation rather than a long-lived multi-writer process, so
// there is no concurrent writer for a cross-process lock to guard
// against; a plain temp-file-plus-rename is all a single process needs.
func (r FormatResult) Write() error {
	if err := util.WriteFileAtomic(r.Path, []byte(r.Formatted), 0o644); err != nil {
		return Wrap(ErrIO, "writing "+r.Path, err)
	}
	return nil
}
