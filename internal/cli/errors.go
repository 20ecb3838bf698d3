// Package cli is the driver layer: it discovers files, drives
// internal/analysis's Db through a build and its queries, and renders
// results for a terminal or for JSON consumption. It is the only layer
// that touches the filesystem, environment, or CLI flags — the core
// itself takes file contents as plain maps and never does I/O.
package cli

import "github.com/azdavis/c0ls/internal/core"

// Error codes, re-exported from internal/core so every command body in
// this package can name them without an extra import.
const (
	ErrBadExtension = core.ErrBadExtension
	ErrIO           = core.ErrIO
	ErrNoSuchFile   = core.ErrNoSuchFile
	ErrCache        = core.ErrCache
	ErrPanic        = core.ErrPanic
)

// CLIError is internal/core's uniform driver-error payload, kept as a
// plain value (not folded into the core's diagnostics, which are never
// Go errors) for every driver-boundary failure: bad file extension, I/O
// errors, bad flags, cache errors.
type CLIError = core.CLIError

// Wrap builds a CLIError carrying inner's message as Detail.
func Wrap(code, msg string, inner error) error {
	return core.Wrap(code, msg, inner)
}
