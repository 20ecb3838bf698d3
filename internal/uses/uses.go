// Package uses resolves `#use` pragmas against either the local
// filesystem (POSIX-relative paths for source-to-source use) or the
// closed set of bundled standard-library names (angle-bracket use).
package uses

import (
	"path"
	"strings"

	"github.com/azdavis/c0ls/internal/stdlib"
	"github.com/azdavis/c0ls/internal/textpos"
	"github.com/azdavis/c0ls/internal/uri"
)

// Kind distinguishes the two `#use` forms: `#use "local.h0"` vs.
// `#use <lib>`.
type Kind int

const (
	Local Kind = iota
	LibKind
)

// Raw is one `#use` pragma as discovered by lowering, before
// resolution: its literal path text (without quotes/brackets), which
// form it used, and its source range for diagnostics.
type Raw struct {
	Path  string
	Kind  Kind
	Range textpos.TextRange
}

// Resolved is one successfully resolved `#use`.
type Resolved struct {
	Range textpos.TextRange
	// Exactly one of File or Lib is set, matching which variant this is.
	IsLib bool
	File  uri.ID
	Lib   stdlib.Lib
}

// ErrorKind enumerates why a `#use` failed to resolve.
type ErrorKind int

const (
	NoSuchLib ErrorKind = iota
	NoSuchPath
	AbsolutePath
)

func (k ErrorKind) String() string {
	switch k {
	case NoSuchLib:
		return "no such library"
	case NoSuchPath:
		return "no such path"
	case AbsolutePath:
		return "cannot use an absolute path"
	default:
		return "unknown use error"
	}
}

// Error is one failed `#use` resolution.
type Error struct {
	Range textpos.TextRange
	Kind  ErrorKind
}

func (e Error) Error() string {
	return e.Kind.String()
}

// Result is the outcome of resolving every `#use` in one file.
type Result struct {
	Uses   []Resolved
	Errors []Error
}

// Get resolves every raw use found in the file named by id, relative to
// uris (the table that id's own path comes from).
func Get(uris *uri.Table, id uri.ID, raws []Raw) Result {
	var res Result
	selfPath := uris.Get(id)
	for _, u := range raws {
		switch u.Kind {
		case Local:
			fileID, errKind, ok := resolveLocal(uris, selfPath, u.Path)
			if !ok {
				res.Errors = append(res.Errors, Error{Range: u.Range, Kind: errKind})
				continue
			}
			res.Uses = append(res.Uses, Resolved{Range: u.Range, File: fileID})
		case LibKind:
			lib, ok := stdlib.ParseLib(u.Path)
			if !ok {
				res.Errors = append(res.Errors, Error{Range: u.Range, Kind: NoSuchLib})
				continue
			}
			res.Uses = append(res.Uses, Resolved{Range: u.Range, IsLib: true, Lib: lib})
		}
	}
	return res
}

// resolveLocal resolves path (a POSIX-relative path written inside a
// `#use "..."` pragma) against the directory containing selfURI,
// rejecting absolute paths and `..` that would walk above the root.
func resolveLocal(uris *uri.Table, selfURI, rel string) (uri.ID, ErrorKind, bool) {
	if path.IsAbs(rel) {
		return uri.ID{}, AbsolutePath, false
	}
	prefix, selfPath := "", selfURI
	if i := strings.Index(selfURI, "://"); i >= 0 {
		prefix, selfPath = selfURI[:i+3], selfURI[i+3:]
	}
	dir := path.Dir(selfPath)
	segs := strings.Split(path.Clean(rel), "/")
	var stack []string
	if dir != "." {
		stack = strings.Split(strings.TrimSuffix(dir, "/"), "/")
	}
	for _, seg := range segs {
		switch seg {
		case ".", "":
			// no-op
		case "..":
			if len(stack) == 0 || stack[len(stack)-1] == "" {
				return uri.ID{}, NoSuchPath, false
			}
			stack = stack[:len(stack)-1]
		default:
			stack = append(stack, seg)
		}
	}
	newURI := prefix + strings.Join(stack, "/")
	id, ok := uris.GetID(newURI)
	if !ok {
		return uri.ID{}, NoSuchPath, false
	}
	return id, 0, true
}
