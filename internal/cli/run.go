package cli

import (
	"path/filepath"

	"github.com/azdavis/c0ls/internal/analysis"
	"github.com/azdavis/c0ls/internal/config"
)

// BuildProject discovers every file matching patterns, reads them
// concurrently, and builds a fresh Db from the result. It also returns
// the sorted list of paths the Db was built from, so a caller can walk
// every file's diagnostics without re-discovering them.
func BuildProject(patterns []string, cfg config.Config) (*analysis.Db, []string, error) {
	paths, err := Discover(patterns)
	if err != nil {
		return nil, nil, err
	}
	files, err := ReadFiles(paths, cfg.Concurrency)
	if err != nil {
		return nil, nil, err
	}
	db := analysis.New(cfg)
	if err := db.Build(files); err != nil {
		return nil, nil, Wrap(ErrIO, "building project", err)
	}
	return db, paths, nil
}

// BuildContaining builds every `.c0`/`.h0` file under file's own
// directory, subdirectories included, the way `c0ls
// diagnostics <file>` scopes a single-file request to its project.
func BuildContaining(file string, cfg config.Config) (*analysis.Db, []string, error) {
	dir := filepath.Dir(file)
	return BuildProject([]string{filepath.Join(dir, "**/*.c0"), filepath.Join(dir, "**/*.h0")}, cfg)
}
