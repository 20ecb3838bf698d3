package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// ValidExtension reports whether path ends in the core's two recognized
// source-file extensions.
func ValidExtension(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".c0" || ext == ".h0"
}

// Discover expands patterns (doublestar globs, e.g. "**/*.c0") against
// the filesystem and returns the sorted, de-duplicated set of matching
// paths, mirroring the teacher's FileWalker/matchPattern use of
// doublestar for recursive glob discovery.
func Discover(patterns []string) ([]string, error) {
	seen := map[string]bool{}
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, Wrap(ErrIO, "expanding pattern "+pattern, err)
		}
		if len(matches) == 0 && !containsMeta(pattern) {
			// a bare path with no glob metacharacters that matched
			// nothing is a caller error (a literal file that doesn't
			// exist), not a pattern that legitimately matched zero files.
			if _, err := os.Stat(pattern); err != nil {
				return nil, Wrap(ErrNoSuchFile, "no such file "+pattern, err)
			}
			matches = []string{pattern}
		}
		for _, m := range matches {
			seen[filepath.ToSlash(m)] = true
		}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out, nil
}

func containsMeta(pattern string) bool {
	for _, r := range pattern {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

// ReadFiles reads every path in paths concurrently over a bounded
// worker pool, mirroring internal/cli/dispatcher.go's jobs-channel
// pattern in the teacher repository, and returns a URI -> contents map
// ready to hand to the core's build. A read failure for any one file
// aborts the whole read, since a build with a silently-missing file
// would answer queries against an incomplete project.
func ReadFiles(paths []string, workers int) (map[string]string, error) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}
	if workers < 1 {
		workers = 1
	}

	type job struct {
		path string
	}
	type result struct {
		path string
		data []byte
		err  error
	}

	jobs := make(chan job, len(paths))
	results := make(chan result, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				data, err := os.ReadFile(j.path)
				results <- result{path: j.path, data: data, err: err}
			}
		}()
	}
	for _, p := range paths {
		jobs <- job{path: p}
	}
	close(jobs)
	wg.Wait()
	close(results)

	out := make(map[string]string, len(paths))
	for r := range results {
		if r.err != nil {
			return nil, Wrap(ErrIO, fmt.Sprintf("reading %s", r.path), r.err)
		}
		if !ValidExtension(r.path) {
			return nil, CLIError{Code: ErrBadExtension, Message: fmt.Sprintf("%s is not a .c0 or .h0 file", r.path)}
		}
		out[r.path] = string(r.data)
	}
	return out, nil
}
