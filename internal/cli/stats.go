package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/azdavis/c0ls/internal/cache"
)

// RecordBuild opens the build-stats cache at dsn and records one
// completed build's statistics, histogramming diagnostic messages by
// their first word (a cheap stand-in for an error code) the way a
// `c0ls stats` table wants to bucket recurring problems.
func RecordBuild(dsn string, startedAt time.Time, duration time.Duration, fileCount int, messages []string) error {
	db, err := cache.Connect(dsn)
	if err != nil {
		return Wrap(ErrCache, "opening build-stats cache", err)
	}
	histogram := map[string]int{}
	for _, m := range messages {
		histogram[firstWord(m)]++
	}
	if err := cache.RecordRun(db, startedAt, duration, fileCount, len(messages), histogram); err != nil {
		return Wrap(ErrCache, "recording build run", err)
	}
	return nil
}

func firstWord(s string) string {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}

// PrintStats opens the build-stats cache at dsn and renders its most
// recent limit runs as a short plain-text table.
func PrintStats(dsn string, limit int) (string, error) {
	db, err := cache.Connect(dsn)
	if err != nil {
		return "", Wrap(ErrCache, "opening build-stats cache", err)
	}
	runs, err := cache.RecentRuns(db, limit)
	if err != nil {
		return "", Wrap(ErrCache, "reading build runs", err)
	}
	return renderStatsTable(runs), nil
}

func renderStatsTable(runs []cache.BuildRun) string {
	if len(runs) == 0 {
		return "no recorded build runs\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-20s  %8s  %6s  %6s\n", "started", "duration", "files", "diags")
	for _, r := range runs {
		fmt.Fprintf(&b, "%-20s  %8s  %6d  %6d\n",
			r.StartedAt.Format("2006-01-02 15:04:05"), r.Duration.Round(time.Millisecond), r.FileCount, r.DiagCount)
	}
	return b.String()
}
