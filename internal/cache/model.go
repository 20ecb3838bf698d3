// Package cache persists a small history of build invocations (file
// count, diagnostic count, duration, a per-kind diagnostic histogram)
// behind the `c0ls stats` command, the way the teacher's own db layer
// persists stage/apply/session rows.
package cache

import (
	"time"

	"gorm.io/datatypes"
)

// BuildRun is one recorded `c0ls build` or `c0ls diagnostics` invocation.
type BuildRun struct {
	ID        uint      `gorm:"primaryKey"`
	StartedAt time.Time `gorm:"index"`
	Duration  time.Duration
	FileCount int
	DiagCount int
	// Diagnostics is a histogram of the first words of diagnostic
	// messages seen in this run ("undefined", "mismatched", ...), stored as a JSON
	// column the way the teacher's Stage.TargetQuery/ConfidenceFactors
	// columns hold structured data alongside plain scalar fields.
	Diagnostics datatypes.JSONType[map[string]int]
}

func (BuildRun) TableName() string { return "build_runs" }
