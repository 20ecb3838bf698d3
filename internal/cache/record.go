package cache

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RecordRun inserts one completed build's statistics, retrying past a
// transient "database is locked" the way every write in the teacher's
// db layer does.
func RecordRun(db *gorm.DB, startedAt time.Time, duration time.Duration, fileCount, diagCount int, histogram map[string]int) error {
	run := BuildRun{
		StartedAt:   startedAt,
		Duration:    duration,
		FileCount:   fileCount,
		DiagCount:   diagCount,
		Diagnostics: datatypes.NewJSONType(histogram),
	}
	return execWithRetry(db, func(db *gorm.DB) error {
		return db.Create(&run).Error
	})
}

// RecentRuns returns the most recent limit build runs, newest first.
func RecentRuns(db *gorm.DB, limit int) ([]BuildRun, error) {
	var runs []BuildRun
	err := db.Order("started_at DESC").Limit(limit).Find(&runs).Error
	return runs, err
}
