package cache

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	libsql "github.com/tursodatabase/libsql-client-go/libsql"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the build-stats cache at dsn and runs its migration.
// A local path opens through the pure-Go glebarez/sqlite dialector (no
// cgo dependency); a `libsql://` DSN dials through the libsql connector
// instead, for a team sharing one remote build-stats database, mirroring
// the teacher's own db.Connect split on DSN shape.
func Connect(dsn string) (*gorm.DB, error) {
	if !isRemote(dsn) {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("cache: creating cache directory: %w", err)
			}
		}
	}

	var (
		dialector gorm.Dialector
		conn      *sql.DB
	)
	if isRemote(dsn) {
		var (
			connector driver.Connector
			err       error
		)
		if token := os.Getenv("C0LS_CACHE_AUTH_TOKEN"); token != "" {
			connector, err = libsql.NewConnector(dsn, libsql.WithAuthToken(token))
		} else {
			connector, err = libsql.NewConnector(dsn)
		}
		if err != nil {
			return nil, fmt.Errorf("cache: creating libsql connector: %w", err)
		}
		conn = sql.OpenDB(connector)
		dialector = gormsqlite.New(gormsqlite.Config{
			DriverName: "libsql",
			Conn:       conn,
			DSN:        dsn,
		})
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		if conn != nil {
			conn.Close()
		}
		return nil, fmt.Errorf("cache: connecting: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("cache: obtaining *sql.DB: %w", err)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)
	if !isRemote(dsn) {
		sqlDB.Exec("PRAGMA journal_mode = WAL")
		sqlDB.Exec("PRAGMA synchronous = NORMAL")
		sqlDB.Exec("PRAGMA foreign_keys = ON")
	}

	if err := db.AutoMigrate(&BuildRun{}); err != nil {
		return nil, fmt.Errorf("cache: migrating: %w", err)
	}
	if err := QuickCheck(sqlDB); err != nil {
		return nil, fmt.Errorf("cache: initial quick_check: %w", err)
	}
	return db, nil
}

func isRemote(dsn string) bool {
	return strings.HasPrefix(dsn, "libsql://") ||
		strings.HasPrefix(dsn, "http://") ||
		strings.HasPrefix(dsn, "https://")
}

// QuickCheck runs PRAGMA quick_check and reports whether the database
// file is sound, the same health check the teacher's db layer runs on
// every open and close.
func QuickCheck(db *sql.DB) error {
	var result string
	if err := db.QueryRow("PRAGMA quick_check;").Scan(&result); err != nil {
		return fmt.Errorf("cache: quick_check scan: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("cache: quick_check failed: %s", result)
	}
	return nil
}

// execWithRetry retries a statement that fails with "database is
// locked", matching the retry discipline the teacher's internal/db
// layer applies to every write against its WAL-mode SQLite file.
func execWithRetry(db *gorm.DB, fn func(*gorm.DB) error) error {
	const maxRetries = 5
	var err error
	for range maxRetries {
		if err = fn(db); err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("cache: database is locked after %d retries: %w", maxRetries, err)
}
