// Package journaldb keeps an opt-in local record of finished syncs
package journaldb

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Maphikza/zcash-viewer/internal/logger"
)

var ErrClosed = errors.New("journal is closed")

// Journal stores sync runs in SQLite
type Journal struct {
	db *gorm.DB
}

// InitSQLiteDB opens (or creates) the journal database at dbPath and migrates
// its schema.
func InitSQLiteDB(dbPath string) (*Journal, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create directory: %v", err)
		}
	}

	config := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Error),
	}

	db, err := gorm.Open(sqlite.Open(dbPath), config)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	if err := db.AutoMigrate(&SQLiteSyncRun{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %v", err)
	}

	logger.Info("Sync journal initialized", "path", dbPath)
	return &Journal{db: db}, nil
}

// SaveSyncRun appends a run and returns its ID
func (j *Journal) SaveSyncRun(run SyncRun) (uint, error) {
	if j == nil || j.db == nil {
		return 0, ErrClosed
	}
	row := fromSyncRun(run)
	if err := j.db.Create(&row).Error; err != nil {
		return 0, fmt.Errorf("failed to save sync run: %v", err)
	}
	return row.ID, nil
}

// ListSyncRuns returns up to limit runs, newest first. A non-positive limit
// uses DefaultListLimit.
func (j *Journal) ListSyncRuns(limit int) ([]SyncRun, error) {
	if j == nil || j.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var rows []SQLiteSyncRun
	if err := j.db.Order("started_at DESC").Order("id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list sync runs: %v", err)
	}

	runs := make([]SyncRun, 0, len(rows))
	for _, r := range rows {
		runs = append(runs, r.toSyncRun())
	}
	return runs, nil
}

func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	sqlDB, err := j.db.DB()
	if err != nil {
		return err
	}
	j.db = nil
	return sqlDB.Close()
}
