package journaldb

import (
	"time"

	"gorm.io/gorm"
)

// SQLiteSyncRun is the stored form of a SyncRun
type SQLiteSyncRun struct {
	gorm.Model
	Chain          string `gorm:"index"`
	Birthday       uint32
	KeyFingerprint string `gorm:"index"`
	Status         string `gorm:"index"`
	BalanceZat     uint64
	Error          string
	StartedAt      time.Time `gorm:"index"`
	DurationMillis int64
}

func (m SQLiteSyncRun) toSyncRun() SyncRun {
	return SyncRun{
		ID:             m.ID,
		Chain:          m.Chain,
		Birthday:       m.Birthday,
		KeyFingerprint: m.KeyFingerprint,
		Status:         m.Status,
		BalanceZat:     m.BalanceZat,
		Error:          m.Error,
		StartedAt:      m.StartedAt,
		Duration:       time.Duration(m.DurationMillis) * time.Millisecond,
	}
}

func fromSyncRun(r SyncRun) SQLiteSyncRun {
	return SQLiteSyncRun{
		Chain:          r.Chain,
		Birthday:       r.Birthday,
		KeyFingerprint: r.KeyFingerprint,
		Status:         r.Status,
		BalanceZat:     r.BalanceZat,
		Error:          r.Error,
		StartedAt:      r.StartedAt.UTC(),
		DurationMillis: r.Duration.Milliseconds(),
	}
}
