package main

import (
	journaldb "github.com/Maphikza/zcash-viewer/internal/database"
	"github.com/Maphikza/zcash-viewer/internal/logger"
	"github.com/Maphikza/zcash-viewer/internal/wallet/core"
)

// openJournal opens the sync journal when it is enabled; otherwise it
// returns nil and syncs leave no record.
func openJournal() (*journaldb.Journal, error) {
	if !settings.JournalEnabled {
		return nil, nil
	}
	return journaldb.InitSQLiteDB(settings.JournalDBPath)
}

// journalObserver records each finished sync. Write failures are logged and
// never affect the sync result.
func journalObserver(j *journaldb.Journal) core.Observer {
	return func(r core.RunReport) {
		if _, err := j.SaveSyncRun(toSyncRun(r)); err != nil {
			logger.Warn("Failed to record sync run", "error", err.Error())
		}
	}
}

func toSyncRun(r core.RunReport) journaldb.SyncRun {
	run := journaldb.SyncRun{
		Chain:          r.Chain.String(),
		Birthday:       r.Birthday,
		KeyFingerprint: r.KeyFingerprint,
		Status:         journaldb.StatusSucceeded,
		BalanceZat:     r.BalanceZat,
		StartedAt:      r.StartedAt,
		Duration:       r.Duration,
	}
	if r.Err != nil {
		run.Status = journaldb.StatusFailed
		run.Error = r.Err.Error()
	}
	return run
}
