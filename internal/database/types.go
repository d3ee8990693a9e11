package journaldb

import "time"

const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"

	DefaultListLimit = 20
)

// SyncRun is one journal entry. It records what happened, never the viewing
// key or any wallet state.
type SyncRun struct {
	ID             uint          `json:"id"`
	Chain          string        `json:"chain"`
	Birthday       uint32        `json:"birthday"`
	KeyFingerprint string        `json:"key_fingerprint"`
	Status         string        `json:"status"`
	BalanceZat     uint64        `json:"balance_zat"`
	Error          string        `json:"error,omitempty"`
	StartedAt      time.Time     `json:"started_at"`
	Duration       time.Duration `json:"duration"`
}
