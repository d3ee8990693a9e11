package rescanner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Maphikza/zcash-viewer/internal/logger"
)

const defaultHeartbeatInterval = 15 * time.Second

var ErrNoClient = errors.New("client is nil, cannot proceed with rescan")

// PerformRescan starts a full rescan and waits for it to finish, logging a
// heartbeat while the engine works. There is no timeout here: the engine's
// rescan owns the suspension and honours ctx itself.
func PerformRescan(ctx context.Context, config RescanConfig) error {
	if config.Client == nil {
		return ErrNoClient
	}

	interval := config.HeartbeatInterval
	if interval <= 0 {
		interval = defaultHeartbeatInterval
	}

	logger.Info("Starting full rescan",
		"chain", config.Chain.String(),
		"start_block", uint32(config.StartBlock),
	)
	started := time.Now()

	// Buffered so the rescan goroutine never blocks after we return.
	rescanErrChan := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				rescanErrChan <- fmt.Errorf("rescan panicked: %v", r)
			}
		}()
		rescanErrChan <- config.Client.RescanAndAwait(ctx)
	}()

	heartbeat := time.NewTicker(interval)
	defer heartbeat.Stop()

	for {
		select {
		case err := <-rescanErrChan:
			elapsed := time.Since(started)
			if err != nil {
				logger.Error("Rescan failed",
					"chain", config.Chain.String(),
					"elapsed", elapsed.String(),
					"error", err.Error(),
				)
				return err
			}
			logger.Info("Rescan completed",
				"chain", config.Chain.String(),
				"elapsed", elapsed.String(),
			)
			return nil
		case <-heartbeat.C:
			logger.Info("Rescan still running",
				"chain", config.Chain.String(),
				"elapsed", time.Since(started).Round(time.Second).String(),
			)
		}
	}
}
