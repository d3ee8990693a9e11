package rescanner

import (
	"context"
	"time"

	"github.com/Maphikza/zcash-viewer/internal/wallet/engine"
	"github.com/Maphikza/zcash-viewer/internal/wallet/network"
)

// Rescanner is the part of an engine client that replays the chain.
type Rescanner interface {
	RescanAndAwait(ctx context.Context) error
}

type RescanConfig struct {
	Client            Rescanner
	Chain             network.ChainType
	StartBlock        engine.BlockHeight
	HeartbeatInterval time.Duration
}
