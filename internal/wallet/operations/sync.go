package operations

import (
	"context"
	"time"

	zerrors "github.com/Maphikza/zcash-viewer/internal/errors"
	"github.com/Maphikza/zcash-viewer/internal/logger"
	"github.com/Maphikza/zcash-viewer/internal/wallet/engine"
	"github.com/Maphikza/zcash-viewer/internal/wallet/network"
	"github.com/Maphikza/zcash-viewer/lib/rescanner"
	"github.com/Maphikza/zcash-viewer/lib/utils"
)

const (
	// MempoolMonitorInterval is the engine's mempool poll period in seconds
	MempoolMonitorInterval uint32 = 1
	// ClientVersion is reported to the light-wallet server
	ClientVersion = "0.1.0"
)

// SyncRequest is one sync_wallet call as received from the shell
type SyncRequest struct {
	ViewingKey string
	IsTestnet  bool
	Birthday   uint32
}

// Orchestrator builds an ephemeral watch-only wallet and drives it through a
// full rescan. It holds no per-request state and is safe to share.
type Orchestrator struct {
	engine            engine.Engine
	clientVersion     string
	heartbeatInterval time.Duration
}

type Option func(*Orchestrator)

// WithClientVersion overrides the version string sent to the server
func WithClientVersion(v string) Option {
	return func(o *Orchestrator) {
		if v != "" {
			o.clientVersion = v
		}
	}
}

// WithHeartbeatInterval sets how often a running rescan is logged
func WithHeartbeatInterval(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.heartbeatInterval = d
	}
}

func NewOrchestrator(eng engine.Engine, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		engine:        eng,
		clientVersion: ClientVersion,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// RunSync loads the engine configuration, builds the wallet, opens a client
// over a fresh wallet file and waits for the rescan to finish. The first
// failing step aborts the run; nothing is retried. On success the caller owns
// the returned client and must Close it.
func (o *Orchestrator) RunSync(ctx context.Context, req SyncRequest, profile network.Profile) (engine.Client, error) {
	logger.Info("Starting wallet sync",
		"chain", profile.Chain.String(),
		"server", profile.ServerURI.String(),
		"birthday", req.Birthday,
		"key_fingerprint", utils.KeyFingerprint(req.ViewingKey),
	)

	settings, err := engine.NewWalletSettings(profile.RequiredConfirmations)
	if err != nil {
		return nil, zerrors.Wrap(err, zerrors.ErrorTypeConfiguration, "load_config", "invalid wallet settings")
	}
	mempool, err := engine.NewMempoolInterval(MempoolMonitorInterval)
	if err != nil {
		return nil, zerrors.Wrap(err, zerrors.ErrorTypeConfiguration, "load_config", "invalid mempool interval")
	}

	config, err := o.engine.LoadConfig(profile.ServerURI, profile.LocalStatePath, profile.Chain, settings, mempool, o.clientVersion)
	if err != nil {
		return nil, zerrors.Wrap(err, zerrors.ErrorTypeConfiguration, "load_config", "failed to load engine configuration")
	}

	wallet, err := o.engine.NewWatchOnlyWallet(profile.Chain, req.ViewingKey, engine.BlockHeight(req.Birthday), settings)
	if err != nil {
		return nil, zerrors.Wrap(err, zerrors.ErrorTypeWalletConstruction, "create_wallet", "failed to build watch-only wallet")
	}

	client, err := o.engine.NewClient(ctx, wallet, config, true)
	if err != nil {
		return nil, zerrors.Wrap(err, zerrors.ErrorTypeWalletConstruction, "create_client", "failed to create light client")
	}

	err = rescanner.PerformRescan(ctx, rescanner.RescanConfig{
		Client:            client,
		Chain:             profile.Chain,
		StartBlock:        engine.BlockHeight(req.Birthday),
		HeartbeatInterval: o.heartbeatInterval,
	})
	if err != nil {
		if cerr := client.Close(); cerr != nil {
			logger.Warn("Failed to close client after rescan failure", "error", cerr.Error())
		}
		return nil, zerrors.Wrap(err, zerrors.ErrorTypeSync, "rescan", "wallet rescan failed")
	}

	return client, nil
}
