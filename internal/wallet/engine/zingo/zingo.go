// Package zingo binds the engine contract to a zingo-cli compatible binary.
// Every client operation is one invocation of the binary against the
// wallet file in the configured data directory.
package zingo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/Maphikza/zcash-viewer/internal/logger"
	"github.com/Maphikza/zcash-viewer/internal/wallet/engine"
	"github.com/Maphikza/zcash-viewer/internal/wallet/network"
	"github.com/Maphikza/zcash-viewer/lib/utils"
)

const (
	DefaultBinary  = "zingo-cli"
	WalletFileName = "zingo-wallet.dat"
)

var (
	ErrNilWallet     = errors.New("wallet is nil")
	ErrNilConfig     = errors.New("config is nil")
	ErrChainMismatch = errors.New("wallet and config are for different chains")
)

// Engine is an engine.Engine backed by an external binary
type Engine struct {
	binary string
	env    []string
}

type Option func(*Engine)

// WithBinary sets the engine binary path or name
func WithBinary(path string) Option {
	return func(e *Engine) {
		if path != "" {
			e.binary = path
		}
	}
}

// WithEnv adds KEY=VALUE entries to the binary's environment
func WithEnv(kv ...string) Option {
	return func(e *Engine) { e.env = append(e.env, kv...) }
}

func New(opts ...Option) *Engine {
	e := &Engine{binary: DefaultBinary}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var _ engine.Engine = (*Engine)(nil)

func (e *Engine) LoadConfig(server *url.URL, dataDir string, chain network.ChainType, settings engine.WalletSettings,
	mempoolInterval engine.MempoolInterval, clientVersion string) (*engine.Config, error) {
	if server == nil {
		return nil, fmt.Errorf("server uri is required")
	}
	uri, err := network.ParseServerURI(server.String())
	if err != nil {
		return nil, err
	}
	if dataDir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	if settings.MinConfirmations == 0 {
		return nil, engine.ErrZeroConfirmations
	}
	if mempoolInterval == 0 {
		return nil, engine.ErrZeroMempoolInterval
	}
	if err := utils.EnsureDir(dataDir); err != nil {
		return nil, err
	}

	return &engine.Config{
		ServerURI:       uri,
		DataDir:         dataDir,
		Chain:           chain,
		Settings:        settings,
		MempoolInterval: mempoolInterval,
		ClientVersion:   clientVersion,
	}, nil
}

func (e *Engine) NewWatchOnlyWallet(chain network.ChainType, viewingKey string, birthday engine.BlockHeight,
	settings engine.WalletSettings) (*engine.Wallet, error) {
	return engine.NewWallet(chain, viewingKey, birthday, settings)
}

// NewClient creates the wallet file from the viewing key and birthday by
// running info with --from and --nosync. With overwrite set, an existing
// wallet file is removed first.
func (e *Engine) NewClient(ctx context.Context, wallet *engine.Wallet, config *engine.Config, overwrite bool) (engine.Client, error) {
	if wallet == nil {
		return nil, ErrNilWallet
	}
	if config == nil {
		return nil, ErrNilConfig
	}
	if wallet.Chain != config.Chain {
		return nil, ErrChainMismatch
	}

	walletPath := filepath.Join(config.DataDir, WalletFileName)
	if overwrite {
		if err := os.Remove(walletPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove existing wallet file: %v", err)
		}
	}

	c := &client{
		binary: e.binary,
		env:    e.env,
		config: *config,
		wallet: *wallet,
	}

	logger.Debug("Creating watch-only wallet",
		"chain", config.Chain.String(),
		"data_dir", config.DataDir,
		"birthday", uint32(wallet.Birthday),
		"key", wallet.Key.String(),
	)
	if _, err := c.run(ctx, cmdInfo, true); err != nil {
		return nil, err
	}
	return c, nil
}
