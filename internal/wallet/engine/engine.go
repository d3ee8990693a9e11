// Package engine defines the contract of the light-wallet sync engine the
// viewer drives: configuration loading, watch-only wallet construction,
// client construction, rescan, and the read accessors used after a sync.
//
// The viewer never scans notes itself. Adapters such as engine/zingo bind
// these interfaces to a concrete engine.
package engine

//go:generate mockgen -source=engine.go -destination=../../mock/engine_mock.go -package=mock

import (
	"context"
	"net/url"

	"github.com/Maphikza/zcash-viewer/internal/wallet/network"
)

// Engine builds configurations, wallets and clients.
type Engine interface {
	// LoadConfig prepares the engine configuration. It fails when the
	// server URI is unusable or the data directory cannot be prepared.
	LoadConfig(server *url.URL, dataDir string, chain network.ChainType, settings WalletSettings,
		mempoolInterval MempoolInterval, clientVersion string) (*Config, error)

	// NewWatchOnlyWallet constructs a wallet from a viewing key and birthday.
	// It fails when the key is malformed, a spending key, or for the other chain.
	NewWatchOnlyWallet(chain network.ChainType, viewingKey string, birthday BlockHeight,
		settings WalletSettings) (*Wallet, error)

	// NewClient binds a wallet to a configuration. With overwrite set, any
	// wallet file left in the data directory is replaced.
	NewClient(ctx context.Context, wallet *Wallet, config *Config, overwrite bool) (Client, error)
}

// Client is a wallet bound to a light-wallet server.
type Client interface {
	// RescanAndAwait replays the chain from the wallet birthday and blocks
	// until the rescan has completed or failed.
	RescanAndAwait(ctx context.Context) error

	AccountBalance(ctx context.Context, account AccountID) (AccountBalance, error)
	TransactionSummaries(ctx context.Context, verbose bool) (TransactionSummaries, error)

	// Info returns the server status text as reported by the engine.
	Info(ctx context.Context) (string, error)

	UnifiedAddresses(ctx context.Context) (Addresses, error)

	Close() error
}
