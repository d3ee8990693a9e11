package engine

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/Maphikza/zcash-viewer/internal/wallet/network"
)

var (
	ErrInvalidAccountID      = errors.New("account index out of range")
	ErrZeroConfirmations     = errors.New("minimum confirmations must be positive")
	ErrZeroMempoolInterval   = errors.New("mempool monitor interval must be positive")
	ErrBirthdayBeforeSapling = errors.New("birthday height is below sapling activation")
)

// BlockHeight is a chain height
type BlockHeight uint32

// Sapling activation heights; no shielded note can exist below them.
const (
	MainnetSaplingActivation BlockHeight = 419200
	TestnetSaplingActivation BlockHeight = 280000
)

// SaplingActivation returns the sapling activation height of chain
func SaplingActivation(chain network.ChainType) BlockHeight {
	if chain == network.Testnet {
		return TestnetSaplingActivation
	}
	return MainnetSaplingActivation
}

// maxAccountIndex is the largest non-hardened ZIP-32 account index.
const maxAccountIndex = 1<<31 - 1

// AccountID is a ZIP-32 account index that has been range checked.
type AccountID struct {
	index uint32
}

// NewAccountID validates a ZIP-32 account index
func NewAccountID(index uint32) (AccountID, error) {
	if index > maxAccountIndex {
		return AccountID{}, fmt.Errorf("%w: %d", ErrInvalidAccountID, index)
	}
	return AccountID{index: index}, nil
}

// Index returns the raw account index
func (a AccountID) Index() uint32 {
	return a.index
}

// MempoolInterval is how often, in seconds, the engine polls the mempool.
type MempoolInterval uint32

// NewMempoolInterval rejects a zero interval
func NewMempoolInterval(seconds uint32) (MempoolInterval, error) {
	if seconds == 0 {
		return 0, ErrZeroMempoolInterval
	}
	return MempoolInterval(seconds), nil
}

// SyncConfig is engine tuning passed through untouched.
type SyncConfig struct {
	TransparentAddressDiscovery string
	PerformanceLevel            string
}

// DefaultSyncConfig returns the engine's default tuning
func DefaultSyncConfig() SyncConfig {
	return SyncConfig{
		TransparentAddressDiscovery: "minimal",
		PerformanceLevel:            "high",
	}
}

// WalletSettings are the per-request wallet options.
type WalletSettings struct {
	MinConfirmations uint32
	SyncConfig       SyncConfig
}

// NewWalletSettings builds settings with the default sync tuning
func NewWalletSettings(minConfirmations uint32) (WalletSettings, error) {
	if minConfirmations == 0 {
		return WalletSettings{}, ErrZeroConfirmations
	}
	return WalletSettings{
		MinConfirmations: minConfirmations,
		SyncConfig:       DefaultSyncConfig(),
	}, nil
}

// Config is a loaded engine configuration.
type Config struct {
	ServerURI       *url.URL
	DataDir         string
	Chain           network.ChainType
	Settings        WalletSettings
	MempoolInterval MempoolInterval
	ClientVersion   string
}

// Wallet is a watch-only wallet for account 0 of a viewing key.
type Wallet struct {
	Chain    network.ChainType
	Key      ViewingKey
	Birthday BlockHeight
	Settings WalletSettings
}

// NewWallet validates the key against chain and the birthday against sapling
// activation. Engine adapters build their wallets through it.
func NewWallet(chain network.ChainType, viewingKey string, birthday BlockHeight, settings WalletSettings) (*Wallet, error) {
	key, err := ParseViewingKey(viewingKey, chain)
	if err != nil {
		return nil, err
	}
	if birthday < SaplingActivation(chain) {
		return nil, fmt.Errorf("%w: %d < %d", ErrBirthdayBeforeSapling, birthday, SaplingActivation(chain))
	}
	if settings.MinConfirmations == 0 {
		return nil, ErrZeroConfirmations
	}
	return &Wallet{
		Chain:    chain,
		Key:      key,
		Birthday: birthday,
		Settings: settings,
	}, nil
}

// AccountBalance is the per-pool balance of one account, in zatoshis.
// A nil field means the engine reported no value for that pool.
type AccountBalance struct {
	TotalSaplingBalance           *uint64 `json:"total_sapling_balance"`
	ConfirmedSaplingBalance       *uint64 `json:"confirmed_sapling_balance"`
	UnconfirmedSaplingBalance     *uint64 `json:"unconfirmed_sapling_balance"`
	TotalOrchardBalance           *uint64 `json:"total_orchard_balance"`
	ConfirmedOrchardBalance       *uint64 `json:"confirmed_orchard_balance"`
	UnconfirmedOrchardBalance     *uint64 `json:"unconfirmed_orchard_balance"`
	TotalTransparentBalance       *uint64 `json:"total_transparent_balance"`
	ConfirmedTransparentBalance   *uint64 `json:"confirmed_transparent_balance"`
	UnconfirmedTransparentBalance *uint64 `json:"unconfirmed_transparent_balance"`
}

// Zat returns a pointer to v, for building balances.
func Zat(v uint64) *uint64 {
	return &v
}

// ValueOrZero reads an optional balance, treating absence as zero
func ValueOrZero(v *uint64) uint64 {
	if v == nil {
		return 0
	}
	return *v
}

// OrchardTotal is confirmed plus unconfirmed orchard value
func (b AccountBalance) OrchardTotal() uint64 {
	return ValueOrZero(b.ConfirmedOrchardBalance) + ValueOrZero(b.UnconfirmedOrchardBalance)
}

// SaplingTotal is confirmed plus unconfirmed sapling value
func (b AccountBalance) SaplingTotal() uint64 {
	return ValueOrZero(b.ConfirmedSaplingBalance) + ValueOrZero(b.UnconfirmedSaplingBalance)
}

// ShieldedTotal sums both shielded pools. Transparent value is not included.
func (b AccountBalance) ShieldedTotal() uint64 {
	return b.OrchardTotal() + b.SaplingTotal()
}

// TransactionKind classifies a transaction from the wallet's point of view
type TransactionKind string

const (
	KindReceived   TransactionKind = "Received"
	KindSent       TransactionKind = "Sent(Send)"
	KindShield     TransactionKind = "Sent(Shield)"
	KindSendToSelf TransactionKind = "Sent(SendToSelf)"
)

// OutgoingNote is one output of a sent transaction
type OutgoingNote struct {
	Recipient string  `json:"recipient"`
	Value     uint64  `json:"value"`
	Memo      *string `json:"memo"`
}

// TransactionSummary describes one wallet transaction
type TransactionSummary struct {
	TxID        string          `json:"txid"`
	Datetime    uint64          `json:"datetime"`
	Status      string          `json:"status"`
	BlockHeight BlockHeight     `json:"blockheight"`
	Kind        TransactionKind `json:"kind"`
	Value       uint64          `json:"value"`
	Fee         *uint64         `json:"fee"`
	Memos       []string        `json:"memos"`
	Outgoing    []OutgoingNote  `json:"outgoing_tx_data"`
}

// TransactionSummaries is the wallet history in engine order
type TransactionSummaries []TransactionSummary
