package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"golang.org/x/exp/slices"

	"github.com/Maphikza/zcash-viewer/internal/wallet/network"
)

var (
	ErrMalformedViewingKey = errors.New("malformed viewing key")
	ErrSpendingKey         = errors.New("spending key supplied where a viewing key is required")
	ErrChainMismatch       = errors.New("viewing key belongs to a different network")
)

// KeyKind tells unified viewing keys from legacy Sapling ones
type KeyKind int

const (
	UnifiedFullViewingKey KeyKind = iota
	SaplingExtendedFullViewingKey
)

var viewingKeyPrefixes = map[string]struct {
	kind  KeyKind
	chain network.ChainType
}{
	"uview":             {UnifiedFullViewingKey, network.Mainnet},
	"uviewtest":         {UnifiedFullViewingKey, network.Testnet},
	"zxviews":           {SaplingExtendedFullViewingKey, network.Mainnet},
	"zxviewtestsapling": {SaplingExtendedFullViewingKey, network.Testnet},
}

var spendingKeyPrefixes = []string{
	"secret-extended-key-main",
	"secret-extended-key-test",
	"secret-spending-key-main",
	"secret-spending-key-test",
	"usk",
	"usktest",
}

// ViewingKey is a decoded, network-checked full viewing key.
type ViewingKey struct {
	encoded string
	hrp     string
	kind    KeyKind
	chain   network.ChainType
}

// ParseViewingKey checks the Bech32/Bech32m envelope of s and that it is a
// full viewing key for chain. The key body itself is left to the engine.
func ParseViewingKey(s string, chain network.ChainType) (ViewingKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ViewingKey{}, fmt.Errorf("%w: empty", ErrMalformedViewingKey)
	}

	// unified encodings exceed the 90 character bech32 limit
	hrp, _, err := bech32.DecodeNoLimit(s)
	if err != nil {
		return ViewingKey{}, fmt.Errorf("%w: %v", ErrMalformedViewingKey, err)
	}

	if slices.Contains(spendingKeyPrefixes, hrp) {
		return ViewingKey{}, ErrSpendingKey
	}

	prefix, ok := viewingKeyPrefixes[hrp]
	if !ok {
		return ViewingKey{}, fmt.Errorf("%w: unknown prefix %q", ErrMalformedViewingKey, hrp)
	}
	if prefix.chain != chain {
		return ViewingKey{}, fmt.Errorf("%w: %q keys are for %s, selected %s",
			ErrChainMismatch, hrp, prefix.chain.CLIName(), chain.CLIName())
	}

	return ViewingKey{
		encoded: s,
		hrp:     hrp,
		kind:    prefix.kind,
		chain:   prefix.chain,
	}, nil
}

// Encoded returns the full key text for handing to the engine
func (k ViewingKey) Encoded() string {
	return k.encoded
}

// Kind returns whether this is a unified or legacy Sapling key
func (k ViewingKey) Kind() KeyKind {
	return k.kind
}

// Chain returns the network the key belongs to
func (k ViewingKey) Chain() network.ChainType {
	return k.chain
}

// String never prints the key body.
func (k ViewingKey) String() string {
	if k.encoded == "" {
		return "<empty viewing key>"
	}
	tail := k.encoded
	if len(tail) > 6 {
		tail = tail[len(tail)-6:]
	}
	return k.hrp + "1…" + tail
}
