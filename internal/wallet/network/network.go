// Package network holds the two fixed network profiles a sync can run against.
package network

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// ChainType identifies the Zcash network
type ChainType int

const (
	Mainnet ChainType = iota
	Testnet
)

// String returns the short chain identifier ("main" or "test")
func (c ChainType) String() string {
	if c == Testnet {
		return "test"
	}
	return "main"
}

// CLIName returns the network name understood by light-wallet tooling
func (c ChainType) CLIName() string {
	if c == Testnet {
		return "testnet"
	}
	return "mainnet"
}

const (
	MainnetServer = "https://mainnet.lightwalletd.com:9067"
	TestnetServer = "https://testnet.zec.rocks:443"

	MainnetDataDir = "zcash_data_mainnet"
	TestnetDataDir = "zcash_data_testnet"

	MainnetConfirmations uint32 = 10
	TestnetConfirmations uint32 = 3
)

var (
	mainnetURI = mustParseURI(MainnetServer)
	testnetURI = mustParseURI(TestnetServer)
)

// Profile is the server endpoint, local state location, chain and confirmation
// depth a sync runs with. It is derived from the testnet flag alone.
type Profile struct {
	ServerURI             *url.URL
	LocalStatePath        string
	Chain                 ChainType
	RequiredConfirmations uint32
}

// SelectProfile maps the testnet flag to one of the two fixed profiles
func SelectProfile(isTestnet bool) Profile {
	if isTestnet {
		return Profile{
			ServerURI:             cloneURI(testnetURI),
			LocalStatePath:        TestnetDataDir,
			Chain:                 Testnet,
			RequiredConfirmations: TestnetConfirmations,
		}
	}
	return Profile{
		ServerURI:             cloneURI(mainnetURI),
		LocalStatePath:        MainnetDataDir,
		Chain:                 Mainnet,
		RequiredConfirmations: MainnetConfirmations,
	}
}

// WithOverrides returns a copy of p with a different server and state location.
// Empty values keep the fixed defaults; baseDir anchors a relative state path.
// Chain and confirmation depth never change.
func (p Profile) WithOverrides(server, baseDir, dataDir string) (Profile, error) {
	out := p
	out.ServerURI = cloneURI(p.ServerURI)

	if server != "" {
		u, err := ParseServerURI(server)
		if err != nil {
			return Profile{}, err
		}
		out.ServerURI = u
	}
	if dataDir != "" {
		out.LocalStatePath = dataDir
	}
	if baseDir != "" && !filepath.IsAbs(out.LocalStatePath) {
		out.LocalStatePath = filepath.Join(baseDir, out.LocalStatePath)
	}
	return out, nil
}

// ParseServerURI parses a light-wallet server endpoint. Only http and https
// endpoints with a host are usable.
func ParseServerURI(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid server uri %q: %w", raw, err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return nil, fmt.Errorf("invalid server uri %q: unsupported scheme %q", raw, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid server uri %q: missing host", raw)
	}
	return u, nil
}

func mustParseURI(raw string) *url.URL {
	u, err := ParseServerURI(raw)
	if err != nil {
		panic(err)
	}
	return u
}

func cloneURI(u *url.URL) *url.URL {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
