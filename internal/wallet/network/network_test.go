package network

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectProfile(t *testing.T) {
	tests := []struct {
		name          string
		isTestnet     bool
		server        string
		dataDir       string
		chain         ChainType
		confirmations uint32
	}{
		{"testnet", true, TestnetServer, TestnetDataDir, Testnet, 3},
		{"mainnet", false, MainnetServer, MainnetDataDir, Mainnet, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := SelectProfile(tt.isTestnet)

			assert.Equal(t, tt.server, p.ServerURI.String())
			assert.Equal(t, tt.dataDir, p.LocalStatePath)
			assert.Equal(t, tt.chain, p.Chain)
			assert.Equal(t, tt.confirmations, p.RequiredConfirmations)
		})
	}
}

func TestSelectProfile_ReturnsFreshURI(t *testing.T) {
	p := SelectProfile(true)
	p.ServerURI.Host = "evil.example:1"

	assert.Equal(t, TestnetServer, SelectProfile(true).ServerURI.String())
}

func TestChainType_Names(t *testing.T) {
	assert.Equal(t, "main", Mainnet.String())
	assert.Equal(t, "test", Testnet.String())
	assert.Equal(t, "mainnet", Mainnet.CLIName())
	assert.Equal(t, "testnet", Testnet.CLIName())
}

func TestWithOverrides(t *testing.T) {
	base := t.TempDir()

	p, err := SelectProfile(true).WithOverrides("http://127.0.0.1:9067", base, "")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9067", p.ServerURI.Host)
	assert.Equal(t, filepath.Join(base, TestnetDataDir), p.LocalStatePath)
	assert.Equal(t, Testnet, p.Chain)
	assert.Equal(t, TestnetConfirmations, p.RequiredConfirmations)
}

func TestWithOverrides_AbsoluteDataDirIgnoresBase(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "state")

	p, err := SelectProfile(false).WithOverrides("", "/ignored", abs)
	require.NoError(t, err)

	assert.Equal(t, abs, p.LocalStatePath)
	assert.Equal(t, MainnetServer, p.ServerURI.String())
}

func TestWithOverrides_RejectsBadServer(t *testing.T) {
	for _, raw := range []string{"ftp://host:21", "https://", "::not a uri"} {
		_, err := SelectProfile(false).WithOverrides(raw, "", "")
		assert.Error(t, err, raw)
	}
}
