package tlsinit

import (
	"crypto/tls"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstall_Idempotent(t *testing.T) {
	first := Install()
	second := Install()
	assert.Equal(t, first, second)

	cfg := Config()
	require.NotNil(t, cfg)
	assert.Equal(t, uint16(tls.VersionTLS12), cfg.MinVersion)
}

func TestConfig_ReturnsCopies(t *testing.T) {
	a := Config()
	a.ServerName = "mutated.example"

	b := Config()
	assert.Empty(t, b.ServerName)
}

func TestCredentials(t *testing.T) {
	creds := Credentials()
	require.NotNil(t, creds)
	assert.Equal(t, "tls", creds.Info().SecurityProtocol)
}
