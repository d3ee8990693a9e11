package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFingerprint(t *testing.T) {
	a := KeyFingerprint("uviewtest1abc")
	b := KeyFingerprint("  uviewtest1abc\n")

	assert.Len(t, a, 16)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, KeyFingerprint("uviewtest1abd"))
	assert.NotContains(t, a, "uview")
}

func TestFormatZEC(t *testing.T) {
	tests := []struct {
		zat  uint64
		want string
	}{
		{0, "0.00000000 ZEC"},
		{8000, "0.00008000 ZEC"},
		{100_000_000, "1.00000000 ZEC"},
		{123_456_789, "1.23456789 ZEC"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatZEC(tt.zat))
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.NoError(t, EnsureDir(""))
}
