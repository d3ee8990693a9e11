package utils

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/blake2b"
)

const zatPerZEC = 100_000_000

// KeyFingerprint returns a short, stable identifier for a viewing key that is
// safe to log or persist. The key itself never leaves the process.
func KeyFingerprint(viewingKey string) string {
	sum := blake2b.Sum256([]byte(strings.TrimSpace(viewingKey)))
	return hex.EncodeToString(sum[:8])
}

// FormatZEC renders a zatoshi amount with eight decimals, e.g. "0.00008000 ZEC"
func FormatZEC(zat uint64) string {
	return fmt.Sprintf("%d.%08d ZEC", zat/zatPerZEC, zat%zatPerZEC)
}

// EnsureDir creates dir and its parents if missing
func EnsureDir(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create directory %s: %v", dir, err)
	}
	return nil
}
