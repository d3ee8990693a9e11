// Package tlsinit installs the process-wide TLS configuration used by every
// connection to a light-wallet server.
package tlsinit

import (
	"crypto/tls"
	"crypto/x509"
	"sync"

	"google.golang.org/grpc/credentials"

	"github.com/Maphikza/zcash-viewer/internal/logger"
)

var (
	once       sync.Once
	installed  *tls.Config
	installErr error
)

// Install builds the shared TLS configuration from the system roots. It runs
// once per process; later calls return the first outcome. A failure leaves
// a usable configuration without custom roots in place.
func Install() error {
	once.Do(func() {
		cfg := &tls.Config{MinVersion: tls.VersionTLS12}

		pool, err := x509.SystemCertPool()
		if err != nil {
			installErr = err
			logger.Warn("System certificate pool unavailable, using Go defaults", "error", err.Error())
		} else {
			cfg.RootCAs = pool
		}
		installed = cfg
		logger.Debug("TLS provider installed", "min_version", "1.2")
	})
	return installErr
}

// Config returns a copy of the installed configuration, installing it first
// when needed.
func Config() *tls.Config {
	_ = Install()
	return installed.Clone()
}

// Credentials returns gRPC transport credentials over the installed configuration
func Credentials() credentials.TransportCredentials {
	return credentials.NewTLS(Config())
}
