// Package chain talks to a light-wallet server directly, outside the engine.
// It is used for status queries only; syncing goes through the engine.
package chain

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/zcash/lightwalletd/walletrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/Maphikza/zcash-viewer/internal/logger"
	"github.com/Maphikza/zcash-viewer/internal/tlsinit"
	"github.com/Maphikza/zcash-viewer/internal/wallet/network"
)

const defaultCallTimeout = 20 * time.Second

// Client is a CompactTxStreamer connection to the profile's server
type Client struct {
	conn    *grpc.ClientConn
	rpc     walletrpc.CompactTxStreamerClient
	profile network.Profile
}

// NewClient prepares a connection to the profile endpoint. https endpoints
// use the process TLS configuration; http endpoints are plaintext.
func NewClient(profile network.Profile) (*Client, error) {
	if profile.ServerURI == nil {
		return nil, fmt.Errorf("profile has no server uri")
	}

	target, err := Target(profile)
	if err != nil {
		return nil, err
	}

	var creds credentials.TransportCredentials
	if profile.ServerURI.Scheme == "https" {
		creds = tlsinit.Credentials()
	} else {
		creds = insecure.NewCredentials()
	}

	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("error creating grpc client for %s: %v", target, err)
	}

	logger.Debug("Light-wallet server client created", "target", target, "chain", profile.Chain.String())

	return &Client{
		conn:    conn,
		rpc:     walletrpc.NewCompactTxStreamerClient(conn),
		profile: profile,
	}, nil
}

// Target returns the host:port dial target for the profile endpoint
func Target(profile network.Profile) (string, error) {
	u := profile.ServerURI
	if u == nil || u.Hostname() == "" {
		return "", fmt.Errorf("profile has no server host")
	}
	port := u.Port()
	if port == "" {
		if u.Scheme == "http" {
			port = "80"
		} else {
			port = "443"
		}
	}
	return net.JoinHostPort(u.Hostname(), port), nil
}

// LightdInfo returns the server's self-description
func (c *Client) LightdInfo(ctx context.Context) (*walletrpc.LightdInfo, error) {
	ctx, cancel := withDefaultTimeout(ctx)
	defer cancel()

	info, err := c.rpc.GetLightdInfo(ctx, &walletrpc.Empty{})
	if err != nil {
		return nil, fmt.Errorf("error getting lightd info: %v", err)
	}
	if want := c.profile.Chain.String(); info.GetChainName() != "" && info.GetChainName() != want {
		return nil, fmt.Errorf("server reports chain %q, expected %q", info.GetChainName(), want)
	}
	return info, nil
}

// LatestHeight returns the height of the server's chain tip
func (c *Client) LatestHeight(ctx context.Context) (uint64, error) {
	ctx, cancel := withDefaultTimeout(ctx)
	defer cancel()

	block, err := c.rpc.GetLatestBlock(ctx, &walletrpc.ChainSpec{})
	if err != nil {
		return 0, fmt.Errorf("error getting latest block: %v", err)
	}
	return block.GetHeight(), nil
}

// ServerInfoJSON returns LightdInfo encoded as JSON
func (c *Client) ServerInfoJSON(ctx context.Context) (string, error) {
	info, err := c.LightdInfo(ctx)
	if err != nil {
		return "", err
	}
	data, err := protojson.MarshalOptions{UseProtoNames: true}.Marshal(info)
	if err != nil {
		return "", fmt.Errorf("error encoding lightd info: %v", err)
	}
	return string(data), nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func withDefaultTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, defaultCallTimeout)
}
