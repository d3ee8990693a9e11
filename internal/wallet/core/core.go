// Package core is the command surface the desktop shell and the CLI call:
// greet, sync_wallet and the server info query.
package core

import (
	"context"
	"fmt"
	"time"

	zerrors "github.com/Maphikza/zcash-viewer/internal/errors"
	"github.com/Maphikza/zcash-viewer/internal/logger"
	"github.com/Maphikza/zcash-viewer/internal/wallet/chain"
	"github.com/Maphikza/zcash-viewer/internal/wallet/engine"
	"github.com/Maphikza/zcash-viewer/internal/wallet/formatter"
	"github.com/Maphikza/zcash-viewer/internal/wallet/network"
	"github.com/Maphikza/zcash-viewer/internal/wallet/operations"
	"github.com/Maphikza/zcash-viewer/internal/wallet/state"
	"github.com/Maphikza/zcash-viewer/lib/utils"
)

// Greet returns the fixed greeting
func Greet(name string) string {
	return fmt.Sprintf("Hello, %s! You've been greeted from Go!", name)
}

// ProfileResolver maps the testnet flag to the profile a request runs with
type ProfileResolver func(isTestnet bool) (network.Profile, error)

// ServerInfoFunc returns the status text of the profile's server
type ServerInfoFunc func(ctx context.Context, profile network.Profile) (string, error)

// RunReport describes one finished sync. It never carries the viewing key.
type RunReport struct {
	Chain          network.ChainType
	Birthday       uint32
	KeyFingerprint string
	StartedAt      time.Time
	Duration       time.Duration
	BalanceZat     uint64
	Err            error
}

// Observer is notified after every sync, successful or not
type Observer func(RunReport)

type Service struct {
	resolve      ProfileResolver
	serverInfo   ServerInfoFunc
	observer     Observer
	orchestrator *operations.Orchestrator
	orchOpts     []operations.Option
}

type Option func(*Service)

func WithProfileResolver(r ProfileResolver) Option {
	return func(s *Service) { s.resolve = r }
}

func WithServerInfoFunc(p ServerInfoFunc) Option {
	return func(s *Service) { s.serverInfo = p }
}

func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// WithOrchestratorOptions passes options through to the sync orchestrator
func WithOrchestratorOptions(opts ...operations.Option) Option {
	return func(s *Service) { s.orchOpts = append(s.orchOpts, opts...) }
}

func NewService(eng engine.Engine, opts ...Option) *Service {
	s := &Service{
		resolve:    DefaultProfile,
		serverInfo: FetchServerInfo,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.orchestrator = operations.NewOrchestrator(eng, s.orchOpts...)
	return s
}

// DefaultProfile is the fixed two-profile selector
func DefaultProfile(isTestnet bool) (network.Profile, error) {
	return network.SelectProfile(isTestnet), nil
}

// FetchServerInfo asks the light-wallet server for its info over gRPC
func FetchServerInfo(ctx context.Context, profile network.Profile) (string, error) {
	c, err := chain.NewClient(profile)
	if err != nil {
		return "", err
	}
	defer c.Close()
	return c.ServerInfoJSON(ctx)
}

// Greet returns the fixed greeting
func (s *Service) Greet(name string) string {
	return Greet(name)
}

// Profile resolves the profile for the testnet flag
func (s *Service) Profile(isTestnet bool) (network.Profile, error) {
	p, err := s.resolve(isTestnet)
	if err != nil {
		return network.Profile{}, zerrors.Wrap(err, zerrors.ErrorTypeConfiguration, "select_profile", "failed to resolve network profile")
	}
	return p, nil
}

// Reset wipes the local state of the selected profile without syncing
func (s *Service) Reset(isTestnet bool) (network.Profile, error) {
	p, err := s.Profile(isTestnet)
	if err != nil {
		return network.Profile{}, err
	}
	state.ResetLocalState(p.LocalStatePath)
	return p, nil
}

// Sync runs the full pipeline: select profile, wipe local state, sync,
// aggregate. Panics raised by the engine are returned as errors.
func (s *Service) Sync(ctx context.Context, req operations.SyncRequest) (res *formatter.SyncResult, err error) {
	report := RunReport{
		Chain:          network.SelectProfile(req.IsTestnet).Chain,
		Birthday:       req.Birthday,
		KeyFingerprint: utils.KeyFingerprint(req.ViewingKey),
		StartedAt:      time.Now(),
	}
	defer func() {
		report.Duration = time.Since(report.StartedAt)
		report.Err = err
		if res != nil {
			report.BalanceZat = res.TotalBalanceZat
		}
		s.notify(report)
	}()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Recovered from panic during sync", "panic", fmt.Sprint(r))
			res = nil
			err = zerrors.New(zerrors.ErrorTypeInternal, "sync_wallet", fmt.Sprintf("engine panicked: %v", r))
		}
	}()

	profile, err := s.Profile(req.IsTestnet)
	if err != nil {
		return nil, err
	}
	report.Chain = profile.Chain

	state.ResetLocalState(profile.LocalStatePath)

	client, err := s.orchestrator.RunSync(ctx, req, profile)
	if err != nil {
		logger.Error("Wallet sync failed", "chain", profile.Chain.String(), "error", err.Error())
		return nil, err
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			logger.Warn("Failed to close client", "error", cerr.Error())
		}
	}()

	res, err = formatter.Aggregate(ctx, client)
	if err != nil {
		logger.Error("Result aggregation failed", "chain", profile.Chain.String(), "error", err.Error())
		return nil, err
	}
	return res, nil
}

// SyncWallet is the shell entry point. It returns the JSON payload, or an
// error whose text names the failing step.
func (s *Service) SyncWallet(ctx context.Context, viewingKey string, isTestnet bool, birthday uint32) (string, error) {
	res, err := s.Sync(ctx, operations.SyncRequest{
		ViewingKey: viewingKey,
		IsTestnet:  isTestnet,
		Birthday:   birthday,
	})
	if err != nil {
		return "", err
	}
	return res.JSON()
}

// ServerInfo queries the selected profile's server
func (s *Service) ServerInfo(ctx context.Context, isTestnet bool) (string, error) {
	p, err := s.Profile(isTestnet)
	if err != nil {
		return "", err
	}
	info, err := s.serverInfo(ctx, p)
	if err != nil {
		return "", zerrors.Wrap(err, zerrors.ErrorTypeSync, "server_info", "failed to reach light-wallet server")
	}
	return info, nil
}

func (s *Service) notify(r RunReport) {
	if s.observer == nil {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			logger.Warn("Sync observer panicked", "panic", fmt.Sprint(p))
		}
	}()
	s.observer(r)
}
