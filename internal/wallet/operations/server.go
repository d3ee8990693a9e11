package operations

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/Maphikza/zcash-viewer/internal/api"
	zerrors "github.com/Maphikza/zcash-viewer/internal/errors"
	"github.com/Maphikza/zcash-viewer/internal/ipc"
	"github.com/Maphikza/zcash-viewer/internal/logger"
	"github.com/Maphikza/zcash-viewer/internal/wallet/network"
)

const shutdownTimeout = 10 * time.Second

// ServerConfig selects the transports the wallet server listens on. An empty
// HTTPAddr disables the HTTP API. ResolveProfile must match the profiles the
// service syncs with; nil uses the fixed profiles.
type ServerConfig struct {
	IPCNetwork     string
	IPCAddress     string
	HTTPAddr       string
	API            api.Config
	ResolveProfile func(isTestnet bool) (network.Profile, error)
}

type commandHandler func(ctx context.Context, args []string) (string, error)

// stateLock guards one local state directory
type stateLock struct {
	sem    *semaphore.Weighted
	holder network.ChainType
	busy   bool
}

// WalletServer answers shell commands over the local socket and HTTP. At
// most one sync per local state directory runs at a time; a second request
// for a busy directory is refused rather than queued.
type WalletServer struct {
	service  api.Backend
	config   ServerConfig
	handlers map[string]commandHandler

	mu    sync.Mutex
	locks map[string]*stateLock
}

func NewWalletServer(service api.Backend, config ServerConfig) *WalletServer {
	if config.ResolveProfile == nil {
		config.ResolveProfile = func(isTestnet bool) (network.Profile, error) {
			return network.SelectProfile(isTestnet), nil
		}
	}
	s := &WalletServer{
		service: service,
		config:  config,
		locks:   make(map[string]*stateLock),
	}
	s.handlers = map[string]commandHandler{
		"greet":       s.handleGreet,
		"sync_wallet": s.handleSyncWallet,
		"server_info": s.handleServerInfo,
	}
	return s
}

// Commands lists the command names the server understands
func (s *WalletServer) Commands() []string {
	names := maps.Keys(s.handlers)
	slices.Sort(names)
	return names
}

// HandleIPCCommand dispatches one socket command
func (s *WalletServer) HandleIPCCommand(ctx context.Context, cmd ipc.Command) (string, error) {
	handler, ok := s.handlers[cmd.Command]
	if !ok {
		return "", zerrors.New(zerrors.ErrorTypeValidation, "dispatch",
			fmt.Sprintf("unknown command: %s (available: %s)", cmd.Command, strings.Join(s.Commands(), ", ")))
	}
	return handler(ctx, cmd.Args)
}

func (s *WalletServer) Greet(name string) string {
	return s.service.Greet(name)
}

// SyncWallet runs a sync unless one is already running against the same
// local state directory
func (s *WalletServer) SyncWallet(ctx context.Context, viewingKey string, isTestnet bool, birthday uint32) (string, error) {
	profile, err := s.config.ResolveProfile(isTestnet)
	if err != nil {
		return "", zerrors.Wrap(err, zerrors.ErrorTypeConfiguration, "select_profile", "failed to resolve network profile")
	}

	release, err := s.acquire(profile)
	if err != nil {
		return "", err
	}
	defer release()

	return s.service.SyncWallet(ctx, viewingKey, isTestnet, birthday)
}

func (s *WalletServer) acquire(profile network.Profile) (func(), error) {
	key := stateKey(profile.LocalStatePath)

	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[key]
	if !ok {
		lock = &stateLock{sem: semaphore.NewWeighted(1)}
		s.locks[key] = lock
	}
	if !lock.sem.TryAcquire(1) {
		logger.Warn("Refusing concurrent sync", "chain", profile.Chain.String(), "path", key, "holder", lock.holder.String())
		return nil, zerrors.New(zerrors.ErrorTypeBusy, "sync_wallet",
			fmt.Sprintf("sync already in progress for %s", lock.holder.String()))
	}
	lock.holder = profile.Chain
	lock.busy = true

	return func() {
		s.mu.Lock()
		lock.busy = false
		s.mu.Unlock()
		lock.sem.Release(1)
	}, nil
}

// stateKey identifies a state directory regardless of how its path is spelled
func stateKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func (s *WalletServer) ServerInfo(ctx context.Context, isTestnet bool) (string, error) {
	return s.service.ServerInfo(ctx, isTestnet)
}

// Syncing reports which profiles have a sync in flight
func (s *WalletServer) Syncing() []network.ChainType {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []network.ChainType
	for _, lock := range s.locks {
		if lock.busy {
			out = append(out, lock.holder)
		}
	}
	slices.Sort(out)
	return out
}

func (s *WalletServer) handleGreet(_ context.Context, args []string) (string, error) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	return s.Greet(name), nil
}

// handleSyncWallet expects viewing_key, is_testnet, birthday
func (s *WalletServer) handleSyncWallet(ctx context.Context, args []string) (string, error) {
	if len(args) != 3 {
		return "", zerrors.New(zerrors.ErrorTypeValidation, "sync_wallet",
			fmt.Sprintf("expected 3 arguments (viewing_key, is_testnet, birthday), got %d", len(args)))
	}
	isTestnet, err := strconv.ParseBool(args[1])
	if err != nil {
		return "", zerrors.Wrap(err, zerrors.ErrorTypeValidation, "sync_wallet", "is_testnet must be true or false")
	}
	birthday, err := strconv.ParseUint(args[2], 10, 32)
	if err != nil {
		return "", zerrors.Wrap(err, zerrors.ErrorTypeValidation, "sync_wallet", "birthday must be an unsigned 32-bit block height")
	}
	return s.SyncWallet(ctx, args[0], isTestnet, uint32(birthday))
}

func (s *WalletServer) handleServerInfo(ctx context.Context, args []string) (string, error) {
	isTestnet := false
	if len(args) > 0 {
		v, err := strconv.ParseBool(args[0])
		if err != nil {
			return "", zerrors.Wrap(err, zerrors.ErrorTypeValidation, "server_info", "is_testnet must be true or false")
		}
		isTestnet = v
	}
	return s.ServerInfo(ctx, isTestnet)
}

// Run serves the socket and, when configured, the HTTP API until ctx is
// done or a listener fails.
func (s *WalletServer) Run(ctx context.Context, jwtKey []byte) error {
	ipcServer, err := ipc.NewServer(s.config.IPCNetwork, s.config.IPCAddress)
	if err != nil {
		return fmt.Errorf("failed to create IPC server: %v", err)
	}
	logger.Info("IPC server listening", "network", s.config.IPCNetwork, "address", ipcServer.Addr().String())

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return ipcServer.Serve(ctx, s.HandleIPCCommand)
	})

	if s.config.HTTPAddr != "" {
		httpServer := api.NewHTTPServer(s.config.HTTPAddr, api.NewAPI(s, s.config.API, jwtKey))

		g.Go(func() error {
			logger.Info("HTTP API listening", "addr", s.config.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}
