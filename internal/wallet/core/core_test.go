package core

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	zerrors "github.com/Maphikza/zcash-viewer/internal/errors"
	"github.com/Maphikza/zcash-viewer/internal/mock"
	"github.com/Maphikza/zcash-viewer/internal/wallet/engine"
	"github.com/Maphikza/zcash-viewer/internal/wallet/network"
)

const testKey = "uviewtest1placeholder"

func tempResolver(t *testing.T) ProfileResolver {
	t.Helper()
	base := t.TempDir()
	return func(isTestnet bool) (network.Profile, error) {
		return network.SelectProfile(isTestnet).WithOverrides("", base, "")
	}
}

func expectSuccessfulSync(t *testing.T, eng *mock.MockEngine, client *mock.MockClient, statePath string) {
	t.Helper()
	eng.EXPECT().LoadConfig(gomock.Any(), statePath, network.Testnet, gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ *url.URL, dir string, _ network.ChainType, _ engine.WalletSettings, _ engine.MempoolInterval, _ string) (*engine.Config, error) {
			// Local state must already be gone when the engine is configured.
			assert.NoDirExists(t, dir)
			return &engine.Config{DataDir: dir}, nil
		})
	eng.EXPECT().NewWatchOnlyWallet(network.Testnet, testKey, engine.BlockHeight(2800000), gomock.Any()).
		Return(&engine.Wallet{Chain: network.Testnet, Birthday: 2800000}, nil)
	eng.EXPECT().NewClient(gomock.Any(), gomock.Any(), gomock.Any(), true).Return(client, nil)
	client.EXPECT().RescanAndAwait(gomock.Any()).Return(nil)
	client.EXPECT().AccountBalance(gomock.Any(), gomock.Any()).Return(engine.AccountBalance{
		UnconfirmedOrchardBalance: engine.Zat(5000),
		ConfirmedSaplingBalance:   engine.Zat(3000),
	}, nil)
	client.EXPECT().TransactionSummaries(gomock.Any(), true).Return(engine.TransactionSummaries{}, nil)
	client.EXPECT().Info(gomock.Any()).Return("height 2800400", nil)
	client.EXPECT().UnifiedAddresses(gomock.Any()).Return(engine.Addresses{}, nil)
	client.EXPECT().Close().Return(nil)
}

func TestGreet(t *testing.T) {
	assert.Equal(t, "Hello, Ada! You've been greeted from Go!", Greet("Ada"))
	assert.Equal(t, "Hello, ! You've been greeted from Go!", Greet(""))
}

func TestSyncWallet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	eng := mock.NewMockEngine(ctrl)
	client := mock.NewMockClient(ctrl)
	resolve := tempResolver(t)

	profile, err := resolve(true)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(profile.LocalStatePath, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(profile.LocalStatePath, "zingo-wallet.dat"), []byte("stale"), 0o600))

	var reports []RunReport
	svc := NewService(eng, WithProfileResolver(resolve), WithObserver(func(r RunReport) { reports = append(reports, r) }))
	expectSuccessfulSync(t, eng, client, profile.LocalStatePath)

	out, err := svc.SyncWallet(context.Background(), testKey, true, 2800000)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Len(t, decoded, 5)
	assert.Equal(t, float64(8000), decoded["balance_zat"])
	assert.Equal(t, 0.00008, decoded["balance_zec"])
	assert.Equal(t, "height 2800400", decoded["sync_height"])

	require.Len(t, reports, 1)
	assert.NoError(t, reports[0].Err)
	assert.Equal(t, uint64(8000), reports[0].BalanceZat)
	assert.Equal(t, network.Testnet, reports[0].Chain)
	assert.NotContains(t, reports[0].KeyFingerprint, testKey)
}

func TestSyncWallet_TwiceInSuccession(t *testing.T) {
	ctrl := gomock.NewController(t)
	eng := mock.NewMockEngine(ctrl)
	resolve := tempResolver(t)
	profile, err := resolve(true)
	require.NoError(t, err)

	svc := NewService(eng, WithProfileResolver(resolve))

	for i := 0; i < 2; i++ {
		client := mock.NewMockClient(ctrl)
		expectSuccessfulSync(t, eng, client, profile.LocalStatePath)

		out, err := svc.SyncWallet(context.Background(), testKey, true, 2800000)
		require.NoError(t, err)
		assert.NotEmpty(t, out)

		// Simulate the engine leaving state behind for the next call to wipe.
		require.NoError(t, os.MkdirAll(profile.LocalStatePath, 0o700))
	}
}

func TestSyncWallet_ConstructionFailureReturnsNoPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	eng := mock.NewMockEngine(ctrl)

	eng.EXPECT().LoadConfig(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&engine.Config{}, nil)
	eng.EXPECT().NewWatchOnlyWallet(gomock.Any(), "not-a-key", gomock.Any(), gomock.Any()).
		Return(nil, engine.ErrMalformedViewingKey)

	svc := NewService(eng, WithProfileResolver(tempResolver(t)))
	out, err := svc.SyncWallet(context.Background(), "not-a-key", true, 2800000)

	require.Error(t, err)
	assert.Empty(t, out)
	assert.True(t, zerrors.IsType(err, zerrors.ErrorTypeWalletConstruction))
	assert.Contains(t, err.Error(), "create_wallet")
}

func TestSyncWallet_EnginePanicBecomesError(t *testing.T) {
	ctrl := gomock.NewController(t)
	eng := mock.NewMockEngine(ctrl)

	eng.EXPECT().LoadConfig(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(*url.URL, string, network.ChainType, engine.WalletSettings, engine.MempoolInterval, string) (*engine.Config, error) {
			panic("unexpected engine state")
		})

	var reports []RunReport
	svc := NewService(eng, WithProfileResolver(tempResolver(t)), WithObserver(func(r RunReport) { reports = append(reports, r) }))

	var (
		out string
		err error
	)
	assert.NotPanics(t, func() {
		out, err = svc.SyncWallet(context.Background(), testKey, true, 2800000)
	})
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Contains(t, err.Error(), "unexpected engine state")
	assert.True(t, zerrors.IsType(err, zerrors.ErrorTypeInternal))

	require.Len(t, reports, 1)
	assert.Error(t, reports[0].Err)
}

func TestSyncWallet_ResolverFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	eng := mock.NewMockEngine(ctrl)

	svc := NewService(eng, WithProfileResolver(func(bool) (network.Profile, error) {
		return network.Profile{}, errors.New("bad server override")
	}))

	_, err := svc.SyncWallet(context.Background(), testKey, false, 2800000)
	require.Error(t, err)
	assert.True(t, zerrors.IsType(err, zerrors.ErrorTypeConfiguration))
}

func TestReset(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolve := tempResolver(t)
	svc := NewService(mock.NewMockEngine(ctrl), WithProfileResolver(resolve))

	profile, err := resolve(false)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(profile.LocalStatePath, "blocks"), 0o700))

	got, err := svc.Reset(false)
	require.NoError(t, err)
	assert.Equal(t, profile.LocalStatePath, got.LocalStatePath)
	assert.NoDirExists(t, profile.LocalStatePath)

	_, err = svc.Reset(false)
	assert.NoError(t, err)
}

func TestServerInfo(t *testing.T) {
	ctrl := gomock.NewController(t)

	svc := NewService(mock.NewMockEngine(ctrl),
		WithProfileResolver(tempResolver(t)),
		WithServerInfoFunc(func(_ context.Context, p network.Profile) (string, error) {
			return `{"chain_name":"` + p.Chain.String() + `"}`, nil
		}),
	)
	info, err := svc.ServerInfo(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, `{"chain_name":"test"}`, info)

	failing := NewService(mock.NewMockEngine(ctrl),
		WithServerInfoFunc(func(context.Context, network.Profile) (string, error) {
			return "", errors.New("connection refused")
		}),
	)
	_, err = failing.ServerInfo(context.Background(), false)
	assert.True(t, zerrors.IsType(err, zerrors.ErrorTypeSync))
}
