package operations

import (
	"context"
	"errors"
	"net/url"
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

func newTestOrchestrator(t *testing.T) (*Orchestrator, *mock.MockEngine, *mock.MockClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	eng := mock.NewMockEngine(ctrl)
	client := mock.NewMockClient(ctrl)
	return NewOrchestrator(eng), eng, client
}

func testProfile(t *testing.T) network.Profile {
	t.Helper()
	p, err := network.SelectProfile(true).WithOverrides("", t.TempDir(), "")
	require.NoError(t, err)
	return p
}

func TestRunSync_Success(t *testing.T) {
	o, eng, client := newTestOrchestrator(t)
	ctx := context.Background()
	profile := testProfile(t)
	req := SyncRequest{ViewingKey: testKey, IsTestnet: true, Birthday: 2800000}

	cfg := &engine.Config{DataDir: profile.LocalStatePath}
	wallet := &engine.Wallet{Chain: network.Testnet, Birthday: 2800000}

	gomock.InOrder(
		eng.EXPECT().LoadConfig(profile.ServerURI, profile.LocalStatePath, network.Testnet, gomock.Any(), engine.MempoolInterval(1), ClientVersion).
			DoAndReturn(func(_ *url.URL, _ string, _ network.ChainType, s engine.WalletSettings, _ engine.MempoolInterval, _ string) (*engine.Config, error) {
				assert.Equal(t, uint32(3), s.MinConfirmations)
				assert.Equal(t, engine.DefaultSyncConfig(), s.SyncConfig)
				return cfg, nil
			}),
		eng.EXPECT().NewWatchOnlyWallet(network.Testnet, testKey, engine.BlockHeight(2800000), gomock.Any()).Return(wallet, nil),
		eng.EXPECT().NewClient(gomock.Any(), wallet, cfg, true).Return(client, nil),
		client.EXPECT().RescanAndAwait(gomock.Any()).Return(nil),
	)

	got, err := o.RunSync(ctx, req, profile)
	require.NoError(t, err)
	assert.Same(t, client, got)
}

func TestRunSync_ConfigFailure(t *testing.T) {
	o, eng, _ := newTestOrchestrator(t)

	eng.EXPECT().LoadConfig(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("data dir is not writable"))

	got, err := o.RunSync(context.Background(), SyncRequest{ViewingKey: testKey, Birthday: 2800000}, testProfile(t))
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, zerrors.IsType(err, zerrors.ErrorTypeConfiguration))
	assert.Contains(t, err.Error(), "load_config")
}

func TestRunSync_WalletConstructionFailure(t *testing.T) {
	o, eng, _ := newTestOrchestrator(t)

	eng.EXPECT().LoadConfig(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&engine.Config{}, nil)
	eng.EXPECT().NewWatchOnlyWallet(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, engine.ErrMalformedViewingKey)

	got, err := o.RunSync(context.Background(), SyncRequest{ViewingKey: "garbage", Birthday: 2800000}, testProfile(t))
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, zerrors.IsType(err, zerrors.ErrorTypeWalletConstruction))
	assert.ErrorIs(t, err, engine.ErrMalformedViewingKey)
}

func TestRunSync_ClientFailure(t *testing.T) {
	o, eng, _ := newTestOrchestrator(t)

	eng.EXPECT().LoadConfig(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&engine.Config{}, nil)
	eng.EXPECT().NewWatchOnlyWallet(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&engine.Wallet{}, nil)
	eng.EXPECT().NewClient(gomock.Any(), gomock.Any(), gomock.Any(), true).
		Return(nil, errors.New("wallet file locked"))

	_, err := o.RunSync(context.Background(), SyncRequest{ViewingKey: testKey, Birthday: 2800000}, testProfile(t))
	require.Error(t, err)
	assert.True(t, zerrors.IsType(err, zerrors.ErrorTypeWalletConstruction))
	assert.Contains(t, err.Error(), "create_client")
}

func TestRunSync_RescanFailureClosesClient(t *testing.T) {
	o, eng, client := newTestOrchestrator(t)
	rescanErr := errors.New("connection reset by peer")

	eng.EXPECT().LoadConfig(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&engine.Config{}, nil)
	eng.EXPECT().NewWatchOnlyWallet(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&engine.Wallet{}, nil)
	eng.EXPECT().NewClient(gomock.Any(), gomock.Any(), gomock.Any(), true).Return(client, nil)
	client.EXPECT().RescanAndAwait(gomock.Any()).Return(rescanErr)
	client.EXPECT().Close().Return(nil)

	got, err := o.RunSync(context.Background(), SyncRequest{ViewingKey: testKey, Birthday: 2800000}, testProfile(t))
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, zerrors.IsType(err, zerrors.ErrorTypeSync))
	assert.ErrorIs(t, err, rescanErr)
}

func TestWithClientVersion(t *testing.T) {
	o := NewOrchestrator(nil, WithClientVersion("9.9.9"), WithClientVersion(""))
	assert.Equal(t, "9.9.9", o.clientVersion)
}
