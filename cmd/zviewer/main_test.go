package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maphikza/zcash-viewer/internal/config"
	journaldb "github.com/Maphikza/zcash-viewer/internal/database"
	"github.com/Maphikza/zcash-viewer/internal/ipc"
	"github.com/Maphikza/zcash-viewer/internal/wallet/core"
	"github.com/Maphikza/zcash-viewer/internal/wallet/engine"
	"github.com/Maphikza/zcash-viewer/internal/wallet/formatter"
	"github.com/Maphikza/zcash-viewer/internal/wallet/network"
)

func TestParseBirthday(t *testing.T) {
	b, err := parseBirthday("", true)
	require.NoError(t, err)
	assert.Equal(t, uint32(engine.TestnetSaplingActivation), b)

	b, err = parseBirthday("  ", false)
	require.NoError(t, err)
	assert.Equal(t, uint32(engine.MainnetSaplingActivation), b)

	b, err = parseBirthday(" 2800000 ", true)
	require.NoError(t, err)
	assert.Equal(t, uint32(2800000), b)

	_, err = parseBirthday("-5", true)
	assert.Error(t, err)
	_, err = parseBirthday("4294967296", true)
	assert.Error(t, err)
}

func TestRunReset(t *testing.T) {
	saved := settings
	t.Cleanup(func() { settings = saved })
	base := t.TempDir()
	settings = config.Settings{BaseDir: base}

	var buf bytes.Buffer
	require.NoError(t, runReset(&buf, true))
	assert.Contains(t, buf.String(), "No local state for test")

	dir := filepath.Join(base, network.TestnetDataDir)
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "zingo-wallet.dat"), []byte("x"), 0o600))

	buf.Reset()
	require.NoError(t, runReset(&buf, true))
	assert.Contains(t, buf.String(), "Local state for test removed from "+dir)
	assert.NoDirExists(t, dir)
}

func TestCallServer(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix sockets")
	}
	saved := settings
	t.Cleanup(func() { settings = saved })
	settings = config.Settings{IPCSocket: filepath.Join(t.TempDir(), "zv.sock")}

	srv, err := ipc.NewServer("unix", settings.IPCSocket)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, func(_ context.Context, cmd ipc.Command) (string, error) {
			return cmd.Command + ":" + strings.Join(cmd.Args, ","), nil
		})
	}()
	defer func() {
		cancel()
		<-done
	}()

	got, err := callServer(context.Background(), "greet", []string{"Ada"})
	require.NoError(t, err)
	assert.Equal(t, "greet:Ada", got)
}

func TestJournalObserver_RecordsRuns(t *testing.T) {
	j, err := journaldb.InitSQLiteDB(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	defer j.Close()

	observe := journalObserver(j)
	start := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	observe(core.RunReport{Chain: network.Testnet, Birthday: 10, KeyFingerprint: "00ff00ff00ff00ff",
		StartedAt: start, Duration: time.Second, BalanceZat: 8000})
	observe(core.RunReport{Chain: network.Mainnet, KeyFingerprint: "1111222233334444",
		StartedAt: start.Add(time.Hour), Err: errors.New("sync error in rescan: boom")})

	runs, err := j.ListSyncRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, journaldb.StatusFailed, runs[0].Status)
	assert.Equal(t, "main", runs[0].Chain)
	assert.Equal(t, "sync error in rescan: boom", runs[0].Error)
	assert.Equal(t, journaldb.StatusSucceeded, runs[1].Status)
	assert.Equal(t, uint64(8000), runs[1].BalanceZat)

	var buf bytes.Buffer
	printRuns(&buf, runs)
	assert.Contains(t, buf.String(), "key=00ff00ff00ff00ff")
	assert.Contains(t, buf.String(), "balance=0.00008000 ZEC")
	assert.Contains(t, buf.String(), "error=sync error in rescan: boom")
}

func TestPrintRuns_Empty(t *testing.T) {
	var buf bytes.Buffer
	printRuns(&buf, nil)
	assert.Equal(t, "No syncs recorded\n", buf.String())
}

func TestPrintResultAndFirstAddress(t *testing.T) {
	addrs, err := engine.ParseAddresses([]byte(`[{"encoded_address":"utest1first"},{"encoded_address":"utest1second"}]`))
	require.NoError(t, err)
	res := &formatter.SyncResult{
		TotalBalanceZat:     8000,
		TotalBalanceDecimal: 0.00008,
		HistoryRaw:          "TransactionSummaries([])",
		DebugLog:            "🔍 DEBUG INFO:",
		Addresses:           addrs,
	}

	assert.Equal(t, "utest1first", firstAddress(res))
	assert.Empty(t, firstAddress(&formatter.SyncResult{}))

	var buf bytes.Buffer
	require.NoError(t, printResult(&buf, res, false))
	assert.Contains(t, buf.String(), `"balance_zat":8000`)

	buf.Reset()
	require.NoError(t, printResult(&buf, res, true))
	assert.Contains(t, buf.String(), "🔍 DEBUG INFO:")
	assert.Contains(t, buf.String(), "Total balance: 0.00008000 ZEC (8000 zat)")
}
