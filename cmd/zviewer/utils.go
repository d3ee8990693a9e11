package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	journaldb "github.com/Maphikza/zcash-viewer/internal/database"
	"github.com/Maphikza/zcash-viewer/internal/logger"
	"github.com/Maphikza/zcash-viewer/internal/wallet/chain"
	"github.com/Maphikza/zcash-viewer/internal/wallet/core"
	"github.com/Maphikza/zcash-viewer/internal/wallet/engine"
	"github.com/Maphikza/zcash-viewer/internal/wallet/engine/zingo"
	"github.com/Maphikza/zcash-viewer/internal/wallet/formatter"
	"github.com/Maphikza/zcash-viewer/internal/wallet/network"
	"github.com/Maphikza/zcash-viewer/internal/wallet/operations"
	"github.com/Maphikza/zcash-viewer/internal/wallet/state"
	"github.com/Maphikza/zcash-viewer/lib/utils"
)

const infoTimeout = 30 * time.Second

type syncOutput struct {
	pretty      bool
	copyAddress bool
}

// newService wires the engine and configured profiles. A nil journal leaves
// syncs unrecorded.
func newService(journal *journaldb.Journal) *core.Service {
	opts := []core.Option{
		core.WithProfileResolver(settings.Profile),
		core.WithOrchestratorOptions(
			operations.WithClientVersion(settings.ClientVersion),
			operations.WithHeartbeatInterval(settings.HeartbeatInterval),
		),
	}
	if journal != nil {
		opts = append(opts, core.WithObserver(journalObserver(journal)))
	}
	return core.NewService(zingo.New(zingo.WithBinary(settings.EngineBinary)), opts...)
}

func runSync(viewingKey string, isTestnet bool, birthday uint32, out syncOutput) error {
	journal, err := openJournal()
	if err != nil {
		return err
	}
	if journal != nil {
		defer journal.Close()
	}

	res, err := newService(journal).Sync(context.Background(), operations.SyncRequest{
		ViewingKey: viewingKey,
		IsTestnet:  isTestnet,
		Birthday:   birthday,
	})
	if err != nil {
		return err
	}

	if err := printResult(os.Stdout, res, out.pretty); err != nil {
		return err
	}

	if out.copyAddress {
		addr := firstAddress(res)
		if addr == "" {
			fmt.Println("No unified address to copy")
			return nil
		}
		if err := clipboard.WriteAll(addr); err != nil {
			logger.Warn("Failed to copy address to clipboard", "error", err.Error())
			fmt.Printf("Could not copy address to clipboard: %v\n", err)
			return nil
		}
		fmt.Println("Address copied to clipboard.")
	}
	return nil
}

func printResult(w io.Writer, res *formatter.SyncResult, pretty bool) error {
	if pretty {
		fmt.Fprintln(w, res.DebugLog)
		fmt.Fprintf(w, "\nTotal balance: %s (%d zat)\n", utils.FormatZEC(res.TotalBalanceZat), res.TotalBalanceZat)
		return nil
	}
	payload, err := res.JSON()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, payload)
	return nil
}

func firstAddress(res *formatter.SyncResult) string {
	addrs := res.Addresses.Encoded()
	if len(addrs) == 0 {
		return ""
	}
	return addrs[0]
}

func runReset(w io.Writer, isTestnet bool) error {
	svc := newService(nil)
	p, err := svc.Profile(isTestnet)
	if err != nil {
		return err
	}
	if !state.Exists(p.LocalStatePath) {
		fmt.Fprintf(w, "No local state for %s at %s\n", p.Chain.String(), p.LocalStatePath)
		return nil
	}
	if _, err := svc.Reset(isTestnet); err != nil {
		return err
	}
	if state.Exists(p.LocalStatePath) {
		return fmt.Errorf("local state at %s could not be removed; see the log", p.LocalStatePath)
	}
	fmt.Fprintf(w, "Local state for %s removed from %s\n", p.Chain.String(), p.LocalStatePath)
	return nil
}

func runInfo(isTestnet bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), infoTimeout)
	defer cancel()

	svc := newService(nil)
	info, err := svc.ServerInfo(ctx, isTestnet)
	if err != nil {
		return err
	}
	fmt.Println(info)

	p, err := svc.Profile(isTestnet)
	if err != nil {
		return err
	}
	height, err := tipHeight(ctx, p)
	if err != nil {
		return err
	}
	fmt.Printf("Tip height: %d\n", height)
	return nil
}

func tipHeight(ctx context.Context, p network.Profile) (uint64, error) {
	c, err := chain.NewClient(p)
	if err != nil {
		return 0, err
	}
	defer c.Close()
	return c.LatestHeight(ctx)
}

func runHistory(w io.Writer, limit int) error {
	journal, err := openJournal()
	if err != nil {
		return err
	}
	if journal == nil {
		return fmt.Errorf("sync journal is disabled; set journal_enabled to true")
	}
	defer journal.Close()

	runs, err := journal.ListSyncRuns(limit)
	if err != nil {
		return err
	}
	printRuns(w, runs)
	return nil
}

func printRuns(w io.Writer, runs []journaldb.SyncRun) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No syncs recorded")
		return
	}
	for _, r := range runs {
		line := fmt.Sprintf("%s  %-4s  %-9s  key=%s  birthday=%d  balance=%s  took=%s",
			r.StartedAt.Local().Format(time.RFC3339), r.Chain, r.Status, r.KeyFingerprint,
			r.Birthday, utils.FormatZEC(r.BalanceZat), r.Duration.Round(time.Millisecond))
		if r.Error != "" {
			line += "  error=" + r.Error
		}
		fmt.Fprintln(w, line)
	}
}

// parseBirthday accepts an unsigned 32-bit block height; blank means the
// chain's Sapling activation height
func parseBirthday(s string, isTestnet bool) (uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return uint32(engine.SaplingActivation(network.SelectProfile(isTestnet).Chain)), nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("birthday must be a block height: %w", err)
	}
	return uint32(v), nil
}
