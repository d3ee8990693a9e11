package zingo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/Maphikza/zcash-viewer/internal/logger"
	"github.com/Maphikza/zcash-viewer/internal/wallet/engine"
)

const (
	cmdRescan    = "rescan"
	cmdBalance   = "balance"
	cmdSummaries = "summaries"
	cmdInfo      = "info"
	cmdAddresses = "addresses"
)

var (
	ErrClientClosed       = errors.New("client is closed")
	ErrUnsupportedAccount = errors.New("only account 0 is supported")
	ErrNoJSON             = errors.New("engine output contains no JSON")
)

type client struct {
	binary string
	env    []string
	config engine.Config
	wallet engine.Wallet

	mu     sync.Mutex
	closed bool
}

var _ engine.Client = (*client)(nil)

func (c *client) RescanAndAwait(ctx context.Context) error {
	_, err := c.run(ctx, cmdRescan, false)
	return err
}

func (c *client) AccountBalance(ctx context.Context, account engine.AccountID) (engine.AccountBalance, error) {
	if account.Index() != 0 {
		return engine.AccountBalance{}, fmt.Errorf("%w: got %d", ErrUnsupportedAccount, account.Index())
	}
	out, err := c.run(ctx, cmdBalance, false)
	if err != nil {
		return engine.AccountBalance{}, err
	}
	body, err := jsonBody(out)
	if err != nil {
		return engine.AccountBalance{}, err
	}

	var bal engine.AccountBalance
	if err := json.Unmarshal(body, &bal); err != nil {
		return engine.AccountBalance{}, fmt.Errorf("error decoding balance: %v", err)
	}
	return bal, nil
}

func (c *client) TransactionSummaries(ctx context.Context, verbose bool) (engine.TransactionSummaries, error) {
	out, err := c.run(ctx, cmdSummaries, false)
	if err != nil {
		return nil, err
	}
	body, err := jsonBody(out)
	if err != nil {
		return nil, err
	}

	var summaries engine.TransactionSummaries
	if err := json.Unmarshal(body, &summaries); err != nil {
		return nil, fmt.Errorf("error decoding transaction summaries: %v", err)
	}
	for i := range summaries {
		txid, ok := normalizeTxID(summaries[i].TxID)
		if !ok {
			logger.Warn("Engine reported a malformed txid", "txid", txid)
		}
		summaries[i].TxID = txid
		if !verbose {
			summaries[i].Outgoing = nil
		}
	}
	return summaries, nil
}

func (c *client) Info(ctx context.Context) (string, error) {
	out, err := c.run(ctx, cmdInfo, false)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func (c *client) UnifiedAddresses(ctx context.Context) (engine.Addresses, error) {
	out, err := c.run(ctx, cmdAddresses, false)
	if err != nil {
		return engine.Addresses{}, err
	}
	body, err := jsonBody(out)
	if errors.Is(err, ErrNoJSON) {
		return engine.ParseAddresses(nil)
	}
	if err != nil {
		return engine.Addresses{}, err
	}
	return engine.ParseAddresses(body)
}

func (c *client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// args builds the invocation. The viewing key and birthday are only passed
// when the wallet file is created. Every command but rescan runs with
// --nosync so the engine does not start syncing on launch.
func (c *client) args(command string, withKey bool) []string {
	args := []string{
		"--chain", c.config.Chain.CLIName(),
		"--server", c.config.ServerURI.String(),
		"--data-dir", c.config.DataDir,
	}
	if withKey {
		args = append(args,
			"--birthday", strconv.FormatUint(uint64(c.wallet.Birthday), 10),
			"--from", c.wallet.Key.Encoded(),
		)
	}
	if command != cmdRescan {
		args = append(args, "--nosync")
	}
	return append(args, command)
}

func (c *client) run(ctx context.Context, command string, withKey bool) ([]byte, error) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return nil, ErrClientClosed
	}

	cmd := exec.CommandContext(ctx, c.binary, c.args(command, withKey)...)
	cmd.Env = append(os.Environ(), c.env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("Running engine command", "command", command, "chain", c.config.Chain.String())
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("engine %s interrupted: %w", command, ctxErr)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("engine %s failed: %w", command, err)
		}
		return nil, fmt.Errorf("engine %s failed: %w: %s", command, err, msg)
	}
	return stdout.Bytes(), nil
}

// jsonBody skips any log lines the engine prints before its JSON output
func jsonBody(out []byte) ([]byte, error) {
	rest := out
	for len(rest) > 0 {
		line, next := rest, []byte(nil)
		if i := bytes.IndexByte(rest, '\n'); i >= 0 {
			line, next = rest[:i], rest[i+1:]
		}
		trimmed := bytes.TrimSpace(line)
		if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
			return bytes.TrimSpace(rest), nil
		}
		rest = next
	}
	return nil, ErrNoJSON
}

// normalizeTxID trims and lowercases txid. ok is false when it is not a
// 32 byte hash in display order; the value is passed on either way.
func normalizeTxID(txid string) (string, bool) {
	txid = strings.ToLower(strings.TrimSpace(txid))
	if len(txid) != chainhash.MaxHashStringSize {
		return txid, false
	}
	if _, err := chainhash.NewHashFromStr(txid); err != nil {
		return txid, false
	}
	return txid, true
}
