package formatter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"

	zerrors "github.com/Maphikza/zcash-viewer/internal/errors"
	"github.com/Maphikza/zcash-viewer/internal/logger"
	"github.com/Maphikza/zcash-viewer/internal/wallet/engine"
)

// Source is the read side of a synced engine client
type Source interface {
	AccountBalance(ctx context.Context, account engine.AccountID) (engine.AccountBalance, error)
	TransactionSummaries(ctx context.Context, verbose bool) (engine.TransactionSummaries, error)
	Info(ctx context.Context) (string, error)
	UnifiedAddresses(ctx context.Context) (engine.Addresses, error)
}

// SyncResult is produced once per sync and handed back to the caller.
type SyncResult struct {
	TotalBalanceZat     uint64
	TotalBalanceDecimal float64
	SyncHeightInfo      string
	HistoryRaw          string
	DebugLog            string

	// Kept for in-process callers; not part of the JSON payload.
	Balance   engine.AccountBalance
	Summaries engine.TransactionSummaries
	Addresses engine.Addresses
}

type payload struct {
	BalanceZat uint64  `json:"balance_zat"`
	BalanceZEC float64 `json:"balance_zec"`
	SyncHeight string  `json:"sync_height"`
	HistoryRaw string  `json:"history_raw"`
	PrettyLog  string  `json:"pretty_log"`
}

// JSON encodes the result with exactly the five keys the desktop shell reads
func (r *SyncResult) JSON() (string, error) {
	data, err := json.Marshal(payload{
		BalanceZat: r.TotalBalanceZat,
		BalanceZEC: r.TotalBalanceDecimal,
		SyncHeight: r.SyncHeightInfo,
		HistoryRaw: r.HistoryRaw,
		PrettyLog:  r.DebugLog,
	})
	if err != nil {
		return "", zerrors.Wrap(err, zerrors.ErrorTypeInternal, "encode_result", "failed to encode sync result")
	}
	return string(data), nil
}

// ZatToZEC converts zatoshis to whole ZEC. Zcash shares Bitcoin's 10^8 unit ratio.
func ZatToZEC(zat uint64) float64 {
	return btcutil.Amount(zat).ToBTC()
}

// Aggregate reads balance, history, server info and addresses for account 0
// and assembles the result. Any read failure aborts with an extraction error.
func Aggregate(ctx context.Context, src Source) (*SyncResult, error) {
	account, err := engine.NewAccountID(0)
	if err != nil {
		return nil, zerrors.Wrap(err, zerrors.ErrorTypeExtraction, "account_balance", "invalid account")
	}

	balance, err := src.AccountBalance(ctx, account)
	if err != nil {
		return nil, zerrors.Wrap(err, zerrors.ErrorTypeExtraction, "account_balance", "failed to read balance")
	}

	summaries, err := src.TransactionSummaries(ctx, true)
	if err != nil {
		return nil, zerrors.Wrap(err, zerrors.ErrorTypeExtraction, "transaction_summaries", "failed to read transaction history")
	}

	info, err := src.Info(ctx)
	if err != nil {
		return nil, zerrors.Wrap(err, zerrors.ErrorTypeExtraction, "server_info", "failed to read server info")
	}

	addresses, err := src.UnifiedAddresses(ctx)
	if err != nil {
		return nil, zerrors.Wrap(err, zerrors.ErrorTypeExtraction, "unified_addresses", "failed to read addresses")
	}

	total := balance.ShieldedTotal()
	history := RenderHistory(summaries)

	logger.Info("Sync results aggregated",
		"balance_zat", total,
		"transactions", len(summaries),
		"addresses", addresses.Len(),
	)

	return &SyncResult{
		TotalBalanceZat:     total,
		TotalBalanceDecimal: ZatToZEC(total),
		SyncHeightInfo:      info,
		HistoryRaw:          history,
		DebugLog:            RenderDebugLog(info, addresses, balance, history),
		Balance:             balance,
		Summaries:           summaries,
		Addresses:           addresses,
	}, nil
}

// RenderDebugLog builds the multi-section diagnostic transcript
func RenderDebugLog(info string, addresses engine.Addresses, balance engine.AccountBalance, history string) string {
	return fmt.Sprintf("🔍 DEBUG INFO:\n\n🌍 Server:\n%s\n\n📍 My Address:\n%s\n\n💰 Balance:\n%s\n\n📜 Transactions:\n%s",
		info,
		addresses.Pretty(),
		RenderBalance(balance),
		history,
	)
}
