package formatter

import (
	"strconv"
	"strings"

	"github.com/Maphikza/zcash-viewer/internal/wallet/engine"
)

// History and balance are rendered in a record notation the desktop shell's
// parser understands, e.g.
//
//	TransactionSummary { txid: TxId("ab.."), ..., kind: Received, value: 5000, ..., memo: Some("hi"), ... }
//
// Field order matters: the parser expects kind, value and memo in that order.

// RenderHistory renders all summaries in engine order
func RenderHistory(summaries engine.TransactionSummaries) string {
	var b strings.Builder
	b.WriteString("TransactionSummaries([")
	for i, s := range summaries {
		if i > 0 {
			b.WriteString(", ")
		}
		writeSummary(&b, s)
	}
	b.WriteString("])")
	return b.String()
}

func writeSummary(b *strings.Builder, s engine.TransactionSummary) {
	b.WriteString("TransactionSummary { txid: TxId(")
	b.WriteString(strconv.Quote(s.TxID))
	b.WriteString("), datetime: ")
	b.WriteString(strconv.FormatUint(s.Datetime, 10))
	b.WriteString(", status: ")
	b.WriteString(orUnknown(s.Status))
	b.WriteString(", blockheight: BlockHeight(")
	b.WriteString(strconv.FormatUint(uint64(s.BlockHeight), 10))
	b.WriteString("), kind: ")
	b.WriteString(string(s.Kind))
	b.WriteString(", value: ")
	b.WriteString(strconv.FormatUint(s.Value, 10))
	b.WriteString(", fee: ")
	writeOptionalUint(b, s.Fee)
	b.WriteString(", memo: ")
	if len(s.Memos) > 0 {
		b.WriteString("Some(")
		b.WriteString(strconv.Quote(strings.Join(s.Memos, "\n")))
		b.WriteString(")")
	} else {
		b.WriteString("None")
	}
	b.WriteString(", outgoing_tx_data: [")
	for i, n := range s.Outgoing {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("OutgoingNote { recipient: ")
		b.WriteString(strconv.Quote(n.Recipient))
		b.WriteString(", value: ")
		b.WriteString(strconv.FormatUint(n.Value, 10))
		b.WriteString(", memo: ")
		if n.Memo != nil {
			b.WriteString("Some(")
			b.WriteString(strconv.Quote(*n.Memo))
			b.WriteString(")")
		} else {
			b.WriteString("None")
		}
		b.WriteString(" }")
	}
	b.WriteString("] }")
}

type balanceField struct {
	name  string
	value *uint64
}

// RenderBalance renders every pool field, absent values as None
func RenderBalance(bal engine.AccountBalance) string {
	fields := []balanceField{
		{"total_sapling_balance", bal.TotalSaplingBalance},
		{"confirmed_sapling_balance", bal.ConfirmedSaplingBalance},
		{"unconfirmed_sapling_balance", bal.UnconfirmedSaplingBalance},
		{"total_orchard_balance", bal.TotalOrchardBalance},
		{"confirmed_orchard_balance", bal.ConfirmedOrchardBalance},
		{"unconfirmed_orchard_balance", bal.UnconfirmedOrchardBalance},
		{"total_transparent_balance", bal.TotalTransparentBalance},
		{"confirmed_transparent_balance", bal.ConfirmedTransparentBalance},
		{"unconfirmed_transparent_balance", bal.UnconfirmedTransparentBalance},
	}

	var b strings.Builder
	b.WriteString("AccountBalance { ")
	for i, f := range fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.name)
		b.WriteString(": ")
		writeOptionalUint(&b, f.value)
	}
	b.WriteString(" }")
	return b.String()
}

func writeOptionalUint(b *strings.Builder, v *uint64) {
	if v == nil {
		b.WriteString("None")
		return
	}
	b.WriteString("Some(")
	b.WriteString(strconv.FormatUint(*v, 10))
	b.WriteString(")")
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
