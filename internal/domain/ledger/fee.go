package ledger

import (
	"github.com/shopspring/decimal"
)

// FeeBreakdown is the derived fee and net portion of a gross amount.
// Both values are computed at write time and persisted; downstream
// reconciliation reads the stored net amount directly.
type FeeBreakdown struct {
	FeeAmount decimal.Decimal `json:"fee_amount"`
	NetAmount decimal.Decimal `json:"net_amount"`
}

// ComputeFeeAndNet derives the fee and net amounts from a gross amount and
// a modality fee percentage. The fee is rounded to cents half-away-from-zero
// before the net is taken, so fee + net always reproduces the gross exactly.
// A zero-value percentage yields a zero fee. Pure function.
func ComputeFeeAndNet(gross, feePercent decimal.Decimal) FeeBreakdown {
	fee := gross.Mul(feePercent).Div(decimal.NewFromInt(100)).Round(2)
	return FeeBreakdown{
		FeeAmount: fee,
		NetAmount: gross.Sub(fee),
	}
}
