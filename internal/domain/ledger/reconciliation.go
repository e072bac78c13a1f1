package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountBalance is the reconciled position of one account over a window.
type AccountBalance struct {
	AccountID       uuid.UUID       `json:"account_id"`
	AccountName     string          `json:"account_name"`
	OpeningBalance  decimal.Decimal `json:"opening_balance"`
	TotalReceived   decimal.Decimal `json:"total_received"`   // Σ net of settled receivables
	TotalPaid       decimal.Decimal `json:"total_paid"`       // Σ gross of settled payables
	TransferredIn   decimal.Decimal `json:"transferred_in"`   // credits from transfers
	TransferredOut  decimal.Decimal `json:"transferred_out"`  // debits from transfers
	AdjustmentDelta decimal.Decimal `json:"adjustment_delta"` // Σ frozen adjustment deltas
	PeriodBalance   decimal.Decimal `json:"period_balance"`
	CachedBalance   decimal.Decimal `json:"cached_balance"` // advisory hint, never authoritative
}

// ReconciliationResult is the outcome of one balance computation.
type ReconciliationResult struct {
	Accounts []AccountBalance `json:"accounts"`
	// Aggregate is the sum of every included account's period balance.
	Aggregate decimal.Decimal `json:"aggregate"`
	// OrphanedMovements counts movements referencing unknown accounts.
	// They are excluded from every total, a data-quality signal for
	// diagnostics, never an abort.
	OrphanedMovements int `json:"orphaned_movements"`
	// OrphanedAdjustments counts adjustments referencing unknown accounts.
	OrphanedAdjustments int `json:"orphaned_adjustments"`
}

// Reconcile computes per-account and aggregate running balances for the
// window. Pure function of its inputs: no clock, no store access, and it
// never writes back to the cached current balance. Safe to invoke
// concurrently for different windows.
//
// Inclusion rules: settled receivables count their stored net amount by
// settlement date; settled payables count their gross amount by payment
// date; transfers debit the origin and credit the destination by transfer
// date; adjustments contribute their frozen delta by adjustment date.
// Pending and cancelled movements never affect balances.
func Reconcile(accounts []Account, movements []Movement, adjustments []Adjustment, window Window) ReconciliationResult {
	type bucket struct {
		received decimal.Decimal
		paid     decimal.Decimal
		tIn      decimal.Decimal
		tOut     decimal.Decimal
		adjDelta decimal.Decimal
	}

	known := make(map[uuid.UUID]*bucket, len(accounts))
	for i := range accounts {
		if window.IncludesAccount(accounts[i].ID) {
			known[accounts[i].ID] = &bucket{
				received: decimal.Zero,
				paid:     decimal.Zero,
				tIn:      decimal.Zero,
				tOut:     decimal.Zero,
				adjDelta: decimal.Zero,
			}
		}
	}

	result := ReconciliationResult{Aggregate: decimal.Zero}

	for i := range movements {
		m := &movements[i]
		if m.Status != MovementStatusSettled || m.SettledOn == nil {
			continue
		}
		if !window.Contains(*m.SettledOn) {
			continue
		}

		switch m.Kind {
		case MovementKindReceivable:
			b, ok := known[m.AccountID]
			if !ok {
				result.OrphanedMovements++
				continue
			}
			b.received = b.received.Add(m.NetAmount)

		case MovementKindPayable:
			b, ok := known[m.AccountID]
			if !ok {
				result.OrphanedMovements++
				continue
			}
			b.paid = b.paid.Add(m.GrossAmount)

		case MovementKindTransfer:
			// Each side is applied independently; an unknown account on
			// one side does not suppress the other.
			orphaned := false
			if m.OriginID == nil {
				orphaned = true
			} else if origin, ok := known[*m.OriginID]; ok {
				origin.tOut = origin.tOut.Add(m.GrossAmount)
			} else {
				orphaned = true
			}
			if dest, ok := known[m.AccountID]; ok {
				dest.tIn = dest.tIn.Add(m.GrossAmount)
			} else {
				orphaned = true
			}
			if orphaned {
				result.OrphanedMovements++
			}
		}
	}

	for i := range adjustments {
		adj := &adjustments[i]
		if !window.Contains(adj.AdjustedOn) {
			continue
		}
		b, ok := known[adj.AccountID]
		if !ok {
			result.OrphanedAdjustments++
			continue
		}
		b.adjDelta = b.adjDelta.Add(adj.Delta)
	}

	result.Accounts = make([]AccountBalance, 0, len(known))
	for i := range accounts {
		a := &accounts[i]
		b, ok := known[a.ID]
		if !ok {
			continue
		}
		period := a.OpeningBalance.
			Add(b.received).
			Sub(b.paid).
			Add(b.tIn).
			Sub(b.tOut).
			Add(b.adjDelta)
		result.Accounts = append(result.Accounts, AccountBalance{
			AccountID:       a.ID,
			AccountName:     a.Name,
			OpeningBalance:  a.OpeningBalance,
			TotalReceived:   b.received,
			TotalPaid:       b.paid,
			TransferredIn:   b.tIn,
			TransferredOut:  b.tOut,
			AdjustmentDelta: b.adjDelta,
			PeriodBalance:   period,
			CachedBalance:   a.CurrentBalance,
		})
		result.Aggregate = result.Aggregate.Add(period)
	}

	return result
}
