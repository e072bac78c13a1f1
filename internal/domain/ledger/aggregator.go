package ledger

import (
	"sort"

	"github.com/contafacil/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DailyPoint is one day of an ordered time series
type DailyPoint struct {
	Date  valueobject.Date `json:"date"`
	Value decimal.Decimal  `json:"value"`
}

// DateSelector extracts the bucketing date from a movement; returning nil
// excludes the movement.
type DateSelector func(*Movement) *valueobject.Date

// ValueSelector extracts the summed value from a movement
type ValueSelector func(*Movement) decimal.Decimal

// SettledDate buckets by the movement's settlement/payment/transfer date,
// skipping anything not settled. The default selector for revenue charts.
func SettledDate(m *Movement) *valueobject.Date {
	if m.Status != MovementStatusSettled {
		return nil
	}
	return m.SettledOn
}

// NetValue sums stored net amounts
func NetValue(m *Movement) decimal.Decimal { return m.NetAmount }

// GrossValue sums gross amounts
func GrossValue(m *Movement) decimal.Decimal { return m.GrossAmount }

// BucketByDay produces one entry per calendar day in [start, end] inclusive,
// zero-valued by default, summing the selected value of matching movements
// per day. Dense, not sparse: charting consumers rely on a row for every
// day even when the window has no movements at all.
func BucketByDay(movements []Movement, dateOf DateSelector, valueOf ValueSelector, start, end valueobject.Date) []DailyPoint {
	if end.Before(start) {
		return nil
	}

	days := start.DaysUntil(end) + 1
	series := make([]DailyPoint, days)
	index := make(map[valueobject.Date]int, days)
	for i, d := 0, start; i < days; i, d = i+1, d.AddDays(1) {
		series[i] = DailyPoint{Date: d, Value: decimal.Zero}
		index[d] = i
	}

	for i := range movements {
		m := &movements[i]
		d := dateOf(m)
		if d == nil {
			continue
		}
		if pos, ok := index[*d]; ok {
			series[pos].Value = series[pos].Value.Add(valueOf(m))
		}
	}

	return series
}

// CashFlowCell is one account's column on one cash-flow grid row
type CashFlowCell struct {
	In      decimal.Decimal `json:"in"`
	Out     decimal.Decimal `json:"out"`
	Balance decimal.Decimal `json:"balance"` // running balance carried down the grid
}

// CashFlowRow is one date of the cash-flow grid
type CashFlowRow struct {
	Date     valueobject.Date           `json:"date"`
	Cells    map[uuid.UUID]CashFlowCell `json:"cells"`
	TotalIn  decimal.Decimal            `json:"total_in"`
	TotalOut decimal.Decimal            `json:"total_out"`
	Total    decimal.Decimal            `json:"total"` // sum of running balances
}

// CashFlowGrid is the per-date, per-account running-balance table backing
// the cash-flow view. Rows are in strictly ascending date order; the
// running balance column is a sequential scan seeded from each account's
// opening balance, so row order is a correctness requirement, not a
// presentation choice.
type CashFlowGrid struct {
	AccountIDs []uuid.UUID  `json:"account_ids"`
	Rows       []CashFlowRow `json:"rows"`
}

// BuildCashFlowGrid assembles the grid over the window. With both bounds
// present the grid is dense (one row per calendar day); with an open window
// it is sparse, using only dates that carry at least one movement or
// adjustment.
func BuildCashFlowGrid(accounts []Account, movements []Movement, adjustments []Adjustment, window Window) CashFlowGrid {
	included := make([]*Account, 0, len(accounts))
	for i := range accounts {
		if window.IncludesAccount(accounts[i].ID) {
			included = append(included, &accounts[i])
		}
	}

	grid := CashFlowGrid{AccountIDs: make([]uuid.UUID, len(included))}
	running := make(map[uuid.UUID]decimal.Decimal, len(included))
	for i, a := range included {
		grid.AccountIDs[i] = a.ID
		running[a.ID] = a.OpeningBalance
	}

	dates := gridDates(movements, adjustments, window)
	if len(dates) == 0 {
		return grid
	}

	byDay := make(map[valueobject.Date][]*Movement)
	for i := range movements {
		m := &movements[i]
		if m.Status != MovementStatusSettled || m.SettledOn == nil || !window.Contains(*m.SettledOn) {
			continue
		}
		byDay[*m.SettledOn] = append(byDay[*m.SettledOn], m)
	}
	adjByDay := make(map[valueobject.Date][]*Adjustment)
	for i := range adjustments {
		adj := &adjustments[i]
		if !window.Contains(adj.AdjustedOn) {
			continue
		}
		adjByDay[adj.AdjustedOn] = append(adjByDay[adj.AdjustedOn], adj)
	}

	grid.Rows = make([]CashFlowRow, 0, len(dates))
	for _, day := range dates {
		row := CashFlowRow{
			Date:     day,
			Cells:    make(map[uuid.UUID]CashFlowCell, len(included)),
			TotalIn:  decimal.Zero,
			TotalOut: decimal.Zero,
			Total:    decimal.Zero,
		}

		in := make(map[uuid.UUID]decimal.Decimal, len(included))
		out := make(map[uuid.UUID]decimal.Decimal, len(included))
		for _, m := range byDay[day] {
			switch m.Kind {
			case MovementKindReceivable:
				if _, ok := running[m.AccountID]; ok {
					in[m.AccountID] = in[m.AccountID].Add(m.NetAmount)
				}
			case MovementKindPayable:
				if _, ok := running[m.AccountID]; ok {
					out[m.AccountID] = out[m.AccountID].Add(m.GrossAmount)
				}
			case MovementKindTransfer:
				if m.OriginID != nil {
					if _, ok := running[*m.OriginID]; ok {
						out[*m.OriginID] = out[*m.OriginID].Add(m.GrossAmount)
					}
				}
				if _, ok := running[m.AccountID]; ok {
					in[m.AccountID] = in[m.AccountID].Add(m.GrossAmount)
				}
			}
		}
		for _, adj := range adjByDay[day] {
			if _, ok := running[adj.AccountID]; !ok {
				continue
			}
			if adj.Delta.IsNegative() {
				out[adj.AccountID] = out[adj.AccountID].Add(adj.Delta.Abs())
			} else {
				in[adj.AccountID] = in[adj.AccountID].Add(adj.Delta)
			}
		}

		for _, a := range included {
			cellIn := in[a.ID]
			cellOut := out[a.ID]
			balance := running[a.ID].Add(cellIn).Sub(cellOut)
			running[a.ID] = balance

			row.Cells[a.ID] = CashFlowCell{In: cellIn, Out: cellOut, Balance: balance}
			row.TotalIn = row.TotalIn.Add(cellIn)
			row.TotalOut = row.TotalOut.Add(cellOut)
			row.Total = row.Total.Add(balance)
		}

		grid.Rows = append(grid.Rows, row)
	}

	return grid
}

// gridDates returns the row dates in strictly ascending order: every day of
// a bounded window, or the distinct movement/adjustment dates otherwise.
func gridDates(movements []Movement, adjustments []Adjustment, window Window) []valueobject.Date {
	if window.Start != nil && window.End != nil {
		if window.End.Before(*window.Start) {
			return nil
		}
		days := window.Start.DaysUntil(*window.End) + 1
		dates := make([]valueobject.Date, days)
		for i, d := 0, *window.Start; i < days; i, d = i+1, d.AddDays(1) {
			dates[i] = d
		}
		return dates
	}

	seen := make(map[valueobject.Date]struct{})
	for i := range movements {
		m := &movements[i]
		if m.Status != MovementStatusSettled || m.SettledOn == nil || !window.Contains(*m.SettledOn) {
			continue
		}
		seen[*m.SettledOn] = struct{}{}
	}
	for i := range adjustments {
		if window.Contains(adjustments[i].AdjustedOn) {
			seen[adjustments[i].AdjustedOn] = struct{}{}
		}
	}

	dates := make([]valueobject.Date, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
