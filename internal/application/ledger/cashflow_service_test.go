package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/contafacil/backend/internal/domain/ledger"
	"github.com/contafacil/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCashFlowServiceGrid(t *testing.T) {
	ctx := context.Background()
	accounts := new(MockAccountRepository)
	movements := new(MockMovementRepository)
	adjustments := new(MockAdjustmentRepository)
	svc := NewCashFlowService(accounts, movements, adjustments, testLogger())

	account := testAccount(t, "Banco Azul", 1000)
	d := testDate(t, "2025-02-02")
	receivable, err := ledger.NewReceivable(account.ID, "Venda", decimalFromInt(500),
		decimalFromInt(10), d, d, nil)
	require.NoError(t, err)
	require.NoError(t, receivable.Settle(d))

	window := ledger.Between(testDate(t, "2025-02-01"), testDate(t, "2025-02-03"))
	accounts.On("FindAll", ctx, false).Return([]ledger.Account{*account}, nil)
	movements.On("FindAll", ctx, ledger.MovementFilter{From: window.Start, To: window.End}).
		Return([]ledger.Movement{*receivable}, nil)
	adjustments.On("FindAll", ctx, ledger.AdjustmentFilter{From: window.Start, To: window.End}).
		Return([]ledger.Adjustment{}, nil)

	grid, err := svc.Grid(ctx, window)
	require.NoError(t, err)
	require.Len(t, grid.Rows, 3, "bounded window is dense")
	assert.Equal(t, "1450.00", grid.Rows[1].Cells[account.ID].Balance.StringFixed(2))
	assert.Equal(t, "1450.00", grid.Rows[2].Cells[account.ID].Balance.StringFixed(2))
}

func TestCashFlowServiceDailyRevenue(t *testing.T) {
	ctx := context.Background()
	accounts := new(MockAccountRepository)
	movements := new(MockMovementRepository)
	adjustments := new(MockAdjustmentRepository)
	svc := NewCashFlowService(accounts, movements, adjustments, testLogger())

	account := testAccount(t, "Banco Azul", 0)
	d := testDate(t, "2025-06-15")
	receivable, err := ledger.NewReceivable(account.ID, "Venda", decimalFromInt(200),
		decimalFromInt(0), d, d, nil)
	require.NoError(t, err)
	require.NoError(t, receivable.Settle(d))

	movements.On("FindAll", ctx, mock.MatchedBy(func(f ledger.MovementFilter) bool {
		return f.From != nil && f.From.String() == "2025-01-01" &&
			f.To != nil && f.To.String() == "2025-12-31"
	})).Return([]ledger.Movement{*receivable}, nil)

	series, err := svc.DailyRevenue(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, 2025, series.Year)
	require.Len(t, series.Points, 365, "dense series over the whole year")

	mid := valueobject.NewDate(2025, time.June, 15)
	var found bool
	for _, p := range series.Points {
		if p.Date.Equal(mid) {
			assert.Equal(t, "200.00", p.Value.StringFixed(2))
			found = true
		} else {
			assert.True(t, p.Value.IsZero())
		}
	}
	assert.True(t, found)
}

func TestCashFlowServiceRevenueComparison(t *testing.T) {
	ctx := context.Background()
	accounts := new(MockAccountRepository)
	movements := new(MockMovementRepository)
	adjustments := new(MockAdjustmentRepository)
	svc := NewCashFlowService(accounts, movements, adjustments, testLogger())

	movements.On("FindAll", ctx, mock.AnythingOfType("ledger.MovementFilter")).
		Return([]ledger.Movement{}, nil)

	current, prior, err := svc.RevenueComparison(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, 2025, current.Year)
	assert.Equal(t, 2024, prior.Year)
	assert.Len(t, prior.Points, 366, "2024 is a leap year")
}
