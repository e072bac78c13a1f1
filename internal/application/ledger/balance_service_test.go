package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/contafacil/backend/internal/domain/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceServiceReconcile(t *testing.T) {
	ctx := context.Background()

	newFixture := func(t *testing.T) (*BalanceService, *MockAccountRepository, *MockMovementRepository, *MockAdjustmentRepository) {
		t.Helper()
		accounts := new(MockAccountRepository)
		movements := new(MockMovementRepository)
		adjustments := new(MockAdjustmentRepository)
		return NewBalanceService(accounts, movements, adjustments, testLogger()), accounts, movements, adjustments
	}

	t.Run("feeds stored rows through the engine", func(t *testing.T) {
		svc, accounts, movements, adjustments := newFixture(t)
		account := testAccount(t, "Banco Azul", 1000)

		d := testDate(t, "2025-02-01")
		receivable, err := ledger.NewReceivable(account.ID, "Venda", decimalFromInt(500),
			decimalFromInt(10), d, d, nil)
		require.NoError(t, err)
		require.NoError(t, receivable.Settle(d))

		window := ledger.Between(testDate(t, "2025-02-01"), testDate(t, "2025-02-28"))
		accounts.On("FindAll", ctx, false).Return([]ledger.Account{*account}, nil)
		movements.On("FindAll", ctx, ledger.MovementFilter{From: window.Start, To: window.End}).
			Return([]ledger.Movement{*receivable}, nil)
		adjustments.On("FindAll", ctx, ledger.AdjustmentFilter{From: window.Start, To: window.End}).
			Return([]ledger.Adjustment{}, nil)

		result, err := svc.Reconcile(ctx, window)
		require.NoError(t, err)
		require.Len(t, result.Accounts, 1)
		assert.Equal(t, "1450.00", result.Accounts[0].PeriodBalance.StringFixed(2))
		assert.Equal(t, "1450.00", result.Aggregate.StringFixed(2))
	})

	t.Run("includes inactive accounts", func(t *testing.T) {
		svc, accounts, movements, adjustments := newFixture(t)
		account := testAccount(t, "Conta Antiga", 200)
		require.NoError(t, account.Deactivate())

		accounts.On("FindAll", ctx, false).Return([]ledger.Account{*account}, nil)
		movements.On("FindAll", ctx, ledger.MovementFilter{}).Return([]ledger.Movement{}, nil)
		adjustments.On("FindAll", ctx, ledger.AdjustmentFilter{}).Return([]ledger.Adjustment{}, nil)

		result, err := svc.Reconcile(ctx, ledger.AllTime())
		require.NoError(t, err)
		assert.Equal(t, "200.00", result.Aggregate.StringFixed(2))
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		svc, accounts, _, _ := newFixture(t)
		boom := errors.New("connection reset")
		accounts.On("FindAll", ctx, false).Return(nil, boom)

		_, err := svc.Reconcile(ctx, ledger.AllTime())
		assert.ErrorIs(t, err, boom)
	})
}
