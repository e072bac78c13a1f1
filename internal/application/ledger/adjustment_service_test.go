package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/contafacil/backend/internal/domain/ledger"
	"github.com/contafacil/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdjustmentServiceCreate(t *testing.T) {
	ctx := context.Background()

	newFixture := func(t *testing.T) (*AdjustmentService, *MockAccountRepository, *MockAdjustmentRepository) {
		t.Helper()
		accounts := new(MockAccountRepository)
		adjustments := new(MockAdjustmentRepository)
		return NewAdjustmentService(accounts, adjustments, testLogger()), accounts, adjustments
	}

	t.Run("captures the prior balance from the account", func(t *testing.T) {
		svc, accounts, adjustments := newFixture(t)
		account := testAccount(t, "Banco Azul", 1000)

		accounts.On("FindByID", ctx, account.ID).Return(account, nil)
		adjustments.On("Save", ctx, mock.AnythingOfType("*ledger.Adjustment")).Return(nil)
		accounts.On("Save", ctx, account).Return(nil)

		adj, err := svc.Create(ctx, CreateAdjustmentInput{
			AccountID:  account.ID,
			NewBalance: decimalFromInt(950),
			Reason:     "Acerto com extrato",
			Date:       testDate(t, "2025-04-01"),
		})
		require.NoError(t, err)

		assert.Equal(t, "1000.00", adj.PriorBalance.StringFixed(2))
		assert.Equal(t, "950.00", adj.NewBalance.StringFixed(2))
		assert.Equal(t, "-50.00", adj.Delta.StringFixed(2))
		assert.Equal(t, "950.00", account.CurrentBalance.StringFixed(2), "cache snapped to the new value")
		adjustments.AssertExpectations(t)
	})

	t.Run("requires a reason", func(t *testing.T) {
		svc, _, adjustments := newFixture(t)
		_, err := svc.Create(ctx, CreateAdjustmentInput{
			AccountID:  testAccount(t, "Banco Azul", 0).ID,
			NewBalance: decimalFromInt(10),
			Date:       testDate(t, "2025-04-01"),
		})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		adjustments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown account writes nothing", func(t *testing.T) {
		svc, accounts, adjustments := newFixture(t)
		account := testAccount(t, "Banco Azul", 0)
		accounts.On("FindByID", ctx, account.ID).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, CreateAdjustmentInput{
			AccountID:  account.ID,
			NewBalance: decimalFromInt(10),
			Reason:     "Acerto",
			Date:       testDate(t, "2025-04-01"),
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		adjustments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("failed cache refresh keeps the adjustment and reports it", func(t *testing.T) {
		svc, accounts, adjustments := newFixture(t)
		account := testAccount(t, "Banco Azul", 1000)
		boom := errors.New("connection reset")

		accounts.On("FindByID", ctx, account.ID).Return(account, nil)
		adjustments.On("Save", ctx, mock.AnythingOfType("*ledger.Adjustment")).Return(nil)
		accounts.On("Save", ctx, account).Return(boom)

		adj, err := svc.Create(ctx, CreateAdjustmentInput{
			AccountID:  account.ID,
			NewBalance: decimalFromInt(900),
			Reason:     "Acerto com extrato",
			Date:       testDate(t, "2025-04-01"),
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		require.NotNil(t, adj, "the durable adjustment row is still returned")
		assert.Equal(t, "-100.00", adj.Delta.StringFixed(2))
	})
}

func TestAdjustmentServiceHistory(t *testing.T) {
	ctx := context.Background()
	accounts := new(MockAccountRepository)
	adjustments := new(MockAdjustmentRepository)
	svc := NewAdjustmentService(accounts, adjustments, testLogger())

	account := testAccount(t, "Banco Azul", 0)
	stored, err := ledger.NewAdjustment(account.ID, decimalFromInt(0), decimalFromInt(10),
		"Acerto", testDate(t, "2025-04-01"))
	require.NoError(t, err)

	filter := ledger.AdjustmentFilter{AccountID: &account.ID}
	adjustments.On("FindAll", ctx, filter).Return([]ledger.Adjustment{*stored}, nil)

	history, err := svc.History(ctx, filter)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, stored.ID, history[0].ID)
}
