package persistence

import (
	"context"
	"testing"

	"github.com/contafacil/backend/internal/domain/ledger"
	"github.com/contafacil/backend/internal/domain/shared"
	"github.com/contafacil/backend/internal/domain/shared/valueobject"
	"github.com/contafacil/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.AccountModel{},
		&models.MovementModel{},
		&models.ModalityModel{},
		&models.AdjustmentModel{},
	))
	return db
}

func storedAccount(t *testing.T, repo *GormAccountRepository, name string, opening int64) *ledger.Account {
	t.Helper()
	a, err := ledger.NewAccount(name, ledger.AccountKindChecking, decimal.NewFromInt(opening))
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), a))
	return a
}

func repoDate(t *testing.T, s string) valueobject.Date {
	t.Helper()
	d, err := valueobject.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestGormAccountRepository(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormAccountRepository(db)

	t.Run("save and find round-trip", func(t *testing.T) {
		account := storedAccount(t, repo, "Banco Azul", 1000)

		found, err := repo.FindByID(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, "Banco Azul", found.Name)
		assert.True(t, found.OpeningBalance.Equal(decimal.NewFromInt(1000)))
		assert.True(t, found.Active)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("FindAll filters inactive accounts", func(t *testing.T) {
		inactive := storedAccount(t, repo, "Conta Antiga", 0)
		require.NoError(t, inactive.Deactivate())
		require.NoError(t, repo.Save(ctx, inactive))

		all, err := repo.FindAll(ctx, false)
		require.NoError(t, err)
		active, err := repo.FindAll(ctx, true)
		require.NoError(t, err)
		assert.Len(t, all, len(active)+1)
	})

	t.Run("delete is rejected while movements reference the account", func(t *testing.T) {
		account := storedAccount(t, repo, "Caixa", 0)
		movementRepo := NewGormMovementRepository(db)

		d := repoDate(t, "2025-02-01")
		m, err := ledger.NewPayable(account.ID, "Despesa", decimal.NewFromInt(10), d, nil, nil)
		require.NoError(t, err)
		require.NoError(t, movementRepo.Save(ctx, m))

		assert.ErrorIs(t, repo.Delete(ctx, account.ID), shared.ErrAccountInUse)

		require.NoError(t, movementRepo.Delete(ctx, m.ID))
		assert.NoError(t, repo.Delete(ctx, account.ID))
	})
}

func TestGormMovementRepository(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	accountRepo := NewGormAccountRepository(db)
	repo := NewGormMovementRepository(db)

	account := storedAccount(t, accountRepo, "Banco Azul", 1000)
	other := storedAccount(t, accountRepo, "Caixa", 0)

	newSettled := func(t *testing.T, on string, gross int64) *ledger.Movement {
		t.Helper()
		d := repoDate(t, on)
		m, err := ledger.NewReceivable(account.ID, "Venda", decimal.NewFromInt(gross),
			decimal.Zero, d, d, nil)
		require.NoError(t, err)
		require.NoError(t, m.Settle(d))
		require.NoError(t, repo.Save(ctx, m))
		return m
	}

	first := newSettled(t, "2025-02-01", 100)
	second := newSettled(t, "2025-02-10", 200)

	transfer, err := ledger.NewTransfer(account.ID, other.ID, decimal.NewFromInt(50),
		repoDate(t, "2025-02-05"), "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, transfer))

	t.Run("date range filter is inclusive", func(t *testing.T) {
		from := repoDate(t, "2025-02-01")
		to := repoDate(t, "2025-02-05")
		found, err := repo.FindAll(ctx, ledger.MovementFilter{From: &from, To: &to})
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, first.ID, found[0].ID, "ordered by settled date ascending")
		assert.Equal(t, transfer.ID, found[1].ID)
	})

	t.Run("kind filter", func(t *testing.T) {
		kind := ledger.MovementKindTransfer
		found, err := repo.FindAll(ctx, ledger.MovementFilter{Kind: &kind})
		require.NoError(t, err)
		require.Len(t, found, 1)
		require.NotNil(t, found[0].OriginID)
		assert.Equal(t, account.ID, *found[0].OriginID)
	})

	t.Run("account filter matches either side of a transfer", func(t *testing.T) {
		found, err := repo.FindAll(ctx, ledger.MovementFilter{AccountID: &other.ID})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, transfer.ID, found[0].ID)
	})

	t.Run("CountByAccount", func(t *testing.T) {
		count, err := repo.CountByAccount(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("update in place", func(t *testing.T) {
		require.NoError(t, second.Cancel())
		require.NoError(t, repo.Save(ctx, second))

		found, err := repo.FindByID(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, ledger.MovementStatusCancelled, found.Status)
	})
}

func TestGormModalityRepository(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormModalityRepository(db)

	m, err := ledger.NewModality("Cartão Crédito", ledger.SettlementNextWednesdayAfterWeek,
		decimal.NewFromFloat(3.5), nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, m))

	t.Run("FindByName is case-insensitive", func(t *testing.T) {
		found, err := repo.FindByName(ctx, "cartão crédito")
		require.NoError(t, err)
		assert.Equal(t, m.ID, found.ID)
		assert.Equal(t, ledger.SettlementNextWednesdayAfterWeek, found.Rule)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := repo.FindByName(ctx, "Cheque")
		assert.ErrorIs(t, err, shared.ErrUnknownModality)
	})

	t.Run("FindAll", func(t *testing.T) {
		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

func TestGormAdjustmentRepository(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormAdjustmentRepository(db)
	accountID := uuid.New()

	mk := func(t *testing.T, on string, prior, next int64) *ledger.Adjustment {
		t.Helper()
		a, err := ledger.NewAdjustment(accountID, decimal.NewFromInt(prior),
			decimal.NewFromInt(next), "Acerto com extrato", repoDate(t, on))
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, a))
		return a
	}

	older := mk(t, "2025-03-01", 100, 130)
	newer := mk(t, "2025-03-10", 130, 110)

	t.Run("ordered by date ascending", func(t *testing.T) {
		all, err := repo.FindAll(ctx, ledger.AdjustmentFilter{AccountID: &accountID})
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, older.ID, all[0].ID)
		assert.Equal(t, newer.ID, all[1].ID)
		assert.Equal(t, "30.00", all[0].Delta.StringFixed(2), "frozen delta survives the round-trip")
	})

	t.Run("date range filter", func(t *testing.T) {
		from := repoDate(t, "2025-03-05")
		found, err := repo.FindAll(ctx, ledger.AdjustmentFilter{From: &from})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, newer.ID, found[0].ID)
	})
}
