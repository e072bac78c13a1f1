package ledger

import (
	"context"
	"testing"

	"github.com/contafacil/backend/internal/domain/ledger"
	"github.com/contafacil/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockAccountRepository is a mock implementation of ledger.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAll(ctx context.Context, onlyActive bool) ([]ledger.Account, error) {
	args := m.Called(ctx, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) Save(ctx context.Context, account *ledger.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMovementRepository is a mock implementation of ledger.MovementRepository
type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Movement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Movement), args.Error(1)
}

func (m *MockMovementRepository) FindAll(ctx context.Context, filter ledger.MovementFilter) ([]ledger.Movement, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Movement), args.Error(1)
}

func (m *MockMovementRepository) Save(ctx context.Context, movement *ledger.Movement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockMovementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMovementRepository) CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

// MockModalityRepository is a mock implementation of ledger.ModalityRepository
type MockModalityRepository struct {
	mock.Mock
}

func (m *MockModalityRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Modality, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Modality), args.Error(1)
}

func (m *MockModalityRepository) FindByName(ctx context.Context, name string) (*ledger.Modality, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Modality), args.Error(1)
}

func (m *MockModalityRepository) FindAll(ctx context.Context) ([]ledger.Modality, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Modality), args.Error(1)
}

func (m *MockModalityRepository) Save(ctx context.Context, modality *ledger.Modality) error {
	args := m.Called(ctx, modality)
	return args.Error(0)
}

func (m *MockModalityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAdjustmentRepository is a mock implementation of ledger.AdjustmentRepository
type MockAdjustmentRepository struct {
	mock.Mock
}

func (m *MockAdjustmentRepository) FindAll(ctx context.Context, filter ledger.AdjustmentFilter) ([]ledger.Adjustment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Adjustment), args.Error(1)
}

func (m *MockAdjustmentRepository) Save(ctx context.Context, adjustment *ledger.Adjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

// Shared test fixtures

func testAccount(t *testing.T, name string, opening float64) *ledger.Account {
	t.Helper()
	a, err := ledger.NewAccount(name, ledger.AccountKindChecking, decimal.NewFromFloat(opening))
	require.NoError(t, err)
	return a
}

func testModality(t *testing.T, name string, rule ledger.SettlementRule, feePercent float64, defaultAccountID *uuid.UUID) ledger.Modality {
	t.Helper()
	m, err := ledger.NewModality(name, rule, decimal.NewFromFloat(feePercent), defaultAccountID)
	require.NoError(t, err)
	return *m
}

func testDate(t *testing.T, s string) valueobject.Date {
	t.Helper()
	d, err := valueobject.ParseDate(s)
	require.NoError(t, err)
	return d
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func decimalFromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}
