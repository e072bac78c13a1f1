package ledger

import (
	"context"
	"fmt"

	"github.com/contafacil/backend/internal/domain/ledger"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// AdjustmentService records manual balance corrections. The prior balance is
// captured from the account's cached balance at execution time, never from
// the caller, so the frozen delta always describes what actually changed.
type AdjustmentService struct {
	accountRepo    ledger.AccountRepository
	adjustmentRepo ledger.AdjustmentRepository
	validate       *validator.Validate
	logger         *zap.Logger
}

// NewAdjustmentService creates a new AdjustmentService
func NewAdjustmentService(
	accountRepo ledger.AccountRepository,
	adjustmentRepo ledger.AdjustmentRepository,
	logger *zap.Logger,
) *AdjustmentService {
	return &AdjustmentService{
		accountRepo:    accountRepo,
		adjustmentRepo: adjustmentRepo,
		validate:       validator.New(),
		logger:         logger,
	}
}

// Create inserts the adjustment and snaps the account's cached balance to the
// new value. The adjustment row is the durable record; if the cache refresh
// fails afterwards the adjustment still stands and the error says so.
func (s *AdjustmentService) Create(ctx context.Context, input CreateAdjustmentInput) (*ledger.Adjustment, error) {
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	adjustment, err := ledger.NewAdjustment(account.ID, account.CurrentBalance,
		input.NewBalance, input.Reason, input.Date)
	if err != nil {
		return nil, err
	}

	if err := s.adjustmentRepo.Save(ctx, adjustment); err != nil {
		return nil, fmt.Errorf("failed to save adjustment: %w", err)
	}

	account.ReflectAdjustment(input.NewBalance)
	if err := s.accountRepo.Save(ctx, account); err != nil {
		s.logger.Error("adjustment recorded but balance cache not refreshed",
			zap.String("adjustment_id", adjustment.ID.String()),
			zap.String("account_id", account.ID.String()),
			zap.Error(err))
		return adjustment, fmt.Errorf("adjustment recorded but balance cache not refreshed: %w", err)
	}

	s.logger.Info("balance adjusted",
		zap.String("adjustment_id", adjustment.ID.String()),
		zap.String("account_id", account.ID.String()),
		zap.String("prior", adjustment.PriorBalance.StringFixed(2)),
		zap.String("new", adjustment.NewBalance.StringFixed(2)),
		zap.String("delta", adjustment.Delta.StringFixed(2)))

	return adjustment, nil
}

// History lists adjustments for the given filter, oldest first
func (s *AdjustmentService) History(ctx context.Context, filter ledger.AdjustmentFilter) ([]ledger.Adjustment, error) {
	return s.adjustmentRepo.FindAll(ctx, filter)
}
