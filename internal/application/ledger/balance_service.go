package ledger

import (
	"context"
	"fmt"

	"github.com/contafacil/backend/internal/domain/ledger"
	"go.uber.org/zap"
)

// BalanceService computes account balances on demand by feeding the stored
// accounts, movements and adjustments through the reconciliation engine. It
// never trusts or updates the cached balances.
type BalanceService struct {
	accountRepo    ledger.AccountRepository
	movementRepo   ledger.MovementRepository
	adjustmentRepo ledger.AdjustmentRepository
	logger         *zap.Logger
}

// NewBalanceService creates a new BalanceService
func NewBalanceService(
	accountRepo ledger.AccountRepository,
	movementRepo ledger.MovementRepository,
	adjustmentRepo ledger.AdjustmentRepository,
	logger *zap.Logger,
) *BalanceService {
	return &BalanceService{
		accountRepo:    accountRepo,
		movementRepo:   movementRepo,
		adjustmentRepo: adjustmentRepo,
		logger:         logger,
	}
}

// Reconcile computes per-account and aggregate balances over the window.
// Inactive accounts are included: their money is still real. Orphaned rows
// referencing unknown accounts are logged and counted, never fatal.
func (s *BalanceService) Reconcile(ctx context.Context, window ledger.Window) (*ledger.ReconciliationResult, error) {
	accounts, err := s.accountRepo.FindAll(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	movements, err := s.movementRepo.FindAll(ctx, ledger.MovementFilter{
		From: window.Start,
		To:   window.End,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load movements: %w", err)
	}

	adjustments, err := s.adjustmentRepo.FindAll(ctx, ledger.AdjustmentFilter{
		From: window.Start,
		To:   window.End,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load adjustments: %w", err)
	}

	result := ledger.Reconcile(accounts, movements, adjustments, window)

	if result.OrphanedMovements > 0 || result.OrphanedAdjustments > 0 {
		s.logger.Warn("reconciliation found rows referencing unknown accounts",
			zap.Int("orphaned_movements", result.OrphanedMovements),
			zap.Int("orphaned_adjustments", result.OrphanedAdjustments))
	}

	return &result, nil
}
