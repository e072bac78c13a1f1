package ledger

import (
	"context"
	"fmt"

	"github.com/contafacil/backend/internal/domain/ledger"
	"github.com/contafacil/backend/internal/domain/shared"
	"github.com/contafacil/backend/internal/domain/shared/valueobject"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PayableService handles outgoing movements. Payables carry no fee and no
// modality; only a due date schedule applies.
type PayableService struct {
	accountRepo  ledger.AccountRepository
	movementRepo ledger.MovementRepository
	validate     *validator.Validate
	logger       *zap.Logger
}

// NewPayableService creates a new PayableService
func NewPayableService(
	accountRepo ledger.AccountRepository,
	movementRepo ledger.MovementRepository,
	logger *zap.Logger,
) *PayableService {
	return &PayableService{
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
		validate:     validator.New(),
		logger:       logger,
	}
}

// Create records a new payable with the due date derived from the D+N rule
func (s *PayableService) Create(ctx context.Context, input CreatePayableInput) (*ledger.Movement, error) {
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}

	gross, err := ledger.ParseAmountStrict(input.AmountExpr)
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}
	if !account.Active {
		return nil, shared.NewDomainError("INACTIVE_ACCOUNT", "Cannot post to an inactive account")
	}

	dueRule := input.DueRule
	if dueRule == "" {
		dueRule = "D+0"
	}
	dueDate, err := ledger.ComputeDueDate(input.BaseDate, dueRule)
	if err != nil {
		return nil, err
	}

	movement, err := ledger.NewPayable(account.ID, input.Description, gross,
		dueDate, input.CategoryID, input.SupplierID)
	if err != nil {
		return nil, err
	}

	if err := s.movementRepo.Save(ctx, movement); err != nil {
		return nil, fmt.Errorf("failed to save payable: %w", err)
	}

	s.logger.Info("payable created",
		zap.String("movement_id", movement.ID.String()),
		zap.String("account_id", account.ID.String()),
		zap.String("gross", movement.GrossAmount.StringFixed(2)),
		zap.String("due_on", dueDate.String()))

	return movement, nil
}

// Pay marks a pending payable as paid on the given date
func (s *PayableService) Pay(ctx context.Context, id uuid.UUID, on valueobject.Date) (*ledger.Movement, error) {
	movement, err := s.movementRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if movement.Kind != ledger.MovementKindPayable {
		return nil, shared.NewDomainError("INVALID_STATE", "Movement is not a payable")
	}
	if on.IsZero() {
		return nil, shared.ErrInvalidDate
	}
	if err := movement.Settle(on); err != nil {
		return nil, err
	}
	if err := s.movementRepo.Save(ctx, movement); err != nil {
		return nil, fmt.Errorf("failed to save payable: %w", err)
	}
	return movement, nil
}

// Cancel cancels a payable
func (s *PayableService) Cancel(ctx context.Context, id uuid.UUID) error {
	movement, err := s.movementRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := movement.Cancel(); err != nil {
		return err
	}
	return s.movementRepo.Save(ctx, movement)
}
