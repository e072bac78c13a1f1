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

// ReceivableService handles incoming movements: amount parsing, modality
// resolution, fee/net derivation and settlement scheduling all happen here,
// once, at write time.
type ReceivableService struct {
	accountRepo  ledger.AccountRepository
	movementRepo ledger.MovementRepository
	modalityRepo ledger.ModalityRepository
	validate     *validator.Validate
	logger       *zap.Logger
}

// NewReceivableService creates a new ReceivableService
func NewReceivableService(
	accountRepo ledger.AccountRepository,
	movementRepo ledger.MovementRepository,
	modalityRepo ledger.ModalityRepository,
	logger *zap.Logger,
) *ReceivableService {
	return &ReceivableService{
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
		modalityRepo: modalityRepo,
		validate:     validator.New(),
		logger:       logger,
	}
}

// Create records a new receivable. The modality is resolved by explicit name
// when given, otherwise matched from the description; its settlement rule and
// fee percentage are applied once and frozen onto the movement.
func (s *ReceivableService) Create(ctx context.Context, input CreateReceivableInput) (*ledger.Movement, error) {
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}

	gross, err := ledger.ParseAmountStrict(input.AmountExpr)
	if err != nil {
		return nil, err
	}

	modalities, err := s.modalityRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load modalities: %w", err)
	}
	directory := ledger.NewModalityDirectory(modalities)

	var modality *ledger.Modality
	if input.Modality != "" {
		modality, err = directory.Resolve(input.Modality)
	} else {
		modality, err = directory.Match(input.Description)
	}
	if err != nil {
		return nil, err
	}

	accountID := input.AccountID
	if accountID == uuid.Nil && modality.DefaultAccountID != nil {
		accountID = *modality.DefaultAccountID
	}
	if accountID == uuid.Nil {
		return nil, shared.ErrUnknownAccount
	}
	account, err := s.accountRepo.FindByID(ctx, accountID)
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
	settlement, err := ledger.ComputeSettlementDate(input.BaseDate, modality.Rule)
	if err != nil {
		return nil, err
	}

	movement, err := ledger.NewReceivable(account.ID, input.Description, gross,
		modality.FeePercent, dueDate, settlement, &modality.ID)
	if err != nil {
		return nil, err
	}
	movement.CategoryID = input.CategoryID

	if err := s.movementRepo.Save(ctx, movement); err != nil {
		return nil, fmt.Errorf("failed to save receivable: %w", err)
	}

	s.logger.Info("receivable created",
		zap.String("movement_id", movement.ID.String()),
		zap.String("account_id", account.ID.String()),
		zap.String("modality", modality.Name),
		zap.String("gross", movement.GrossAmount.StringFixed(2)),
		zap.String("net", movement.NetAmount.StringFixed(2)),
		zap.String("settles_on", settlement.String()))

	return movement, nil
}

// Settle confirms receipt of a pending receivable. A zero date keeps the
// settlement date frozen at creation.
func (s *ReceivableService) Settle(ctx context.Context, id uuid.UUID, on valueobject.Date) (*ledger.Movement, error) {
	movement, err := s.movementRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if movement.Kind != ledger.MovementKindReceivable {
		return nil, shared.NewDomainError("INVALID_STATE", "Movement is not a receivable")
	}
	if err := movement.Settle(on); err != nil {
		return nil, err
	}
	if err := s.movementRepo.Save(ctx, movement); err != nil {
		return nil, fmt.Errorf("failed to save receivable: %w", err)
	}
	return movement, nil
}

// Update re-prices a receivable from a new amount expression. The movement's
// frozen fee percentage is reapplied so the stored fee and net stay coherent
// with the new gross.
func (s *ReceivableService) Update(ctx context.Context, id uuid.UUID, input UpdateReceivableInput) (*ledger.Movement, error) {
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}

	gross, err := ledger.ParseAmountStrict(input.AmountExpr)
	if err != nil {
		return nil, err
	}

	movement, err := s.movementRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if movement.Kind != ledger.MovementKindReceivable {
		return nil, shared.NewDomainError("INVALID_STATE", "Movement is not a receivable")
	}
	if err := movement.Reprice(gross, movement.FeePercent); err != nil {
		return nil, err
	}
	if input.Description != "" {
		movement.Description = input.Description
	}
	if err := s.movementRepo.Save(ctx, movement); err != nil {
		return nil, fmt.Errorf("failed to save receivable: %w", err)
	}
	return movement, nil
}

// Cancel cancels a receivable, excluding it from every balance computation
func (s *ReceivableService) Cancel(ctx context.Context, id uuid.UUID) error {
	movement, err := s.movementRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := movement.Cancel(); err != nil {
		return err
	}
	return s.movementRepo.Save(ctx, movement)
}
