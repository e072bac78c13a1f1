package ledger

import (
	"context"
	"fmt"

	"github.com/contafacil/backend/internal/domain/ledger"
	"github.com/contafacil/backend/internal/domain/shared"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// TransferError reports a transfer that failed midway through its write
// sequence. Step names the write that failed; Compensated tells whether the
// earlier writes were successfully rolled back. When Compensated is false the
// cached balances are stale until the next adjustment or reconciliation.
type TransferError struct {
	Step        string
	Compensated bool
	Err         error
}

func (e *TransferError) Error() string {
	if e.Compensated {
		return fmt.Sprintf("transfer aborted at %s (earlier writes rolled back): %v", e.Step, e.Err)
	}
	return fmt.Sprintf("transfer failed at %s and could not be rolled back: %v", e.Step, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }

// TransferService moves money between two accounts. The record store offers
// per-record atomicity only, so a transfer is a sequence of three writes
// (debit the origin cache, credit the destination cache, insert the movement)
// with explicit compensating writes on failure.
type TransferService struct {
	accountRepo  ledger.AccountRepository
	movementRepo ledger.MovementRepository
	validate     *validator.Validate
	logger       *zap.Logger
}

// NewTransferService creates a new TransferService
func NewTransferService(
	accountRepo ledger.AccountRepository,
	movementRepo ledger.MovementRepository,
	logger *zap.Logger,
) *TransferService {
	return &TransferService{
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
		validate:     validator.New(),
		logger:       logger,
	}
}

// Transfer debits the origin account and credits the destination account.
// Both accounts are loaded and validated before the first write, so a
// validation failure never leaves partial state.
func (s *TransferService) Transfer(ctx context.Context, input TransferInput) (*ledger.Movement, error) {
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}

	origin, err := s.accountRepo.FindByID(ctx, input.OriginID)
	if err != nil {
		return nil, err
	}
	destination, err := s.accountRepo.FindByID(ctx, input.DestinationID)
	if err != nil {
		return nil, err
	}
	if !origin.Active || !destination.Active {
		return nil, shared.NewDomainError("INACTIVE_ACCOUNT", "Transfers require two active accounts")
	}

	movement, err := ledger.NewTransfer(origin.ID, destination.ID, input.Amount,
		input.Date, input.Description)
	if err != nil {
		return nil, err
	}

	origin.ReflectTransferOut(movement.GrossAmount)
	if err := s.accountRepo.Save(ctx, origin); err != nil {
		return nil, &TransferError{Step: "debit origin", Compensated: true, Err: err}
	}

	destination.ReflectTransferIn(movement.GrossAmount)
	if err := s.accountRepo.Save(ctx, destination); err != nil {
		return nil, s.compensate(ctx, "credit destination", err, func() error {
			origin.ReflectTransferIn(movement.GrossAmount)
			return s.accountRepo.Save(ctx, origin)
		})
	}

	if err := s.movementRepo.Save(ctx, movement); err != nil {
		return nil, s.compensate(ctx, "insert movement", err, func() error {
			origin.ReflectTransferIn(movement.GrossAmount)
			if saveErr := s.accountRepo.Save(ctx, origin); saveErr != nil {
				return saveErr
			}
			destination.ReflectTransferOut(movement.GrossAmount)
			return s.accountRepo.Save(ctx, destination)
		})
	}

	s.logger.Info("transfer completed",
		zap.String("movement_id", movement.ID.String()),
		zap.String("origin_id", origin.ID.String()),
		zap.String("destination_id", destination.ID.String()),
		zap.String("amount", movement.GrossAmount.StringFixed(2)))

	return movement, nil
}

// compensate runs the rollback for a failed write and reports whether it
// succeeded. A failed rollback is logged loudly: the caches now disagree with
// the movement log until someone reconciles.
func (s *TransferService) compensate(ctx context.Context, step string, cause error, rollback func() error) *TransferError {
	if rbErr := rollback(); rbErr != nil {
		s.logger.Error("transfer rollback failed, cached balances are stale",
			zap.String("step", step),
			zap.NamedError("cause", cause),
			zap.Error(rbErr))
		return &TransferError{Step: step, Compensated: false, Err: cause}
	}
	s.logger.Warn("transfer aborted, earlier writes rolled back",
		zap.String("step", step),
		zap.Error(cause))
	return &TransferError{Step: step, Compensated: true, Err: cause}
}
