package ledger

import (
	"fmt"

	"github.com/contafacil/backend/internal/domain/shared"
	"github.com/contafacil/backend/internal/domain/shared/valueobject"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service inputs are validated structurally before any domain logic or
// store write runs; a failed validation is a typed rejection, never a
// partial write.

// CreateReceivableInput describes a new incoming movement. BaseDate is the
// caller-supplied reference date ("today" at the form): no service reads
// the system clock.
type CreateReceivableInput struct {
	AccountID   uuid.UUID        `validate:"-"` // optional; modality routing applies when absent
	Description string           `validate:"required,max=200"`
	AmountExpr  string           `validate:"required"`
	Modality    string           `validate:"-"` // optional explicit name; else matched from the description
	BaseDate    valueobject.Date `validate:"required"`
	DueRule     string           `validate:"-"` // D+N, defaults to D+0
	CategoryID  *uuid.UUID       `validate:"-"`
}

// CreatePayableInput describes a new outgoing movement
type CreatePayableInput struct {
	AccountID   uuid.UUID        `validate:"required"`
	Description string           `validate:"required,max=200"`
	AmountExpr  string           `validate:"required"`
	BaseDate    valueobject.Date `validate:"required"`
	DueRule     string           `validate:"-"` // D+N, defaults to D+0
	CategoryID  *uuid.UUID       `validate:"-"`
	SupplierID  *uuid.UUID       `validate:"-"`
}

// UpdateReceivableInput re-prices an existing receivable
type UpdateReceivableInput struct {
	AmountExpr  string `validate:"required"`
	Description string `validate:"-"` // kept when empty
}

// TransferInput describes a transfer between two accounts
type TransferInput struct {
	OriginID      uuid.UUID        `validate:"required"`
	DestinationID uuid.UUID        `validate:"required"`
	Amount        decimal.Decimal  `validate:"-"`
	Date          valueobject.Date `validate:"required"`
	Description   string           `validate:"max=200"`
}

// CreateAdjustmentInput describes a manual balance correction. The prior
// balance is captured from the account at execution time; only the target
// balance and reason come from the caller.
type CreateAdjustmentInput struct {
	AccountID  uuid.UUID        `validate:"required"`
	NewBalance decimal.Decimal  `validate:"-"`
	Reason     string           `validate:"required,max=200"`
	Date       valueobject.Date `validate:"required"`
}

// validateInput runs structural validation and converts failures into the
// shared invalid-input error with field context.
func validateInput(v *validator.Validate, input any) error {
	if err := v.Struct(input); err != nil {
		return fmt.Errorf("%w: %s", shared.ErrInvalidInput, err.Error())
	}
	return nil
}
