package ledger

import (
	"fmt"

	"github.com/contafacil/backend/internal/domain/shared"
	"github.com/contafacil/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementKind represents the kind of cash effect a movement records
type MovementKind string

const (
	MovementKindReceivable MovementKind = "RECEIVABLE" // incoming
	MovementKindPayable    MovementKind = "PAYABLE"    // outgoing
	MovementKindTransfer   MovementKind = "TRANSFER"   // paired debit/credit across two accounts
)

// IsValid checks if the kind is a valid MovementKind
func (k MovementKind) IsValid() bool {
	switch k {
	case MovementKindReceivable, MovementKindPayable, MovementKindTransfer:
		return true
	}
	return false
}

// MovementStatus represents the lifecycle status of a movement
type MovementStatus string

const (
	MovementStatusPending   MovementStatus = "PENDING"
	MovementStatusSettled   MovementStatus = "SETTLED"
	MovementStatusCancelled MovementStatus = "CANCELLED"
)

// IsValid checks if the status is a valid MovementStatus
func (s MovementStatus) IsValid() bool {
	switch s {
	case MovementStatusPending, MovementStatusSettled, MovementStatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true if the movement is in a terminal state
func (s MovementStatus) IsTerminal() bool {
	return s == MovementStatusCancelled
}

// Movement is a single dated cash effect on one account (or a pair of
// accounts for transfers). There is no event log: edits overwrite the row
// in place, so historical reconciliation is only as good as the current
// row state.
//
// Fee and net amounts are derived at write time and persisted; the
// reconciliation engine reads the stored net amount directly and never
// recomputes it.
type Movement struct {
	shared.BaseAggregateRoot
	Kind        MovementKind
	AccountID   uuid.UUID  // owning account; destination for transfers
	OriginID    *uuid.UUID // transfers only: the debited account
	Description string
	GrossAmount decimal.Decimal
	FeePercent  decimal.Decimal
	FeeAmount   decimal.Decimal
	NetAmount   decimal.Decimal
	DueDate     *valueobject.Date // receivables and payables
	SettledOn   *valueobject.Date // receipt date / payment date / transfer date
	Status      MovementStatus
	ModalityID  *uuid.UUID // frozen at creation; later rule edits never reapply
	CategoryID  *uuid.UUID
	SupplierID  *uuid.UUID
}

// NewReceivable creates an incoming movement. The settlement date passed in
// was produced once by the modality's rule and is frozen onto the row.
func NewReceivable(
	accountID uuid.UUID,
	description string,
	gross decimal.Decimal,
	feePercent decimal.Decimal,
	dueDate valueobject.Date,
	expectedSettlement valueobject.Date,
	modalityID *uuid.UUID,
) (*Movement, error) {
	if accountID == uuid.Nil {
		return nil, shared.ErrUnknownAccount
	}
	if gross.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Receivable gross amount cannot be negative")
	}
	if dueDate.IsZero() || expectedSettlement.IsZero() {
		return nil, shared.ErrInvalidDate
	}
	if feePercent.IsNegative() {
		feePercent = decimal.Zero
	}

	breakdown := ComputeFeeAndNet(gross, feePercent)
	settlement := expectedSettlement

	return &Movement{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kind:              MovementKindReceivable,
		AccountID:         accountID,
		Description:       description,
		GrossAmount:       gross,
		FeePercent:        feePercent,
		FeeAmount:         breakdown.FeeAmount,
		NetAmount:         breakdown.NetAmount,
		DueDate:           &dueDate,
		SettledOn:         &settlement,
		Status:            MovementStatusPending,
		ModalityID:        modalityID,
	}, nil
}

// NewPayable creates an outgoing movement. Payables carry no fee; the net
// amount equals the gross.
func NewPayable(
	accountID uuid.UUID,
	description string,
	gross decimal.Decimal,
	dueDate valueobject.Date,
	categoryID, supplierID *uuid.UUID,
) (*Movement, error) {
	if accountID == uuid.Nil {
		return nil, shared.ErrUnknownAccount
	}
	if gross.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payable gross amount cannot be negative")
	}
	if dueDate.IsZero() {
		return nil, shared.ErrInvalidDate
	}

	return &Movement{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kind:              MovementKindPayable,
		AccountID:         accountID,
		Description:       description,
		GrossAmount:       gross,
		FeePercent:        decimal.Zero,
		FeeAmount:         decimal.Zero,
		NetAmount:         gross,
		DueDate:           &dueDate,
		Status:            MovementStatusPending,
		CategoryID:        categoryID,
		SupplierID:        supplierID,
	}, nil
}

// NewTransfer creates a paired debit/credit movement between two accounts.
// Transfers settle on their own date; there is no pending phase.
func NewTransfer(
	originID, destinationID uuid.UUID,
	amount decimal.Decimal,
	on valueobject.Date,
	description string,
) (*Movement, error) {
	if originID == uuid.Nil || destinationID == uuid.Nil {
		return nil, shared.ErrUnknownAccount
	}
	if originID == destinationID {
		return nil, shared.ErrSameAccountTransfer
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Transfer amount must be positive")
	}
	if on.IsZero() {
		return nil, shared.ErrInvalidDate
	}

	transferDate := on
	return &Movement{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kind:              MovementKindTransfer,
		AccountID:         destinationID,
		OriginID:          &originID,
		Description:       description,
		GrossAmount:       amount,
		FeePercent:        decimal.Zero,
		FeeAmount:         decimal.Zero,
		NetAmount:         amount,
		SettledOn:         &transferDate,
		Status:            MovementStatusSettled,
	}, nil
}

// Settle marks a pending receivable or payable as settled on the given date.
// A zero date keeps the frozen expected settlement date for receivables.
func (m *Movement) Settle(on valueobject.Date) error {
	if m.Kind == MovementKindTransfer {
		return shared.NewDomainError("INVALID_STATE", "Transfers settle at creation")
	}
	if m.Status != MovementStatusPending {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot settle movement in %s status", m.Status))
	}
	if !on.IsZero() {
		m.SettledOn = &on
	}
	if m.SettledOn == nil || m.SettledOn.IsZero() {
		return shared.ErrInvalidDate
	}
	m.Status = MovementStatusSettled
	m.Touch()
	return nil
}

// Cancel cancels the movement. Cancelled movements are excluded from all
// balance computations but remain stored for the audit trail.
func (m *Movement) Cancel() error {
	if m.Status == MovementStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Movement is already cancelled")
	}
	m.Status = MovementStatusCancelled
	m.Touch()
	return nil
}

// Reprice replaces the gross amount and fee percentage, re-deriving the
// persisted fee and net amounts. Cancelled movements cannot be repriced.
func (m *Movement) Reprice(gross, feePercent decimal.Decimal) error {
	if m.Status == MovementStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot reprice a cancelled movement")
	}
	if gross.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Gross amount cannot be negative")
	}
	if feePercent.IsNegative() {
		feePercent = decimal.Zero
	}
	if m.Kind != MovementKindReceivable {
		feePercent = decimal.Zero
	}

	breakdown := ComputeFeeAndNet(gross, feePercent)
	m.GrossAmount = gross
	m.FeePercent = feePercent
	m.FeeAmount = breakdown.FeeAmount
	m.NetAmount = breakdown.NetAmount
	m.Touch()
	return nil
}

// Reschedule replaces the due and settlement dates
func (m *Movement) Reschedule(dueDate, settledOn *valueobject.Date) error {
	if m.Status == MovementStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot reschedule a cancelled movement")
	}
	if dueDate != nil && dueDate.IsZero() {
		return shared.ErrInvalidDate
	}
	if settledOn != nil && settledOn.IsZero() {
		return shared.ErrInvalidDate
	}
	if dueDate != nil {
		m.DueDate = dueDate
	}
	if settledOn != nil {
		m.SettledOn = settledOn
	}
	m.Touch()
	return nil
}

// IsSettled returns true if the movement has been settled
func (m *Movement) IsSettled() bool {
	return m.Status == MovementStatusSettled
}

// IsCancelled returns true if the movement has been cancelled
func (m *Movement) IsCancelled() bool {
	return m.Status == MovementStatusCancelled
}

// Touches reports whether the movement debits or credits the given account
func (m *Movement) Touches(accountID uuid.UUID) bool {
	if m.AccountID == accountID {
		return true
	}
	return m.OriginID != nil && *m.OriginID == accountID
}
