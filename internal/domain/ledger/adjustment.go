package ledger

import (
	"github.com/contafacil/backend/internal/domain/shared"
	"github.com/contafacil/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Adjustment is a manual correction entry reconciling drift between recorded
// movements and a real-world bank statement. Prior balance, new balance and
// their delta are captured at creation time and immutable thereafter; the
// reconciliation engine sums the stored delta directly.
type Adjustment struct {
	shared.BaseEntity
	AccountID    uuid.UUID
	PriorBalance decimal.Decimal
	NewBalance   decimal.Decimal
	Delta        decimal.Decimal
	Reason       string
	AdjustedOn   valueobject.Date
}

// NewAdjustment creates an adjustment, freezing the delta between the prior
// and new balances.
func NewAdjustment(
	accountID uuid.UUID,
	priorBalance, newBalance decimal.Decimal,
	reason string,
	on valueobject.Date,
) (*Adjustment, error) {
	if accountID == uuid.Nil {
		return nil, shared.ErrUnknownAccount
	}
	if reason == "" {
		return nil, shared.NewDomainError("INVALID_REASON", "Adjustment reason is required")
	}
	if on.IsZero() {
		return nil, shared.ErrInvalidDate
	}

	return &Adjustment{
		BaseEntity:   shared.NewBaseEntity(),
		AccountID:    accountID,
		PriorBalance: priorBalance,
		NewBalance:   newBalance,
		Delta:        newBalance.Sub(priorBalance),
		Reason:       reason,
		AdjustedOn:   on,
	}, nil
}
