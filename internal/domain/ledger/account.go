package ledger

import (
	"github.com/contafacil/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AccountKind represents the kind of financial account
type AccountKind string

const (
	AccountKindChecking   AccountKind = "CHECKING"
	AccountKindSavings    AccountKind = "SAVINGS"
	AccountKindCreditCard AccountKind = "CREDIT_CARD"
	AccountKindInvestment AccountKind = "INVESTMENT"
)

// IsValid checks if the kind is a valid AccountKind
func (k AccountKind) IsValid() bool {
	switch k {
	case AccountKindChecking, AccountKindSavings, AccountKindCreditCard, AccountKindInvestment:
		return true
	}
	return false
}

// Account represents a named financial account (bank account, cash holding).
//
// OpeningBalance is immutable after creation. CurrentBalance is a cache
// refreshed opportunistically by the transfer and adjustment write paths;
// it MAY drift from the reconciliation engine's computed balance and is a
// display hint only; the engine is the source of truth for reporting.
type Account struct {
	shared.BaseAggregateRoot
	Name           string
	Kind           AccountKind
	OpeningBalance decimal.Decimal
	CurrentBalance decimal.Decimal
	Active         bool
}

// NewAccount creates a new account. The cached current balance starts at the
// opening balance.
func NewAccount(name string, kind AccountKind, openingBalance decimal.Decimal) (*Account, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot exceed 100 characters")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_KIND", "Account kind is not valid")
	}

	return &Account{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Kind:              kind,
		OpeningBalance:    openingBalance,
		CurrentBalance:    openingBalance,
		Active:            true,
	}, nil
}

// Rename changes the display name
func (a *Account) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot be empty")
	}
	a.Name = name
	a.Touch()
	return nil
}

// Deactivate soft-deactivates the account. Accounts are never hard-deleted
// while movements reference them.
func (a *Account) Deactivate() error {
	if !a.Active {
		return shared.NewDomainError("INVALID_STATE", "Account is already inactive")
	}
	a.Active = false
	a.Touch()
	return nil
}

// Reactivate re-enables a deactivated account
func (a *Account) Reactivate() error {
	if a.Active {
		return shared.NewDomainError("INVALID_STATE", "Account is already active")
	}
	a.Active = true
	a.Touch()
	return nil
}

// ReflectTransferOut refreshes the cached balance after a transfer debit.
// Cache refresh only; the reconciliation engine never reads this field.
func (a *Account) ReflectTransferOut(amount decimal.Decimal) {
	a.CurrentBalance = a.CurrentBalance.Sub(amount)
	a.Touch()
}

// ReflectTransferIn refreshes the cached balance after a transfer credit
func (a *Account) ReflectTransferIn(amount decimal.Decimal) {
	a.CurrentBalance = a.CurrentBalance.Add(amount)
	a.Touch()
}

// ReflectAdjustment snaps the cached balance to the adjusted value
func (a *Account) ReflectAdjustment(newBalance decimal.Decimal) {
	a.CurrentBalance = newBalance
	a.Touch()
}
