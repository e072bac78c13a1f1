package ledger

import (
	"context"

	"github.com/contafacil/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// The repository interfaces realize the record store contract the core
// depends on: equality/range filters over named fields, single-record CRUD
// with per-call atomicity, opaque identifiers. No joins; any correlation
// is done in memory by the callers.

// MovementFilter defines filtering options for movement queries
type MovementFilter struct {
	Kind      *MovementKind
	Status    *MovementStatus
	AccountID *uuid.UUID // matches the owning account or a transfer origin
	From      *valueobject.Date
	To        *valueobject.Date // inclusive, on the settled date
}

// AdjustmentFilter defines filtering options for adjustment queries
type AdjustmentFilter struct {
	AccountID *uuid.UUID
	From      *valueobject.Date
	To        *valueobject.Date // inclusive, on the adjustment date
}

// AccountRepository defines the interface for account persistence
type AccountRepository interface {
	// FindByID finds an account by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// FindAll finds all accounts, optionally restricted to active ones
	FindAll(ctx context.Context, onlyActive bool) ([]Account, error)

	// Save creates or updates an account
	Save(ctx context.Context, account *Account) error

	// Delete removes an account. Implementations must reject the delete
	// while movements still reference the account.
	Delete(ctx context.Context, id uuid.UUID) error
}

// MovementRepository defines the interface for movement persistence
type MovementRepository interface {
	// FindByID finds a movement by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Movement, error)

	// FindAll finds movements matching the filter, ordered by settled date ascending
	FindAll(ctx context.Context, filter MovementFilter) ([]Movement, error)

	// Save creates or updates a movement
	Save(ctx context.Context, movement *Movement) error

	// Delete hard-deletes a movement
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByAccount counts movements referencing the account on either side
	CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
}

// ModalityRepository defines the interface for modality reference data
type ModalityRepository interface {
	// FindByID finds a modality by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Modality, error)

	// FindByName finds a modality by exact name (case-insensitive)
	FindByName(ctx context.Context, name string) (*Modality, error)

	// FindAll returns every registered modality
	FindAll(ctx context.Context) ([]Modality, error)

	// Save creates or updates a modality
	Save(ctx context.Context, modality *Modality) error

	// Delete removes a modality
	Delete(ctx context.Context, id uuid.UUID) error
}

// AdjustmentRepository defines the interface for adjustment persistence.
// Adjustments are append-only: there is no update or delete, their captured
// balances are immutable.
type AdjustmentRepository interface {
	// FindAll finds adjustments matching the filter, ordered by date ascending
	FindAll(ctx context.Context, filter AdjustmentFilter) ([]Adjustment, error)

	// Save inserts a new adjustment
	Save(ctx context.Context, adjustment *Adjustment) error
}
