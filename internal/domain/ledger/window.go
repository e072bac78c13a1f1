package ledger

import (
	"github.com/contafacil/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Window is an ephemeral reconciliation query parameter: an optional date
// range and an optional account filter. Absent bounds mean "all time";
// both bounds are inclusive. Never persisted.
type Window struct {
	Start      *valueobject.Date
	End        *valueobject.Date
	AccountIDs []uuid.UUID
}

// AllTime is the unbounded, unfiltered window
func AllTime() Window {
	return Window{}
}

// Between builds a window over [start, end] inclusive
func Between(start, end valueobject.Date) Window {
	return Window{Start: &start, End: &end}
}

// ForAccounts restricts the window to the given accounts
func (w Window) ForAccounts(ids ...uuid.UUID) Window {
	w.AccountIDs = ids
	return w
}

// Contains reports whether the date falls inside the window. A movement
// dated exactly on either bound is included.
func (w Window) Contains(d valueobject.Date) bool {
	if w.Start != nil && d.Before(*w.Start) {
		return false
	}
	if w.End != nil && d.After(*w.End) {
		return false
	}
	return true
}

// IsAllTime reports whether neither bound is set
func (w Window) IsAllTime() bool {
	return w.Start == nil && w.End == nil
}

// IncludesAccount reports whether the account passes the optional filter
func (w Window) IncludesAccount(id uuid.UUID) bool {
	if len(w.AccountIDs) == 0 {
		return true
	}
	for _, candidate := range w.AccountIDs {
		if candidate == id {
			return true
		}
	}
	return false
}
