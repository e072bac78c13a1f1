package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/contafacil/backend/internal/domain/shared"
	"github.com/contafacil/backend/internal/domain/shared/valueobject"
)

// SettlementRule identifies how a receivable's settlement (receipt) date is
// derived from its base date. The set is closed: rules are pure functions of
// the base date with no holiday calendar beyond weekends.
type SettlementRule string

const (
	// SettlementSameDay settles on the base date itself (cash, debit card, instant transfer)
	SettlementSameDay SettlementRule = "same-day"
	// SettlementNextBusinessDay settles one calendar day later, skipping weekends
	SettlementNextBusinessDay SettlementRule = "next-business-day"
	// SettlementNextWednesdayAfterWeek settles on the Wednesday following the
	// first Sunday on/after the base date (delivery-platform payout cycle)
	SettlementNextWednesdayAfterWeek SettlementRule = "next-wednesday-after-week"
)

// IsValid checks if the rule is a member of the closed set
func (r SettlementRule) IsValid() bool {
	switch r {
	case SettlementSameDay, SettlementNextBusinessDay, SettlementNextWednesdayAfterWeek:
		return true
	}
	return false
}

// String returns the string representation of the rule
func (r SettlementRule) String() string {
	return string(r)
}

// ComputeSettlementDate maps a base date to the date the cash actually
// arrives, according to the modality's settlement rule. The result is frozen
// onto the movement at creation time; later rule changes never retroactively
// alter existing movements.
func ComputeSettlementDate(base valueobject.Date, rule SettlementRule) (valueobject.Date, error) {
	if base.IsZero() {
		return valueobject.Date{}, shared.ErrInvalidDate
	}

	switch rule {
	case SettlementSameDay:
		return base, nil

	case SettlementNextBusinessDay:
		d := base.AddDays(1)
		for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			d = d.AddDays(1)
		}
		return d, nil

	case SettlementNextWednesdayAfterWeek:
		// Land on the next Sunday on/after the base date (a Sunday base adds
		// nothing), then advance three days to the following Wednesday.
		untilSunday := (7 - int(base.Weekday())) % 7
		return base.AddDays(untilSunday + 3), nil

	default:
		return valueobject.Date{}, shared.NewDomainError("UNKNOWN_SETTLEMENT_RULE",
			fmt.Sprintf("Settlement rule %q is not recognized", rule))
	}
}

// ComputeDueDate applies a generic D+N due-date rule: plain calendar-day
// addition with no weekend skipping. Tags look like "D+0", "D+1", "D+30".
// A malformed tag fails fast; a bad due date corrupts downstream
// reconciliation and must never be silently passed through.
func ComputeDueDate(base valueobject.Date, tag string) (valueobject.Date, error) {
	if base.IsZero() {
		return valueobject.Date{}, shared.ErrInvalidDate
	}

	rest, ok := strings.CutPrefix(tag, "D+")
	if !ok {
		return valueobject.Date{}, shared.NewDomainError("INVALID_DUE_RULE",
			fmt.Sprintf("Due-date rule %q does not match the D+N form", tag))
	}
	days, err := strconv.Atoi(rest)
	if err != nil || days < 0 {
		return valueobject.Date{}, shared.NewDomainError("INVALID_DUE_RULE",
			fmt.Sprintf("Due-date rule %q has an invalid day offset", tag))
	}
	return base.AddDays(days), nil
}
