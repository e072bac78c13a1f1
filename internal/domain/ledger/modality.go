package ledger

import (
	"strings"

	"github.com/contafacil/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Modality is a named payment channel (credit card, cash, instant transfer,
// delivery-platform voucher) carrying the settlement rule and fee percentage
// applied to receivables paid through it. Reference data: edited
// independently of movements, and a rule edit never reapplies to movements
// already created (the computed settlement date is frozen on the row).
type Modality struct {
	shared.BaseEntity
	Name             string
	Rule             SettlementRule
	FeePercent       decimal.Decimal
	DefaultAccountID *uuid.UUID // per-modality bank routing default
}

// NewModality creates a new payment modality
func NewModality(name string, rule SettlementRule, feePercent decimal.Decimal, defaultAccountID *uuid.UUID) (*Modality, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_MODALITY_NAME", "Modality name cannot be empty")
	}
	if !rule.IsValid() {
		return nil, shared.NewDomainError("UNKNOWN_SETTLEMENT_RULE", "Modality settlement rule is not recognized")
	}
	if feePercent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_FEE_PERCENT", "Modality fee percentage cannot be negative")
	}

	return &Modality{
		BaseEntity:       shared.NewBaseEntity(),
		Name:             name,
		Rule:             rule,
		FeePercent:       feePercent,
		DefaultAccountID: defaultAccountID,
	}, nil
}

// ModalityDirectory resolves movement descriptions to modalities. Kept as an
// explicit lookup structure so the settlement rule engine itself stays free
// of account-routing knowledge.
type ModalityDirectory struct {
	modalities []Modality
}

// NewModalityDirectory builds a directory over the given reference data
func NewModalityDirectory(modalities []Modality) *ModalityDirectory {
	return &ModalityDirectory{modalities: modalities}
}

// Resolve finds a modality by exact name, case-insensitively
func (d *ModalityDirectory) Resolve(name string) (*Modality, error) {
	for i := range d.modalities {
		if strings.EqualFold(d.modalities[i].Name, name) {
			return &d.modalities[i], nil
		}
	}
	return nil, shared.ErrUnknownModality
}

// Match finds the modality whose name appears in the free-text description.
// When several names match, the longest wins so that "card credit" is not
// shadowed by "card". Receivables reference exactly one modality this way
// at creation time.
func (d *ModalityDirectory) Match(description string) (*Modality, error) {
	lowered := strings.ToLower(description)
	var best *Modality
	bestLen := 0
	for i := range d.modalities {
		name := strings.ToLower(d.modalities[i].Name)
		if name != "" && strings.Contains(lowered, name) && len(name) > bestLen {
			best = &d.modalities[i]
			bestLen = len(name)
		}
	}
	if best == nil {
		return nil, shared.ErrUnknownModality
	}
	return best, nil
}
