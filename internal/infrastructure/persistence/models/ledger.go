package models

import (
	"github.com/contafacil/backend/internal/domain/ledger"
	"github.com/contafacil/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountModel is the persistence model for ledger.Account
type AccountModel struct {
	AggregateModel
	Name           string          `gorm:"size:100;not null;uniqueIndex"`
	Kind           string          `gorm:"size:20;not null"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CurrentBalance decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Active         bool            `gorm:"not null;default:true"`
}

// TableName specifies the table name for AccountModel
func (AccountModel) TableName() string { return "accounts" }

// ToDomain converts AccountModel to domain Account
func (m *AccountModel) ToDomain() *ledger.Account {
	return &ledger.Account{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Kind:              ledger.AccountKind(m.Kind),
		OpeningBalance:    m.OpeningBalance,
		CurrentBalance:    m.CurrentBalance,
		Active:            m.Active,
	}
}

// AccountModelFromDomain converts domain Account to AccountModel
func AccountModelFromDomain(a *ledger.Account) *AccountModel {
	m := &AccountModel{
		Name:           a.Name,
		Kind:           string(a.Kind),
		OpeningBalance: a.OpeningBalance,
		CurrentBalance: a.CurrentBalance,
		Active:         a.Active,
	}
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	return m
}

// MovementModel is the persistence model for ledger.Movement
type MovementModel struct {
	AggregateModel
	Kind        string            `gorm:"size:20;not null;index"`
	AccountID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	OriginID    *uuid.UUID        `gorm:"type:uuid;index"`
	Description string            `gorm:"size:200;not null"`
	GrossAmount decimal.Decimal   `gorm:"type:decimal(15,2);not null"`
	FeePercent  decimal.Decimal   `gorm:"type:decimal(8,4);not null"`
	FeeAmount   decimal.Decimal   `gorm:"type:decimal(15,2);not null"`
	NetAmount   decimal.Decimal   `gorm:"type:decimal(15,2);not null"`
	DueDate     *valueobject.Date `gorm:"type:date"`
	SettledOn   *valueobject.Date `gorm:"type:date;index"`
	Status      string            `gorm:"size:20;not null;index"`
	ModalityID  *uuid.UUID        `gorm:"type:uuid"`
	CategoryID  *uuid.UUID        `gorm:"type:uuid"`
	SupplierID  *uuid.UUID        `gorm:"type:uuid"`
}

// TableName specifies the table name for MovementModel
func (MovementModel) TableName() string { return "movements" }

// ToDomain converts MovementModel to domain Movement
func (m *MovementModel) ToDomain() *ledger.Movement {
	return &ledger.Movement{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Kind:              ledger.MovementKind(m.Kind),
		AccountID:         m.AccountID,
		OriginID:          m.OriginID,
		Description:       m.Description,
		GrossAmount:       m.GrossAmount,
		FeePercent:        m.FeePercent,
		FeeAmount:         m.FeeAmount,
		NetAmount:         m.NetAmount,
		DueDate:           m.DueDate,
		SettledOn:         m.SettledOn,
		Status:            ledger.MovementStatus(m.Status),
		ModalityID:        m.ModalityID,
		CategoryID:        m.CategoryID,
		SupplierID:        m.SupplierID,
	}
}

// MovementModelFromDomain converts domain Movement to MovementModel
func MovementModelFromDomain(mv *ledger.Movement) *MovementModel {
	m := &MovementModel{
		Kind:        string(mv.Kind),
		AccountID:   mv.AccountID,
		OriginID:    mv.OriginID,
		Description: mv.Description,
		GrossAmount: mv.GrossAmount,
		FeePercent:  mv.FeePercent,
		FeeAmount:   mv.FeeAmount,
		NetAmount:   mv.NetAmount,
		DueDate:     mv.DueDate,
		SettledOn:   mv.SettledOn,
		Status:      string(mv.Status),
		ModalityID:  mv.ModalityID,
		CategoryID:  mv.CategoryID,
		SupplierID:  mv.SupplierID,
	}
	m.FromDomainAggregateRoot(mv.BaseAggregateRoot)
	return m
}

// ModalityModel is the persistence model for ledger.Modality
type ModalityModel struct {
	BaseModel
	Name             string          `gorm:"size:100;not null;uniqueIndex"`
	Rule             string          `gorm:"size:40;not null"`
	FeePercent       decimal.Decimal `gorm:"type:decimal(8,4);not null"`
	DefaultAccountID *uuid.UUID      `gorm:"type:uuid"`
}

// TableName specifies the table name for ModalityModel
func (ModalityModel) TableName() string { return "modalities" }

// ToDomain converts ModalityModel to domain Modality
func (m *ModalityModel) ToDomain() *ledger.Modality {
	return &ledger.Modality{
		BaseEntity:       m.BaseModel.ToDomain(),
		Name:             m.Name,
		Rule:             ledger.SettlementRule(m.Rule),
		FeePercent:       m.FeePercent,
		DefaultAccountID: m.DefaultAccountID,
	}
}

// ModalityModelFromDomain converts domain Modality to ModalityModel
func ModalityModelFromDomain(mo *ledger.Modality) *ModalityModel {
	m := &ModalityModel{
		Name:             mo.Name,
		Rule:             string(mo.Rule),
		FeePercent:       mo.FeePercent,
		DefaultAccountID: mo.DefaultAccountID,
	}
	m.FromDomainBaseEntity(mo.BaseEntity)
	return m
}

// AdjustmentModel is the persistence model for ledger.Adjustment.
// Rows are append-only.
type AdjustmentModel struct {
	BaseModel
	AccountID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	PriorBalance decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	NewBalance   decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	Delta        decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	Reason       string           `gorm:"size:200;not null"`
	AdjustedOn   valueobject.Date `gorm:"type:date;not null;index"`
}

// TableName specifies the table name for AdjustmentModel
func (AdjustmentModel) TableName() string { return "adjustments" }

// ToDomain converts AdjustmentModel to domain Adjustment
func (m *AdjustmentModel) ToDomain() *ledger.Adjustment {
	return &ledger.Adjustment{
		BaseEntity:   m.BaseModel.ToDomain(),
		AccountID:    m.AccountID,
		PriorBalance: m.PriorBalance,
		NewBalance:   m.NewBalance,
		Delta:        m.Delta,
		Reason:       m.Reason,
		AdjustedOn:   m.AdjustedOn,
	}
}

// AdjustmentModelFromDomain converts domain Adjustment to AdjustmentModel
func AdjustmentModelFromDomain(a *ledger.Adjustment) *AdjustmentModel {
	m := &AdjustmentModel{
		AccountID:    a.AccountID,
		PriorBalance: a.PriorBalance,
		NewBalance:   a.NewBalance,
		Delta:        a.Delta,
		Reason:       a.Reason,
		AdjustedOn:   a.AdjustedOn,
	}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}
