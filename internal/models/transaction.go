package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "brokerledger/internal/errors"
)

// OperationType represents the kind of ledger operation.
type OperationType string

const (
	OperationBuy        OperationType = "buy"
	OperationSell       OperationType = "sell"
	OperationDeposit    OperationType = "deposit"
	OperationWithdrawal OperationType = "withdrawal"
	OperationCommission OperationType = "commission"
)

// Valid reports whether the operation type is a known value.
func (o OperationType) Valid() bool {
	switch o {
	case OperationBuy, OperationSell, OperationDeposit, OperationWithdrawal, OperationCommission:
		return true
	}
	return false
}

// Label returns the human-readable name of the operation.
func (o OperationType) Label() string {
	switch o {
	case OperationBuy:
		return "Покупка"
	case OperationSell:
		return "Продажа"
	case OperationDeposit:
		return "Зачисление"
	case OperationWithdrawal:
		return "Списание"
	case OperationCommission:
		return "Комиссия"
	}
	return ""
}

// RequiresAsset reports whether the operation must reference an asset.
func (o OperationType) RequiresAsset() bool {
	return o == OperationBuy || o == OperationSell
}

// ValidSettlementCurrency reports whether c is accepted as a transaction currency.
func ValidSettlementCurrency(c Currency) bool {
	switch c {
	case CurrencyRUB, CurrencyUSD, CurrencyEUR:
		return true
	}
	return false
}

// Transaction represents a single ledger operation on an account.
type Transaction struct {
	Base
	OccurredAt    time.Time       `gorm:"not null;index" json:"occurred_at"`
	OperationType OperationType   `gorm:"not null;index" json:"operation_type"`
	Quantity      decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"quantity"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Currency      Currency        `gorm:"not null;default:'RUB'" json:"currency"`
	Description   string          `gorm:"type:text" json:"description"`
	DisplayName   string          `json:"display_name"`

	AccountID uint  `gorm:"not null;index" json:"account_id"`
	AssetID   *uint `gorm:"index" json:"asset_id,omitempty"`

	// Relationships
	Account Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Asset   *Asset  `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
}

// ComputeDisplayName derives the persisted transaction label from the
// operation and the referenced records: operation label, then the asset
// name, then the account number in parentheses, space-joined with empty
// parts skipped.
func ComputeDisplayName(op OperationType, asset *Asset, account *Account) string {
	parts := make([]string, 0, 3)
	if label := op.Label(); label != "" {
		parts = append(parts, label)
	}
	if asset != nil && asset.Name != "" {
		parts = append(parts, asset.Name)
	}
	if account != nil && account.Number != "" {
		parts = append(parts, "("+account.Number+")")
	}
	return strings.Join(parts, " ")
}

// Validate checks enum values, positivity rules, and the asset
// requirement for buy/sell operations. Quantity and amount must be
// positive for every operation type.
func (t *Transaction) Validate() error {
	if !t.OperationType.Valid() {
		return apperrors.InvalidValue("unknown operation type " + string(t.OperationType))
	}
	if t.AccountID == 0 {
		return apperrors.MissingReference("account_id")
	}
	if !t.Quantity.IsPositive() {
		return apperrors.InvalidValue("quantity must be positive")
	}
	if !t.Amount.IsPositive() {
		return apperrors.InvalidValue("amount must be positive")
	}
	if t.OperationType.RequiresAsset() && t.AssetID == nil {
		return apperrors.MissingReference("asset_id")
	}
	if !ValidSettlementCurrency(t.Currency) {
		return apperrors.InvalidValue("unknown currency " + string(t.Currency))
	}
	return nil
}

// BeforeSave hook fills defaults and rejects the write when validation fails.
func (t *Transaction) BeforeSave(tx *gorm.DB) error {
	if t.OccurredAt.IsZero() {
		t.OccurredAt = time.Now()
	}
	if t.Currency == "" {
		t.Currency = CurrencyRUB
	}
	return t.Validate()
}
