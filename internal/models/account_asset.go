package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "brokerledger/internal/errors"
)

// AccountAsset represents the holding of one asset within one account.
// The (account, asset) pair is unique; deleting the owning account or
// asset deletes the holding.
type AccountAsset struct {
	Base
	AccountID uint            `gorm:"not null;index;uniqueIndex:idx_account_assets_pair" json:"account_id"`
	AssetID   uint            `gorm:"not null;index;uniqueIndex:idx_account_assets_pair" json:"asset_id"`
	Quantity  decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"quantity"`

	// Relationships
	Account Account `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"account,omitempty"`
	Asset   Asset   `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE" json:"asset,omitempty"`
}

// Validate checks references and the non-negative quantity rule.
func (h *AccountAsset) Validate() error {
	if h.AccountID == 0 {
		return apperrors.MissingReference("account_id")
	}
	if h.AssetID == 0 {
		return apperrors.MissingReference("asset_id")
	}
	if h.Quantity.IsNegative() {
		return apperrors.InvalidValue("quantity must not be negative")
	}
	return nil
}

// BeforeSave hook rejects the write when validation fails.
func (h *AccountAsset) BeforeSave(tx *gorm.DB) error {
	return h.Validate()
}
