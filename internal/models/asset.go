package models

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "brokerledger/internal/errors"
)

// AssetType represents the kind of tradable instrument.
type AssetType string

const (
	AssetTypeStock    AssetType = "stock"
	AssetTypeBond     AssetType = "bond"
	AssetTypeCurrency AssetType = "currency"
	AssetTypeFund     AssetType = "fund"
)

// Valid reports whether the asset type is a known value.
func (t AssetType) Valid() bool {
	switch t {
	case AssetTypeStock, AssetTypeBond, AssetTypeCurrency, AssetTypeFund:
		return true
	}
	return false
}

// ValidNominalCurrency reports whether c is accepted as an asset's nominal currency.
func ValidNominalCurrency(c Currency) bool {
	switch c {
	case CurrencyRUB, CurrencyUSD, CurrencyEUR, CurrencyCNY:
		return true
	}
	return false
}

// Asset represents a tradable instrument identified by its ticker.
type Asset struct {
	Base
	Name      string          `gorm:"not null;index" json:"name"`
	Ticker    string          `gorm:"not null;uniqueIndex:idx_assets_ticker" json:"ticker"`
	Type      AssetType       `gorm:"column:asset_type;not null" json:"type"`
	Currency  Currency        `gorm:"not null;default:'RUB'" json:"currency"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,6);not null" json:"unit_price"`
}

// ValidTicker reports whether s is at least three characters long with
// every letter uppercase.
func ValidTicker(s string) bool {
	if utf8.RuneCountInString(s) < 3 {
		return false
	}
	for _, r := range s {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// Validate checks required fields, the ticker format, and enum values.
func (a *Asset) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return apperrors.MissingRequiredField("name")
	}
	if strings.TrimSpace(a.Ticker) == "" {
		return apperrors.MissingRequiredField("ticker")
	}
	if !ValidTicker(a.Ticker) {
		return apperrors.InvalidFormat("ticker")
	}
	if !a.Type.Valid() {
		return apperrors.InvalidValue("unknown asset type " + string(a.Type))
	}
	if !ValidNominalCurrency(a.Currency) {
		return apperrors.InvalidValue("unknown currency " + string(a.Currency))
	}
	return nil
}

// BeforeCreate hook fills the default nominal currency.
func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.Currency == "" {
		a.Currency = CurrencyRUB
	}
	return nil
}

// BeforeSave hook rejects the write when validation fails.
func (a *Asset) BeforeSave(tx *gorm.DB) error {
	if a.Currency == "" {
		a.Currency = CurrencyRUB
	}
	return a.Validate()
}
