package models

import (
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "brokerledger/internal/errors"
)

// AccountType represents the type of brokerage account.
type AccountType string

const (
	AccountTypeIIS        AccountType = "iis" // tax-advantaged individual investment account
	AccountTypeBroker     AccountType = "broker"
	AccountTypeDepository AccountType = "depository"
)

// Valid reports whether the account type is a known value.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeIIS, AccountTypeBroker, AccountTypeDepository:
		return true
	}
	return false
}

// AccountStatus represents the lifecycle state of an account.
type AccountStatus string

const (
	AccountStatusActive  AccountStatus = "active"
	AccountStatusClosed  AccountStatus = "closed"
	AccountStatusBlocked AccountStatus = "blocked"
)

// Valid reports whether the account status is a known value.
func (s AccountStatus) Valid() bool {
	switch s {
	case AccountStatusActive, AccountStatusClosed, AccountStatusBlocked:
		return true
	}
	return false
}

// Account represents a brokerage account opened by an investor with a broker.
type Account struct {
	Base
	Number   string        `gorm:"not null;uniqueIndex:idx_accounts_number" json:"number"`
	Type     AccountType   `gorm:"column:account_type;not null" json:"type"`
	OpenDate time.Time     `gorm:"not null;index:idx_accounts_investor_open_date,priority:2" json:"open_date"`
	Status   AccountStatus `gorm:"not null;default:'active'" json:"status"`

	InvestorID uint `gorm:"not null;index;index:idx_accounts_investor_open_date,priority:1" json:"investor_id"`
	BrokerID   uint `gorm:"not null;index" json:"broker_id"`

	// Relationships
	Investor     Investor       `gorm:"foreignKey:InvestorID" json:"investor,omitempty"`
	Broker       Broker         `gorm:"foreignKey:BrokerID" json:"broker,omitempty"`
	Transactions []Transaction  `gorm:"foreignKey:AccountID" json:"transactions,omitempty"`
	Holdings     []AccountAsset `gorm:"foreignKey:AccountID" json:"holdings,omitempty"`
}

// Validate checks required fields, enum values, and references.
func (a *Account) Validate() error {
	if strings.TrimSpace(a.Number) == "" {
		return apperrors.MissingRequiredField("number")
	}
	if !a.Type.Valid() {
		return apperrors.InvalidValue("unknown account type " + string(a.Type))
	}
	if !a.Status.Valid() {
		return apperrors.InvalidValue("unknown account status " + string(a.Status))
	}
	if a.InvestorID == 0 {
		return apperrors.MissingReference("investor_id")
	}
	if a.BrokerID == 0 {
		return apperrors.MissingReference("broker_id")
	}
	return nil
}

// BeforeCreate hook fills defaults for open date and status.
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.OpenDate.IsZero() {
		a.OpenDate = time.Now()
	}
	if a.Status == "" {
		a.Status = AccountStatusActive
	}
	return nil
}

// BeforeSave hook rejects the write when validation fails.
func (a *Account) BeforeSave(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = AccountStatusActive
	}
	return a.Validate()
}
