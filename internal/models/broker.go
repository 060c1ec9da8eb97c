package models

import (
	"strings"

	"gorm.io/gorm"

	apperrors "brokerledger/internal/errors"
)

// Broker represents a licensed brokerage firm.
type Broker struct {
	Base
	Name           string `gorm:"not null;index" json:"name"`
	LicenseNumber  string `gorm:"not null;uniqueIndex:idx_brokers_license_number" json:"license_number"`
	ContactDetails string `gorm:"type:text" json:"contact_details"`

	// Relationships
	Accounts  []Account  `gorm:"foreignKey:BrokerID" json:"accounts,omitempty"`
	Investors []Investor `gorm:"many2many:investor_brokers" json:"investors,omitempty"`
}

// Validate checks required fields.
func (b *Broker) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return apperrors.MissingRequiredField("name")
	}
	if strings.TrimSpace(b.LicenseNumber) == "" {
		return apperrors.MissingRequiredField("license_number")
	}
	return nil
}

// BeforeSave hook rejects the write when validation fails.
func (b *Broker) BeforeSave(tx *gorm.DB) error {
	return b.Validate()
}
