package models

import (
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "brokerledger/internal/errors"
)

var (
	// emailPattern accepts local@domain.tld with no nested @.
	emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
	// phonePattern accepts Russian numbers like +7 (999) 123-45-67.
	phonePattern = regexp.MustCompile(`^\+7 \(\d{3}\) \d{3}-\d{2}-\d{2}$`)
)

// Investor represents a private person holding brokerage accounts.
type Investor struct {
	Base
	FullName  string    `gorm:"not null;index" json:"full_name"`
	BirthDate time.Time `gorm:"not null" json:"birth_date"`
	Phone     string    `gorm:"not null;uniqueIndex:idx_investors_phone" json:"phone"`
	Email     string    `gorm:"not null;uniqueIndex:idx_investors_email" json:"email"`

	// Relationships
	Accounts []Account `gorm:"foreignKey:InvestorID" json:"accounts,omitempty"`
	Brokers  []Broker  `gorm:"many2many:investor_brokers" json:"brokers,omitempty"`
}

// Validate checks required fields and field formats.
func (i *Investor) Validate() error {
	if strings.TrimSpace(i.FullName) == "" {
		return apperrors.MissingRequiredField("full_name")
	}
	if i.BirthDate.IsZero() {
		return apperrors.MissingRequiredField("birth_date")
	}
	if strings.TrimSpace(i.Phone) == "" {
		return apperrors.MissingRequiredField("phone")
	}
	if strings.TrimSpace(i.Email) == "" {
		return apperrors.MissingRequiredField("email")
	}
	if !emailPattern.MatchString(i.Email) {
		return apperrors.InvalidFormat("email")
	}
	if !phonePattern.MatchString(i.Phone) {
		return apperrors.InvalidFormat("phone")
	}
	if i.BirthDate.After(time.Now()) {
		return apperrors.InvalidValue("birth_date must not be in the future")
	}
	return nil
}

// BeforeSave hook rejects the write when validation fails, keeping the
// whole unit of work atomic.
func (i *Investor) BeforeSave(tx *gorm.DB) error {
	return i.Validate()
}
