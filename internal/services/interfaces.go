package services

import (
	"time"

	"github.com/shopspring/decimal"

	"brokerledger/internal/models"
	"brokerledger/internal/pagination"
)

// InvestorUpdate holds optional field updates for an investor.
type InvestorUpdate struct {
	FullName  *string
	BirthDate *time.Time
	Phone     *string
	Email     *string
}

// InvestorServicer defines the contract for investor-related business logic.
type InvestorServicer interface {
	CreateInvestor(fullName string, birthDate time.Time, phone, email string) (*models.Investor, error)
	GetInvestorByID(id uint) (*models.Investor, error)
	ListInvestors(search string, page pagination.PageRequest) (*pagination.PageResponse[models.Investor], error)
	UpdateInvestor(id uint, upd InvestorUpdate) (*models.Investor, error)
	DeleteInvestor(id uint) error
	LinkBroker(investorID, brokerID uint) error
	UnlinkBroker(investorID, brokerID uint) error
	GetInvestorBrokers(investorID uint) ([]models.Broker, error)
}

// BrokerUpdate holds optional field updates for a broker.
type BrokerUpdate struct {
	Name           *string
	LicenseNumber  *string
	ContactDetails *string
}

// BrokerServicer defines the contract for broker-related business logic.
type BrokerServicer interface {
	CreateBroker(name, licenseNumber, contactDetails string) (*models.Broker, error)
	GetBrokerByID(id uint) (*models.Broker, error)
	ListBrokers(search string, page pagination.PageRequest) (*pagination.PageResponse[models.Broker], error)
	UpdateBroker(id uint, upd BrokerUpdate) (*models.Broker, error)
	DeleteBroker(id uint) error
}

// AccountFilter holds optional filter parameters for listing accounts.
type AccountFilter struct {
	InvestorID *uint
	BrokerID   *uint
	Status     *models.AccountStatus
	OpenedFrom *time.Time
	OpenedTo   *time.Time
}

// AccountUpdate holds optional field updates for an account.
type AccountUpdate struct {
	Number *string
	Type   *models.AccountType
	Status *models.AccountStatus
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(number string, accountType models.AccountType, openDate time.Time, investorID, brokerID uint) (*models.Account, error)
	GetAccountByID(id uint) (*models.Account, error)
	ListAccounts(filter AccountFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error)
	UpdateAccount(id uint, upd AccountUpdate) (*models.Account, error)
	DeleteAccount(id uint) error
}

// AssetUpdate holds optional field updates for an asset.
type AssetUpdate struct {
	Name      *string
	Ticker    *string
	Type      *models.AssetType
	Currency  *models.Currency
	UnitPrice *decimal.Decimal
}

// AssetServicer defines the contract for asset-related business logic.
type AssetServicer interface {
	CreateAsset(name, ticker string, assetType models.AssetType, currency models.Currency, unitPrice decimal.Decimal) (*models.Asset, error)
	GetAssetByID(id uint) (*models.Asset, error)
	ListAssets(search string, page pagination.PageRequest) (*pagination.PageResponse[models.Asset], error)
	UpdateAsset(id uint, upd AssetUpdate) (*models.Asset, error)
	DeleteAsset(id uint) error
}

// TransactionInput holds the fields for creating a transaction. Quantity
// defaults to 1, currency to RUB, and occurred-at to now when unset.
type TransactionInput struct {
	AccountID     uint
	AssetID       *uint
	OperationType models.OperationType
	Quantity      *decimal.Decimal
	Amount        decimal.Decimal
	Currency      models.Currency
	OccurredAt    time.Time
	Description   string
}

// TransactionUpdate holds optional field updates for a transaction.
// ClearAsset removes the asset reference; it is ignored when AssetID is set.
type TransactionUpdate struct {
	OperationType *models.OperationType
	AssetID       *uint
	ClearAsset    bool
	Quantity      *decimal.Decimal
	Amount        *decimal.Decimal
	Currency      *models.Currency
	OccurredAt    *time.Time
	Description   *string
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	AccountID     *uint
	AssetID       *uint
	OperationType *models.OperationType
	From          *time.Time
	To            *time.Time
	MinAmount     *decimal.Decimal
	MaxAmount     *decimal.Decimal
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(in TransactionInput) (*models.Transaction, error)
	GetTransactionByID(id uint) (*models.Transaction, error)
	ListTransactions(filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	UpdateTransaction(id uint, upd TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(id uint) error
}

// HoldingServicer defines the contract for account-asset holding logic.
type HoldingServicer interface {
	CreateHolding(accountID, assetID uint, quantity decimal.Decimal) (*models.AccountAsset, error)
	GetHoldingByID(id uint) (*models.AccountAsset, error)
	ListAccountHoldings(accountID uint, page pagination.PageRequest) (*pagination.PageResponse[models.AccountAsset], error)
	UpdateHoldingQuantity(id uint, quantity decimal.Decimal) (*models.AccountAsset, error)
	DeleteHolding(id uint) error
}
