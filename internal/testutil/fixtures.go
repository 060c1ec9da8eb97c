package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"brokerledger/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// UniquePhone returns a phone number in the accepted +7 (XXX) XXX-XX-XX shape,
// unique within the test run.
func UniquePhone() string {
	seq := fmt.Sprintf("%010d", nextID())
	return fmt.Sprintf("+7 (%s) %s-%s-%s", seq[0:3], seq[3:6], seq[6:8], seq[8:10])
}

// CreateTestInvestor creates an investor with unique phone and email.
func CreateTestInvestor(t *testing.T, db *gorm.DB) *models.Investor {
	t.Helper()

	n := nextID()
	investor := &models.Investor{
		FullName:  fmt.Sprintf("Тестовый Инвестор %d", n),
		BirthDate: time.Date(1985, 3, 14, 0, 0, 0, 0, time.UTC),
		Phone:     UniquePhone(),
		Email:     fmt.Sprintf("investor%d@test.ru", n),
	}
	if err := db.Create(investor).Error; err != nil {
		t.Fatalf("failed to create test investor: %v", err)
	}
	return investor
}

// CreateTestBroker creates a broker with a unique license number.
func CreateTestBroker(t *testing.T, db *gorm.DB) *models.Broker {
	t.Helper()

	n := nextID()
	broker := &models.Broker{
		Name:           fmt.Sprintf("Test Broker %d", n),
		LicenseNumber:  fmt.Sprintf("LIC-%06d", n),
		ContactDetails: "info@broker.test",
	}
	if err := db.Create(broker).Error; err != nil {
		t.Fatalf("failed to create test broker: %v", err)
	}
	return broker
}

// CreateTestAccount creates an active brokerage account for the given investor and broker.
func CreateTestAccount(t *testing.T, db *gorm.DB, investorID, brokerID uint) *models.Account {
	t.Helper()

	account := &models.Account{
		Number:     fmt.Sprintf("ACC-%08d", nextID()),
		Type:       models.AccountTypeBroker,
		OpenDate:   time.Now(),
		Status:     models.AccountStatusActive,
		InvestorID: investorID,
		BrokerID:   brokerID,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestAsset creates a stock asset with a unique ticker.
func CreateTestAsset(t *testing.T, db *gorm.DB) *models.Asset {
	t.Helper()
	n := nextID()
	return CreateTestAssetWithName(t, db, fmt.Sprintf("Test Asset %d", n), fmt.Sprintf("TST%d", n))
}

// CreateTestAssetWithName creates a stock asset with the given name and ticker.
func CreateTestAssetWithName(t *testing.T, db *gorm.DB, name, ticker string) *models.Asset {
	t.Helper()

	asset := &models.Asset{
		Name:      name,
		Ticker:    ticker,
		Type:      models.AssetTypeStock,
		Currency:  models.CurrencyRUB,
		UnitPrice: decimal.NewFromInt(100),
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test asset: %v", err)
	}
	return asset
}

// CreateTestTransaction creates a transaction of the given operation type.
// assetID may be nil for money movements.
func CreateTestTransaction(t *testing.T, db *gorm.DB, accountID uint, assetID *uint, op models.OperationType) *models.Transaction {
	t.Helper()

	transaction := &models.Transaction{
		OccurredAt:    time.Now(),
		OperationType: op,
		Quantity:      decimal.NewFromInt(1),
		Amount:        decimal.NewFromInt(1000),
		Currency:      models.CurrencyRUB,
		AccountID:     accountID,
		AssetID:       assetID,
	}
	if err := db.Create(transaction).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return transaction
}

// CreateTestHolding creates a holding row for the given account and asset.
func CreateTestHolding(t *testing.T, db *gorm.DB, accountID, assetID uint, quantity int64) *models.AccountAsset {
	t.Helper()

	holding := &models.AccountAsset{
		AccountID: accountID,
		AssetID:   assetID,
		Quantity:  decimal.NewFromInt(quantity),
	}
	if err := db.Create(holding).Error; err != nil {
		t.Fatalf("failed to create test holding: %v", err)
	}
	return holding
}
