package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"brokerledger/internal/models"
	"brokerledger/internal/pagination"
	"brokerledger/internal/testutil"
)

func TestCreateAsset(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		asset, err := svc.CreateAsset("Газпром", "GAZP", models.AssetTypeStock, models.CurrencyRUB, decimal.NewFromFloat(163.5))
		testutil.AssertNoError(t, err)

		if asset.ID == 0 {
			t.Fatal("expected non-zero asset ID")
		}
		if asset.Ticker != "GAZP" {
			t.Errorf("expected ticker GAZP, got %s", asset.Ticker)
		}
	})

	t.Run("default_currency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		asset, err := svc.CreateAsset("Сбербанк", "SBER", models.AssetTypeStock, "", decimal.NewFromInt(300))
		testutil.AssertNoError(t, err)

		if asset.Currency != models.CurrencyRUB {
			t.Errorf("expected default currency RUB, got %s", asset.Currency)
		}
	})

	t.Run("cny_nominal_currency_accepted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		_, err := svc.CreateAsset("Юань", "CNYRUB", models.AssetTypeCurrency, models.CurrencyCNY, decimal.NewFromFloat(12.2))
		testutil.AssertNoError(t, err)
	})

	t.Run("short_ticker_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		_, err := svc.CreateAsset("Short", "AB", models.AssetTypeStock, models.CurrencyRUB, decimal.NewFromInt(1))
		testutil.AssertAppError(t, err, "INVALID_FORMAT")
	})

	t.Run("lowercase_ticker_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		_, err := svc.CreateAsset("Lower", "abc", models.AssetTypeStock, models.CurrencyRUB, decimal.NewFromInt(1))
		testutil.AssertAppError(t, err, "INVALID_FORMAT")
	})

	t.Run("ticker_with_digits_accepted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		_, err := svc.CreateAsset("ОФЗ 26238", "SU26238", models.AssetTypeBond, models.CurrencyRUB, decimal.NewFromInt(1000))
		testutil.AssertNoError(t, err)
	})

	t.Run("missing_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		_, err := svc.CreateAsset("", "GAZP", models.AssetTypeStock, models.CurrencyRUB, decimal.NewFromInt(1))
		testutil.AssertAppError(t, err, "MISSING_REQUIRED_FIELD")
	})

	t.Run("unknown_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		_, err := svc.CreateAsset("Опцион", "OPTN", "option", models.CurrencyRUB, decimal.NewFromInt(1))
		testutil.AssertAppError(t, err, "INVALID_VALUE")
	})

	t.Run("duplicate_ticker", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		existing := testutil.CreateTestAsset(t, db)

		_, err := svc.CreateAsset("Клон", existing.Ticker, models.AssetTypeStock, models.CurrencyRUB, decimal.NewFromInt(1))
		testutil.AssertAppError(t, err, "DUPLICATE_VALUE")
	})
}

func TestGetAssetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		created := testutil.CreateTestAsset(t, db)

		asset, err := svc.GetAssetByID(created.ID)
		testutil.AssertNoError(t, err)
		if asset.Ticker != created.Ticker {
			t.Errorf("expected ticker %s, got %s", created.Ticker, asset.Ticker)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		_, err := svc.GetAssetByID(99999)
		testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
	})
}

func TestListAssets(t *testing.T) {
	t.Run("ordered_by_ticker", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		_, err := svc.CreateAsset("Яндекс", "YDEX", models.AssetTypeStock, models.CurrencyRUB, decimal.NewFromInt(4000))
		testutil.AssertNoError(t, err)
		_, err = svc.CreateAsset("Газпром", "GAZP", models.AssetTypeStock, models.CurrencyRUB, decimal.NewFromInt(160))
		testutil.AssertNoError(t, err)

		result, err := svc.ListAssets("", pagination.PageRequest{Page: 1, PageSize: 20})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 2 {
			t.Fatalf("expected 2 assets, got %d", result.TotalItems)
		}
		if result.Data[0].Ticker != "GAZP" {
			t.Errorf("expected GAZP first, got %s", result.Data[0].Ticker)
		}
	})

	t.Run("search_by_name_or_ticker", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		_, err := svc.CreateAsset("Лукойл", "LKOH", models.AssetTypeStock, models.CurrencyRUB, decimal.NewFromInt(7000))
		testutil.AssertNoError(t, err)
		testutil.CreateTestAsset(t, db)

		result, err := svc.ListAssets("LKOH", pagination.PageRequest{Page: 1, PageSize: 20})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 match by ticker, got %d", result.TotalItems)
		}

		result, err = svc.ListAssets("Лукойл", pagination.PageRequest{Page: 1, PageSize: 20})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 match by name, got %d", result.TotalItems)
		}
	})
}

func TestUpdateAsset(t *testing.T) {
	t.Run("change_price", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		created := testutil.CreateTestAsset(t, db)

		price := decimal.NewFromFloat(250.75)
		asset, err := svc.UpdateAsset(created.ID, AssetUpdate{UnitPrice: &price})
		testutil.AssertNoError(t, err)

		if !asset.UnitPrice.Equal(price) {
			t.Errorf("expected unit price %s, got %s", price, asset.UnitPrice)
		}
	})

	t.Run("invalid_ticker_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		created := testutil.CreateTestAsset(t, db)

		bad := "ab"
		_, err := svc.UpdateAsset(created.ID, AssetUpdate{Ticker: &bad})
		testutil.AssertAppError(t, err, "INVALID_FORMAT")
	})
}

func TestDeleteAsset(t *testing.T) {
	t.Run("cascades_holdings_and_clears_transaction_refs", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		investor := testutil.CreateTestInvestor(t, db)
		broker := testutil.CreateTestBroker(t, db)
		account := testutil.CreateTestAccount(t, db, investor.ID, broker.ID)
		asset := testutil.CreateTestAsset(t, db)

		testutil.CreateTestHolding(t, db, account.ID, asset.ID, 5)
		tx := testutil.CreateTestTransaction(t, db, account.ID, &asset.ID, models.OperationBuy)

		testutil.AssertNoError(t, svc.DeleteAsset(asset.ID))

		var holdingCount int64
		db.Model(&models.AccountAsset{}).Where("asset_id = ?", asset.ID).Count(&holdingCount)
		if holdingCount != 0 {
			t.Errorf("expected holdings removed with asset, got %d", holdingCount)
		}

		var stored models.Transaction
		db.First(&stored, tx.ID)
		if stored.AssetID != nil {
			t.Errorf("expected transaction asset reference cleared, got %d", *stored.AssetID)
		}
	})

	t.Run("unreferenced_asset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		asset := testutil.CreateTestAsset(t, db)

		testutil.AssertNoError(t, svc.DeleteAsset(asset.ID))

		_, err := svc.GetAssetByID(asset.ID)
		testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		err := svc.DeleteAsset(99999)
		testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
	})
}
