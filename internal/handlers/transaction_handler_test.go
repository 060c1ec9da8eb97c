package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "brokerledger/internal/errors"
	"brokerledger/internal/models"
	"brokerledger/internal/pagination"
	"brokerledger/internal/services"
	"brokerledger/internal/validator"
)

// --- mock transaction service ---

type mockTransactionService struct {
	createTransactionFn  func(in services.TransactionInput) (*models.Transaction, error)
	getTransactionByIDFn func(id uint) (*models.Transaction, error)
	listTransactionsFn   func(filter services.TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	updateTransactionFn  func(id uint, upd services.TransactionUpdate) (*models.Transaction, error)
	deleteTransactionFn  func(id uint) error
}

func (m *mockTransactionService) CreateTransaction(in services.TransactionInput) (*models.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(in)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) GetTransactionByID(id uint) (*models.Transaction, error) {
	if m.getTransactionByIDFn != nil {
		return m.getTransactionByIDFn(id)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) ListTransactions(filter services.TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	if m.listTransactionsFn != nil {
		return m.listTransactionsFn(filter, page)
	}
	resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockTransactionService) UpdateTransaction(id uint, upd services.TransactionUpdate) (*models.Transaction, error) {
	if m.updateTransactionFn != nil {
		return m.updateTransactionFn(id, upd)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) DeleteTransaction(id uint) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(id)
	}
	return nil
}

// verify interface compliance
var _ services.TransactionServicer = (*mockTransactionService)(nil)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validator.Register()
	r := gin.New()
	r.POST("/transactions", handler.CreateTransaction)
	r.GET("/transactions", handler.ListTransactions)
	r.GET("/transactions/:id", handler.GetTransaction)
	r.PUT("/transactions/:id", handler.UpdateTransaction)
	r.DELETE("/transactions/:id", handler.DeleteTransaction)
	r.GET("/accounts/:id/transactions", handler.GetAccountTransactions)
	return r
}

// --- tests ---

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockTransactionService{
			createTransactionFn: func(in services.TransactionInput) (*models.Transaction, error) {
				return &models.Transaction{
					Base:          models.Base{ID: 1},
					OperationType: in.OperationType,
					Amount:        in.Amount,
					AccountID:     in.AccountID,
					DisplayName:   "Зачисление (ACC-001)",
				}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "POST", "/transactions",
			`{"account_id":1,"operation_type":"deposit","amount":"50000"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		tx := result["transaction"].(map[string]interface{})
		if tx["display_name"] != "Зачисление (ACC-001)" {
			t.Errorf("expected display name in response, got %v", tx["display_name"])
		}
	})

	t.Run("returns 400 on unknown operation type", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "POST", "/transactions",
			`{"account_id":1,"operation_type":"transfer","amount":"100"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on unsupported currency", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "POST", "/transactions",
			`{"account_id":1,"operation_type":"deposit","amount":"100","currency":"CNY"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on missing amount", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "POST", "/transactions",
			`{"account_id":1,"operation_type":"deposit"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 when buy lacks asset", func(t *testing.T) {
		svc := &mockTransactionService{
			createTransactionFn: func(services.TransactionInput) (*models.Transaction, error) {
				return nil, apperrors.MissingReference("asset_id")
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "POST", "/transactions",
			`{"account_id":1,"operation_type":"buy","amount":"100"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "MISSING_REFERENCE")
	})

	t.Run("returns 400 on dangling account reference", func(t *testing.T) {
		svc := &mockTransactionService{
			createTransactionFn: func(services.TransactionInput) (*models.Transaction, error) {
				return nil, apperrors.MissingReference("account_id")
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "POST", "/transactions",
			`{"account_id":999,"operation_type":"deposit","amount":"100"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "MISSING_REFERENCE")
	})

	t.Run("passes quantity through as decimal", func(t *testing.T) {
		var gotQuantity *decimal.Decimal
		svc := &mockTransactionService{
			createTransactionFn: func(in services.TransactionInput) (*models.Transaction, error) {
				gotQuantity = in.Quantity
				return &models.Transaction{}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "POST", "/transactions",
			`{"account_id":1,"asset_id":2,"operation_type":"buy","quantity":"10.5","amount":"1000"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotQuantity == nil || !gotQuantity.Equal(decimal.NewFromFloat(10.5)) {
			t.Errorf("expected quantity 10.5 passed through, got %v", gotQuantity)
		}
	})
}

func TestTransactionHandler_ListTransactions(t *testing.T) {
	t.Run("parses filters", func(t *testing.T) {
		var gotFilter services.TransactionFilter
		svc := &mockTransactionService{
			listTransactionsFn: func(filter services.TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
				gotFilter = filter
				resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
				return &resp, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "GET", "/transactions?account_id=3&operation_type=buy&from=2024-01-01&min_amount=100", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotFilter.AccountID == nil || *gotFilter.AccountID != 3 {
			t.Error("expected account filter to be parsed")
		}
		if gotFilter.OperationType == nil || *gotFilter.OperationType != models.OperationBuy {
			t.Error("expected operation type filter to be parsed")
		}
		if gotFilter.From == nil {
			t.Error("expected from filter to be parsed")
		}
		if gotFilter.MinAmount == nil || !gotFilter.MinAmount.Equal(decimal.NewFromInt(100)) {
			t.Error("expected min amount filter to be parsed")
		}
	})

	t.Run("returns 400 on bad operation type filter", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "GET", "/transactions?operation_type=swap", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on bad date filter", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "GET", "/transactions?from=yesterday", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_GetAccountTransactions(t *testing.T) {
	t.Run("scopes filter to path account", func(t *testing.T) {
		var gotFilter services.TransactionFilter
		svc := &mockTransactionService{
			listTransactionsFn: func(filter services.TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
				gotFilter = filter
				resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
				return &resp, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "GET", "/accounts/7/transactions", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotFilter.AccountID == nil || *gotFilter.AccountID != 7 {
			t.Error("expected account filter from path")
		}
	})
}

func TestTransactionHandler_UpdateTransaction(t *testing.T) {
	t.Run("passes clear_asset through", func(t *testing.T) {
		var gotUpd services.TransactionUpdate
		svc := &mockTransactionService{
			updateTransactionFn: func(id uint, upd services.TransactionUpdate) (*models.Transaction, error) {
				gotUpd = upd
				return &models.Transaction{}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "PUT", "/transactions/1", `{"operation_type":"commission","clear_asset":true}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !gotUpd.ClearAsset {
			t.Error("expected clear_asset to be passed through")
		}
		if gotUpd.OperationType == nil || *gotUpd.OperationType != models.OperationCommission {
			t.Error("expected operation type update to be passed through")
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockTransactionService{
			updateTransactionFn: func(uint, services.TransactionUpdate) (*models.Transaction, error) {
				return nil, apperrors.ErrTransactionNotFound
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "PUT", "/transactions/999", `{"description":"x"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("returns 204", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "DELETE", "/transactions/1", "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	})
}
