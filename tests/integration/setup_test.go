package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"brokerledger/internal/handlers"
	"brokerledger/internal/logger"
	"brokerledger/internal/middleware"
	"brokerledger/internal/models"
	"brokerledger/internal/services"
	"brokerledger/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integrationdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Investor{},
		&models.Broker{},
		&models.Account{},
		&models.Asset{},
		&models.Transaction{},
		&models.AccountAsset{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	investorService := services.NewInvestorService(db)
	brokerService := services.NewBrokerService(db)
	accountService := services.NewAccountService(db)
	assetService := services.NewAssetService(db)
	transactionService := services.NewTransactionService(db)
	holdingService := services.NewHoldingService(db)

	// Handlers
	investorHandler := handlers.NewInvestorHandler(investorService)
	brokerHandler := handlers.NewBrokerHandler(brokerService)
	accountHandler := handlers.NewAccountHandler(accountService)
	assetHandler := handlers.NewAssetHandler(assetService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	holdingHandler := handlers.NewHoldingHandler(holdingService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	investors := v1.Group("/investors")
	investors.POST("", investorHandler.CreateInvestor)
	investors.GET("", investorHandler.ListInvestors)
	investors.GET("/:id", investorHandler.GetInvestor)
	investors.PUT("/:id", investorHandler.UpdateInvestor)
	investors.DELETE("/:id", investorHandler.DeleteInvestor)
	investors.GET("/:id/brokers", investorHandler.ListBrokers)
	investors.POST("/:id/brokers/:brokerID", investorHandler.LinkBroker)
	investors.DELETE("/:id/brokers/:brokerID", investorHandler.UnlinkBroker)

	brokers := v1.Group("/brokers")
	brokers.POST("", brokerHandler.CreateBroker)
	brokers.GET("", brokerHandler.ListBrokers)
	brokers.GET("/:id", brokerHandler.GetBroker)
	brokers.PUT("/:id", brokerHandler.UpdateBroker)
	brokers.DELETE("/:id", brokerHandler.DeleteBroker)

	accounts := v1.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.ListAccounts)
	accounts.GET("/:id", accountHandler.GetAccount)
	accounts.PUT("/:id", accountHandler.UpdateAccount)
	accounts.DELETE("/:id", accountHandler.DeleteAccount)
	accounts.GET("/:id/transactions", transactionHandler.GetAccountTransactions)
	accounts.GET("/:id/holdings", holdingHandler.ListAccountHoldings)

	assets := v1.Group("/assets")
	assets.POST("", assetHandler.CreateAsset)
	assets.GET("", assetHandler.ListAssets)
	assets.GET("/:id", assetHandler.GetAsset)
	assets.PUT("/:id", assetHandler.UpdateAsset)
	assets.DELETE("/:id", assetHandler.DeleteAsset)

	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	holdings := v1.Group("/holdings")
	holdings.POST("", holdingHandler.CreateHolding)
	holdings.GET("/:id", holdingHandler.GetHolding)
	holdings.PUT("/:id", holdingHandler.UpdateHolding)
	holdings.DELETE("/:id", holdingHandler.DeleteHolding)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// entityCounter provides unique field values across integration tests.
var entityCounter atomic.Int64

// createInvestor creates an investor through the API and returns its ID.
func (app *testApp) createInvestor(t *testing.T) float64 {
	t.Helper()
	n := entityCounter.Add(1)
	seq := fmt.Sprintf("%010d", n)
	phone := fmt.Sprintf("+7 (%s) %s-%s-%s", seq[0:3], seq[3:6], seq[6:8], seq[8:10])
	body := fmt.Sprintf(`{"full_name":"Интеграционный Инвестор %d","birth_date":"1985-03-14T00:00:00Z","phone":%q,"email":"investor%d@integration.ru"}`, n, phone, n)
	rec := app.request("POST", "/api/v1/investors", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create investor failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["investor"].(map[string]interface{})["id"].(float64)
}

// createBroker creates a broker through the API and returns its ID.
func (app *testApp) createBroker(t *testing.T) float64 {
	t.Helper()
	n := entityCounter.Add(1)
	body := fmt.Sprintf(`{"name":"Интеграционный Брокер %d","license_number":"LIC-%06d"}`, n, n)
	rec := app.request("POST", "/api/v1/brokers", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create broker failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["broker"].(map[string]interface{})["id"].(float64)
}

// createAccount creates an account through the API and returns its ID and number.
func (app *testApp) createAccount(t *testing.T, investorID, brokerID float64) (float64, string) {
	t.Helper()
	n := entityCounter.Add(1)
	number := fmt.Sprintf("ACC-%08d", n)
	body := fmt.Sprintf(`{"number":%q,"type":"broker","investor_id":%d,"broker_id":%d}`, number, int(investorID), int(brokerID))
	rec := app.request("POST", "/api/v1/accounts", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create account failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["account"].(map[string]interface{})["id"].(float64), number
}

// createAsset creates an asset through the API and returns its ID.
func (app *testApp) createAsset(t *testing.T, name, ticker string) float64 {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"ticker":%q,"type":"stock","currency":"RUB","unit_price":"100"}`, name, ticker)
	rec := app.request("POST", "/api/v1/assets", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create asset failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["asset"].(map[string]interface{})["id"].(float64)
}
