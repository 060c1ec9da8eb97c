package main

import (
	"fmt"
	"net/http"
	"os"

	"brokerledger/internal/config"
	"brokerledger/internal/database"
	"brokerledger/internal/handlers"
	"brokerledger/internal/logger"
	"brokerledger/internal/middleware"
	"brokerledger/internal/services"
	"brokerledger/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Brokerage Ledger API
// @version         1.0
// @description     Record keeping for investors, brokers, accounts, assets, transactions, and holdings.

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Initialize services
	db := dbManager.DB()
	investorService := services.NewInvestorService(db)
	brokerService := services.NewBrokerService(db)
	accountService := services.NewAccountService(db)
	assetService := services.NewAssetService(db)
	transactionService := services.NewTransactionService(db)
	holdingService := services.NewHoldingService(db)

	// Initialize handlers
	investorHandler := handlers.NewInvestorHandler(investorService)
	brokerHandler := handlers.NewBrokerHandler(brokerService)
	accountHandler := handlers.NewAccountHandler(accountService)
	assetHandler := handlers.NewAssetHandler(assetService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	holdingHandler := handlers.NewHoldingHandler(holdingService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
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

	log.Infof("Starting brokerage ledger server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
