package main

import (
	"fmt"
	"os"

	"mywallet/internal/config"
	"mywallet/internal/database"
	"mywallet/internal/handlers"
	"mywallet/internal/logger"
	"mywallet/internal/services"
	"mywallet/internal/validator"

	"github.com/gin-gonic/gin"
)

// @title           MyWallet API
// @version         1.0
// @description     MyWallet is a household ledger: accounts, categories, installment purchases, a monthly obligations checklist and reports.

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"), os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Open the data file
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	// Upgrade older files in place
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	store := services.NewLedgerStore(db)
	accountService := services.NewAccountService(db, store)
	categoryService := services.NewCategoryService(db, store)

	validator.Register()
	router := handlers.NewRouter(handlers.Services{
		Accounts:     accountService,
		Categories:   categoryService,
		Transactions: services.NewTransactionService(store, accountService, categoryService),
		Checklist:    services.NewChecklistService(db, store),
		Reports:      services.NewReportService(db, store, appConfig.DashboardMonths),
	}, appConfig.CORSOrigin)

	log.Infow("Starting MyWallet server", "port", appConfig.Port, "db_path", dbConfig.Path, "env", appConfig.Env)
	return router.Run(":" + appConfig.Port)
}
