package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "mywallet/internal/docs" // Register swagger docs
	"mywallet/internal/middleware"
	"mywallet/internal/services"
)

// Services bundles the business services the HTTP layer calls.
type Services struct {
	Accounts     services.AccountServicer
	Categories   services.CategoryServicer
	Transactions services.TransactionServicer
	Checklist    services.ChecklistServicer
	Reports      services.ReportServicer
}

// NewRouter builds the gin engine with the middleware chain and every route
// under /api/v1.
func NewRouter(svc Services, corsOrigin string) *gin.Engine {
	accountHandler := NewAccountHandler(svc.Accounts)
	categoryHandler := NewCategoryHandler(svc.Categories)
	transactionHandler := NewTransactionHandler(svc.Transactions)
	checklistHandler := NewChecklistHandler(svc.Checklist)
	reportHandler := NewReportHandler(svc.Reports)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(corsOrigin))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
	})

	v1 := router.Group("/api/v1")

	accounts := v1.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetAccounts)
	accounts.GET("/:id", accountHandler.GetAccountByID)
	accounts.PUT("/:id", accountHandler.UpdateAccount)
	accounts.DELETE("/:id", accountHandler.DeleteAccount)

	categories := v1.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)
	transactions.DELETE("/groups/:groupId", transactionHandler.DeleteInstallmentGroup)

	checklist := v1.Group("/checklist")
	checklist.GET("/status", checklistHandler.GetStatus)
	checklist.GET("/config", checklistHandler.GetConfig)
	checklist.POST("/toggle", checklistHandler.Toggle)
	checklist.POST("", checklistHandler.AddEntry)
	checklist.DELETE("", checklistHandler.RemoveEntry)

	v1.GET("/reports", reportHandler.GetReport)
	v1.GET("/dashboard", reportHandler.GetDashboard)

	return router
}
