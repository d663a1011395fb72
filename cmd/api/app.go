package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/farmacia-pos/internal/adapter/api/controller"
	"github.com/hugohenrick/farmacia-pos/internal/adapter/api/route"
	"github.com/hugohenrick/farmacia-pos/internal/adapter/document"
	"github.com/hugohenrick/farmacia-pos/internal/adapter/repository"
	"github.com/hugohenrick/farmacia-pos/internal/domain/credit"
	"github.com/hugohenrick/farmacia-pos/internal/domain/statement"
	"github.com/hugohenrick/farmacia-pos/internal/infrastructure/database"
	"github.com/hugohenrick/farmacia-pos/pkg/branch"
	"github.com/hugohenrick/farmacia-pos/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App representa a aplicação e suas dependências
type App struct {
	router              *gin.Engine
	pool                *pgxpool.Pool
	logger              logger.Logger
	customerController  *controller.CustomerController
	medicineController  *controller.MedicineController
	saleController      *controller.SaleController
	creditController    *controller.CreditController
	statementController *controller.StatementController
}

// NewApp cria uma nova instância do aplicativo
func NewApp() (*App, error) {
	log := logger.NewLogger()

	// Configurar banco de dados
	config := database.NewPostgresConfigFromEnv()
	pool, err := database.NewPostgresPool(config)
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar ao banco de dados: %w", err)
	}

	// Criar repositórios
	txManager := repository.NewTxManager(pool)
	customerRepo := repository.NewCustomerRepository(pool, txManager)
	medicineRepo := repository.NewMedicineRepository(pool)
	saleRepo := repository.NewSaleRepository(pool, txManager)
	creditRepo := repository.NewCreditRepository(pool)

	// Criar o livro de créditos
	ledger := credit.NewLedger(creditRepo, saleRepo, txManager, log)

	// Renderizadores de extrato
	renderers := map[statement.Format]statement.Renderer{
		statement.FormatPDF: document.NewPDFRenderer(),
		statement.FormatCSV: document.NewCSVRenderer(),
	}

	// Criar controllers
	customerController := controller.NewCustomerController(customerRepo, log)
	medicineController := controller.NewMedicineController(medicineRepo, log)
	saleController := controller.NewSaleController(saleRepo, medicineRepo, customerRepo, ledger, txManager, log)
	creditController := controller.NewCreditController(ledger, customerRepo, log)
	statementController := controller.NewStatementController(customerRepo, saleRepo, creditRepo, renderers, log)

	// Configurar router
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "branch-id", "user-id"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	return &App{
		router:              router,
		pool:                pool,
		logger:              log,
		customerController:  customerController,
		medicineController:  medicineController,
		saleController:      saleController,
		creditController:    creditController,
		statementController: statementController,
	}, nil
}

// SetupRoutes configura as rotas da aplicação
func (a *App) SetupRoutes(basePath string) {
	api := a.router.Group(basePath)

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	// Todas as rotas de negócio exigem o cabeçalho de filial
	scoped := api.Group("")
	scoped.Use(branch.Middleware())

	route.RegisterCustomerRoutes(scoped, a.customerController, a.creditController, a.saleController, a.statementController)
	route.RegisterMedicineRoutes(scoped, a.medicineController)
	route.RegisterSaleRoutes(scoped, a.saleController)
	route.RegisterCreditRoutes(scoped, a.creditController)
}

// Start inicia o servidor HTTP
func (a *App) Start() error {
	defer a.pool.Close()

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	a.logger.Info("servidor iniciado", "port", port)
	return a.router.Run(":" + port)
}
