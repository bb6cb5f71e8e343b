package router

import (
	"time"

	"github.com/amirclear/shelf-inventory/internal/config"
	"github.com/amirclear/shelf-inventory/internal/handler"
	"github.com/amirclear/shelf-inventory/internal/middleware"
	"github.com/amirclear/shelf-inventory/internal/repository"
	"github.com/amirclear/shelf-inventory/internal/service"
	"github.com/amirclear/shelf-inventory/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	detectionRepo := repository.NewDetectionRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	productSvc := service.NewProductService(productRepo, rdb)
	detectionSvc := service.NewDetectionService(detectionRepo, productRepo, cfg.UploadStoragePath)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, productRepo, detectionRepo, dispatcher)
	analyticsSvc := service.NewAnalyticsService(productRepo, invoiceRepo, detectionRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	detectionsH := handler.NewDetectionsHandler(detectionSvc)
	invoicesH := handler.NewInvoicesHandler(invoiceSvc)
	analyticsH := handler.NewAnalyticsHandler(analyticsSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Pre-rendered bbox images for detection results
	r.Static("/static", cfg.BBoxStaticPath)

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/dashboard", analyticsH.Dashboard)

		// Catalog — all roles read, admin writes
		v1.GET("/products", productsH.List)
		v1.GET("/products/:id", productsH.GetByID)
		prods := v1.Group("/products", middleware.RequireRole("admin"))
		{
			prods.POST("", productsH.Create)
			prods.PUT("/:id", productsH.Update)
			prods.DELETE("/:id", productsH.Delete)
		}

		// Detections
		v1.POST("/detections", detectionsH.Upload)
		v1.GET("/detections", detectionsH.List)
		v1.GET("/detections/:id", detectionsH.Get)

		// Invoice generation from a detection run
		v1.POST("/detections/:id/invoice", invoicesH.Generate)

		// Invoices
		v1.GET("/invoices", invoicesH.List)
		v1.GET("/invoices/:id", invoicesH.GetByID)
		v1.GET("/invoices/:id/pdf", invoicesH.DownloadPDF(invoiceRepo))

		// Analytics
		v1.GET("/analytics/investment-scores", analyticsH.InvestmentScores)

		// User administration
		users := v1.Group("/users", middleware.RequireRole("admin"))
		{
			users.POST("", authH.CreateUser)
			users.GET("", authH.ListUsers)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
