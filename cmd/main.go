package main

import (
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/devoys/menu-service/internal/handler"
	"github.com/devoys/menu-service/internal/middleware"
	"github.com/devoys/menu-service/internal/model"
	"github.com/devoys/menu-service/pkg/config"
	"github.com/devoys/menu-service/pkg/database"
	"github.com/devoys/menu-service/pkg/jwtutil"
	"github.com/devoys/menu-service/pkg/logger"
	"github.com/devoys/menu-service/pkg/storage"
	"github.com/devoys/menu-service/prometheus"
)

func main() {
	// Load configuration
	appConfig, err := config.Load("menu-service")
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting menu-service", appConfig.LogConfig()...)

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	db, err := database.InitDB(&appConfig.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	if err := database.MigrateModels(db,
		&model.User{},
		&model.Restaurant{},
		&model.Category{},
		&model.Product{},
		&model.RestaurantSettings{},
	); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database migrations completed")

	// Initialize image storage
	imageBase := strings.TrimRight(appConfig.Server.PublicBaseURL, "/") + appConfig.Storage.PublicPath
	store, err := storage.New(appConfig.Storage.Dir, imageBase)
	if err != nil {
		log.Fatal("Failed to initialize image storage", zap.Error(err))
	}
	log.Info("Image storage initialized",
		zap.String("dir", appConfig.Storage.Dir),
		zap.String("public_base", imageBase))

	// Initialize JWT utility
	jwtUtil := jwtutil.New(&appConfig.JWT)

	h := handler.New(db, jwtUtil, store, appConfig)

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(middleware.MetricsMiddleware)
	e.Use(logger.Middleware())

	// Metrics and health endpoints
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", h.Health)

	// Uploaded images are served straight from the storage directory
	e.Static(appConfig.Storage.PublicPath, appConfig.Storage.Dir)

	// Auth routes
	e.POST("/api/auth/login", h.Login)
	e.POST("/api/auth/logout", h.Logout)
	e.GET("/api/auth/session", h.Session, middleware.JWTAuthMiddleware(jwtUtil))

	// Admin routes - tenant resolved per request from ?id= or owner lookup
	admin := e.Group("/api/admin", middleware.JWTAuthMiddleware(jwtUtil))
	admin.GET("/context", h.AdminContext)
	admin.GET("/bootstrap", h.AdminBootstrap)
	admin.GET("/products", h.ListProducts)
	admin.POST("/products", h.CreateProduct)
	admin.PUT("/products/:id", h.UpdateProduct)
	admin.PATCH("/products/:id/active", h.ToggleProductActive)
	admin.DELETE("/products/:id", h.DeleteProduct)
	admin.GET("/categories", h.ListCategories)
	admin.POST("/categories", h.CreateCategory)
	admin.GET("/settings", h.GetSettings)
	admin.PUT("/settings", h.SaveSettings)
	admin.POST("/uploads", h.UploadImage)

	// Reseller routes
	reseller := e.Group("/api/reseller", middleware.JWTAuthMiddleware(jwtUtil))
	reseller.GET("/restaurants", h.ListRestaurants)
	reseller.POST("/restaurants", h.CreateRestaurant)

	// Public menu routes
	e.GET("/api/menu/:slug", h.PublicMenu)
	e.GET("/api/menu/:slug/qr.png", h.MenuQR)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
