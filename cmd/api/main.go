package main

import (
	"context"
	"log"
	"os"

	_ "vtc/api/swagger" // swagger docs
	"vtc/internal/database"
	"vtc/internal/handler"
	"vtc/internal/middleware"
	"vtc/internal/repository"
	"vtc/internal/service"
	"vtc/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           VTC Booking API
// @version         1.0
// @description     Chauffeur booking platform: vehicles, tariff rules, trip estimates, bookings, recurring bookings and invoices.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "postgres"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	middleware.InitPermissionMiddleware(db)

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Repositories
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	tariffRepo := repository.NewTariffRuleRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	recurringRepo := repository.NewRecurringRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)

	// Services
	userService := service.NewUserService(userRepo)
	roleService := service.NewRoleService(db, roleRepo, txManager)
	auditService := service.NewAuditService(db)
	vehicleService := service.NewVehicleService(db, vehicleRepo)
	tariffService := service.NewTariffService(db, tariffRepo, txManager)
	estimateService := service.NewEstimateService(vehicleRepo, tariffRepo)
	notificationService := service.NewNotificationService(notificationRepo, wsHub)
	bookingService := service.NewBookingService(db, bookingRepo, txManager, notificationService)
	recurringService := service.NewRecurringService(db, recurringRepo, bookingRepo, txManager, notificationService)
	promoService := service.NewPromoService(db, tariffRepo, bookingRepo, txManager)
	invoiceService := service.NewInvoiceService(db, invoiceRepo, bookingRepo, vehicleRepo, txManager, notificationService)

	// Seed built-in roles and permissions
	if err := roleService.SeedDefaultRolesAndPermissions(context.Background()); err != nil {
		log.Println("WARNING: Failed to seed roles and permissions:", err)
	}

	// Handlers
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleService)
	auditHandler := handler.NewAuditHandler(auditService)
	vehicleHandler := handler.NewVehicleHandler(vehicleService)
	tariffHandler := handler.NewTariffHandler(tariffService)
	estimateHandler := handler.NewEstimateHandler(estimateService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	recurringHandler := handler.NewRecurringHandler(recurringService)
	promoHandler := handler.NewPromoHandler(promoService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	api := router.Group("/api")
	userHandler.RegisterRoutes(api)
	roleHandler.RegisterRoutes(api)
	auditHandler.RegisterRoutes(api)
	vehicleHandler.RegisterRoutes(api)
	tariffHandler.RegisterRoutes(api)
	estimateHandler.RegisterRoutes(api)
	bookingHandler.RegisterRoutes(api)
	recurringHandler.RegisterRoutes(api)
	promoHandler.RegisterRoutes(api)
	notificationHandler.RegisterRoutes(api)
	invoiceHandler.RegisterRoutes(api)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
