package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/autocarepro/autocare-api/internal/api/handler"
	"github.com/autocarepro/autocare-api/internal/api/middleware"
	"github.com/autocarepro/autocare-api/internal/core/domain"
	"github.com/autocarepro/autocare-api/internal/core/ports"
	"github.com/autocarepro/autocare-api/internal/core/service"
	mongodb "github.com/autocarepro/autocare-api/internal/infrastructure/db/mongo"
	redisdb "github.com/autocarepro/autocare-api/internal/infrastructure/db/redis"
	"github.com/autocarepro/autocare-api/internal/infrastructure/relay"
	"github.com/autocarepro/autocare-api/internal/pkg/config"
)

// RouterDeps carries the shared infrastructure the router wires together.
type RouterDeps struct {
	Config      *config.Config
	MongoClient *mongo.Client
	DB          *mongo.Database
	Redis       *redis.Client
	Hub         *relay.Hub
	Providers   []ports.PaymentProvider
	Log         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) (*echo.Echo, *service.AuthService) {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("autocare"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(deps.DB)
	vehicleRepo := mongodb.NewVehicleRepository(deps.DB)
	serviceRepo := mongodb.NewServiceRepository(deps.DB)
	truckRepo := mongodb.NewTruckRepository(deps.DB)
	branchRepo := mongodb.NewBranchRepository(deps.DB)
	messageRepo := mongodb.NewMessageRepository(deps.DB)
	paymentRepo := mongodb.NewPaymentRepository(deps.DB)
	locationRepo := mongodb.NewLocationRepository(deps.DB)
	geoIndex := redisdb.NewGeoIndex(deps.Redis)

	// --- Services ---
	authService := service.NewAuthService(userRepo, deps.Config.JWTSecret, 24*time.Hour, deps.Log)
	vehicleService := service.NewVehicleService(vehicleRepo, deps.Log)
	serviceRequestService := service.NewServiceRequestService(serviceRepo, vehicleRepo, truckRepo, deps.Log)
	truckService := service.NewTruckService(truckRepo, deps.Log)
	branchService := service.NewBranchService(branchRepo, deps.Log)
	messageService := service.NewMessageService(messageRepo, deps.Hub, deps.Log)
	paymentService := service.NewPaymentService(paymentRepo, userRepo, deps.Providers, deps.Hub, deps.Log)
	locationService := service.NewLocationService(locationRepo, geoIndex, deps.Hub, deps.Log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	vehicleHandler := handler.NewVehicleHandler(vehicleService)
	serviceHandler := handler.NewServiceHandler(serviceRequestService)
	truckHandler := handler.NewTruckHandler(truckService)
	branchHandler := handler.NewBranchHandler(branchService)
	messageHandler := handler.NewMessageHandler(messageService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	locationHandler := handler.NewLocationHandler(locationService)
	healthHandler := handler.NewHealthHandler(deps.MongoClient, deps.Redis)
	wsHandler := relay.NewWebsocketHandler(deps.Hub, authService, deps.Log)

	authMiddleware := middleware.Auth(deps.Config.JWTSecret)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// The relay socket authenticates itself from the token query parameter.
	e.GET("/ws", wsHandler.Connect)

	// --- Authenticated API ---
	v1 := e.Group("/v1", authMiddleware)

	v1.GET("/auth/me", authHandler.Me)
	v1.PUT("/auth/me", authHandler.UpdateMe)

	v1.GET("/vehicles", vehicleHandler.List)
	v1.POST("/vehicles", vehicleHandler.Create)
	v1.GET("/vehicles/:id", vehicleHandler.Get)
	v1.PUT("/vehicles/:id", vehicleHandler.Update)
	v1.DELETE("/vehicles/:id", vehicleHandler.Delete)
	v1.POST("/vehicles/:id/maintenance", vehicleHandler.AddMaintenance)

	v1.GET("/services", serviceHandler.List)
	v1.POST("/services", serviceHandler.Create)
	v1.GET("/services/:id", serviceHandler.Get)
	v1.PUT("/services/:id/status", serviceHandler.UpdateStatus, adminOnly)
	v1.POST("/services/:id/dispatch", serviceHandler.Dispatch, adminOnly)

	v1.GET("/branches", branchHandler.List)
	v1.POST("/branches", branchHandler.Create, adminOnly)
	v1.PUT("/branches/:id", branchHandler.Update, adminOnly)
	v1.DELETE("/branches/:id", branchHandler.Delete, adminOnly)

	trucks := v1.Group("/trucks", adminOnly)
	trucks.GET("", truckHandler.List)
	trucks.POST("", truckHandler.Create)
	trucks.GET("/:id", truckHandler.Get)
	trucks.PUT("/:id", truckHandler.Update)
	trucks.DELETE("/:id", truckHandler.Delete)

	v1.GET("/messages", messageHandler.List)
	v1.POST("/messages", messageHandler.Send)
	v1.POST("/messages/broadcast", messageHandler.Broadcast, adminOnly)
	v1.PUT("/messages/:id/read", messageHandler.MarkRead, adminOnly)

	v1.GET("/payments/config", paymentHandler.Config)
	v1.POST("/payments/paystack/initialize", paymentHandler.InitializePaystack)
	v1.POST("/payments/paystack/verify", paymentHandler.VerifyPaystack)
	v1.POST("/payments/paypal/create-order", paymentHandler.CreatePayPalOrder)
	v1.POST("/payments/paypal/capture", paymentHandler.CapturePayPalOrder)
	v1.GET("/payments", paymentHandler.History)
	v1.GET("/payments/admin/all", paymentHandler.ListAll, adminOnly)
	v1.POST("/payments/:id/refund", paymentHandler.Refund, adminOnly)

	v1.GET("/locations", locationHandler.List)
	v1.POST("/locations", locationHandler.Create)
	v1.GET("/locations/nearby", locationHandler.Nearby)
	v1.GET("/locations/maps-format", locationHandler.MapsFormat)
	v1.PUT("/locations/:id", locationHandler.Update)
	v1.DELETE("/locations/:id", locationHandler.Delete)

	return e, authService
}
