package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/autocarepro/autocare-api/internal/api"
	"github.com/autocarepro/autocare-api/internal/core/ports"
	mongodb "github.com/autocarepro/autocare-api/internal/infrastructure/db/mongo"
	redisdb "github.com/autocarepro/autocare-api/internal/infrastructure/db/redis"
	"github.com/autocarepro/autocare-api/internal/infrastructure/payment"
	"github.com/autocarepro/autocare-api/internal/infrastructure/relay"
	"github.com/autocarepro/autocare-api/internal/pkg/config"
	"github.com/autocarepro/autocare-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "autocare-api",
		Pretty:  cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	hub := relay.NewHub(log)

	var providers []ports.PaymentProvider
	if cfg.Paystack.SecretKey != "" {
		providers = append(providers, payment.NewPaystackProvider(payment.PaystackConfig{
			SecretKey:   cfg.Paystack.SecretKey,
			CallbackURL: cfg.Paystack.CallbackURL,
		}, log))
	}
	if cfg.PayPal.ClientID != "" && cfg.PayPal.Secret != "" {
		providers = append(providers, payment.NewPayPalProvider(payment.PayPalConfig{
			BaseURL:   cfg.PayPal.BaseURL,
			ClientID:  cfg.PayPal.ClientID,
			Secret:    cfg.PayPal.Secret,
			ReturnURL: cfg.PayPal.ReturnURL,
			CancelURL: cfg.PayPal.CancelURL,
		}, log))
	}

	e, authService := api.NewRouter(api.RouterDeps{
		Config:      cfg,
		MongoClient: mongoClient,
		DB:          db,
		Redis:       rdb,
		Hub:         hub,
		Providers:   providers,
		Log:         log,
	})

	if err := authService.SeedAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatal().Err(err).Msg("admin seed failed")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}

// ensureIndexes creates the collection indexes the queries rely on.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	indexed := []interface {
		EnsureIndexes(ctx context.Context) error
	}{
		mongodb.NewUserRepository(db),
		mongodb.NewVehicleRepository(db),
		mongodb.NewServiceRepository(db),
		mongodb.NewMessageRepository(db),
		mongodb.NewPaymentRepository(db),
		mongodb.NewLocationRepository(db),
	}
	for _, repo := range indexed {
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
