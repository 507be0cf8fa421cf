package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/busstore/backend/internal/application/catalog"
	identityapp "github.com/busstore/backend/internal/application/identity"
	postalapp "github.com/busstore/backend/internal/application/postal"
	tradeapp "github.com/busstore/backend/internal/application/trade"
	"github.com/busstore/backend/internal/infrastructure/auth"
	"github.com/busstore/backend/internal/infrastructure/config"
	"github.com/busstore/backend/internal/infrastructure/logger"
	"github.com/busstore/backend/internal/infrastructure/payment"
	"github.com/busstore/backend/internal/infrastructure/persistence"
	infrapostal "github.com/busstore/backend/internal/infrastructure/postal"
	"github.com/busstore/backend/internal/infrastructure/telemetry"
	"github.com/busstore/backend/internal/interfaces/http/handler"
	"github.com/busstore/backend/internal/interfaces/http/router"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

//	@title			Bus Store API
//	@version		1.0
//	@description	Storefront backend: catalog, checkout, sale ledger, accounts and CEP lookup.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Bus Store backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	tracer, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := tracer.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer", zap.Error(err))
		}
	}()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	dbOpts := []persistence.Option{persistence.WithGormLogger(gormLog)}
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbOpts = append(dbOpts, persistence.WithTracing())
	}

	db, err := persistence.NewDatabase(&cfg.Database, dbOpts...)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing redis client", zap.Error(err))
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to redis", zap.Error(err))
	}
	log.Info("Redis connected")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Outbound adapters
	jwtService := auth.NewJWTService(cfg.JWT)
	blacklist := auth.NewRedisTokenBlacklist(redisClient)
	cardGateway := payment.NewMercadoPagoAdapter(cfg.Payment, log)
	cepLookup := infrapostal.NewViaCEPClient(cfg.Postal, log)

	// Application services
	productService := catalogapp.NewProductService(productRepo)
	checkoutService := tradeapp.NewCheckoutService(productRepo, saleRepo, cardGateway, log)
	saleService := tradeapp.NewSaleService(saleRepo)
	authService := identityapp.NewAuthService(
		userRepo, jwtService, blacklist,
		cfg.Store, identityapp.DefaultAuthServiceConfig(), log,
	)
	userService := identityapp.NewUserService(userRepo, cfg.Store, log)
	addressService := postalapp.NewAddressService(cepLookup, log)

	engine := router.New(router.Dependencies{
		Config:     cfg,
		Logger:     log,
		JWTService: jwtService,
		Blacklist:  blacklist,

		System:   handler.NewSystemHandler(db, cfg.App.Name),
		Products: handler.NewProductHandler(productService),
		Checkout: handler.NewCheckoutHandler(checkoutService),
		Payments: handler.NewPaymentHandler(cardGateway),
		Sales:    handler.NewSaleHandler(saleService),
		Auth:     handler.NewAuthHandler(authService, userService),
		Users:    handler.NewUserHandler(userService),
		Postal:   handler.NewPostalHandler(addressService),
	})

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}
