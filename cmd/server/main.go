package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pg-backend/internal/auth"
	"pg-backend/internal/cache"
	"pg-backend/internal/config"
	"pg-backend/internal/database"
	"pg-backend/internal/db"
	"pg-backend/internal/handlers"
	"pg-backend/internal/health"
	httprouter "pg-backend/internal/http"
	"pg-backend/internal/middleware"
	"pg-backend/internal/repositories"
	"pg-backend/internal/services"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	if err := database.RunMigrations(context.Background(), pool, "migrations"); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Unavailable, running without cache: %v", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	tenantRepo := repositories.NewTenantRepository(pool)
	roomRepo := repositories.NewRoomRepository(pool)
	cycleRepo := repositories.NewRentCycleRepository(pool)
	paymentRepo := repositories.NewRentPaymentRepository(pool)
	advanceRepo := repositories.NewAdvancePaymentRepository(pool)
	settingRepo := repositories.NewSystemSettingRepository(pool)
	subscriptionRepo := repositories.NewSubscriptionRepository(pool)
	totpRepo := repositories.NewTOTPRepository(pool)

	// Services
	jwtManager := auth.NewJWTManager(cfg)
	userService := services.NewUserService(userRepo, jwtManager)
	totpService := services.NewTOTPService(totpRepo, userRepo)
	rentPaymentService := services.NewRentPaymentService(tenantRepo, cycleRepo, paymentRepo)
	tenantService := services.NewTenantService(tenantRepo, roomRepo, advanceRepo, rentPaymentService)
	roomService := services.NewRoomService(roomRepo)
	advanceService := services.NewAdvancePaymentService(advanceRepo, tenantRepo)
	settingService := services.NewSystemSettingService(settingRepo)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, cfg)
	receiptService := services.NewReceiptService(paymentRepo, tenantRepo, cycleRepo, settingService)

	// Handlers
	authMW := middleware.NewAuthMiddleware(jwtManager, userRepo)
	router := httprouter.NewRouter(httprouter.RouterDeps{
		Auth:            handlers.NewAuthHandler(userService, totpService, jwtManager),
		Users:           handlers.NewUserHandler(userService),
		Tenants:         handlers.NewTenantHandler(tenantService),
		Rooms:           handlers.NewRoomHandler(roomService),
		RentPayments:    handlers.NewRentPaymentHandler(rentPaymentService, receiptService),
		AdvancePayments: handlers.NewAdvancePaymentHandler(advanceService),
		Settings:        handlers.NewSystemSettingHandler(settingService),
		Subscriptions:   handlers.NewSubscriptionHandler(subscriptionService),
		TOTP:            handlers.NewTOTPHandler(totpService),
		Health:          handlers.NewHealthHandler(health.NewChecker(pool)),
		AuthMW:          authMW,
	})

	handler := middleware.NewCORS(cfg)(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("[Server] Listening on :%d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Printf("[Server] Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[Server] Forced shutdown: %v", err)
	}
}
