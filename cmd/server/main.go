package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gagan41/ecom/internal/cart"
	"github.com/Gagan41/ecom/internal/config"
	"github.com/Gagan41/ecom/internal/db"
	"github.com/Gagan41/ecom/internal/logger"
	"github.com/Gagan41/ecom/internal/middleware"
	"github.com/Gagan41/ecom/internal/order"
	"github.com/Gagan41/ecom/internal/phonepe"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	orderRepo := order.NewRepository(database)
	cartRepo := cart.NewRepository(database)
	gateway := phonepe.NewClient(cfg.PhonePe)

	orderSvc := order.NewService(orderRepo, cartRepo, gateway)
	orderHandler := order.NewHandler(orderSvc)

	auth := middleware.NewAuth(cfg.JWTSecret)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: setupRouter(orderHandler, auth),
	}

	go func() {
		logger.L().Info("order service listening", zap.String("port", cfg.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.L().Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L().Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.L().Error("graceful shutdown failed", zap.Error(err))
	}
}

// setupRouter wires the order routes behind the middleware chain:
// request-id -> request logging -> rate limiting -> auth.
func setupRouter(h *order.Handler, auth *middleware.Auth) http.Handler {
	mux := http.NewServeMux()

	// Admin features
	mux.Handle("POST /list", auth.RequireAdmin(http.HandlerFunc(h.ListOrders)))
	mux.Handle("POST /status", auth.RequireAdmin(http.HandlerFunc(h.UpdateStatus)))

	// Payment features
	mux.Handle("POST /place", auth.RequireUser(http.HandlerFunc(h.PlaceOrder)))
	mux.Handle("POST /phonepePG", auth.RequireUser(http.HandlerFunc(h.PlacePhonePG)))
	mux.Handle("POST /verifyPhonePG/{transactionId}", auth.RequireUser(http.HandlerFunc(h.VerifyPhonePG)))

	// User features
	mux.Handle("POST /userorders", auth.RequireUser(http.HandlerFunc(h.UserOrders)))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return logger.RequestIDMiddleware(
		logger.LoggingMiddleware(
			middleware.RateLimitMiddleware(mux),
		),
	)
}
