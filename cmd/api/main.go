package main

import (
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"marketpulse/gateway-go/internal/config"
	internalhttp "marketpulse/gateway-go/internal/http"
	"marketpulse/gateway-go/internal/logger"
	"marketpulse/gateway-go/internal/services"
)

func main() {
	_ = godotenv.Load(".env", ".env.local")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	cache := services.NewCache(cfg)
	h := internalhttp.NewRouter(cfg, cache)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("gateway listening", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
}
