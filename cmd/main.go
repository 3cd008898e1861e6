package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/moura95/hft-simulator/config"
	server "github.com/moura95/hft-simulator/internal"
	"github.com/moura95/hft-simulator/pkg/logger"

	_ "github.com/moura95/hft-simulator/docs" // Importar docs gerados
)

// @title HFT Simulator API
// @version 1.0.0
// @description Single-instrument limit order book with price-time matching, stop orders and a simulated trading account
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.SetLevel(cfg.LogLevel)

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := srv.Run(ctx)

	if err := srv.Close(); err != nil {
		logger.Errorf("Closing trade sinks: %v", err)
	}
	srv.Summary().Print(os.Stdout, time.Local)
	_ = logger.Sync()

	if runErr != nil {
		log.Fatalf("Server failed: %v", runErr)
	}
}
