package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/moura95/hft-simulator/pkg/logger"
)

type Config struct {
	HTTPServerAddress string
	GRPCServerAddress string
	LogLevel          logger.Level

	// Orders replayed at startup; empty disables the replay.
	OrdersCSV       string
	MalformedPolicy string
	// Trade CSV log; empty disables it.
	TradesCSV string
	// Pebble trade journal directory; empty disables it.
	TradeStoreDir string

	KafkaBrokers []string
	KafkaTopic   string

	Strategy         string
	StrategyInterval time.Duration
	StrategySpread   float64
}

func Load() (*Config, error) {
	cfg := &Config{
		HTTPServerAddress: getEnv("HTTP_SERVER_ADDRESS", "0.0.0.0:8080"),
		GRPCServerAddress: getEnv("GRPC_SERVER_ADDRESS", "0.0.0.0:9090"),
		OrdersCSV:         getEnv("ORDERS_CSV", ""),
		MalformedPolicy:   getEnv("MALFORMED_POLICY", "skip"),
		TradesCSV:         getEnv("TRADES_CSV", "trades.csv"),
		TradeStoreDir:     getEnv("TRADE_STORE_DIR", ""),
		KafkaBrokers:      splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:        getEnv("KAFKA_TOPIC", "trades"),
		Strategy:          getEnv("STRATEGY", "none"),
	}

	level, err := logger.ParseLevel(getEnv("LOG_LEVEL", "INFO"))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	cfg.StrategyInterval, err = time.ParseDuration(getEnv("STRATEGY_INTERVAL", "100ms"))
	if err != nil {
		return nil, fmt.Errorf("STRATEGY_INTERVAL: %w", err)
	}
	if cfg.StrategyInterval <= 0 {
		return nil, fmt.Errorf("STRATEGY_INTERVAL must be positive, got %v", cfg.StrategyInterval)
	}

	cfg.StrategySpread, err = strconv.ParseFloat(getEnv("STRATEGY_SPREAD", "0.5"), 64)
	if err != nil {
		return nil, fmt.Errorf("STRATEGY_SPREAD: %w", err)
	}
	if cfg.StrategySpread < 0 {
		return nil, fmt.Errorf("STRATEGY_SPREAD must not be negative, got %v", cfg.StrategySpread)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
