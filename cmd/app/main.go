package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"orderboard/cmd"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	app, err := cmd.NewCompositionRoot(configs, logger)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}

	<-ctx.Done()
	app.Stop()
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	return cmd.Config{
		BackendBaseURL:    requiredEnv("BACKEND_BASE_URL"),
		TrackingWSURL:     requiredEnv("TRACKING_WS_URL"),
		ViewerID:          requiredEnv("VIEWER_ID"),
		ViewerRole:        requiredEnv("VIEWER_ROLE"),
		ViewerToken:       os.Getenv("VIEWER_TOKEN"),
		PollInterval:      envSeconds("POLL_INTERVAL_SECONDS", 10),
		ReconnectDelay:    envSeconds("RECONNECT_DELAY_SECONDS", 5),
		KeepaliveInterval: envSeconds("KEEPALIVE_INTERVAL_SECONDS", 30),
		HTTPTimeout:       envSeconds("HTTP_TIMEOUT_SECONDS", 10),
		FetchLimit:        envInt("FETCH_LIMIT", 50),
	}
}

func requiredEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("%s is required", key)
	}
	return value
}

func envSeconds(key string, fallback int) time.Duration {
	return time.Duration(envInt(key, fallback)) * time.Second
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("%s must be an integer: %v", key, err)
	}
	return value
}
