package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"orderboard/internal/backendstub"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	store := backendstub.NewStore(
		backendstub.DriverRecord{Username: "driver1", Name: "Alex Reyes", Role: "driver"},
		backendstub.DriverRecord{Username: "driver2", Name: "Sam Ortiz", Role: "driver"},
	)
	if os.Getenv("STUB_SEED") != "false" {
		seedDemoOrders(store)
	}

	server := backendstub.NewServer(store, logger)

	if delay := envInt("STUB_RESOLVE_DELAY_MS", 0); delay > 0 {
		store.HoldAttemptResolution(true)
		go resolveAttemptsLoop(server, time.Duration(delay)*time.Millisecond)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Shutdown failed: %v", err)
		}
	}()

	port := os.Getenv("STUB_HTTP_PORT")
	if port == "" {
		port = "8090"
	}
	if err := server.Start("0.0.0.0:" + port); err != nil {
		log.Fatalf("Stub backend failed: %v", err)
	}
}

// resolveAttemptsLoop periodically finishes held delivery attempts, giving
// connected dashboards a window to observe the transient state.
func resolveAttemptsLoop(server *backendstub.Server, delay time.Duration) {
	ticker := time.NewTicker(delay)
	defer ticker.Stop()
	for range ticker.C {
		server.ResolveHeldAttempts()
	}
}

func seedDemoOrders(store *backendstub.Store) {
	seed := func(status, client, pickupDriver, deliveryDriver string, attempts int) {
		store.Seed(backendstub.OrderRecord{
			ClientID:         client,
			Status:           status,
			PickupAddress:    "12 Depot Lane",
			DeliveryAddress:  "7 Harbor Road",
			SenderName:       "Acme Ltd",
			ReceiverName:     "Jamie Doe",
			PackageDetails:   backendstub.PackageRecord{Description: "Electronics", WeightKG: 2.5},
			PickupDriverID:   pickupDriver,
			DeliveryDriverID: deliveryDriver,
			DeliveryAttempts: attempts,
		})
	}

	seed("PENDING", "client1", "", "", 0)
	seed("READY", "client1", "", "", 0)
	seed("PICKUP_ASSIGNED", "client1", "driver1", "", 0)
	seed("PICKED_UP", "client2", "driver1", "", 0)
	seed("AT_WAREHOUSE", "client2", "driver2", "driver1", 1)
	seed("OUT_FOR_DELIVERY", "client1", "driver2", "driver2", 0)
	seed("DELIVERED", "client2", "driver1", "driver2", 0)
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
