package backendstub_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"orderboard/internal/adapters/out/backendhttp"
	"orderboard/internal/backendstub"
	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/ports"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func defaultRoster() []backendstub.DriverRecord {
	return []backendstub.DriverRecord{
		{Username: "driver1", Name: "Alex Reyes", Role: "driver"},
		{Username: "driver2", Name: "Sam Ortiz", Role: "driver"},
	}
}

type stubFixture struct {
	store  *backendstub.Store
	server *backendstub.Server
	http   *httptest.Server
	client *backendhttp.Client
}

func newFixture(t *testing.T) *stubFixture {
	t.Helper()
	store := backendstub.NewStore(defaultRoster()...)
	server := backendstub.NewServer(store, testLogger())
	httpServer := httptest.NewServer(server.Handler())
	t.Cleanup(httpServer.Close)
	return &stubFixture{
		store:  store,
		server: server,
		http:   httpServer,
		client: backendhttp.NewClient(httpServer.URL, "token1", 5*time.Second, testLogger()),
	}
}

func (f *stubFixture) seed(t *testing.T, status string, mutate func(*backendstub.OrderRecord)) backendstub.OrderRecord {
	t.Helper()
	record := backendstub.OrderRecord{
		ClientID:        "client1",
		Status:          status,
		PickupAddress:   "12 Depot Lane",
		DeliveryAddress: "7 Harbor Road",
		PackageDetails:  backendstub.PackageRecord{Description: "Electronics", WeightKG: 2.5},
	}
	if mutate != nil {
		mutate(&record)
	}
	return f.store.Seed(record)
}

func TestStubListOrders(t *testing.T) {
	t.Run("should filter by client, driver and status", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, "READY", nil)
		f.seed(t, "PICKING_UP", func(r *backendstub.OrderRecord) {
			r.PickupDriverID = "driver1"
		})
		f.seed(t, "OUT_FOR_DELIVERY", func(r *backendstub.OrderRecord) {
			r.ClientID = "client2"
			r.DeliveryDriverID = "driver1"
		})

		byClient, total, err := f.client.ListOrders(context.Background(), ports.ListFilter{ClientID: "client1"})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Len(t, byClient, 2)

		byDriver, total, err := f.client.ListOrders(context.Background(), ports.ListFilter{AssignedTo: "driver1"})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Len(t, byDriver, 2)

		byStatus, total, err := f.client.ListOrders(context.Background(), ports.ListFilter{Status: order.StatusReady})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, byStatus, 1)
		assert.Equal(t, order.StatusReady, byStatus[0].Status())
	})

	t.Run("should paginate newest first", func(t *testing.T) {
		f := newFixture(t)
		base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		for i := 0; i < 5; i++ {
			offset := time.Duration(i) * time.Minute
			f.seed(t, "READY", func(r *backendstub.OrderRecord) {
				r.CreatedAt = base.Add(offset)
			})
		}

		page, total, err := f.client.ListOrders(context.Background(), ports.ListFilter{Limit: 2, Offset: 1})

		require.NoError(t, err)
		assert.Equal(t, 5, total)
		require.Len(t, page, 2)
		assert.Equal(t, base.Add(3*time.Minute), page[0].CreatedAt())
		assert.Equal(t, base.Add(2*time.Minute), page[1].CreatedAt())
	})
}

func TestStubTransitions(t *testing.T) {
	t.Run("should apply a plain driver transition and append history", func(t *testing.T) {
		f := newFixture(t)
		seeded := f.seed(t, "PICKUP_ASSIGNED", func(r *backendstub.OrderRecord) {
			r.PickupDriverID = "driver1"
		})
		id, err := kernel.UUIDFromString(seeded.ID)
		require.NoError(t, err)

		updated, err := f.client.RequestTransition(context.Background(), id, order.StatusPickingUp, "heading out")

		require.NoError(t, err)
		assert.Equal(t, order.StatusPickingUp, updated.Status())
		assert.Equal(t, "heading out", updated.DeliveryNotes())
		history := updated.History()
		require.Len(t, history, 2)
		assert.Equal(t, order.StatusPickingUp, history[1].Status)
		assert.Equal(t, "Driver update: PICKING_UP", history[1].Detail)
	})

	t.Run("should reject an unknown target status", func(t *testing.T) {
		f := newFixture(t)
		seeded := f.seed(t, "READY", nil)
		id, err := kernel.UUIDFromString(seeded.ID)
		require.NoError(t, err)

		_, err = f.client.RequestTransition(context.Background(), id, order.StatusPickupAssigned, "")

		require.Error(t, err)
		assert.ErrorIs(t, err, ports.ErrTransitionRejected)
	})

	t.Run("should reject transitions out of a terminal state", func(t *testing.T) {
		f := newFixture(t)
		seeded := f.seed(t, "DELIVERED", nil)
		id, err := kernel.UUIDFromString(seeded.ID)
		require.NoError(t, err)

		_, err = f.client.RequestTransition(context.Background(), id, order.StatusCancelled, "")

		require.Error(t, err)
		var rejected *ports.TransitionRejectedError
		require.ErrorAs(t, err, &rejected)
		assert.Contains(t, rejected.Reason, "DELIVERED")
	})

	t.Run("should auto-assign the least-loaded delivery driver at the warehouse", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, "OUT_FOR_DELIVERY", func(r *backendstub.OrderRecord) {
			r.DeliveryDriverID = "driver1"
		})
		seeded := f.seed(t, "PICKED_UP", func(r *backendstub.OrderRecord) {
			r.PickupDriverID = "driver1"
		})
		id, err := kernel.UUIDFromString(seeded.ID)
		require.NoError(t, err)

		updated, err := f.client.RequestTransition(context.Background(), id, order.StatusAtWarehouse, "")

		require.NoError(t, err)
		assert.Equal(t, order.StatusAtWarehouse, updated.Status())
		assert.Equal(t, "driver2", updated.DeliveryDriverID())
	})
}

func TestStubDeliveryAttempts(t *testing.T) {
	t.Run("should return the order to the warehouse while attempts remain", func(t *testing.T) {
		f := newFixture(t)
		seeded := f.seed(t, "OUT_FOR_DELIVERY", func(r *backendstub.OrderRecord) {
			r.DeliveryDriverID = "driver1"
		})
		id, err := kernel.UUIDFromString(seeded.ID)
		require.NoError(t, err)

		updated, err := f.client.RequestTransition(context.Background(), id, order.StatusDeliveryAttempted, "nobody home")

		require.NoError(t, err)
		assert.Equal(t, order.StatusAtWarehouse, updated.Status())
		assert.Equal(t, 1, updated.DeliveryAttempts())
		assert.Equal(t, "driver1", updated.DeliveryDriverID())
	})

	t.Run("should fail the order once attempts are exhausted", func(t *testing.T) {
		f := newFixture(t)
		seeded := f.seed(t, "OUT_FOR_DELIVERY", func(r *backendstub.OrderRecord) {
			r.DeliveryDriverID = "driver1"
			r.DeliveryAttempts = 2
			r.MaxDeliveryAttempts = 3
		})
		id, err := kernel.UUIDFromString(seeded.ID)
		require.NoError(t, err)

		updated, err := f.client.RequestTransition(context.Background(), id, order.StatusDeliveryAttempted, "no access")

		require.NoError(t, err)
		assert.Equal(t, order.StatusFailed, updated.Status())
		assert.Equal(t, 3, updated.DeliveryAttempts())
	})

	t.Run("should hold the transient state until resolution when deferred", func(t *testing.T) {
		f := newFixture(t)
		f.store.HoldAttemptResolution(true)
		seeded := f.seed(t, "OUT_FOR_DELIVERY", func(r *backendstub.OrderRecord) {
			r.DeliveryDriverID = "driver1"
		})
		id, err := kernel.UUIDFromString(seeded.ID)
		require.NoError(t, err)

		updated, err := f.client.RequestTransition(context.Background(), id, order.StatusDeliveryAttempted, "")
		require.NoError(t, err)
		assert.Equal(t, order.StatusDeliveryAttempted, updated.Status())

		f.server.ResolveHeldAttempts()

		resolved, err := f.client.GetOrder(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, order.StatusAtWarehouse, resolved.Status())
	})
}

func TestStubCreateAndRoster(t *testing.T) {
	t.Run("should create a pending order with an initial history entry", func(t *testing.T) {
		f := newFixture(t)

		created, err := f.client.CreateOrder(context.Background(), ports.NewOrderRequest{
			ClientID:        "client1",
			PickupAddress:   "12 Depot Lane",
			DeliveryAddress: "7 Harbor Road",
			SenderName:      "Acme Ltd",
			ReceiverName:    "Jamie Doe",
			Package:         order.Package{Description: "Books", WeightKG: 1.2},
		})

		require.NoError(t, err)
		assert.Equal(t, order.StatusPending, created.Status())
		history := created.History()
		require.Len(t, history, 1)
		assert.Equal(t, order.StatusPending, history[0].Status)
	})

	t.Run("should list the driver roster", func(t *testing.T) {
		f := newFixture(t)

		drivers, err := f.client.ListDrivers(context.Background())

		require.NoError(t, err)
		require.Len(t, drivers, 2)
		assert.Equal(t, "driver1", drivers[0].Username)
	})
}

func TestStubTracking(t *testing.T) {
	dial := func(t *testing.T, f *stubFixture) *websocket.Conn {
		t.Helper()
		url := "ws" + strings.TrimPrefix(f.http.URL, "http") + "/ws/tracking/client1"
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		t.Cleanup(func() { conn.Close() })
		return conn
	}

	readJSON := func(t *testing.T, conn *websocket.Conn) map[string]string {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, payload, err := conn.ReadMessage()
		require.NoError(t, err)
		var message map[string]string
		require.NoError(t, json.Unmarshal(payload, &message))
		return message
	}

	t.Run("should answer ping with pong", func(t *testing.T) {
		f := newFixture(t)
		conn := dial(t, f)

		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("ping")))

		assert.Equal(t, "pong", readJSON(t, conn)["type"])
	})

	t.Run("should broadcast status changes to connected trackers", func(t *testing.T) {
		f := newFixture(t)
		conn := dial(t, f)
		seeded := f.seed(t, "PICKUP_ASSIGNED", func(r *backendstub.OrderRecord) {
			r.PickupDriverID = "driver1"
		})
		id, err := kernel.UUIDFromString(seeded.ID)
		require.NoError(t, err)

		_, err = f.client.RequestTransition(context.Background(), id, order.StatusPickingUp, "")
		require.NoError(t, err)

		event := readJSON(t, conn)
		assert.Equal(t, "order_update", event["type"])
		assert.Equal(t, seeded.ID, event["order_id"])
		assert.Equal(t, "PICKING_UP", event["status"])
	})
}
