package backendhttp_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"orderboard/internal/adapters/out/backendhttp"
	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func wireOrder(id string, status order.Status) map[string]any {
	return map[string]any{
		"id":                    id,
		"client_id":             "client1",
		"status":                string(status),
		"pickup_address":        "12 Depot Lane",
		"delivery_address":      "7 Harbor Road",
		"package_details":       map[string]any{"description": "Electronics", "weight_kg": 2.5},
		"delivery_attempts":     0,
		"max_delivery_attempts": 3,
		"created_at":            "2026-03-01T09:00:00Z",
	}
}

func TestClientListOrders(t *testing.T) {
	firstID := kernel.NewUUID().String()
	secondID := kernel.NewUUID().String()

	t.Run("should pass the filter as query parameters", func(t *testing.T) {
		var gotQuery map[string][]string
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query()
			gotAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(map[string]any{"orders": []any{}, "total": 0})
		}))
		defer server.Close()
		client := backendhttp.NewClient(server.URL, "token1", time.Second, testLogger())

		_, _, err := client.ListOrders(context.Background(), ports.ListFilter{
			AssignedTo: "driver1",
			Status:     order.StatusReady,
			Limit:      50,
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"driver1"}, gotQuery["driver_id_any"])
		assert.Equal(t, []string{"READY"}, gotQuery["status"])
		assert.Equal(t, []string{"50"}, gotQuery["limit"])
		assert.NotContains(t, gotQuery, "client_id")
		assert.Equal(t, "Bearer token1", gotAuth)
	})

	t.Run("should return the snapshot and total", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"orders": []any{wireOrder(firstID, order.StatusReady), wireOrder(secondID, order.StatusPickedUp)},
				"total":  7,
			})
		}))
		defer server.Close()
		client := backendhttp.NewClient(server.URL, "", time.Second, testLogger())

		orders, total, err := client.ListOrders(context.Background(), ports.ListFilter{})

		require.NoError(t, err)
		assert.Equal(t, 7, total)
		require.Len(t, orders, 2)
		assert.Equal(t, firstID, orders[0].ID().String())
		assert.Equal(t, order.StatusPickedUp, orders[1].Status())
	})

	t.Run("should quarantine records with an unrecognized status", func(t *testing.T) {
		invalid := wireOrder(secondID, order.StatusReady)
		invalid["status"] = "WARPED"
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"orders": []any{wireOrder(firstID, order.StatusReady), invalid},
				"total":  2,
			})
		}))
		defer server.Close()
		client := backendhttp.NewClient(server.URL, "", time.Second, testLogger())

		orders, total, err := client.ListOrders(context.Background(), ports.ListFilter{})

		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, orders, 1)
		assert.Equal(t, firstID, orders[0].ID().String())
	})

	t.Run("should fail when the backend is unreachable", func(t *testing.T) {
		client := backendhttp.NewClient("http://127.0.0.1:1", "", 100*time.Millisecond, testLogger())

		_, _, err := client.ListOrders(context.Background(), ports.ListFilter{})

		require.Error(t, err)
	})
}

func TestClientGetOrder(t *testing.T) {
	t.Run("should fetch a single order by identifier", func(t *testing.T) {
		id := kernel.NewUUID()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/orders/"+id.String(), r.URL.Path)
			json.NewEncoder(w).Encode(wireOrder(id.String(), order.StatusAtWarehouse))
		}))
		defer server.Close()
		client := backendhttp.NewClient(server.URL, "", time.Second, testLogger())

		o, err := client.GetOrder(context.Background(), id)

		require.NoError(t, err)
		assert.True(t, id.IsEqual(o.ID()))
		assert.Equal(t, order.StatusAtWarehouse, o.Status())
	})

	t.Run("should fail on a not-found response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Order not found"})
		}))
		defer server.Close()
		client := backendhttp.NewClient(server.URL, "", time.Second, testLogger())

		_, err := client.GetOrder(context.Background(), kernel.NewUUID())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Order not found")
	})
}

func TestClientRequestTransition(t *testing.T) {
	t.Run("should patch the status endpoint and return the updated order", func(t *testing.T) {
		id := kernel.NewUUID()
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.Equal(t, "/api/orders/"+id.String()+"/status", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			json.NewEncoder(w).Encode(wireOrder(id.String(), order.StatusPickedUp))
		}))
		defer server.Close()
		client := backendhttp.NewClient(server.URL, "", time.Second, testLogger())

		o, err := client.RequestTransition(context.Background(), id, order.StatusPickedUp, "loaded")

		require.NoError(t, err)
		assert.Equal(t, order.StatusPickedUp, o.Status())
		assert.Equal(t, "PICKED_UP", gotBody["status"])
		assert.Equal(t, "loaded", gotBody["delivery_notes"])
	})

	t.Run("should surface a server rejection as a transition error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid status transition"})
		}))
		defer server.Close()
		client := backendhttp.NewClient(server.URL, "", time.Second, testLogger())

		_, err := client.RequestTransition(context.Background(), kernel.NewUUID(), order.StatusDelivered, "")

		require.Error(t, err)
		assert.ErrorIs(t, err, ports.ErrTransitionRejected)
		var rejection *ports.TransitionRejectedError
		require.ErrorAs(t, err, &rejection)
		assert.Equal(t, "Invalid status transition", rejection.Reason)
		assert.Equal(t, http.StatusBadRequest, rejection.StatusCode)
	})

	t.Run("should fall back to the status text when the rejection body is opaque", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, "nope")
		}))
		defer server.Close()
		client := backendhttp.NewClient(server.URL, "", time.Second, testLogger())

		_, err := client.RequestTransition(context.Background(), kernel.NewUUID(), order.StatusDelivered, "")

		var rejection *ports.TransitionRejectedError
		require.ErrorAs(t, err, &rejection)
		assert.Equal(t, http.StatusText(http.StatusForbidden), rejection.Reason)
	})
}

func TestClientListDrivers(t *testing.T) {
	t.Run("should return the driver roster", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/auth/drivers", r.URL.Path)
			json.NewEncoder(w).Encode([]map[string]string{
				{"username": "driver1", "name": "Alex Reyes", "role": "driver"},
				{"username": "driver2", "name": "Sam Ortiz", "role": "driver"},
			})
		}))
		defer server.Close()
		client := backendhttp.NewClient(server.URL, "", time.Second, testLogger())

		drivers, err := client.ListDrivers(context.Background())

		require.NoError(t, err)
		require.Len(t, drivers, 2)
		assert.Equal(t, "driver1", drivers[0].Username)
		assert.Equal(t, "Sam Ortiz", drivers[1].Name)
	})
}

func TestClientCreateOrder(t *testing.T) {
	t.Run("should post the order and return the created record", func(t *testing.T) {
		id := kernel.NewUUID()
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/orders", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			created := wireOrder(id.String(), order.StatusPending)
			json.NewEncoder(w).Encode(created)
		}))
		defer server.Close()
		client := backendhttp.NewClient(server.URL, "", time.Second, testLogger())

		o, err := client.CreateOrder(context.Background(), ports.NewOrderRequest{
			ClientID:        "client1",
			PickupAddress:   "12 Depot Lane",
			DeliveryAddress: "7 Harbor Road",
			SenderName:      "Acme Ltd",
			Package:         order.Package{Description: "Electronics", WeightKG: 2.5},
		})

		require.NoError(t, err)
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Equal(t, "client1", gotBody["client_id"])
		assert.Equal(t, "12 Depot Lane", gotBody["pickup_address"])
		pkg, ok := gotBody["package_details"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Electronics", pkg["description"])
	})
}
