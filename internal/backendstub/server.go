// Package backendstub is an in-process stand-in for the order-owning
// backend: the REST surface plus the tracking WebSocket, backed by an
// in-memory store. It serves integration tests under httptest and runs
// standalone for local development.
package backendstub

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Server exposes the backend contract over echo.
type Server struct {
	store  *Store
	hub    *Hub
	echo   *echo.Echo
	logger *slog.Logger
}

// NewServer wires the routes around the given store.
func NewServer(store *Store, logger *slog.Logger) *Server {
	s := &Server{
		store:  store,
		hub:    NewHub(logger),
		echo:   echo.New(),
		logger: logger.With("component", "backend_stub"),
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.echo.GET("/api/orders", s.listOrders)
	s.echo.POST("/api/orders", s.createOrder)
	s.echo.GET("/api/orders/:id", s.getOrder)
	s.echo.PATCH("/api/orders/:id/status", s.updateOrderStatus)
	s.echo.GET("/api/auth/drivers", s.listDrivers)
	s.echo.GET("/ws/tracking/:id", s.track)

	return s
}

// Handler returns the HTTP handler, for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves on the given address until Shutdown.
func (s *Server) Start(address string) error {
	err := s.echo.Start(address)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// ResolveHeldAttempts finishes deferred delivery attempts and broadcasts the
// outcomes, mirroring the backend's asynchronous attempt processing.
func (s *Server) ResolveHeldAttempts() {
	for _, record := range s.store.ResolveHeldAttempts() {
		s.broadcast(record)
	}
}

func (s *Server) listOrders(c echo.Context) error {
	filter := ListFilter{
		ClientID:  c.QueryParam("client_id"),
		DriverAny: c.QueryParam("driver_id_any"),
		Status:    c.QueryParam("status"),
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return detail(c, http.StatusBadRequest, "Limit must be an integer")
		}
		filter.Limit = limit
	}
	if raw := c.QueryParam("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return detail(c, http.StatusBadRequest, "Offset must be an integer")
		}
		filter.Offset = offset
	}

	orders, total := s.store.List(filter)
	return c.JSON(http.StatusOK, map[string]any{"orders": orders, "total": total})
}

func (s *Server) getOrder(c echo.Context) error {
	record, err := s.store.Get(c.Param("id"))
	if err != nil {
		return rejection(c, err)
	}
	return c.JSON(http.StatusOK, record)
}

type createOrderRequest struct {
	ClientID        string        `json:"client_id"`
	PickupAddress   string        `json:"pickup_address"`
	DeliveryAddress string        `json:"delivery_address"`
	SenderName      string        `json:"sender_name"`
	ReceiverName    string        `json:"receiver_name"`
	PackageDetails  PackageRecord `json:"package_details"`
}

func (s *Server) createOrder(c echo.Context) error {
	var request createOrderRequest
	if err := c.Bind(&request); err != nil {
		return detail(c, http.StatusBadRequest, "Invalid request body")
	}
	if request.ClientID == "" || request.PickupAddress == "" || request.DeliveryAddress == "" {
		return detail(c, http.StatusBadRequest, "client_id, pickup_address and delivery_address are required")
	}

	record := s.store.Create(
		request.ClientID,
		request.PickupAddress,
		request.DeliveryAddress,
		request.SenderName,
		request.ReceiverName,
		request.PackageDetails,
	)
	s.logger.InfoContext(c.Request().Context(), "Order created", "order_id", record.ID, "client_id", record.ClientID)
	return c.JSON(http.StatusAccepted, record)
}

type statusUpdateRequest struct {
	Status        string `json:"status"`
	DeliveryNotes string `json:"delivery_notes"`
}

func (s *Server) updateOrderStatus(c echo.Context) error {
	var request statusUpdateRequest
	if err := c.Bind(&request); err != nil {
		return detail(c, http.StatusBadRequest, "Invalid request body")
	}

	record, err := s.store.UpdateStatus(c.Param("id"), request.Status, request.DeliveryNotes)
	if err != nil {
		return rejection(c, err)
	}

	s.logger.InfoContext(c.Request().Context(), "Order status updated",
		"order_id", record.ID, "status", record.Status)
	s.broadcast(record)
	return c.JSON(http.StatusOK, record)
}

func (s *Server) listDrivers(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.Drivers())
}

func (s *Server) track(c echo.Context) error {
	return s.hub.Serve(c.Response(), c.Request(), c.Param("id"))
}

func (s *Server) broadcast(record OrderRecord) {
	s.hub.BroadcastOrderUpdate(record,
		fmt.Sprintf("Order %s is now %s", record.ID, record.Status))
}

func detail(c echo.Context, code int, message string) error {
	return c.JSON(code, map[string]string{"detail": message})
}

func rejection(c echo.Context, err error) error {
	var r *Rejection
	if errors.As(err, &r) {
		return detail(c, r.Code, r.Detail)
	}
	return detail(c, http.StatusInternalServerError, err.Error())
}
