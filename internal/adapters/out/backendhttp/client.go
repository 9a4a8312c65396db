// Package backendhttp implements the order gateway against the backend's
// REST API. Fetches are idempotent; the backend stays the sole source of
// truth and this adapter never caches anything.
package backendhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/domain/model/viewer"
	"orderboard/internal/core/ports"
)

// Client is an OrderGateway over HTTP. Records that violate domain
// invariants — unrecognized statuses above all — are quarantined: dropped
// from the snapshot with a warning instead of failing the refresh cycle.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a gateway client for the given base URL. The token, if
// non-empty, is sent as a bearer credential on every request.
func NewClient(baseURL, token string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "backend_gateway"),
	}
}

// ListOrders fetches a snapshot of orders matching the filter.
func (c *Client) ListOrders(ctx context.Context, filter ports.ListFilter) ([]*order.Order, int, error) {
	query := url.Values{}
	if filter.ClientID != "" {
		query.Set("client_id", filter.ClientID)
	}
	if filter.AssignedTo != "" {
		query.Set("driver_id_any", filter.AssignedTo)
	}
	if filter.Status != "" {
		query.Set("status", filter.Status.String())
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		query.Set("offset", strconv.Itoa(filter.Offset))
	}

	endpoint := "/api/orders"
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var list orderListDTO
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &list); err != nil {
		return nil, 0, err
	}

	snapshot := make([]*order.Order, 0, len(list.Orders))
	for _, dto := range list.Orders {
		o, err := dto.toDomain()
		if err != nil {
			c.logger.WarnContext(ctx, "Quarantined invalid order record",
				"order_id", dto.ID, "status", dto.Status, "error", err)
			continue
		}
		snapshot = append(snapshot, o)
	}
	return snapshot, list.Total, nil
}

// GetOrder fetches a single order by identifier, including its history.
func (c *Client) GetOrder(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	var dto orderDTO
	if err := c.doJSON(ctx, http.MethodGet, "/api/orders/"+id.String(), nil, &dto); err != nil {
		return nil, err
	}

	o, err := dto.toDomain()
	if err != nil {
		return nil, fmt.Errorf("invalid order record %s: %w", dto.ID, err)
	}
	return o, nil
}

// RequestTransition submits a status-transition request. The server's
// refusal comes back as a *ports.TransitionRejectedError carrying the
// server's reason.
func (c *Client) RequestTransition(ctx context.Context, id kernel.UUID, target order.Status, note string) (*order.Order, error) {
	body := statusUpdateDTO{Status: target.String(), DeliveryNotes: note}

	var dto orderDTO
	if err := c.doJSON(ctx, http.MethodPatch, "/api/orders/"+id.String()+"/status", body, &dto); err != nil {
		return nil, err
	}

	o, err := dto.toDomain()
	if err != nil {
		return nil, fmt.Errorf("invalid order record %s: %w", dto.ID, err)
	}
	return o, nil
}

// ListDrivers fetches the registered driver roster.
func (c *Client) ListDrivers(ctx context.Context) ([]viewer.Driver, error) {
	var dtos []driverDTO
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/drivers", nil, &dtos); err != nil {
		return nil, err
	}

	drivers := make([]viewer.Driver, len(dtos))
	for i, dto := range dtos {
		drivers[i] = viewer.Driver{Username: dto.Username, Name: dto.Name}
	}
	return drivers, nil
}

// CreateOrder submits a new order.
func (c *Client) CreateOrder(ctx context.Context, request ports.NewOrderRequest) (*order.Order, error) {
	body := createOrderDTO{
		ClientID:        request.ClientID,
		PickupAddress:   request.PickupAddress,
		DeliveryAddress: request.DeliveryAddress,
		SenderName:      request.SenderName,
		ReceiverName:    request.ReceiverName,
		PackageDetails: packageDetailsDTO{
			Description: request.Package.Description,
			WeightKG:    request.Package.WeightKG,
		},
	}

	var dto orderDTO
	if err := c.doJSON(ctx, http.MethodPost, "/api/orders", body, &dto); err != nil {
		return nil, err
	}

	o, err := dto.toDomain()
	if err != nil {
		return nil, fmt.Errorf("invalid order record %s: %w", dto.ID, err)
	}
	return o, nil
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend request %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.responseError(method, endpoint, resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("backend response %s %s: %w", method, endpoint, err)
		}
	}
	return nil
}

// responseError maps a rejection on the status endpoint to the typed
// transition error; everything else stays a plain transport-level error.
func (c *Client) responseError(method, endpoint string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var detail errorDTO
	reason := ""
	if json.Unmarshal(raw, &detail) == nil {
		reason = detail.Detail
	}
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}

	if method == http.MethodPatch {
		return ports.NewTransitionRejectedError(reason, resp.StatusCode)
	}
	return fmt.Errorf("backend request %s %s failed with %d: %s", method, endpoint, resp.StatusCode, reason)
}
