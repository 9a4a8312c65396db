package backendstub

import (
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// HistoryRecord is one audit-trail entry of an order.
type HistoryRecord struct {
	OldStatus string    `json:"old_status,omitempty"`
	NewStatus string    `json:"new_status"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderRecord is the backend's authoritative order row as it appears on the
// wire.
type OrderRecord struct {
	ID                  string          `json:"id"`
	ClientID            string          `json:"client_id"`
	Status              string          `json:"status"`
	PickupAddress       string          `json:"pickup_address"`
	DeliveryAddress     string          `json:"delivery_address"`
	SenderName          string          `json:"sender_name,omitempty"`
	ReceiverName        string          `json:"receiver_name,omitempty"`
	PackageDetails      PackageRecord   `json:"package_details"`
	PickupDriverID      string          `json:"pickup_driver_id,omitempty"`
	DeliveryDriverID    string          `json:"delivery_driver_id,omitempty"`
	DeliveryNotes       string          `json:"delivery_notes,omitempty"`
	DeliveryAttempts    int             `json:"delivery_attempts"`
	MaxDeliveryAttempts int             `json:"max_delivery_attempts"`
	CreatedAt           time.Time       `json:"created_at"`
	StatusHistory       []HistoryRecord `json:"status_history"`
}

// PackageRecord describes the parcel.
type PackageRecord struct {
	Description string  `json:"description,omitempty"`
	WeightKG    float64 `json:"weight_kg,omitempty"`
}

// DriverRecord is a roster entry.
type DriverRecord struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// ListFilter narrows a listing. Zero values mean no filter.
type ListFilter struct {
	ClientID  string
	DriverAny string
	Status    string
	Limit     int
	Offset    int
}

// Rejection is a request the backend refuses, rendered as
// {"detail": …} with the given HTTP code.
type Rejection struct {
	Code   int
	Detail string
}

func (r *Rejection) Error() string {
	return r.Detail
}

func reject(code int, format string, args ...any) *Rejection {
	return &Rejection{Code: code, Detail: fmt.Sprintf(format, args...)}
}

// updatableStatuses is what PATCH /api/orders/:id/status accepts. Earlier
// pipeline states are applied only by the backend's own intake processing.
var updatableStatuses = map[string]bool{
	"PICKING_UP":         true,
	"PICKED_UP":          true,
	"AT_WAREHOUSE":       true,
	"OUT_FOR_DELIVERY":   true,
	"DELIVERY_ATTEMPTED": true,
	"DELIVERED":          true,
	"FAILED":             true,
	"CANCELLED":          true,
}

func isTerminalStatus(status string) bool {
	return status == "DELIVERED" || status == "FAILED" || status == "CANCELLED"
}

const defaultMaxAttempts = 3

// Store is the backend's mutex-guarded in-memory state: orders, the driver
// roster, and the held-attempt queue used by tests that want to observe the
// transient DELIVERY_ATTEMPTED state before the backend resolves it.
type Store struct {
	mu           sync.Mutex
	orders       map[string]*OrderRecord
	drivers      []DriverRecord
	holdAttempts bool
	held         []string
	now          func() time.Time
}

// NewStore creates an empty store with the given driver roster.
func NewStore(drivers ...DriverRecord) *Store {
	return &Store{
		orders:  make(map[string]*OrderRecord),
		drivers: drivers,
		now:     time.Now,
	}
}

// HoldAttemptResolution defers the DELIVERY_ATTEMPTED branch: reported
// attempts stay in the transient state until ResolveHeldAttempts is called.
func (s *Store) HoldAttemptResolution(hold bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holdAttempts = hold
}

// Seed installs an order, filling in id, timestamps, attempt ceiling, and an
// initial history entry where absent. Returns the stored copy.
func (s *Store) Seed(record OrderRecord) OrderRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Status == "" {
		record.Status = "PENDING"
	}
	if record.MaxDeliveryAttempts == 0 {
		record.MaxDeliveryAttempts = defaultMaxAttempts
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = s.now()
	}
	if len(record.StatusHistory) == 0 {
		record.StatusHistory = []HistoryRecord{{
			NewStatus: record.Status,
			Details:   "Order created",
			CreatedAt: record.CreatedAt,
		}}
	}

	stored := record
	s.orders[stored.ID] = &stored
	return stored
}

// Drivers returns the roster.
func (s *Store) Drivers() []DriverRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]DriverRecord(nil), s.drivers...)
}

// List returns orders matching the filter, newest first, plus the total
// match count before pagination.
func (s *Store) List(filter ListFilter) ([]OrderRecord, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]OrderRecord, 0, len(s.orders))
	for _, record := range s.orders {
		if filter.ClientID != "" && record.ClientID != filter.ClientID {
			continue
		}
		if filter.DriverAny != "" &&
			record.PickupDriverID != filter.DriverAny &&
			record.DeliveryDriverID != filter.DriverAny {
			continue
		}
		if filter.Status != "" && record.Status != filter.Status {
			continue
		}
		matched = append(matched, *record)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := len(matched)
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total
}

// Get returns the order with the given id.
func (s *Store) Get(id string) (OrderRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.orders[id]
	if !ok {
		return OrderRecord{}, reject(http.StatusNotFound, "Order %s not found", id)
	}
	return *record, nil
}

// Create stores a fresh PENDING order.
func (s *Store) Create(clientID, pickupAddress, deliveryAddress, senderName, receiverName string, pkg PackageRecord) OrderRecord {
	return s.Seed(OrderRecord{
		ClientID:        clientID,
		Status:          "PENDING",
		PickupAddress:   pickupAddress,
		DeliveryAddress: deliveryAddress,
		SenderName:      senderName,
		ReceiverName:    receiverName,
		PackageDetails:  pkg,
	})
}

// UpdateStatus applies a requested transition the way the real backend does:
// validates the target, runs auto-assignment on AT_WAREHOUSE, counts and
// resolves delivery attempts, and appends history.
func (s *Store) UpdateStatus(id, target, notes string) (OrderRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !updatableStatuses[target] {
		return OrderRecord{}, reject(http.StatusBadRequest, "Status %s is not updatable", target)
	}

	record, ok := s.orders[id]
	if !ok {
		return OrderRecord{}, reject(http.StatusNotFound, "Order %s not found", id)
	}
	if isTerminalStatus(record.Status) {
		return OrderRecord{}, reject(http.StatusBadRequest,
			"Invalid status transition: order is already %s", record.Status)
	}
	if target == "CANCELLED" && record.Status == target {
		return OrderRecord{}, reject(http.StatusBadRequest, "Order is already cancelled")
	}

	requested := target
	switch target {
	case "AT_WAREHOUSE":
		// the package waits at the warehouse with a delivery driver
		// pre-assigned; the driver moves it out manually
		if record.DeliveryDriverID == "" {
			record.DeliveryDriverID = s.leastLoadedDeliveryDriver()
		}
	case "DELIVERY_ATTEMPTED":
		record.DeliveryAttempts++
		if s.holdAttempts {
			s.held = append(s.held, record.ID)
		} else {
			target = s.resolveAttempt(record)
		}
	}

	s.applyTransition(record, target, notes, "Driver update: "+requested)
	return *record, nil
}

// ResolveHeldAttempts finishes every deferred DELIVERY_ATTEMPTED: back to
// AT_WAREHOUSE while attempts remain, FAILED once exhausted. Returns the
// changed records so the caller can broadcast them.
func (s *Store) ResolveHeldAttempts() []OrderRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	resolved := make([]OrderRecord, 0, len(s.held))
	for _, id := range s.held {
		record, ok := s.orders[id]
		if !ok || record.Status != "DELIVERY_ATTEMPTED" {
			continue
		}
		target := s.resolveAttempt(record)
		s.applyTransition(record, target, "", "Attempt resolved")
		resolved = append(resolved, *record)
	}
	s.held = nil
	return resolved
}

// resolveAttempt decides the attempted branch from the counter. The driver
// assignment is kept either way so a retry goes back to the same driver.
func (s *Store) resolveAttempt(record *OrderRecord) string {
	if record.DeliveryAttempts < record.MaxDeliveryAttempts {
		return "AT_WAREHOUSE"
	}
	return "FAILED"
}

func (s *Store) applyTransition(record *OrderRecord, target, notes, details string) {
	old := record.Status
	record.Status = target
	if notes != "" {
		record.DeliveryNotes = notes
	}
	record.StatusHistory = append(record.StatusHistory, HistoryRecord{
		OldStatus: old,
		NewStatus: target,
		Details:   details,
		CreatedAt: s.now(),
	})
}

// leastLoadedDeliveryDriver picks the roster driver with the fewest orders
// in the active delivery phase.
func (s *Store) leastLoadedDeliveryDriver() string {
	if len(s.drivers) == 0 {
		return ""
	}

	loads := make(map[string]int, len(s.drivers))
	for _, driver := range s.drivers {
		loads[driver.Username] = 0
	}
	for _, record := range s.orders {
		if record.Status != "OUT_FOR_DELIVERY" && record.Status != "DELIVERY_ATTEMPTED" {
			continue
		}
		if _, ok := loads[record.DeliveryDriverID]; ok {
			loads[record.DeliveryDriverID]++
		}
	}

	selected := s.drivers[0].Username
	for _, driver := range s.drivers[1:] {
		if loads[driver.Username] < loads[selected] {
			selected = driver.Username
		}
	}
	return selected
}
