package backendhttp

import (
	"time"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
)

// Wire representations of the gateway's JSON contract.

type packageDetailsDTO struct {
	Description string  `json:"description,omitempty"`
	WeightKG    float64 `json:"weight_kg,omitempty"`
}

type historyEntryDTO struct {
	OldStatus string    `json:"old_status,omitempty"`
	NewStatus string    `json:"new_status"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type orderDTO struct {
	ID                  string            `json:"id"`
	ClientID            string            `json:"client_id"`
	Status              string            `json:"status"`
	PickupAddress       string            `json:"pickup_address"`
	DeliveryAddress     string            `json:"delivery_address"`
	SenderName          string            `json:"sender_name,omitempty"`
	ReceiverName        string            `json:"receiver_name,omitempty"`
	PackageDetails      packageDetailsDTO `json:"package_details"`
	PickupDriverID      string            `json:"pickup_driver_id,omitempty"`
	DeliveryDriverID    string            `json:"delivery_driver_id,omitempty"`
	DeliveryNotes       string            `json:"delivery_notes,omitempty"`
	DeliveryAttempts    int               `json:"delivery_attempts"`
	MaxDeliveryAttempts int               `json:"max_delivery_attempts"`
	CreatedAt           time.Time         `json:"created_at"`
	StatusHistory       []historyEntryDTO `json:"status_history,omitempty"`
}

type orderListDTO struct {
	Orders []orderDTO `json:"orders"`
	Total  int        `json:"total"`
}

type driverDTO struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
}

type statusUpdateDTO struct {
	Status        string `json:"status"`
	DeliveryNotes string `json:"delivery_notes,omitempty"`
}

type createOrderDTO struct {
	ClientID        string            `json:"client_id"`
	PickupAddress   string            `json:"pickup_address"`
	DeliveryAddress string            `json:"delivery_address"`
	SenderName      string            `json:"sender_name,omitempty"`
	ReceiverName    string            `json:"receiver_name,omitempty"`
	PackageDetails  packageDetailsDTO `json:"package_details"`
}

type errorDTO struct {
	Detail string `json:"detail"`
}

// toDomain validates a wire record into the domain mirror. Any invariant
// violation — unrecognized status included — makes the whole record invalid.
func (d orderDTO) toDomain() (*order.Order, error) {
	id, err := kernel.UUIDFromString(d.ID)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(d.Status)
	if err != nil {
		return nil, err
	}

	history := make([]order.HistoryEntry, 0, len(d.StatusHistory))
	for _, entry := range d.StatusHistory {
		entryStatus, histErr := order.ParseStatus(entry.NewStatus)
		if histErr != nil {
			return nil, histErr
		}
		history = append(history, order.HistoryEntry{
			Status:    entryStatus,
			Detail:    entry.Details,
			Timestamp: entry.CreatedAt,
		})
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:              id,
		ClientID:        d.ClientID,
		Status:          status,
		PickupAddress:   d.PickupAddress,
		DeliveryAddress: d.DeliveryAddress,
		SenderName:      d.SenderName,
		ReceiverName:    d.ReceiverName,
		Package: order.Package{
			Description: d.PackageDetails.Description,
			WeightKG:    d.PackageDetails.WeightKG,
		},
		PickupDriverID:      d.PickupDriverID,
		DeliveryDriverID:    d.DeliveryDriverID,
		DeliveryNotes:       d.DeliveryNotes,
		DeliveryAttempts:    d.DeliveryAttempts,
		MaxDeliveryAttempts: d.MaxDeliveryAttempts,
		CreatedAt:           d.CreatedAt,
		History:             history,
	})
}
