package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// validTransitions defines the allowed status state machine. Completed and
// cancelled orders can both be reopened back to pending.
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusCompleted, StatusCancelled},
	StatusCompleted: {StatusPending},
	StatusCancelled: {StatusPending},
}

// CanTransition reports whether an order may move from current to next.
func CanTransition(current, next Status) bool {
	for _, s := range validTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

// Order is a customer order. Line prices and the total are snapshotted at
// placement time and never recomputed from live product prices.
type Order struct {
	ID               uuid.UUID       `json:"id"`
	OwnerID          uuid.UUID       `json:"owner_id"`
	CustomerName     string          `json:"customer_name"`
	Phone            string          `json:"phone"`
	ShippingLocation string          `json:"shipping_location"`
	Deadline         *time.Time      `json:"deadline,omitempty"`
	Lines            []*Line         `json:"lines,omitempty"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	Status           Status          `json:"status"`
	Notes            string          `json:"notes,omitempty"`
	Attachments      []string        `json:"attachments,omitempty"` // filenames, max 5
	Deleted          bool            `json:"deleted"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// Line is a single line item within an order.
type Line struct {
	ID          uuid.UUID       `json:"id"`
	OrderID     uuid.UUID       `json:"order_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"` // snapshot
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"` // snapshot
	LineTotal   decimal.Decimal `json:"line_total"`
}

// DraftLine is one requested product inside a PlaceOrderRequest.
type DraftLine struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// PlaceOrderRequest is the payload for creating a new order.
type PlaceOrderRequest struct {
	CustomerName     string      `json:"customer_name" validate:"required"`
	Phone            string      `json:"phone" validate:"required"`
	ShippingLocation string      `json:"shipping_location" validate:"required"`
	Deadline         string      `json:"deadline,omitempty"` // ISO date, optional
	Lines            []DraftLine `json:"lines" validate:"required,min=1,dive"`
	Notes            string      `json:"notes,omitempty"`
	Attachments      []string    `json:"attachments,omitempty" validate:"max=5"`
}

// UpdateStatusRequest is the payload for moving an order through its
// state machine.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending completed cancelled"`
}

// ListFilter narrows ListOrders results.
type ListFilter struct {
	Status Status // empty = all statuses
	Search string // substring match on customer name or phone
}
