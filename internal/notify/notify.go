// Package notify delivers order notifications to an external system.
// Delivery is best-effort and at-most-once from the order workflow's point
// of view: a failed notification never reverses a persisted order.
package notify

import "context"

// Notification is the payload sent once per successfully placed order.
type Notification struct {
	OrderID          string        `json:"orderId"`
	CustomerName     string        `json:"customerName"`
	PhoneNumber      string        `json:"phoneNumber"`
	ShippingLocation string        `json:"shippingLocation"`
	Deadline         *string       `json:"deadline"` // ISO date or null
	Products         []ProductLine `json:"products"`
	Attachments      []string      `json:"attachments"` // filenames only
	Notes            string        `json:"notes"`
	TotalPrice       float64       `json:"totalPrice"`
	Timestamp        string        `json:"timestamp"` // ISO-8601
}

// ProductLine describes one ordered product inside a Notification.
type ProductLine struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
}

// Notifier is the outbound boundary the order workflow emits through.
// Implementations decide transport and retry policy.
type Notifier interface {
	OrderPlaced(ctx context.Context, n *Notification) error
}

// NopNotifier discards every notification. Used when no webhook URL is
// configured and as the default in tests.
type NopNotifier struct{}

func (NopNotifier) OrderPlaced(context.Context, *Notification) error { return nil }
