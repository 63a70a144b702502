package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/ranimhaddad/tijara-backend/internal/apperr"
	"github.com/ranimhaddad/tijara-backend/internal/notify"
)

const maxAttachments = 5

// Service defines the order workflow business logic. It is the only
// component that coordinates more than one entity: placing an order
// writes the order and reserves stock atomically, then notifies an
// external system best-effort.
type Service interface {
	// PlaceOrder validates the draft, snapshots prices, persists the order
	// with its stock decrement atomically, and emits a notification.
	PlaceOrder(ctx context.Context, ownerID uuid.UUID, req PlaceOrderRequest) (*Order, error)

	// GetOrder returns a single non-deleted order with its lines.
	GetOrder(ctx context.Context, ownerID, id uuid.UUID) (*Order, error)

	// ListOrders returns non-deleted orders, optionally filtered by status
	// and a customer/phone search.
	ListOrders(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Order, error)

	// UpdateStatus enforces the status state machine. Cancelling does not
	// restore stock; re-stocking is an explicit inventory adjustment.
	UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, req UpdateStatusRequest) (*Order, error)

	// SoftDelete tombstones an order. The stock decrement stays in place.
	SoftDelete(ctx context.Context, ownerID, id uuid.UUID) error

	// Restore clears the tombstone.
	Restore(ctx context.Context, ownerID, id uuid.UUID) error

	// Purge irreversibly removes a tombstoned order.
	Purge(ctx context.Context, ownerID, id uuid.UUID) error

	// ListDeleted returns the trash view for orders.
	ListDeleted(ctx context.Context, ownerID uuid.UUID) ([]*Order, error)
}

type service struct {
	repo     Repository
	notifier notify.Notifier
}

// NewService creates a new order service. notifier must not be nil; use
// notify.NopNotifier to disable delivery.
func NewService(repo Repository, notifier notify.Notifier) Service {
	return &service{repo: repo, notifier: notifier}
}

func (s *service) PlaceOrder(ctx context.Context, ownerID uuid.UUID, req PlaceOrderRequest) (*Order, error) {
	// ── Structural validation ─────────────────────────────────────────────
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, apperr.Validation("customer_name", "required")
	}
	if strings.TrimSpace(req.Phone) == "" {
		return nil, apperr.Validation("phone", "required")
	}
	if strings.TrimSpace(req.ShippingLocation) == "" {
		return nil, apperr.Validation("shipping_location", "required")
	}
	if len(req.Lines) == 0 {
		return nil, apperr.Validation("lines", "at least one line item required")
	}
	if len(req.Attachments) > maxAttachments {
		return nil, apperr.Validation("attachments", fmt.Sprintf("at most %d allowed", maxAttachments))
	}

	var deadline *time.Time
	if req.Deadline != "" {
		d, err := time.Parse("2006-01-02", req.Deadline)
		if err != nil {
			return nil, apperr.Validation("deadline", "must be an ISO date (YYYY-MM-DD)")
		}
		deadline = &d
	}

	// ── Resolve products, validate stock, snapshot prices ────────────────
	// The repository re-checks stock with a conditional decrement inside
	// the transaction; this pass exists to reject early with the product
	// named, before anything is written.
	var lines []*Line
	total := decimal.Zero
	for _, dl := range req.Lines {
		if dl.Quantity <= 0 {
			return nil, apperr.Validation("quantity", "must be greater than zero")
		}
		pid, err := uuid.Parse(dl.ProductID)
		if err != nil {
			return nil, apperr.Validation("product_id", "must be a valid UUID")
		}
		p, err := s.repo.GetProductRef(ctx, ownerID, pid)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", dl.ProductID, err)
		}
		if dl.Quantity > p.StockQuantity {
			return nil, fmt.Errorf("product %q: %w", p.Name, apperr.ErrInsufficientStock)
		}

		lineTotal := p.UnitPrice.Mul(decimal.NewFromInt(int64(dl.Quantity)))
		total = total.Add(lineTotal)
		lines = append(lines, &Line{
			ID:          uuid.New(),
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    dl.Quantity,
			UnitPrice:   p.UnitPrice,
			LineTotal:   lineTotal,
		})
	}

	o := &Order{
		ID:               uuid.New(),
		OwnerID:          ownerID,
		CustomerName:     strings.TrimSpace(req.CustomerName),
		Phone:            strings.TrimSpace(req.Phone),
		ShippingLocation: strings.TrimSpace(req.ShippingLocation),
		Deadline:         deadline,
		Lines:            lines,
		TotalAmount:      total,
		Status:           StatusPending,
		Notes:            req.Notes,
		Attachments:      req.Attachments,
		CreatedAt:        time.Now().UTC(),
	}

	// ── Persist order + stock decrement atomically ────────────────────────
	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	// ── Notify, detached from the request ─────────────────────────────────
	// Delivery failure never reverses the order.
	go s.dispatchNotification(buildNotification(o))

	return o, nil
}

func (s *service) dispatchNotification(n *notify.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.notifier.OrderPlaced(ctx, n); err != nil {
		log.Error().Str("order_id", n.OrderID).Err(err).Msg("order notification dropped")
	}
}

func buildNotification(o *Order) *notify.Notification {
	products := make([]notify.ProductLine, 0, len(o.Lines))
	for _, l := range o.Lines {
		products = append(products, notify.ProductLine{
			ID:       l.ProductID.String(),
			Name:     l.ProductName,
			Price:    l.UnitPrice.InexactFloat64(),
			Quantity: l.Quantity,
			Total:    l.LineTotal.InexactFloat64(),
		})
	}
	var deadline *string
	if o.Deadline != nil {
		d := o.Deadline.Format("2006-01-02")
		deadline = &d
	}
	attachments := o.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	return &notify.Notification{
		OrderID:          o.ID.String(),
		CustomerName:     o.CustomerName,
		PhoneNumber:      o.Phone,
		ShippingLocation: o.ShippingLocation,
		Deadline:         deadline,
		Products:         products,
		Attachments:      attachments,
		Notes:            o.Notes,
		TotalPrice:       o.TotalAmount.InexactFloat64(),
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
	}
}

func (s *service) GetOrder(ctx context.Context, ownerID, id uuid.UUID) (*Order, error) {
	o, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if o.Deleted {
		return nil, apperr.ErrNotFound
	}
	return o, nil
}

func (s *service) ListOrders(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Order, error) {
	return s.repo.List(ctx, ownerID, filter)
}

func (s *service) UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, req UpdateStatusRequest) (*Order, error) {
	o, err := s.GetOrder(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	next := Status(req.Status)
	if next != StatusPending && next != StatusCompleted && next != StatusCancelled {
		return nil, apperr.Validation("status", "must be pending, completed, or cancelled")
	}
	if !CanTransition(o.Status, next) {
		return nil, fmt.Errorf("%s to %s: %w", o.Status, next, apperr.ErrInvalidTransition)
	}

	if err := s.repo.UpdateStatus(ctx, ownerID, id, next); err != nil {
		return nil, err
	}
	o.Status = next
	return o, nil
}

func (s *service) SoftDelete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.SetDeleted(ctx, ownerID, id, true)
}

func (s *service) Restore(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.SetDeleted(ctx, ownerID, id, false)
}

func (s *service) Purge(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.Purge(ctx, ownerID, id)
}

func (s *service) ListDeleted(ctx context.Context, ownerID uuid.UUID) ([]*Order, error) {
	return s.repo.ListDeleted(ctx, ownerID)
}
