// Package order implements the order lifecycle: a checkout submission becomes
// an immutable order record that then moves PENDING -> PAID -> delivered.
// No transition ever moves backwards.
package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/suhail1malik/EcommerceStore/internal/domain"
	"github.com/suhail1malik/EcommerceStore/internal/events"
	"github.com/suhail1malik/EcommerceStore/internal/payment"
	"github.com/suhail1malik/EcommerceStore/internal/pricing"
	"github.com/suhail1malik/EcommerceStore/internal/repository"
)

// Repo is the persistence the lifecycle needs, defined here and implemented
// by repository.OrderRepository.
type Repo interface {
	Insert(ctx context.Context, order *domain.Order) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	FindByIdempotencyKey(ctx context.Context, userID, key string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	ListAll(ctx context.Context) ([]*domain.Order, error)
	MarkPaid(ctx context.Context, id string, result domain.PaymentResult, paidAt time.Time) error
	MarkDelivered(ctx context.Context, id string, deliveredAt time.Time) error
}

type Service struct {
	repo      Repo
	gateway   payment.Gateway
	publisher events.Publisher
}

func NewService(repo Repo, gateway payment.Gateway, publisher events.Publisher) *Service {
	return &Service{
		repo:      repo,
		gateway:   gateway,
		publisher: publisher,
	}
}

// CheckoutRequest is the cart snapshot submitted at checkout. Totals are the
// client-computed values and are verified, never trusted; nil means the
// client sent none.
type CheckoutRequest struct {
	Items          []domain.LineItem
	ShippingAddr   domain.ShippingAddress
	PaymentMethod  string
	Totals         *domain.Totals
	IdempotencyKey string
}

// Confirmation carries the gateway callback fields for payment verification.
type Confirmation struct {
	GatewayOrderID string
	PaymentID      string
	Signature      string
}

// PlaceOrder validates the submission, recomputes the totals server-side and
// persists the immutable order record. When the client sent an idempotency
// key it has used before, the original order is returned instead of creating
// a second one.
func (s *Service) PlaceOrder(ctx context.Context, userID string, req CheckoutRequest) (*domain.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	if req.IdempotencyKey != "" {
		existing, err := s.repo.FindByIdempotencyKey(ctx, userID, req.IdempotencyKey)
		if err == nil {
			log.Printf("duplicate checkout detected, idempotency_key=%s order_id=%s", req.IdempotencyKey, existing.ID)
			return existing, nil
		}
		if !errors.Is(err, repository.ErrOrderNotFound) {
			return nil, fmt.Errorf("failed to check idempotency: %w", err)
		}
	}

	totals := pricing.ComputeTotals(req.Items)
	if req.Totals != nil && !totalsEqual(*req.Totals, totals) {
		return nil, ErrTotalsMismatch
	}

	o := &domain.Order{
		UserID:         userID,
		IdempotencyKey: req.IdempotencyKey,
		Items:          append([]domain.LineItem(nil), req.Items...),
		ShippingAddr:   req.ShippingAddr,
		PaymentMethod:  req.PaymentMethod,
		Totals:         totals,
		PaymentStatus:  domain.PaymentPending,
	}

	id, err := s.repo.Insert(ctx, o)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	o.ID = id

	s.publish(ctx, events.TopicOrderCreated, o)
	return o, nil
}

// CreateGatewayOrder registers the charge with the payment gateway. The
// amount is derived from the order's stored (server-computed) total converted
// to minor units; nothing from the client reaches the gateway.
func (s *Service) CreateGatewayOrder(ctx context.Context, orderID string) (*payment.GatewayOrder, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	amountMinor := domain.MinorUnits(o.Totals.TotalPrice)
	receipt := fmt.Sprintf("rcpt_%s", shortID(o.ID))
	return s.gateway.CreateOrder(ctx, amountMinor, "", receipt)
}

// ConfirmPayment applies the payment transition. A tampered signature is
// rejected before any state is touched. Re-confirming an already paid order
// is a no-op that returns the stored order: gateways redeliver webhooks, and
// the first application must stay the only one with side effects.
func (s *Service) ConfirmPayment(ctx context.Context, orderID string, conf Confirmation) (*domain.Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// Without gateway credentials no signature can be checked, so nothing
	// can be confirmed. This is an availability problem, not a bad signature.
	if !s.gateway.Available() {
		return nil, payment.ErrGatewayUnavailable
	}
	if !s.gateway.VerifySignature(conf.GatewayOrderID, conf.PaymentID, conf.Signature) {
		return nil, ErrInvalidSignature
	}

	if o.IsPaid() {
		return o, nil
	}

	now := time.Now()
	result := domain.PaymentResult{
		GatewayOrderID: conf.GatewayOrderID,
		PaymentID:      conf.PaymentID,
		Signature:      conf.Signature,
		VerifiedAt:     now,
	}

	err = s.repo.MarkPaid(ctx, orderID, result, now)
	if errors.Is(err, repository.ErrNoTransition) {
		// Lost a race with a concurrent confirmation; treat as the no-op case.
		return s.repo.GetByID(ctx, orderID)
	}
	if err != nil {
		return nil, err
	}

	o.PaymentStatus = domain.PaymentPaid
	o.PaidAt = &now
	o.PaymentResult = &result

	s.publish(ctx, events.TopicOrderPaid, o)
	return o, nil
}

// MarkDelivered applies the delivery transition. Only paid, undelivered
// orders qualify; the httpapi layer restricts the call to admins.
func (s *Service) MarkDelivered(ctx context.Context, orderID string) (*domain.Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsPaid() {
		return nil, ErrNotPaid
	}
	if o.IsDelivered {
		return nil, ErrAlreadyDelivered
	}

	now := time.Now()
	err = s.repo.MarkDelivered(ctx, orderID, now)
	if errors.Is(err, repository.ErrNoTransition) {
		return nil, ErrAlreadyDelivered
	}
	if err != nil {
		return nil, err
	}

	o.IsDelivered = true
	o.DeliveredAt = &now

	s.publish(ctx, events.TopicOrderDelivered, o)
	return o, nil
}

// Get returns an order to its owner or to an admin.
func (s *Service) Get(ctx context.Context, orderID, userID string, isAdmin bool) (*domain.Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && o.UserID != userID {
		return nil, ErrForbidden
	}
	return o, nil
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) publish(ctx context.Context, topic string, o *domain.Order) {
	if err := s.publisher.PublishEvent(ctx, topic, o.ID, o); err != nil {
		log.Printf("failed to publish %s for order %s: %v", topic, o.ID, err)
	}
}

func validate(req CheckoutRequest) error {
	for _, it := range req.Items {
		if it.ProductID == "" {
			return fmt.Errorf("%w: line item missing product id", ErrValidation)
		}
		if it.Qty < 1 {
			return fmt.Errorf("%w: line item qty must be at least 1", ErrValidation)
		}
		if it.Price < 0 || math.IsNaN(it.Price) || math.IsInf(it.Price, 0) {
			return fmt.Errorf("%w: line item price must be a non-negative amount", ErrValidation)
		}
	}
	if req.ShippingAddr.Address == "" || req.ShippingAddr.City == "" || req.ShippingAddr.Country == "" {
		return fmt.Errorf("%w: shipping address is incomplete", ErrValidation)
	}
	if req.PaymentMethod == "" {
		return fmt.Errorf("%w: payment method is required", ErrValidation)
	}
	return nil
}

func totalsEqual(a, b domain.Totals) bool {
	return a.ItemsPrice == b.ItemsPrice &&
		a.ShippingPrice == b.ShippingPrice &&
		a.TaxPrice == b.TaxPrice &&
		a.TotalPrice == b.TotalPrice
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
