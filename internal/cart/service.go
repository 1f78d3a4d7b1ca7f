package cart

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/suhail1malik/EcommerceStore/internal/domain"
	"github.com/suhail1malik/EcommerceStore/internal/pricing"
)

type Service struct {
	store SnapshotStore
	sfg   singleflight.Group // Prevents stampede on concurrent snapshot reads
}

func NewService(store SnapshotStore) *Service {
	return &Service{store: store}
}

// Get returns the user's cart, or a fresh empty cart when no snapshot exists.
func (s *Service) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	v, err, _ := s.sfg.Do(userID, func() (interface{}, error) {
		c, err := s.store.Get(ctx, userID)
		if err != nil {
			if errors.Is(err, ErrSnapshotMiss) {
				return emptyCart(userID), nil
			}
			return nil, err
		}
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Cart), nil
}

// AddOrUpdateItem appends the line item, or replaces the existing one with
// the same product id wholesale (last write wins on qty and every field).
func (s *Service) AddOrUpdateItem(ctx context.Context, userID string, item domain.LineItem) (*domain.Cart, error) {
	return s.mutate(ctx, userID, func(c *domain.Cart) {
		if i := c.FindItem(item.ProductID); i >= 0 {
			c.Items[i] = item
		} else {
			c.Items = append(c.Items, item)
		}
		c.Totals = pricing.ComputeTotals(c.Items)
	})
}

func (s *Service) RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	return s.mutate(ctx, userID, func(c *domain.Cart) {
		if i := c.FindItem(productID); i >= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		}
		c.Totals = pricing.ComputeTotals(c.Items)
	})
}

// SetShippingAddress stores the address without recomputing totals; shipping
// cost depends only on the items price.
func (s *Service) SetShippingAddress(ctx context.Context, userID string, addr domain.ShippingAddress) (*domain.Cart, error) {
	return s.mutate(ctx, userID, func(c *domain.Cart) {
		c.ShippingAddress = addr
	})
}

func (s *Service) SetPaymentMethod(ctx context.Context, userID, method string) (*domain.Cart, error) {
	return s.mutate(ctx, userID, func(c *domain.Cart) {
		c.PaymentMethod = method
	})
}

// Clear empties the cart and zeroes the totals. Called exactly once, right
// after a successful order submission.
func (s *Service) Clear(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.mutate(ctx, userID, func(c *domain.Cart) {
		c.Items = nil
		c.Totals = domain.Totals{}
	})
}

// mutate loads the snapshot, applies fn, and persists the result. Persistence
// is fire-and-forget: a failing store never blocks the mutation, it is logged
// and the updated cart is still returned to the caller.
func (s *Service) mutate(ctx context.Context, userID string, fn func(*domain.Cart)) (*domain.Cart, error) {
	c, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	fn(c)
	c.UpdatedAt = time.Now()

	if err := s.store.Set(ctx, userID, c); err != nil {
		log.Printf("cart snapshot save failed for user %s: %v", userID, err)
	}
	return c, nil
}

func emptyCart(userID string) *domain.Cart {
	return &domain.Cart{
		UserID: userID,
		Items:  nil,
		Totals: domain.Totals{},
	}
}
