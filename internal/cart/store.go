// Package cart holds the per-user cart: line items, shipping address and
// payment method, with totals recomputed on every item mutation.
package cart

import (
	"context"
	"errors"

	"github.com/suhail1malik/EcommerceStore/internal/domain"
)

// SnapshotStore is the durable storage capability the cart persists into.
// Consumers define this interface, not the Redis implementation; tests swap
// in an in-memory fake.
type SnapshotStore interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Set(ctx context.Context, userID string, cart *domain.Cart) error
	Delete(ctx context.Context, userID string) error
}

var ErrSnapshotMiss = errors.New("cart snapshot not found")
