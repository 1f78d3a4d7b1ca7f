package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suhail1malik/EcommerceStore/internal/domain"
)

type memoryStore struct {
	m      sync.RWMutex
	carts  map[string]*domain.Cart
	setErr error
	getErr error
	sets   int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{carts: make(map[string]*domain.Cart)}
}

func (s *memoryStore) Get(_ context.Context, userID string) (*domain.Cart, error) {
	s.m.RLock()
	defer s.m.RUnlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	c, ok := s.carts[userID]
	if !ok {
		return nil, ErrSnapshotMiss
	}
	cp := *c
	return &cp, nil
}

func (s *memoryStore) Set(_ context.Context, userID string, c *domain.Cart) error {
	s.m.Lock()
	defer s.m.Unlock()
	s.sets++
	if s.setErr != nil {
		return s.setErr
	}
	cp := *c
	s.carts[userID] = &cp
	return nil
}

func (s *memoryStore) Delete(_ context.Context, userID string) error {
	s.m.Lock()
	defer s.m.Unlock()
	delete(s.carts, userID)
	return nil
}

func TestGetReturnsEmptyCartOnMiss(t *testing.T) {
	svc := NewService(newMemoryStore())

	c, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", c.UserID)
	assert.Empty(t, c.Items)
	assert.Equal(t, domain.Totals{}, c.Totals)
}

func TestAddItemRecomputesTotalsAndPersists(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store)

	c, err := svc.AddOrUpdateItem(context.Background(), "u1", domain.LineItem{
		ProductID: "p1", Name: "Widget", Price: 30, Qty: 2,
	})
	require.NoError(t, err)

	assert.Len(t, c.Items, 1)
	assert.Equal(t, 60.0, c.Totals.ItemsPrice)
	assert.Equal(t, 10.0, c.Totals.ShippingPrice)
	assert.Equal(t, 9.0, c.Totals.TaxPrice)
	assert.Equal(t, 79.0, c.Totals.TotalPrice)

	persisted, err := store.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, c.Totals, persisted.Totals)
}

func TestAddItemSameProductReplacesLine(t *testing.T) {
	svc := NewService(newMemoryStore())
	ctx := context.Background()

	_, err := svc.AddOrUpdateItem(ctx, "u1", domain.LineItem{ProductID: "p1", Price: 30, Qty: 2})
	require.NoError(t, err)

	// Re-adding the same product is last-write-wins, not an increment.
	c, err := svc.AddOrUpdateItem(ctx, "u1", domain.LineItem{ProductID: "p1", Price: 30, Qty: 5})
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Qty)
	assert.Equal(t, 150.0, c.Totals.ItemsPrice)
}

func TestRemoveItem(t *testing.T) {
	svc := NewService(newMemoryStore())
	ctx := context.Background()

	_, err := svc.AddOrUpdateItem(ctx, "u1", domain.LineItem{ProductID: "p1", Price: 30, Qty: 1})
	require.NoError(t, err)
	_, err = svc.AddOrUpdateItem(ctx, "u1", domain.LineItem{ProductID: "p2", Price: 80, Qty: 1})
	require.NoError(t, err)

	c, err := svc.RemoveItem(ctx, "u1", "p1")
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, "p2", c.Items[0].ProductID)
	assert.Equal(t, 80.0, c.Totals.ItemsPrice)
}

func TestRemoveMissingItemIsNoop(t *testing.T) {
	svc := NewService(newMemoryStore())
	ctx := context.Background()

	_, err := svc.AddOrUpdateItem(ctx, "u1", domain.LineItem{ProductID: "p1", Price: 30, Qty: 1})
	require.NoError(t, err)

	c, err := svc.RemoveItem(ctx, "u1", "nope")
	require.NoError(t, err)
	assert.Len(t, c.Items, 1)
}

func TestSettersPersistWithoutTouchingTotals(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store)
	ctx := context.Background()

	_, err := svc.AddOrUpdateItem(ctx, "u1", domain.LineItem{ProductID: "p1", Price: 30, Qty: 2})
	require.NoError(t, err)

	c, err := svc.SetShippingAddress(ctx, "u1", domain.ShippingAddress{
		Address: "1 Main St", City: "Almaty", PostalCode: "050000", Country: "KZ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Almaty", c.ShippingAddress.City)
	assert.Equal(t, 79.0, c.Totals.TotalPrice)

	c, err = svc.SetPaymentMethod(ctx, "u1", "Razorpay")
	require.NoError(t, err)
	assert.Equal(t, "Razorpay", c.PaymentMethod)
	assert.Equal(t, 79.0, c.Totals.TotalPrice)
}

func TestClearEmptiesItemsAndZeroesTotals(t *testing.T) {
	svc := NewService(newMemoryStore())
	ctx := context.Background()

	_, err := svc.AddOrUpdateItem(ctx, "u1", domain.LineItem{ProductID: "p1", Price: 30, Qty: 2})
	require.NoError(t, err)

	c, err := svc.Clear(ctx, "u1")
	require.NoError(t, err)

	assert.Empty(t, c.Items)
	assert.Equal(t, domain.Totals{}, c.Totals)
}

func TestPersistenceFailureIsSwallowed(t *testing.T) {
	store := newMemoryStore()
	store.setErr = errors.New("redis down")
	svc := NewService(store)

	// The mutation still succeeds; the failed save is only logged.
	c, err := svc.AddOrUpdateItem(context.Background(), "u1", domain.LineItem{ProductID: "p1", Price: 30, Qty: 2})
	require.NoError(t, err)
	assert.Equal(t, 79.0, c.Totals.TotalPrice)
	assert.Equal(t, 1, store.sets)
}
