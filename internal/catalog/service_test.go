package catalog

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suhail1malik/EcommerceStore/internal/cache"
	"github.com/suhail1malik/EcommerceStore/internal/domain"
	"github.com/suhail1malik/EcommerceStore/internal/repository"
)

type mockRepo struct {
	m        sync.Mutex
	products map[string]*domain.Product
	getCalls int
}

func newMockRepo(products ...*domain.Product) *mockRepo {
	r := &mockRepo{products: make(map[string]*domain.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *mockRepo) Insert(_ context.Context, p *domain.Product) (string, error) {
	r.m.Lock()
	defer r.m.Unlock()
	if p.ID == "" {
		p.ID = "generated"
	}
	r.products[p.ID] = p
	return p.ID, nil
}

func (r *mockRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.m.Lock()
	defer r.m.Unlock()
	r.getCalls++
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return p, nil
}

func (r *mockRepo) Update(_ context.Context, p *domain.Product) error {
	r.m.Lock()
	defer r.m.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return repository.ErrProductNotFound
	}
	r.products[p.ID] = p
	return nil
}

func (r *mockRepo) Delete(_ context.Context, id string) error {
	r.m.Lock()
	defer r.m.Unlock()
	if _, ok := r.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *mockRepo) Find(_ context.Context, _ string, page, pageSize int) ([]*domain.Product, int64, error) {
	r.m.Lock()
	defer r.m.Unlock()
	all := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		all = append(all, p)
	}
	start := pageSize * (page - 1)
	if start >= len(all) {
		return nil, int64(len(all)), nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (r *mockRepo) Filter(_ context.Context, categories []string, minPrice, maxPrice float64) ([]*domain.Product, error) {
	r.m.Lock()
	defer r.m.Unlock()
	var out []*domain.Product
	for _, p := range r.products {
		if len(categories) > 0 && !contains(categories, p.Category) {
			continue
		}
		if maxPrice > 0 && (p.Price < minPrice || p.Price > maxPrice) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *mockRepo) TopRated(_ context.Context, limit int) ([]*domain.Product, error) {
	return nil, nil
}

func (r *mockRepo) Newest(_ context.Context, limit int) ([]*domain.Product, error) {
	r.m.Lock()
	defer r.m.Unlock()
	all := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		all = append(all, p)
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

type mockCache struct {
	m       sync.Mutex
	entries map[string]*domain.Product
	deletes []string
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]*domain.Product)}
}

func (c *mockCache) Get(_ context.Context, id string) (*domain.Product, error) {
	c.m.Lock()
	defer c.m.Unlock()
	p, ok := c.entries[id]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return p, nil
}

func (c *mockCache) Set(_ context.Context, id string, p *domain.Product) error {
	c.m.Lock()
	defer c.m.Unlock()
	c.entries[id] = p
	return nil
}

func (c *mockCache) Delete(_ context.Context, id string) error {
	c.m.Lock()
	defer c.m.Unlock()
	delete(c.entries, id)
	c.deletes = append(c.deletes, id)
	return nil
}

func TestGetServesFromCache(t *testing.T) {
	repo := newMockRepo()
	pc := newMockCache()
	pc.entries["p1"] = &domain.Product{ID: "p1", Name: "Cached Widget"}
	svc := NewService(repo, pc)

	p, err := svc.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Cached Widget", p.Name)
	assert.Equal(t, 0, repo.getCalls)
}

func TestGetFallsThroughOnMiss(t *testing.T) {
	repo := newMockRepo(&domain.Product{ID: "p1", Name: "Widget"})
	svc := NewService(repo, newMockCache())

	p, err := svc.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Widget", p.Name)
	assert.Equal(t, 1, repo.getCalls)
}

func TestGetUnknownProduct(t *testing.T) {
	svc := NewService(newMockRepo(), newMockCache())

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestListPagination(t *testing.T) {
	products := make([]*domain.Product, 0, 8)
	for i := 0; i < 8; i++ {
		products = append(products, &domain.Product{ID: string(rune('a' + i))})
	}
	svc := NewService(newMockRepo(products...), newMockCache())

	page, err := svc.List(context.Background(), "", 1)
	require.NoError(t, err)
	assert.Len(t, page.Products, 6)
	assert.Equal(t, 2, page.Pages)
	assert.True(t, page.HasMore)

	page, err = svc.List(context.Background(), "", 2)
	require.NoError(t, err)
	assert.Len(t, page.Products, 2)
	assert.False(t, page.HasMore)
}

func TestFilterByCategoryAndPrice(t *testing.T) {
	svc := NewService(newMockRepo(
		&domain.Product{ID: "p1", Category: "tools", Price: 25},
		&domain.Product{ID: "p2", Category: "tools", Price: 250},
		&domain.Product{ID: "p3", Category: "toys", Price: 25},
	), newMockCache())
	ctx := context.Background()

	products, err := svc.Filter(ctx, []string{"tools"}, 0, 100)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)

	// No price bound: both tools match.
	products, err = svc.Filter(ctx, []string{"tools"}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, products, 2)

	// No category: price range alone.
	products, err = svc.Filter(ctx, nil, 0, 100)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestFilterRejectsInvertedPriceRange(t *testing.T) {
	svc := NewService(newMockRepo(), newMockCache())

	_, err := svc.Filter(context.Background(), nil, 100, 10)
	assert.ErrorIs(t, err, ErrInvalidPriceRange)
}

func TestListAdminCapsResults(t *testing.T) {
	products := make([]*domain.Product, 0, 15)
	for i := 0; i < 15; i++ {
		products = append(products, &domain.Product{ID: string(rune('a' + i))})
	}
	svc := NewService(newMockRepo(products...), newMockCache())

	got, err := svc.ListAdmin(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, AdminListLimit)
}

func TestUpdateInvalidatesCache(t *testing.T) {
	repo := newMockRepo(&domain.Product{ID: "p1", Name: "Widget"})
	pc := newMockCache()
	pc.entries["p1"] = &domain.Product{ID: "p1", Name: "Stale Widget"}
	svc := NewService(repo, pc)

	err := svc.Update(context.Background(), &domain.Product{
		ID: "p1", Name: "New Widget", Brand: "Acme", Category: "tools", Description: "desc",
	})
	require.NoError(t, err)
	assert.Contains(t, pc.deletes, "p1")
}

func TestCreateValidatesProduct(t *testing.T) {
	svc := NewService(newMockRepo(), newMockCache())

	_, err := svc.Create(context.Background(), &domain.Product{Name: "no brand"})
	assert.ErrorIs(t, err, ErrInvalidProduct)

	_, err = svc.Create(context.Background(), &domain.Product{
		Name: "Widget", Brand: "Acme", Category: "tools", Description: "desc", Price: -1,
	})
	assert.ErrorIs(t, err, ErrInvalidProduct)

	id, err := svc.Create(context.Background(), &domain.Product{
		Name: "Widget", Brand: "Acme", Category: "tools", Description: "desc", Price: 9.99, Stock: 3,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}
