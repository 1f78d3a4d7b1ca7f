// Package catalog serves product browsing and admin product management.
package catalog

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/suhail1malik/EcommerceStore/internal/cache"
	"github.com/suhail1malik/EcommerceStore/internal/domain"
)

// DefaultPageSize matches the storefront's six-per-page product grid.
const DefaultPageSize = 6

// AdminListLimit caps the unpaged admin product listing.
const AdminListLimit = 12

type Repo interface {
	Insert(ctx context.Context, p *domain.Product) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, keyword string, page, pageSize int) ([]*domain.Product, int64, error)
	Filter(ctx context.Context, categories []string, minPrice, maxPrice float64) ([]*domain.Product, error)
	TopRated(ctx context.Context, limit int) ([]*domain.Product, error)
	Newest(ctx context.Context, limit int) ([]*domain.Product, error)
}

type Service struct {
	repo  Repo
	cache cache.ProductCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewService(repo Repo, cache cache.ProductCache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Page is one page of catalog results.
type Page struct {
	Products []*domain.Product `json:"products"`
	Page     int               `json:"page"`
	Pages    int               `json:"pages"`
	HasMore  bool              `json:"has_more"`
}

func (s *Service) List(ctx context.Context, keyword string, page int) (*Page, error) {
	if page < 1 {
		page = 1
	}

	products, count, err := s.repo.Find(ctx, keyword, page, DefaultPageSize)
	if err != nil {
		return nil, err
	}

	pages := int(math.Ceil(float64(count) / float64(DefaultPageSize)))
	return &Page{
		Products: products,
		Page:     page,
		Pages:    pages,
		HasMore:  int64(page*DefaultPageSize) < count,
	}, nil
}

// Filter narrows the catalog by category and price range for the storefront
// shop page. An empty category list matches every category; a non-positive
// max price means no price bound.
func (s *Service) Filter(ctx context.Context, categories []string, minPrice, maxPrice float64) ([]*domain.Product, error) {
	if maxPrice > 0 && minPrice > maxPrice {
		return nil, ErrInvalidPriceRange
	}
	return s.repo.Filter(ctx, categories, minPrice, maxPrice)
}

// ListAdmin is the unpaged listing the admin dashboard uses, newest first.
func (s *Service) ListAdmin(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.Newest(ctx, AdminListLimit)
}

// Get returns one product, served from cache when possible. Concurrent
// misses for the same id collapse into a single repository read.
func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	v, err, _ := s.sfg.Do(id, func() (interface{}, error) {
		p, err := s.cache.Get(ctx, id)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("product cache get error: %v", err) // log cache error but continue
		}

		p, err = s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		go func() {
			if errSet := s.cache.Set(context.Background(), id, p); errSet != nil {
				log.Printf("product cache set error: %v", errSet)
			}
		}()

		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}

func (s *Service) TopRated(ctx context.Context, limit int) ([]*domain.Product, error) {
	if limit <= 0 {
		limit = 4
	}
	return s.repo.TopRated(ctx, limit)
}

func (s *Service) Newest(ctx context.Context, limit int) ([]*domain.Product, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.repo.Newest(ctx, limit)
}

func (s *Service) Create(ctx context.Context, p *domain.Product) (string, error) {
	if err := validateProduct(p); err != nil {
		return "", err
	}
	return s.repo.Insert(ctx, p)
}

func (s *Service) Update(ctx context.Context, p *domain.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}
	s.invalidate(p.ID)
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(id)
	return nil
}

// Invalidate drops the cached copy of a product; callers that mutate product
// state outside this service (reviews) use it to keep reads fresh.
func (s *Service) Invalidate(id string) {
	s.invalidate(id)
}

func (s *Service) invalidate(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, id); err != nil {
		log.Printf("product cache invalidate error: %v", err)
	}
}

var (
	ErrInvalidProduct    = errors.New("product is missing required fields")
	ErrInvalidPriceRange = errors.New("price range minimum exceeds maximum")
)

func validateProduct(p *domain.Product) error {
	if p.Name == "" || p.Brand == "" || p.Category == "" || p.Description == "" {
		return ErrInvalidProduct
	}
	if p.Price < 0 || p.Stock < 0 {
		return ErrInvalidProduct
	}
	return nil
}
