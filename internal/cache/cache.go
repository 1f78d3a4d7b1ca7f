// Package cache fronts product reads with Redis. A miss falls through to the
// repository; writes invalidate.
package cache

import (
	"context"
	"errors"

	"github.com/suhail1malik/EcommerceStore/internal/domain"
)

type ProductCache interface {
	Get(ctx context.Context, productID string) (*domain.Product, error)
	Set(ctx context.Context, productID string, p *domain.Product) error
	Delete(ctx context.Context, productID string) error
}

var ErrCacheMiss = errors.New("cache miss")
