// Package review adds product reviews and keeps the product's aggregate
// rating consistent with the full review list.
package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/suhail1malik/EcommerceStore/internal/domain"
	"github.com/suhail1malik/EcommerceStore/internal/repository"
)

var (
	ErrAlreadyReviewed = errors.New("product already reviewed")
	ErrInvalidRating   = errors.New("rating must be an integer between 1 and 5")
)

// Repo is the slice of product persistence the review flow needs.
type Repo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	PushReview(ctx context.Context, productID string, review domain.Review) error
	SetRating(ctx context.Context, productID string, numReviews int, rating float64) error
}

type Service struct {
	repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

// Add appends the user's review and recomputes the aggregate. The duplicate
// guard lives in the storage layer ($ne filter on the reviewer), so two
// concurrent submissions from the same user cannot both land.
func (s *Service) Add(ctx context.Context, productID string, user *domain.User, rating int, comment string) (*domain.Product, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	r := domain.Review{
		UserID:    user.ID,
		Name:      user.Username,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}

	err := s.repo.PushReview(ctx, productID, r)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyReviewed) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	// Recompute from the full list, never incrementally; the stored aggregate
	// must always match the embedded reviews.
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload product after review: %w", err)
	}

	num, mean := Aggregate(p.Reviews)
	if err := s.repo.SetRating(ctx, productID, num, mean); err != nil {
		return nil, err
	}

	p.NumReviews = num
	p.Rating = mean
	return p, nil
}

// Aggregate returns the review count and the mean rating computed fresh from
// the list.
func Aggregate(reviews []domain.Review) (int, float64) {
	if len(reviews) == 0 {
		return 0, 0
	}

	sum := decimal.Zero
	for _, r := range reviews {
		sum = sum.Add(decimal.NewFromInt(int64(r.Rating)))
	}
	mean, _ := sum.Div(decimal.NewFromInt(int64(len(reviews)))).Round(2).Float64()
	return len(reviews), mean
}
