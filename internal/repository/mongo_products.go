package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/suhail1malik/EcommerceStore/internal/domain"
)

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{collection: db.Collection("products")}
}

func (r *ProductRepository) Insert(ctx context.Context, p *domain.Product) (string, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now()
	if p.Reviews == nil {
		p.Reviews = []domain.Review{}
	}

	_, err := r.collection.InsertOne(ctx, p)
	if err != nil {
		return "", fmt.Errorf("failed to insert product: %w", err)
	}
	return p.ID, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	update := bson.M{"$set": bson.M{
		"name":        p.Name,
		"brand":       p.Brand,
		"category":    p.Category,
		"description": p.Description,
		"image":       p.Image,
		"price":       p.Price,
		"stock":       p.Stock,
	}}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": p.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Find returns one page of products matching the optional keyword, plus the
// total match count for pagination.
func (r *ProductRepository) Find(ctx context.Context, keyword string, page, pageSize int) ([]*domain.Product, int64, error) {
	filter := bson.M{}
	if keyword != "" {
		filter["name"] = bson.M{"$regex": keyword, "$options": "i"}
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	opts := options.Find().
		SetSkip(int64(pageSize * (page - 1))).
		SetLimit(int64(pageSize))
	cur, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find products: %w", err)
	}
	defer cur.Close(ctx)

	var products []*domain.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, count, nil
}

// Filter returns every product in any of the given categories and, when
// maxPrice is positive, inside the price range. No pagination.
func (r *ProductRepository) Filter(ctx context.Context, categories []string, minPrice, maxPrice float64) ([]*domain.Product, error) {
	filter := bson.M{}
	if len(categories) > 0 {
		filter["category"] = bson.M{"$in": categories}
	}
	if maxPrice > 0 {
		filter["price"] = bson.M{"$gte": minPrice, "$lte": maxPrice}
	}

	cur, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to filter products: %w", err)
	}
	defer cur.Close(ctx)

	var products []*domain.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) TopRated(ctx context.Context, limit int) ([]*domain.Product, error) {
	return r.sorted(ctx, bson.M{"rating": -1}, limit)
}

func (r *ProductRepository) Newest(ctx context.Context, limit int) ([]*domain.Product, error) {
	return r.sorted(ctx, bson.M{"created_at": -1}, limit)
}

func (r *ProductRepository) sorted(ctx context.Context, sort bson.M, limit int) ([]*domain.Product, error) {
	opts := options.Find().SetSort(sort).SetLimit(int64(limit))
	cur, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	defer cur.Close(ctx)

	var products []*domain.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// PushReview appends a review only if the user has not reviewed this product
// yet. The "$ne" filter makes the one-review-per-user guard atomic at the
// storage layer: two concurrent submissions cannot both match.
func (r *ProductRepository) PushReview(ctx context.Context, productID string, review domain.Review) error {
	filter := bson.M{
		"_id":             productID,
		"reviews.user_id": bson.M{"$ne": review.UserID},
	}
	update := bson.M{"$push": bson.M{"reviews": review}}

	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to push review: %w", err)
	}
	if res.MatchedCount == 0 {
		// Either the product does not exist or this user already reviewed it.
		if _, getErr := r.GetByID(ctx, productID); getErr != nil {
			return getErr
		}
		return ErrAlreadyReviewed
	}
	return nil
}

// SetRating rewrites the derived aggregate fields.
func (r *ProductRepository) SetRating(ctx context.Context, productID string, numReviews int, rating float64) error {
	update := bson.M{"$set": bson.M{
		"num_reviews": numReviews,
		"rating":      rating,
	}}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": productID}, update)
	if err != nil {
		return fmt.Errorf("failed to set product rating: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}
