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

type OrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{collection: db.Collection("orders")}
}

func (r *OrderRepository) Insert(ctx context.Context, order *domain.Order) (string, error) {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	order.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return "", fmt.Errorf("failed to insert order: %w", err)
	}
	return order.ID, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// FindByIdempotencyKey returns the order previously created with the given
// client key, or ErrOrderNotFound.
func (r *OrderRepository) FindByIdempotencyKey(ctx context.Context, userID, key string) (*domain.Order, error) {
	var order domain.Order
	filter := bson.M{"user_id": userID, "idempotency_key": key}
	err := r.collection.FindOne(ctx, filter).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to look up idempotency key: %w", err)
	}
	return &order, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cur, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cur.Close(ctx)

	var orders []*domain.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]*domain.Order, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cur, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cur.Close(ctx)

	var orders []*domain.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

// MarkPaid flips the payment status from PENDING to PAID in a single
// conditional update. The filter makes the transition atomic: a concurrent or
// repeated confirmation matches zero documents and gets ErrNoTransition.
func (r *OrderRepository) MarkPaid(ctx context.Context, id string, result domain.PaymentResult, paidAt time.Time) error {
	filter := bson.M{"_id": id, "payment_status": domain.PaymentPending}
	update := bson.M{"$set": bson.M{
		"payment_status": domain.PaymentPaid,
		"paid_at":        paidAt,
		"payment_result": result,
	}}

	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNoTransition
	}
	return nil
}

// MarkDelivered requires the order to be paid and not yet delivered.
func (r *OrderRepository) MarkDelivered(ctx context.Context, id string, deliveredAt time.Time) error {
	filter := bson.M{
		"_id":            id,
		"payment_status": domain.PaymentPaid,
		"is_delivered":   false,
	}
	update := bson.M{"$set": bson.M{
		"is_delivered": true,
		"delivered_at": deliveredAt,
	}}

	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to mark order delivered: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNoTransition
	}
	return nil
}
