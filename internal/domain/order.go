package domain

import "time"

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
)

// String representation (for logging)
func (s PaymentStatus) String() string {
	return string(s)
}

// PaymentResult holds the gateway fields captured when a payment is
// confirmed.
type PaymentResult struct {
	GatewayOrderID string    `bson:"gateway_order_id" json:"gateway_order_id"`
	PaymentID      string    `bson:"payment_id" json:"payment_id"`
	Signature      string    `bson:"signature" json:"signature"`
	VerifiedAt     time.Time `bson:"verified_at" json:"verified_at"`
}

// Order is the immutable record created at checkout. Items, address, method
// and totals never change after creation; only the payment and delivery
// transitions mutate it.
type Order struct {
	ID             string          `bson:"_id,omitempty" json:"id"`
	UserID         string          `bson:"user_id" json:"user_id"`
	IdempotencyKey string          `bson:"idempotency_key,omitempty" json:"-"`
	Items          []LineItem      `bson:"items" json:"items"`
	ShippingAddr   ShippingAddress `bson:"shipping_address" json:"shipping_address"`
	PaymentMethod  string          `bson:"payment_method" json:"payment_method"`
	Totals         Totals          `bson:"totals" json:"totals"`
	PaymentStatus  PaymentStatus   `bson:"payment_status" json:"payment_status"`
	PaidAt         *time.Time      `bson:"paid_at,omitempty" json:"paid_at,omitempty"`
	PaymentResult  *PaymentResult  `bson:"payment_result,omitempty" json:"payment_result,omitempty"`
	IsDelivered    bool            `bson:"is_delivered" json:"is_delivered"`
	DeliveredAt    *time.Time      `bson:"delivered_at,omitempty" json:"delivered_at,omitempty"`
	CreatedAt      time.Time       `bson:"created_at" json:"created_at"`
}

func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentPaid
}
