package domain

import "time"

// LineItem is one product entry in a cart or order. Orders keep an immutable
// snapshot of the line items they were created from.
type LineItem struct {
	ProductID string  `bson:"product_id" json:"product_id"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Qty       int     `bson:"qty" json:"qty"`
	Image     string  `bson:"image" json:"image"`
}

type ShippingAddress struct {
	Address    string `bson:"address" json:"address"`
	City       string `bson:"city" json:"city"`
	PostalCode string `bson:"postal_code" json:"postal_code"`
	Country    string `bson:"country" json:"country"`
}

// Totals is the four-field monetary breakdown of a cart or order.
type Totals struct {
	ItemsPrice    float64 `bson:"items_price" json:"items_price"`
	ShippingPrice float64 `bson:"shipping_price" json:"shipping_price"`
	TaxPrice      float64 `bson:"tax_price" json:"tax_price"`
	TotalPrice    float64 `bson:"total_price" json:"total_price"`
}

type Cart struct {
	UserID          string          `bson:"user_id" json:"user_id"`
	Items           []LineItem      `bson:"items" json:"items"`
	ShippingAddress ShippingAddress `bson:"shipping_address" json:"shipping_address"`
	PaymentMethod   string          `bson:"payment_method" json:"payment_method"`
	Totals          Totals          `bson:"totals" json:"totals"`
	UpdatedAt       time.Time       `bson:"updated_at" json:"updated_at"`
}

// FindItem returns the index of the line item for productID, or -1.
func (c *Cart) FindItem(productID string) int {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}
