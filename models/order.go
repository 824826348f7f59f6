package models

import "time"

// Order status values, mirroring the storefront lifecycle.
const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
)

// Order is one committed purchase line. Append-only: status transitions
// aside, rows are never updated or deleted.
type Order struct {
	OrderID         string    `json:"orderid" bson:"orderid"`
	UserID          string    `json:"userid" bson:"userid"`
	MaterialID      string    `json:"materialid" bson:"materialid"`
	MaterialTitle   string    `json:"material_title" bson:"material_title"`
	Quantity        int       `json:"quantity" bson:"quantity"`
	PricePerItem    Money     `json:"price_per_item" bson:"price_per_item"`
	TotalCost       Money     `json:"total_cost" bson:"total_cost"`
	Status          string    `json:"status" bson:"status"`
	DeliveryAddress string    `json:"delivery_address,omitempty" bson:"delivery_address,omitempty"`
	UserAddress     string    `json:"user_address,omitempty" bson:"user_address,omitempty"`
	ClientFullName  string    `json:"client_full_name" bson:"client_full_name"`
	SubmittedAt     time.Time `json:"submitted_at" bson:"submitted_at"`

	// Payment capture. Card data is stored, not charged; the CVV never
	// leaves the database through the API.
	CardNumber     string `json:"-" bson:"card_number,omitempty"`
	CardExpiry     string `json:"-" bson:"card_expiry,omitempty"`
	CardCVV        string `json:"-" bson:"card_cvv,omitempty"`
	CardholderName string `json:"cardholder_name,omitempty" bson:"cardholder_name,omitempty"`
	BuySessionHash string `json:"buy_session_hash,omitempty" bson:"buy_session_hash,omitempty"`
}
