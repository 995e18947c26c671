package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	baseModel "github.com/neoenginex/gemsutopia/pkg/model"
)

// Order statuses.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Payment methods.
const (
	MethodStripe = "stripe"
	MethodPayPal = "paypal"
	MethodCrypto = "crypto"
)

// Order is the canonical record a completed payment is normalized into,
// whichever provider it came from. PaymentIntentID holds the provider's
// payment/charge/order id; its unique index is the idempotency guarantee.
type Order struct {
	baseModel.BaseModel
	PaymentIntentID string          `gorm:"uniqueIndex;not null" json:"payment_intent_id"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Currency        string          `gorm:"size:8;not null" json:"currency"`
	Status          string          `gorm:"default:'pending'" json:"status"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerName    string          `json:"customer_name"`
	ItemsCount      int             `json:"items_count"`
	ShippingAddress json.RawMessage `gorm:"type:jsonb" json:"shipping_address"`
	Items           json.RawMessage `gorm:"type:jsonb" json:"order_items"`
	Metadata        json.RawMessage `gorm:"type:jsonb" json:"metadata"`
	IsTestOrder     bool            `gorm:"not null;default:false" json:"is_test_order"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is one purchased line, snapshotted at payment time.
type OrderItem struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Address is the structured shipping destination.
type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Metadata carries the provider-specific detail kept alongside the
// normalized fields: which method paid, provider ids, and the price
// breakdown the storefront showed at checkout.
type Metadata struct {
	Method       string          `json:"method"`
	ProviderID   string          `json:"provider_id,omitempty"`
	CaptureID    string          `json:"capture_id,omitempty"`
	Network      string          `json:"network,omitempty"`
	CryptoAmount string          `json:"crypto_amount,omitempty"`
	PayerAddress string          `json:"payer_address,omitempty"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Shipping     decimal.Decimal `json:"shipping"`
	Tax          decimal.Decimal `json:"tax"`
	Discount     decimal.Decimal `json:"discount,omitempty"`
	DiscountCode string          `json:"discount_code,omitempty"`
	Total        decimal.Decimal `json:"total"`
}
