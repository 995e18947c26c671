package model

import (
	"time"

	"github.com/shopspring/decimal"

	baseModel "github.com/neoenginex/gemsutopia/pkg/model"
)

// Discount types.
const (
	TypePercentage  = "percentage"
	TypeFixedAmount = "fixed_amount"
)

// DiscountCode is an admin-managed promotion code. Codes are stored
// uppercase and matched case-insensitively. UsageLimit nil means unlimited.
type DiscountCode struct {
	baseModel.BaseModel
	Code          string          `gorm:"uniqueIndex;not null" json:"code"`
	DiscountType  string          `gorm:"not null" json:"discount_type"`
	DiscountValue decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"discount_value"`
	FreeShipping  bool            `gorm:"not null;default:false" json:"free_shipping"`
	MinimumOrder  decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"minimum_order"`
	UsageLimit    *int            `json:"usage_limit"`
	UsedCount     int             `gorm:"not null;default:0" json:"used_count"`
	IsActive      bool            `gorm:"not null;default:true" json:"is_active"`
	ExpiresAt     *time.Time      `json:"expires_at"`
}

func (DiscountCode) TableName() string {
	return "discount_codes"
}

// DiscountUsage records one redemption. The unique index over
// (discount_code_id, order_id) is what makes redemption idempotent.
type DiscountUsage struct {
	baseModel.BaseModel
	DiscountCodeID string `gorm:"uniqueIndex:idx_discount_order;not null" json:"discount_code_id"`
	OrderID        string `gorm:"uniqueIndex:idx_discount_order;not null" json:"order_id"`
}

func (DiscountUsage) TableName() string {
	return "discount_usages"
}
