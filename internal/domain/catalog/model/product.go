package model

import (
	"github.com/shopspring/decimal"

	baseModel "github.com/neoenginex/gemsutopia/pkg/model"
)

// Product is one gemstone listing. Prices are maintained per currency
// rather than converted on the fly so the storefront shows stable numbers.
type Product struct {
	baseModel.BaseModel
	Name          string          `gorm:"not null" json:"name"`
	SKU           string          `gorm:"uniqueIndex;not null" json:"sku"`
	Description   string          `gorm:"type:text" json:"description"`
	PriceCAD      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"price_cad"`
	PriceUSD      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"price_usd"`
	Carat         decimal.Decimal `gorm:"type:decimal(10,2)" json:"carat"`
	Origin        string          `json:"origin"`
	Stock         int             `gorm:"not null;default:0" json:"stock"`
	IsActive      bool            `gorm:"not null;default:true" json:"is_active"`
	FeaturedImage string          `json:"featured_image"`
}

func (Product) TableName() string {
	return "products"
}
