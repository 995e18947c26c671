package model

import (
	"strconv"

	"github.com/shopspring/decimal"

	baseModel "github.com/neoenginex/gemsutopia/pkg/model"
)

// ShippingSetting is one key-value row of the settings store. The admin
// dashboard edits individual keys; checkout reads the whole set.
type ShippingSetting struct {
	baseModel.BaseModel
	Key   string `gorm:"uniqueIndex;not null" json:"key"`
	Value string `gorm:"type:text;not null" json:"value"`
}

func (ShippingSetting) TableName() string {
	return "shipping_settings"
}

// Setting keys.
const (
	KeyEnableShipping        = "enable_shipping"
	KeyInternationalShipping = "international_shipping"
	KeySingleItemCAD         = "single_item_shipping_cad"
	KeySingleItemUSD         = "single_item_shipping_usd"
	KeyCombinedCAD           = "combined_shipping_cad"
	KeyCombinedUSD           = "combined_shipping_usd"
	KeyCombinedEnabled       = "combined_shipping_enabled"
	KeyCombinedThreshold     = "combined_shipping_threshold"
)

// Settings is the typed view over the key-value rows.
type Settings struct {
	EnableShipping        bool            `json:"enableShipping"`
	InternationalShipping bool            `json:"internationalShipping"`
	SingleItemCAD         decimal.Decimal `json:"singleItemShippingCAD"`
	SingleItemUSD         decimal.Decimal `json:"singleItemShippingUSD"`
	CombinedCAD           decimal.Decimal `json:"combinedShippingCAD"`
	CombinedUSD           decimal.Decimal `json:"combinedShippingUSD"`
	CombinedEnabled       bool            `json:"combinedShippingEnabled"`
	CombinedThreshold     int             `json:"combinedShippingThreshold"`
}

// DefaultSettings mirrors the seed migration.
func DefaultSettings() Settings {
	return Settings{
		EnableShipping:        true,
		InternationalShipping: false,
		SingleItemCAD:         decimal.NewFromFloat(21.00),
		SingleItemUSD:         decimal.NewFromFloat(15.00),
		CombinedCAD:           decimal.NewFromFloat(25.00),
		CombinedUSD:           decimal.NewFromFloat(18.00),
		CombinedEnabled:       true,
		CombinedThreshold:     2,
	}
}

// SettingsFromPairs overlays stored pairs onto the defaults. Unparseable
// values keep their default; the threshold is clamped to at least 2.
func SettingsFromPairs(pairs map[string]string) Settings {
	s := DefaultSettings()
	for key, value := range pairs {
		switch key {
		case KeyEnableShipping:
			if b, err := strconv.ParseBool(value); err == nil {
				s.EnableShipping = b
			}
		case KeyInternationalShipping:
			if b, err := strconv.ParseBool(value); err == nil {
				s.InternationalShipping = b
			}
		case KeySingleItemCAD:
			if d, err := decimal.NewFromString(value); err == nil {
				s.SingleItemCAD = d
			}
		case KeySingleItemUSD:
			if d, err := decimal.NewFromString(value); err == nil {
				s.SingleItemUSD = d
			}
		case KeyCombinedCAD:
			if d, err := decimal.NewFromString(value); err == nil {
				s.CombinedCAD = d
			}
		case KeyCombinedUSD:
			if d, err := decimal.NewFromString(value); err == nil {
				s.CombinedUSD = d
			}
		case KeyCombinedEnabled:
			if b, err := strconv.ParseBool(value); err == nil {
				s.CombinedEnabled = b
			}
		case KeyCombinedThreshold:
			if n, err := strconv.Atoi(value); err == nil {
				s.CombinedThreshold = n
			}
		}
	}
	if s.CombinedThreshold < 2 {
		s.CombinedThreshold = 2
	}
	return s
}

// Pairs flattens the typed settings back to store rows.
func (s Settings) Pairs() map[string]string {
	return map[string]string{
		KeyEnableShipping:        strconv.FormatBool(s.EnableShipping),
		KeyInternationalShipping: strconv.FormatBool(s.InternationalShipping),
		KeySingleItemCAD:         s.SingleItemCAD.StringFixed(2),
		KeySingleItemUSD:         s.SingleItemUSD.StringFixed(2),
		KeyCombinedCAD:           s.CombinedCAD.StringFixed(2),
		KeyCombinedUSD:           s.CombinedUSD.StringFixed(2),
		KeyCombinedEnabled:       strconv.FormatBool(s.CombinedEnabled),
		KeyCombinedThreshold:     strconv.Itoa(s.CombinedThreshold),
	}
}
