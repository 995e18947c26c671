package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/neoenginex/gemsutopia/internal/domain/shipping/model"
	"github.com/neoenginex/gemsutopia/internal/domain/shipping/repository"
	"github.com/neoenginex/gemsutopia/internal/pkg/currency"
)

// BreakdownLine is one human-readable component of a shipping quote.
type BreakdownLine struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// Quote is the result of a shipping calculation.
type Quote struct {
	ShippingCost       decimal.Decimal   `json:"shippingCost"`
	Currency           currency.Currency `json:"currency"`
	IsCombinedShipping bool              `json:"isCombinedShipping"`
	ItemCount          int               `json:"itemCount"`
	Breakdown          []BreakdownLine   `json:"breakdown"`
}

// Calculate prices shipping for a cart. Pure: no I/O, no errors, all inputs
// clamped. When combined shipping applies the flat combined rate replaces the
// per-item rate entirely.
func Calculate(itemCount int, cur currency.Currency, s model.Settings) Quote {
	if itemCount < 0 {
		itemCount = 0
	}

	quote := Quote{
		ShippingCost: decimal.Zero,
		Currency:     cur,
		ItemCount:    itemCount,
		Breakdown:    []BreakdownLine{},
	}

	if !s.EnableShipping || itemCount == 0 {
		return quote
	}

	single := s.SingleItemCAD
	combined := s.CombinedCAD
	if cur == currency.USD {
		single = s.SingleItemUSD
		combined = s.CombinedUSD
	}

	if s.CombinedEnabled && itemCount >= s.CombinedThreshold {
		quote.ShippingCost = combined
		quote.IsCombinedShipping = true
		quote.Breakdown = append(quote.Breakdown, BreakdownLine{
			Description: fmt.Sprintf("Combined shipping (%d items)", itemCount),
			Amount:      combined,
		})
		return quote
	}

	quote.ShippingCost = single.Mul(decimal.NewFromInt(int64(itemCount)))
	quote.Breakdown = append(quote.Breakdown, BreakdownLine{
		Description: fmt.Sprintf("%d x single item shipping", itemCount),
		Amount:      quote.ShippingCost,
	})
	return quote
}

const settingsCacheKey = "shipping:settings"
const settingsCacheTTL = 60 * time.Second

// ShippingService reads and writes the settings store and quotes carts.
type ShippingService interface {
	GetSettings(ctx context.Context) (model.Settings, error)
	SaveSettings(ctx context.Context, s model.Settings) error
	QuoteCart(ctx context.Context, itemCount int, cur currency.Currency) (Quote, error)
}

type shippingService struct {
	repo repository.SettingRepository
	rdb  *redis.Client
}

func NewShippingService(repo repository.SettingRepository, rdb *redis.Client) ShippingService {
	return &shippingService{repo: repo, rdb: rdb}
}

// GetSettings reads through the redis cache. Cache misses and unmarshal
// failures fall back to the database.
func (s *shippingService) GetSettings(ctx context.Context) (model.Settings, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, settingsCacheKey).Bytes(); err == nil {
			var settings model.Settings
			if err := json.Unmarshal(cached, &settings); err == nil {
				return settings, nil
			}
		}
	}

	pairs, err := s.repo.GetAll()
	if err != nil {
		return model.Settings{}, err
	}
	settings := model.SettingsFromPairs(pairs)

	if s.rdb != nil {
		if buf, err := json.Marshal(settings); err == nil {
			s.rdb.Set(ctx, settingsCacheKey, buf, settingsCacheTTL)
		}
	}
	return settings, nil
}

// SaveSettings upserts every key and invalidates the cache.
func (s *shippingService) SaveSettings(ctx context.Context, settings model.Settings) error {
	for key, value := range settings.Pairs() {
		if err := s.repo.Upsert(key, value); err != nil {
			return err
		}
	}
	if s.rdb != nil {
		s.rdb.Del(ctx, settingsCacheKey)
	}
	return nil
}

func (s *shippingService) QuoteCart(ctx context.Context, itemCount int, cur currency.Currency) (Quote, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return Quote{}, err
	}
	return Calculate(itemCount, cur, settings), nil
}
