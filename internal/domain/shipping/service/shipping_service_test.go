package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/neoenginex/gemsutopia/internal/domain/shipping/model"
	"github.com/neoenginex/gemsutopia/internal/pkg/currency"
)

// MockSettingRepository is a mock of SettingRepository
type MockSettingRepository struct {
	mock.Mock
}

func (m *MockSettingRepository) GetAll() (map[string]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockSettingRepository) Upsert(key, value string) error {
	args := m.Called(key, value)
	return args.Error(0)
}

func testSettings() model.Settings {
	s := model.DefaultSettings()
	s.SingleItemCAD = decimal.NewFromFloat(21.00)
	s.CombinedCAD = decimal.NewFromFloat(25.00)
	s.CombinedEnabled = true
	s.CombinedThreshold = 2
	return s
}

func TestCalculate(t *testing.T) {
	settings := testSettings()

	t.Run("single item uses per-item rate", func(t *testing.T) {
		quote := Calculate(1, currency.CAD, settings)

		assert.True(t, quote.ShippingCost.Equal(decimal.NewFromFloat(21.00)))
		assert.False(t, quote.IsCombinedShipping)
		assert.Equal(t, 1, quote.ItemCount)
		assert.Len(t, quote.Breakdown, 1)
	})

	t.Run("threshold switches to flat combined rate", func(t *testing.T) {
		quote := Calculate(2, currency.CAD, settings)

		assert.True(t, quote.ShippingCost.Equal(decimal.NewFromFloat(25.00)))
		assert.True(t, quote.IsCombinedShipping)
	})

	t.Run("combined rate stays flat above threshold", func(t *testing.T) {
		quote := Calculate(3, currency.CAD, settings)

		// Flat 25.00, not 3 x 21.00.
		assert.True(t, quote.ShippingCost.Equal(decimal.NewFromFloat(25.00)))
		assert.True(t, quote.IsCombinedShipping)
	})

	t.Run("zero items cost nothing", func(t *testing.T) {
		quote := Calculate(0, currency.CAD, settings)
		assert.True(t, quote.ShippingCost.IsZero())
	})

	t.Run("negative count clamped to zero", func(t *testing.T) {
		quote := Calculate(-4, currency.CAD, settings)
		assert.True(t, quote.ShippingCost.IsZero())
		assert.Equal(t, 0, quote.ItemCount)
	})

	t.Run("shipping disabled costs nothing", func(t *testing.T) {
		disabled := settings
		disabled.EnableShipping = false

		quote := Calculate(5, currency.CAD, disabled)
		assert.True(t, quote.ShippingCost.IsZero())
	})

	t.Run("USD uses USD rates", func(t *testing.T) {
		quote := Calculate(1, currency.USD, settings)
		assert.True(t, quote.ShippingCost.Equal(settings.SingleItemUSD))
		assert.Equal(t, currency.USD, quote.Currency)
	})

	t.Run("combined disabled multiplies per item", func(t *testing.T) {
		noCombined := settings
		noCombined.CombinedEnabled = false

		quote := Calculate(3, currency.CAD, noCombined)
		assert.True(t, quote.ShippingCost.Equal(decimal.NewFromFloat(63.00)))
		assert.False(t, quote.IsCombinedShipping)
	})
}

// Cost is non-decreasing in item count except at the combined-shipping
// threshold, where the flat rate may undercut n x single.
func TestCalculateMonotonicity(t *testing.T) {
	settings := testSettings()

	prev := decimal.Zero
	for n := 0; n < settings.CombinedThreshold; n++ {
		cost := Calculate(n, currency.CAD, settings).ShippingCost
		assert.True(t, cost.GreaterThanOrEqual(prev), "cost(%d) decreased below threshold", n)
		prev = cost
	}

	atThreshold := Calculate(settings.CombinedThreshold, currency.CAD, settings).ShippingCost
	for n := settings.CombinedThreshold + 1; n < settings.CombinedThreshold+5; n++ {
		cost := Calculate(n, currency.CAD, settings).ShippingCost
		assert.True(t, cost.Equal(atThreshold), "combined rate should stay flat at %d items", n)
	}
}

func TestQuoteCart(t *testing.T) {
	mockRepo := new(MockSettingRepository)
	svc := NewShippingService(mockRepo, nil)

	mockRepo.On("GetAll").Return(map[string]string{
		model.KeySingleItemCAD:     "10.00",
		model.KeyCombinedCAD:       "12.00",
		model.KeyCombinedEnabled:   "true",
		model.KeyCombinedThreshold: "3",
	}, nil)

	quote, err := svc.QuoteCart(context.Background(), 2, currency.CAD)

	assert.NoError(t, err)
	assert.True(t, quote.ShippingCost.Equal(decimal.NewFromFloat(20.00)))
	assert.False(t, quote.IsCombinedShipping)
	mockRepo.AssertExpectations(t)
}

func TestSettingsFromPairs(t *testing.T) {
	t.Run("threshold clamped to minimum", func(t *testing.T) {
		s := model.SettingsFromPairs(map[string]string{
			model.KeyCombinedThreshold: "1",
		})
		assert.Equal(t, 2, s.CombinedThreshold)
	})

	t.Run("unparseable values keep defaults", func(t *testing.T) {
		s := model.SettingsFromPairs(map[string]string{
			model.KeySingleItemCAD: "not-a-number",
		})
		assert.True(t, s.SingleItemCAD.Equal(model.DefaultSettings().SingleItemCAD))
	})
}
