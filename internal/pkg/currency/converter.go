package currency

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/neoenginex/gemsutopia/pkg/logger"
)

// Currency is a supported settlement currency.
type Currency string

const (
	CAD Currency = "CAD"
	USD Currency = "USD"
)

// Normalize maps free-form input to a supported currency, defaulting to CAD.
func Normalize(s string) Currency {
	switch s {
	case "USD", "usd":
		return USD
	default:
		return CAD
	}
}

// Fallback rates, used whenever the live source is unreachable or returns
// no usable rate.
var fallbackRates = map[string]decimal.Decimal{
	"CAD:USD": decimal.NewFromFloat(0.74),
	"USD:CAD": decimal.NewFromFloat(1.35),
}

const rateCacheTTL = time.Hour

// Converter converts amounts between CAD and USD. Live rates are fetched
// from the configured source and cached in redis; every failure degrades to
// the static fallback table. Convert never returns an error.
type Converter struct {
	client  *resty.Client
	rdb     *redis.Client
	rateURL string
}

// NewConverter builds a converter. rdb may be nil (no caching).
func NewConverter(rateURL string, rdb *redis.Client) *Converter {
	return &Converter{
		client:  resty.New().SetTimeout(5 * time.Second),
		rdb:     rdb,
		rateURL: rateURL,
	}
}

// Convert returns amount expressed in the target currency, rounded to two
// decimal places.
func (cv *Converter) Convert(ctx context.Context, amount decimal.Decimal, from, to Currency) decimal.Decimal {
	if from == to {
		return amount
	}
	rate := cv.rate(ctx, from, to)
	return amount.Mul(rate).Round(2)
}

func (cv *Converter) rate(ctx context.Context, from, to Currency) decimal.Decimal {
	key := fmt.Sprintf("%s:%s", from, to)

	if cv.rdb != nil {
		if cached, err := cv.rdb.Get(ctx, "fx:"+key).Result(); err == nil {
			if r, err := decimal.NewFromString(cached); err == nil && r.IsPositive() {
				return r
			}
		}
	}

	if r, err := cv.fetchRate(ctx, from, to); err == nil {
		if cv.rdb != nil {
			cv.rdb.Set(ctx, "fx:"+key, r.String(), rateCacheTTL)
		}
		return r
	} else if logger.Log != nil {
		logger.Log.Warn("exchange rate fetch failed, using fallback",
			zap.String("pair", key), zap.Error(err))
	}

	return fallbackRates[key]
}

type rateResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

func (cv *Converter) fetchRate(ctx context.Context, from, to Currency) (decimal.Decimal, error) {
	var body rateResponse
	resp, err := cv.client.R().
		SetContext(ctx).
		SetResult(&body).
		Get(fmt.Sprintf("%s/%s", cv.rateURL, from))
	if err != nil {
		return decimal.Zero, err
	}
	if resp.IsError() {
		return decimal.Zero, fmt.Errorf("rate source returned %s", resp.Status())
	}

	rate, ok := body.Rates[string(to)]
	if !ok || rate <= 0 {
		return decimal.Zero, fmt.Errorf("no rate for %s in response", to)
	}
	return decimal.NewFromFloat(rate), nil
}
