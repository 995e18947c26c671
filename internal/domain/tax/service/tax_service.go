package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/neoenginex/gemsutopia/pkg/logger"
)

// Confidence levels for a computed rate. Low means the generic US default
// was applied because the state is missing from the fallback table.
const (
	ConfidenceHigh = "high"
	ConfidenceLow  = "low"
)

// Rate is the tax breakdown for a jurisdiction. Ephemeral: computed per
// checkout request, never persisted.
type Rate struct {
	Federal    decimal.Decimal `json:"federal"`
	State      decimal.Decimal `json:"state"`
	Local      decimal.Decimal `json:"local"`
	Total      decimal.Decimal `json:"total"`
	Name       string          `json:"name"`
	Confidence string          `json:"confidence"`
}

// Request identifies the jurisdiction.
type Request struct {
	Country    string
	Region     string
	City       string
	PostalCode string
	Address    string
}

type TaxService interface {
	// Calculate returns the rate and the tax owed on subtotal. Never errors:
	// lookup failures degrade to the static tables, unknown countries to 0%.
	Calculate(ctx context.Context, subtotal decimal.Decimal, req Request) (Rate, decimal.Decimal)
}

type taxService struct {
	client    *resty.Client
	lookupURL string
	apiKey    string
}

func NewTaxService(lookupURL, apiKey string) TaxService {
	return &taxService{
		client:    resty.New().SetTimeout(5 * time.Second),
		lookupURL: lookupURL,
		apiKey:    apiKey,
	}
}

func (s *taxService) Calculate(ctx context.Context, subtotal decimal.Decimal, req Request) (Rate, decimal.Decimal) {
	rate := s.rateFor(ctx, req)
	tax := subtotal.Mul(rate.Total).Round(2)
	return rate, tax
}

func (s *taxService) rateFor(ctx context.Context, req Request) Rate {
	country := normalizeCountry(req.Country)
	if country == "" {
		return zeroRate("No tax")
	}

	if s.lookupURL != "" {
		if rate, err := s.liveLookup(ctx, country, req); err == nil {
			return rate
		} else if logger.Log != nil {
			logger.Log.Warn("tax lookup failed, using fallback table",
				zap.String("country", country),
				zap.String("region", req.Region),
				zap.Error(err))
		}
	}

	return fallbackFor(country, req.Region)
}

func normalizeCountry(country string) string {
	switch strings.ToLower(strings.TrimSpace(country)) {
	case "canada", "ca":
		return "canada"
	case "united states", "usa", "us", "united states of america":
		return "united states"
	default:
		return ""
	}
}

func fallbackFor(country, region string) Rate {
	code := strings.ToUpper(strings.TrimSpace(region))

	if country == "canada" {
		if r, ok := canadaRates[code]; ok {
			return buildRate(r, ConfidenceHigh)
		}
		// Unknown province: federal GST only.
		return buildRate(fallbackRate{Federal: 0.05, Name: "GST"}, ConfidenceLow)
	}

	if r, ok := usRates[code]; ok {
		return buildRate(r, ConfidenceHigh)
	}
	// State missing from the sparse table; the generic default is a guess
	// and is flagged as such.
	return buildRate(fallbackRate{State: usGenericRate, Name: "Sales Tax"}, ConfidenceLow)
}

func buildRate(r fallbackRate, confidence string) Rate {
	federal := decimal.NewFromFloat(r.Federal)
	state := decimal.NewFromFloat(r.State)
	return Rate{
		Federal:    federal,
		State:      state,
		Local:      decimal.Zero,
		Total:      federal.Add(state),
		Name:       r.Name,
		Confidence: confidence,
	}
}

func zeroRate(name string) Rate {
	return Rate{
		Federal:    decimal.Zero,
		State:      decimal.Zero,
		Local:      decimal.Zero,
		Total:      decimal.Zero,
		Name:       name,
		Confidence: ConfidenceHigh,
	}
}

type lookupResponse struct {
	Federal float64 `json:"federal"`
	State   float64 `json:"state"`
	Local   float64 `json:"local"`
	Name    string  `json:"name"`
}

func (s *taxService) liveLookup(ctx context.Context, country string, req Request) (Rate, error) {
	var body lookupResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetQueryParams(map[string]string{
			"country": country,
			"region":  req.Region,
			"city":    req.City,
			"zip":     req.PostalCode,
		}).
		SetResult(&body).
		Get(s.lookupURL)
	if err != nil {
		return Rate{}, err
	}
	if resp.IsError() {
		return Rate{}, fmt.Errorf("tax service returned %s", resp.Status())
	}

	federal := decimal.NewFromFloat(body.Federal)
	state := decimal.NewFromFloat(body.State)
	local := decimal.NewFromFloat(body.Local)
	total := federal.Add(state).Add(local)
	if !total.IsPositive() {
		return Rate{}, fmt.Errorf("tax service returned non-positive total rate")
	}

	return Rate{
		Federal:    federal,
		State:      state,
		Local:      local,
		Total:      total,
		Name:       body.Name,
		Confidence: ConfidenceHigh,
	}, nil
}
