package strategy

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	orderModel "github.com/neoenginex/gemsutopia/internal/domain/order/model"
	orderService "github.com/neoenginex/gemsutopia/internal/domain/order/service"
	"github.com/neoenginex/gemsutopia/internal/pkg/config"
)

var ErrBadSignature = errors.New("webhook signature mismatch")

// CoinbaseCharge is the subset of a Commerce charge we read. Order items
// and the shipping address travel JSON-encoded inside charge metadata, so
// the webhook and the polling endpoint parse one shape and produce one
// order shape.
type CoinbaseCharge struct {
	ID        string            `json:"id"`
	Code      string            `json:"code"`
	HostedURL string            `json:"hosted_url"`
	ExpiresAt string            `json:"expires_at"`
	Metadata  map[string]string `json:"metadata"`
	Pricing   struct {
		Local struct {
			Amount   string `json:"amount"`
			Currency string `json:"currency"`
		} `json:"local"`
	} `json:"pricing"`
	Timeline []struct {
		Status string `json:"status"`
		Time   string `json:"time"`
	} `json:"timeline"`
	Payments []struct {
		Network       string `json:"network"`
		TransactionID string `json:"transaction_id"`
		Value         struct {
			Crypto struct {
				Amount   string `json:"amount"`
				Currency string `json:"currency"`
			} `json:"crypto"`
		} `json:"value"`
	} `json:"payments"`
}

// Status returns the newest timeline entry, "NEW" for an empty timeline.
func (ch *CoinbaseCharge) Status() string {
	if len(ch.Timeline) == 0 {
		return "NEW"
	}
	return ch.Timeline[len(ch.Timeline)-1].Status
}

// CreateChargeInput is what checkout sends to open a hosted payment page.
type CreateChargeInput struct {
	Amount          decimal.Decimal
	Currency        string
	CustomerEmail   string
	CustomerName    string
	Items           []orderModel.OrderItem
	ShippingAddress *orderModel.Address
	Breakdown       orderModel.Metadata
}

// CoinbaseStrategy talks to the Commerce API and verifies its webhooks.
// Coinbase has no maintained Go SDK; the REST surface is small enough to
// call directly.
type CoinbaseStrategy struct {
	client        *resty.Client
	apiKey        string
	webhookSecret string
}

func NewCoinbaseStrategy() *CoinbaseStrategy {
	cfg := config.GlobalConfig.Coinbase
	return &CoinbaseStrategy{
		client:        resty.New().SetBaseURL(cfg.APIBase).SetTimeout(10 * time.Second),
		apiKey:        cfg.APIKey,
		webhookSecret: cfg.WebhookSecret,
	}
}

func (s *CoinbaseStrategy) Channel() string {
	return orderModel.MethodCrypto
}

// CreateCharge opens a fixed-price charge. The order detail is serialized
// into charge metadata so both confirmation paths can rebuild it.
func (s *CoinbaseStrategy) CreateCharge(ctx context.Context, in CreateChargeInput) (*CoinbaseCharge, error) {
	items, _ := json.Marshal(in.Items)
	address, _ := json.Marshal(in.ShippingAddress)

	payload := map[string]interface{}{
		"name":         "Gemsutopia order",
		"description":  fmt.Sprintf("%d item(s)", itemCount(in.Items)),
		"pricing_type": "fixed_price",
		"local_price": map[string]string{
			"amount":   in.Amount.StringFixed(2),
			"currency": in.Currency,
		},
		"metadata": map[string]string{
			"customer_email":   in.CustomerEmail,
			"customer_name":    in.CustomerName,
			"items":            string(items),
			"shipping_address": string(address),
			"items_count":      strconv.Itoa(itemCount(in.Items)),
			"subtotal":         in.Breakdown.Subtotal.StringFixed(2),
			"shipping":         in.Breakdown.Shipping.StringFixed(2),
			"tax":              in.Breakdown.Tax.StringFixed(2),
			"discount":         in.Breakdown.Discount.StringFixed(2),
			"discount_code":    in.Breakdown.DiscountCode,
		},
	}

	var body struct {
		Data CoinbaseCharge `json:"data"`
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("X-CC-Api-Key", s.apiKey).
		SetHeader("X-CC-Version", "2018-03-22").
		SetBody(payload).
		SetResult(&body).
		Post("/charges")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("coinbase charge creation failed: %s", resp.Status())
	}
	return &body.Data, nil
}

// GetCharge fetches the current charge state for the polling endpoint.
func (s *CoinbaseStrategy) GetCharge(ctx context.Context, chargeID string) (*CoinbaseCharge, error) {
	var body struct {
		Data CoinbaseCharge `json:"data"`
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("X-CC-Api-Key", s.apiKey).
		SetHeader("X-CC-Version", "2018-03-22").
		SetResult(&body).
		Get("/charges/" + chargeID)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("coinbase charge lookup failed: %s", resp.Status())
	}
	return &body.Data, nil
}

type coinbaseEvent struct {
	Event struct {
		Type string         `json:"type"`
		Data CoinbaseCharge `json:"data"`
	} `json:"event"`
}

// HandleWebhook verifies the HMAC-SHA256 signature with a constant-time
// compare, then normalizes confirm/fail events.
func (s *CoinbaseStrategy) HandleWebhook(body []byte, header http.Header) (*ConfirmedPayment, error) {
	if err := s.verifySignature(body, header.Get("X-CC-Webhook-Signature")); err != nil {
		return nil, err
	}

	var event coinbaseEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, err
	}

	switch event.Event.Type {
	case "charge:confirmed":
		return s.Normalize(&event.Event.Data, orderModel.StatusCompleted), nil
	case "charge:failed":
		return s.Normalize(&event.Event.Data, orderModel.StatusFailed), nil
	default:
		return nil, nil
	}
}

func (s *CoinbaseStrategy) verifySignature(body []byte, signature string) error {
	expected, err := hex.DecodeString(signature)
	if err != nil {
		return ErrBadSignature
	}

	mac := hmac.New(sha256.New, []byte(s.webhookSecret))
	mac.Write(body)

	if subtle.ConstantTimeCompare(mac.Sum(nil), expected) != 1 {
		return ErrBadSignature
	}
	return nil
}

// Normalize converts a charge into the canonical order. The single parse
// point for both the webhook and the polling path.
func (s *CoinbaseStrategy) Normalize(charge *CoinbaseCharge, status string) *ConfirmedPayment {
	meta := charge.Metadata

	amount, err := decimal.NewFromString(charge.Pricing.Local.Amount)
	if err != nil {
		amount = decimal.Zero
	}

	itemsCount, _ := strconv.Atoi(meta["items_count"])

	details := orderService.PaymentDetails{
		Method:    orderModel.MethodCrypto,
		PaymentID: charge.ID,
	}
	md := orderModel.Metadata{
		Method:       orderModel.MethodCrypto,
		ProviderID:   charge.ID,
		Subtotal:     metaDecimal(meta, "subtotal"),
		Shipping:     metaDecimal(meta, "shipping"),
		Tax:          metaDecimal(meta, "tax"),
		Discount:     metaDecimal(meta, "discount"),
		DiscountCode: meta["discount_code"],
		Total:        amount,
	}
	if len(charge.Payments) > 0 {
		p := charge.Payments[0]
		details.Network = p.Network
		details.Currency = p.Value.Crypto.Currency
		md.Network = p.Network
		md.CryptoAmount = p.Value.Crypto.Amount
	}

	order := &orderModel.Order{
		PaymentIntentID: charge.ID,
		Amount:          amount,
		Currency:        charge.Pricing.Local.Currency,
		Status:          status,
		CustomerEmail:   meta["customer_email"],
		CustomerName:    meta["customer_name"],
		ItemsCount:      itemsCount,
		ShippingAddress: rawOrNull(meta["shipping_address"]),
		Items:           rawOrNull(meta["items"]),
		Metadata:        mustJSON(md),
	}

	return &ConfirmedPayment{Order: order, Details: details}
}

func itemCount(items []orderModel.OrderItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

var _ PaymentStrategy = (*CoinbaseStrategy)(nil)
