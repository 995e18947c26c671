package strategy

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"

	orderModel "github.com/neoenginex/gemsutopia/internal/domain/order/model"
	orderService "github.com/neoenginex/gemsutopia/internal/domain/order/service"
	"github.com/neoenginex/gemsutopia/internal/pkg/config"
)

// StripeStrategy normalizes payment_intent webhooks. All order detail rides
// on the PaymentIntent metadata the storefront attached at intent creation.
type StripeStrategy struct {
	webhookSecret string
}

func NewStripeStrategy() *StripeStrategy {
	return &StripeStrategy{
		webhookSecret: config.GlobalConfig.Stripe.WebhookSecret,
	}
}

func (s *StripeStrategy) Channel() string {
	return orderModel.MethodStripe
}

func (s *StripeStrategy) HandleWebhook(body []byte, header http.Header) (*ConfirmedPayment, error) {
	event, err := webhook.ConstructEvent(body, header.Get("Stripe-Signature"), s.webhookSecret)
	if err != nil {
		return nil, err
	}

	var status string
	switch event.Type {
	case "payment_intent.succeeded":
		status = orderModel.StatusCompleted
	case "payment_intent.payment_failed":
		status = orderModel.StatusFailed
	default:
		return nil, nil
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return nil, err
	}

	return s.normalize(&intent, status), nil
}

func (s *StripeStrategy) normalize(intent *stripe.PaymentIntent, status string) *ConfirmedPayment {
	meta := intent.Metadata

	email := meta["customer_email"]
	if email == "" && intent.ReceiptEmail != "" {
		email = intent.ReceiptEmail
	}

	itemsCount, _ := strconv.Atoi(meta["items_count"])

	order := &orderModel.Order{
		PaymentIntentID: intent.ID,
		Amount:          decimal.New(intent.Amount, -2),
		Currency:        strings.ToUpper(string(intent.Currency)),
		Status:          status,
		CustomerEmail:   email,
		CustomerName:    meta["customer_name"],
		ItemsCount:      itemsCount,
		ShippingAddress: rawOrNull(meta["shipping_address"]),
		Items:           rawOrNull(meta["items"]),
		Metadata: mustJSON(orderModel.Metadata{
			Method:       orderModel.MethodStripe,
			ProviderID:   intent.ID,
			Subtotal:     metaDecimal(meta, "subtotal"),
			Shipping:     metaDecimal(meta, "shipping"),
			Tax:          metaDecimal(meta, "tax"),
			Discount:     metaDecimal(meta, "discount"),
			DiscountCode: meta["discount_code"],
			Total:        decimal.New(intent.Amount, -2),
		}),
	}

	return &ConfirmedPayment{
		Order: order,
		Details: orderService.PaymentDetails{
			Method:    orderModel.MethodStripe,
			PaymentID: intent.ID,
		},
	}
}

func metaDecimal(meta map[string]string, key string) decimal.Decimal {
	if d, err := decimal.NewFromString(meta[key]); err == nil {
		return d
	}
	return decimal.Zero
}

// rawOrNull keeps jsonb columns valid when the metadata field is absent or
// not JSON.
func rawOrNull(s string) json.RawMessage {
	if s == "" || !json.Valid([]byte(s)) {
		return json.RawMessage("null")
	}
	return json.RawMessage(s)
}

func mustJSON(v interface{}) json.RawMessage {
	buf, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("null")
	}
	return buf
}

var _ PaymentStrategy = (*StripeStrategy)(nil)
