package strategy

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderModel "github.com/neoenginex/gemsutopia/internal/domain/order/model"
)

const stripeTestSecret = "whsec_stripe_test"

// stripeSignature builds the t=...,v1=... header the SDK verifies.
func stripeSignature(body []byte, at time.Time) string {
	ts := fmt.Sprintf("%d", at.Unix())
	mac := hmac.New(sha256.New, []byte(stripeTestSecret))
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(body)
	return fmt.Sprintf("t=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func stripeEventBody(t *testing.T, eventType string) []byte {
	t.Helper()
	intent := map[string]interface{}{
		"id":       "pi_3OqK8x2eZvKYlo2C",
		"amount":   14733,
		"currency": "cad",
		"metadata": map[string]string{
			"customer_email":   "jane@example.com",
			"customer_name":    "Jane Doe",
			"items":            `[{"name":"Sapphire","price":"120.00","quantity":1}]`,
			"shipping_address": `{"line1":"1 Front St","city":"Toronto","state":"ON","postal_code":"M5J 2N1","country":"CA"}`,
			"items_count":      "1",
			"subtotal":         "120.00",
			"shipping":         "21.00",
			"tax":              "18.33",
			"discount":         "12.00",
			"discount_code":    "SAVE10",
		},
	}
	raw, err := json.Marshal(intent)
	require.NoError(t, err)

	body, err := json.Marshal(map[string]interface{}{
		"id":          "evt_123",
		"object":      "event",
		"api_version": "2023-10-16",
		"type":        eventType,
		"data":        map[string]json.RawMessage{"object": raw},
	})
	require.NoError(t, err)
	return body
}

func TestStripeHandleWebhook(t *testing.T) {
	s := &StripeStrategy{webhookSecret: stripeTestSecret}

	t.Run("succeeded intent becomes a completed order", func(t *testing.T) {
		body := stripeEventBody(t, "payment_intent.succeeded")
		header := http.Header{}
		header.Set("Stripe-Signature", stripeSignature(body, time.Now()))

		confirmed, err := s.HandleWebhook(body, header)

		require.NoError(t, err)
		require.NotNil(t, confirmed)
		assert.Equal(t, "pi_3OqK8x2eZvKYlo2C", confirmed.Order.PaymentIntentID)
		assert.Equal(t, orderModel.StatusCompleted, confirmed.Order.Status)
		assert.Equal(t, "CAD", confirmed.Order.Currency)
		assert.Equal(t, "jane@example.com", confirmed.Order.CustomerEmail)
		assert.Equal(t, 1, confirmed.Order.ItemsCount)
		assert.True(t, confirmed.Order.Amount.Equal(decimal.NewFromFloat(147.33)))

		var md orderModel.Metadata
		require.NoError(t, json.Unmarshal(confirmed.Order.Metadata, &md))
		assert.Equal(t, orderModel.MethodStripe, md.Method)
		assert.Equal(t, "SAVE10", md.DiscountCode)
		assert.True(t, md.Total.Equal(decimal.NewFromFloat(147.33)))
	})

	t.Run("failed intent becomes a failed order", func(t *testing.T) {
		body := stripeEventBody(t, "payment_intent.payment_failed")
		header := http.Header{}
		header.Set("Stripe-Signature", stripeSignature(body, time.Now()))

		confirmed, err := s.HandleWebhook(body, header)

		require.NoError(t, err)
		require.NotNil(t, confirmed)
		assert.Equal(t, orderModel.StatusFailed, confirmed.Order.Status)
	})

	t.Run("other event types ignored", func(t *testing.T) {
		body := stripeEventBody(t, "payment_intent.created")
		header := http.Header{}
		header.Set("Stripe-Signature", stripeSignature(body, time.Now()))

		confirmed, err := s.HandleWebhook(body, header)

		assert.NoError(t, err)
		assert.Nil(t, confirmed)
	})

	t.Run("bad signature rejected", func(t *testing.T) {
		body := stripeEventBody(t, "payment_intent.succeeded")
		header := http.Header{}
		header.Set("Stripe-Signature", "t=123,v1=deadbeef")

		confirmed, err := s.HandleWebhook(body, header)

		assert.Error(t, err)
		assert.Nil(t, confirmed)
	})

	t.Run("stale timestamp rejected", func(t *testing.T) {
		body := stripeEventBody(t, "payment_intent.succeeded")
		header := http.Header{}
		header.Set("Stripe-Signature", stripeSignature(body, time.Now().Add(-time.Hour)))

		_, err := s.HandleWebhook(body, header)
		assert.Error(t, err)
	})
}

func TestRawOrNull(t *testing.T) {
	assert.Equal(t, json.RawMessage("null"), rawOrNull(""))
	assert.Equal(t, json.RawMessage("null"), rawOrNull("not json"))
	assert.Equal(t, json.RawMessage(`{"a":1}`), rawOrNull(`{"a":1}`))
}
