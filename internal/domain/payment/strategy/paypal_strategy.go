package strategy

import (
	"context"
	"errors"
	"fmt"

	"github.com/plutov/paypal/v4"

	"github.com/neoenginex/gemsutopia/internal/pkg/config"
)

var ErrCaptureNotCompleted = errors.New("paypal order is not completed")

// Capture is the verified state of a PayPal order.
type Capture struct {
	OrderID   string
	CaptureID string
	Amount    string
	Currency  string
	Verified  bool
}

// PayPalStrategy verifies client-side captures against the PayPal API.
// Without configured credentials verification is skipped and the capture is
// recorded as asserted by the client (the less trustworthy path).
type PayPalStrategy struct {
	client *paypal.Client
}

func NewPayPalStrategy() (*PayPalStrategy, error) {
	cfg := config.GlobalConfig.PayPal
	if cfg.ClientID == "" || cfg.Secret == "" {
		return &PayPalStrategy{}, nil
	}

	base := paypal.APIBaseSandBox
	if cfg.Live {
		base = paypal.APIBaseLive
	}
	client, err := paypal.NewClient(cfg.ClientID, cfg.Secret, base)
	if err != nil {
		return nil, err
	}
	return &PayPalStrategy{client: client}, nil
}

// VerifyCapture confirms the order completed on PayPal's side and returns
// the capture identity and amount.
func (s *PayPalStrategy) VerifyCapture(ctx context.Context, orderID string) (*Capture, error) {
	if s.client == nil {
		return &Capture{OrderID: orderID}, nil
	}

	if _, err := s.client.GetAccessToken(ctx); err != nil {
		return nil, err
	}
	order, err := s.client.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != "COMPLETED" {
		return nil, fmt.Errorf("%w: status %s", ErrCaptureNotCompleted, order.Status)
	}

	capture := &Capture{OrderID: orderID, Verified: true}
	for _, unit := range order.PurchaseUnits {
		if unit.Payments == nil {
			continue
		}
		for _, cap := range unit.Payments.Captures {
			capture.CaptureID = cap.ID
			if cap.Amount != nil {
				capture.Amount = cap.Amount.Value
				capture.Currency = cap.Amount.Currency
			}
		}
	}
	return capture, nil
}
