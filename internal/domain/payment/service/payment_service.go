package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	discountService "github.com/neoenginex/gemsutopia/internal/domain/discount/service"
	orderModel "github.com/neoenginex/gemsutopia/internal/domain/order/model"
	orderService "github.com/neoenginex/gemsutopia/internal/domain/order/service"
	"github.com/neoenginex/gemsutopia/internal/domain/payment/strategy"
	shippingService "github.com/neoenginex/gemsutopia/internal/domain/shipping/service"
	taxService "github.com/neoenginex/gemsutopia/internal/domain/tax/service"
	"github.com/neoenginex/gemsutopia/internal/pkg/currency"
	"github.com/neoenginex/gemsutopia/pkg/logger"
)

var ErrUnsupportedChannel = errors.New("unsupported payment channel")

// CaptureOrderInput is the synchronous PayPal confirmation payload.
type CaptureOrderInput struct {
	OrderID      string
	CaptureID    string
	CustomerInfo CustomerInfo
	Items        []orderModel.OrderItem
	Currency     currency.Currency
	DiscountCode string
}

// ChargeInput opens a Coinbase Commerce charge.
type ChargeInput struct {
	CustomerInfo CustomerInfo
	Items        []orderModel.OrderItem
	Currency     currency.Currency
	DiscountCode string
}

type PaymentService interface {
	// RegisterWebhookStrategy wires a provider's notification handler.
	RegisterWebhookStrategy(st strategy.PaymentStrategy)

	// HandleWebhook verifies and applies a provider notification. A
	// persistence failure on a confirmed payment is logged, not returned:
	// the money already moved and the provider must not keep retrying into
	// an error loop.
	HandleWebhook(channel string, body []byte, header http.Header) error

	CapturePayPalOrder(ctx context.Context, in CaptureOrderInput) (*orderModel.Order, error)
	CreateCoinbaseCharge(ctx context.Context, in ChargeInput) (*strategy.CoinbaseCharge, error)
	CheckCoinbasePayment(ctx context.Context, chargeID string) (string, error)
}

type paymentService struct {
	webhooks map[string]strategy.PaymentStrategy
	paypal   *strategy.PayPalStrategy
	coinbase *strategy.CoinbaseStrategy

	orders    orderService.OrderService
	discounts discountService.DiscountService
	shipping  shippingService.ShippingService
	tax       taxService.TaxService
	converter *currency.Converter
}

func NewPaymentService(
	orders orderService.OrderService,
	discounts discountService.DiscountService,
	shipping shippingService.ShippingService,
	tax taxService.TaxService,
	converter *currency.Converter,
	paypal *strategy.PayPalStrategy,
	coinbase *strategy.CoinbaseStrategy,
) PaymentService {
	return &paymentService{
		webhooks:  make(map[string]strategy.PaymentStrategy),
		paypal:    paypal,
		coinbase:  coinbase,
		orders:    orders,
		discounts: discounts,
		shipping:  shipping,
		tax:       tax,
		converter: converter,
	}
}

// RegisterWebhookStrategy wires a provider's notification handler.
func (s *paymentService) RegisterWebhookStrategy(st strategy.PaymentStrategy) {
	s.webhooks[st.Channel()] = st
}

func (s *paymentService) HandleWebhook(channel string, body []byte, header http.Header) error {
	st, ok := s.webhooks[channel]
	if !ok {
		return ErrUnsupportedChannel
	}

	confirmed, err := st.HandleWebhook(body, header)
	if err != nil {
		return err
	}
	if confirmed == nil {
		// Event type we don't record.
		return nil
	}

	s.record(confirmed)
	return nil
}

// record writes the normalized order and redeems any discount. Errors are
// logged only: the payment is captured, so the webhook must still be acked.
func (s *paymentService) record(confirmed *strategy.ConfirmedPayment) {
	created, err := s.orders.Record(confirmed.Order, confirmed.Details)
	if err != nil {
		if logger.Log != nil {
			logger.Log.Error("paid order could not be recorded",
				zap.String("payment_intent_id", confirmed.Order.PaymentIntentID),
				zap.String("method", confirmed.Details.Method),
				zap.Error(err))
		}
		return
	}
	if !created || confirmed.Order.Status != orderModel.StatusCompleted {
		return
	}

	var md orderModel.Metadata
	if err := json.Unmarshal(confirmed.Order.Metadata, &md); err == nil && md.DiscountCode != "" {
		if err := s.redeemDiscount(md.DiscountCode, confirmed.Order.ID); err != nil && logger.Log != nil {
			logger.Log.Error("discount redemption failed",
				zap.String("code", md.DiscountCode),
				zap.String("order_id", confirmed.Order.ID),
				zap.Error(err))
		}
	}
}

func (s *paymentService) CapturePayPalOrder(ctx context.Context, in CaptureOrderInput) (*orderModel.Order, error) {
	md, err := s.computeTotals(ctx, in.Items, in.Currency, in.CustomerInfo.Address, in.DiscountCode)
	if err != nil {
		return nil, err
	}
	md.Method = orderModel.MethodPayPal
	md.ProviderID = in.OrderID

	capture, err := s.paypal.VerifyCapture(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if capture.CaptureID == "" {
		capture.CaptureID = in.CaptureID
	}
	md.CaptureID = capture.CaptureID

	amount := md.Total
	cur := string(in.Currency)
	if capture.Verified && capture.Amount != "" {
		if capAmount, err := decimal.NewFromString(capture.Amount); err == nil {
			amount = capAmount
			cur = capture.Currency
			s.checkCaptureAmount(ctx, capAmount, capture.Currency, md.Total, in.Currency, in.OrderID)
		}
	}

	items, _ := json.Marshal(in.Items)
	address, _ := json.Marshal(in.CustomerInfo.Address)
	metadata, _ := json.Marshal(md)

	itemCount := 0
	for _, it := range in.Items {
		itemCount += it.Quantity
	}

	order := &orderModel.Order{
		PaymentIntentID: in.OrderID,
		Amount:          amount,
		Currency:        cur,
		Status:          orderModel.StatusCompleted,
		CustomerEmail:   in.CustomerInfo.Email,
		CustomerName:    in.CustomerInfo.Name,
		ItemsCount:      itemCount,
		ShippingAddress: address,
		Items:           items,
		Metadata:        metadata,
	}

	created, err := s.orders.Record(order, orderService.PaymentDetails{
		Method:    orderModel.MethodPayPal,
		PaymentID: in.OrderID,
	})
	if err != nil {
		return nil, err
	}
	if created {
		if err := s.redeemDiscount(md.DiscountCode, order.ID); err != nil && logger.Log != nil {
			logger.Log.Error("discount redemption failed",
				zap.String("code", md.DiscountCode),
				zap.String("order_id", order.ID),
				zap.Error(err))
		}
	}
	return order, nil
}

// checkCaptureAmount compares what PayPal captured with what we computed,
// converting across currencies when the capture settled in the other one.
// A mismatch is logged for reconciliation, not rejected: the capture
// already happened.
func (s *paymentService) checkCaptureAmount(ctx context.Context, captured decimal.Decimal, capturedCur string, computed decimal.Decimal, computedCur currency.Currency, orderID string) {
	capInOrderCurrency := s.converter.Convert(ctx, captured, currency.Normalize(capturedCur), computedCur)
	diff := capInOrderCurrency.Sub(computed).Abs()

	// Allow a small FX drift between checkout render and capture.
	tolerance := computed.Mul(decimal.NewFromFloat(0.02)).Add(decimal.NewFromFloat(0.05))
	if diff.GreaterThan(tolerance) && logger.Log != nil {
		logger.Log.Warn("paypal capture amount differs from computed total",
			zap.String("order_id", orderID),
			zap.String("captured", captured.StringFixed(2)+" "+capturedCur),
			zap.String("computed", computed.StringFixed(2)+" "+string(computedCur)))
	}
}

func (s *paymentService) CreateCoinbaseCharge(ctx context.Context, in ChargeInput) (*strategy.CoinbaseCharge, error) {
	md, err := s.computeTotals(ctx, in.Items, in.Currency, in.CustomerInfo.Address, in.DiscountCode)
	if err != nil {
		return nil, err
	}

	return s.coinbase.CreateCharge(ctx, strategy.CreateChargeInput{
		Amount:          md.Total,
		Currency:        string(in.Currency),
		CustomerEmail:   in.CustomerInfo.Email,
		CustomerName:    in.CustomerInfo.Name,
		Items:           in.Items,
		ShippingAddress: in.CustomerInfo.Address,
		Breakdown:       md,
	})
}

// CheckCoinbasePayment is the polling path the client hits after redirect.
// It may race the webhook for the same charge; both normalize through the
// same parser and the insert conflict resolves the race.
func (s *paymentService) CheckCoinbasePayment(ctx context.Context, chargeID string) (string, error) {
	charge, err := s.coinbase.GetCharge(ctx, chargeID)
	if err != nil {
		return "", err
	}

	status := charge.Status()
	if status == "COMPLETED" {
		s.record(s.coinbase.Normalize(charge, orderModel.StatusCompleted))
	}
	return status, nil
}
