package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	discountService "github.com/neoenginex/gemsutopia/internal/domain/discount/service"
	orderModel "github.com/neoenginex/gemsutopia/internal/domain/order/model"
	taxService "github.com/neoenginex/gemsutopia/internal/domain/tax/service"
	"github.com/neoenginex/gemsutopia/internal/pkg/currency"
)

// CustomerInfo is the client-supplied identity and destination.
type CustomerInfo struct {
	Email   string             `json:"email" binding:"required,email"`
	Name    string             `json:"name" binding:"required"`
	Address *orderModel.Address `json:"address"`
}

// computeTotals rebuilds the price breakdown server-side from the item
// list. The client-asserted total is never used; only item prices and
// quantities are trusted (the catalog snapshot the storefront rendered).
func (s *paymentService) computeTotals(
	ctx context.Context,
	items []orderModel.OrderItem,
	cur currency.Currency,
	address *orderModel.Address,
	discountCode string,
) (orderModel.Metadata, error) {
	subtotal := decimal.Zero
	itemCount := 0
	for _, it := range items {
		if it.Quantity <= 0 || it.Price.IsNegative() {
			return orderModel.Metadata{}, errors.New("invalid order item")
		}
		subtotal = subtotal.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		itemCount += it.Quantity
	}

	md := orderModel.Metadata{Subtotal: subtotal}

	freeShipping := false
	if discountCode != "" {
		validation, err := s.discounts.Validate(discountCode, subtotal)
		if err != nil {
			return orderModel.Metadata{}, err
		}
		md.Discount = validation.Amount
		md.DiscountCode = validation.Code
		freeShipping = validation.FreeShipping
	}

	if !freeShipping {
		quote, err := s.shipping.QuoteCart(ctx, itemCount, cur)
		if err != nil {
			return orderModel.Metadata{}, err
		}
		md.Shipping = quote.ShippingCost
	} else {
		md.Shipping = decimal.Zero
	}

	taxable := subtotal.Sub(md.Discount)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	taxReq := taxService.Request{}
	if address != nil {
		taxReq = taxService.Request{
			Country:    address.Country,
			Region:     address.State,
			City:       address.City,
			PostalCode: address.PostalCode,
		}
	}
	_, tax := s.tax.Calculate(ctx, taxable, taxReq)
	md.Tax = tax

	md.Total = taxable.Add(md.Shipping).Add(md.Tax).Round(2)
	return md, nil
}

// redeemDiscount records usage after an order was actually created.
// Failures are logged by the caller; the payment is already captured so the
// order stands either way.
func (s *paymentService) redeemDiscount(code, orderID string) error {
	if code == "" || orderID == "" {
		return nil
	}
	err := s.discounts.RecordUsageByCode(code, orderID)
	if errors.Is(err, discountService.ErrCodeNotFound) {
		// Code was deactivated between checkout and confirmation; the
		// customer already paid the discounted price, nothing to record.
		return nil
	}
	return err
}
