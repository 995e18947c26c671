package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/neoenginex/gemsutopia/internal/domain/discount/model"
	"github.com/neoenginex/gemsutopia/internal/domain/discount/repository"
)

var (
	ErrCodeNotFound  = errors.New("Invalid discount code")
	ErrCodeExpired   = errors.New("This discount code has expired")
	ErrCodeExhausted = errors.New("This discount code has reached its usage limit")
)

// MinimumOrderError carries the exact minimum so the storefront can show it.
type MinimumOrderError struct {
	Minimum decimal.Decimal
}

func (e *MinimumOrderError) Error() string {
	return fmt.Sprintf("Minimum order of $%s required to use this code", e.Minimum.StringFixed(2))
}

// Validation is the successful outcome of validating a code against a
// subtotal. Amount never exceeds the subtotal.
type Validation struct {
	Code         string          `json:"code"`
	Type         string          `json:"type"`
	Value        decimal.Decimal `json:"value"`
	Amount       decimal.Decimal `json:"amount"`
	FreeShipping bool            `json:"free_shipping"`
}

type DiscountService interface {
	Validate(code string, subtotal decimal.Decimal) (*Validation, error)

	// RecordUsage is idempotent per (code, order): calling it twice for the
	// same order increments used_count once.
	RecordUsage(codeID, orderID string) error

	// RecordUsageByCode resolves the code string first; used by payment
	// paths that only carry the code in provider metadata.
	RecordUsageByCode(code, orderID string) error

	CreateCode(code *model.DiscountCode) error
	GetCodes(offset, limit int) ([]model.DiscountCode, int64, error)
	UpdateCode(code *model.DiscountCode) error
	DeleteCode(id string) error
}

type discountService struct {
	repo repository.DiscountRepository
	now  func() time.Time
}

func NewDiscountService(repo repository.DiscountRepository) DiscountService {
	return &discountService{repo: repo, now: time.Now}
}

// Validate checks a code against an order subtotal, short-circuiting on the
// first failed rule: existence/active, expiry, usage limit, minimum order.
func (s *discountService) Validate(code string, subtotal decimal.Decimal) (*Validation, error) {
	found, err := s.repo.FindActiveByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}

	if found.ExpiresAt != nil && found.ExpiresAt.Before(s.now()) {
		return nil, ErrCodeExpired
	}
	if found.UsageLimit != nil && found.UsedCount >= *found.UsageLimit {
		return nil, ErrCodeExhausted
	}
	if subtotal.LessThan(found.MinimumOrder) {
		return nil, &MinimumOrderError{Minimum: found.MinimumOrder}
	}

	return &Validation{
		Code:         found.Code,
		Type:         found.DiscountType,
		Value:        found.DiscountValue,
		Amount:       discountAmount(found, subtotal),
		FreeShipping: found.FreeShipping,
	}, nil
}

// discountAmount computes the money taken off the subtotal. Fixed discounts
// are capped at the subtotal so the order total can never go negative.
func discountAmount(code *model.DiscountCode, subtotal decimal.Decimal) decimal.Decimal {
	switch code.DiscountType {
	case model.TypePercentage:
		return subtotal.Mul(code.DiscountValue).Div(decimal.NewFromInt(100)).Round(2)
	case model.TypeFixedAmount:
		if code.DiscountValue.GreaterThan(subtotal) {
			return subtotal
		}
		return code.DiscountValue
	default:
		return decimal.Zero
	}
}

func (s *discountService) RecordUsage(codeID, orderID string) error {
	inserted, err := s.repo.InsertUsage(&model.DiscountUsage{
		DiscountCodeID: codeID,
		OrderID:        orderID,
	})
	if err != nil {
		return err
	}
	if !inserted {
		// Already redeemed for this order; do not double-count.
		return nil
	}
	return s.repo.IncrementUsedCount(codeID)
}

func (s *discountService) RecordUsageByCode(code, orderID string) error {
	found, err := s.repo.FindActiveByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCodeNotFound
		}
		return err
	}
	return s.RecordUsage(found.ID, orderID)
}

func (s *discountService) CreateCode(code *model.DiscountCode) error {
	return s.repo.Create(code)
}

func (s *discountService) GetCodes(offset, limit int) ([]model.DiscountCode, int64, error) {
	return s.repo.GetList(offset, limit)
}

func (s *discountService) UpdateCode(code *model.DiscountCode) error {
	return s.repo.Update(code)
}

func (s *discountService) DeleteCode(id string) error {
	return s.repo.Delete(id)
}
