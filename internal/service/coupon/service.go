package coupon

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/domain"
)

type Service struct {
	repo couponRepo
}

type couponRepo interface {
	Create(ctx context.Context, c domain.Coupon) (*domain.Coupon, error)
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	List(ctx context.Context) ([]domain.Coupon, error)
	Update(ctx context.Context, c domain.Coupon) (*domain.Coupon, error)
	Delete(ctx context.Context, id string) error
	IncrementUsage(ctx context.Context, id string) error
}

func New(repo couponRepo) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Code          string     `json:"code"`
	DiscountType  string     `json:"discountType"`
	DiscountValue int64      `json:"discountValue"`
	MinOrderCents int64      `json:"minOrderCents"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
	UsageLimit    int        `json:"usageLimit"`
	Active        *bool      `json:"active,omitempty"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Coupon, error) {
	if strings.TrimSpace(in.Code) == "" {
		return nil, fmt.Errorf("%w: code required", domain.ErrValidation)
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	return s.repo.Create(ctx, domain.Coupon{
		Code:          strings.ToUpper(strings.TrimSpace(in.Code)),
		DiscountType:  in.DiscountType,
		DiscountValue: in.DiscountValue,
		MinOrderCents: in.MinOrderCents,
		ExpiresAt:     in.ExpiresAt,
		UsageLimit:    in.UsageLimit,
		Active:        active,
	})
}

func (s *Service) List(ctx context.Context) ([]domain.Coupon, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id string, in CreateInput) (*domain.Coupon, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	return s.repo.Update(ctx, domain.Coupon{
		ID:            id,
		DiscountType:  in.DiscountType,
		DiscountValue: in.DiscountValue,
		MinOrderCents: in.MinOrderCents,
		ExpiresAt:     in.ExpiresAt,
		UsageLimit:    in.UsageLimit,
		Active:        active,
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Validate checks a coupon against a cart subtotal and returns the coupon
// with the discount it grants. Every rejection wraps domain.ErrCouponInvalid
// so callers can distinguish a bad coupon from an infrastructure failure.
func (s *Service) Validate(ctx context.Context, code string, subtotalCents int64) (*domain.Coupon, int64, error) {
	c, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, fmt.Errorf("%w: unknown code", domain.ErrCouponInvalid)
		}
		return nil, 0, err
	}
	if !c.Active {
		return nil, 0, fmt.Errorf("%w: inactive", domain.ErrCouponInvalid)
	}
	if c.ExpiresAt != nil && time.Now().After(*c.ExpiresAt) {
		return nil, 0, fmt.Errorf("%w: expired", domain.ErrCouponInvalid)
	}
	if c.UsageLimit > 0 && c.UsageCount >= c.UsageLimit {
		return nil, 0, fmt.Errorf("%w: usage limit reached", domain.ErrCouponInvalid)
	}
	if subtotalCents < c.MinOrderCents {
		return nil, 0, fmt.Errorf("%w: order below minimum", domain.ErrCouponInvalid)
	}
	return c, c.DiscountFor(subtotalCents), nil
}

// Redeem consumes one use of the coupon.
func (s *Service) Redeem(ctx context.Context, id string) error {
	return s.repo.IncrementUsage(ctx, id)
}

func validate(in CreateInput) error {
	switch in.DiscountType {
	case domain.DiscountPercent:
		if in.DiscountValue <= 0 || in.DiscountValue > 100 {
			return fmt.Errorf("%w: percent discount must be between 1 and 100", domain.ErrValidation)
		}
	case domain.DiscountFixed:
		if in.DiscountValue <= 0 {
			return fmt.Errorf("%w: fixed discount must be positive", domain.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unsupported discount type", domain.ErrValidation)
	}
	if in.MinOrderCents < 0 || in.UsageLimit < 0 {
		return fmt.Errorf("%w: negative constraint", domain.ErrValidation)
	}
	return nil
}
