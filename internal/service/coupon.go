package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

var (
	ErrCouponNotFound  = errors.New("coupon not found")
	ErrCouponInactive  = errors.New("coupon is not active")
	ErrCouponExpired   = errors.New("coupon has expired")
	ErrCouponExhausted = errors.New("coupon redemption limit reached")
	ErrCouponMinOrder  = errors.New("order amount is below the coupon minimum")
)

type couponService struct {
	couponRepo repository.CouponRepository
}

func NewCouponService(couponRepo repository.CouponRepository) CouponService {
	return &couponService{couponRepo: couponRepo}
}

// Resolve looks up a coupon by code and returns the discount in cents for the
// given pre-discount order amount. The returned amount is already bounded by
// the coupon's min-order and max-discount rules, so the price calculator can
// apply it directly.
func (s *couponService) Resolve(ctx context.Context, code string, orderAmountCents int64) (int64, *domain.Coupon, error) {
	coupon, err := s.couponRepo.GetByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil, ErrCouponNotFound
		}
		return 0, nil, err
	}

	if !coupon.Active {
		return 0, nil, ErrCouponInactive
	}
	if coupon.ExpiresOn != nil && coupon.ExpiresOn.Before(time.Now()) {
		return 0, nil, ErrCouponExpired
	}
	if coupon.MaxRedemptions > 0 && coupon.Redemptions >= coupon.MaxRedemptions {
		return 0, nil, ErrCouponExhausted
	}
	if orderAmountCents < coupon.MinOrderCents {
		return 0, nil, ErrCouponMinOrder
	}

	var discount int64
	switch coupon.DiscountType {
	case domain.CouponDiscountTypePercentage:
		discount = int64(math.Round(float64(orderAmountCents) * coupon.DiscountValue / 100))
	case domain.CouponDiscountTypeFixed:
		discount = int64(math.Round(coupon.DiscountValue))
	default:
		return 0, nil, fmt.Errorf("unrecognized coupon discount type %q", coupon.DiscountType)
	}

	if coupon.MaxDiscountCents > 0 && discount > coupon.MaxDiscountCents {
		discount = coupon.MaxDiscountCents
	}
	if discount < 0 {
		discount = 0
	}
	return discount, coupon, nil
}

func (s *couponService) RedeemCoupon(ctx context.Context, couponID int32) error {
	return s.couponRepo.IncrementRedemptions(ctx, couponID)
}

func (s *couponService) CreateCoupon(ctx context.Context, coupon *domain.Coupon) error {
	if err := validateCoupon(coupon); err != nil {
		return err
	}
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	return s.couponRepo.Create(ctx, coupon)
}

func (s *couponService) UpdateCoupon(ctx context.Context, coupon *domain.Coupon) error {
	if err := validateCoupon(coupon); err != nil {
		return err
	}
	if _, err := s.couponRepo.GetByID(ctx, coupon.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCouponNotFound
		}
		return err
	}
	return s.couponRepo.Update(ctx, coupon)
}

func (s *couponService) GetCoupon(ctx context.Context, id int32) (*domain.Coupon, error) {
	coupon, err := s.couponRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}
	return coupon, nil
}

func (s *couponService) ListCoupons(ctx context.Context, page, pageSize int32) ([]domain.Coupon, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.couponRepo.List(ctx, page, pageSize)
}

func validateCoupon(coupon *domain.Coupon) error {
	if strings.TrimSpace(coupon.Code) == "" {
		return errors.New("coupon code is required")
	}
	switch coupon.DiscountType {
	case domain.CouponDiscountTypePercentage:
		if coupon.DiscountValue < 0 || coupon.DiscountValue > 100 {
			return errors.New("percentage discount must be between 0 and 100")
		}
	case domain.CouponDiscountTypeFixed:
		if coupon.DiscountValue < 0 {
			return errors.New("fixed discount must be non-negative")
		}
	default:
		return fmt.Errorf("unrecognized coupon discount type %q", coupon.DiscountType)
	}
	if coupon.MinOrderCents < 0 || coupon.MaxDiscountCents < 0 {
		return errors.New("coupon amount bounds must be non-negative")
	}
	return nil
}
