package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/service"
)

func TestCouponService_Resolve(t *testing.T) {
	ctx := context.Background()

	newCoupon := func() *domain.Coupon {
		return &domain.Coupon{
			ID:            7,
			Code:          "SPRING10",
			DiscountType:  domain.CouponDiscountTypePercentage,
			DiscountValue: 10,
			Active:        true,
		}
	}

	t.Run("Percentage discount", func(t *testing.T) {
		repo := new(MockCouponRepo)
		repo.On("GetByCode", ctx, "SPRING10").Return(newCoupon(), nil)
		svc := service.NewCouponService(repo)

		discount, coupon, err := svc.Resolve(ctx, "SPRING10", 34178)
		assert.NoError(t, err)
		assert.Equal(t, int64(3418), discount) // 10% of 34178, rounded
		assert.Equal(t, int32(7), coupon.ID)
	})

	t.Run("Percentage discount capped by max", func(t *testing.T) {
		c := newCoupon()
		c.MaxDiscountCents = 2000
		repo := new(MockCouponRepo)
		repo.On("GetByCode", ctx, "SPRING10").Return(c, nil)
		svc := service.NewCouponService(repo)

		discount, _, err := svc.Resolve(ctx, "SPRING10", 34178)
		assert.NoError(t, err)
		assert.Equal(t, int64(2000), discount)
	})

	t.Run("Fixed discount", func(t *testing.T) {
		c := newCoupon()
		c.DiscountType = domain.CouponDiscountTypeFixed
		c.DiscountValue = 5000
		repo := new(MockCouponRepo)
		repo.On("GetByCode", ctx, "SPRING10").Return(c, nil)
		svc := service.NewCouponService(repo)

		discount, _, err := svc.Resolve(ctx, "SPRING10", 34178)
		assert.NoError(t, err)
		assert.Equal(t, int64(5000), discount)
	})

	t.Run("Fixed discount may exceed the order amount", func(t *testing.T) {
		// Bounding the total at zero happens in the price calculator, not here.
		c := newCoupon()
		c.DiscountType = domain.CouponDiscountTypeFixed
		c.DiscountValue = 100000
		repo := new(MockCouponRepo)
		repo.On("GetByCode", ctx, "SPRING10").Return(c, nil)
		svc := service.NewCouponService(repo)

		discount, _, err := svc.Resolve(ctx, "SPRING10", 34178)
		assert.NoError(t, err)
		assert.Equal(t, int64(100000), discount)
	})

	t.Run("Unknown code", func(t *testing.T) {
		repo := new(MockCouponRepo)
		repo.On("GetByCode", ctx, "NOPE").Return(nil, sql.ErrNoRows)
		svc := service.NewCouponService(repo)

		_, _, err := svc.Resolve(ctx, "NOPE", 10000)
		assert.ErrorIs(t, err, service.ErrCouponNotFound)
	})

	t.Run("Inactive coupon", func(t *testing.T) {
		c := newCoupon()
		c.Active = false
		repo := new(MockCouponRepo)
		repo.On("GetByCode", ctx, "SPRING10").Return(c, nil)
		svc := service.NewCouponService(repo)

		_, _, err := svc.Resolve(ctx, "SPRING10", 10000)
		assert.ErrorIs(t, err, service.ErrCouponInactive)
	})

	t.Run("Expired coupon", func(t *testing.T) {
		c := newCoupon()
		past := time.Now().Add(-24 * time.Hour)
		c.ExpiresOn = &past
		repo := new(MockCouponRepo)
		repo.On("GetByCode", ctx, "SPRING10").Return(c, nil)
		svc := service.NewCouponService(repo)

		_, _, err := svc.Resolve(ctx, "SPRING10", 10000)
		assert.ErrorIs(t, err, service.ErrCouponExpired)
	})

	t.Run("Redemption limit reached", func(t *testing.T) {
		c := newCoupon()
		c.MaxRedemptions = 100
		c.Redemptions = 100
		repo := new(MockCouponRepo)
		repo.On("GetByCode", ctx, "SPRING10").Return(c, nil)
		svc := service.NewCouponService(repo)

		_, _, err := svc.Resolve(ctx, "SPRING10", 10000)
		assert.ErrorIs(t, err, service.ErrCouponExhausted)
	})

	t.Run("Order below minimum", func(t *testing.T) {
		c := newCoupon()
		c.MinOrderCents = 50000
		repo := new(MockCouponRepo)
		repo.On("GetByCode", ctx, "SPRING10").Return(c, nil)
		svc := service.NewCouponService(repo)

		_, _, err := svc.Resolve(ctx, "SPRING10", 34178)
		assert.ErrorIs(t, err, service.ErrCouponMinOrder)
	})
}

func TestCouponService_CreateCoupon(t *testing.T) {
	ctx := context.Background()

	t.Run("Normalizes the code", func(t *testing.T) {
		repo := new(MockCouponRepo)
		repo.On("Create", ctx, &domain.Coupon{
			Code:          "SPRING10",
			DiscountType:  domain.CouponDiscountTypePercentage,
			DiscountValue: 10,
			Active:        true,
		}).Return(nil)
		svc := service.NewCouponService(repo)

		err := svc.CreateCoupon(ctx, &domain.Coupon{
			Code:          "  spring10 ",
			DiscountType:  domain.CouponDiscountTypePercentage,
			DiscountValue: 10,
			Active:        true,
		})
		assert.NoError(t, err)
	})

	t.Run("Rejects percentage over 100", func(t *testing.T) {
		svc := service.NewCouponService(new(MockCouponRepo))
		err := svc.CreateCoupon(ctx, &domain.Coupon{
			Code:          "BAD",
			DiscountType:  domain.CouponDiscountTypePercentage,
			DiscountValue: 150,
		})
		assert.Error(t, err)
	})

	t.Run("Rejects unknown discount type", func(t *testing.T) {
		svc := service.NewCouponService(new(MockCouponRepo))
		err := svc.CreateCoupon(ctx, &domain.Coupon{
			Code:         "BAD",
			DiscountType: "bogo",
		})
		assert.Error(t, err)
	})
}
