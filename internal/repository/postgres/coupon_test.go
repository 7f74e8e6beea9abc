package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"fleetrent-backend/internal/repository/postgres"
)

var couponCols = []string{
	"id", "code", "description", "discount_type", "discount_value", "min_order_cents",
	"max_discount_cents", "max_redemptions", "redemptions", "expires_on", "active", "created_on", "updated_on",
}

func TestCouponRepository_GetByCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewCouponRepository(db)
	ctx := context.Background()

	t.Run("Case-insensitive match", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM coupons WHERE upper\\(code\\) = upper").
			WithArgs("spring10").
			WillReturnRows(sqlmock.NewRows(couponCols).
				AddRow(int64(7), "SPRING10", "Spring promo", "percentage", 10.0, int64(0),
					int64(0), int64(0), int64(0), nil, true, "2025-01-01T00:00:00Z", "2025-01-01T00:00:00Z"))

		coupon, err := repo.GetByCode(ctx, "spring10")
		assert.NoError(t, err)
		assert.Equal(t, "SPRING10", coupon.Code)
		assert.Equal(t, 10.0, coupon.DiscountValue)
		assert.Nil(t, coupon.ExpiresOn)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM coupons WHERE upper\\(code\\) = upper").
			WithArgs("NOPE").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByCode(ctx, "NOPE")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestCouponRepository_DeactivateExpired(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewCouponRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE coupons SET active=false").
			WillReturnResult(sqlmock.NewResult(0, 3))

		count, err := repo.DeactivateExpired(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})
}

func TestCouponRepository_IncrementRedemptions(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewCouponRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE coupons SET redemptions = redemptions \\+ 1").
			WithArgs(sqlmock.AnyArg(), int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.IncrementRedemptions(ctx, 7)
		assert.NoError(t, err)
	})
}
