package postgres

import (
	"context"
	"database/sql"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type couponRepository struct {
	db *sql.DB
}

func NewCouponRepository(db *sql.DB) repository.CouponRepository {
	return &couponRepository{db: db}
}

const couponColumns = `id, code, description, discount_type, discount_value, min_order_cents,
	max_discount_cents, max_redemptions, redemptions, expires_on, active, created_on, updated_on`

func (r *couponRepository) Create(ctx context.Context, c *domain.Coupon) error {
	query := `INSERT INTO coupons (code, description, discount_type, discount_value, min_order_cents,
		max_discount_cents, max_redemptions, expires_on, active, created_on, updated_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	return r.db.QueryRowContext(ctx, query, c.Code, c.Description, c.DiscountType, c.DiscountValue,
		c.MinOrderCents, c.MaxDiscountCents, c.MaxRedemptions, c.ExpiresOn, c.Active, time.Now(), time.Now()).Scan(&c.ID)
}

func (r *couponRepository) GetByID(ctx context.Context, id int32) (*domain.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE id = $1`
	return r.scanCoupon(r.db.QueryRowContext(ctx, query, id))
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE upper(code) = upper($1)`
	return r.scanCoupon(r.db.QueryRowContext(ctx, query, code))
}

func (r *couponRepository) scanCoupon(row *sql.Row) (*domain.Coupon, error) {
	c := &domain.Coupon{}
	err := row.Scan(&c.ID, &c.Code, &c.Description, &c.DiscountType, &c.DiscountValue, &c.MinOrderCents,
		&c.MaxDiscountCents, &c.MaxRedemptions, &c.Redemptions, &c.ExpiresOn, &c.Active, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *couponRepository) Update(ctx context.Context, c *domain.Coupon) error {
	query := `UPDATE coupons SET description=$1, discount_type=$2, discount_value=$3, min_order_cents=$4,
		max_discount_cents=$5, max_redemptions=$6, expires_on=$7, active=$8, updated_on=$9 WHERE id=$10`
	_, err := r.db.ExecContext(ctx, query, c.Description, c.DiscountType, c.DiscountValue, c.MinOrderCents,
		c.MaxDiscountCents, c.MaxRedemptions, c.ExpiresOn, c.Active, time.Now(), c.ID)
	return err
}

func (r *couponRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Coupon, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM coupons`).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + couponColumns + ` FROM coupons ORDER BY created_on DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var coupons []domain.Coupon
	for rows.Next() {
		var c domain.Coupon
		if err := rows.Scan(&c.ID, &c.Code, &c.Description, &c.DiscountType, &c.DiscountValue, &c.MinOrderCents,
			&c.MaxDiscountCents, &c.MaxRedemptions, &c.Redemptions, &c.ExpiresOn, &c.Active,
			&c.CreatedOn, &c.UpdatedOn); err != nil {
			return nil, 0, err
		}
		coupons = append(coupons, c)
	}
	return coupons, count, rows.Err()
}

func (r *couponRepository) IncrementRedemptions(ctx context.Context, id int32) error {
	query := `UPDATE coupons SET redemptions = redemptions + 1, updated_on=$1 WHERE id=$2`
	_, err := r.db.ExecContext(ctx, query, time.Now(), id)
	return err
}

func (r *couponRepository) DeactivateExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE coupons SET active=false, updated_on=NOW() WHERE active=true AND expires_on IS NOT NULL AND expires_on < NOW()`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
