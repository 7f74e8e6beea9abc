package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, vehicle_id, buyer_id, seller_id, start_date, end_date,
	daily_rate_cents, platform_fee_type, platform_fee_percentage, platform_fee_fixed_cents, tax_rate_percent,
	total_days, subtotal_cents, platform_fee_cents, taxes_cents, coupon_code, coupon_discount_cents,
	total_cents, carbon_saved_kg, status, payment_intent_id, cancel_reason, created_on, updated_on`

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (vehicle_id, buyer_id, seller_id, start_date, end_date,
		daily_rate_cents, platform_fee_type, platform_fee_percentage, platform_fee_fixed_cents, tax_rate_percent,
		total_days, subtotal_cents, platform_fee_cents, taxes_cents, coupon_code, coupon_discount_cents,
		total_cents, carbon_saved_kg, status, payment_intent_id, created_on, updated_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		b.VehicleID, b.BuyerID, b.SellerID, b.StartDate, b.EndDate,
		b.DailyRateCents, b.PlatformFeeType, b.PlatformFeePercentage, b.PlatformFeeFixedCents, b.TaxRatePercent,
		b.TotalDays, b.SubtotalCents, b.PlatformFeeCents, b.TaxesCents, b.CouponCode, b.CouponDiscountCents,
		b.TotalCents, b.CarbonSavedKg, b.Status, b.PaymentIntentID, time.Now(), time.Now(),
	).Scan(&b.ID)
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return r.scanBooking(r.db.QueryRowContext(ctx, query, id))
}

func (r *bookingRepository) GetByPaymentIntentID(ctx context.Context, intentID string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE payment_intent_id = $1`
	return r.scanBooking(r.db.QueryRowContext(ctx, query, intentID))
}

func (r *bookingRepository) scanBooking(row *sql.Row) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := row.Scan(&b.ID, &b.VehicleID, &b.BuyerID, &b.SellerID, &b.StartDate, &b.EndDate,
		&b.DailyRateCents, &b.PlatformFeeType, &b.PlatformFeePercentage, &b.PlatformFeeFixedCents, &b.TaxRatePercent,
		&b.TotalDays, &b.SubtotalCents, &b.PlatformFeeCents, &b.TaxesCents, &b.CouponCode, &b.CouponDiscountCents,
		&b.TotalCents, &b.CarbonSavedKg, &b.Status, &b.PaymentIntentID, &b.CancelReason, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings SET status=$1, payment_intent_id=$2, cancel_reason=$3, updated_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, b.Status, b.PaymentIntentID, b.CancelReason, time.Now(), b.ID)
	return err
}

func (r *bookingRepository) ListByBuyer(ctx context.Context, buyerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, "buyer_id", buyerID, status, page, pageSize)
}

func (r *bookingRepository) ListBySeller(ctx context.Context, sellerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, "seller_id", sellerID, status, page, pageSize)
}

func (r *bookingRepository) list(ctx context.Context, ownerColumn string, ownerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ` + ownerColumn + ` = $1`

	args := []interface{}{ownerID}
	argIdx := 2
	if status != "" {
		query += " AND status = $2"
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.VehicleID, &b.BuyerID, &b.SellerID, &b.StartDate, &b.EndDate,
			&b.DailyRateCents, &b.PlatformFeeType, &b.PlatformFeePercentage, &b.PlatformFeeFixedCents, &b.TaxRatePercent,
			&b.TotalDays, &b.SubtotalCents, &b.PlatformFeeCents, &b.TaxesCents, &b.CouponCode, &b.CouponDiscountCents,
			&b.TotalCents, &b.CarbonSavedKg, &b.Status, &b.PaymentIntentID, &b.CancelReason, &b.CreatedOn, &b.UpdatedOn); err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, b)
	}
	return bookings, count, rows.Err()
}

// HasOverlap reports whether the vehicle already has a booking that blocks the
// requested date range. Only bookings that hold or may hold the vehicle count.
func (r *bookingRepository) HasOverlap(ctx context.Context, vehicleID int32, startDate, endDate string) (bool, error) {
	query := `SELECT count(*) FROM bookings
		WHERE vehicle_id = $1
		  AND status IN ('PENDING_PAYMENT', 'CONFIRMED', 'ACTIVE')
		  AND start_date < $3
		  AND end_date > $2`
	var count int32
	if err := r.db.QueryRowContext(ctx, query, vehicleID, startDate, endDate).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
