package domain

type BookingStatus string

const (
	BookingStatusPendingPayment BookingStatus = "PENDING_PAYMENT"
	BookingStatusConfirmed      BookingStatus = "CONFIRMED"
	BookingStatusActive         BookingStatus = "ACTIVE"
	BookingStatusCompleted      BookingStatus = "COMPLETED"
	BookingStatusCancelled      BookingStatus = "CANCELLED"
	BookingStatusExpired        BookingStatus = "EXPIRED"
)

type Booking struct {
	ID        int32  `json:"id"`
	VehicleID int32  `json:"vehicle_id"`
	BuyerID   int32  `json:"buyer_id"`
	SellerID  int32  `json:"seller_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	// Price snapshot fields — captured from the vehicle and platform settings
	// at booking creation time. The quote is recomputed from these snapshots,
	// never from live listing prices.
	DailyRateCents        int64   `json:"daily_rate_cents"`
	PlatformFeeType       string  `json:"platform_fee_type"`
	PlatformFeePercentage float64 `json:"platform_fee_percentage"`
	PlatformFeeFixedCents int64   `json:"platform_fee_fixed_cents"`
	TaxRatePercent        float64 `json:"tax_rate_percent"`
	// Quote breakdown, rounded to cents at persistence time
	TotalDays           int32         `json:"total_days"`
	SubtotalCents       int64         `json:"subtotal_cents"`
	PlatformFeeCents    int64         `json:"platform_fee_cents"`
	TaxesCents          int64         `json:"taxes_cents"`
	CouponCode          string        `json:"coupon_code,omitempty"`
	CouponDiscountCents int64         `json:"coupon_discount_cents"`
	TotalCents          int64         `json:"total_cents"`
	CarbonSavedKg       float64       `json:"carbon_saved_kg"`
	Status              BookingStatus `json:"status"`
	PaymentIntentID     string        `json:"payment_intent_id,omitempty"`
	CancelReason        string        `json:"cancel_reason,omitempty"`
	CreatedOn           string        `json:"created_on"`
	UpdatedOn           string        `json:"updated_on"`
}
