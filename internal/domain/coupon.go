package domain

import "time"

type CouponDiscountType string

const (
	CouponDiscountTypePercentage CouponDiscountType = "percentage"
	CouponDiscountTypeFixed      CouponDiscountType = "fixed"
)

type Coupon struct {
	ID               int32              `json:"id"`
	Code             string             `json:"code"`
	Description      string             `json:"description"`
	DiscountType     CouponDiscountType `json:"discount_type"`
	DiscountValue    float64            `json:"discount_value"` // percent for percentage type, cents for fixed type
	MinOrderCents    int64              `json:"min_order_cents"`
	MaxDiscountCents int64              `json:"max_discount_cents"` // 0 means no cap
	MaxRedemptions   int32              `json:"max_redemptions"`    // 0 means unlimited
	Redemptions      int32              `json:"redemptions"`
	ExpiresOn        *time.Time         `json:"expires_on,omitempty"`
	Active           bool               `json:"active"`
	CreatedOn        string             `json:"created_on"`
	UpdatedOn        string             `json:"updated_on"`
}
