package http

import (
	"net/http"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/pricing"
	"fleetrent-backend/internal/service"
)

type CouponHandler struct {
	couponSvc service.CouponService
}

func NewCouponHandler(couponSvc service.CouponService) *CouponHandler {
	return &CouponHandler{couponSvc: couponSvc}
}

type couponRequest struct {
	Code             string  `json:"code"`
	Description      string  `json:"description"`
	DiscountType     string  `json:"discount_type"`
	DiscountValue    float64 `json:"discount_value"`
	MinOrderCents    int64   `json:"min_order_cents"`
	MaxDiscountCents int64   `json:"max_discount_cents"`
	MaxRedemptions   int32   `json:"max_redemptions"`
	ExpiresOn        string  `json:"expires_on,omitempty"` // RFC 3339
	Active           bool    `json:"active"`
}

func (req *couponRequest) toDomain() (*domain.Coupon, error) {
	coupon := &domain.Coupon{
		Code:             req.Code,
		Description:      req.Description,
		DiscountType:     domain.CouponDiscountType(req.DiscountType),
		DiscountValue:    req.DiscountValue,
		MinOrderCents:    req.MinOrderCents,
		MaxDiscountCents: req.MaxDiscountCents,
		MaxRedemptions:   req.MaxRedemptions,
		Active:           req.Active,
	}
	if req.ExpiresOn != "" {
		expires, err := time.Parse(time.RFC3339, req.ExpiresOn)
		if err != nil {
			return nil, errBadRequest
		}
		coupon.ExpiresOn = &expires
	}
	return coupon, nil
}

func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req couponRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	coupon, err := req.toDomain()
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.couponSvc.CreateCoupon(r.Context(), coupon); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, coupon)
}

func (h *CouponHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req couponRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	coupon, err := req.toDomain()
	if err != nil {
		respondError(w, r, err)
		return
	}
	coupon.ID = id
	if err := h.couponSvc.UpdateCoupon(r.Context(), coupon); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, coupon)
}

func (h *CouponHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	coupon, err := h.couponSvc.GetCoupon(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, coupon)
}

func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	coupons, total, err := h.couponSvc.ListCoupons(r.Context(), page, pageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: coupons, Total: total})
}

type validateCouponRequest struct {
	Code             string `json:"code"`
	OrderAmountCents int64  `json:"order_amount_cents"`
}

type validateCouponResponse struct {
	Valid         bool    `json:"valid"`
	DiscountCents int64   `json:"discount_cents"`
	Discount      float64 `json:"discount"`
	Description   string  `json:"description,omitempty"`
}

// Validate lets the booking form check a coupon code before submitting. It
// never reserves a redemption.
func (h *CouponHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req validateCouponRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	discountCents, coupon, err := h.couponSvc.Resolve(r.Context(), req.Code, req.OrderAmountCents)
	if err != nil {
		if statusForError(err) < 500 {
			respondJSON(w, http.StatusOK, validateCouponResponse{Valid: false})
			return
		}
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, validateCouponResponse{
		Valid:         true,
		DiscountCents: discountCents,
		Discount:      pricing.FromCents(discountCents),
		Description:   coupon.Description,
	})
}
