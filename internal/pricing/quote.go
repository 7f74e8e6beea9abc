package pricing

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrInvalidInput is returned for any rejected quote input: malformed date
// range, negative rate or percentage, or an unrecognized fee type.
var ErrInvalidInput = errors.New("invalid quote input")

type FeeType string

const (
	FeeTypePercentage FeeType = "percentage"
	FeeTypeFixed      FeeType = "fixed"
)

// Emission factors, kg CO2 per mile
const (
	dieselKgPerMile   = 2.68
	electricKgPerMile = 0.4
	hybridReduction   = 0.55 // hybrid emits 55% of the diesel baseline
)

// FeeConfig is the platform commission configuration, sourced from
// platform-wide settings rather than user input.
type FeeConfig struct {
	Type        FeeType
	Percentage  float64 // percent of subtotal, used when Type is percentage
	FixedAmount float64 // flat amount, used when Type is fixed
}

// QuoteInput carries everything needed to price a booking. Amounts are in
// major currency units; convert to cents only at the charge boundary.
type QuoteInput struct {
	DailyRate      float64
	StartDate      time.Time
	EndDate        time.Time
	Fee            FeeConfig
	TaxRatePercent float64
	// CouponDiscount is the discount amount already resolved and bounded by
	// the coupon's own min-order/max-discount rules. The calculator does not
	// look up or re-validate coupons.
	CouponDiscount float64
	// Carbon estimate inputs, advisory only
	EstimatedDailyMiles float64
	FuelType            string
}

// Quote is the computed price breakdown. It is derived data: recomputed on
// every call, never persisted with independent identity.
type Quote struct {
	TotalDays      int     `json:"total_days"`
	Subtotal       float64 `json:"subtotal"`
	PlatformFee    float64 `json:"platform_fee"`
	Taxes          float64 `json:"taxes"`
	CouponDiscount float64 `json:"coupon_discount"`
	Total          float64 `json:"total"`
	CarbonSavedKg  float64 `json:"carbon_saved_kg"`
}

// ComputeQuote computes a rental price quote from booking parameters. It is a
// pure function: no I/O, no hidden state, safe for concurrent use. Both the
// interactive quote endpoint and the payment-intent creation path must call
// this one implementation so their totals always agree.
func ComputeQuote(in QuoteInput) (*Quote, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	totalDays := int(math.Ceil(in.EndDate.Sub(in.StartDate).Hours() / 24))
	subtotal := in.DailyRate * float64(totalDays)

	var platformFee float64
	switch in.Fee.Type {
	case FeeTypePercentage:
		platformFee = subtotal * in.Fee.Percentage / 100
	case FeeTypeFixed:
		platformFee = in.Fee.FixedAmount
	}

	taxes := (subtotal + platformFee) * in.TaxRatePercent / 100
	total := math.Max(0, subtotal+platformFee+taxes-in.CouponDiscount)

	return &Quote{
		TotalDays:      totalDays,
		Subtotal:       subtotal,
		PlatformFee:    platformFee,
		Taxes:          taxes,
		CouponDiscount: in.CouponDiscount,
		Total:          total,
		CarbonSavedKg:  EstimateCarbonSavings(in.EstimatedDailyMiles, totalDays, in.FuelType),
	}, nil
}

// EstimateCarbonSavings estimates the kg of CO2 avoided over the rental
// compared to a baseline diesel commercial vehicle. The fuel type is matched
// case-insensitively; anything that is not electric or hybrid is treated as
// the diesel baseline. The result is advisory display data and must never
// influence the billed total. Absent inputs yield 0, never an error.
func EstimateCarbonSavings(estimatedDailyMiles float64, totalDays int, fuelType string) float64 {
	if estimatedDailyMiles <= 0 || totalDays <= 0 {
		return 0
	}

	totalMiles := estimatedDailyMiles * float64(totalDays)
	dieselKg := totalMiles * dieselKgPerMile

	var actualKg float64
	fuel := strings.ToLower(fuelType)
	switch {
	case strings.Contains(fuel, "electric"):
		actualKg = totalMiles * electricKgPerMile
	case strings.Contains(fuel, "hybrid"):
		actualKg = dieselKg * hybridReduction
	default:
		actualKg = dieselKg
	}

	return math.Max(0, dieselKg-actualKg)
}

func validate(in QuoteInput) error {
	if !isFiniteNonNegative(in.DailyRate) {
		return fmt.Errorf("%w: daily rate must be non-negative", ErrInvalidInput)
	}
	if !in.EndDate.After(in.StartDate) {
		return fmt.Errorf("%w: end date must be after start date", ErrInvalidInput)
	}
	switch in.Fee.Type {
	case FeeTypePercentage, FeeTypeFixed:
	default:
		return fmt.Errorf("%w: unrecognized platform fee type %q", ErrInvalidInput, in.Fee.Type)
	}
	if !isFiniteNonNegative(in.Fee.Percentage) {
		return fmt.Errorf("%w: platform fee percentage must be non-negative", ErrInvalidInput)
	}
	if !isFiniteNonNegative(in.Fee.FixedAmount) {
		return fmt.Errorf("%w: platform fee amount must be non-negative", ErrInvalidInput)
	}
	if !isFiniteNonNegative(in.TaxRatePercent) {
		return fmt.Errorf("%w: tax rate must be non-negative", ErrInvalidInput)
	}
	if !isFiniteNonNegative(in.CouponDiscount) {
		return fmt.Errorf("%w: coupon discount must be non-negative", ErrInvalidInput)
	}
	return nil
}

func isFiniteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// FromCents converts a minor-unit amount to major units for quote math.
func FromCents(cents int64) float64 {
	return float64(cents) / 100
}

// CentsForCharge rounds a quote amount to minor currency units. Rounding
// happens only here, at the charge/display boundary; internal computation
// keeps full precision so the two call sites cannot drift apart.
func CentsForCharge(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
