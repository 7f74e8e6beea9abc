package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func baseInput() QuoteInput {
	return QuoteInput{
		DailyRate: 100,
		StartDate: date("2025-01-01"),
		EndDate:   date("2025-01-04"),
		Fee: FeeConfig{
			Type:       FeeTypePercentage,
			Percentage: 5,
		},
		TaxRatePercent: 8.5,
	}
}

func TestComputeQuote(t *testing.T) {
	t.Run("Percentage fee, no coupon", func(t *testing.T) {
		q, err := ComputeQuote(baseInput())
		assert.NoError(t, err)
		assert.Equal(t, 3, q.TotalDays)
		assert.Equal(t, 300.0, q.Subtotal)
		assert.Equal(t, 15.0, q.PlatformFee)
		assert.InDelta(t, 26.775, q.Taxes, 1e-9) // (300 + 15) * 0.085
		assert.InDelta(t, 341.775, q.Total, 1e-9)
	})

	t.Run("Coupon discount applied", func(t *testing.T) {
		in := baseInput()
		in.CouponDiscount = 50
		q, err := ComputeQuote(in)
		assert.NoError(t, err)
		assert.Equal(t, 50.0, q.CouponDiscount)
		assert.InDelta(t, 291.775, q.Total, 1e-9)
	})

	t.Run("Coupon exceeding total clamps to zero", func(t *testing.T) {
		in := baseInput()
		in.CouponDiscount = 1000
		q, err := ComputeQuote(in)
		assert.NoError(t, err)
		assert.Equal(t, 0.0, q.Total)
	})

	t.Run("Fixed fee", func(t *testing.T) {
		in := baseInput()
		in.Fee = FeeConfig{Type: FeeTypeFixed, FixedAmount: 25}
		q, err := ComputeQuote(in)
		assert.NoError(t, err)
		assert.Equal(t, 25.0, q.PlatformFee)
		assert.InDelta(t, (300+25)*0.085, q.Taxes, 1e-9)
	})

	t.Run("Partial day rounds up", func(t *testing.T) {
		in := baseInput()
		in.EndDate = in.StartDate.Add(36 * time.Hour)
		q, err := ComputeQuote(in)
		assert.NoError(t, err)
		assert.Equal(t, 2, q.TotalDays)
		assert.Equal(t, 200.0, q.Subtotal)
	})

	t.Run("Zero daily rate is billable", func(t *testing.T) {
		in := baseInput()
		in.DailyRate = 0
		q, err := ComputeQuote(in)
		assert.NoError(t, err)
		assert.Equal(t, 0.0, q.Subtotal)
		assert.Equal(t, 0.0, q.Total)
	})
}

func TestComputeQuote_Rejections(t *testing.T) {
	t.Run("End date equals start date", func(t *testing.T) {
		in := baseInput()
		in.DailyRate = 50
		in.EndDate = in.StartDate
		_, err := ComputeQuote(in)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "end date must be after start date")
	})

	t.Run("End date before start date", func(t *testing.T) {
		in := baseInput()
		in.EndDate = in.StartDate.AddDate(0, 0, -1)
		_, err := ComputeQuote(in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Negative daily rate", func(t *testing.T) {
		in := baseInput()
		in.DailyRate = -1
		_, err := ComputeQuote(in)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "daily rate must be non-negative")
	})

	t.Run("Unrecognized fee type", func(t *testing.T) {
		in := baseInput()
		in.Fee.Type = "tiered"
		_, err := ComputeQuote(in)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "fee type")
	})

	t.Run("Negative tax rate", func(t *testing.T) {
		in := baseInput()
		in.TaxRatePercent = -8.5
		_, err := ComputeQuote(in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Negative fee percentage", func(t *testing.T) {
		in := baseInput()
		in.Fee.Percentage = -5
		_, err := ComputeQuote(in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Negative coupon discount", func(t *testing.T) {
		in := baseInput()
		in.CouponDiscount = -10
		_, err := ComputeQuote(in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestComputeQuote_Properties(t *testing.T) {
	t.Run("Deterministic", func(t *testing.T) {
		in := baseInput()
		in.CouponDiscount = 12.34
		in.EstimatedDailyMiles = 80
		in.FuelType = "Hybrid"
		a, err := ComputeQuote(in)
		assert.NoError(t, err)
		b, err := ComputeQuote(in)
		assert.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("Subtotal monotonic in days", func(t *testing.T) {
		in := baseInput()
		prev := -1.0
		for days := 1; days <= 30; days++ {
			in.EndDate = in.StartDate.AddDate(0, 0, days)
			q, err := ComputeQuote(in)
			assert.NoError(t, err)
			assert.GreaterOrEqual(t, q.Subtotal, prev)
			prev = q.Subtotal
		}
	})

	t.Run("Total never negative", func(t *testing.T) {
		in := baseInput()
		for _, discount := range []float64{0, 100, 341.775, 341.78, 10000} {
			in.CouponDiscount = discount
			q, err := ComputeQuote(in)
			assert.NoError(t, err)
			assert.GreaterOrEqual(t, q.Total, 0.0)
		}
	})
}

func TestEstimateCarbonSavings(t *testing.T) {
	t.Run("Electric vehicle", func(t *testing.T) {
		// 300 miles: diesel 804 kg, electric 120 kg
		saved := EstimateCarbonSavings(100, 3, "Electric")
		assert.InDelta(t, 684.0, saved, 1e-9)
	})

	t.Run("Hybrid vehicle", func(t *testing.T) {
		// 300 miles: diesel 804 kg, hybrid 45% less
		saved := EstimateCarbonSavings(100, 3, "Plug-in Hybrid")
		assert.InDelta(t, 804.0*0.45, saved, 1e-9)
	})

	t.Run("Diesel baseline saves nothing", func(t *testing.T) {
		assert.Equal(t, 0.0, EstimateCarbonSavings(100, 3, "Diesel"))
	})

	t.Run("Unrecognized fuel type treated as diesel", func(t *testing.T) {
		assert.Equal(t, 0.0, EstimateCarbonSavings(100, 3, "warp drive"))
	})

	t.Run("Case-insensitive match", func(t *testing.T) {
		assert.Equal(t, EstimateCarbonSavings(50, 2, "ELECTRIC"), EstimateCarbonSavings(50, 2, "electric"))
	})

	t.Run("Absent inputs yield zero", func(t *testing.T) {
		assert.Equal(t, 0.0, EstimateCarbonSavings(0, 3, "Electric"))
		assert.Equal(t, 0.0, EstimateCarbonSavings(100, 0, "Electric"))
	})

	t.Run("Never negative", func(t *testing.T) {
		for _, fuel := range []string{"", "Electric", "Hybrid", "Diesel", "Gasoline", "LNG"} {
			assert.GreaterOrEqual(t, EstimateCarbonSavings(100, 3, fuel), 0.0)
		}
	})
}

func TestCentsForCharge(t *testing.T) {
	t.Run("Rounds to the cent", func(t *testing.T) {
		assert.Equal(t, int64(34178), CentsForCharge(341.775))
		assert.Equal(t, int64(1230), CentsForCharge(12.3))
		assert.Equal(t, int64(0), CentsForCharge(0))
	})

	t.Run("Round-trips with FromCents", func(t *testing.T) {
		assert.Equal(t, int64(12345), CentsForCharge(FromCents(12345)))
	})
}
