package domain

type PlatformFeeType string

const (
	PlatformFeeTypePercentage PlatformFeeType = "percentage"
	PlatformFeeTypeFixed      PlatformFeeType = "fixed"
)

// PlatformSettings is the single platform-wide pricing configuration row.
// Admins edit it; quote computation takes it as an explicit input.
type PlatformSettings struct {
	ID                    int32           `json:"id"`
	PlatformFeeType       PlatformFeeType `json:"platform_fee_type"`
	PlatformFeePercentage float64         `json:"platform_fee_percentage"`
	PlatformFeeFixedCents int64           `json:"platform_fee_fixed_cents"`
	TaxRatePercent        float64         `json:"tax_rate_percent"`
	UpdatedBy             int32           `json:"updated_by"`
	UpdatedOn             string          `json:"updated_on"`
}
