package http

import (
	"net/http"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/service"
)

type SettingsHandler struct {
	settingsSvc service.SettingsService
}

func NewSettingsHandler(settingsSvc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsSvc: settingsSvc}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsSvc.GetSettings(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

type settingsRequest struct {
	PlatformFeeType       string  `json:"platform_fee_type"`
	PlatformFeePercentage float64 `json:"platform_fee_percentage"`
	PlatformFeeFixedCents int64   `json:"platform_fee_fixed_cents"`
	TaxRatePercent        float64 `json:"tax_rate_percent"`
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, err := requireClaims(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req settingsRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	settings := &domain.PlatformSettings{
		PlatformFeeType:       domain.PlatformFeeType(req.PlatformFeeType),
		PlatformFeePercentage: req.PlatformFeePercentage,
		PlatformFeeFixedCents: req.PlatformFeeFixedCents,
		TaxRatePercent:        req.TaxRatePercent,
	}
	if err := h.settingsSvc.UpdateSettings(r.Context(), claims.UserID, settings); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}
