package service

import (
	"context"
	"errors"
	"fmt"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository"
)

type settingsService struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

func (s *settingsService) GetSettings(ctx context.Context) (*domain.PlatformSettings, error) {
	return s.settingsRepo.Get(ctx)
}

func (s *settingsService) UpdateSettings(ctx context.Context, adminID int32, settings *domain.PlatformSettings) error {
	switch settings.PlatformFeeType {
	case domain.PlatformFeeTypePercentage, domain.PlatformFeeTypeFixed:
	default:
		return fmt.Errorf("unrecognized platform fee type %q", settings.PlatformFeeType)
	}
	if settings.PlatformFeePercentage < 0 || settings.PlatformFeePercentage > 100 {
		return errors.New("platform fee percentage must be between 0 and 100")
	}
	if settings.PlatformFeeFixedCents < 0 {
		return errors.New("fixed platform fee must be non-negative")
	}
	if settings.TaxRatePercent < 0 {
		return errors.New("tax rate must be non-negative")
	}

	settings.UpdatedBy = adminID
	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return err
	}

	logger.InfoContext(ctx, "platform settings updated",
		"admin_id", adminID, "fee_type", settings.PlatformFeeType, "tax_rate", settings.TaxRatePercent)
	return nil
}
