package postgres

import (
	"context"
	"database/sql"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the single platform settings row.
func (r *settingsRepository) Get(ctx context.Context) (*domain.PlatformSettings, error) {
	s := &domain.PlatformSettings{}
	query := `SELECT id, platform_fee_type, platform_fee_percentage, platform_fee_fixed_cents,
		tax_rate_percent, updated_by, updated_on FROM platform_settings ORDER BY id LIMIT 1`
	err := r.db.QueryRowContext(ctx, query).Scan(&s.ID, &s.PlatformFeeType, &s.PlatformFeePercentage,
		&s.PlatformFeeFixedCents, &s.TaxRatePercent, &s.UpdatedBy, &s.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *settingsRepository) Update(ctx context.Context, s *domain.PlatformSettings) error {
	query := `UPDATE platform_settings SET platform_fee_type=$1, platform_fee_percentage=$2,
		platform_fee_fixed_cents=$3, tax_rate_percent=$4, updated_by=$5, updated_on=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query, s.PlatformFeeType, s.PlatformFeePercentage,
		s.PlatformFeeFixedCents, s.TaxRatePercent, s.UpdatedBy, time.Now(), s.ID)
	return err
}
