package jobs

import (
	"context"

	"fleetrent-backend/internal/logger"
)

// DeactivateExpiredCoupons flips active coupons past their expiry date so the
// resolver stops honoring them.
func (jr *JobRunner) DeactivateExpiredCoupons() {
	jr.runWithRecovery("DeactivateExpiredCoupons", func() {
		count, err := jr.store.DeactivateExpired(context.Background())
		if err != nil {
			logger.Error("Failed to deactivate expired coupons", "error", err)
			return
		}
		logger.Info("Deactivated expired coupons", "count", count)
	})
}

// DeleteExpiredImages removes pending vehicle image records that were never
// confirmed before their upload window closed.
func (jr *JobRunner) DeleteExpiredImages() {
	jr.runWithRecovery("DeleteExpiredImages", func() {
		count, err := jr.store.DeleteExpiredPendingImages(context.Background())
		if err != nil {
			logger.Error("Failed to delete expired pending images", "error", err)
			return
		}
		logger.Info("Deleted expired pending images", "count", count)
	})
}
