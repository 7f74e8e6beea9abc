package jobs

import (
	"context"
	"fmt"
	"time"

	"fleetrent-backend/internal/logger"
)

// ExpireStaleBookings expires bookings that sat in PENDING_PAYMENT past the
// configured TTL and cancels their payment intents so the funds hold is
// released.
func (jr *JobRunner) ExpireStaleBookings() {
	jr.runWithRecovery("ExpireStaleBookings", func() {
		ctx := context.Background()
		cutoff := time.Now().Add(-time.Duration(jr.config.Booking.PendingPaymentTTLMinutes) * time.Minute)

		query := `
			UPDATE bookings
			SET status = 'EXPIRED',
			    cancel_reason = 'payment not completed in time',
			    updated_on = NOW()
			WHERE status = 'PENDING_PAYMENT'
			  AND created_on < $1
			RETURNING id, payment_intent_id
		`

		rows, err := jr.db.QueryContext(ctx, query, cutoff)
		if err != nil {
			logger.Error("Failed to expire stale bookings", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				id       int32
				intentID string
			)
			if err := rows.Scan(&id, &intentID); err != nil {
				logger.Error("Failed to scan expired booking", "error", err)
				continue
			}
			if intentID != "" {
				if err := jr.gateway.CancelPaymentIntent(ctx, intentID); err != nil {
					logger.Error("Failed to cancel payment intent for expired booking",
						"booking_id", id, "intent_id", intentID, "error", err)
				}
			}
			count++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating expired bookings", "error", err)
			return
		}

		logger.Info("Expired stale bookings", "count", count)
	})
}

// MarkActiveBookings moves confirmed bookings whose rental period has started
// into ACTIVE.
func (jr *JobRunner) MarkActiveBookings() {
	jr.runWithRecovery("MarkActiveBookings", func() {
		jr.execStatusSweep(`
			UPDATE bookings
			SET status = 'ACTIVE',
			    updated_on = NOW()
			WHERE status = 'CONFIRMED'
			  AND start_date <= $1
		`, "Marked bookings active")
	})
}

// MarkCompletedBookings moves active bookings whose rental period has ended
// into COMPLETED.
func (jr *JobRunner) MarkCompletedBookings() {
	jr.runWithRecovery("MarkCompletedBookings", func() {
		jr.execStatusSweep(`
			UPDATE bookings
			SET status = 'COMPLETED',
			    updated_on = NOW()
			WHERE status = 'ACTIVE'
			  AND end_date <= $1
		`, "Marked bookings completed")
	})
}

func (jr *JobRunner) execStatusSweep(query, successMsg string) {
	ctx := context.Background()
	res, err := jr.db.ExecContext(ctx, query, time.Now().Format("2006-01-02"))
	if err != nil {
		logger.Error(fmt.Sprintf("%s failed", successMsg), "error", err)
		return
	}
	count, _ := res.RowsAffected()
	logger.Info(successMsg, "count", count)
}
