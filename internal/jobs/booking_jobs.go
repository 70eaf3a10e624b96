package jobs

import (
	"context"
	"time"

	"equiphire-backend/internal/logger"
)

// CompletePastDueBookings marks confirmed bookings as COMPLETED once
// their drop date has passed.
func (jr *JobRunner) CompletePastDueBookings() {
	jr.runWithRecovery("CompletePastDueBookings", func() {
		ctx := context.Background()

		query := `
			UPDATE bookings
			SET status = 'COMPLETED',
			    updated_on = NOW()
			WHERE status = 'CONFIRMED'
			  AND drop_date < $1
			RETURNING id, renter_id, vendor_id, equipment_id, total_cost
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to complete past-due bookings", "error", err)
			return
		}
		defer rows.Close()

		type completed struct {
			ID          int64
			RenterID    int64
			VendorID    int64
			EquipmentID int64
			TotalCost   float64
		}
		var done []completed

		for rows.Next() {
			var c completed
			if err := rows.Scan(&c.ID, &c.RenterID, &c.VendorID, &c.EquipmentID, &c.TotalCost); err != nil {
				logger.Error("Failed to scan completed booking", "error", err)
				continue
			}
			done = append(done, c)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating completed bookings", "error", err)
			return
		}

		logger.Info("Completed past-due bookings", "count", len(done))

		for _, c := range done {
			equipmentName := ""
			if eq, err := jr.store.EquipmentRepository.GetByID(ctx, c.EquipmentID); err == nil {
				equipmentName = eq.Name
			}
			if renter, err := jr.store.UserRepository.GetByID(ctx, c.RenterID); err == nil {
				_ = jr.services.Email.SendBookingCompletionNotification(ctx, renter.Email, "renter", equipmentName, c.TotalCost)
			}
			if vendor, err := jr.store.UserRepository.GetByID(ctx, c.VendorID); err == nil {
				_ = jr.services.Email.SendBookingCompletionNotification(ctx, vendor.Email, "vendor", equipmentName, c.TotalCost)
			}
			logger.Debug("Completed booking", "booking_id", c.ID, "equipment_id", c.EquipmentID)
		}
	})
}

// CancelStalePendingBookings cancels bookings still PENDING after their
// pickup date, releasing the dates for other renters.
func (jr *JobRunner) CancelStalePendingBookings() {
	jr.runWithRecovery("CancelStalePendingBookings", func() {
		ctx := context.Background()

		query := `
			UPDATE bookings
			SET status = 'CANCELLED',
			    cancel_reason = 'Not confirmed by vendor in time',
			    updated_on = NOW()
			WHERE status = 'PENDING'
			  AND pickup_date < $1
			RETURNING id, renter_id, equipment_id
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to cancel stale pending bookings", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var id, renterID, equipmentID int64
			if err := rows.Scan(&id, &renterID, &equipmentID); err != nil {
				logger.Error("Failed to scan stale booking", "error", err)
				continue
			}
			count++
			logger.Debug("Cancelled stale pending booking",
				"booking_id", id,
				"renter_id", renterID,
				"equipment_id", equipmentID)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating stale bookings", "error", err)
			return
		}

		logger.Info("Cancelled stale pending bookings", "count", count)
	})
}

// SendReturnReminders emails renters whose confirmed booking ends
// within the next 24 hours.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()

		query := `
			SELECT b.id, b.drop_date, u.email, e.name
			FROM bookings b
			JOIN users u ON u.id = b.renter_id
			JOIN equipments e ON e.id = b.equipment_id
			WHERE b.status = 'CONFIRMED'
			  AND b.drop_date >= $1
			  AND b.drop_date < $2
		`

		now := time.Now().UTC()
		rows, err := jr.db.QueryContext(ctx, query, now, now.Add(24*time.Hour))
		if err != nil {
			logger.Error("Failed to load bookings due for return", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var bookingID int64
			var dropDate time.Time
			var email, equipmentName string
			if err := rows.Scan(&bookingID, &dropDate, &email, &equipmentName); err != nil {
				logger.Error("Failed to scan return reminder row", "error", err)
				continue
			}
			if err := jr.services.Email.SendReturnReminder(ctx, email, equipmentName, dropDate); err != nil {
				logger.Error("Failed to send return reminder", "booking_id", bookingID, "error", err)
				continue
			}
			count++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating return reminders", "error", err)
			return
		}

		logger.Info("Sent return reminders", "count", count)
	})
}

// ExpireStalePaymentOrders expires payment orders that stayed in
// CREATED for over 30 minutes without a gateway verdict.
func (jr *JobRunner) ExpireStalePaymentOrders() {
	jr.runWithRecovery("ExpireStalePaymentOrders", func() {
		ctx := context.Background()

		query := `
			UPDATE payment_orders
			SET status = 'EXPIRED',
			    updated_on = NOW()
			WHERE status = 'CREATED'
			  AND created_on < $1
		`

		cutoff := time.Now().UTC().Add(-30 * time.Minute)
		result, err := jr.db.ExecContext(ctx, query, cutoff)
		if err != nil {
			logger.Error("Failed to expire stale payment orders", "error", err)
			return
		}

		affected, _ := result.RowsAffected()
		logger.Info("Expired stale payment orders", "count", affected)
	})
}
