package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"equiphire-backend/internal/domain"
	"equiphire-backend/internal/logger"
	"equiphire-backend/internal/repository"
)

const bookingColumns = `id, reference, equipment_id, renter_id, vendor_id, pickup_date, drop_date,
	requested_drop_date, delivery_address, delivery_lat, delivery_lng, day_rate, rental_days,
	base_cost, travel_cost, platform_fee, total_cost, extension_cost, payment_method, status,
	cancel_reason, created_on, updated_on`

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

// CreateIfAvailable inserts the booking only if its range is still free.
// The equipment row is locked first so concurrent requests for the same
// equipment serialize; the overlap re-check then sees every committed row.
func (r *bookingRepository) CreateIfAvailable(ctx context.Context, b *domain.Booking) error {
	logger.EnterMethod("bookingRepository.CreateIfAvailable", "equipmentID", b.EquipmentID, "renterID", b.RenterID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var equipmentID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM equipments WHERE id = $1 FOR UPDATE`, b.EquipmentID).Scan(&equipmentID)
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	if err != nil {
		return err
	}

	var conflicts int
	// Inclusive overlap: [s1,e1] conflicts with [s2,e2] iff s1 <= e2 AND e1 >= s2.
	err = tx.QueryRowContext(ctx, `
		SELECT count(*) FROM bookings
		WHERE equipment_id = $1 AND status <> 'CANCELLED'
		  AND pickup_date <= $3 AND drop_date >= $2`,
		b.EquipmentID, b.PickupDate, b.DropDate).Scan(&conflicts)
	if err != nil {
		return err
	}
	if conflicts > 0 {
		logger.ExitMethodWithError("bookingRepository.CreateIfAvailable", repository.ErrRangeConflict, "equipmentID", b.EquipmentID)
		return repository.ErrRangeConflict
	}

	now := time.Now()
	query := `INSERT INTO bookings (reference, equipment_id, renter_id, vendor_id, pickup_date, drop_date,
		delivery_address, delivery_lat, delivery_lng, day_rate, rental_days, base_cost, travel_cost,
		platform_fee, total_cost, payment_method, status, created_on, updated_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id`
	err = tx.QueryRowContext(ctx, query,
		b.Reference, b.EquipmentID, b.RenterID, b.VendorID, b.PickupDate, b.DropDate,
		b.DeliveryAddress, b.DeliveryLat, b.DeliveryLng, b.DayRate, b.RentalDays, b.BaseCost,
		b.TravelCost, b.PlatformFee, b.TotalCost, b.PaymentMethod, b.Status, now, now).Scan(&b.ID)
	if err != nil {
		return err
	}
	b.CreatedOn = now
	b.UpdatedOn = now

	if err := tx.Commit(); err != nil {
		return err
	}
	logger.ExitMethod("bookingRepository.CreateIfAvailable", "bookingID", b.ID)
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *bookingRepository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE reference = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, reference))
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings SET status=$1, drop_date=$2, requested_drop_date=$3, extension_cost=$4,
		total_cost=$5, rental_days=$6, base_cost=$7, cancel_reason=$8, updated_on=$9 WHERE id=$10`
	_, err := r.db.ExecContext(ctx, query, b.Status, b.DropDate, b.RequestedDropDate, b.ExtensionCost,
		b.TotalCost, b.RentalDays, b.BaseCost, b.CancelReason, time.Now(), b.ID)
	return err
}

// ExtendIfAvailable commits an approved extension: the new tail
// [old drop, new drop] must still be free of other bookings.
func (r *bookingRepository) ExtendIfAvailable(ctx context.Context, bookingID int64, newDrop time.Time, extraCost float64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var equipmentID int64
	var oldDrop time.Time
	err = tx.QueryRowContext(ctx, `SELECT equipment_id, drop_date FROM bookings WHERE id = $1 FOR UPDATE`, bookingID).Scan(&equipmentID, &oldDrop)
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	if err != nil {
		return err
	}

	var conflicts int
	err = tx.QueryRowContext(ctx, `
		SELECT count(*) FROM bookings
		WHERE equipment_id = $1 AND id <> $2 AND status <> 'CANCELLED'
		  AND pickup_date <= $4 AND drop_date >= $3`,
		equipmentID, bookingID, oldDrop, newDrop).Scan(&conflicts)
	if err != nil {
		return err
	}
	if conflicts > 0 {
		return repository.ErrRangeConflict
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE bookings
		SET drop_date = $1, requested_drop_date = NULL, extension_cost = 0,
		    total_cost = total_cost + $2, status = 'CONFIRMED', updated_on = $3
		WHERE id = $4`,
		newDrop, extraCost, time.Now(), bookingID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *bookingRepository) ListByRenter(ctx context.Context, renterID int64, status string, page, pageSize int) ([]domain.Booking, int, error) {
	return r.list(ctx, "renter_id", renterID, status, page, pageSize)
}

func (r *bookingRepository) ListByVendor(ctx context.Context, vendorID int64, status string, page, pageSize int) ([]domain.Booking, int, error) {
	return r.list(ctx, "vendor_id", vendorID, status, page, pageSize)
}

func (r *bookingRepository) list(ctx context.Context, column string, ownerID int64, status string, page, pageSize int) ([]domain.Booking, int, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ` + column + ` = $1`

	args := []interface{}{ownerID}
	argIdx := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, count, rows.Err()
}

func (r *bookingRepository) ListRanges(ctx context.Context, equipmentID int64) ([]domain.BookingRange, error) {
	query := `SELECT id, pickup_date, drop_date, status FROM bookings
	          WHERE equipment_id = $1 AND status <> 'CANCELLED' ORDER BY pickup_date`
	rows, err := r.db.QueryContext(ctx, query, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ranges []domain.BookingRange
	for rows.Next() {
		var br domain.BookingRange
		if err := rows.Scan(&br.BookingID, &br.Start, &br.End, &br.Status); err != nil {
			return nil, err
		}
		ranges = append(ranges, br)
	}
	return ranges, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *bookingRepository) scanOne(row rowScanner) (*domain.Booking, error) {
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := row.Scan(&b.ID, &b.Reference, &b.EquipmentID, &b.RenterID, &b.VendorID, &b.PickupDate,
		&b.DropDate, &b.RequestedDropDate, &b.DeliveryAddress, &b.DeliveryLat, &b.DeliveryLng,
		&b.DayRate, &b.RentalDays, &b.BaseCost, &b.TravelCost, &b.PlatformFee, &b.TotalCost,
		&b.ExtensionCost, &b.PaymentMethod, &b.Status, &b.CancelReason, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return b, nil
}
