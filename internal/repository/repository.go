package repository

import (
	"context"
	"time"

	"equiphire-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type EquipmentRepository interface {
	Create(ctx context.Context, eq *domain.Equipment) error
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
	Update(ctx context.Context, eq *domain.Equipment) error
	Delete(ctx context.Context, id int64) error
	ListByVendor(ctx context.Context, vendorID int64, page, pageSize int) ([]domain.Equipment, int, error)
	Search(ctx context.Context, query, category string, maxDayRate float64, page, pageSize int) ([]domain.Equipment, int, error)
}

type BookingRepository interface {
	// CreateIfAvailable re-verifies the requested range inside the same
	// transaction that inserts, so check-then-book cannot race. Returns
	// ErrRangeConflict when the range is taken.
	CreateIfAvailable(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	// ExtendIfAvailable moves the drop date under the same transactional
	// overlap re-check, excluding the booking itself.
	ExtendIfAvailable(ctx context.Context, bookingID int64, newDrop time.Time, extraCost float64) error
	ListByRenter(ctx context.Context, renterID int64, status string, page, pageSize int) ([]domain.Booking, int, error)
	ListByVendor(ctx context.Context, vendorID int64, status string, page, pageSize int) ([]domain.Booking, int, error)
	// ListRanges returns the occupied intervals of every non-cancelled
	// booking for the equipment, a snapshot for the availability check.
	ListRanges(ctx context.Context, equipmentID int64) ([]domain.BookingRange, error)
}

type PaymentOrderRepository interface {
	Create(ctx context.Context, order *domain.PaymentOrder) error
	GetByOrderID(ctx context.Context, orderID string) (*domain.PaymentOrder, error)
	Update(ctx context.Context, order *domain.PaymentOrder) error
	ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]domain.PaymentOrder, int, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int64, limit, offset int) ([]domain.Notification, int, error)
	MarkAsRead(ctx context.Context, id, userID int64) error
}
