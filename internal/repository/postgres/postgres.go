package postgres

import (
	"database/sql"

	"equiphire-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.EquipmentRepository
	repository.BookingRepository
	repository.PaymentOrderRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		EquipmentRepository:    NewEquipmentRepository(db),
		BookingRepository:      NewBookingRepository(db),
		PaymentOrderRepository: NewPaymentOrderRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
