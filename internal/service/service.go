package service

import (
	"context"
	"errors"
	"time"

	"equiphire-backend/internal/domain"
	"equiphire-backend/internal/pricing"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUnavailableRange is the caller-level translation of a failed
	// availability check or a lost commit-time re-check.
	ErrUnavailableRange = errors.New("equipment is not available for the requested dates")
)

// QuoteRequest asks for a price and availability resolution without
// committing anything.
type QuoteRequest struct {
	EquipmentID      int64     `json:"equipment_id"`
	Start            time.Time `json:"start"`
	End              time.Time `json:"end"`
	DeliveryLat      *float64  `json:"delivery_lat,omitempty"`
	DeliveryLng      *float64  `json:"delivery_lng,omitempty"`
	ExcludeBookingID int64     `json:"exclude_booking_id,omitempty"`
}

// BookingRequest carries everything a renter submits from the booking form.
type BookingRequest struct {
	EquipmentID     int64                `json:"equipment_id"`
	PickupDate      time.Time            `json:"pickup_date"`
	DropDate        time.Time            `json:"drop_date"`
	DeliveryAddress string               `json:"delivery_address"`
	DeliveryLat     *float64             `json:"delivery_lat,omitempty"`
	DeliveryLng     *float64             `json:"delivery_lng,omitempty"`
	PaymentMethod   domain.PaymentMethod `json:"payment_method"`
}

type BookingService interface {
	Quote(ctx context.Context, req *QuoteRequest) (*pricing.Result, error)
	CheckAvailability(ctx context.Context, equipmentID int64, from, to time.Time, excludeBookingID int64) (bool, error)
	UnavailableRanges(ctx context.Context, equipmentID int64) ([]domain.BookingRange, error)
	RequestBooking(ctx context.Context, renterID int64, req *BookingRequest) (*domain.Booking, error)
	CancelBooking(ctx context.Context, renterID, bookingID int64, reason string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, vendorID, bookingID int64, status domain.BookingStatus) (*domain.Booking, error)
	RequestExtension(ctx context.Context, renterID, bookingID int64, newDrop time.Time) (*domain.Booking, error)
	ResolveExtension(ctx context.Context, vendorID, bookingID int64, approve bool) (*domain.Booking, error)
	TrackBooking(ctx context.Context, reference string) (*domain.Booking, error)
	ListUserBookings(ctx context.Context, renterID int64, status string, page, pageSize int) ([]domain.Booking, int, error)
	ListVendorBookings(ctx context.Context, vendorID int64, status string, page, pageSize int) ([]domain.Booking, int, error)
}

type EquipmentService interface {
	AddEquipment(ctx context.Context, vendorID int64, eq *domain.Equipment) error
	GetEquipment(ctx context.Context, id int64) (*domain.Equipment, error)
	UpdateEquipment(ctx context.Context, vendorID int64, eq *domain.Equipment) error
	DeleteEquipment(ctx context.Context, vendorID, id int64) error
	SearchEquipments(ctx context.Context, query, category string, maxDayRate float64, page, pageSize int) ([]domain.Equipment, int, error)
	ListVendorEquipments(ctx context.Context, vendorID int64, page, pageSize int) ([]domain.Equipment, int, error)
}

type PaymentService interface {
	CreateOrder(ctx context.Context, userID int64, bookingReference string, amount float64, currency string) (*domain.PaymentOrder, error)
	ConfirmOrder(ctx context.Context, userID int64, orderID string, success bool) (*domain.PaymentOrder, error)
	ListOrders(ctx context.Context, userID int64, page, pageSize int) ([]domain.PaymentOrder, int, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int64, page, pageSize int) ([]domain.Notification, int, error)
	MarkAsRead(ctx context.Context, userID, notificationID int64) error
}

type EmailService interface {
	SendBookingRequestNotification(ctx context.Context, vendorEmail, renterName, equipmentName string) error
	SendBookingApprovalNotification(ctx context.Context, renterEmail, equipmentName, vendorName string) error
	SendBookingRejectionNotification(ctx context.Context, renterEmail, equipmentName, vendorName string) error
	SendBookingCancellationNotification(ctx context.Context, vendorEmail, renterName, equipmentName, reason string) error
	SendBookingCompletionNotification(ctx context.Context, email, role, equipmentName string, amount float64) error
	SendExtensionRequestNotification(ctx context.Context, vendorEmail, renterName, equipmentName string, newDrop time.Time) error
	SendExtensionResultNotification(ctx context.Context, renterEmail, equipmentName string, approved bool) error
	SendReturnReminder(ctx context.Context, renterEmail, equipmentName string, dropDate time.Time) error
}
