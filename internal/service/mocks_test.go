package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"equiphire-backend/internal/domain"
)

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) CreateIfAvailable(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) Update(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) ExtendIfAvailable(ctx context.Context, bookingID int64, newDrop time.Time, extraCost float64) error {
	args := m.Called(ctx, bookingID, newDrop, extraCost)
	return args.Error(0)
}
func (m *MockBookingRepo) ListByRenter(ctx context.Context, renterID int64, status string, page, pageSize int) ([]domain.Booking, int, error) {
	args := m.Called(ctx, renterID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Int(1), args.Error(2)
}
func (m *MockBookingRepo) ListByVendor(ctx context.Context, vendorID int64, status string, page, pageSize int) ([]domain.Booking, int, error) {
	args := m.Called(ctx, vendorID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Int(1), args.Error(2)
}
func (m *MockBookingRepo) ListRanges(ctx context.Context, equipmentID int64) ([]domain.BookingRange, error) {
	args := m.Called(ctx, equipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingRange), args.Error(1)
}

// MockEquipmentRepo
type MockEquipmentRepo struct {
	mock.Mock
}

func (m *MockEquipmentRepo) Create(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentRepo) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) Update(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockEquipmentRepo) ListByVendor(ctx context.Context, vendorID int64, page, pageSize int) ([]domain.Equipment, int, error) {
	args := m.Called(ctx, vendorID, page, pageSize)
	return args.Get(0).([]domain.Equipment), args.Int(1), args.Error(2)
}
func (m *MockEquipmentRepo) Search(ctx context.Context, query, category string, maxDayRate float64, page, pageSize int) ([]domain.Equipment, int, error) {
	args := m.Called(ctx, query, category, maxDayRate, page, pageSize)
	return args.Get(0).([]domain.Equipment), args.Int(1), args.Error(2)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int64, limit, offset int) ([]domain.Notification, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Int(1), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockPaymentOrderRepo
type MockPaymentOrderRepo struct {
	mock.Mock
}

func (m *MockPaymentOrderRepo) Create(ctx context.Context, order *domain.PaymentOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
func (m *MockPaymentOrderRepo) GetByOrderID(ctx context.Context, orderID string) (*domain.PaymentOrder, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentOrder), args.Error(1)
}
func (m *MockPaymentOrderRepo) Update(ctx context.Context, order *domain.PaymentOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
func (m *MockPaymentOrderRepo) ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]domain.PaymentOrder, int, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.PaymentOrder), args.Int(1), args.Error(2)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingRequestNotification(ctx context.Context, vendorEmail, renterName, equipmentName string) error {
	args := m.Called(ctx, vendorEmail, renterName, equipmentName)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingApprovalNotification(ctx context.Context, renterEmail, equipmentName, vendorName string) error {
	args := m.Called(ctx, renterEmail, equipmentName, vendorName)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingRejectionNotification(ctx context.Context, renterEmail, equipmentName, vendorName string) error {
	args := m.Called(ctx, renterEmail, equipmentName, vendorName)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingCancellationNotification(ctx context.Context, vendorEmail, renterName, equipmentName, reason string) error {
	args := m.Called(ctx, vendorEmail, renterName, equipmentName, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingCompletionNotification(ctx context.Context, email, role, equipmentName string, amount float64) error {
	args := m.Called(ctx, email, role, equipmentName, amount)
	return args.Error(0)
}
func (m *MockEmailService) SendExtensionRequestNotification(ctx context.Context, vendorEmail, renterName, equipmentName string, newDrop time.Time) error {
	args := m.Called(ctx, vendorEmail, renterName, equipmentName, newDrop)
	return args.Error(0)
}
func (m *MockEmailService) SendExtensionResultNotification(ctx context.Context, renterEmail, equipmentName string, approved bool) error {
	args := m.Called(ctx, renterEmail, equipmentName, approved)
	return args.Error(0)
}
func (m *MockEmailService) SendReturnReminder(ctx context.Context, renterEmail, equipmentName string, dropDate time.Time) error {
	args := m.Called(ctx, renterEmail, equipmentName, dropDate)
	return args.Error(0)
}
