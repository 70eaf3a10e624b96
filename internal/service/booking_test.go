package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"equiphire-backend/internal/domain"
	"equiphire-backend/internal/repository"
)

func newBookingFixture() (*MockBookingRepo, *MockEquipmentRepo, *MockUserRepo, *MockEmailService, *MockNotificationRepo, BookingService) {
	bookingRepo := new(MockBookingRepo)
	equipmentRepo := new(MockEquipmentRepo)
	userRepo := new(MockUserRepo)
	emailSvc := new(MockEmailService)
	noteRepo := new(MockNotificationRepo)
	svc := NewBookingService(bookingRepo, equipmentRepo, userRepo, emailSvc, noteRepo)
	return bookingRepo, equipmentRepo, userRepo, emailSvc, noteRepo, svc
}

func availableExcavator() *domain.Equipment {
	return &domain.Equipment{
		ID:                 10,
		VendorID:           2,
		Name:               "20-ton Excavator",
		DayRate:            5000,
		BaseLat:            19.0760,
		BaseLng:            72.8777,
		PerKmRate:          150,
		BaseDeliveryCharge: 2000,
		Status:             domain.EquipmentStatusAvailable,
	}
}

func TestRequestBooking_Success(t *testing.T) {
	bookingRepo, equipmentRepo, userRepo, emailSvc, noteRepo, svc := newBookingFixture()

	eq := availableExcavator()
	equipmentRepo.On("GetByID", mock.Anything, int64(10)).Return(eq, nil)
	bookingRepo.On("ListRanges", mock.Anything, int64(10)).Return([]domain.BookingRange{}, nil)
	bookingRepo.On("CreateIfAvailable", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
	userRepo.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2, Name: "Vendor", Email: "vendor@example.com"}, nil)
	userRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Name: "Renter", Email: "renter@example.com"}, nil)
	emailSvc.On("SendBookingRequestNotification", mock.Anything, "vendor@example.com", "Renter", eq.Name).Return(nil)
	noteRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	booking, err := svc.RequestBooking(context.Background(), 1, &BookingRequest{
		EquipmentID:   10,
		PickupDate:    start,
		DropDate:      start.Add(48 * time.Hour),
		PaymentMethod: domain.PaymentMethodCOD,
	})

	assert.NoError(t, err)
	assert.NotNil(t, booking)
	assert.NotEmpty(t, booking.Reference)
	assert.Equal(t, domain.BookingStatusPending, booking.Status)
	assert.Equal(t, 2, booking.RentalDays)
	assert.Equal(t, 10000.0, booking.BaseCost)
	assert.Equal(t, 0.0, booking.TravelCost)
	assert.Equal(t, 100.0, booking.PlatformFee)
	assert.Equal(t, 10100.0, booking.TotalCost)
	bookingRepo.AssertCalled(t, "CreateIfAvailable", mock.Anything, mock.Anything)
}

func TestRequestBooking_OverlappingRange(t *testing.T) {
	bookingRepo, equipmentRepo, _, _, _, svc := newBookingFixture()

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	equipmentRepo.On("GetByID", mock.Anything, int64(10)).Return(availableExcavator(), nil)
	bookingRepo.On("ListRanges", mock.Anything, int64(10)).Return([]domain.BookingRange{
		{BookingID: 77, Start: start.Add(24 * time.Hour), End: start.Add(96 * time.Hour), Status: domain.BookingStatusConfirmed},
	}, nil)

	_, err := svc.RequestBooking(context.Background(), 1, &BookingRequest{
		EquipmentID:   10,
		PickupDate:    start,
		DropDate:      start.Add(48 * time.Hour),
		PaymentMethod: domain.PaymentMethodCOD,
	})

	assert.ErrorIs(t, err, ErrUnavailableRange)
	bookingRepo.AssertNotCalled(t, "CreateIfAvailable", mock.Anything, mock.Anything)
}

func TestRequestBooking_LosesCommitRace(t *testing.T) {
	bookingRepo, equipmentRepo, _, _, _, svc := newBookingFixture()

	equipmentRepo.On("GetByID", mock.Anything, int64(10)).Return(availableExcavator(), nil)
	bookingRepo.On("ListRanges", mock.Anything, int64(10)).Return([]domain.BookingRange{}, nil)
	bookingRepo.On("CreateIfAvailable", mock.Anything, mock.Anything).Return(repository.ErrRangeConflict)

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.RequestBooking(context.Background(), 1, &BookingRequest{
		EquipmentID:   10,
		PickupDate:    start,
		DropDate:      start.Add(24 * time.Hour),
		PaymentMethod: domain.PaymentMethodUPI,
	})

	assert.ErrorIs(t, err, ErrUnavailableRange)
}

func TestRequestBooking_RejectsUnknownPaymentMethod(t *testing.T) {
	_, equipmentRepo, _, _, _, svc := newBookingFixture()

	equipmentRepo.On("GetByID", mock.Anything, int64(10)).Return(availableExcavator(), nil)

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.RequestBooking(context.Background(), 1, &BookingRequest{
		EquipmentID:   10,
		PickupDate:    start,
		DropDate:      start.Add(24 * time.Hour),
		PaymentMethod: domain.PaymentMethod("BARTER"),
	})

	assert.Error(t, err)
}

func TestCancelBooking_OnlyOwnBookings(t *testing.T) {
	bookingRepo, _, _, _, _, svc := newBookingFixture()

	bookingRepo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{
		ID: 5, RenterID: 42, Status: domain.BookingStatusPending,
	}, nil)

	_, err := svc.CancelBooking(context.Background(), 1, 5, "changed my mind")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCancelBooking_CompletedCannotBeCancelled(t *testing.T) {
	bookingRepo, _, _, _, _, svc := newBookingFixture()

	bookingRepo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{
		ID: 5, RenterID: 1, Status: domain.BookingStatusCompleted,
	}, nil)

	_, err := svc.CancelBooking(context.Background(), 1, 5, "too late")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	cases := []struct {
		name    string
		current domain.BookingStatus
		next    domain.BookingStatus
		wantErr bool
	}{
		{"pending to confirmed", domain.BookingStatusPending, domain.BookingStatusConfirmed, false},
		{"pending to cancelled", domain.BookingStatusPending, domain.BookingStatusCancelled, false},
		{"confirmed to completed", domain.BookingStatusConfirmed, domain.BookingStatusCompleted, false},
		{"pending to completed", domain.BookingStatusPending, domain.BookingStatusCompleted, true},
		{"completed to confirmed", domain.BookingStatusCompleted, domain.BookingStatusConfirmed, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bookingRepo, equipmentRepo, userRepo, emailSvc, noteRepo, svc := newBookingFixture()

			bookingRepo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{
				ID: 5, RenterID: 1, VendorID: 2, EquipmentID: 10, Status: tc.current,
			}, nil)
			bookingRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
			equipmentRepo.On("GetByID", mock.Anything, int64(10)).Return(availableExcavator(), nil)
			userRepo.On("GetByID", mock.Anything, mock.Anything).Return(&domain.User{ID: 1, Name: "Someone", Email: "someone@example.com"}, nil)
			emailSvc.On("SendBookingApprovalNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
			emailSvc.On("SendBookingRejectionNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
			emailSvc.On("SendBookingCompletionNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
			noteRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

			updated, err := svc.UpdateStatus(context.Background(), 2, 5, tc.next)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.next, updated.Status)
			}
		})
	}
}

func TestRequestExtension_MarksUpdatePending(t *testing.T) {
	bookingRepo, equipmentRepo, userRepo, emailSvc, noteRepo, svc := newBookingFixture()

	drop := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	newDrop := drop.Add(48 * time.Hour)
	booking := &domain.Booking{
		ID: 5, RenterID: 1, VendorID: 2, EquipmentID: 10,
		DropDate: drop, DayRate: 5000,
		Status: domain.BookingStatusConfirmed,
	}

	bookingRepo.On("GetByID", mock.Anything, int64(5)).Return(booking, nil)
	// Only the booking's own range occupies the calendar, so the tail is free.
	bookingRepo.On("ListRanges", mock.Anything, int64(10)).Return([]domain.BookingRange{
		{BookingID: 5, Start: drop.Add(-48 * time.Hour), End: drop, Status: domain.BookingStatusConfirmed},
	}, nil)
	bookingRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	equipmentRepo.On("GetByID", mock.Anything, int64(10)).Return(availableExcavator(), nil)
	userRepo.On("GetByID", mock.Anything, mock.Anything).Return(&domain.User{ID: 2, Name: "Vendor", Email: "vendor@example.com"}, nil)
	emailSvc.On("SendExtensionRequestNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	noteRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	updated, err := svc.RequestExtension(context.Background(), 1, 5, newDrop)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusUpdatePending, updated.Status)
	assert.NotNil(t, updated.RequestedDropDate)
	assert.Equal(t, newDrop, *updated.RequestedDropDate)
	// Two extra days at the snapshot rate, no platform fee on extensions.
	assert.Equal(t, 10000.0, updated.ExtensionCost)
}

func TestRequestExtension_TailOccupied(t *testing.T) {
	bookingRepo, _, _, _, _, svc := newBookingFixture()

	drop := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	bookingRepo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{
		ID: 5, RenterID: 1, VendorID: 2, EquipmentID: 10,
		DropDate: drop, DayRate: 5000,
		Status: domain.BookingStatusConfirmed,
	}, nil)
	bookingRepo.On("ListRanges", mock.Anything, int64(10)).Return([]domain.BookingRange{
		{BookingID: 99, Start: drop.Add(24 * time.Hour), End: drop.Add(96 * time.Hour), Status: domain.BookingStatusPending},
	}, nil)

	_, err := svc.RequestExtension(context.Background(), 1, 5, drop.Add(48*time.Hour))
	assert.ErrorIs(t, err, ErrUnavailableRange)
}

func TestResolveExtension_ApproveLosesRace(t *testing.T) {
	bookingRepo, equipmentRepo, userRepo, emailSvc, noteRepo, svc := newBookingFixture()

	drop := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	newDrop := drop.Add(48 * time.Hour)
	booking := &domain.Booking{
		ID: 5, RenterID: 1, VendorID: 2, EquipmentID: 10,
		DropDate: drop, DayRate: 5000,
		RequestedDropDate: &newDrop, ExtensionCost: 10000,
		Status: domain.BookingStatusUpdatePending,
	}

	bookingRepo.On("GetByID", mock.Anything, int64(5)).Return(booking, nil)
	bookingRepo.On("ExtendIfAvailable", mock.Anything, int64(5), newDrop, 10000.0).Return(repository.ErrRangeConflict)
	bookingRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	equipmentRepo.On("GetByID", mock.Anything, mock.Anything).Return(availableExcavator(), nil)
	userRepo.On("GetByID", mock.Anything, mock.Anything).Return(&domain.User{ID: 1}, nil)
	emailSvc.On("SendExtensionResultNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	noteRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.ResolveExtension(context.Background(), 2, 5, true)

	assert.ErrorIs(t, err, ErrUnavailableRange)
	// The request is dropped and the booking reverts to its confirmed shape.
	assert.Nil(t, booking.RequestedDropDate)
	assert.Equal(t, 0.0, booking.ExtensionCost)
	assert.Equal(t, domain.BookingStatusConfirmed, booking.Status)
}

func TestResolveExtension_Reject(t *testing.T) {
	bookingRepo, equipmentRepo, userRepo, emailSvc, noteRepo, svc := newBookingFixture()

	drop := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	newDrop := drop.Add(48 * time.Hour)
	booking := &domain.Booking{
		ID: 5, RenterID: 1, VendorID: 2, EquipmentID: 10,
		DropDate: drop, RequestedDropDate: &newDrop, ExtensionCost: 10000,
		Status: domain.BookingStatusUpdatePending,
	}

	bookingRepo.On("GetByID", mock.Anything, int64(5)).Return(booking, nil)
	bookingRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	equipmentRepo.On("GetByID", mock.Anything, mock.Anything).Return(availableExcavator(), nil)
	userRepo.On("GetByID", mock.Anything, mock.Anything).Return(&domain.User{ID: 1, Email: "renter@example.com"}, nil)
	emailSvc.On("SendExtensionResultNotification", mock.Anything, mock.Anything, mock.Anything, false).Return(nil)
	noteRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	updated, err := svc.ResolveExtension(context.Background(), 2, 5, false)

	assert.NoError(t, err)
	assert.Nil(t, updated.RequestedDropDate)
	assert.Equal(t, domain.BookingStatusConfirmed, updated.Status)
	assert.Equal(t, drop, updated.DropDate)
	bookingRepo.AssertNotCalled(t, "ExtendIfAvailable", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTrackBooking_AttachesEquipment(t *testing.T) {
	bookingRepo, equipmentRepo, _, _, _, svc := newBookingFixture()

	eq := availableExcavator()
	bookingRepo.On("GetByReference", mock.Anything, "ref-123").Return(&domain.Booking{
		ID: 5, EquipmentID: 10, Reference: "ref-123",
	}, nil)
	equipmentRepo.On("GetByID", mock.Anything, int64(10)).Return(eq, nil)

	booking, err := svc.TrackBooking(context.Background(), "ref-123")

	assert.NoError(t, err)
	assert.NotNil(t, booking.Equipment)
	assert.Equal(t, eq.Name, booking.Equipment.Name)
}

func TestTrackBooking_UnknownReference(t *testing.T) {
	bookingRepo, _, _, _, _, svc := newBookingFixture()

	bookingRepo.On("GetByReference", mock.Anything, "nope").Return(nil, repository.ErrNotFound)

	_, err := svc.TrackBooking(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
