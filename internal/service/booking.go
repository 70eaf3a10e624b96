package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"equiphire-backend/internal/domain"
	"equiphire-backend/internal/pricing"
	"equiphire-backend/internal/repository"
)

type bookingService struct {
	bookingRepo   repository.BookingRepository
	equipmentRepo repository.EquipmentRepository
	userRepo      repository.UserRepository
	emailSvc      EmailService
	noteRepo      repository.NotificationRepository
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	equipmentRepo repository.EquipmentRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
	noteRepo repository.NotificationRepository,
) BookingService {
	return &bookingService{
		bookingRepo:   bookingRepo,
		equipmentRepo: equipmentRepo,
		userRepo:      userRepo,
		emailSvc:      emailSvc,
		noteRepo:      noteRepo,
	}
}

func (s *bookingService) Quote(ctx context.Context, req *QuoteRequest) (*pricing.Result, error) {
	eq, err := s.equipmentRepo.GetByID(ctx, req.EquipmentID)
	if err != nil {
		return nil, err
	}

	ranges, err := s.bookingRepo.ListRanges(ctx, eq.ID)
	if err != nil {
		return nil, err
	}

	return pricing.ComputePricing(pricing.Request{
		DayRate:            eq.DayRate,
		Start:              req.Start,
		End:                req.End,
		EquipmentLocation:  pricing.Coordinate{Lat: eq.BaseLat, Lng: eq.BaseLng},
		DeliveryLocation:   deliveryCoordinate(req.DeliveryLat, req.DeliveryLng),
		PerKmRate:          eq.PerKmRate,
		BaseDeliveryCharge: eq.BaseDeliveryCharge,
	}, ranges, req.ExcludeBookingID)
}

func (s *bookingService) CheckAvailability(ctx context.Context, equipmentID int64, from, to time.Time, excludeBookingID int64) (bool, error) {
	ranges, err := s.bookingRepo.ListRanges(ctx, equipmentID)
	if err != nil {
		return false, err
	}
	return pricing.CheckAvailability(from, to, ranges, excludeBookingID), nil
}

func (s *bookingService) UnavailableRanges(ctx context.Context, equipmentID int64) ([]domain.BookingRange, error) {
	return s.bookingRepo.ListRanges(ctx, equipmentID)
}

func (s *bookingService) RequestBooking(ctx context.Context, renterID int64, req *BookingRequest) (*domain.Booking, error) {
	eq, err := s.equipmentRepo.GetByID(ctx, req.EquipmentID)
	if err != nil {
		return nil, err
	}
	if eq.Status != domain.EquipmentStatusAvailable {
		return nil, errors.New("equipment is not open for booking")
	}

	switch req.PaymentMethod {
	case domain.PaymentMethodCOD, domain.PaymentMethodOnline, domain.PaymentMethodUPI:
	default:
		return nil, fmt.Errorf("unsupported payment method: %s", req.PaymentMethod)
	}

	ranges, err := s.bookingRepo.ListRanges(ctx, eq.ID)
	if err != nil {
		return nil, err
	}

	result, err := pricing.ComputePricing(pricing.Request{
		DayRate:            eq.DayRate,
		Start:              req.PickupDate,
		End:                req.DropDate,
		EquipmentLocation:  pricing.Coordinate{Lat: eq.BaseLat, Lng: eq.BaseLng},
		DeliveryLocation:   deliveryCoordinate(req.DeliveryLat, req.DeliveryLng),
		PerKmRate:          eq.PerKmRate,
		BaseDeliveryCharge: eq.BaseDeliveryCharge,
	}, ranges, 0)
	if err != nil {
		return nil, err
	}
	if !result.Available {
		return nil, ErrUnavailableRange
	}

	booking := &domain.Booking{
		Reference:       uuid.NewString(),
		EquipmentID:     eq.ID,
		RenterID:        renterID,
		VendorID:        eq.VendorID,
		PickupDate:      req.PickupDate,
		DropDate:        req.DropDate,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryLat:     req.DeliveryLat,
		DeliveryLng:     req.DeliveryLng,
		DayRate:         eq.DayRate,
		RentalDays:      result.RentalDays,
		BaseCost:        result.BaseCost,
		TravelCost:      result.TravelCost,
		PlatformFee:     result.PlatformFee,
		TotalCost:       result.TotalCost,
		PaymentMethod:   req.PaymentMethod,
		Status:          domain.BookingStatusPending,
	}

	// The quote above is advisory. The repository re-checks the range inside
	// the insert transaction, so a concurrent booking loses cleanly here.
	if err := s.bookingRepo.CreateIfAvailable(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrRangeConflict) {
			return nil, ErrUnavailableRange
		}
		return nil, err
	}

	// Notify vendor
	vendor, _ := s.userRepo.GetByID(ctx, eq.VendorID)
	renter, _ := s.userRepo.GetByID(ctx, renterID)
	if vendor != nil && renter != nil {
		_ = s.emailSvc.SendBookingRequestNotification(ctx, vendor.Email, renter.Name, eq.Name)

		notif := &domain.Notification{
			UserID:  vendor.ID,
			Title:   "New Booking Request",
			Message: fmt.Sprintf("%s requested to book %s", renter.Name, eq.Name),
			Attributes: map[string]string{
				"type":       "BOOKING_REQUEST",
				"booking_id": fmt.Sprintf("%d", booking.ID),
			},
		}
		_ = s.noteRepo.Create(ctx, notif)
	}

	return booking, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, renterID, bookingID int64, reason string) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.RenterID != renterID {
		return nil, ErrUnauthorized
	}
	switch b.Status {
	case domain.BookingStatusPending, domain.BookingStatusConfirmed, domain.BookingStatusUpdatePending:
	default:
		return nil, fmt.Errorf("booking in status %s can no longer be cancelled", b.Status)
	}

	b.Status = domain.BookingStatusCancelled
	b.CancelReason = reason
	b.RequestedDropDate = nil
	b.ExtensionCost = 0
	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	// Notify vendor
	renter, _ := s.userRepo.GetByID(ctx, renterID)
	vendor, _ := s.userRepo.GetByID(ctx, b.VendorID)
	eq, _ := s.equipmentRepo.GetByID(ctx, b.EquipmentID)
	if renter != nil && vendor != nil && eq != nil {
		_ = s.emailSvc.SendBookingCancellationNotification(ctx, vendor.Email, renter.Name, eq.Name, reason)

		notif := &domain.Notification{
			UserID:  vendor.ID,
			Title:   "Booking Cancelled",
			Message: fmt.Sprintf("%s cancelled booking for %s", renter.Name, eq.Name),
			Attributes: map[string]string{
				"type":       "BOOKING_CANCELLED",
				"booking_id": fmt.Sprintf("%d", b.ID),
			},
		}
		_ = s.noteRepo.Create(ctx, notif)
	}

	return b, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, vendorID, bookingID int64, status domain.BookingStatus) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.VendorID != vendorID {
		return nil, ErrUnauthorized
	}

	switch {
	case status == domain.BookingStatusConfirmed && b.Status == domain.BookingStatusPending:
	case status == domain.BookingStatusCancelled && b.Status == domain.BookingStatusPending:
	case status == domain.BookingStatusCompleted && b.Status == domain.BookingStatusConfirmed:
	default:
		return nil, fmt.Errorf("cannot move booking from %s to %s", b.Status, status)
	}

	b.Status = status
	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	// Notify renter
	renter, _ := s.userRepo.GetByID(ctx, b.RenterID)
	vendor, _ := s.userRepo.GetByID(ctx, vendorID)
	eq, _ := s.equipmentRepo.GetByID(ctx, b.EquipmentID)
	if renter != nil && vendor != nil && eq != nil {
		var title, message string
		switch status {
		case domain.BookingStatusConfirmed:
			_ = s.emailSvc.SendBookingApprovalNotification(ctx, renter.Email, eq.Name, vendor.Name)
			title = "Booking Confirmed"
			message = fmt.Sprintf("Your booking for %s was confirmed by %s", eq.Name, vendor.Name)
		case domain.BookingStatusCancelled:
			_ = s.emailSvc.SendBookingRejectionNotification(ctx, renter.Email, eq.Name, vendor.Name)
			title = "Booking Rejected"
			message = fmt.Sprintf("Your booking for %s was rejected by %s", eq.Name, vendor.Name)
		case domain.BookingStatusCompleted:
			_ = s.emailSvc.SendBookingCompletionNotification(ctx, renter.Email, "Renter", eq.Name, b.TotalCost)
			title = "Booking Completed"
			message = fmt.Sprintf("Your booking for %s is complete", eq.Name)
		}

		notif := &domain.Notification{
			UserID:  renter.ID,
			Title:   title,
			Message: message,
			Attributes: map[string]string{
				"type":       "BOOKING_" + string(status),
				"booking_id": fmt.Sprintf("%d", b.ID),
			},
		}
		_ = s.noteRepo.Create(ctx, notif)
	}

	return b, nil
}

func (s *bookingService) RequestExtension(ctx context.Context, renterID, bookingID int64, newDrop time.Time) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.RenterID != renterID {
		return nil, ErrUnauthorized
	}
	if b.Status != domain.BookingStatusConfirmed {
		return nil, fmt.Errorf("only confirmed bookings can be extended, current status is %s", b.Status)
	}

	extraDays, err := pricing.RentalDays(b.DropDate, newDrop)
	if err != nil {
		return nil, err
	}

	// Advisory check on the extension tail; the binding check happens when
	// the vendor approves.
	ranges, err := s.bookingRepo.ListRanges(ctx, b.EquipmentID)
	if err != nil {
		return nil, err
	}
	if !pricing.CheckAvailability(b.DropDate, newDrop, ranges, b.ID) {
		return nil, ErrUnavailableRange
	}

	// Extension is billed at the day rate snapshot, no extra platform fee.
	extra, err := pricing.Aggregate(b.DayRate, extraDays, 0)
	if err != nil {
		return nil, err
	}

	b.RequestedDropDate = &newDrop
	b.ExtensionCost = extra.BaseCost
	b.Status = domain.BookingStatusUpdatePending
	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	// Notify vendor
	renter, _ := s.userRepo.GetByID(ctx, renterID)
	vendor, _ := s.userRepo.GetByID(ctx, b.VendorID)
	eq, _ := s.equipmentRepo.GetByID(ctx, b.EquipmentID)
	if renter != nil && vendor != nil && eq != nil {
		_ = s.emailSvc.SendExtensionRequestNotification(ctx, vendor.Email, renter.Name, eq.Name, newDrop)

		notif := &domain.Notification{
			UserID:  vendor.ID,
			Title:   "Extension Requested",
			Message: fmt.Sprintf("%s requested to extend booking for %s", renter.Name, eq.Name),
			Attributes: map[string]string{
				"type":       "EXTENSION_REQUEST",
				"booking_id": fmt.Sprintf("%d", b.ID),
			},
		}
		_ = s.noteRepo.Create(ctx, notif)
	}

	return b, nil
}

func (s *bookingService) ResolveExtension(ctx context.Context, vendorID, bookingID int64, approve bool) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.VendorID != vendorID {
		return nil, ErrUnauthorized
	}
	if b.Status != domain.BookingStatusUpdatePending || b.RequestedDropDate == nil {
		return nil, errors.New("booking has no pending extension")
	}

	if approve {
		err := s.bookingRepo.ExtendIfAvailable(ctx, b.ID, *b.RequestedDropDate, b.ExtensionCost)
		if errors.Is(err, repository.ErrRangeConflict) {
			// Someone booked the tail meanwhile. Drop the request and keep
			// the original drop date.
			b.RequestedDropDate = nil
			b.ExtensionCost = 0
			b.Status = domain.BookingStatusConfirmed
			if uerr := s.bookingRepo.Update(ctx, b); uerr != nil {
				return nil, uerr
			}
			return nil, ErrUnavailableRange
		}
		if err != nil {
			return nil, err
		}
	} else {
		b.RequestedDropDate = nil
		b.ExtensionCost = 0
		b.Status = domain.BookingStatusConfirmed
		if err := s.bookingRepo.Update(ctx, b); err != nil {
			return nil, err
		}
	}

	updated, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	// Notify renter
	renter, _ := s.userRepo.GetByID(ctx, b.RenterID)
	eq, _ := s.equipmentRepo.GetByID(ctx, b.EquipmentID)
	if renter != nil && eq != nil {
		_ = s.emailSvc.SendExtensionResultNotification(ctx, renter.Email, eq.Name, approve)

		title := "Extension Rejected"
		if approve {
			title = "Extension Approved"
		}
		notif := &domain.Notification{
			UserID:  renter.ID,
			Title:   title,
			Message: fmt.Sprintf("Your extension request for %s was resolved", eq.Name),
			Attributes: map[string]string{
				"type":       "EXTENSION_RESOLVED",
				"booking_id": fmt.Sprintf("%d", b.ID),
			},
		}
		_ = s.noteRepo.Create(ctx, notif)
	}

	return updated, nil
}

func (s *bookingService) TrackBooking(ctx context.Context, reference string) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if eq, err := s.equipmentRepo.GetByID(ctx, b.EquipmentID); err == nil {
		b.Equipment = eq
	}
	return b, nil
}

func (s *bookingService) ListUserBookings(ctx context.Context, renterID int64, status string, page, pageSize int) ([]domain.Booking, int, error) {
	return s.bookingRepo.ListByRenter(ctx, renterID, status, page, pageSize)
}

func (s *bookingService) ListVendorBookings(ctx context.Context, vendorID int64, status string, page, pageSize int) ([]domain.Booking, int, error) {
	return s.bookingRepo.ListByVendor(ctx, vendorID, status, page, pageSize)
}

func deliveryCoordinate(lat, lng *float64) *pricing.Coordinate {
	if lat == nil || lng == nil {
		return nil
	}
	return &pricing.Coordinate{Lat: *lat, Lng: *lng}
}
