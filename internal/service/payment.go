package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"equiphire-backend/internal/domain"
	"equiphire-backend/internal/repository"
)

type paymentService struct {
	paymentRepo repository.PaymentOrderRepository
	bookingRepo repository.BookingRepository
}

func NewPaymentService(paymentRepo repository.PaymentOrderRepository, bookingRepo repository.BookingRepository) PaymentService {
	return &paymentService{paymentRepo: paymentRepo, bookingRepo: bookingRepo}
}

func (s *paymentService) CreateOrder(ctx context.Context, userID int64, bookingReference string, amount float64, currency string) (*domain.PaymentOrder, error) {
	if amount <= 0 {
		return nil, errors.New("order amount must be positive")
	}
	if currency == "" {
		currency = "INR"
	}

	if bookingReference != "" {
		booking, err := s.bookingRepo.GetByReference(ctx, bookingReference)
		if err != nil {
			return nil, err
		}
		if booking.RenterID != userID {
			return nil, ErrUnauthorized
		}
	}

	order := &domain.PaymentOrder{
		OrderID:          uuid.NewString(),
		BookingReference: bookingReference,
		UserID:           userID,
		Amount:           amount,
		Currency:         currency,
		Receipt:          fmt.Sprintf("order_%d_%d", userID, time.Now().Unix()),
		Status:           domain.PaymentOrderStatusCreated,
	}
	if err := s.paymentRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *paymentService) ConfirmOrder(ctx context.Context, userID int64, orderID string, success bool) (*domain.PaymentOrder, error) {
	order, err := s.paymentRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrUnauthorized
	}
	if order.Status != domain.PaymentOrderStatusCreated {
		return nil, fmt.Errorf("order is already %s", order.Status)
	}

	if success {
		order.Status = domain.PaymentOrderStatusPaid
	} else {
		order.Status = domain.PaymentOrderStatusFailed
	}
	if err := s.paymentRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *paymentService) ListOrders(ctx context.Context, userID int64, page, pageSize int) ([]domain.PaymentOrder, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.paymentRepo.ListByUser(ctx, userID, page, pageSize)
}
