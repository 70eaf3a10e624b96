package service

import (
	"context"

	"equiphire-backend/internal/domain"
	"equiphire-backend/internal/pricing"
	"equiphire-backend/internal/repository"
)

type equipmentService struct {
	equipmentRepo repository.EquipmentRepository
	userRepo      repository.UserRepository
}

func NewEquipmentService(equipmentRepo repository.EquipmentRepository, userRepo repository.UserRepository) EquipmentService {
	return &equipmentService{equipmentRepo: equipmentRepo, userRepo: userRepo}
}

func (s *equipmentService) AddEquipment(ctx context.Context, vendorID int64, eq *domain.Equipment) error {
	if !(pricing.Coordinate{Lat: eq.BaseLat, Lng: eq.BaseLng}).Valid() {
		return pricing.ErrInvalidInput
	}
	if eq.DayRate < 0 || eq.PerKmRate < 0 || eq.BaseDeliveryCharge < 0 {
		return pricing.ErrInvalidInput
	}
	eq.VendorID = vendorID
	if eq.Status == "" {
		eq.Status = domain.EquipmentStatusAvailable
	}
	return s.equipmentRepo.Create(ctx, eq)
}

func (s *equipmentService) GetEquipment(ctx context.Context, id int64) (*domain.Equipment, error) {
	eq, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vendor, err := s.userRepo.GetByID(ctx, eq.VendorID); err == nil {
		eq.Vendor = vendor
	}
	return eq, nil
}

func (s *equipmentService) UpdateEquipment(ctx context.Context, vendorID int64, eq *domain.Equipment) error {
	existing, err := s.equipmentRepo.GetByID(ctx, eq.ID)
	if err != nil {
		return err
	}
	if existing.VendorID != vendorID {
		return ErrUnauthorized
	}
	if !(pricing.Coordinate{Lat: eq.BaseLat, Lng: eq.BaseLng}).Valid() {
		return pricing.ErrInvalidInput
	}
	if eq.DayRate < 0 || eq.PerKmRate < 0 || eq.BaseDeliveryCharge < 0 {
		return pricing.ErrInvalidInput
	}
	eq.VendorID = existing.VendorID
	return s.equipmentRepo.Update(ctx, eq)
}

func (s *equipmentService) DeleteEquipment(ctx context.Context, vendorID, id int64) error {
	existing, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.VendorID != vendorID {
		return ErrUnauthorized
	}
	return s.equipmentRepo.Delete(ctx, id)
}

func (s *equipmentService) SearchEquipments(ctx context.Context, query, category string, maxDayRate float64, page, pageSize int) ([]domain.Equipment, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.equipmentRepo.Search(ctx, query, category, maxDayRate, page, pageSize)
}

func (s *equipmentService) ListVendorEquipments(ctx context.Context, vendorID int64, page, pageSize int) ([]domain.Equipment, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.equipmentRepo.ListByVendor(ctx, vendorID, page, pageSize)
}
