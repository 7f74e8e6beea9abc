package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

var ErrNotVehicleOwner = errors.New("user does not own this vehicle")

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
	userRepo    repository.UserRepository
}

func NewVehicleService(vehicleRepo repository.VehicleRepository, userRepo repository.UserRepository) VehicleService {
	return &vehicleService{vehicleRepo: vehicleRepo, userRepo: userRepo}
}

func (s *vehicleService) AddVehicle(ctx context.Context, vehicle *domain.Vehicle) error {
	if err := validateVehicle(vehicle); err != nil {
		return err
	}
	vehicle.Status = domain.VehicleStatusActive
	return s.vehicleRepo.Create(ctx, vehicle)
}

func (s *vehicleService) GetVehicle(ctx context.Context, id int32) (*domain.Vehicle, []domain.VehicleImage, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrVehicleNotFound
		}
		return nil, nil, err
	}

	if seller, err := s.userRepo.GetByID(ctx, vehicle.SellerID); err == nil {
		vehicle.Seller = seller
	}

	images, err := s.vehicleRepo.GetImages(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return vehicle, images, nil
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, sellerID int32, vehicle *domain.Vehicle) error {
	existing, err := s.vehicleRepo.GetByID(ctx, vehicle.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVehicleNotFound
		}
		return err
	}
	if existing.SellerID != sellerID {
		return ErrNotVehicleOwner
	}
	if err := validateVehicle(vehicle); err != nil {
		return err
	}
	vehicle.SellerID = existing.SellerID
	return s.vehicleRepo.Update(ctx, vehicle)
}

func (s *vehicleService) DeleteVehicle(ctx context.Context, sellerID, vehicleID int32) error {
	existing, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVehicleNotFound
		}
		return err
	}
	if existing.SellerID != sellerID {
		return ErrNotVehicleOwner
	}
	return s.vehicleRepo.Delete(ctx, vehicleID)
}

func (s *vehicleService) ListSellerVehicles(ctx context.Context, sellerID int32, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.vehicleRepo.ListBySeller(ctx, sellerID, page, pageSize)
}

func (s *vehicleService) SearchVehicles(ctx context.Context, query string, categories []string, maxDailyRateCents int64, location string, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.vehicleRepo.Search(ctx, query, categories, maxDailyRateCents, location, page, pageSize)
}

func validateVehicle(vehicle *domain.Vehicle) error {
	if strings.TrimSpace(vehicle.Name) == "" {
		return errors.New("vehicle name is required")
	}
	switch vehicle.Category {
	case domain.VehicleCategoryBoxTruck, domain.VehicleCategoryCargoVan, domain.VehicleCategoryFlatbed,
		domain.VehicleCategoryRefrigerated, domain.VehicleCategoryPickup:
	default:
		return errors.New("unrecognized vehicle category")
	}
	if vehicle.DailyRateCents < 0 {
		return errors.New("daily rate must be non-negative")
	}
	if vehicle.EstimatedDailyMiles < 0 {
		return errors.New("estimated daily miles must be non-negative")
	}
	return nil
}
