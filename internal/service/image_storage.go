package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
	"fleetrent-backend/internal/storage"
)

var (
	ErrImageNotFound    = errors.New("image not found")
	ErrImageNotUploaded = errors.New("image file has not been uploaded yet")
)

const (
	uploadURLExpiry     = 15 * time.Minute
	downloadURLExpiry   = 1 * time.Hour
	pendingImageTTL     = 24 * time.Hour
	maxImagesPerVehicle = 10
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type imageStorageService struct {
	vehicleRepo repository.VehicleRepository
	store       storage.StorageInterface
}

func NewImageStorageService(vehicleRepo repository.VehicleRepository, store storage.StorageInterface) ImageStorageService {
	return &imageStorageService{vehicleRepo: vehicleRepo, store: store}
}

// GetUploadURL reserves a pending image record and returns a presigned URL the
// client uploads the file to. The record expires if never confirmed.
func (s *imageStorageService) GetUploadURL(ctx context.Context, userID, vehicleID int32, filename, contentType string, isPrimary bool) (*domain.VehicleImage, string, error) {
	ext, ok := allowedImageTypes[strings.ToLower(contentType)]
	if !ok {
		return nil, "", fmt.Errorf("unsupported image content type %q", contentType)
	}

	vehicle, err := s.ownedVehicle(ctx, userID, vehicleID)
	if err != nil {
		return nil, "", err
	}

	existing, err := s.vehicleRepo.GetImages(ctx, vehicle.ID)
	if err != nil {
		return nil, "", err
	}
	if len(existing) >= maxImagesPerVehicle {
		return nil, "", fmt.Errorf("vehicle already has the maximum of %d images", maxImagesPerVehicle)
	}

	key := fmt.Sprintf("vehicles/%d/%d%s", vehicle.ID, time.Now().UnixNano(), ext)
	expiresAt := time.Now().Add(pendingImageTTL)
	image := &domain.VehicleImage{
		VehicleID:    vehicle.ID,
		UserID:       userID,
		FileName:     filename,
		FilePath:     key,
		MimeType:     contentType,
		IsPrimary:    isPrimary || len(existing) == 0,
		DisplayOrder: int32(len(existing)),
		Status:       "PENDING",
		ExpiresAt:    &expiresAt,
	}
	if err := s.vehicleRepo.CreateImage(ctx, image); err != nil {
		return nil, "", err
	}

	uploadURL, err := s.store.GeneratePresignedUploadURL(ctx, key, contentType, uploadURLExpiry)
	if err != nil {
		return nil, "", err
	}
	return image, uploadURL, nil
}

// ConfirmImageUpload verifies the file actually landed in storage and flips
// the record from PENDING to CONFIRMED.
func (s *imageStorageService) ConfirmImageUpload(ctx context.Context, userID, imageID, vehicleID int32) (*domain.VehicleImage, error) {
	if _, err := s.ownedVehicle(ctx, userID, vehicleID); err != nil {
		return nil, err
	}

	image, err := s.getImage(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if image.VehicleID != vehicleID {
		return nil, ErrImageNotFound
	}

	exists, size, err := s.store.FileExists(ctx, image.FilePath)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrImageNotUploaded
	}

	if err := s.vehicleRepo.ConfirmImage(ctx, imageID, vehicleID); err != nil {
		return nil, err
	}
	image.Status = "CONFIRMED"
	image.FileSize = size
	return image, nil
}

func (s *imageStorageService) GetDownloadURL(ctx context.Context, imageID int32) (string, error) {
	image, err := s.getImage(ctx, imageID)
	if err != nil {
		return "", err
	}
	if image.Status != "CONFIRMED" {
		return "", ErrImageNotFound
	}
	return s.store.GeneratePresignedDownloadURL(ctx, image.FilePath, downloadURLExpiry)
}

func (s *imageStorageService) GetVehicleImages(ctx context.Context, vehicleID int32) ([]domain.VehicleImage, error) {
	return s.vehicleRepo.GetImages(ctx, vehicleID)
}

func (s *imageStorageService) DeleteImage(ctx context.Context, userID, imageID int32) error {
	image, err := s.getImage(ctx, imageID)
	if err != nil {
		return err
	}
	if _, err := s.ownedVehicle(ctx, userID, image.VehicleID); err != nil {
		return err
	}

	if err := s.store.DeleteFile(ctx, image.FilePath); err != nil {
		return err
	}
	return s.vehicleRepo.DeleteImage(ctx, imageID)
}

func (s *imageStorageService) SetPrimaryImage(ctx context.Context, userID, vehicleID, imageID int32) error {
	if _, err := s.ownedVehicle(ctx, userID, vehicleID); err != nil {
		return err
	}
	image, err := s.getImage(ctx, imageID)
	if err != nil {
		return err
	}
	if image.VehicleID != vehicleID || image.Status != "CONFIRMED" {
		return ErrImageNotFound
	}
	return s.vehicleRepo.SetPrimaryImage(ctx, vehicleID, imageID)
}

func (s *imageStorageService) ownedVehicle(ctx context.Context, userID, vehicleID int32) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	if vehicle.SellerID != userID {
		return nil, ErrNotVehicleOwner
	}
	return vehicle, nil
}

func (s *imageStorageService) getImage(ctx context.Context, imageID int32) (*domain.VehicleImage, error) {
	image, err := s.vehicleRepo.GetImageByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}
	return image, nil
}
