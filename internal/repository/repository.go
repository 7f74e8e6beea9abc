package repository

import (
	"context"

	"fleetrent-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context, role string, page, pageSize int32) ([]domain.User, int32, error)
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id int32) (*domain.Vehicle, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	Delete(ctx context.Context, id int32) error
	ListBySeller(ctx context.Context, sellerID int32, page, pageSize int32) ([]domain.Vehicle, int32, error)
	Search(ctx context.Context, query string, categories []string, maxDailyRateCents int64, location string, page, pageSize int32) ([]domain.Vehicle, int32, error)

	// Image management (unified pending + confirmed)
	CreateImage(ctx context.Context, image *domain.VehicleImage) error
	GetImageByID(ctx context.Context, imageID int32) (*domain.VehicleImage, error)
	GetImages(ctx context.Context, vehicleID int32) ([]domain.VehicleImage, error)
	ConfirmImage(ctx context.Context, imageID, vehicleID int32) error
	DeleteImage(ctx context.Context, imageID int32) error
	SetPrimaryImage(ctx context.Context, vehicleID, imageID int32) error
	DeleteExpiredPendingImages(ctx context.Context) (int64, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	GetByPaymentIntentID(ctx context.Context, intentID string) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	ListByBuyer(ctx context.Context, buyerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListBySeller(ctx context.Context, sellerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	HasOverlap(ctx context.Context, vehicleID int32, startDate, endDate string) (bool, error)
}

type CouponRepository interface {
	Create(ctx context.Context, coupon *domain.Coupon) error
	GetByID(ctx context.Context, id int32) (*domain.Coupon, error)
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	Update(ctx context.Context, coupon *domain.Coupon) error
	List(ctx context.Context, page, pageSize int32) ([]domain.Coupon, int32, error)
	IncrementRedemptions(ctx context.Context, id int32) error
	DeactivateExpired(ctx context.Context) (int64, error)
}

type SettingsRepository interface {
	Get(ctx context.Context) (*domain.PlatformSettings, error)
	Update(ctx context.Context, settings *domain.PlatformSettings) error
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
