package postgres

import (
	"database/sql"

	"fleetrent-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.VehicleRepository
	repository.BookingRepository
	repository.CouponRepository
	repository.SettingsRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		VehicleRepository:      NewVehicleRepository(db),
		BookingRepository:      NewBookingRepository(db),
		CouponRepository:       NewCouponRepository(db),
		SettingsRepository:     NewSettingsRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
