package service

import (
	"context"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/payment"
	"fleetrent-backend/internal/pricing"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, phone, company, password string, role domain.UserRole) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID int32) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int32, name, phone, company, avatarURL string) (*domain.User, error)
}

type VehicleService interface {
	AddVehicle(ctx context.Context, vehicle *domain.Vehicle) error
	GetVehicle(ctx context.Context, id int32) (*domain.Vehicle, []domain.VehicleImage, error)
	UpdateVehicle(ctx context.Context, sellerID int32, vehicle *domain.Vehicle) error
	DeleteVehicle(ctx context.Context, sellerID, vehicleID int32) error
	ListSellerVehicles(ctx context.Context, sellerID int32, page, pageSize int32) ([]domain.Vehicle, int32, error)
	SearchVehicles(ctx context.Context, query string, categories []string, maxDailyRateCents int64, location string, page, pageSize int32) ([]domain.Vehicle, int32, error)
}

// QuoteRequest carries the caller-facing booking parameters. The platform fee
// and tax configuration are looked up by the service, never accepted from the
// caller.
type QuoteRequest struct {
	VehicleID  int32  `json:"vehicle_id"`
	StartDate  string `json:"start_date"` // yyyy-mm-dd
	EndDate    string `json:"end_date"`   // yyyy-mm-dd
	CouponCode string `json:"coupon_code,omitempty"`
}

type BookingService interface {
	// QuoteBooking computes a live, non-binding quote for the booking form.
	QuoteBooking(ctx context.Context, req *QuoteRequest) (*pricing.Quote, error)
	// CreateBooking recomputes the authoritative quote with the same
	// calculator, snapshots prices, creates the payment intent and persists
	// the booking as PENDING_PAYMENT.
	CreateBooking(ctx context.Context, buyerID int32, req *QuoteRequest) (*domain.Booking, *payment.Intent, error)
	ConfirmPayment(ctx context.Context, buyerID, bookingID int32) (*domain.Booking, error)
	CancelBooking(ctx context.Context, userID, bookingID int32, reason string) (*domain.Booking, error)
	CompleteBooking(ctx context.Context, sellerID, bookingID int32) (*domain.Booking, error)
	GetBooking(ctx context.Context, userID, bookingID int32) (*domain.Booking, error)
	ListBuyerBookings(ctx context.Context, buyerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListSellerBookings(ctx context.Context, sellerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
}

type CouponService interface {
	// Resolve validates a coupon code against an order amount and returns the
	// discount in cents, already bounded by the coupon's own
	// min-order/max-discount rules. Callers apply it as-is.
	Resolve(ctx context.Context, code string, orderAmountCents int64) (int64, *domain.Coupon, error)
	RedeemCoupon(ctx context.Context, couponID int32) error

	// Admin management
	CreateCoupon(ctx context.Context, coupon *domain.Coupon) error
	UpdateCoupon(ctx context.Context, coupon *domain.Coupon) error
	GetCoupon(ctx context.Context, id int32) (*domain.Coupon, error)
	ListCoupons(ctx context.Context, page, pageSize int32) ([]domain.Coupon, int32, error)
}

type SettingsService interface {
	GetSettings(ctx context.Context) (*domain.PlatformSettings, error)
	UpdateSettings(ctx context.Context, adminID int32, settings *domain.PlatformSettings) error
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type ImageStorageService interface {
	GetUploadURL(ctx context.Context, userID int32, vehicleID int32, filename, contentType string, isPrimary bool) (*domain.VehicleImage, string, error) // image, uploadURL
	ConfirmImageUpload(ctx context.Context, userID, imageID, vehicleID int32) (*domain.VehicleImage, error)
	GetDownloadURL(ctx context.Context, imageID int32) (string, error)
	GetVehicleImages(ctx context.Context, vehicleID int32) ([]domain.VehicleImage, error)
	DeleteImage(ctx context.Context, userID, imageID int32) error
	SetPrimaryImage(ctx context.Context, userID, vehicleID, imageID int32) error
}

type EmailService interface {
	SendBookingRequestNotification(ctx context.Context, sellerEmail, buyerName, vehicleName, startDate, endDate string) error
	SendBookingConfirmationNotification(ctx context.Context, buyerEmail, vehicleName, startDate, endDate string, totalCents int64) error
	SendBookingCancellationNotification(ctx context.Context, email, vehicleName, reason string) error
}
