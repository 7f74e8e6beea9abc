package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/security"
	"fleetrent-backend/internal/service"
	"fleetrent-backend/internal/storage"
)

// Services bundles the dependencies the router needs.
type Services struct {
	Auth          service.AuthService
	Users         service.UserService
	Vehicles      service.VehicleService
	Bookings      service.BookingService
	Coupons       service.CouponService
	Settings      service.SettingsService
	Notifications service.NotificationService
	Images        service.ImageStorageService
	Storage       storage.StorageInterface
	TokenManager  security.TokenManager
}

// NewRouter builds the full API route tree.
func NewRouter(deps Services) *mux.Router {
	authHandler := NewAuthHandler(deps.Auth)
	userHandler := NewUserHandler(deps.Users, deps.Notifications)
	vehicleHandler := NewVehicleHandler(deps.Vehicles)
	bookingHandler := NewBookingHandler(deps.Bookings)
	couponHandler := NewCouponHandler(deps.Coupons)
	settingsHandler := NewSettingsHandler(deps.Settings)
	imageHandler := NewImageHandler(deps.Images, deps.Storage)

	r := mux.NewRouter()
	r.Use(RequestLogging)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/vehicles", vehicleHandler.Search).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id:[0-9]+}", vehicleHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id:[0-9]+}/images/{imageId:[0-9]+}/url", imageHandler.GetDownloadURL).Methods(http.MethodGet)
	api.HandleFunc("/settings", settingsHandler.Get).Methods(http.MethodGet)

	// Mock object storage endpoints, used when no cloud bucket is configured
	api.HandleFunc("/upload/{token}", imageHandler.HandleMockUpload).Methods(http.MethodPut)
	api.HandleFunc("/download/{hash}", imageHandler.HandleMockDownload).Methods(http.MethodGet)

	// Authenticated routes
	auth := api.NewRoute().Subrouter()
	auth.Use(Authenticate(deps.TokenManager))

	auth.HandleFunc("/me", userHandler.GetProfile).Methods(http.MethodGet)
	auth.HandleFunc("/me", userHandler.UpdateProfile).Methods(http.MethodPatch)
	auth.HandleFunc("/notifications", userHandler.ListNotifications).Methods(http.MethodGet)
	auth.HandleFunc("/notifications/{id:[0-9]+}/read", userHandler.MarkNotificationRead).Methods(http.MethodPost)

	auth.HandleFunc("/quotes", bookingHandler.Quote).Methods(http.MethodPost)
	auth.HandleFunc("/coupons/validate", couponHandler.Validate).Methods(http.MethodPost)

	auth.HandleFunc("/bookings", bookingHandler.ListMine).Methods(http.MethodGet)
	auth.HandleFunc("/bookings/{id:[0-9]+}", bookingHandler.Get).Methods(http.MethodGet)
	auth.HandleFunc("/bookings/{id:[0-9]+}/cancel", bookingHandler.Cancel).Methods(http.MethodPost)

	// Buyer routes
	buyer := auth.NewRoute().Subrouter()
	buyer.Use(RequireRole(domain.UserRoleBuyer, domain.UserRoleAdmin))
	buyer.HandleFunc("/bookings", bookingHandler.Create).Methods(http.MethodPost)
	buyer.HandleFunc("/bookings/{id:[0-9]+}/confirm-payment", bookingHandler.ConfirmPayment).Methods(http.MethodPost)

	// Seller routes
	seller := auth.NewRoute().Subrouter()
	seller.Use(RequireRole(domain.UserRoleSeller, domain.UserRoleAdmin))
	seller.HandleFunc("/vehicles", vehicleHandler.Create).Methods(http.MethodPost)
	seller.HandleFunc("/my/vehicles", vehicleHandler.ListMine).Methods(http.MethodGet)
	seller.HandleFunc("/vehicles/{id:[0-9]+}", vehicleHandler.Update).Methods(http.MethodPut)
	seller.HandleFunc("/vehicles/{id:[0-9]+}", vehicleHandler.Delete).Methods(http.MethodDelete)
	seller.HandleFunc("/vehicles/{id:[0-9]+}/images", imageHandler.GetUploadURL).Methods(http.MethodPost)
	seller.HandleFunc("/vehicles/{id:[0-9]+}/images/{imageId:[0-9]+}/confirm", imageHandler.ConfirmUpload).Methods(http.MethodPost)
	seller.HandleFunc("/vehicles/{id:[0-9]+}/images/{imageId:[0-9]+}/primary", imageHandler.SetPrimary).Methods(http.MethodPost)
	seller.HandleFunc("/vehicles/{id:[0-9]+}/images/{imageId:[0-9]+}", imageHandler.Delete).Methods(http.MethodDelete)
	seller.HandleFunc("/bookings/{id:[0-9]+}/complete", bookingHandler.Complete).Methods(http.MethodPost)

	// Admin routes
	admin := auth.NewRoute().Subrouter()
	admin.Use(RequireRole(domain.UserRoleAdmin))
	admin.HandleFunc("/admin/settings", settingsHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/admin/coupons", couponHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/admin/coupons", couponHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/admin/coupons/{id:[0-9]+}", couponHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/admin/coupons/{id:[0-9]+}", couponHandler.Update).Methods(http.MethodPut)

	return r
}
