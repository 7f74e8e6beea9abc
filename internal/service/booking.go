package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/payment"
	"fleetrent-backend/internal/pricing"
	"fleetrent-backend/internal/repository"
)

var (
	ErrBookingNotFound     = errors.New("booking not found")
	ErrVehicleNotFound     = errors.New("vehicle not found")
	ErrVehicleUnavailable  = errors.New("vehicle is not available for the requested dates")
	ErrOwnVehicle          = errors.New("cannot book your own vehicle")
	ErrNotBookingParty     = errors.New("user is not a party to this booking")
	ErrInvalidBookingState = errors.New("operation not allowed in the booking's current state")
	ErrPaymentNotCompleted = errors.New("payment has not completed")
)

const bookingDateLayout = "2006-01-02"

type bookingService struct {
	bookingRepo  repository.BookingRepository
	vehicleRepo  repository.VehicleRepository
	settingsRepo repository.SettingsRepository
	userRepo     repository.UserRepository
	couponSvc    CouponService
	gateway      payment.Gateway
	emailSvc     EmailService
	noteRepo     repository.NotificationRepository
	currency     string
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	vehicleRepo repository.VehicleRepository,
	settingsRepo repository.SettingsRepository,
	userRepo repository.UserRepository,
	couponSvc CouponService,
	gateway payment.Gateway,
	emailSvc EmailService,
	noteRepo repository.NotificationRepository,
	currency string,
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		vehicleRepo:  vehicleRepo,
		settingsRepo: settingsRepo,
		userRepo:     userRepo,
		couponSvc:    couponSvc,
		gateway:      gateway,
		emailSvc:     emailSvc,
		noteRepo:     noteRepo,
		currency:     currency,
	}
}

// QuoteBooking prices a prospective booking without reserving anything. The
// same computation runs again in CreateBooking, so the displayed and charged
// totals always match.
func (s *bookingService) QuoteBooking(ctx context.Context, req *QuoteRequest) (*pricing.Quote, error) {
	vehicle, err := s.getActiveVehicle(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	quote, _, err := s.buildQuote(ctx, vehicle, settings, req)
	return quote, err
}

func (s *bookingService) CreateBooking(ctx context.Context, buyerID int32, req *QuoteRequest) (*domain.Booking, *payment.Intent, error) {
	vehicle, err := s.getActiveVehicle(ctx, req.VehicleID)
	if err != nil {
		return nil, nil, err
	}
	if vehicle.SellerID == buyerID {
		return nil, nil, ErrOwnVehicle
	}

	overlap, err := s.bookingRepo.HasOverlap(ctx, vehicle.ID, req.StartDate, req.EndDate)
	if err != nil {
		return nil, nil, err
	}
	if overlap {
		return nil, nil, ErrVehicleUnavailable
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, nil, err
	}

	quote, coupon, err := s.buildQuote(ctx, vehicle, settings, req)
	if err != nil {
		return nil, nil, err
	}

	booking := &domain.Booking{
		VehicleID:             vehicle.ID,
		BuyerID:               buyerID,
		SellerID:              vehicle.SellerID,
		StartDate:             req.StartDate,
		EndDate:               req.EndDate,
		DailyRateCents:        vehicle.DailyRateCents,
		PlatformFeeType:       string(settings.PlatformFeeType),
		PlatformFeePercentage: settings.PlatformFeePercentage,
		PlatformFeeFixedCents: settings.PlatformFeeFixedCents,
		TaxRatePercent:        settings.TaxRatePercent,
		TotalDays:             int32(quote.TotalDays),
		SubtotalCents:         pricing.CentsForCharge(quote.Subtotal),
		PlatformFeeCents:      pricing.CentsForCharge(quote.PlatformFee),
		TaxesCents:            pricing.CentsForCharge(quote.Taxes),
		CouponDiscountCents:   pricing.CentsForCharge(quote.CouponDiscount),
		TotalCents:            pricing.CentsForCharge(quote.Total),
		CarbonSavedKg:         quote.CarbonSavedKg,
		Status:                domain.BookingStatusPendingPayment,
	}
	if coupon != nil {
		booking.CouponCode = coupon.Code
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, nil, err
	}

	var intent *payment.Intent
	if booking.TotalCents > 0 {
		intent, err = s.gateway.CreatePaymentIntent(ctx, &payment.IntentRequest{
			AmountCents: booking.TotalCents,
			Currency:    s.currency,
			Description: fmt.Sprintf("Rental of %s, %s to %s", vehicle.Name, booking.StartDate, booking.EndDate),
			Metadata: map[string]string{
				"booking_id": fmt.Sprintf("%d", booking.ID),
				"vehicle_id": fmt.Sprintf("%d", vehicle.ID),
			},
			IdempotencyKey: fmt.Sprintf("booking-%d", booking.ID),
		})
		if err != nil {
			booking.Status = domain.BookingStatusCancelled
			booking.CancelReason = "payment intent creation failed"
			if updateErr := s.bookingRepo.Update(ctx, booking); updateErr != nil {
				logger.ErrorContext(ctx, "failed to cancel booking after payment error",
					"booking_id", booking.ID, "error", updateErr)
			}
			return nil, nil, fmt.Errorf("failed to create payment intent: %w", err)
		}
		booking.PaymentIntentID = intent.ID
	} else {
		// Fully discounted bookings skip the payment step entirely.
		booking.Status = domain.BookingStatusConfirmed
	}
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, nil, err
	}

	if coupon != nil {
		if err := s.couponSvc.RedeemCoupon(ctx, coupon.ID); err != nil {
			logger.ErrorContext(ctx, "failed to record coupon redemption",
				"coupon_id", coupon.ID, "booking_id", booking.ID, "error", err)
		}
	}

	s.notifySellerOfRequest(ctx, booking, vehicle)

	logger.InfoContext(ctx, "booking created",
		"booking_id", booking.ID, "vehicle_id", vehicle.ID, "buyer_id", buyerID,
		"total_cents", booking.TotalCents, "status", booking.Status)
	return booking, intent, nil
}

// buildQuote runs the shared price calculator against the vehicle's rate and
// the current platform settings. When a coupon code is present, the discount
// is resolved against the pre-discount total and the quote recomputed with it.
func (s *bookingService) buildQuote(ctx context.Context, vehicle *domain.Vehicle, settings *domain.PlatformSettings, req *QuoteRequest) (*pricing.Quote, *domain.Coupon, error) {
	start, err := time.Parse(bookingDateLayout, req.StartDate)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: malformed start date %q", pricing.ErrInvalidInput, req.StartDate)
	}
	end, err := time.Parse(bookingDateLayout, req.EndDate)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: malformed end date %q", pricing.ErrInvalidInput, req.EndDate)
	}

	input := pricing.QuoteInput{
		DailyRate: pricing.FromCents(vehicle.DailyRateCents),
		StartDate: start,
		EndDate:   end,
		Fee: pricing.FeeConfig{
			Type:        pricing.FeeType(settings.PlatformFeeType),
			Percentage:  settings.PlatformFeePercentage,
			FixedAmount: pricing.FromCents(settings.PlatformFeeFixedCents),
		},
		TaxRatePercent:      settings.TaxRatePercent,
		EstimatedDailyMiles: vehicle.EstimatedDailyMiles,
		FuelType:            vehicle.FuelType,
	}

	quote, err := pricing.ComputeQuote(input)
	if err != nil {
		return nil, nil, err
	}
	if req.CouponCode == "" {
		return quote, nil, nil
	}

	discountCents, coupon, err := s.couponSvc.Resolve(ctx, req.CouponCode, pricing.CentsForCharge(quote.Total))
	if err != nil {
		return nil, nil, err
	}
	input.CouponDiscount = pricing.FromCents(discountCents)
	quote, err = pricing.ComputeQuote(input)
	if err != nil {
		return nil, nil, err
	}
	return quote, coupon, nil
}

// ConfirmPayment checks the payment intent with the gateway and, if the
// charge succeeded, moves the booking to CONFIRMED.
func (s *bookingService) ConfirmPayment(ctx context.Context, buyerID, bookingID int32) (*domain.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.BuyerID != buyerID {
		return nil, ErrNotBookingParty
	}
	if booking.Status != domain.BookingStatusPendingPayment {
		return nil, ErrInvalidBookingState
	}

	intent, err := s.gateway.GetPaymentIntent(ctx, booking.PaymentIntentID)
	if err != nil {
		return nil, err
	}
	if intent.Status != payment.IntentStatusSucceeded {
		return nil, fmt.Errorf("%w: intent status is %s", ErrPaymentNotCompleted, intent.Status)
	}

	booking.Status = domain.BookingStatusConfirmed
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, booking.VehicleID)
	if err == nil {
		s.notifyBuyerOfConfirmation(ctx, booking, vehicle)
	}

	logger.InfoContext(ctx, "booking payment confirmed",
		"booking_id", booking.ID, "intent_id", booking.PaymentIntentID)
	return booking, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID int32, reason string) (*domain.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.BuyerID != userID && booking.SellerID != userID {
		return nil, ErrNotBookingParty
	}
	switch booking.Status {
	case domain.BookingStatusPendingPayment, domain.BookingStatusConfirmed:
	default:
		return nil, ErrInvalidBookingState
	}

	if booking.Status == domain.BookingStatusPendingPayment && booking.PaymentIntentID != "" {
		if err := s.gateway.CancelPaymentIntent(ctx, booking.PaymentIntentID); err != nil {
			logger.ErrorContext(ctx, "failed to cancel payment intent",
				"booking_id", booking.ID, "intent_id", booking.PaymentIntentID, "error", err)
		}
	}

	booking.Status = domain.BookingStatusCancelled
	booking.CancelReason = reason
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.notifyCancellation(ctx, booking, userID, reason)

	logger.InfoContext(ctx, "booking cancelled", "booking_id", booking.ID, "by_user", userID)
	return booking, nil
}

func (s *bookingService) CompleteBooking(ctx context.Context, sellerID, bookingID int32) (*domain.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.SellerID != sellerID {
		return nil, ErrNotBookingParty
	}
	if booking.Status != domain.BookingStatusActive {
		return nil, ErrInvalidBookingState
	}

	booking.Status = domain.BookingStatusCompleted
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, userID, bookingID int32) (*domain.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.BuyerID != userID && booking.SellerID != userID {
		return nil, ErrNotBookingParty
	}
	return booking, nil
}

func (s *bookingService) ListBuyerBookings(ctx context.Context, buyerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.bookingRepo.ListByBuyer(ctx, buyerID, status, page, pageSize)
}

func (s *bookingService) ListSellerBookings(ctx context.Context, sellerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.bookingRepo.ListBySeller(ctx, sellerID, status, page, pageSize)
}

func (s *bookingService) getBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) getActiveVehicle(ctx context.Context, id int32) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	if vehicle.Status != domain.VehicleStatusActive {
		return nil, ErrVehicleUnavailable
	}
	return vehicle, nil
}

func (s *bookingService) notifySellerOfRequest(ctx context.Context, booking *domain.Booking, vehicle *domain.Vehicle) {
	seller, err := s.userRepo.GetByID(ctx, booking.SellerID)
	if err != nil {
		return
	}
	buyer, err := s.userRepo.GetByID(ctx, booking.BuyerID)
	if err != nil {
		return
	}

	_ = s.emailSvc.SendBookingRequestNotification(ctx, seller.Email, buyer.Name, vehicle.Name, booking.StartDate, booking.EndDate)

	note := &domain.Notification{
		UserID:  seller.ID,
		Title:   "New Booking Request",
		Message: fmt.Sprintf("%s booked %s from %s to %s", buyer.Name, vehicle.Name, booking.StartDate, booking.EndDate),
		Attributes: map[string]string{
			"type":       "BOOKING_REQUEST",
			"booking_id": fmt.Sprintf("%d", booking.ID),
		},
	}
	_ = s.noteRepo.Create(ctx, note)
}

func (s *bookingService) notifyBuyerOfConfirmation(ctx context.Context, booking *domain.Booking, vehicle *domain.Vehicle) {
	buyer, err := s.userRepo.GetByID(ctx, booking.BuyerID)
	if err != nil {
		return
	}

	_ = s.emailSvc.SendBookingConfirmationNotification(ctx, buyer.Email, vehicle.Name, booking.StartDate, booking.EndDate, booking.TotalCents)

	note := &domain.Notification{
		UserID:  buyer.ID,
		Title:   "Booking Confirmed",
		Message: fmt.Sprintf("Your booking of %s is confirmed for %s to %s", vehicle.Name, booking.StartDate, booking.EndDate),
		Attributes: map[string]string{
			"type":       "BOOKING_CONFIRMED",
			"booking_id": fmt.Sprintf("%d", booking.ID),
		},
	}
	_ = s.noteRepo.Create(ctx, note)
}

func (s *bookingService) notifyCancellation(ctx context.Context, booking *domain.Booking, cancelledBy int32, reason string) {
	// Notify the other party.
	otherID := booking.SellerID
	if cancelledBy == booking.SellerID {
		otherID = booking.BuyerID
	}
	other, err := s.userRepo.GetByID(ctx, otherID)
	if err != nil {
		return
	}

	vehicleName := fmt.Sprintf("vehicle #%d", booking.VehicleID)
	if vehicle, err := s.vehicleRepo.GetByID(ctx, booking.VehicleID); err == nil {
		vehicleName = vehicle.Name
	}

	_ = s.emailSvc.SendBookingCancellationNotification(ctx, other.Email, vehicleName, reason)

	note := &domain.Notification{
		UserID:  other.ID,
		Title:   "Booking Cancelled",
		Message: fmt.Sprintf("The booking of %s for %s to %s was cancelled", vehicleName, booking.StartDate, booking.EndDate),
		Attributes: map[string]string{
			"type":       "BOOKING_CANCELLED",
			"booking_id": fmt.Sprintf("%d", booking.ID),
		},
	}
	_ = s.noteRepo.Create(ctx, note)
}

func normalizePage(page, pageSize int32) (int32, int32) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
