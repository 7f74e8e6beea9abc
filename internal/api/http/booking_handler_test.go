package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	httpapi "fleetrent-backend/internal/api/http"
	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/payment"
	"fleetrent-backend/internal/pricing"
	"fleetrent-backend/internal/security"
	"fleetrent-backend/internal/service"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) QuoteBooking(ctx context.Context, req *service.QuoteRequest) (*pricing.Quote, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Quote), args.Error(1)
}
func (m *MockBookingService) CreateBooking(ctx context.Context, buyerID int32, req *service.QuoteRequest) (*domain.Booking, *payment.Intent, error) {
	args := m.Called(ctx, buyerID, req)
	var booking *domain.Booking
	var intent *payment.Intent
	if args.Get(0) != nil {
		booking = args.Get(0).(*domain.Booking)
	}
	if args.Get(1) != nil {
		intent = args.Get(1).(*payment.Intent)
	}
	return booking, intent, args.Error(2)
}
func (m *MockBookingService) ConfirmPayment(ctx context.Context, buyerID, bookingID int32) (*domain.Booking, error) {
	args := m.Called(ctx, buyerID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) CancelBooking(ctx context.Context, userID, bookingID int32, reason string) (*domain.Booking, error) {
	args := m.Called(ctx, userID, bookingID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) CompleteBooking(ctx context.Context, sellerID, bookingID int32) (*domain.Booking, error) {
	args := m.Called(ctx, sellerID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) GetBooking(ctx context.Context, userID, bookingID int32) (*domain.Booking, error) {
	args := m.Called(ctx, userID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) ListBuyerBookings(ctx context.Context, buyerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, buyerID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingService) ListSellerBookings(ctx context.Context, sellerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, sellerID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}

func testRouter(bookingSvc service.BookingService, tokenMgr security.TokenManager) http.Handler {
	return httpapi.NewRouter(httpapi.Services{
		Bookings:     bookingSvc,
		TokenManager: tokenMgr,
	})
}

func bearerToken(t *testing.T, mgr security.TokenManager, userID int32, role string) string {
	t.Helper()
	token, err := mgr.GenerateAccessToken(userID, "user@test.com", role)
	assert.NoError(t, err)
	return "Bearer " + token
}

func TestQuoteEndpoint(t *testing.T) {
	tokenMgr := security.NewTokenManager("test-secret-that-is-long-enough-123456", 60, 60)

	t.Run("Returns the quote breakdown", func(t *testing.T) {
		svc := new(MockBookingService)
		svc.On("QuoteBooking", mock.Anything, &service.QuoteRequest{
			VehicleID: 2, StartDate: "2025-01-01", EndDate: "2025-01-03",
		}).Return(&pricing.Quote{
			TotalDays:   2,
			Subtotal:    300,
			PlatformFee: 15,
			Taxes:       26.775,
			Total:       341.775,
		}, nil)

		body, _ := json.Marshal(map[string]interface{}{
			"vehicle_id": 2, "start_date": "2025-01-01", "end_date": "2025-01-03",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", bytes.NewReader(body))
		req.Header.Set("Authorization", bearerToken(t, tokenMgr, 20, "BUYER"))
		rec := httptest.NewRecorder()

		testRouter(svc, tokenMgr).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var quote pricing.Quote
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))
		assert.Equal(t, 2, quote.TotalDays)
		assert.InDelta(t, 341.775, quote.Total, 1e-9)
	})

	t.Run("Invalid input maps to 400", func(t *testing.T) {
		svc := new(MockBookingService)
		svc.On("QuoteBooking", mock.Anything, mock.Anything).Return(nil, pricing.ErrInvalidInput)

		body, _ := json.Marshal(map[string]interface{}{
			"vehicle_id": 2, "start_date": "2025-01-03", "end_date": "2025-01-03",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", bytes.NewReader(body))
		req.Header.Set("Authorization", bearerToken(t, tokenMgr, 20, "BUYER"))
		rec := httptest.NewRecorder()

		testRouter(svc, tokenMgr).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Missing token rejected", func(t *testing.T) {
		svc := new(MockBookingService)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", bytes.NewReader([]byte("{}")))
		rec := httptest.NewRecorder()

		testRouter(svc, tokenMgr).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestCreateBookingEndpoint(t *testing.T) {
	tokenMgr := security.NewTokenManager("test-secret-that-is-long-enough-123456", 60, 60)

	t.Run("Buyer can create a booking", func(t *testing.T) {
		svc := new(MockBookingService)
		svc.On("CreateBooking", mock.Anything, int32(20), mock.Anything).Return(&domain.Booking{
			ID: 1, TotalCents: 34178, Status: domain.BookingStatusPendingPayment,
		}, &payment.Intent{ID: "pi_123", ClientSecret: "pi_123_secret"}, nil)

		body, _ := json.Marshal(map[string]interface{}{
			"vehicle_id": 2, "start_date": "2025-01-01", "end_date": "2025-01-03",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(body))
		req.Header.Set("Authorization", bearerToken(t, tokenMgr, 20, "BUYER"))
		rec := httptest.NewRecorder()

		testRouter(svc, tokenMgr).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp struct {
			Booking       *domain.Booking `json:"booking"`
			PaymentIntent *payment.Intent `json:"payment_intent"`
		}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(34178), resp.Booking.TotalCents)
		assert.Equal(t, "pi_123", resp.PaymentIntent.ID)
	})

	t.Run("Seller role cannot create bookings", func(t *testing.T) {
		svc := new(MockBookingService)
		body := []byte(`{"vehicle_id":2,"start_date":"2025-01-01","end_date":"2025-01-03"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(body))
		req.Header.Set("Authorization", bearerToken(t, tokenMgr, 10, "SELLER"))
		rec := httptest.NewRecorder()

		testRouter(svc, tokenMgr).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		svc.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unavailable vehicle maps to 409", func(t *testing.T) {
		svc := new(MockBookingService)
		svc.On("CreateBooking", mock.Anything, int32(20), mock.Anything).Return(nil, nil, service.ErrVehicleUnavailable)

		body := []byte(`{"vehicle_id":2,"start_date":"2025-01-01","end_date":"2025-01-03"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(body))
		req.Header.Set("Authorization", bearerToken(t, tokenMgr, 20, "BUYER"))
		rec := httptest.NewRecorder()

		testRouter(svc, tokenMgr).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}
