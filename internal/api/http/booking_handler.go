package http

import (
	"net/http"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/payment"
	"fleetrent-backend/internal/service"
)

type BookingHandler struct {
	bookingSvc service.BookingService
}

func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

type createBookingResponse struct {
	Booking *domain.Booking `json:"booking"`
	// PaymentIntent is absent for fully discounted bookings.
	PaymentIntent *payment.Intent `json:"payment_intent,omitempty"`
}

// Quote prices a prospective booking without creating anything. It is open to
// any authenticated user so the booking form can refresh live totals.
func (h *BookingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req service.QuoteRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	quote, err := h.bookingSvc.QuoteBooking(r.Context(), &req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, quote)
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, err := requireClaims(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req service.QuoteRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	booking, intent, err := h.bookingSvc.CreateBooking(r.Context(), claims.UserID, &req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, createBookingResponse{Booking: booking, PaymentIntent: intent})
}

func (h *BookingHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	claims, err := requireClaims(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	booking, err := h.bookingSvc.ConfirmPayment(r.Context(), claims.UserID, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	claims, err := requireClaims(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req cancelRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	booking, err := h.bookingSvc.CancelBooking(r.Context(), claims.UserID, id, req.Reason)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	claims, err := requireClaims(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	booking, err := h.bookingSvc.CompleteBooking(r.Context(), claims.UserID, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, err := requireClaims(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	booking, err := h.bookingSvc.GetBooking(r.Context(), claims.UserID, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, err := requireClaims(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	page, pageSize := pagination(r)
	status := r.URL.Query().Get("status")

	var (
		bookings []domain.Booking
		total    int32
	)
	if r.URL.Query().Get("as") == "seller" {
		bookings, total, err = h.bookingSvc.ListSellerBookings(r.Context(), claims.UserID, status, page, pageSize)
	} else {
		bookings, total, err = h.bookingSvc.ListBuyerBookings(r.Context(), claims.UserID, status, page, pageSize)
	}
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: bookings, Total: total})
}
