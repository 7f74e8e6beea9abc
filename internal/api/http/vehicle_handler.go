package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/service"
)

type VehicleHandler struct {
	vehicleSvc service.VehicleService
}

func NewVehicleHandler(vehicleSvc service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleSvc: vehicleSvc}
}

type vehicleRequest struct {
	Name                string  `json:"name"`
	Description         string  `json:"description"`
	Category            string  `json:"category"`
	Make                string  `json:"make"`
	Model               string  `json:"model"`
	Year                int32   `json:"year"`
	FuelType            string  `json:"fuel_type"`
	DailyRateCents      int64   `json:"daily_rate_cents"`
	EstimatedDailyMiles float64 `json:"estimated_daily_miles"`
	Location            string  `json:"location"`
	Status              string  `json:"status"`
}

type listResponse struct {
	Items interface{} `json:"items"`
	Total int32       `json:"total"`
}

type vehicleDetailResponse struct {
	Vehicle *domain.Vehicle       `json:"vehicle"`
	Images  []domain.VehicleImage `json:"images"`
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, err := requireClaims(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req vehicleRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	vehicle := &domain.Vehicle{
		SellerID:            claims.UserID,
		Name:                req.Name,
		Description:         req.Description,
		Category:            domain.VehicleCategory(req.Category),
		Make:                req.Make,
		Model:               req.Model,
		Year:                req.Year,
		FuelType:            req.FuelType,
		DailyRateCents:      req.DailyRateCents,
		EstimatedDailyMiles: req.EstimatedDailyMiles,
		Location:            req.Location,
	}
	if err := h.vehicleSvc.AddVehicle(r.Context(), vehicle); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, vehicle)
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	vehicle, images, err := h.vehicleSvc.GetVehicle(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, vehicleDetailResponse{Vehicle: vehicle, Images: images})
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req vehicleRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	vehicle := &domain.Vehicle{
		ID:                  id,
		Name:                req.Name,
		Description:         req.Description,
		Category:            domain.VehicleCategory(req.Category),
		Make:                req.Make,
		Model:               req.Model,
		Year:                req.Year,
		FuelType:            req.FuelType,
		DailyRateCents:      req.DailyRateCents,
		EstimatedDailyMiles: req.EstimatedDailyMiles,
		Location:            req.Location,
		Status:              domain.VehicleStatus(req.Status),
	}
	if err := h.vehicleSvc.UpdateVehicle(r.Context(), claims.UserID, vehicle); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.vehicleSvc.DeleteVehicle(r.Context(), claims.UserID, id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *VehicleHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, err := requireClaims(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	page, pageSize := pagination(r)
	vehicles, total, err := h.vehicleSvc.ListSellerVehicles(r.Context(), claims.UserID, page, pageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: vehicles, Total: total})
}

func (h *VehicleHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, pageSize := pagination(r)

	var categories []string
	if raw := q.Get("categories"); raw != "" {
		categories = strings.Split(raw, ",")
	}
	var maxRate int64
	if raw := q.Get("max_daily_rate_cents"); raw != "" {
		maxRate, _ = strconv.ParseInt(raw, 10, 64)
	}

	vehicles, total, err := h.vehicleSvc.SearchVehicles(r.Context(),
		q.Get("q"), categories, maxRate, q.Get("location"), page, pageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: vehicles, Total: total})
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id < 1 {
		return 0, errBadRequest
	}
	return int32(id), nil
}

func pagination(r *http.Request) (int32, int32) {
	q := r.URL.Query()
	page, _ := strconv.ParseInt(q.Get("page"), 10, 32)
	pageSize, _ := strconv.ParseInt(q.Get("page_size"), 10, 32)
	return int32(page), int32(pageSize)
}
