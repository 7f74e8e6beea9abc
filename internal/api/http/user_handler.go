package http

import (
	"net/http"

	"fleetrent-backend/internal/service"
)

type UserHandler struct {
	userSvc service.UserService
	noteSvc service.NotificationService
}

func NewUserHandler(userSvc service.UserService, noteSvc service.NotificationService) *UserHandler {
	return &UserHandler{userSvc: userSvc, noteSvc: noteSvc}
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, err := requireClaims(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	user, err := h.userSvc.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	CompanyName string `json:"company_name"`
	AvatarURL   string `json:"avatar_url"`
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, err := requireClaims(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req updateProfileRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := h.userSvc.UpdateProfile(r.Context(), claims.UserID,
		req.Name, req.PhoneNumber, req.CompanyName, req.AvatarURL)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	claims, err := requireClaims(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	page, pageSize := pagination(r)
	notes, total, err := h.noteSvc.GetNotifications(r.Context(), claims.UserID, page, pageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: notes, Total: total})
}

func (h *UserHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
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

	if err := h.noteSvc.MarkAsRead(r.Context(), claims.UserID, id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
