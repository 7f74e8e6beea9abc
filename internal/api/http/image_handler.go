package http

import (
	"io"
	"net/http"
	"path/filepath"

	"fleetrent-backend/internal/service"
	"fleetrent-backend/internal/storage"
)

type ImageHandler struct {
	imageSvc service.ImageStorageService
	store    storage.StorageInterface
}

func NewImageHandler(imageSvc service.ImageStorageService, store storage.StorageInterface) *ImageHandler {
	return &ImageHandler{imageSvc: imageSvc, store: store}
}

type uploadURLRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	IsPrimary   bool   `json:"is_primary"`
}

type uploadURLResponse struct {
	ImageID   int32  `json:"image_id"`
	UploadURL string `json:"upload_url"`
}

func (h *ImageHandler) GetUploadURL(w http.ResponseWriter, r *http.Request) {
	claims, err := requireClaims(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	vehicleID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req uploadURLRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	image, uploadURL, err := h.imageSvc.GetUploadURL(r.Context(),
		claims.UserID, vehicleID, req.FileName, req.ContentType, req.IsPrimary)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, uploadURLResponse{ImageID: image.ID, UploadURL: uploadURL})
}

func (h *ImageHandler) ConfirmUpload(w http.ResponseWriter, r *http.Request) {
	claims, err := requireClaims(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	vehicleID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	imageID, err := pathID(r, "imageId")
	if err != nil {
		respondError(w, r, err)
		return
	}

	image, err := h.imageSvc.ConfirmImageUpload(r.Context(), claims.UserID, imageID, vehicleID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, image)
}

func (h *ImageHandler) GetDownloadURL(w http.ResponseWriter, r *http.Request) {
	imageID, err := pathID(r, "imageId")
	if err != nil {
		respondError(w, r, err)
		return
	}

	url, err := h.imageSvc.GetDownloadURL(r.Context(), imageID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"download_url": url})
}

func (h *ImageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, err := requireClaims(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	imageID, err := pathID(r, "imageId")
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.imageSvc.DeleteImage(r.Context(), claims.UserID, imageID); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *ImageHandler) SetPrimary(w http.ResponseWriter, r *http.Request) {
	claims, err := requireClaims(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	vehicleID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	imageID, err := pathID(r, "imageId")
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.imageSvc.SetPrimaryImage(r.Context(), claims.UserID, vehicleID, imageID); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// HandleMockUpload accepts PUT requests to mock presigned upload URLs and
// writes the body to local storage, mimicking an object store.
func (h *ImageHandler) HandleMockUpload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Missing key parameter", http.StatusBadRequest)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" && contentType != "image/webp" {
		http.Error(w, "Invalid content type", http.StatusBadRequest)
		return
	}

	if err := h.store.SaveFile(key, r.Body); err != nil {
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", `"mock-etag-success"`)
	w.WriteHeader(http.StatusOK)
}

// HandleMockDownload serves files saved through the mock storage backend.
func (h *ImageHandler) HandleMockDownload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Missing key parameter", http.StatusBadRequest)
		return
	}

	file, err := h.store.ReadFile(key)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".webp":
		contentType = "image/webp"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	io.Copy(w, file)
}
