package domain

import "time"

type VehicleStatus string

const (
	VehicleStatusActive  VehicleStatus = "ACTIVE"
	VehicleStatusPaused  VehicleStatus = "PAUSED"
	VehicleStatusRemoved VehicleStatus = "REMOVED"
)

type VehicleCategory string

const (
	VehicleCategoryBoxTruck     VehicleCategory = "BOX_TRUCK"
	VehicleCategoryCargoVan     VehicleCategory = "CARGO_VAN"
	VehicleCategoryFlatbed      VehicleCategory = "FLATBED"
	VehicleCategoryRefrigerated VehicleCategory = "REFRIGERATED"
	VehicleCategoryPickup       VehicleCategory = "PICKUP"
)

type Vehicle struct {
	ID                  int32           `json:"id"`
	SellerID            int32           `json:"seller_id"`
	Seller              *User           `json:"seller,omitempty"` // Populated when fetching vehicle details
	Name                string          `json:"name"`
	Description         string          `json:"description"`
	Category            VehicleCategory `json:"category"`
	Make                string          `json:"make"`
	Model               string          `json:"model"`
	Year                int32           `json:"year"`
	FuelType            string          `json:"fuel_type"` // free text, e.g. "Diesel", "Electric", "Plug-in Hybrid"
	DailyRateCents      int64           `json:"daily_rate_cents"`
	EstimatedDailyMiles float64         `json:"estimated_daily_miles"`
	Location            string          `json:"location"`
	Status              VehicleStatus   `json:"status"`
	CreatedOn           string          `json:"created_on"`
	UpdatedOn           string          `json:"updated_on"`
	DeletedOn           *string         `json:"deleted_on,omitempty"`
}

type VehicleImage struct {
	ID           int32      `json:"id"`
	VehicleID    int32      `json:"vehicle_id"`
	UserID       int32      `json:"user_id"`
	FileName     string     `json:"file_name"`
	FilePath     string     `json:"file_path"`
	FileSize     int64      `json:"file_size"`
	MimeType     string     `json:"mime_type"`
	IsPrimary    bool       `json:"is_primary"`
	DisplayOrder int32      `json:"display_order"`
	Status       string     `json:"status"`               // PENDING, CONFIRMED, DELETED
	ExpiresAt    *time.Time `json:"expires_at,omitempty"` // For pending images
	CreatedOn    time.Time  `json:"created_on"`
	ConfirmedOn  *time.Time `json:"confirmed_on,omitempty"`
	DeletedOn    *time.Time `json:"deleted_on,omitempty"`
}
