package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateVehicleRequest adds a unit to inventory.
type CreateVehicleRequest struct {
	Make    string  `json:"make" validate:"required,min=1,max=120"`
	Model   string  `json:"model" validate:"required,min=1,max=120"`
	Year    int     `json:"year" validate:"required,min=1900,max=2100"`
	VIN     *string `json:"vin,omitempty" validate:"omitempty,len=17"`
	Price   float64 `json:"price" validate:"required,gt=0"`
	Mileage *int    `json:"mileage,omitempty" validate:"omitempty,min=0"`
}

// ListVehiclesRequest filters the inventory listing.
type ListVehiclesRequest struct {
	Status *string `form:"status"`
}

// VehicleResponse is the API representation of a vehicle.
type VehicleResponse struct {
	ID        uuid.UUID `json:"id"`
	Make      string    `json:"make"`
	Model     string    `json:"model"`
	Year      int       `json:"year"`
	VIN       *string   `json:"vin,omitempty"`
	Price     float64   `json:"price"`
	Mileage   *int      `json:"mileage,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VehicleListResponse wraps a collection of vehicles.
type VehicleListResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
	Total    int               `json:"total"`
}
