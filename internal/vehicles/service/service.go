package service

import (
	"context"

	"github.com/google/uuid"

	"autocrm_backend/internal/vehicles/repository"
	"autocrm_backend/internal/vehicles/transport"
	"autocrm_backend/platform/apperr"
	"autocrm_backend/platform/logger"
)

// Service contains inventory business logic. Sold/available flips driven by
// deal closings bypass this layer and run inside the deal transaction.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new vehicles service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create adds a vehicle to inventory.
func (s *Service) Create(ctx context.Context, req transport.CreateVehicleRequest) (*transport.VehicleResponse, error) {
	vehicle, err := s.repo.Create(ctx, repository.CreateParams{
		Make:    req.Make,
		Model:   req.Model,
		Year:    req.Year,
		VIN:     req.VIN,
		Price:   req.Price,
		Mileage: req.Mileage,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("vehicle added to inventory", "vehicle", vehicle.ID)

	resp := toResponse(vehicle)
	return &resp, nil
}

// Get retrieves a vehicle by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*transport.VehicleResponse, error) {
	vehicle, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(vehicle)
	return &resp, nil
}

// List retrieves vehicles, optionally filtered by status.
func (s *Service) List(ctx context.Context, req transport.ListVehiclesRequest) (*transport.VehicleListResponse, error) {
	if req.Status != nil && !isKnownStatus(*req.Status) {
		return nil, apperr.Validation("unknown vehicle status").WithDetails(map[string]string{"status": *req.Status})
	}

	vehicles, err := s.repo.List(ctx, req.Status)
	if err != nil {
		return nil, err
	}

	responses := make([]transport.VehicleResponse, len(vehicles))
	for i, vehicle := range vehicles {
		responses[i] = toResponse(vehicle)
	}
	return &transport.VehicleListResponse{Vehicles: responses, Total: len(responses)}, nil
}

func isKnownStatus(status string) bool {
	for _, known := range repository.KnownStatuses {
		if status == known {
			return true
		}
	}
	return false
}

func toResponse(vehicle repository.Vehicle) transport.VehicleResponse {
	return transport.VehicleResponse{
		ID:        vehicle.ID,
		Make:      vehicle.Make,
		Model:     vehicle.Model,
		Year:      vehicle.Year,
		VIN:       vehicle.VIN,
		Price:     vehicle.Price,
		Mileage:   vehicle.Mileage,
		Status:    vehicle.Status,
		CreatedAt: vehicle.CreatedAt,
		UpdatedAt: vehicle.UpdatedAt,
	}
}
