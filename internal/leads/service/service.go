package service

import (
	"context"

	"github.com/google/uuid"

	"autocrm_backend/internal/leads/repository"
	"autocrm_backend/internal/leads/transport"
	"autocrm_backend/platform/apperr"
	"autocrm_backend/platform/logger"
)

// Service contains lead capture business logic. Status cascades driven by
// deal closings do not go through here; they run inside the deal pipeline's
// transaction via the repository Tx methods.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new leads service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create captures a new lead.
func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) (*transport.LeadResponse, error) {
	lead, err := s.repo.Create(ctx, repository.CreateParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Source:    req.Source,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("lead captured", "lead", lead.ID)

	resp := toResponse(lead)
	return &resp, nil
}

// Get retrieves a lead by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*transport.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(lead)
	return &resp, nil
}

// List retrieves leads, optionally filtered by status.
func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) (*transport.LeadListResponse, error) {
	if req.Status != nil && !isKnownStatus(*req.Status) {
		return nil, apperr.Validation("unknown lead status").WithDetails(map[string]string{"status": *req.Status})
	}

	leads, err := s.repo.List(ctx, req.Status)
	if err != nil {
		return nil, err
	}

	responses := make([]transport.LeadResponse, len(leads))
	for i, lead := range leads {
		responses[i] = toResponse(lead)
	}
	return &transport.LeadListResponse{Leads: responses, Total: len(responses)}, nil
}

func isKnownStatus(status string) bool {
	for _, known := range repository.KnownStatuses {
		if status == known {
			return true
		}
	}
	return false
}

func toResponse(lead repository.Lead) transport.LeadResponse {
	return transport.LeadResponse{
		ID:        lead.ID,
		FirstName: lead.FirstName,
		LastName:  lead.LastName,
		Email:     lead.Email,
		Phone:     lead.Phone,
		Source:    lead.Source,
		Status:    lead.Status,
		CreatedAt: lead.CreatedAt,
		UpdatedAt: lead.UpdatedAt,
	}
}
