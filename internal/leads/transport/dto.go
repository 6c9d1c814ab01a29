package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateLeadRequest captures a new prospect.
type CreateLeadRequest struct {
	FirstName string  `json:"firstName" validate:"required,min=1,max=120"`
	LastName  string  `json:"lastName" validate:"required,min=1,max=120"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Source    *string `json:"source,omitempty" validate:"omitempty,max=120"`
}

// ListLeadsRequest filters the lead listing.
type ListLeadsRequest struct {
	Status *string `form:"status"`
}

// LeadResponse is the API representation of a lead.
type LeadResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Source    *string   `json:"source,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LeadListResponse wraps a collection of leads.
type LeadListResponse struct {
	Leads []LeadResponse `json:"leads"`
	Total int            `json:"total"`
}
