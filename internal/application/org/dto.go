package org

import (
	"time"

	"github.com/google/uuid"

	"github.com/lms/backend/internal/domain/org"
	"github.com/lms/backend/internal/domain/shared"
)

// CreateClientRequest creates a client organization
type CreateClientRequest struct {
	TenantID     uuid.UUID `json:"tenant_id"`
	Name         string    `json:"name" binding:"required"`
	ContactName  string    `json:"contact_name"`
	ContactEmail string    `json:"contact_email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	Notes        string    `json:"notes"`
}

// UpdateClientRequest applies partial client changes
type UpdateClientRequest struct {
	Name         *string `json:"name"`
	ContactName  *string `json:"contact_name"`
	ContactEmail *string `json:"contact_email"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	Notes        *string `json:"notes"`
}

// ClientResponse is the API shape of a client
type ClientResponse struct {
	ID           uuid.UUID `json:"id"`
	TenantID     uuid.UUID `json:"tenant_id"`
	Name         string    `json:"name"`
	ContactName  string    `json:"contact_name,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Version      int       `json:"version"`
}

// ToClientResponse converts a domain client to its API shape
func ToClientResponse(c *org.Client) ClientResponse {
	return ClientResponse{
		ID:           c.ID,
		TenantID:     c.TenantID,
		Name:         c.Name,
		ContactName:  c.ContactName,
		ContactEmail: c.ContactEmail,
		Phone:        c.Phone,
		Address:      c.Address,
		Status:       string(c.Status),
		Notes:        c.Notes,
		IsActive:     c.IsActive,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		Version:      c.Version,
	}
}

// ToClientResponses converts a slice of clients
func ToClientResponses(clients []org.Client) []ClientResponse {
	responses := make([]ClientResponse, len(clients))
	for i := range clients {
		responses[i] = ToClientResponse(&clients[i])
	}
	return responses
}

// ClientListFilter contains list/pagination options for clients
type ClientListFilter struct {
	TenantID uuid.UUID `form:"tenant_id"`
	Page     int       `form:"page"`
	PageSize int       `form:"page_size"`
	OrderBy  string    `form:"order_by"`
	OrderDir string    `form:"order_dir"`
	Search   string    `form:"search"`
	Status   string    `form:"status"`
}

func buildFilter(page, pageSize int, orderBy, orderDir, search string) shared.Filter {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	if orderBy != "" {
		filter.OrderBy = orderBy
	}
	if orderDir != "" {
		filter.OrderDir = orderDir
	}
	filter.Search = search
	return filter
}
