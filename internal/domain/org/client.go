// Package org holds client organizations and their tenant links.
package org

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lms/backend/internal/domain/shared"
)

// ClientStatus represents the lifecycle status of a client
type ClientStatus string

const (
	ClientStatusActive    ClientStatus = "active"
	ClientStatusSuspended ClientStatus = "suspended"
)

// Client is an organization that purchases seats for learners. A client is
// owned by the tenant that created it and may additionally be linked to
// other tenants through ClientTenant rows.
type Client struct {
	shared.TenantAuditRoot
	Name         string
	ContactName  string
	ContactEmail string
	Phone        string
	Address      string
	Status       ClientStatus
	Notes        string
}

// NewClient creates a new client for a tenant
func NewClient(tenantID uuid.UUID, name string, createdBy uuid.UUID, ip string) (*Client, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name must be 1-200 characters")
	}
	return &Client{
		TenantAuditRoot: shared.NewTenantAuditRoot(tenantID, createdBy, ip),
		Name:            name,
		Status:          ClientStatusActive,
	}, nil
}

// Rename changes the client name
func (c *Client) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Client name must be 1-200 characters")
	}
	c.Name = name
	return nil
}

// SetContact sets contact details
func (c *Client) SetContact(contactName, contactEmail, phone string) error {
	if len(contactName) > 200 {
		return shared.NewDomainError("INVALID_CONTACT", "Contact name cannot exceed 200 characters")
	}
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	c.ContactName = strings.TrimSpace(contactName)
	c.ContactEmail = strings.ToLower(strings.TrimSpace(contactEmail))
	c.Phone = strings.TrimSpace(phone)
	return nil
}

// Suspend marks the client suspended
func (c *Client) Suspend() {
	c.Status = ClientStatusSuspended
}

// Resume reactivates a suspended client
func (c *Client) Resume() {
	c.Status = ClientStatusActive
}

// ClientTenant links a client to a tenant it operates under
type ClientTenant struct {
	ClientID  uuid.UUID
	TenantID  uuid.UUID
	CreatedAt time.Time
	CreatedBy *uuid.UUID
}

// NewClientTenant creates a client-tenant link
func NewClientTenant(clientID, tenantID, createdBy uuid.UUID) ClientTenant {
	return ClientTenant{
		ClientID:  clientID,
		TenantID:  tenantID,
		CreatedAt: time.Now(),
		CreatedBy: &createdBy,
	}
}
