package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lms/backend/internal/domain/org"
)

// ClientModel is the persistence model for client organizations
type ClientModel struct {
	TenantAuditModel
	Name         string `gorm:"size:200;not null;index"`
	ContactName  string `gorm:"size:200"`
	ContactEmail string `gorm:"size:254"`
	Phone        string `gorm:"size:50"`
	Address      string `gorm:"size:500"`
	Status       string `gorm:"size:20;not null;index"`
	Notes        string `gorm:"type:text"`
}

// TableName specifies the table name
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the model to a domain client
func (m *ClientModel) ToDomain() *org.Client {
	return &org.Client{
		TenantAuditRoot: m.TenantAuditModel.ToDomain(),
		Name:            m.Name,
		ContactName:     m.ContactName,
		ContactEmail:    m.ContactEmail,
		Phone:           m.Phone,
		Address:         m.Address,
		Status:          org.ClientStatus(m.Status),
		Notes:           m.Notes,
	}
}

// ClientModelFromDomain creates a model from a domain client
func ClientModelFromDomain(c *org.Client) *ClientModel {
	m := &ClientModel{
		Name:         c.Name,
		ContactName:  c.ContactName,
		ContactEmail: c.ContactEmail,
		Phone:        c.Phone,
		Address:      c.Address,
		Status:       string(c.Status),
		Notes:        c.Notes,
	}
	m.TenantAuditModel.FromDomain(c.TenantAuditRoot)
	return m
}

// ClientTenantModel links a client to a tenant it operates under
type ClientTenantModel struct {
	ClientID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	CreatedBy *uuid.UUID
}

// TableName specifies the table name
func (ClientTenantModel) TableName() string {
	return "client_tenants"
}

// ToDomain converts the model to a domain client-tenant link
func (m *ClientTenantModel) ToDomain() org.ClientTenant {
	return org.ClientTenant{
		ClientID:  m.ClientID,
		TenantID:  m.TenantID,
		CreatedAt: m.CreatedAt,
		CreatedBy: m.CreatedBy,
	}
}

// ClientTenantModelFromDomain creates a model from a domain client-tenant link
func ClientTenantModelFromDomain(link org.ClientTenant) *ClientTenantModel {
	return &ClientTenantModel{
		ClientID:  link.ClientID,
		TenantID:  link.TenantID,
		CreatedAt: link.CreatedAt,
		CreatedBy: link.CreatedBy,
	}
}
