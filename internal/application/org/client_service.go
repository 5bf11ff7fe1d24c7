// Package org contains application services for client organizations.
package org

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lms/backend/internal/application/accessctx"
	"github.com/lms/backend/internal/domain/org"
	"github.com/lms/backend/internal/domain/shared"
)

// ClientService manages client organizations and their tenant links
type ClientService struct {
	clientRepo org.ClientRepository
	logger     *zap.Logger
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo org.ClientRepository, logger *zap.Logger) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		logger:     logger,
	}
}

// Create creates a new client in the caller's tenant
func (s *ClientService) Create(ctx context.Context, access accessctx.Access, req CreateClientRequest) (*ClientResponse, error) {
	if err := access.RequireAdministrative(); err != nil {
		return nil, err
	}
	tenantID, err := access.ResolveTenant(req.TenantID)
	if err != nil {
		return nil, err
	}

	exists, err := s.clientRepo.ExistsByName(ctx, tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Client with this name already exists")
	}

	client, err := org.NewClient(tenantID, req.Name, access.UserID, access.IP)
	if err != nil {
		return nil, err
	}
	if req.ContactName != "" || req.ContactEmail != "" || req.Phone != "" {
		if err := client.SetContact(req.ContactName, req.ContactEmail, req.Phone); err != nil {
			return nil, err
		}
	}
	client.Address = req.Address
	client.Notes = req.Notes

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	s.logger.Info("Client created",
		zap.String("client_id", client.ID.String()),
		zap.String("tenant_id", tenantID.String()))

	response := ToClientResponse(client)
	return &response, nil
}

// GetByID retrieves a client within the caller's tenant scope
func (s *ClientService) GetByID(ctx context.Context, access accessctx.Access, requestedTenant, clientID uuid.UUID) (*ClientResponse, error) {
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return nil, err
	}

	client, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, clientID)
	if err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// List retrieves clients with pagination
func (s *ClientService) List(ctx context.Context, access accessctx.Access, filter ClientListFilter) ([]ClientResponse, int64, error) {
	tenantID, err := access.ResolveTenant(filter.TenantID)
	if err != nil {
		return nil, 0, err
	}

	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	clients, err := s.clientRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.clientRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToClientResponses(clients), total, nil
}

// Update applies partial changes to a client
func (s *ClientService) Update(ctx context.Context, access accessctx.Access, requestedTenant, clientID uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	if err := access.RequireAdministrative(); err != nil {
		return nil, err
	}
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return nil, err
	}

	client, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, clientID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != client.Name {
		exists, err := s.clientRepo.ExistsByName(ctx, tenantID, *req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Client with this name already exists")
		}
		if err := client.Rename(*req.Name); err != nil {
			return nil, err
		}
	}

	if req.ContactName != nil || req.ContactEmail != nil || req.Phone != nil {
		contactName := client.ContactName
		contactEmail := client.ContactEmail
		phone := client.Phone
		if req.ContactName != nil {
			contactName = *req.ContactName
		}
		if req.ContactEmail != nil {
			contactEmail = *req.ContactEmail
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if err := client.SetContact(contactName, contactEmail, phone); err != nil {
			return nil, err
		}
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}

	client.StampUpdated(access.UserID, access.IP)
	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// Suspend marks a client suspended
func (s *ClientService) Suspend(ctx context.Context, access accessctx.Access, requestedTenant, clientID uuid.UUID) (*ClientResponse, error) {
	return s.setStatus(ctx, access, requestedTenant, clientID, false)
}

// Resume reactivates a suspended client
func (s *ClientService) Resume(ctx context.Context, access accessctx.Access, requestedTenant, clientID uuid.UUID) (*ClientResponse, error) {
	return s.setStatus(ctx, access, requestedTenant, clientID, true)
}

func (s *ClientService) setStatus(ctx context.Context, access accessctx.Access, requestedTenant, clientID uuid.UUID, active bool) (*ClientResponse, error) {
	if err := access.RequireAdministrative(); err != nil {
		return nil, err
	}
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return nil, err
	}

	client, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, clientID)
	if err != nil {
		return nil, err
	}

	if active {
		client.Resume()
	} else {
		client.Suspend()
	}
	client.StampUpdated(access.UserID, access.IP)

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// Delete soft-deletes a client
func (s *ClientService) Delete(ctx context.Context, access accessctx.Access, requestedTenant, clientID uuid.UUID) error {
	if err := access.RequireAdministrative(); err != nil {
		return err
	}
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return err
	}

	client, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, clientID)
	if err != nil {
		return err
	}

	client.MarkDeleted(access.UserID)
	return s.clientRepo.Save(ctx, client)
}

// LinkTenant links a client to an additional tenant (SUPER_ADMIN only,
// since it spans tenants). Linking twice is a no-op.
func (s *ClientService) LinkTenant(ctx context.Context, access accessctx.Access, clientID, tenantID uuid.UUID) error {
	if !access.IsSuperAdmin() {
		return shared.ErrForbidden
	}

	if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
		return err
	}

	link := org.NewClientTenant(clientID, tenantID, access.UserID)
	if err := s.clientRepo.LinkTenant(ctx, link); err != nil {
		return err
	}

	s.logger.Info("Client linked to tenant",
		zap.String("client_id", clientID.String()),
		zap.String("tenant_id", tenantID.String()))
	return nil
}

// UnlinkTenant removes a client-tenant link
func (s *ClientService) UnlinkTenant(ctx context.Context, access accessctx.Access, clientID, tenantID uuid.UUID) error {
	if !access.IsSuperAdmin() {
		return shared.ErrForbidden
	}
	return s.clientRepo.UnlinkTenant(ctx, clientID, tenantID)
}

// LinkedTenants returns the IDs of tenants a client is linked to
func (s *ClientService) LinkedTenants(ctx context.Context, access accessctx.Access, clientID uuid.UUID) ([]uuid.UUID, error) {
	if !access.IsSuperAdmin() {
		return nil, shared.ErrForbidden
	}
	if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
		return nil, err
	}
	return s.clientRepo.FindLinkedTenantIDs(ctx, clientID)
}
