package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lms/backend/internal/application/accessctx"
	"github.com/lms/backend/internal/domain/identity"
	"github.com/lms/backend/internal/domain/shared"
	"github.com/lms/backend/internal/infrastructure/storage"
)

// TenantService manages tenant lifecycle. All mutations are restricted to
// SUPER_ADMIN; tenant admins may read their own tenant only.
type TenantService struct {
	tenantRepo identity.TenantRepository
	store      storage.ObjectStorage
	logger     *zap.Logger
}

// NewTenantService creates a new TenantService
func NewTenantService(tenantRepo identity.TenantRepository, store storage.ObjectStorage, logger *zap.Logger) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
		store:      store,
		logger:     logger,
	}
}

// Create creates a new tenant
func (s *TenantService) Create(ctx context.Context, access accessctx.Access, req CreateTenantRequest) (*TenantResponse, error) {
	if !access.IsSuperAdmin() {
		return nil, shared.ErrForbidden
	}

	exists, err := s.tenantRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Tenant with this code already exists")
	}

	tenant, err := identity.NewTenant(req.Name, req.Code, access.UserID, access.IP)
	if err != nil {
		return nil, err
	}
	if req.Domain != "" {
		if err := tenant.SetDomain(req.Domain); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		tenant.SetNotes(req.Notes)
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	s.logger.Info("Tenant created",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("code", tenant.Code))

	response := ToTenantResponse(tenant)
	return &response, nil
}

// GetByID retrieves a tenant. Non-SUPER_ADMIN callers can only read the
// tenant they belong to.
func (s *TenantService) GetByID(ctx context.Context, access accessctx.Access, tenantID uuid.UUID) (*TenantResponse, error) {
	if !access.CanReach(tenantID) {
		return nil, shared.ErrForbidden
	}

	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	response := ToTenantResponse(tenant)
	return &response, nil
}

// List retrieves tenants with pagination (SUPER_ADMIN only)
func (s *TenantService) List(ctx context.Context, access accessctx.Access, filter TenantListFilter) ([]TenantResponse, int64, error) {
	if !access.IsSuperAdmin() {
		return nil, 0, shared.ErrForbidden
	}

	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)

	tenants, err := s.tenantRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.tenantRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToTenantResponses(tenants), total, nil
}

// Update applies partial changes to a tenant
func (s *TenantService) Update(ctx context.Context, access accessctx.Access, tenantID uuid.UUID, req UpdateTenantRequest) (*TenantResponse, error) {
	if !access.IsSuperAdmin() {
		return nil, shared.ErrForbidden
	}

	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := tenant.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Domain != nil {
		if err := tenant.SetDomain(*req.Domain); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		tenant.SetNotes(*req.Notes)
	}

	tenant.StampUpdated(access.UserID, access.IP)
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	response := ToTenantResponse(tenant)
	return &response, nil
}

// UploadBranding stores a branding asset and records its key on the tenant.
// kind is "logo" or "favicon".
func (s *TenantService) UploadBranding(ctx context.Context, access accessctx.Access, tenantID uuid.UUID, kind, filename, contentType string, data []byte) (*TenantResponse, error) {
	if err := access.RequireAdministrative(); err != nil {
		return nil, err
	}
	if err := access.CheckOwnership(tenantID); err != nil {
		return nil, err
	}

	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var key string
	switch kind {
	case "logo":
		key = storage.BrandingLogoKey(tenantID, filename)
	case "favicon":
		key = storage.BrandingFaviconKey(tenantID, filename)
	default:
		return nil, shared.NewDomainError("INVALID_INPUT", "Branding kind must be logo or favicon")
	}

	if err := s.store.Upload(ctx, key, data, contentType); err != nil {
		s.logger.Error("Branding upload failed",
			zap.String("tenant_id", tenantID.String()),
			zap.String("key", key),
			zap.Error(err))
		return nil, shared.NewDomainError("STORAGE_ERROR", "Failed to store branding asset")
	}

	if kind == "logo" {
		tenant.SetBranding(key, "")
	} else {
		tenant.SetBranding("", key)
	}
	tenant.StampUpdated(access.UserID, access.IP)

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	response := ToTenantResponse(tenant)
	return &response, nil
}

// Activate re-enables a deactivated tenant
func (s *TenantService) Activate(ctx context.Context, access accessctx.Access, tenantID uuid.UUID) (*TenantResponse, error) {
	return s.setActive(ctx, access, tenantID, true)
}

// Deactivate disables a tenant without deleting it
func (s *TenantService) Deactivate(ctx context.Context, access accessctx.Access, tenantID uuid.UUID) (*TenantResponse, error) {
	return s.setActive(ctx, access, tenantID, false)
}

func (s *TenantService) setActive(ctx context.Context, access accessctx.Access, tenantID uuid.UUID, active bool) (*TenantResponse, error) {
	if !access.IsSuperAdmin() {
		return nil, shared.ErrForbidden
	}

	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if active {
		tenant.Activate(access.UserID, access.IP)
	} else {
		tenant.Deactivate(access.UserID, access.IP)
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	response := ToTenantResponse(tenant)
	return &response, nil
}

// Delete soft-deletes a tenant. The row stays in storage and becomes
// invisible to all reads.
func (s *TenantService) Delete(ctx context.Context, access accessctx.Access, tenantID uuid.UUID) error {
	if !access.IsSuperAdmin() {
		return shared.ErrForbidden
	}

	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return err
	}

	tenant.MarkDeleted(access.UserID)
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return err
	}

	s.logger.Info("Tenant deleted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("deleted_by", access.UserID.String()))
	return nil
}
