package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lms/backend/internal/domain/org"
	"github.com/lms/backend/internal/domain/shared"
	"github.com/lms/backend/internal/infrastructure/persistence/models"
	"github.com/lms/backend/internal/infrastructure/persistence/scope"
)

// GormClientRepository implements ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByID finds a client by ID across all tenants
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*org.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a client by ID within a tenant
func (r *GormClientRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*org.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).
		Scopes(scope.Tenant(tenantID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all clients for a tenant
func (r *GormClientRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]org.Client, error) {
	var clientModels []models.ClientModel
	query := r.db.WithContext(ctx).Model(&models.ClientModel{}).Scopes(scope.Tenant(tenantID))
	query = r.applySearch(query, filter)
	query = applyPagination(query, filter, ClientSortFields)

	if err := query.Find(&clientModels).Error; err != nil {
		return nil, err
	}

	clients := make([]org.Client, len(clientModels))
	for i, model := range clientModels {
		clients[i] = *model.ToDomain()
	}
	return clients, nil
}

// CountForTenant counts clients for a tenant
func (r *GormClientRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ClientModel{}).Scopes(scope.Tenant(tenantID))
	query = r.applySearch(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks if a client with the given name exists in the tenant
func (r *GormClientRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ClientModel{}).
		Scopes(scope.Tenant(tenantID)).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a client
func (r *GormClientRepository) Save(ctx context.Context, client *org.Client) error {
	model := models.ClientModelFromDomain(client)
	return r.db.WithContext(ctx).Save(model).Error
}

// LinkTenant links a client to a tenant. Linking twice is a no-op.
func (r *GormClientRepository) LinkTenant(ctx context.Context, link org.ClientTenant) error {
	model := models.ClientTenantModelFromDomain(link)
	err := r.db.WithContext(ctx).Create(model).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// UnlinkTenant removes a client-tenant link
func (r *GormClientRepository) UnlinkTenant(ctx context.Context, clientID, tenantID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.ClientTenantModel{}, "client_id = ? AND tenant_id = ?", clientID, tenantID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindLinkedTenantIDs returns the tenants a client is linked to
func (r *GormClientRepository) FindLinkedTenantIDs(ctx context.Context, clientID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.ClientTenantModel{}).
		Where("client_id = ?", clientID).
		Pluck("tenant_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *GormClientRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(contact_name) LIKE ?", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "is_active":
			query = query.Where("is_active = ?", value)
		}
	}
	return query
}

var _ org.ClientRepository = (*GormClientRepository)(nil)
