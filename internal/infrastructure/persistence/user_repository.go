package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lms/backend/internal/domain/identity"
	"github.com/lms/backend/internal/domain/shared"
	"github.com/lms/backend/internal/infrastructure/persistence/models"
	"github.com/lms/backend/internal/infrastructure/persistence/scope"
)

// GormSystemUserRepository implements SystemUserRepository using GORM.
// Username and email lookups are always scoped: a concrete tenant ID
// addresses that tenant's users, a nil tenant ID addresses the platform
// scope (SUPER_ADMIN accounts).
type GormSystemUserRepository struct {
	db *gorm.DB
}

// NewGormSystemUserRepository creates a new GormSystemUserRepository
func NewGormSystemUserRepository(db *gorm.DB) *GormSystemUserRepository {
	return &GormSystemUserRepository{db: db}
}

// FindByID finds a user by ID across all tenants
func (r *GormSystemUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.SystemUser, error) {
	var model models.SystemUserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a user by ID within a tenant
func (r *GormSystemUserRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*identity.SystemUser, error) {
	var model models.SystemUserModel
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

// FindByUsername finds a user by username within a tenant or the platform scope
func (r *GormSystemUserRepository) FindByUsername(ctx context.Context, tenantID *uuid.UUID, username string) (*identity.SystemUser, error) {
	var model models.SystemUserModel
	if err := r.db.WithContext(ctx).
		Scopes(scope.MaybeTenant(tenantID)).
		Where("username = ?", strings.ToLower(username)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all users for a tenant
func (r *GormSystemUserRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]identity.SystemUser, error) {
	var userModels []models.SystemUserModel
	query := r.db.WithContext(ctx).Model(&models.SystemUserModel{}).Scopes(scope.Tenant(tenantID))
	query = r.applySearch(query, filter)
	query = applyPagination(query, filter, UserSortFields)

	if err := query.Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]identity.SystemUser, len(userModels))
	for i, model := range userModels {
		users[i] = *model.ToDomain()
	}
	return users, nil
}

// CountForTenant counts users for a tenant
func (r *GormSystemUserRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.SystemUserModel{}).Scopes(scope.Tenant(tenantID))
	query = r.applySearch(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByUsername checks if a username is taken within the given scope
func (r *GormSystemUserRepository) ExistsByUsername(ctx context.Context, tenantID *uuid.UUID, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SystemUserModel{}).
		Scopes(scope.MaybeTenant(tenantID)).
		Where("username = ?", strings.ToLower(username)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByEmail checks if an email is taken within the given scope
func (r *GormSystemUserRepository) ExistsByEmail(ctx context.Context, tenantID *uuid.UUID, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SystemUserModel{}).
		Scopes(scope.MaybeTenant(tenantID)).
		Where("email = ?", strings.ToLower(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a user
func (r *GormSystemUserRepository) Save(ctx context.Context, user *identity.SystemUser) error {
	model := models.SystemUserModelFromDomain(user)
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *GormSystemUserRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ? OR LOWER(display_name) LIKE ?",
			pattern, pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "role":
			query = query.Where("role = ?", value)
		case "is_active":
			query = query.Where("is_active = ?", value)
		}
	}
	return query
}

var _ identity.SystemUserRepository = (*GormSystemUserRepository)(nil)
