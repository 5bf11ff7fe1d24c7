package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lms/backend/internal/domain/learning"
	"github.com/lms/backend/internal/domain/shared"
	"github.com/lms/backend/internal/infrastructure/persistence/models"
	"github.com/lms/backend/internal/infrastructure/persistence/scope"
)

// GormSpecializationRepository implements SpecializationRepository using GORM
type GormSpecializationRepository struct {
	db *gorm.DB
}

// NewGormSpecializationRepository creates a new GormSpecializationRepository
func NewGormSpecializationRepository(db *gorm.DB) *GormSpecializationRepository {
	return &GormSpecializationRepository{db: db}
}

// FindByIDForTenant finds a specialization by ID within a tenant
func (r *GormSpecializationRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*learning.Specialization, error) {
	var model models.SpecializationModel
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

// FindAllForTenant finds all specializations for a tenant
func (r *GormSpecializationRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]learning.Specialization, error) {
	query := r.db.WithContext(ctx).Model(&models.SpecializationModel{}).Scopes(scope.Tenant(tenantID))
	return r.findAll(query, filter)
}

// FindByProgram finds specializations under a program
func (r *GormSpecializationRepository) FindByProgram(ctx context.Context, tenantID, programID uuid.UUID, filter shared.Filter) ([]learning.Specialization, error) {
	query := r.db.WithContext(ctx).Model(&models.SpecializationModel{}).
		Scopes(scope.Tenant(tenantID)).
		Where("program_id = ?", programID)
	return r.findAll(query, filter)
}

// CountForTenant counts specializations for a tenant
func (r *GormSpecializationRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.SpecializationModel{}).Scopes(scope.Tenant(tenantID))
	query = r.applySearch(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a specialization with the given code exists in the tenant
func (r *GormSpecializationRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SpecializationModel{}).
		Scopes(scope.Tenant(tenantID)).
		Where("code = ?", strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a specialization
func (r *GormSpecializationRepository) Save(ctx context.Context, spec *learning.Specialization) error {
	model := models.SpecializationModelFromDomain(spec)
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *GormSpecializationRepository) findAll(query *gorm.DB, filter shared.Filter) ([]learning.Specialization, error) {
	var specModels []models.SpecializationModel
	query = r.applySearch(query, filter)
	query = applyPagination(query, filter, SpecializationSortFields)

	if err := query.Find(&specModels).Error; err != nil {
		return nil, err
	}

	specs := make([]learning.Specialization, len(specModels))
	for i, model := range specModels {
		specs[i] = *model.ToDomain()
	}
	return specs, nil
}

func (r *GormSpecializationRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", pattern, pattern)
	}
	if programID, ok := filter.Filters["program_id"]; ok {
		query = query.Where("program_id = ?", programID)
	}
	return query
}

var _ learning.SpecializationRepository = (*GormSpecializationRepository)(nil)
