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

// GormProgramRepository implements ProgramRepository using GORM
type GormProgramRepository struct {
	db *gorm.DB
}

// NewGormProgramRepository creates a new GormProgramRepository
func NewGormProgramRepository(db *gorm.DB) *GormProgramRepository {
	return &GormProgramRepository{db: db}
}

// FindByIDForTenant finds a program by ID within a tenant
func (r *GormProgramRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*learning.Program, error) {
	var model models.ProgramModel
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

// FindAllForTenant finds all programs for a tenant
func (r *GormProgramRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]learning.Program, error) {
	var programModels []models.ProgramModel
	query := r.db.WithContext(ctx).Model(&models.ProgramModel{}).Scopes(scope.Tenant(tenantID))
	query = r.applySearch(query, filter)
	query = applyPagination(query, filter, ProgramSortFields)

	if err := query.Find(&programModels).Error; err != nil {
		return nil, err
	}

	programs := make([]learning.Program, len(programModels))
	for i, model := range programModels {
		programs[i] = *model.ToDomain()
	}
	return programs, nil
}

// CountForTenant counts programs for a tenant
func (r *GormProgramRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ProgramModel{}).Scopes(scope.Tenant(tenantID))
	query = r.applySearch(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a program with the given code exists in the tenant
func (r *GormProgramRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProgramModel{}).
		Scopes(scope.Tenant(tenantID)).
		Where("code = ?", strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a program
func (r *GormProgramRepository) Save(ctx context.Context, program *learning.Program) error {
	model := models.ProgramModelFromDomain(program)
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *GormProgramRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", pattern, pattern)
	}
	return query
}

var _ learning.ProgramRepository = (*GormProgramRepository)(nil)
