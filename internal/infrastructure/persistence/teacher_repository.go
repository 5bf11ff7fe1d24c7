package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lms/backend/internal/domain/people"
	"github.com/lms/backend/internal/domain/shared"
	"github.com/lms/backend/internal/infrastructure/persistence/models"
	"github.com/lms/backend/internal/infrastructure/persistence/scope"
)

// GormTeacherRepository implements TeacherRepository using GORM
type GormTeacherRepository struct {
	db *gorm.DB
}

// NewGormTeacherRepository creates a new GormTeacherRepository
func NewGormTeacherRepository(db *gorm.DB) *GormTeacherRepository {
	return &GormTeacherRepository{db: db}
}

// FindByIDForTenant finds a teacher by ID within a tenant
func (r *GormTeacherRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*people.Teacher, error) {
	var model models.TeacherModel
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

// FindByUserID finds the teacher profile linked to a system user account
func (r *GormTeacherRepository) FindByUserID(ctx context.Context, tenantID, userID uuid.UUID) (*people.Teacher, error) {
	var model models.TeacherModel
	if err := r.db.WithContext(ctx).
		Scopes(scope.Tenant(tenantID)).
		Where("user_id = ?", userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all teachers for a tenant
func (r *GormTeacherRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]people.Teacher, error) {
	var teacherModels []models.TeacherModel
	query := r.db.WithContext(ctx).Model(&models.TeacherModel{}).Scopes(scope.Tenant(tenantID))
	query = r.applySearch(query, filter)
	query = applyPagination(query, filter, TeacherSortFields)

	if err := query.Find(&teacherModels).Error; err != nil {
		return nil, err
	}

	teachers := make([]people.Teacher, len(teacherModels))
	for i, model := range teacherModels {
		teachers[i] = *model.ToDomain()
	}
	return teachers, nil
}

// CountForTenant counts teachers for a tenant
func (r *GormTeacherRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.TeacherModel{}).Scopes(scope.Tenant(tenantID))
	query = r.applySearch(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByUsername checks if a teacher username is taken within the tenant
func (r *GormTeacherRepository) ExistsByUsername(ctx context.Context, tenantID uuid.UUID, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TeacherModel{}).
		Scopes(scope.Tenant(tenantID)).
		Where("username = ?", strings.ToLower(username)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a teacher
func (r *GormTeacherRepository) Save(ctx context.Context, teacher *people.Teacher) error {
	model := models.TeacherModelFromDomain(teacher)
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *GormTeacherRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(username) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?",
			pattern, pattern, pattern, pattern)
	}
	return query
}

var _ people.TeacherRepository = (*GormTeacherRepository)(nil)
