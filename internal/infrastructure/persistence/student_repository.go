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

// GormStudentRepository implements StudentRepository using GORM
type GormStudentRepository struct {
	db *gorm.DB
}

// NewGormStudentRepository creates a new GormStudentRepository
func NewGormStudentRepository(db *gorm.DB) *GormStudentRepository {
	return &GormStudentRepository{db: db}
}

// FindByIDForTenant finds a student by ID within a tenant, with email rows
func (r *GormStudentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*people.Student, error) {
	var model models.StudentModel
	if err := r.db.WithContext(ctx).
		Scopes(scope.Tenant(tenantID)).
		Preload("Emails").
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUserID finds the student profile linked to a system user account
func (r *GormStudentRepository) FindByUserID(ctx context.Context, tenantID, userID uuid.UUID) (*people.Student, error) {
	var model models.StudentModel
	if err := r.db.WithContext(ctx).
		Scopes(scope.Tenant(tenantID)).
		Preload("Emails").
		Where("user_id = ?", userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUsername finds a student by username within a tenant
func (r *GormStudentRepository) FindByUsername(ctx context.Context, tenantID uuid.UUID, username string) (*people.Student, error) {
	var model models.StudentModel
	if err := r.db.WithContext(ctx).
		Scopes(scope.Tenant(tenantID)).
		Preload("Emails").
		Where("username = ?", strings.ToLower(username)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all students for a tenant
func (r *GormStudentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]people.Student, error) {
	var studentModels []models.StudentModel
	query := r.db.WithContext(ctx).Model(&models.StudentModel{}).
		Scopes(scope.Tenant(tenantID)).
		Preload("Emails")
	query = r.applySearch(query, filter)
	query = applyPagination(query, filter, StudentSortFields)

	if err := query.Find(&studentModels).Error; err != nil {
		return nil, err
	}

	students := make([]people.Student, len(studentModels))
	for i, model := range studentModels {
		students[i] = *model.ToDomain()
	}
	return students, nil
}

// CountForTenant counts students for a tenant
func (r *GormStudentRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.StudentModel{}).Scopes(scope.Tenant(tenantID))
	query = r.applySearch(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByUsername checks if a student username is taken within the tenant
func (r *GormStudentRepository) ExistsByUsername(ctx context.Context, tenantID uuid.UUID, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.StudentModel{}).
		Scopes(scope.Tenant(tenantID)).
		Where("username = ?", strings.ToLower(username)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByEmail checks if any student in the tenant owns the email address
func (r *GormStudentRepository) ExistsByEmail(ctx context.Context, tenantID uuid.UUID, address string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.StudentEmailModel{}).
		Scopes(scope.Tenant(tenantID)).
		Where("address = ?", strings.ToLower(address)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a student without touching email rows
func (r *GormStudentRepository) Save(ctx context.Context, student *people.Student) error {
	model := models.StudentModelFromDomain(student)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithEmails persists the student and its email rows in one transaction.
// Either everything lands or nothing does.
func (r *GormStudentRepository) SaveWithEmails(ctx context.Context, student *people.Student) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(models.StudentModelFromDomain(student)).Error; err != nil {
			return err
		}
		for i := range student.Emails {
			if err := tx.Save(models.StudentEmailModelFromDomain(&student.Emails[i])).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormStudentRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(username) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?",
			pattern, pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "is_active":
			query = query.Where("is_active = ?", value)
		}
	}
	return query
}

var _ people.StudentRepository = (*GormStudentRepository)(nil)
