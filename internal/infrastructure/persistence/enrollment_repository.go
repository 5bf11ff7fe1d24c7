package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lms/backend/internal/domain/enrollment"
	"github.com/lms/backend/internal/domain/shared"
	"github.com/lms/backend/internal/infrastructure/persistence/models"
	"github.com/lms/backend/internal/infrastructure/persistence/scope"
)

// GormEnrollmentRepository implements enrollment.Repository using GORM
type GormEnrollmentRepository struct {
	db *gorm.DB
}

// NewGormEnrollmentRepository creates a new GormEnrollmentRepository
func NewGormEnrollmentRepository(db *gorm.DB) *GormEnrollmentRepository {
	return &GormEnrollmentRepository{db: db}
}

// FindByIDForTenant finds an enrollment by ID within a tenant
func (r *GormEnrollmentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*enrollment.Enrollment, error) {
	var model models.EnrollmentModel
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

// FindByStudentAndCourse finds the most recent enrollment for a pair
func (r *GormEnrollmentRepository) FindByStudentAndCourse(ctx context.Context, tenantID, studentID, courseID uuid.UUID) (*enrollment.Enrollment, error) {
	var model models.EnrollmentModel
	if err := r.db.WithContext(ctx).
		Scopes(scope.Tenant(tenantID)).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Order("enrolled_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByStudent finds a student's enrollments
func (r *GormEnrollmentRepository) FindByStudent(ctx context.Context, tenantID, studentID uuid.UUID, filter shared.Filter) ([]enrollment.Enrollment, error) {
	query := r.db.WithContext(ctx).Model(&models.EnrollmentModel{}).
		Scopes(scope.Tenant(tenantID)).
		Where("student_id = ?", studentID)
	return r.findAll(query, filter)
}

// FindByCourse finds a course's enrollments
func (r *GormEnrollmentRepository) FindByCourse(ctx context.Context, tenantID, courseID uuid.UUID, filter shared.Filter) ([]enrollment.Enrollment, error) {
	query := r.db.WithContext(ctx).Model(&models.EnrollmentModel{}).
		Scopes(scope.Tenant(tenantID)).
		Where("course_id = ?", courseID)
	return r.findAll(query, filter)
}

// CountForTenant counts enrollments for a tenant
func (r *GormEnrollmentRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.EnrollmentModel{}).Scopes(scope.Tenant(tenantID))
	query = r.applyFilters(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an enrollment
func (r *GormEnrollmentRepository) Save(ctx context.Context, e *enrollment.Enrollment) error {
	model := models.EnrollmentModelFromDomain(e)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindProgress finds the progress row for an enrollment
func (r *GormEnrollmentRepository) FindProgress(ctx context.Context, tenantID, enrollmentID uuid.UUID) (*enrollment.CourseProgress, error) {
	var model models.CourseProgressModel
	if err := r.db.WithContext(ctx).
		Scopes(scope.Tenant(tenantID)).
		Where("enrollment_id = ?", enrollmentID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// SaveProgress creates or updates a progress row
func (r *GormEnrollmentRepository) SaveProgress(ctx context.Context, p *enrollment.CourseProgress) error {
	model := models.CourseProgressModelFromDomain(p)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithProgress persists the enrollment and its progress row atomically
func (r *GormEnrollmentRepository) SaveWithProgress(ctx context.Context, e *enrollment.Enrollment, p *enrollment.CourseProgress) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(models.EnrollmentModelFromDomain(e)).Error; err != nil {
			return err
		}
		return tx.Save(models.CourseProgressModelFromDomain(p)).Error
	})
}

func (r *GormEnrollmentRepository) findAll(query *gorm.DB, filter shared.Filter) ([]enrollment.Enrollment, error) {
	var enrollmentModels []models.EnrollmentModel
	query = r.applyFilters(query, filter)
	query = applyPagination(query, filter, EnrollmentSortFields)

	if err := query.Find(&enrollmentModels).Error; err != nil {
		return nil, err
	}

	enrollments := make([]enrollment.Enrollment, len(enrollmentModels))
	for i, model := range enrollmentModels {
		enrollments[i] = *model.ToDomain()
	}
	return enrollments, nil
}

func (r *GormEnrollmentRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "student_id":
			query = query.Where("student_id = ?", value)
		case "course_id":
			query = query.Where("course_id = ?", value)
		}
	}
	return query
}

var _ enrollment.Repository = (*GormEnrollmentRepository)(nil)
