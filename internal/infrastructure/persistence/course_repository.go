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

// GormCourseRepository implements CourseRepository using GORM
type GormCourseRepository struct {
	db *gorm.DB
}

// NewGormCourseRepository creates a new GormCourseRepository
func NewGormCourseRepository(db *gorm.DB) *GormCourseRepository {
	return &GormCourseRepository{db: db}
}

// FindByIDForTenant finds a course by ID within a tenant
func (r *GormCourseRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*learning.Course, error) {
	var model models.CourseModel
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

// FindByIDWithContent loads a course with its module/topic/video tree,
// children ordered by sort_order
func (r *GormCourseRepository) FindByIDWithContent(ctx context.Context, tenantID, id uuid.UUID) (*learning.Course, error) {
	bySortOrder := func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}

	var model models.CourseModel
	if err := r.db.WithContext(ctx).
		Scopes(scope.Tenant(tenantID)).
		Preload("Modules", bySortOrder).
		Preload("Modules.Topics", bySortOrder).
		Preload("Modules.Topics.Videos", bySortOrder).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all courses for a tenant
func (r *GormCourseRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]learning.Course, error) {
	var courseModels []models.CourseModel
	query := r.db.WithContext(ctx).Model(&models.CourseModel{}).Scopes(scope.Tenant(tenantID))
	query = r.applySearch(query, filter)
	query = applyPagination(query, filter, CourseSortFields)

	if err := query.Find(&courseModels).Error; err != nil {
		return nil, err
	}

	courses := make([]learning.Course, len(courseModels))
	for i, model := range courseModels {
		courses[i] = *model.ToDomain()
	}
	return courses, nil
}

// CountForTenant counts courses for a tenant
func (r *GormCourseRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.CourseModel{}).Scopes(scope.Tenant(tenantID))
	query = r.applySearch(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a course with the given code exists in the tenant
func (r *GormCourseRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CourseModel{}).
		Scopes(scope.Tenant(tenantID)).
		Where("code = ?", strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a course. Content children are saved separately.
func (r *GormCourseRepository) Save(ctx context.Context, course *learning.Course) error {
	model := models.CourseModelFromDomain(course)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveModule creates or updates a course module
func (r *GormCourseRepository) SaveModule(ctx context.Context, module *learning.CourseModule) error {
	model := models.CourseModuleModelFromDomain(module)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindModuleByID finds a module by ID within a tenant
func (r *GormCourseRepository) FindModuleByID(ctx context.Context, tenantID, id uuid.UUID) (*learning.CourseModule, error) {
	var model models.CourseModuleModel
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

// SaveTopic creates or updates a topic
func (r *GormCourseRepository) SaveTopic(ctx context.Context, topic *learning.Topic) error {
	model := models.TopicModelFromDomain(topic)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindTopicByID finds a topic by ID within a tenant
func (r *GormCourseRepository) FindTopicByID(ctx context.Context, tenantID, id uuid.UUID) (*learning.Topic, error) {
	var model models.TopicModel
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

// SaveVideo creates or updates a video
func (r *GormCourseRepository) SaveVideo(ctx context.Context, video *learning.Video) error {
	model := models.VideoModelFromDomain(video)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindVideoByID finds a video by ID within a tenant
func (r *GormCourseRepository) FindVideoByID(ctx context.Context, tenantID, id uuid.UUID) (*learning.Video, error) {
	var model models.VideoModel
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

// AssignTeacher links a teacher to a course. Assigning twice is a no-op.
func (r *GormCourseRepository) AssignTeacher(ctx context.Context, assignment learning.TeacherCourse) error {
	model := models.TeacherCourseModelFromDomain(assignment)
	err := r.db.WithContext(ctx).Create(model).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// UnassignTeacher removes a teacher-course assignment
func (r *GormCourseRepository) UnassignTeacher(ctx context.Context, tenantID, teacherID, courseID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.TeacherCourseModel{}, "tenant_id = ? AND teacher_id = ? AND course_id = ?", tenantID, teacherID, courseID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindTeacherIDs returns the teachers assigned to a course
func (r *GormCourseRepository) FindTeacherIDs(ctx context.Context, tenantID, courseID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.TeacherCourseModel{}).
		Where("tenant_id = ? AND course_id = ?", tenantID, courseID).
		Pluck("teacher_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// IsTeacherAssigned checks whether a teacher is assigned to a course
func (r *GormCourseRepository) IsTeacherAssigned(ctx context.Context, tenantID, teacherID, courseID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TeacherCourseModel{}).
		Where("tenant_id = ? AND teacher_id = ? AND course_id = ?", tenantID, teacherID, courseID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormCourseRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "specialization_id":
			query = query.Where("specialization_id = ?", value)
		}
	}
	return query
}

var _ learning.CourseRepository = (*GormCourseRepository)(nil)
