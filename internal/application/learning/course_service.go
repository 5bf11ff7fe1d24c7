package learning

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lms/backend/internal/application/accessctx"
	"github.com/lms/backend/internal/domain/identity"
	"github.com/lms/backend/internal/domain/learning"
	"github.com/lms/backend/internal/domain/people"
	"github.com/lms/backend/internal/domain/shared"
)

// CourseService manages courses, their content hierarchy and teacher
// assignments. Curriculum structure is admin-only; content under a course
// may also be managed by teachers assigned to it.
type CourseService struct {
	courseRepo  learning.CourseRepository
	specRepo    learning.SpecializationRepository
	teacherRepo people.TeacherRepository
	logger      *zap.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(
	courseRepo learning.CourseRepository,
	specRepo learning.SpecializationRepository,
	teacherRepo people.TeacherRepository,
	logger *zap.Logger,
) *CourseService {
	return &CourseService{
		courseRepo:  courseRepo,
		specRepo:    specRepo,
		teacherRepo: teacherRepo,
		logger:      logger,
	}
}

// Create creates a draft course under an existing specialization
func (s *CourseService) Create(ctx context.Context, access accessctx.Access, req CreateCourseRequest) (*CourseResponse, error) {
	if err := access.RequireAdministrative(); err != nil {
		return nil, err
	}
	tenantID, err := access.ResolveTenant(req.TenantID)
	if err != nil {
		return nil, err
	}

	if _, err := s.specRepo.FindByIDForTenant(ctx, tenantID, req.SpecializationID); err != nil {
		return nil, err
	}

	exists, err := s.courseRepo.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Course with this code already exists")
	}

	course, err := learning.NewCourse(tenantID, req.SpecializationID, req.Name, req.Code, req.Price, access.UserID, access.IP)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := course.Update("", req.Description, nil); err != nil {
			return nil, err
		}
	}

	if err := s.courseRepo.Save(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info("Course created",
		zap.String("course_id", course.ID.String()),
		zap.String("code", course.Code))

	response := ToCourseResponse(course)
	return &response, nil
}

// GetByID retrieves a course without its content tree
func (s *CourseService) GetByID(ctx context.Context, access accessctx.Access, requestedTenant, courseID uuid.UUID) (*CourseResponse, error) {
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return nil, err
	}

	course, err := s.courseRepo.FindByIDForTenant(ctx, tenantID, courseID)
	if err != nil {
		return nil, err
	}

	response := ToCourseResponse(course)
	return &response, nil
}

// GetContent retrieves a course with its ordered module/topic/video tree
func (s *CourseService) GetContent(ctx context.Context, access accessctx.Access, requestedTenant, courseID uuid.UUID) (*CourseContentResponse, error) {
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return nil, err
	}

	course, err := s.courseRepo.FindByIDWithContent(ctx, tenantID, courseID)
	if err != nil {
		return nil, err
	}

	// Students only see published courses
	if access.Role == identity.RoleStudent && course.Status != learning.CourseStatusPublished {
		return nil, shared.ErrNotFound
	}

	response := ToCourseContentResponse(course)
	return &response, nil
}

// List retrieves courses with pagination. Students only see published ones.
func (s *CourseService) List(ctx context.Context, access accessctx.Access, filter ListFilter) ([]CourseResponse, int64, error) {
	tenantID, err := access.ResolveTenant(filter.TenantID)
	if err != nil {
		return nil, 0, err
	}

	domainFilter := buildFilter(filter)
	if access.Role == identity.RoleStudent {
		domainFilter.Filters["status"] = string(learning.CourseStatusPublished)
	}

	courses, err := s.courseRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.courseRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCourseResponses(courses), total, nil
}

// Update applies partial changes to a course
func (s *CourseService) Update(ctx context.Context, access accessctx.Access, requestedTenant, courseID uuid.UUID, req UpdateCourseRequest) (*CourseResponse, error) {
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return nil, err
	}
	if err := s.requireContentManager(ctx, access, tenantID, courseID); err != nil {
		return nil, err
	}

	course, err := s.courseRepo.FindByIDForTenant(ctx, tenantID, courseID)
	if err != nil {
		return nil, err
	}

	name := ""
	if req.Name != nil {
		name = *req.Name
	}
	description := ""
	if req.Description != nil {
		description = *req.Description
	}
	if err := course.Update(name, description, req.Price); err != nil {
		return nil, err
	}

	course.StampUpdated(access.UserID, access.IP)
	if err := s.courseRepo.Save(ctx, course); err != nil {
		return nil, err
	}

	response := ToCourseResponse(course)
	return &response, nil
}

// Publish makes a course visible to students
func (s *CourseService) Publish(ctx context.Context, access accessctx.Access, requestedTenant, courseID uuid.UUID) (*CourseResponse, error) {
	return s.transition(ctx, access, requestedTenant, courseID, func(c *learning.Course) error {
		return c.Publish()
	})
}

// Archive retires a course from enrollment
func (s *CourseService) Archive(ctx context.Context, access accessctx.Access, requestedTenant, courseID uuid.UUID) (*CourseResponse, error) {
	return s.transition(ctx, access, requestedTenant, courseID, func(c *learning.Course) error {
		c.Archive()
		return nil
	})
}

func (s *CourseService) transition(ctx context.Context, access accessctx.Access, requestedTenant, courseID uuid.UUID, apply func(*learning.Course) error) (*CourseResponse, error) {
	if err := access.RequireAdministrative(); err != nil {
		return nil, err
	}
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return nil, err
	}

	course, err := s.courseRepo.FindByIDForTenant(ctx, tenantID, courseID)
	if err != nil {
		return nil, err
	}

	if err := apply(course); err != nil {
		return nil, err
	}
	course.StampUpdated(access.UserID, access.IP)

	if err := s.courseRepo.Save(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info("Course status changed",
		zap.String("course_id", courseID.String()),
		zap.String("status", string(course.Status)))

	response := ToCourseResponse(course)
	return &response, nil
}

// Delete soft-deletes a course
func (s *CourseService) Delete(ctx context.Context, access accessctx.Access, requestedTenant, courseID uuid.UUID) error {
	if err := access.RequireAdministrative(); err != nil {
		return err
	}
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return err
	}

	course, err := s.courseRepo.FindByIDForTenant(ctx, tenantID, courseID)
	if err != nil {
		return err
	}

	course.MarkDeleted(access.UserID)
	return s.courseRepo.Save(ctx, course)
}

// AddModule adds a module to a course
func (s *CourseService) AddModule(ctx context.Context, access accessctx.Access, requestedTenant, courseID uuid.UUID, req AddModuleRequest) (*ModuleResponse, error) {
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return nil, err
	}
	if err := s.requireContentManager(ctx, access, tenantID, courseID); err != nil {
		return nil, err
	}
	if _, err := s.courseRepo.FindByIDForTenant(ctx, tenantID, courseID); err != nil {
		return nil, err
	}

	module, err := learning.NewCourseModule(tenantID, courseID, req.Name, req.SortOrder, access.UserID, access.IP)
	if err != nil {
		return nil, err
	}
	if err := s.courseRepo.SaveModule(ctx, module); err != nil {
		return nil, err
	}

	return &ModuleResponse{
		ID:        module.ID,
		Name:      module.Name,
		SortOrder: module.SortOrder,
		Topics:    []TopicResponse{},
	}, nil
}

// RemoveModule soft-deletes a module
func (s *CourseService) RemoveModule(ctx context.Context, access accessctx.Access, requestedTenant, moduleID uuid.UUID) error {
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return err
	}

	module, err := s.courseRepo.FindModuleByID(ctx, tenantID, moduleID)
	if err != nil {
		return err
	}
	if err := s.requireContentManager(ctx, access, tenantID, module.CourseID); err != nil {
		return err
	}

	module.MarkDeleted(access.UserID)
	return s.courseRepo.SaveModule(ctx, module)
}

// AddTopic adds a topic to a module
func (s *CourseService) AddTopic(ctx context.Context, access accessctx.Access, requestedTenant, moduleID uuid.UUID, req AddTopicRequest) (*TopicResponse, error) {
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return nil, err
	}

	module, err := s.courseRepo.FindModuleByID(ctx, tenantID, moduleID)
	if err != nil {
		return nil, err
	}
	if err := s.requireContentManager(ctx, access, tenantID, module.CourseID); err != nil {
		return nil, err
	}

	topic, err := learning.NewTopic(tenantID, moduleID, req.Name, req.SortOrder, access.UserID, access.IP)
	if err != nil {
		return nil, err
	}
	if err := s.courseRepo.SaveTopic(ctx, topic); err != nil {
		return nil, err
	}

	return &TopicResponse{
		ID:        topic.ID,
		Name:      topic.Name,
		SortOrder: topic.SortOrder,
		Videos:    []VideoResponse{},
	}, nil
}

// AddVideo adds a video to a topic
func (s *CourseService) AddVideo(ctx context.Context, access accessctx.Access, requestedTenant, topicID uuid.UUID, req AddVideoRequest) (*VideoResponse, error) {
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return nil, err
	}

	topic, err := s.courseRepo.FindTopicByID(ctx, tenantID, topicID)
	if err != nil {
		return nil, err
	}
	module, err := s.courseRepo.FindModuleByID(ctx, tenantID, topic.ModuleID)
	if err != nil {
		return nil, err
	}
	if err := s.requireContentManager(ctx, access, tenantID, module.CourseID); err != nil {
		return nil, err
	}

	duration := time.Duration(req.DurationSeconds) * time.Second
	video, err := learning.NewVideo(tenantID, topicID, req.Name, req.URL, duration, req.SortOrder, access.UserID, access.IP)
	if err != nil {
		return nil, err
	}
	if err := s.courseRepo.SaveVideo(ctx, video); err != nil {
		return nil, err
	}

	return &VideoResponse{
		ID:              video.ID,
		Name:            video.Name,
		URL:             video.URL,
		DurationSeconds: int64(video.Duration.Seconds()),
		SortOrder:       video.SortOrder,
	}, nil
}

// AssignTeacher assigns a teacher to deliver a course. Assigning the same
// teacher twice is a no-op.
func (s *CourseService) AssignTeacher(ctx context.Context, access accessctx.Access, requestedTenant, courseID, teacherID uuid.UUID) error {
	if err := access.RequireAdministrative(); err != nil {
		return err
	}
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return err
	}

	if _, err := s.courseRepo.FindByIDForTenant(ctx, tenantID, courseID); err != nil {
		return err
	}
	if _, err := s.teacherRepo.FindByIDForTenant(ctx, tenantID, teacherID); err != nil {
		return err
	}

	assignment := learning.NewTeacherCourse(tenantID, teacherID, courseID, access.UserID)
	if err := s.courseRepo.AssignTeacher(ctx, assignment); err != nil {
		return err
	}

	s.logger.Info("Teacher assigned to course",
		zap.String("course_id", courseID.String()),
		zap.String("teacher_id", teacherID.String()))
	return nil
}

// UnassignTeacher removes a teacher from a course
func (s *CourseService) UnassignTeacher(ctx context.Context, access accessctx.Access, requestedTenant, courseID, teacherID uuid.UUID) error {
	if err := access.RequireAdministrative(); err != nil {
		return err
	}
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return err
	}
	return s.courseRepo.UnassignTeacher(ctx, tenantID, teacherID, courseID)
}

// ListTeachers returns the IDs of teachers assigned to a course
func (s *CourseService) ListTeachers(ctx context.Context, access accessctx.Access, requestedTenant, courseID uuid.UUID) ([]uuid.UUID, error) {
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return nil, err
	}
	if _, err := s.courseRepo.FindByIDForTenant(ctx, tenantID, courseID); err != nil {
		return nil, err
	}
	return s.courseRepo.FindTeacherIDs(ctx, tenantID, courseID)
}

// requireContentManager allows admins unconditionally, and teachers only
// on courses they are assigned to. The assignment is keyed by the teacher
// profile, so the caller's user account is resolved to its profile first.
func (s *CourseService) requireContentManager(ctx context.Context, access accessctx.Access, tenantID, courseID uuid.UUID) error {
	if access.Role.Administrative() {
		return nil
	}
	if access.Role != identity.RoleTeacher {
		return shared.ErrForbidden
	}

	teacher, err := s.teacherRepo.FindByUserID(ctx, tenantID, access.UserID)
	if err != nil {
		if err == shared.ErrNotFound {
			return shared.ErrForbidden
		}
		return err
	}

	assigned, err := s.courseRepo.IsTeacherAssigned(ctx, tenantID, teacher.ID, courseID)
	if err != nil {
		return err
	}
	if !assigned {
		return shared.ErrForbidden
	}
	return nil
}
