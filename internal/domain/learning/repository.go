package learning

import (
	"context"

	"github.com/google/uuid"
	"github.com/lms/backend/internal/domain/shared"
)

// ProgramRepository defines persistence operations for programs
type ProgramRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Program, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Program, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
	Save(ctx context.Context, program *Program) error
}

// SpecializationRepository defines persistence operations for specializations
type SpecializationRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Specialization, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Specialization, error)
	FindByProgram(ctx context.Context, tenantID, programID uuid.UUID, filter shared.Filter) ([]Specialization, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
	Save(ctx context.Context, spec *Specialization) error
}

// CourseRepository defines persistence operations for courses and their
// content hierarchy
type CourseRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Course, error)
	// FindByIDWithContent loads the course with its module/topic/video tree,
	// children ordered by sort_order
	FindByIDWithContent(ctx context.Context, tenantID, id uuid.UUID) (*Course, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Course, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
	Save(ctx context.Context, course *Course) error

	SaveModule(ctx context.Context, module *CourseModule) error
	FindModuleByID(ctx context.Context, tenantID, id uuid.UUID) (*CourseModule, error)
	SaveTopic(ctx context.Context, topic *Topic) error
	FindTopicByID(ctx context.Context, tenantID, id uuid.UUID) (*Topic, error)
	SaveVideo(ctx context.Context, video *Video) error
	FindVideoByID(ctx context.Context, tenantID, id uuid.UUID) (*Video, error)

	AssignTeacher(ctx context.Context, assignment TeacherCourse) error
	UnassignTeacher(ctx context.Context, tenantID, teacherID, courseID uuid.UUID) error
	FindTeacherIDs(ctx context.Context, tenantID, courseID uuid.UUID) ([]uuid.UUID, error)
	IsTeacherAssigned(ctx context.Context, tenantID, teacherID, courseID uuid.UUID) (bool, error)
}
