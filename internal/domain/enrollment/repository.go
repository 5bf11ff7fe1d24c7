package enrollment

import (
	"context"

	"github.com/google/uuid"
	"github.com/lms/backend/internal/domain/shared"
)

// Repository defines persistence operations for enrollments and progress
type Repository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Enrollment, error)
	FindByStudentAndCourse(ctx context.Context, tenantID, studentID, courseID uuid.UUID) (*Enrollment, error)
	FindByStudent(ctx context.Context, tenantID, studentID uuid.UUID, filter shared.Filter) ([]Enrollment, error)
	FindByCourse(ctx context.Context, tenantID, courseID uuid.UUID, filter shared.Filter) ([]Enrollment, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, e *Enrollment) error

	FindProgress(ctx context.Context, tenantID, enrollmentID uuid.UUID) (*CourseProgress, error)
	SaveProgress(ctx context.Context, p *CourseProgress) error
	// SaveWithProgress persists the enrollment and its progress row atomically
	SaveWithProgress(ctx context.Context, e *Enrollment, p *CourseProgress) error
}
