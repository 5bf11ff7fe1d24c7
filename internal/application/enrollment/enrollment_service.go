package enrollment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lms/backend/internal/application/accessctx"
	"github.com/lms/backend/internal/domain/enrollment"
	"github.com/lms/backend/internal/domain/identity"
	"github.com/lms/backend/internal/domain/learning"
	"github.com/lms/backend/internal/domain/people"
	"github.com/lms/backend/internal/domain/shared"
)

// EnrollmentService manages enrollments and course progress. Students act
// on their own enrollments only; admins act on any enrollment in their
// tenant. At most one live enrollment per (student, course) pair.
type EnrollmentService struct {
	enrollRepo  enrollment.Repository
	courseRepo  learning.CourseRepository
	studentRepo people.StudentRepository
	logger      *zap.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	enrollRepo enrollment.Repository,
	courseRepo learning.CourseRepository,
	studentRepo people.StudentRepository,
	logger *zap.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		enrollRepo:  enrollRepo,
		courseRepo:  courseRepo,
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// Enroll enrolls a student in a published course. The enrollment and its
// zeroed progress row are persisted atomically. Re-enrolling after a
// withdrawal creates a fresh enrollment.
func (s *EnrollmentService) Enroll(ctx context.Context, access accessctx.Access, req EnrollRequest) (*EnrollmentResponse, error) {
	tenantID, err := access.ResolveTenant(req.TenantID)
	if err != nil {
		return nil, err
	}

	studentID, err := s.resolveStudentID(ctx, access, tenantID, req.StudentID)
	if err != nil {
		return nil, err
	}

	course, err := s.courseRepo.FindByIDForTenant(ctx, tenantID, req.CourseID)
	if err != nil {
		return nil, err
	}
	if course.Status != learning.CourseStatusPublished {
		return nil, shared.NewDomainError("COURSE_NOT_PUBLISHED", "Students can only enroll in published courses")
	}

	existing, err := s.enrollRepo.FindByStudentAndCourse(ctx, tenantID, studentID, req.CourseID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.Status == enrollment.StatusActive {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Student is already enrolled in this course")
	}

	enr, err := enrollment.NewEnrollment(tenantID, studentID, req.CourseID, access.UserID, access.IP)
	if err != nil {
		return nil, err
	}
	progress := enrollment.NewCourseProgress(tenantID, enr.ID, access.UserID, access.IP)

	if err := s.enrollRepo.SaveWithProgress(ctx, enr, progress); err != nil {
		return nil, err
	}

	s.logger.Info("Student enrolled",
		zap.String("enrollment_id", enr.ID.String()),
		zap.String("student_id", studentID.String()),
		zap.String("course_id", req.CourseID.String()))

	response := ToEnrollmentResponse(enr)
	return &response, nil
}

// GetByID retrieves an enrollment
func (s *EnrollmentService) GetByID(ctx context.Context, access accessctx.Access, requestedTenant, enrollmentID uuid.UUID) (*EnrollmentResponse, error) {
	enr, _, err := s.loadAuthorized(ctx, access, requestedTenant, enrollmentID)
	if err != nil {
		return nil, err
	}
	response := ToEnrollmentResponse(enr)
	return &response, nil
}

// ListByStudent retrieves a student's enrollments. Students may only list
// their own.
func (s *EnrollmentService) ListByStudent(ctx context.Context, access accessctx.Access, filter ListFilter) ([]EnrollmentResponse, error) {
	tenantID, err := access.ResolveTenant(filter.TenantID)
	if err != nil {
		return nil, err
	}
	studentID, err := s.resolveStudentID(ctx, access, tenantID, filter.StudentID)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.enrollRepo.FindByStudent(ctx, tenantID, studentID, buildFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToEnrollmentResponses(enrollments), nil
}

// ListByCourse retrieves the enrollments of a course. Not available to
// students.
func (s *EnrollmentService) ListByCourse(ctx context.Context, access accessctx.Access, filter ListFilter) ([]EnrollmentResponse, error) {
	if err := access.RequireRole(identity.RoleSuperAdmin, identity.RoleTenantAdmin, identity.RoleTeacher); err != nil {
		return nil, err
	}
	tenantID, err := access.ResolveTenant(filter.TenantID)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.enrollRepo.FindByCourse(ctx, tenantID, filter.CourseID, buildFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToEnrollmentResponses(enrollments), nil
}

// Withdraw removes the student from the course
func (s *EnrollmentService) Withdraw(ctx context.Context, access accessctx.Access, requestedTenant, enrollmentID uuid.UUID) (*EnrollmentResponse, error) {
	enr, _, err := s.loadAuthorized(ctx, access, requestedTenant, enrollmentID)
	if err != nil {
		return nil, err
	}

	if err := enr.Withdraw(); err != nil {
		return nil, err
	}
	enr.StampUpdated(access.UserID, access.IP)
	if err := s.enrollRepo.Save(ctx, enr); err != nil {
		return nil, err
	}

	s.logger.Info("Enrollment withdrawn", zap.String("enrollment_id", enr.ID.String()))

	response := ToEnrollmentResponse(enr)
	return &response, nil
}

// Complete marks an enrollment finished regardless of recorded progress.
// Admin-only; progress-driven completion happens in RecordProgress.
func (s *EnrollmentService) Complete(ctx context.Context, access accessctx.Access, requestedTenant, enrollmentID uuid.UUID) (*EnrollmentResponse, error) {
	if err := access.RequireAdministrative(); err != nil {
		return nil, err
	}
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return nil, err
	}

	enr, err := s.enrollRepo.FindByIDForTenant(ctx, tenantID, enrollmentID)
	if err != nil {
		return nil, err
	}
	if err := enr.Complete(); err != nil {
		return nil, err
	}
	enr.StampUpdated(access.UserID, access.IP)
	if err := s.enrollRepo.Save(ctx, enr); err != nil {
		return nil, err
	}

	response := ToEnrollmentResponse(enr)
	return &response, nil
}

// RecordProgress updates the progress of an active enrollment. Reaching
// 100 percent completes the enrollment in the same transaction.
func (s *EnrollmentService) RecordProgress(ctx context.Context, access accessctx.Access, requestedTenant, enrollmentID uuid.UUID, req RecordProgressRequest) (*ProgressResponse, error) {
	enr, tenantID, err := s.loadAuthorized(ctx, access, requestedTenant, enrollmentID)
	if err != nil {
		return nil, err
	}

	if enr.Status != enrollment.StatusActive {
		return nil, shared.NewDomainError("INVALID_STATE", "Progress can only be recorded on active enrollments")
	}

	progress, err := s.enrollRepo.FindProgress(ctx, tenantID, enrollmentID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		progress = enrollment.NewCourseProgress(tenantID, enrollmentID, access.UserID, access.IP)
	}

	if err := progress.Record(req.PercentComplete, req.LastVideoID); err != nil {
		return nil, err
	}
	progress.StampUpdated(access.UserID, access.IP)

	if progress.IsComplete() {
		if err := enr.Complete(); err != nil {
			return nil, err
		}
		enr.StampUpdated(access.UserID, access.IP)
		if err := s.enrollRepo.SaveWithProgress(ctx, enr, progress); err != nil {
			return nil, err
		}
		s.logger.Info("Course completed",
			zap.String("enrollment_id", enr.ID.String()),
			zap.String("student_id", enr.StudentID.String()))
	} else {
		if err := s.enrollRepo.SaveProgress(ctx, progress); err != nil {
			return nil, err
		}
	}

	response := ToProgressResponse(progress)
	return &response, nil
}

// GetProgress retrieves the progress of an enrollment
func (s *EnrollmentService) GetProgress(ctx context.Context, access accessctx.Access, requestedTenant, enrollmentID uuid.UUID) (*ProgressResponse, error) {
	_, tenantID, err := s.loadAuthorized(ctx, access, requestedTenant, enrollmentID)
	if err != nil {
		return nil, err
	}

	progress, err := s.enrollRepo.FindProgress(ctx, tenantID, enrollmentID)
	if err != nil {
		return nil, err
	}
	response := ToProgressResponse(progress)
	return &response, nil
}

// resolveStudentID maps the caller to the student being acted on. Student
// callers are pinned to their own profile; naming another student is a
// cross-ownership attempt. Other roles must name a student that exists.
func (s *EnrollmentService) resolveStudentID(ctx context.Context, access accessctx.Access, tenantID, requested uuid.UUID) (uuid.UUID, error) {
	if access.Role == identity.RoleStudent {
		student, err := s.studentRepo.FindByUserID(ctx, tenantID, access.UserID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return uuid.Nil, shared.ErrForbidden
			}
			return uuid.Nil, err
		}
		if requested != uuid.Nil && requested != student.ID {
			return uuid.Nil, shared.ErrForbidden
		}
		return student.ID, nil
	}

	if requested == uuid.Nil {
		return uuid.Nil, shared.NewDomainError("INVALID_INPUT", "A student must be named")
	}
	if _, err := s.studentRepo.FindByIDForTenant(ctx, tenantID, requested); err != nil {
		return uuid.Nil, err
	}
	return requested, nil
}

// loadAuthorized loads an enrollment and verifies the caller may act on it
func (s *EnrollmentService) loadAuthorized(ctx context.Context, access accessctx.Access, requestedTenant, enrollmentID uuid.UUID) (*enrollment.Enrollment, uuid.UUID, error) {
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return nil, uuid.Nil, err
	}

	enr, err := s.enrollRepo.FindByIDForTenant(ctx, tenantID, enrollmentID)
	if err != nil {
		return nil, uuid.Nil, err
	}

	if access.Role == identity.RoleStudent {
		student, err := s.studentRepo.FindByUserID(ctx, tenantID, access.UserID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, uuid.Nil, shared.ErrForbidden
			}
			return nil, uuid.Nil, err
		}
		if enr.StudentID != student.ID {
			return nil, uuid.Nil, shared.ErrForbidden
		}
	}

	return enr, tenantID, nil
}
