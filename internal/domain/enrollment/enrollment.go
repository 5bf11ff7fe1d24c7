// Package enrollment tracks which students take which courses and how far
// they have progressed.
package enrollment

import (
	"time"

	"github.com/google/uuid"
	"github.com/lms/backend/internal/domain/shared"
)

// Status represents the lifecycle of an enrollment
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusWithdrawn Status = "withdrawn"
)

// Enrollment links a student to a course. One live enrollment per
// (student, course) pair within a tenant.
type Enrollment struct {
	shared.TenantAuditRoot
	StudentID   uuid.UUID
	CourseID    uuid.UUID
	Status      Status
	EnrolledAt  time.Time
	CompletedAt *time.Time
	WithdrawnAt *time.Time
}

// NewEnrollment enrolls a student in a course
func NewEnrollment(tenantID, studentID, courseID, createdBy uuid.UUID, ip string) (*Enrollment, error) {
	if studentID == uuid.Nil || courseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Enrollment requires a student and a course")
	}
	return &Enrollment{
		TenantAuditRoot: shared.NewTenantAuditRoot(tenantID, createdBy, ip),
		StudentID:       studentID,
		CourseID:        courseID,
		Status:          StatusActive,
		EnrolledAt:      time.Now(),
	}, nil
}

// Complete marks the enrollment finished
func (e *Enrollment) Complete() error {
	if e.Status != StatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active enrollments can be completed")
	}
	now := time.Now()
	e.Status = StatusCompleted
	e.CompletedAt = &now
	return nil
}

// Withdraw removes the student from the course
func (e *Enrollment) Withdraw() error {
	if e.Status != StatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active enrollments can be withdrawn")
	}
	now := time.Now()
	e.Status = StatusWithdrawn
	e.WithdrawnAt = &now
	return nil
}

// CourseProgress records how far a student is through a course.
// PercentComplete is clamped to [0,100]; reaching 100 completes the
// owning enrollment.
type CourseProgress struct {
	shared.TenantAuditRoot
	EnrollmentID    uuid.UUID
	PercentComplete int
	LastVideoID     *uuid.UUID
	LastActivityAt  time.Time
}

// NewCourseProgress creates a zeroed progress row for an enrollment
func NewCourseProgress(tenantID, enrollmentID, createdBy uuid.UUID, ip string) *CourseProgress {
	return &CourseProgress{
		TenantAuditRoot: shared.NewTenantAuditRoot(tenantID, createdBy, ip),
		EnrollmentID:    enrollmentID,
		LastActivityAt:  time.Now(),
	}
}

// Record updates the progress percentage and last-watched video.
// Progress never moves backwards.
func (p *CourseProgress) Record(percent int, lastVideoID *uuid.UUID) error {
	if percent < 0 || percent > 100 {
		return shared.NewDomainError("INVALID_PROGRESS", "Percent complete must be between 0 and 100")
	}
	if percent > p.PercentComplete {
		p.PercentComplete = percent
	}
	if lastVideoID != nil {
		p.LastVideoID = lastVideoID
	}
	p.LastActivityAt = time.Now()
	return nil
}

// IsComplete reports whether the course has been fully watched
func (p *CourseProgress) IsComplete() bool {
	return p.PercentComplete >= 100
}
