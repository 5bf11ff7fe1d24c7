package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lms/backend/internal/domain/enrollment"
)

// EnrollmentModel is the persistence model for enrollments.
// The one-live-enrollment-per-pair rule is enforced at the service layer,
// since withdrawn enrollments may be followed by re-enrollment.
type EnrollmentModel struct {
	TenantAuditModel
	StudentID   uuid.UUID `gorm:"type:uuid;not null;index:idx_enrollments_student_course,priority:1"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;index:idx_enrollments_student_course,priority:2"`
	Status      string    `gorm:"size:20;not null;index"`
	EnrolledAt  time.Time `gorm:"not null"`
	CompletedAt *time.Time
	WithdrawnAt *time.Time
}

// TableName specifies the table name
func (EnrollmentModel) TableName() string {
	return "enrollments"
}

// ToDomain converts the model to a domain enrollment
func (m *EnrollmentModel) ToDomain() *enrollment.Enrollment {
	return &enrollment.Enrollment{
		TenantAuditRoot: m.TenantAuditModel.ToDomain(),
		StudentID:       m.StudentID,
		CourseID:        m.CourseID,
		Status:          enrollment.Status(m.Status),
		EnrolledAt:      m.EnrolledAt,
		CompletedAt:     m.CompletedAt,
		WithdrawnAt:     m.WithdrawnAt,
	}
}

// EnrollmentModelFromDomain creates a model from a domain enrollment
func EnrollmentModelFromDomain(e *enrollment.Enrollment) *EnrollmentModel {
	m := &EnrollmentModel{
		StudentID:   e.StudentID,
		CourseID:    e.CourseID,
		Status:      string(e.Status),
		EnrolledAt:  e.EnrolledAt,
		CompletedAt: e.CompletedAt,
		WithdrawnAt: e.WithdrawnAt,
	}
	m.TenantAuditModel.FromDomain(e.TenantAuditRoot)
	return m
}

// CourseProgressModel is the persistence model for course progress.
// One progress row per enrollment.
type CourseProgressModel struct {
	TenantAuditModel
	EnrollmentID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	PercentComplete int       `gorm:"not null;default:0"`
	LastVideoID     *uuid.UUID
	LastActivityAt  time.Time `gorm:"not null"`
}

// TableName specifies the table name
func (CourseProgressModel) TableName() string {
	return "course_progress"
}

// ToDomain converts the model to a domain course progress
func (m *CourseProgressModel) ToDomain() *enrollment.CourseProgress {
	return &enrollment.CourseProgress{
		TenantAuditRoot: m.TenantAuditModel.ToDomain(),
		EnrollmentID:    m.EnrollmentID,
		PercentComplete: m.PercentComplete,
		LastVideoID:     m.LastVideoID,
		LastActivityAt:  m.LastActivityAt,
	}
}

// CourseProgressModelFromDomain creates a model from a domain course progress
func CourseProgressModelFromDomain(p *enrollment.CourseProgress) *CourseProgressModel {
	m := &CourseProgressModel{
		EnrollmentID:    p.EnrollmentID,
		PercentComplete: p.PercentComplete,
		LastVideoID:     p.LastVideoID,
		LastActivityAt:  p.LastActivityAt,
	}
	m.TenantAuditModel.FromDomain(p.TenantAuditRoot)
	return m
}
