package enrollment

import (
	"time"

	"github.com/google/uuid"

	"github.com/lms/backend/internal/domain/enrollment"
	"github.com/lms/backend/internal/domain/shared"
)

// EnrollRequest represents a request to enroll a student in a course.
// Students may omit StudentID to enroll themselves.
type EnrollRequest struct {
	TenantID  uuid.UUID `json:"tenant_id"`
	StudentID uuid.UUID `json:"student_id"`
	CourseID  uuid.UUID `json:"course_id" binding:"required"`
}

// RecordProgressRequest represents a progress update on an enrollment
type RecordProgressRequest struct {
	PercentComplete int        `json:"percent_complete"`
	LastVideoID     *uuid.UUID `json:"last_video_id"`
}

// EnrollmentResponse represents an enrollment in API responses
type EnrollmentResponse struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	StudentID   uuid.UUID  `json:"student_id"`
	CourseID    uuid.UUID  `json:"course_id"`
	Status      string     `json:"status"`
	EnrolledAt  time.Time  `json:"enrolled_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	WithdrawnAt *time.Time `json:"withdrawn_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Version     int        `json:"version"`
}

// ProgressResponse represents course progress in API responses
type ProgressResponse struct {
	EnrollmentID    uuid.UUID  `json:"enrollment_id"`
	PercentComplete int        `json:"percent_complete"`
	LastVideoID     *uuid.UUID `json:"last_video_id,omitempty"`
	LastActivityAt  time.Time  `json:"last_activity_at"`
}

// ToEnrollmentResponse converts a domain enrollment to a response
func ToEnrollmentResponse(e *enrollment.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:          e.ID,
		TenantID:    e.TenantID,
		StudentID:   e.StudentID,
		CourseID:    e.CourseID,
		Status:      string(e.Status),
		EnrolledAt:  e.EnrolledAt,
		CompletedAt: e.CompletedAt,
		WithdrawnAt: e.WithdrawnAt,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
		Version:     e.Version,
	}
}

// ToEnrollmentResponses converts a slice of domain enrollments
func ToEnrollmentResponses(enrollments []enrollment.Enrollment) []EnrollmentResponse {
	responses := make([]EnrollmentResponse, len(enrollments))
	for i := range enrollments {
		responses[i] = ToEnrollmentResponse(&enrollments[i])
	}
	return responses
}

// ToProgressResponse converts domain progress to a response
func ToProgressResponse(p *enrollment.CourseProgress) ProgressResponse {
	return ProgressResponse{
		EnrollmentID:    p.EnrollmentID,
		PercentComplete: p.PercentComplete,
		LastVideoID:     p.LastVideoID,
		LastActivityAt:  p.LastActivityAt,
	}
}

// ListFilter represents pagination and filtering for enrollment listings
type ListFilter struct {
	TenantID  uuid.UUID `form:"tenant_id"`
	StudentID uuid.UUID `form:"student_id"`
	CourseID  uuid.UUID `form:"course_id"`
	Status    string    `form:"status"`
	Page      int       `form:"page"`
	PageSize  int       `form:"page_size"`
	OrderBy   string    `form:"order_by"`
	OrderDir  string    `form:"order_dir"`
}

func buildFilter(f ListFilter) shared.Filter {
	filter := shared.Filter{
		Page:     f.Page,
		PageSize: f.PageSize,
		OrderBy:  f.OrderBy,
		OrderDir: f.OrderDir,
		Filters:  map[string]interface{}{},
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	return filter
}
