package people

import (
	"time"

	"github.com/google/uuid"

	"github.com/lms/backend/internal/domain/people"
	"github.com/lms/backend/internal/domain/shared"
)

// CreateStudentRequest represents a request to create a student profile
type CreateStudentRequest struct {
	TenantID  uuid.UUID  `json:"tenant_id"`
	Username  string     `json:"username" binding:"required"`
	Email     string     `json:"email" binding:"required"`
	FirstName string     `json:"first_name" binding:"required"`
	LastName  string     `json:"last_name" binding:"required"`
	Phone     string     `json:"phone"`
	ClientID  *uuid.UUID `json:"client_id"`
}

// UpdateStudentRequest represents a partial update to a student profile
type UpdateStudentRequest struct {
	FirstName *string    `json:"first_name"`
	LastName  *string    `json:"last_name"`
	Phone     *string    `json:"phone"`
	ClientID  *uuid.UUID `json:"client_id"`
}

// AddStudentEmailRequest represents a request to attach a secondary email
type AddStudentEmailRequest struct {
	Address string `json:"address" binding:"required"`
}

// StudentResponse represents a student in API responses
type StudentResponse struct {
	ID        uuid.UUID              `json:"id"`
	TenantID  uuid.UUID              `json:"tenant_id"`
	UserID    *uuid.UUID             `json:"user_id,omitempty"`
	ClientID  *uuid.UUID             `json:"client_id,omitempty"`
	Username  string                 `json:"username"`
	FirstName string                 `json:"first_name"`
	LastName  string                 `json:"last_name"`
	Phone     string                 `json:"phone,omitempty"`
	Emails    []StudentEmailResponse `json:"emails,omitempty"`
	IsActive  bool                   `json:"is_active"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
	Version   int                    `json:"version"`
}

// StudentEmailResponse represents one email row of a student
type StudentEmailResponse struct {
	ID        uuid.UUID `json:"id"`
	Address   string    `json:"address"`
	IsPrimary bool      `json:"is_primary"`
}

// ToStudentResponse converts a domain student to a response
func ToStudentResponse(s *people.Student) StudentResponse {
	emails := make([]StudentEmailResponse, 0, len(s.Emails))
	for _, e := range s.Emails {
		if e.IsDeleted {
			continue
		}
		emails = append(emails, StudentEmailResponse{
			ID:        e.ID,
			Address:   e.Address,
			IsPrimary: e.IsPrimary,
		})
	}
	return StudentResponse{
		ID:        s.ID,
		TenantID:  s.TenantID,
		UserID:    s.UserID,
		ClientID:  s.ClientID,
		Username:  s.Username,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Phone:     s.Phone,
		Emails:    emails,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Version:   s.Version,
	}
}

// ToStudentResponses converts a slice of domain students
func ToStudentResponses(students []people.Student) []StudentResponse {
	responses := make([]StudentResponse, len(students))
	for i := range students {
		responses[i] = ToStudentResponse(&students[i])
	}
	return responses
}

// CreateTeacherRequest represents a request to create a teacher profile
type CreateTeacherRequest struct {
	TenantID  uuid.UUID `json:"tenant_id"`
	Username  string    `json:"username" binding:"required"`
	Email     string    `json:"email" binding:"required"`
	FirstName string    `json:"first_name" binding:"required"`
	LastName  string    `json:"last_name" binding:"required"`
	Bio       string    `json:"bio"`
}

// UpdateTeacherRequest represents a partial update to a teacher profile
type UpdateTeacherRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
}

// TeacherResponse represents a teacher in API responses
type TeacherResponse struct {
	ID        uuid.UUID  `json:"id"`
	TenantID  uuid.UUID  `json:"tenant_id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Bio       string     `json:"bio,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Version   int        `json:"version"`
}

// ToTeacherResponse converts a domain teacher to a response
func ToTeacherResponse(t *people.Teacher) TeacherResponse {
	return TeacherResponse{
		ID:        t.ID,
		TenantID:  t.TenantID,
		UserID:    t.UserID,
		Username:  t.Username,
		Email:     t.Email,
		FirstName: t.FirstName,
		LastName:  t.LastName,
		Bio:       t.Bio,
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		Version:   t.Version,
	}
}

// ToTeacherResponses converts a slice of domain teachers
func ToTeacherResponses(teachers []people.Teacher) []TeacherResponse {
	responses := make([]TeacherResponse, len(teachers))
	for i := range teachers {
		responses[i] = ToTeacherResponse(&teachers[i])
	}
	return responses
}

// ListFilter represents pagination and filtering for people listings
type ListFilter struct {
	TenantID uuid.UUID `form:"tenant_id"`
	Page     int       `form:"page"`
	PageSize int       `form:"page_size"`
	OrderBy  string    `form:"order_by"`
	OrderDir string    `form:"order_dir"`
	Search   string    `form:"search"`
}

func buildFilter(f ListFilter) shared.Filter {
	filter := shared.Filter{
		Page:     f.Page,
		PageSize: f.PageSize,
		OrderBy:  f.OrderBy,
		OrderDir: f.OrderDir,
		Search:   f.Search,
		Filters:  map[string]interface{}{},
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	return filter
}
