package learning

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lms/backend/internal/domain/learning"
	"github.com/lms/backend/internal/domain/shared"
)

// CreateProgramRequest creates a program
type CreateProgramRequest struct {
	TenantID    uuid.UUID `json:"tenant_id"`
	Name        string    `json:"name" binding:"required"`
	Code        string    `json:"code" binding:"required"`
	Description string    `json:"description"`
}

// UpdateProgramRequest applies partial program changes
type UpdateProgramRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ProgramResponse is the API shape of a program
type ProgramResponse struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int       `json:"version"`
}

// ToProgramResponse converts a domain program to its API shape
func ToProgramResponse(p *learning.Program) ProgramResponse {
	return ProgramResponse{
		ID:          p.ID,
		TenantID:    p.TenantID,
		Name:        p.Name,
		Code:        p.Code,
		Description: p.Description,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Version:     p.Version,
	}
}

// ToProgramResponses converts a slice of programs
func ToProgramResponses(programs []learning.Program) []ProgramResponse {
	responses := make([]ProgramResponse, len(programs))
	for i := range programs {
		responses[i] = ToProgramResponse(&programs[i])
	}
	return responses
}

// CreateSpecializationRequest creates a specialization under a program
type CreateSpecializationRequest struct {
	TenantID    uuid.UUID `json:"tenant_id"`
	ProgramID   uuid.UUID `json:"program_id" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	Code        string    `json:"code" binding:"required"`
	Description string    `json:"description"`
}

// UpdateSpecializationRequest applies partial specialization changes
type UpdateSpecializationRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// SpecializationResponse is the API shape of a specialization
type SpecializationResponse struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	ProgramID   uuid.UUID `json:"program_id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int       `json:"version"`
}

// ToSpecializationResponse converts a domain specialization to its API shape
func ToSpecializationResponse(s *learning.Specialization) SpecializationResponse {
	return SpecializationResponse{
		ID:          s.ID,
		TenantID:    s.TenantID,
		ProgramID:   s.ProgramID,
		Name:        s.Name,
		Code:        s.Code,
		Description: s.Description,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		Version:     s.Version,
	}
}

// ToSpecializationResponses converts a slice of specializations
func ToSpecializationResponses(specs []learning.Specialization) []SpecializationResponse {
	responses := make([]SpecializationResponse, len(specs))
	for i := range specs {
		responses[i] = ToSpecializationResponse(&specs[i])
	}
	return responses
}

// CreateCourseRequest creates a draft course
type CreateCourseRequest struct {
	TenantID         uuid.UUID       `json:"tenant_id"`
	SpecializationID uuid.UUID       `json:"specialization_id" binding:"required"`
	Name             string          `json:"name" binding:"required"`
	Code             string          `json:"code" binding:"required"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price"`
}

// UpdateCourseRequest applies partial course changes
type UpdateCourseRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
}

// CourseResponse is the API shape of a course without its content tree
type CourseResponse struct {
	ID               uuid.UUID       `json:"id"`
	TenantID         uuid.UUID       `json:"tenant_id"`
	SpecializationID uuid.UUID       `json:"specialization_id"`
	Name             string          `json:"name"`
	Code             string          `json:"code"`
	Description      string          `json:"description,omitempty"`
	Price            decimal.Decimal `json:"price"`
	Status           string          `json:"status"`
	IsActive         bool            `json:"is_active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	Version          int             `json:"version"`
}

// ToCourseResponse converts a domain course to its API shape
func ToCourseResponse(c *learning.Course) CourseResponse {
	return CourseResponse{
		ID:               c.ID,
		TenantID:         c.TenantID,
		SpecializationID: c.SpecializationID,
		Name:             c.Name,
		Code:             c.Code,
		Description:      c.Description,
		Price:            c.Price,
		Status:           string(c.Status),
		IsActive:         c.IsActive,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
		Version:          c.Version,
	}
}

// ToCourseResponses converts a slice of courses
func ToCourseResponses(courses []learning.Course) []CourseResponse {
	responses := make([]CourseResponse, len(courses))
	for i := range courses {
		responses[i] = ToCourseResponse(&courses[i])
	}
	return responses
}

// VideoResponse is the API shape of a video
type VideoResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	URL             string    `json:"url"`
	DurationSeconds int64     `json:"duration_seconds"`
	SortOrder       int       `json:"sort_order"`
}

// TopicResponse is the API shape of a topic with its videos
type TopicResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	SortOrder int             `json:"sort_order"`
	Videos    []VideoResponse `json:"videos"`
}

// ModuleResponse is the API shape of a module with its topics
type ModuleResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	SortOrder int             `json:"sort_order"`
	Topics    []TopicResponse `json:"topics"`
}

// CourseContentResponse is a course with its full ordered content tree
type CourseContentResponse struct {
	CourseResponse
	Modules []ModuleResponse `json:"modules"`
}

// ToCourseContentResponse converts a course loaded with content
func ToCourseContentResponse(c *learning.Course) CourseContentResponse {
	modules := make([]ModuleResponse, len(c.Modules))
	for i := range c.Modules {
		m := &c.Modules[i]
		topics := make([]TopicResponse, len(m.Topics))
		for j := range m.Topics {
			topic := &m.Topics[j]
			videos := make([]VideoResponse, len(topic.Videos))
			for k := range topic.Videos {
				v := &topic.Videos[k]
				videos[k] = VideoResponse{
					ID:              v.ID,
					Name:            v.Name,
					URL:             v.URL,
					DurationSeconds: int64(v.Duration.Seconds()),
					SortOrder:       v.SortOrder,
				}
			}
			topics[j] = TopicResponse{
				ID:        topic.ID,
				Name:      topic.Name,
				SortOrder: topic.SortOrder,
				Videos:    videos,
			}
		}
		modules[i] = ModuleResponse{
			ID:        m.ID,
			Name:      m.Name,
			SortOrder: m.SortOrder,
			Topics:    topics,
		}
	}
	return CourseContentResponse{
		CourseResponse: ToCourseResponse(c),
		Modules:        modules,
	}
}

// AddModuleRequest adds a module to a course
type AddModuleRequest struct {
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

// AddTopicRequest adds a topic to a module
type AddTopicRequest struct {
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

// AddVideoRequest adds a video to a topic
type AddVideoRequest struct {
	Name            string `json:"name" binding:"required"`
	URL             string `json:"url" binding:"required"`
	DurationSeconds int64  `json:"duration_seconds"`
	SortOrder       int    `json:"sort_order"`
}

// ListFilter contains common list/pagination options
type ListFilter struct {
	TenantID  uuid.UUID `form:"tenant_id"`
	Page      int       `form:"page"`
	PageSize  int       `form:"page_size"`
	OrderBy   string    `form:"order_by"`
	OrderDir  string    `form:"order_dir"`
	Search    string    `form:"search"`
	Status    string    `form:"status"`
	ProgramID uuid.UUID `form:"program_id"`
}

func buildFilter(f ListFilter) shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	filter.Search = f.Search
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	return filter
}
