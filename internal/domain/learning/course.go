package learning

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lms/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CourseStatus represents the publication state of a course
type CourseStatus string

const (
	CourseStatusDraft     CourseStatus = "draft"
	CourseStatusPublished CourseStatus = "published"
	CourseStatusArchived  CourseStatus = "archived"
)

// Course is the sellable unit of content. Content hangs off it as an
// ordered Module → Topic → Video hierarchy; children are loaded by the
// repository on demand.
type Course struct {
	shared.TenantAuditRoot
	SpecializationID uuid.UUID
	Name             string
	Code             string
	Description      string
	Price            decimal.Decimal
	Status           CourseStatus
	Modules          []CourseModule
}

// NewCourse creates a draft course under a specialization
func NewCourse(tenantID, specializationID uuid.UUID, name, code string, price decimal.Decimal, createdBy uuid.UUID, ip string) (*Course, error) {
	if specializationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SPECIALIZATION", "Course requires a specialization")
	}
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Course name must be 1-200 characters")
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_CODE", "Course code must be 1-50 characters")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	return &Course{
		TenantAuditRoot:  shared.NewTenantAuditRoot(tenantID, createdBy, ip),
		SpecializationID: specializationID,
		Name:             name,
		Code:             code,
		Price:            price,
		Status:           CourseStatusDraft,
	}, nil
}

// Update applies partial changes to mutable course fields
func (c *Course) Update(name, description string, price *decimal.Decimal) error {
	if name != "" {
		name = strings.TrimSpace(name)
		if len(name) > 200 {
			return shared.NewDomainError("INVALID_NAME", "Course name must be 1-200 characters")
		}
		c.Name = name
	}
	if len(description) > 5000 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 5000 characters")
	}
	if description != "" {
		c.Description = description
	}
	if price != nil {
		if price.IsNegative() {
			return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
		}
		c.Price = *price
	}
	return nil
}

// Publish makes the course visible to students
func (c *Course) Publish() error {
	if c.Status == CourseStatusArchived {
		return shared.NewDomainError("INVALID_STATE", "Archived courses cannot be published")
	}
	c.Status = CourseStatusPublished
	return nil
}

// Archive retires the course from enrollment
func (c *Course) Archive() {
	c.Status = CourseStatusArchived
}

// CourseModule is an ordered section within a course
type CourseModule struct {
	shared.TenantAuditRoot
	CourseID  uuid.UUID
	Name      string
	SortOrder int
	Topics    []Topic
}

// NewCourseModule creates a module under a course
func NewCourseModule(tenantID, courseID uuid.UUID, name string, sortOrder int, createdBy uuid.UUID, ip string) (*CourseModule, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Module name must be 1-200 characters")
	}
	return &CourseModule{
		TenantAuditRoot: shared.NewTenantAuditRoot(tenantID, createdBy, ip),
		CourseID:        courseID,
		Name:            name,
		SortOrder:       sortOrder,
	}, nil
}

// Topic is an ordered lesson within a module
type Topic struct {
	shared.TenantAuditRoot
	ModuleID  uuid.UUID
	Name      string
	SortOrder int
	Videos    []Video
}

// NewTopic creates a topic under a module
func NewTopic(tenantID, moduleID uuid.UUID, name string, sortOrder int, createdBy uuid.UUID, ip string) (*Topic, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Topic name must be 1-200 characters")
	}
	return &Topic{
		TenantAuditRoot: shared.NewTenantAuditRoot(tenantID, createdBy, ip),
		ModuleID:        moduleID,
		Name:            name,
		SortOrder:       sortOrder,
	}, nil
}

// Video is a playable asset within a topic
type Video struct {
	shared.TenantAuditRoot
	TopicID   uuid.UUID
	Name      string
	URL       string
	Duration  time.Duration
	SortOrder int
}

// NewVideo creates a video under a topic
func NewVideo(tenantID, topicID uuid.UUID, name, url string, duration time.Duration, sortOrder int, createdBy uuid.UUID, ip string) (*Video, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Video name must be 1-200 characters")
	}
	if strings.TrimSpace(url) == "" || len(url) > 1000 {
		return nil, shared.NewDomainError("INVALID_URL", "Video URL must be 1-1000 characters")
	}
	if duration < 0 {
		return nil, shared.NewDomainError("INVALID_DURATION", "Duration cannot be negative")
	}
	return &Video{
		TenantAuditRoot: shared.NewTenantAuditRoot(tenantID, createdBy, ip),
		TopicID:         topicID,
		Name:            name,
		URL:             url,
		Duration:        duration,
		SortOrder:       sortOrder,
	}, nil
}

// TeacherCourse links a teacher to a course they deliver
type TeacherCourse struct {
	TeacherID uuid.UUID
	CourseID  uuid.UUID
	TenantID  uuid.UUID
	CreatedAt time.Time
	CreatedBy *uuid.UUID
}

// NewTeacherCourse creates a teacher-course assignment
func NewTeacherCourse(tenantID, teacherID, courseID, createdBy uuid.UUID) TeacherCourse {
	return TeacherCourse{
		TeacherID: teacherID,
		CourseID:  courseID,
		TenantID:  tenantID,
		CreatedAt: time.Now(),
		CreatedBy: &createdBy,
	}
}
