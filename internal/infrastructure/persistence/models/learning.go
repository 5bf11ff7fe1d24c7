package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lms/backend/internal/domain/learning"
)

// ProgramModel is the persistence model for programs
type ProgramModel struct {
	TenantAuditModel
	Name        string `gorm:"size:200;not null"`
	Code        string `gorm:"size:50;not null;index"`
	Description string `gorm:"type:text"`
}

// TableName specifies the table name
func (ProgramModel) TableName() string {
	return "programs"
}

// ToDomain converts the model to a domain program
func (m *ProgramModel) ToDomain() *learning.Program {
	return &learning.Program{
		TenantAuditRoot: m.TenantAuditModel.ToDomain(),
		Name:            m.Name,
		Code:            m.Code,
		Description:     m.Description,
	}
}

// ProgramModelFromDomain creates a model from a domain program
func ProgramModelFromDomain(p *learning.Program) *ProgramModel {
	m := &ProgramModel{
		Name:        p.Name,
		Code:        p.Code,
		Description: p.Description,
	}
	m.TenantAuditModel.FromDomain(p.TenantAuditRoot)
	return m
}

// SpecializationModel is the persistence model for specializations
type SpecializationModel struct {
	TenantAuditModel
	ProgramID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"size:200;not null"`
	Code        string    `gorm:"size:50;not null;index"`
	Description string    `gorm:"type:text"`
}

// TableName specifies the table name
func (SpecializationModel) TableName() string {
	return "specializations"
}

// ToDomain converts the model to a domain specialization
func (m *SpecializationModel) ToDomain() *learning.Specialization {
	return &learning.Specialization{
		TenantAuditRoot: m.TenantAuditModel.ToDomain(),
		ProgramID:       m.ProgramID,
		Name:            m.Name,
		Code:            m.Code,
		Description:     m.Description,
	}
}

// SpecializationModelFromDomain creates a model from a domain specialization
func SpecializationModelFromDomain(s *learning.Specialization) *SpecializationModel {
	m := &SpecializationModel{
		ProgramID:   s.ProgramID,
		Name:        s.Name,
		Code:        s.Code,
		Description: s.Description,
	}
	m.TenantAuditModel.FromDomain(s.TenantAuditRoot)
	return m
}

// CourseModel is the persistence model for courses
type CourseModel struct {
	TenantAuditModel
	SpecializationID uuid.UUID         `gorm:"type:uuid;not null;index"`
	Name             string            `gorm:"size:200;not null"`
	Code             string            `gorm:"size:50;not null;index"`
	Description      string            `gorm:"type:text"`
	Price            decimal.Decimal   `gorm:"type:decimal(12,2);not null;default:0"`
	Status           string            `gorm:"size:20;not null;index"`
	Modules          []CourseModuleModel `gorm:"foreignKey:CourseID"`
}

// TableName specifies the table name
func (CourseModel) TableName() string {
	return "courses"
}

// ToDomain converts the model to a domain course, including any loaded modules
func (m *CourseModel) ToDomain() *learning.Course {
	course := &learning.Course{
		TenantAuditRoot:  m.TenantAuditModel.ToDomain(),
		SpecializationID: m.SpecializationID,
		Name:             m.Name,
		Code:             m.Code,
		Description:      m.Description,
		Price:            m.Price,
		Status:           learning.CourseStatus(m.Status),
	}
	if len(m.Modules) > 0 {
		course.Modules = make([]learning.CourseModule, len(m.Modules))
		for i, mod := range m.Modules {
			course.Modules[i] = *mod.ToDomain()
		}
	}
	return course
}

// CourseModelFromDomain creates a model from a domain course.
// Modules are persisted separately and not included.
func CourseModelFromDomain(c *learning.Course) *CourseModel {
	m := &CourseModel{
		SpecializationID: c.SpecializationID,
		Name:             c.Name,
		Code:             c.Code,
		Description:      c.Description,
		Price:            c.Price,
		Status:           string(c.Status),
	}
	m.TenantAuditModel.FromDomain(c.TenantAuditRoot)
	return m
}

// CourseModuleModel is the persistence model for course modules
type CourseModuleModel struct {
	TenantAuditModel
	CourseID  uuid.UUID    `gorm:"type:uuid;not null;index"`
	Name      string       `gorm:"size:200;not null"`
	SortOrder int          `gorm:"not null;default:0"`
	Topics    []TopicModel `gorm:"foreignKey:ModuleID"`
}

// TableName specifies the table name
func (CourseModuleModel) TableName() string {
	return "course_modules"
}

// ToDomain converts the model to a domain course module
func (m *CourseModuleModel) ToDomain() *learning.CourseModule {
	module := &learning.CourseModule{
		TenantAuditRoot: m.TenantAuditModel.ToDomain(),
		CourseID:        m.CourseID,
		Name:            m.Name,
		SortOrder:       m.SortOrder,
	}
	if len(m.Topics) > 0 {
		module.Topics = make([]learning.Topic, len(m.Topics))
		for i, t := range m.Topics {
			module.Topics[i] = *t.ToDomain()
		}
	}
	return module
}

// CourseModuleModelFromDomain creates a model from a domain course module
func CourseModuleModelFromDomain(mod *learning.CourseModule) *CourseModuleModel {
	m := &CourseModuleModel{
		CourseID:  mod.CourseID,
		Name:      mod.Name,
		SortOrder: mod.SortOrder,
	}
	m.TenantAuditModel.FromDomain(mod.TenantAuditRoot)
	return m
}

// TopicModel is the persistence model for topics
type TopicModel struct {
	TenantAuditModel
	ModuleID  uuid.UUID    `gorm:"type:uuid;not null;index"`
	Name      string       `gorm:"size:200;not null"`
	SortOrder int          `gorm:"not null;default:0"`
	Videos    []VideoModel `gorm:"foreignKey:TopicID"`
}

// TableName specifies the table name
func (TopicModel) TableName() string {
	return "topics"
}

// ToDomain converts the model to a domain topic
func (m *TopicModel) ToDomain() *learning.Topic {
	topic := &learning.Topic{
		TenantAuditRoot: m.TenantAuditModel.ToDomain(),
		ModuleID:        m.ModuleID,
		Name:            m.Name,
		SortOrder:       m.SortOrder,
	}
	if len(m.Videos) > 0 {
		topic.Videos = make([]learning.Video, len(m.Videos))
		for i, v := range m.Videos {
			topic.Videos[i] = *v.ToDomain()
		}
	}
	return topic
}

// TopicModelFromDomain creates a model from a domain topic
func TopicModelFromDomain(t *learning.Topic) *TopicModel {
	m := &TopicModel{
		ModuleID:  t.ModuleID,
		Name:      t.Name,
		SortOrder: t.SortOrder,
	}
	m.TenantAuditModel.FromDomain(t.TenantAuditRoot)
	return m
}

// VideoModel is the persistence model for videos. Duration is stored in
// seconds.
type VideoModel struct {
	TenantAuditModel
	TopicID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Name            string    `gorm:"size:200;not null"`
	URL             string    `gorm:"size:1000;not null"`
	DurationSeconds int64     `gorm:"not null;default:0"`
	SortOrder       int       `gorm:"not null;default:0"`
}

// TableName specifies the table name
func (VideoModel) TableName() string {
	return "videos"
}

// ToDomain converts the model to a domain video
func (m *VideoModel) ToDomain() *learning.Video {
	return &learning.Video{
		TenantAuditRoot: m.TenantAuditModel.ToDomain(),
		TopicID:         m.TopicID,
		Name:            m.Name,
		URL:             m.URL,
		Duration:        time.Duration(m.DurationSeconds) * time.Second,
		SortOrder:       m.SortOrder,
	}
}

// VideoModelFromDomain creates a model from a domain video
func VideoModelFromDomain(v *learning.Video) *VideoModel {
	m := &VideoModel{
		TopicID:         v.TopicID,
		Name:            v.Name,
		URL:             v.URL,
		DurationSeconds: int64(v.Duration / time.Second),
		SortOrder:       v.SortOrder,
	}
	m.TenantAuditModel.FromDomain(v.TenantAuditRoot)
	return m
}

// TeacherCourseModel links a teacher to a course they deliver
type TeacherCourseModel struct {
	TeacherID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourseID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"not null"`
	CreatedBy *uuid.UUID
}

// TableName specifies the table name
func (TeacherCourseModel) TableName() string {
	return "teacher_courses"
}

// ToDomain converts the model to a domain teacher-course assignment
func (m *TeacherCourseModel) ToDomain() learning.TeacherCourse {
	return learning.TeacherCourse{
		TeacherID: m.TeacherID,
		CourseID:  m.CourseID,
		TenantID:  m.TenantID,
		CreatedAt: m.CreatedAt,
		CreatedBy: m.CreatedBy,
	}
}

// TeacherCourseModelFromDomain creates a model from a domain assignment
func TeacherCourseModelFromDomain(tc learning.TeacherCourse) *TeacherCourseModel {
	return &TeacherCourseModel{
		TeacherID: tc.TeacherID,
		CourseID:  tc.CourseID,
		TenantID:  tc.TenantID,
		CreatedAt: tc.CreatedAt,
		CreatedBy: tc.CreatedBy,
	}
}
