package models

import (
	"github.com/google/uuid"

	"github.com/lms/backend/internal/domain/people"
)

// StudentModel is the persistence model for students
type StudentModel struct {
	TenantAuditModel
	UserID    *uuid.UUID          `gorm:"type:uuid;index"`
	ClientID  *uuid.UUID          `gorm:"type:uuid;index"`
	Username  string              `gorm:"size:50;not null;index"`
	FirstName string              `gorm:"size:100;not null"`
	LastName  string              `gorm:"size:100;not null"`
	Phone     string              `gorm:"size:50"`
	Emails    []StudentEmailModel `gorm:"foreignKey:StudentID"`
}

// TableName specifies the table name
func (StudentModel) TableName() string {
	return "students"
}

// ToDomain converts the model to a domain student, including loaded emails
func (m *StudentModel) ToDomain() *people.Student {
	student := &people.Student{
		TenantAuditRoot: m.TenantAuditModel.ToDomain(),
		UserID:          m.UserID,
		ClientID:        m.ClientID,
		Username:        m.Username,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		Phone:           m.Phone,
	}
	if len(m.Emails) > 0 {
		student.Emails = make([]people.StudentEmail, len(m.Emails))
		for i, e := range m.Emails {
			student.Emails[i] = *e.ToDomain()
		}
	}
	return student
}

// StudentModelFromDomain creates a model from a domain student.
// Email rows are persisted separately and not included.
func StudentModelFromDomain(s *people.Student) *StudentModel {
	m := &StudentModel{
		UserID:    s.UserID,
		ClientID:  s.ClientID,
		Username:  s.Username,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Phone:     s.Phone,
	}
	m.TenantAuditModel.FromDomain(s.TenantAuditRoot)
	return m
}

// StudentEmailModel is the persistence model for student email addresses
type StudentEmailModel struct {
	TenantAuditModel
	StudentID uuid.UUID `gorm:"type:uuid;not null;index"`
	Address   string    `gorm:"size:254;not null;index"`
	IsPrimary bool      `gorm:"not null;default:false"`
}

// TableName specifies the table name
func (StudentEmailModel) TableName() string {
	return "student_emails"
}

// ToDomain converts the model to a domain student email
func (m *StudentEmailModel) ToDomain() *people.StudentEmail {
	return &people.StudentEmail{
		TenantAuditRoot: m.TenantAuditModel.ToDomain(),
		StudentID:       m.StudentID,
		Address:         m.Address,
		IsPrimary:       m.IsPrimary,
	}
}

// StudentEmailModelFromDomain creates a model from a domain student email
func StudentEmailModelFromDomain(e *people.StudentEmail) *StudentEmailModel {
	m := &StudentEmailModel{
		StudentID: e.StudentID,
		Address:   e.Address,
		IsPrimary: e.IsPrimary,
	}
	m.TenantAuditModel.FromDomain(e.TenantAuditRoot)
	return m
}

// TeacherModel is the persistence model for teachers
type TeacherModel struct {
	TenantAuditModel
	UserID    *uuid.UUID `gorm:"type:uuid;index"`
	Username  string     `gorm:"size:50;not null;index"`
	FirstName string     `gorm:"size:100;not null"`
	LastName  string     `gorm:"size:100;not null"`
	Email     string     `gorm:"size:254;not null"`
	Bio       string     `gorm:"type:text"`
}

// TableName specifies the table name
func (TeacherModel) TableName() string {
	return "teachers"
}

// ToDomain converts the model to a domain teacher
func (m *TeacherModel) ToDomain() *people.Teacher {
	return &people.Teacher{
		TenantAuditRoot: m.TenantAuditModel.ToDomain(),
		UserID:          m.UserID,
		Username:        m.Username,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		Email:           m.Email,
		Bio:             m.Bio,
	}
}

// TeacherModelFromDomain creates a model from a domain teacher
func TeacherModelFromDomain(t *people.Teacher) *TeacherModel {
	m := &TeacherModel{
		UserID:    t.UserID,
		Username:  t.Username,
		FirstName: t.FirstName,
		LastName:  t.LastName,
		Email:     t.Email,
		Bio:       t.Bio,
	}
	m.TenantAuditModel.FromDomain(t.TenantAuditRoot)
	return m
}
