package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// TenantSortFields contains allowed sort fields for tenants
var TenantSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"domain":     true,
	"is_active":  true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"username":      true,
	"email":         true,
	"display_name":  true,
	"role":          true,
	"is_active":     true,
	"last_login_at": true,
}

// ClientSortFields contains allowed sort fields for clients
var ClientSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"contact_name": true,
	"status":       true,
}

// ProgramSortFields contains allowed sort fields for programs
var ProgramSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
}

// SpecializationSortFields contains allowed sort fields for specializations
var SpecializationSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"program_id": true,
}

// CourseSortFields contains allowed sort fields for courses
var CourseSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"code":              true,
	"name":              true,
	"price":             true,
	"status":            true,
	"specialization_id": true,
}

// StudentSortFields contains allowed sort fields for students
var StudentSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"username":   true,
	"first_name": true,
	"last_name":  true,
	"is_active":  true,
}

// TeacherSortFields contains allowed sort fields for teachers
var TeacherSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"username":   true,
	"first_name": true,
	"last_name":  true,
	"email":      true,
}

// EnrollmentSortFields contains allowed sort fields for enrollments
var EnrollmentSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"student_id":  true,
	"course_id":   true,
	"status":      true,
	"enrolled_at": true,
}
