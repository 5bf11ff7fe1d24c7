package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		domain string
		want   string
	}{
		{"NOT_FOUND", ErrCodeNotFound},
		{"ALREADY_EXISTS", ErrCodeAlreadyExists},
		{"FORBIDDEN", ErrCodeForbidden},
		{"INVALID_CREDENTIALS", ErrCodeInvalidCredentials},
		{"COURSE_NOT_PUBLISHED", ErrCodeInvalidState},
		{"INVALID_NAME", ErrCodeValidation},
		{"INVALID_PROGRESS", ErrCodeValidation},
		{"ACCOUNT_DEACTIVATED", ErrCodeForbidden},
		{"USER_NOT_FOUND", ErrCodeNotFound},
		{"WEAK_PASSWORD", ErrCodeValidation},
		{"TOKEN_ERROR", ErrCodeTokenInvalid},
		{"INTERNAL_ERROR", ErrCodeInternal},
		{"ERR_NOT_FOUND", ErrCodeNotFound},
		{"SOMETHING_ELSE", "SOMETHING_ELSE"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeErrorCode(tt.domain), tt.domain)
	}
}

// Every code a service can raise must land on the intended status, not 500
func TestDomainCodesResolveToStatuses(t *testing.T) {
	tests := []struct {
		domain string
		status int
	}{
		{"ACCOUNT_DEACTIVATED", http.StatusForbidden},
		{"USER_NOT_FOUND", http.StatusNotFound},
		{"WEAK_PASSWORD", http.StatusBadRequest},
		{"TOKEN_ERROR", http.StatusUnauthorized},
		{"DUPLICATE_EMAIL", http.StatusConflict},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, GetHTTPStatus(NormalizeErrorCode(tt.domain)), tt.domain)
	}
}

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(ErrCodeNotFound))
	assert.Equal(t, http.StatusConflict, GetHTTPStatus(ErrCodeAlreadyExists))
	assert.Equal(t, http.StatusUnauthorized, GetHTTPStatus(ErrCodeInvalidCredentials))
	assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus(ErrCodeInvalidState))
	assert.Equal(t, http.StatusBadRequest, GetHTTPStatus(ErrCodeTenantRequired))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("NO_SUCH_CODE"))
}
