package handler

import (
	"github.com/gin-gonic/gin"

	enrollmentapp "github.com/lms/backend/internal/application/enrollment"
)

// EnrollmentHandler handles enrollment and progress endpoints
type EnrollmentHandler struct {
	BaseHandler
	enrollmentService *enrollmentapp.EnrollmentService
}

// NewEnrollmentHandler creates a new EnrollmentHandler
func NewEnrollmentHandler(enrollmentService *enrollmentapp.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

// Enroll enrolls a student in a published course. Students enroll
// themselves; administrators name the student.
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req enrollmentapp.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	enrollment, err := h.enrollmentService.Enroll(c.Request.Context(), access, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, enrollment)
}

// GetByID retrieves an enrollment
func (h *EnrollmentHandler) GetByID(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid enrollment ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	enrollment, err := h.enrollmentService.GetByID(c.Request.Context(), access, tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, enrollment)
}

// ListByStudent lists a student's enrollments. Students see their own.
func (h *EnrollmentHandler) ListByStudent(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter enrollmentapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	enrollments, err := h.enrollmentService.ListByStudent(c.Request.Context(), access, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, enrollments)
}

// ListByCourse lists enrollments in a course
func (h *EnrollmentHandler) ListByCourse(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter enrollmentapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}
	courseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid course ID")
		return
	}
	filter.CourseID = courseID

	enrollments, err := h.enrollmentService.ListByCourse(c.Request.Context(), access, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, enrollments)
}

// Withdraw withdraws an active enrollment
func (h *EnrollmentHandler) Withdraw(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid enrollment ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	enrollment, err := h.enrollmentService.Withdraw(c.Request.Context(), access, tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, enrollment)
}

// Complete marks an enrollment completed by administrative action
func (h *EnrollmentHandler) Complete(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid enrollment ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	enrollment, err := h.enrollmentService.Complete(c.Request.Context(), access, tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, enrollment)
}

// RecordProgress advances course progress for an active enrollment
func (h *EnrollmentHandler) RecordProgress(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid enrollment ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req enrollmentapp.RecordProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	progress, err := h.enrollmentService.RecordProgress(c.Request.Context(), access, tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, progress)
}

// GetProgress retrieves the progress record for an enrollment
func (h *EnrollmentHandler) GetProgress(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid enrollment ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	progress, err := h.enrollmentService.GetProgress(c.Request.Context(), access, tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, progress)
}

// RegisterRoutes registers enrollment routes
func (h *EnrollmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	enrollments := rg.Group("/enrollments")
	{
		enrollments.POST("", h.Enroll)
		enrollments.GET("", h.ListByStudent)
		enrollments.GET("/:id", h.GetByID)
		enrollments.POST("/:id/withdraw", h.Withdraw)
		enrollments.POST("/:id/complete", h.Complete)
		enrollments.GET("/:id/progress", h.GetProgress)
		enrollments.PUT("/:id/progress", h.RecordProgress)
	}

	rg.GET("/courses/:id/enrollments", h.ListByCourse)
}
