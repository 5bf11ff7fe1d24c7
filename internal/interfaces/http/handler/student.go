package handler

import (
	"github.com/gin-gonic/gin"

	peopleapp "github.com/lms/backend/internal/application/people"
)

// StudentHandler handles student profile endpoints
type StudentHandler struct {
	BaseHandler
	studentService *peopleapp.StudentService
}

// NewStudentHandler creates a new StudentHandler
func NewStudentHandler(studentService *peopleapp.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// Create creates a student profile
func (h *StudentHandler) Create(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req peopleapp.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	student, err := h.studentService.Create(c.Request.Context(), access, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, student)
}

// GetByID retrieves a student. Students can only read their own profile.
func (h *StudentHandler) GetByID(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid student ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	student, err := h.studentService.GetByID(c.Request.Context(), access, tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, student)
}

// List retrieves students with pagination
func (h *StudentHandler) List(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter peopleapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	students, total, err := h.studentService.List(c.Request.Context(), access, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, students, total, page, pageSize)
}

// Update applies partial changes to a student profile
func (h *StudentHandler) Update(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid student ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req peopleapp.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	student, err := h.studentService.Update(c.Request.Context(), access, tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, student)
}

// AddEmail adds a secondary email address to a student
func (h *StudentHandler) AddEmail(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid student ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req peopleapp.AddStudentEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	student, err := h.studentService.AddEmail(c.Request.Context(), access, tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, student)
}

// Activate re-enables a student profile
func (h *StudentHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

// Deactivate disables a student profile
func (h *StudentHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *StudentHandler) setActive(c *gin.Context, active bool) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid student ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	if active {
		err = h.studentService.Activate(c.Request.Context(), access, tenantID, id)
	} else {
		err = h.studentService.Deactivate(c.Request.Context(), access, tenantID, id)
	}
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete soft-deletes a student profile
func (h *StudentHandler) Delete(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid student ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	if err := h.studentService.Delete(c.Request.Context(), access, tenantID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers student routes
func (h *StudentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	students := rg.Group("/students")
	{
		students.POST("", h.Create)
		students.GET("", h.List)
		students.GET("/:id", h.GetByID)
		students.PUT("/:id", h.Update)
		students.POST("/:id/emails", h.AddEmail)
		students.POST("/:id/activate", h.Activate)
		students.POST("/:id/deactivate", h.Deactivate)
		students.DELETE("/:id", h.Delete)
	}
}
