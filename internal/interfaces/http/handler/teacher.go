package handler

import (
	"github.com/gin-gonic/gin"

	peopleapp "github.com/lms/backend/internal/application/people"
)

// TeacherHandler handles teacher profile endpoints
type TeacherHandler struct {
	BaseHandler
	teacherService *peopleapp.TeacherService
}

// NewTeacherHandler creates a new TeacherHandler
func NewTeacherHandler(teacherService *peopleapp.TeacherService) *TeacherHandler {
	return &TeacherHandler{teacherService: teacherService}
}

// Create creates a teacher profile
func (h *TeacherHandler) Create(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req peopleapp.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	teacher, err := h.teacherService.Create(c.Request.Context(), access, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, teacher)
}

// GetByID retrieves a teacher
func (h *TeacherHandler) GetByID(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid teacher ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	teacher, err := h.teacherService.GetByID(c.Request.Context(), access, tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, teacher)
}

// List retrieves teachers with pagination
func (h *TeacherHandler) List(c *gin.Context) {
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

	teachers, total, err := h.teacherService.List(c.Request.Context(), access, filter)
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
	h.SuccessWithMeta(c, teachers, total, page, pageSize)
}

// Update applies partial changes to a teacher profile
func (h *TeacherHandler) Update(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid teacher ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req peopleapp.UpdateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	teacher, err := h.teacherService.Update(c.Request.Context(), access, tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, teacher)
}

// Delete soft-deletes a teacher profile
func (h *TeacherHandler) Delete(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid teacher ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	if err := h.teacherService.Delete(c.Request.Context(), access, tenantID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers teacher routes
func (h *TeacherHandler) RegisterRoutes(rg *gin.RouterGroup) {
	teachers := rg.Group("/teachers")
	{
		teachers.POST("", h.Create)
		teachers.GET("", h.List)
		teachers.GET("/:id", h.GetByID)
		teachers.PUT("/:id", h.Update)
		teachers.DELETE("/:id", h.Delete)
	}
}
