package handler

import (
	"github.com/gin-gonic/gin"

	learningapp "github.com/lms/backend/internal/application/learning"
)

// ProgramHandler handles program catalog endpoints
type ProgramHandler struct {
	BaseHandler
	programService *learningapp.ProgramService
}

// NewProgramHandler creates a new ProgramHandler
func NewProgramHandler(programService *learningapp.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// Create creates a program
func (h *ProgramHandler) Create(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req learningapp.CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	program, err := h.programService.Create(c.Request.Context(), access, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, program)
}

// GetByID retrieves a program
func (h *ProgramHandler) GetByID(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid program ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	program, err := h.programService.GetByID(c.Request.Context(), access, tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, program)
}

// List retrieves programs with pagination
func (h *ProgramHandler) List(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter learningapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	programs, total, err := h.programService.List(c.Request.Context(), access, filter)
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
	h.SuccessWithMeta(c, programs, total, page, pageSize)
}

// Update applies partial changes to a program
func (h *ProgramHandler) Update(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid program ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req learningapp.UpdateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	program, err := h.programService.Update(c.Request.Context(), access, tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, program)
}

// Delete soft-deletes a program
func (h *ProgramHandler) Delete(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid program ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	if err := h.programService.Delete(c.Request.Context(), access, tenantID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers program routes
func (h *ProgramHandler) RegisterRoutes(rg *gin.RouterGroup) {
	programs := rg.Group("/programs")
	{
		programs.POST("", h.Create)
		programs.GET("", h.List)
		programs.GET("/:id", h.GetByID)
		programs.PUT("/:id", h.Update)
		programs.DELETE("/:id", h.Delete)
	}
}
