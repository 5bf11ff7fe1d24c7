package handler

import (
	"github.com/gin-gonic/gin"

	learningapp "github.com/lms/backend/internal/application/learning"
)

// SpecializationHandler handles specialization catalog endpoints
type SpecializationHandler struct {
	BaseHandler
	specializationService *learningapp.SpecializationService
}

// NewSpecializationHandler creates a new SpecializationHandler
func NewSpecializationHandler(specializationService *learningapp.SpecializationService) *SpecializationHandler {
	return &SpecializationHandler{specializationService: specializationService}
}

// Create creates a specialization under a program
func (h *SpecializationHandler) Create(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req learningapp.CreateSpecializationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	spec, err := h.specializationService.Create(c.Request.Context(), access, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, spec)
}

// GetByID retrieves a specialization
func (h *SpecializationHandler) GetByID(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid specialization ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	spec, err := h.specializationService.GetByID(c.Request.Context(), access, tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, spec)
}

// List retrieves specializations with pagination
func (h *SpecializationHandler) List(c *gin.Context) {
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

	specs, total, err := h.specializationService.List(c.Request.Context(), access, filter)
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
	h.SuccessWithMeta(c, specs, total, page, pageSize)
}

// Update applies partial changes to a specialization
func (h *SpecializationHandler) Update(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid specialization ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req learningapp.UpdateSpecializationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	spec, err := h.specializationService.Update(c.Request.Context(), access, tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, spec)
}

// Delete soft-deletes a specialization
func (h *SpecializationHandler) Delete(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid specialization ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	if err := h.specializationService.Delete(c.Request.Context(), access, tenantID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers specialization routes
func (h *SpecializationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	specs := rg.Group("/specializations")
	{
		specs.POST("", h.Create)
		specs.GET("", h.List)
		specs.GET("/:id", h.GetByID)
		specs.PUT("/:id", h.Update)
		specs.DELETE("/:id", h.Delete)
	}
}
