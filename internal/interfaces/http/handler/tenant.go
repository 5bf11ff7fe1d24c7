package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	identityapp "github.com/lms/backend/internal/application/identity"
)

// maxBrandingUploadBytes caps logo/favicon uploads
const maxBrandingUploadBytes = 5 << 20

// TenantHandler handles tenant management endpoints
type TenantHandler struct {
	BaseHandler
	tenantService *identityapp.TenantService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(tenantService *identityapp.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// Create creates a tenant
func (h *TenantHandler) Create(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	tenant, err := h.tenantService.Create(c.Request.Context(), access, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, tenant)
}

// GetByID retrieves a tenant
func (h *TenantHandler) GetByID(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	tenant, err := h.tenantService.GetByID(c.Request.Context(), access, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tenant)
}

// List retrieves tenants with pagination
func (h *TenantHandler) List(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter identityapp.TenantListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	tenants, total, err := h.tenantService.List(c.Request.Context(), access, filter)
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
	h.SuccessWithMeta(c, tenants, total, page, pageSize)
}

// Update applies partial changes to a tenant
func (h *TenantHandler) Update(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req identityapp.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	tenant, err := h.tenantService.Update(c.Request.Context(), access, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tenant)
}

// UploadBranding uploads a tenant logo or favicon as multipart form data.
// The kind path parameter is "logo" or "favicon".
func (h *TenantHandler) UploadBranding(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	kind := c.Param("kind")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A file upload is required")
		return
	}
	if fileHeader.Size > maxBrandingUploadBytes {
		h.BadRequest(c, "File exceeds maximum allowed size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBrandingUploadBytes))
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	tenant, err := h.tenantService.UploadBranding(c.Request.Context(), access, id, kind, fileHeader.Filename, contentType, data)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tenant)
}

// Activate re-enables a tenant
func (h *TenantHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

// Deactivate disables a tenant
func (h *TenantHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *TenantHandler) setActive(c *gin.Context, active bool) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var tenant *identityapp.TenantResponse
	if active {
		tenant, err = h.tenantService.Activate(c.Request.Context(), access, id)
	} else {
		tenant, err = h.tenantService.Deactivate(c.Request.Context(), access, id)
	}
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tenant)
}

// Delete soft-deletes a tenant
func (h *TenantHandler) Delete(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	if err := h.tenantService.Delete(c.Request.Context(), access, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers tenant routes
func (h *TenantHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tenants := rg.Group("/tenants")
	{
		tenants.POST("", h.Create)
		tenants.GET("", h.List)
		tenants.GET("/:id", h.GetByID)
		tenants.PUT("/:id", h.Update)
		tenants.POST("/:id/branding/:kind", h.UploadBranding)
		tenants.POST("/:id/activate", h.Activate)
		tenants.POST("/:id/deactivate", h.Deactivate)
		tenants.DELETE("/:id", h.Delete)
	}
}
