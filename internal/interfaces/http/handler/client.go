package handler

import (
	"github.com/gin-gonic/gin"

	orgapp "github.com/lms/backend/internal/application/org"
)

// ClientHandler handles paying client organization endpoints
type ClientHandler struct {
	BaseHandler
	clientService *orgapp.ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *orgapp.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// Create registers a client organization
func (h *ClientHandler) Create(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req orgapp.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), access, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, client)
}

// GetByID retrieves a client
func (h *ClientHandler) GetByID(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	client, err := h.clientService.GetByID(c.Request.Context(), access, tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, client)
}

// List retrieves clients with pagination
func (h *ClientHandler) List(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter orgapp.ClientListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	clients, total, err := h.clientService.List(c.Request.Context(), access, filter)
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
	h.SuccessWithMeta(c, clients, total, page, pageSize)
}

// Update applies partial changes to a client
func (h *ClientHandler) Update(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req orgapp.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), access, tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, client)
}

// Suspend pauses a client relationship
func (h *ClientHandler) Suspend(c *gin.Context) {
	h.setStatus(c, false)
}

// Resume reactivates a suspended client
func (h *ClientHandler) Resume(c *gin.Context) {
	h.setStatus(c, true)
}

func (h *ClientHandler) setStatus(c *gin.Context, active bool) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var client *orgapp.ClientResponse
	if active {
		client, err = h.clientService.Resume(c.Request.Context(), access, tenantID, id)
	} else {
		client, err = h.clientService.Suspend(c.Request.Context(), access, tenantID, id)
	}
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, client)
}

// Delete soft-deletes a client
func (h *ClientHandler) Delete(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), access, tenantID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// LinkTenant links a client to a tenant it pays for
func (h *ClientHandler) LinkTenant(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	clientID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}
	tenantID, err := parseIDParam(c, "tenantId")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	if err := h.clientService.LinkTenant(c.Request.Context(), access, clientID, tenantID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// UnlinkTenant removes a client-tenant link
func (h *ClientHandler) UnlinkTenant(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	clientID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}
	tenantID, err := parseIDParam(c, "tenantId")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	if err := h.clientService.UnlinkTenant(c.Request.Context(), access, clientID, tenantID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// LinkedTenants lists the tenants a client pays for
func (h *ClientHandler) LinkedTenants(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	clientID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	tenantIDs, err := h.clientService.LinkedTenants(c.Request.Context(), access, clientID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tenantIDs)
}

// RegisterRoutes registers client routes
func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	clients := rg.Group("/clients")
	{
		clients.POST("", h.Create)
		clients.GET("", h.List)
		clients.GET("/:id", h.GetByID)
		clients.PUT("/:id", h.Update)
		clients.POST("/:id/suspend", h.Suspend)
		clients.POST("/:id/resume", h.Resume)
		clients.DELETE("/:id", h.Delete)
		clients.GET("/:id/tenants", h.LinkedTenants)
		clients.POST("/:id/tenants/:tenantId", h.LinkTenant)
		clients.DELETE("/:id/tenants/:tenantId", h.UnlinkTenant)
	}
}
