package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lms/backend/internal/application/accessctx"
	learningapp "github.com/lms/backend/internal/application/learning"
)

// CourseHandler handles course lifecycle and content endpoints
type CourseHandler struct {
	BaseHandler
	courseService *learningapp.CourseService
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(courseService *learningapp.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// Create creates a course in draft status
func (h *CourseHandler) Create(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req learningapp.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), access, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, course)
}

// GetByID retrieves a course
func (h *CourseHandler) GetByID(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid course ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	course, err := h.courseService.GetByID(c.Request.Context(), access, tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, course)
}

// GetContent retrieves a course with its full module, topic and video tree
func (h *CourseHandler) GetContent(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid course ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	content, err := h.courseService.GetContent(c.Request.Context(), access, tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, content)
}

// List retrieves courses with pagination. Students only see published
// courses.
func (h *CourseHandler) List(c *gin.Context) {
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

	courses, total, err := h.courseService.List(c.Request.Context(), access, filter)
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
	h.SuccessWithMeta(c, courses, total, page, pageSize)
}

// Update applies partial changes to a course
func (h *CourseHandler) Update(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid course ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req learningapp.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	course, err := h.courseService.Update(c.Request.Context(), access, tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, course)
}

// Publish transitions a draft course to published
func (h *CourseHandler) Publish(c *gin.Context) {
	h.transition(c, h.courseService.Publish)
}

// Archive transitions a published course to archived
func (h *CourseHandler) Archive(c *gin.Context) {
	h.transition(c, h.courseService.Archive)
}

func (h *CourseHandler) transition(c *gin.Context, apply func(ctx context.Context, access accessctx.Access, requestedTenant, courseID uuid.UUID) (*learningapp.CourseResponse, error)) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid course ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	course, err := apply(c.Request.Context(), access, tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, course)
}

// Delete soft-deletes a course
func (h *CourseHandler) Delete(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid course ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), access, tenantID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// AddModule appends a module to a course
func (h *CourseHandler) AddModule(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	courseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid course ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req learningapp.AddModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	module, err := h.courseService.AddModule(c.Request.Context(), access, tenantID, courseID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, module)
}

// RemoveModule soft-deletes a module and its nested content
func (h *CourseHandler) RemoveModule(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	moduleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid module ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	if err := h.courseService.RemoveModule(c.Request.Context(), access, tenantID, moduleID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// AddTopic appends a topic to a module
func (h *CourseHandler) AddTopic(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	moduleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid module ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req learningapp.AddTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	topic, err := h.courseService.AddTopic(c.Request.Context(), access, tenantID, moduleID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, topic)
}

// AddVideo appends a video to a topic
func (h *CourseHandler) AddVideo(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	topicID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid topic ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req learningapp.AddVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	video, err := h.courseService.AddVideo(c.Request.Context(), access, tenantID, topicID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, video)
}

// AssignTeacher assigns a teacher to a course
func (h *CourseHandler) AssignTeacher(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	courseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid course ID")
		return
	}
	teacherID, err := parseIDParam(c, "teacherId")
	if err != nil {
		h.BadRequest(c, "Invalid teacher ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	if err := h.courseService.AssignTeacher(c.Request.Context(), access, tenantID, courseID, teacherID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// UnassignTeacher removes a teacher assignment from a course
func (h *CourseHandler) UnassignTeacher(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	courseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid course ID")
		return
	}
	teacherID, err := parseIDParam(c, "teacherId")
	if err != nil {
		h.BadRequest(c, "Invalid teacher ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	if err := h.courseService.UnassignTeacher(c.Request.Context(), access, tenantID, courseID, teacherID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ListTeachers lists the teachers assigned to a course
func (h *CourseHandler) ListTeachers(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	courseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid course ID")
		return
	}
	tenantID, err := parseTenantQuery(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	teacherIDs, err := h.courseService.ListTeachers(c.Request.Context(), access, tenantID, courseID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, teacherIDs)
}

// RegisterRoutes registers course, module and topic routes
func (h *CourseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	courses := rg.Group("/courses")
	{
		courses.POST("", h.Create)
		courses.GET("", h.List)
		courses.GET("/:id", h.GetByID)
		courses.GET("/:id/content", h.GetContent)
		courses.PUT("/:id", h.Update)
		courses.POST("/:id/publish", h.Publish)
		courses.POST("/:id/archive", h.Archive)
		courses.DELETE("/:id", h.Delete)
		courses.POST("/:id/modules", h.AddModule)
		courses.GET("/:id/teachers", h.ListTeachers)
		courses.POST("/:id/teachers/:teacherId", h.AssignTeacher)
		courses.DELETE("/:id/teachers/:teacherId", h.UnassignTeacher)
	}

	modules := rg.Group("/modules")
	{
		modules.DELETE("/:id", h.RemoveModule)
		modules.POST("/:id/topics", h.AddTopic)
	}

	topics := rg.Group("/topics")
	{
		topics.POST("/:id/videos", h.AddVideo)
	}
}
