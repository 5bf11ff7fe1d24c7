package people

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lms/backend/internal/application/accessctx"
	"github.com/lms/backend/internal/domain/people"
	"github.com/lms/backend/internal/domain/shared"
)

// TeacherService manages teacher profiles
type TeacherService struct {
	teacherRepo people.TeacherRepository
	logger      *zap.Logger
}

// NewTeacherService creates a new TeacherService
func NewTeacherService(teacherRepo people.TeacherRepository, logger *zap.Logger) *TeacherService {
	return &TeacherService{
		teacherRepo: teacherRepo,
		logger:      logger,
	}
}

// Create creates a teacher profile
func (s *TeacherService) Create(ctx context.Context, access accessctx.Access, req CreateTeacherRequest) (*TeacherResponse, error) {
	if err := access.RequireAdministrative(); err != nil {
		return nil, err
	}
	tenantID, err := access.ResolveTenant(req.TenantID)
	if err != nil {
		return nil, err
	}

	exists, err := s.teacherRepo.ExistsByUsername(ctx, tenantID, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Teacher with this username already exists")
	}

	teacher, err := people.NewTeacher(tenantID, req.Username, req.Email, req.FirstName, req.LastName, access.UserID, access.IP)
	if err != nil {
		return nil, err
	}
	if req.Bio != "" {
		if err := teacher.Update("", "", req.Bio); err != nil {
			return nil, err
		}
	}

	if err := s.teacherRepo.Save(ctx, teacher); err != nil {
		return nil, err
	}

	s.logger.Info("Teacher created",
		zap.String("teacher_id", teacher.ID.String()),
		zap.String("tenant_id", tenantID.String()))

	response := ToTeacherResponse(teacher)
	return &response, nil
}

// GetByID retrieves a teacher profile
func (s *TeacherService) GetByID(ctx context.Context, access accessctx.Access, requestedTenant, teacherID uuid.UUID) (*TeacherResponse, error) {
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return nil, err
	}

	teacher, err := s.teacherRepo.FindByIDForTenant(ctx, tenantID, teacherID)
	if err != nil {
		return nil, err
	}

	response := ToTeacherResponse(teacher)
	return &response, nil
}

// List retrieves teachers with pagination
func (s *TeacherService) List(ctx context.Context, access accessctx.Access, filter ListFilter) ([]TeacherResponse, int64, error) {
	tenantID, err := access.ResolveTenant(filter.TenantID)
	if err != nil {
		return nil, 0, err
	}

	domainFilter := buildFilter(filter)
	teachers, err := s.teacherRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.teacherRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToTeacherResponses(teachers), total, nil
}

// Update applies partial changes to a teacher profile
func (s *TeacherService) Update(ctx context.Context, access accessctx.Access, requestedTenant, teacherID uuid.UUID, req UpdateTeacherRequest) (*TeacherResponse, error) {
	if err := access.RequireAdministrative(); err != nil {
		return nil, err
	}
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return nil, err
	}

	teacher, err := s.teacherRepo.FindByIDForTenant(ctx, tenantID, teacherID)
	if err != nil {
		return nil, err
	}

	firstName := ""
	if req.FirstName != nil {
		firstName = *req.FirstName
	}
	lastName := ""
	if req.LastName != nil {
		lastName = *req.LastName
	}
	bio := ""
	if req.Bio != nil {
		bio = *req.Bio
	}
	if err := teacher.Update(firstName, lastName, bio); err != nil {
		return nil, err
	}

	teacher.StampUpdated(access.UserID, access.IP)
	if err := s.teacherRepo.Save(ctx, teacher); err != nil {
		return nil, err
	}

	response := ToTeacherResponse(teacher)
	return &response, nil
}

// Delete soft-deletes a teacher profile
func (s *TeacherService) Delete(ctx context.Context, access accessctx.Access, requestedTenant, teacherID uuid.UUID) error {
	if err := access.RequireAdministrative(); err != nil {
		return err
	}
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return err
	}

	teacher, err := s.teacherRepo.FindByIDForTenant(ctx, tenantID, teacherID)
	if err != nil {
		return err
	}

	teacher.MarkDeleted(access.UserID)
	return s.teacherRepo.Save(ctx, teacher)
}
