package people

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lms/backend/internal/application/accessctx"
	"github.com/lms/backend/internal/domain/identity"
	"github.com/lms/backend/internal/domain/org"
	"github.com/lms/backend/internal/domain/people"
	"github.com/lms/backend/internal/domain/shared"
)

// StudentService manages student profiles. Admins manage all students in
// their tenant; a student may read their own profile only.
type StudentService struct {
	studentRepo people.StudentRepository
	clientRepo  org.ClientRepository
	logger      *zap.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo people.StudentRepository, clientRepo org.ClientRepository, logger *zap.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		clientRepo:  clientRepo,
		logger:      logger,
	}
}

// Create creates a student together with its primary email row
func (s *StudentService) Create(ctx context.Context, access accessctx.Access, req CreateStudentRequest) (*StudentResponse, error) {
	if err := access.RequireAdministrative(); err != nil {
		return nil, err
	}
	tenantID, err := access.ResolveTenant(req.TenantID)
	if err != nil {
		return nil, err
	}

	exists, err := s.studentRepo.ExistsByUsername(ctx, tenantID, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Student with this username already exists")
	}
	exists, err = s.studentRepo.ExistsByEmail(ctx, tenantID, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Student with this email already exists")
	}

	student, err := people.NewStudent(tenantID, req.Username, req.Email, req.FirstName, req.LastName, access.UserID, access.IP)
	if err != nil {
		return nil, err
	}
	if req.Phone != "" {
		if err := student.Update("", "", req.Phone); err != nil {
			return nil, err
		}
	}
	if req.ClientID != nil {
		if _, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, *req.ClientID); err != nil {
			return nil, err
		}
		student.AttachClient(*req.ClientID)
	}

	if err := s.studentRepo.SaveWithEmails(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info("Student created",
		zap.String("student_id", student.ID.String()),
		zap.String("tenant_id", tenantID.String()))

	response := ToStudentResponse(student)
	return &response, nil
}

// GetByID retrieves a student. Students may only read their own profile.
func (s *StudentService) GetByID(ctx context.Context, access accessctx.Access, requestedTenant, studentID uuid.UUID) (*StudentResponse, error) {
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return nil, err
	}

	student, err := s.studentRepo.FindByIDForTenant(ctx, tenantID, studentID)
	if err != nil {
		return nil, err
	}

	if access.Role == identity.RoleStudent && !isOwnProfile(student, access.UserID) {
		return nil, shared.ErrForbidden
	}

	response := ToStudentResponse(student)
	return &response, nil
}

// List retrieves students with pagination. Not available to students.
func (s *StudentService) List(ctx context.Context, access accessctx.Access, filter ListFilter) ([]StudentResponse, int64, error) {
	if err := access.RequireRole(identity.RoleSuperAdmin, identity.RoleTenantAdmin, identity.RoleTeacher); err != nil {
		return nil, 0, err
	}
	tenantID, err := access.ResolveTenant(filter.TenantID)
	if err != nil {
		return nil, 0, err
	}

	domainFilter := buildFilter(filter)
	students, err := s.studentRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.studentRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToStudentResponses(students), total, nil
}

// Update applies partial changes to a student profile
func (s *StudentService) Update(ctx context.Context, access accessctx.Access, requestedTenant, studentID uuid.UUID, req UpdateStudentRequest) (*StudentResponse, error) {
	if err := access.RequireAdministrative(); err != nil {
		return nil, err
	}
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return nil, err
	}

	student, err := s.studentRepo.FindByIDForTenant(ctx, tenantID, studentID)
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
	phone := ""
	if req.Phone != nil {
		phone = *req.Phone
	}
	if err := student.Update(firstName, lastName, phone); err != nil {
		return nil, err
	}
	if req.ClientID != nil {
		if _, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, *req.ClientID); err != nil {
			return nil, err
		}
		student.AttachClient(*req.ClientID)
	}

	student.StampUpdated(access.UserID, access.IP)
	if err := s.studentRepo.Save(ctx, student); err != nil {
		return nil, err
	}

	response := ToStudentResponse(student)
	return &response, nil
}

// AddEmail attaches a secondary email address to a student
func (s *StudentService) AddEmail(ctx context.Context, access accessctx.Access, requestedTenant, studentID uuid.UUID, req AddStudentEmailRequest) (*StudentResponse, error) {
	if err := access.RequireAdministrative(); err != nil {
		return nil, err
	}
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return nil, err
	}

	exists, err := s.studentRepo.ExistsByEmail(ctx, tenantID, req.Address)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Another student already uses this email")
	}

	student, err := s.studentRepo.FindByIDForTenant(ctx, tenantID, studentID)
	if err != nil {
		return nil, err
	}
	if err := student.AddEmail(req.Address, access.UserID, access.IP); err != nil {
		return nil, err
	}

	student.StampUpdated(access.UserID, access.IP)
	if err := s.studentRepo.SaveWithEmails(ctx, student); err != nil {
		return nil, err
	}

	response := ToStudentResponse(student)
	return &response, nil
}

// Activate re-enables a student profile
func (s *StudentService) Activate(ctx context.Context, access accessctx.Access, requestedTenant, studentID uuid.UUID) error {
	return s.setActive(ctx, access, requestedTenant, studentID, true)
}

// Deactivate disables a student profile
func (s *StudentService) Deactivate(ctx context.Context, access accessctx.Access, requestedTenant, studentID uuid.UUID) error {
	return s.setActive(ctx, access, requestedTenant, studentID, false)
}

func (s *StudentService) setActive(ctx context.Context, access accessctx.Access, requestedTenant, studentID uuid.UUID, active bool) error {
	if err := access.RequireAdministrative(); err != nil {
		return err
	}
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return err
	}

	student, err := s.studentRepo.FindByIDForTenant(ctx, tenantID, studentID)
	if err != nil {
		return err
	}

	if active {
		student.Activate(access.UserID, access.IP)
	} else {
		student.Deactivate(access.UserID, access.IP)
	}
	return s.studentRepo.Save(ctx, student)
}

// Delete soft-deletes a student profile
func (s *StudentService) Delete(ctx context.Context, access accessctx.Access, requestedTenant, studentID uuid.UUID) error {
	if err := access.RequireAdministrative(); err != nil {
		return err
	}
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return err
	}

	student, err := s.studentRepo.FindByIDForTenant(ctx, tenantID, studentID)
	if err != nil {
		return err
	}

	student.MarkDeleted(access.UserID)
	return s.studentRepo.Save(ctx, student)
}

func isOwnProfile(student *people.Student, userID uuid.UUID) bool {
	return student.UserID != nil && *student.UserID == userID
}
