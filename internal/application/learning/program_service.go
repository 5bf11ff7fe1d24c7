// Package learning contains application services for the curriculum
// hierarchy: programs, specializations and courses with their content.
package learning

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lms/backend/internal/application/accessctx"
	"github.com/lms/backend/internal/domain/learning"
	"github.com/lms/backend/internal/domain/shared"
)

// ProgramService manages top-level curriculum programs
type ProgramService struct {
	programRepo learning.ProgramRepository
	logger      *zap.Logger
}

// NewProgramService creates a new ProgramService
func NewProgramService(programRepo learning.ProgramRepository, logger *zap.Logger) *ProgramService {
	return &ProgramService{
		programRepo: programRepo,
		logger:      logger,
	}
}

// Create creates a new program
func (s *ProgramService) Create(ctx context.Context, access accessctx.Access, req CreateProgramRequest) (*ProgramResponse, error) {
	if err := access.RequireAdministrative(); err != nil {
		return nil, err
	}
	tenantID, err := access.ResolveTenant(req.TenantID)
	if err != nil {
		return nil, err
	}

	exists, err := s.programRepo.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Program with this code already exists")
	}

	program, err := learning.NewProgram(tenantID, req.Name, req.Code, access.UserID, access.IP)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := program.Update("", req.Description); err != nil {
			return nil, err
		}
	}

	if err := s.programRepo.Save(ctx, program); err != nil {
		return nil, err
	}

	s.logger.Info("Program created",
		zap.String("program_id", program.ID.String()),
		zap.String("code", program.Code))

	response := ToProgramResponse(program)
	return &response, nil
}

// GetByID retrieves a program
func (s *ProgramService) GetByID(ctx context.Context, access accessctx.Access, requestedTenant, programID uuid.UUID) (*ProgramResponse, error) {
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return nil, err
	}

	program, err := s.programRepo.FindByIDForTenant(ctx, tenantID, programID)
	if err != nil {
		return nil, err
	}

	response := ToProgramResponse(program)
	return &response, nil
}

// List retrieves programs with pagination
func (s *ProgramService) List(ctx context.Context, access accessctx.Access, filter ListFilter) ([]ProgramResponse, int64, error) {
	tenantID, err := access.ResolveTenant(filter.TenantID)
	if err != nil {
		return nil, 0, err
	}

	domainFilter := buildFilter(filter)
	programs, err := s.programRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.programRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProgramResponses(programs), total, nil
}

// Update applies partial changes to a program
func (s *ProgramService) Update(ctx context.Context, access accessctx.Access, requestedTenant, programID uuid.UUID, req UpdateProgramRequest) (*ProgramResponse, error) {
	if err := access.RequireAdministrative(); err != nil {
		return nil, err
	}
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return nil, err
	}

	program, err := s.programRepo.FindByIDForTenant(ctx, tenantID, programID)
	if err != nil {
		return nil, err
	}

	name := ""
	if req.Name != nil {
		name = *req.Name
	}
	description := ""
	if req.Description != nil {
		description = *req.Description
	}
	if err := program.Update(name, description); err != nil {
		return nil, err
	}

	program.StampUpdated(access.UserID, access.IP)
	if err := s.programRepo.Save(ctx, program); err != nil {
		return nil, err
	}

	response := ToProgramResponse(program)
	return &response, nil
}

// Delete soft-deletes a program
func (s *ProgramService) Delete(ctx context.Context, access accessctx.Access, requestedTenant, programID uuid.UUID) error {
	if err := access.RequireAdministrative(); err != nil {
		return err
	}
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return err
	}

	program, err := s.programRepo.FindByIDForTenant(ctx, tenantID, programID)
	if err != nil {
		return err
	}

	program.MarkDeleted(access.UserID)
	return s.programRepo.Save(ctx, program)
}
