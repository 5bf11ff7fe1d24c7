package learning

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lms/backend/internal/application/accessctx"
	"github.com/lms/backend/internal/domain/learning"
	"github.com/lms/backend/internal/domain/shared"
)

// SpecializationService manages specializations within programs
type SpecializationService struct {
	specRepo    learning.SpecializationRepository
	programRepo learning.ProgramRepository
	logger      *zap.Logger
}

// NewSpecializationService creates a new SpecializationService
func NewSpecializationService(specRepo learning.SpecializationRepository, programRepo learning.ProgramRepository, logger *zap.Logger) *SpecializationService {
	return &SpecializationService{
		specRepo:    specRepo,
		programRepo: programRepo,
		logger:      logger,
	}
}

// Create creates a specialization under an existing program
func (s *SpecializationService) Create(ctx context.Context, access accessctx.Access, req CreateSpecializationRequest) (*SpecializationResponse, error) {
	if err := access.RequireAdministrative(); err != nil {
		return nil, err
	}
	tenantID, err := access.ResolveTenant(req.TenantID)
	if err != nil {
		return nil, err
	}

	// The parent program must exist in the same tenant
	if _, err := s.programRepo.FindByIDForTenant(ctx, tenantID, req.ProgramID); err != nil {
		return nil, err
	}

	exists, err := s.specRepo.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Specialization with this code already exists")
	}

	spec, err := learning.NewSpecialization(tenantID, req.ProgramID, req.Name, req.Code, access.UserID, access.IP)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := spec.Update("", req.Description); err != nil {
			return nil, err
		}
	}

	if err := s.specRepo.Save(ctx, spec); err != nil {
		return nil, err
	}

	s.logger.Info("Specialization created",
		zap.String("specialization_id", spec.ID.String()),
		zap.String("program_id", req.ProgramID.String()))

	response := ToSpecializationResponse(spec)
	return &response, nil
}

// GetByID retrieves a specialization
func (s *SpecializationService) GetByID(ctx context.Context, access accessctx.Access, requestedTenant, specID uuid.UUID) (*SpecializationResponse, error) {
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return nil, err
	}

	spec, err := s.specRepo.FindByIDForTenant(ctx, tenantID, specID)
	if err != nil {
		return nil, err
	}

	response := ToSpecializationResponse(spec)
	return &response, nil
}

// List retrieves specializations, optionally filtered by program
func (s *SpecializationService) List(ctx context.Context, access accessctx.Access, filter ListFilter) ([]SpecializationResponse, int64, error) {
	tenantID, err := access.ResolveTenant(filter.TenantID)
	if err != nil {
		return nil, 0, err
	}

	domainFilter := buildFilter(filter)

	var specs []learning.Specialization
	if filter.ProgramID != uuid.Nil {
		specs, err = s.specRepo.FindByProgram(ctx, tenantID, filter.ProgramID, domainFilter)
		domainFilter.Filters["program_id"] = filter.ProgramID.String()
	} else {
		specs, err = s.specRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.specRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToSpecializationResponses(specs), total, nil
}

// Update applies partial changes to a specialization
func (s *SpecializationService) Update(ctx context.Context, access accessctx.Access, requestedTenant, specID uuid.UUID, req UpdateSpecializationRequest) (*SpecializationResponse, error) {
	if err := access.RequireAdministrative(); err != nil {
		return nil, err
	}
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return nil, err
	}

	spec, err := s.specRepo.FindByIDForTenant(ctx, tenantID, specID)
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
	if err := spec.Update(name, description); err != nil {
		return nil, err
	}

	spec.StampUpdated(access.UserID, access.IP)
	if err := s.specRepo.Save(ctx, spec); err != nil {
		return nil, err
	}

	response := ToSpecializationResponse(spec)
	return &response, nil
}

// Delete soft-deletes a specialization
func (s *SpecializationService) Delete(ctx context.Context, access accessctx.Access, requestedTenant, specID uuid.UUID) error {
	if err := access.RequireAdministrative(); err != nil {
		return err
	}
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return err
	}

	spec, err := s.specRepo.FindByIDForTenant(ctx, tenantID, specID)
	if err != nil {
		return err
	}

	spec.MarkDeleted(access.UserID)
	return s.specRepo.Save(ctx, spec)
}
