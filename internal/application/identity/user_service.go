package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lms/backend/internal/application/accessctx"
	"github.com/lms/backend/internal/domain/identity"
	"github.com/lms/backend/internal/domain/shared"
)

// UserService manages tenant-scoped system users. Creation and deletion
// require an administrative role.
type UserService struct {
	userRepo identity.SystemUserRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.SystemUserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Create creates a tenant-scoped user
func (s *UserService) Create(ctx context.Context, access accessctx.Access, req CreateUserRequest) (*UserResponse, error) {
	if err := access.RequireAdministrative(); err != nil {
		return nil, err
	}
	tenantID, err := access.ResolveTenant(req.TenantID)
	if err != nil {
		return nil, err
	}

	role := identity.Role(req.Role)
	if role == identity.RoleSuperAdmin {
		return nil, shared.NewDomainError("INVALID_ROLE", "SUPER_ADMIN accounts cannot be created through this endpoint")
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, &tenantID, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "User with this username already exists")
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, &tenantID, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "User with this email already exists")
	}

	user, err := identity.NewSystemUser(tenantID, req.Username, req.Email, req.Password, role, access.UserID, access.IP)
	if err != nil {
		return nil, err
	}
	if req.DisplayName != "" {
		if err := user.SetDisplayName(req.DisplayName); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("tenant_id", tenantID.String()),
		zap.String("role", string(user.Role)))

	response := ToUserResponse(user)
	return &response, nil
}

// GetByID retrieves a user within the caller's tenant scope
func (s *UserService) GetByID(ctx context.Context, access accessctx.Access, requestedTenant, userID uuid.UUID) (*UserResponse, error) {
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// List retrieves users for a tenant with pagination
func (s *UserService) List(ctx context.Context, access accessctx.Access, filter UserListFilter) ([]UserResponse, int64, error) {
	if err := access.RequireAdministrative(); err != nil {
		return nil, 0, err
	}
	tenantID, err := access.ResolveTenant(filter.TenantID)
	if err != nil {
		return nil, 0, err
	}

	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)
	if filter.Role != "" {
		domainFilter.Filters["role"] = filter.Role
	}

	users, err := s.userRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.userRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToUserResponses(users), total, nil
}

// Update applies partial changes to a user. Admins may update anyone in
// their tenant; other roles only themselves.
func (s *UserService) Update(ctx context.Context, access accessctx.Access, requestedTenant, userID uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return nil, err
	}
	if !access.Role.Administrative() && access.UserID != userID {
		return nil, shared.ErrForbidden
	}

	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, &tenantID, *req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "User with this email already exists")
		}
		if err := user.SetEmail(*req.Email); err != nil {
			return nil, err
		}
	}
	if req.DisplayName != nil {
		if err := user.SetDisplayName(*req.DisplayName); err != nil {
			return nil, err
		}
	}

	user.StampUpdated(access.UserID, access.IP)
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// Activate re-enables a deactivated user
func (s *UserService) Activate(ctx context.Context, access accessctx.Access, requestedTenant, userID uuid.UUID) (*UserResponse, error) {
	return s.setActive(ctx, access, requestedTenant, userID, true)
}

// Deactivate disables a user without deleting it
func (s *UserService) Deactivate(ctx context.Context, access accessctx.Access, requestedTenant, userID uuid.UUID) (*UserResponse, error) {
	return s.setActive(ctx, access, requestedTenant, userID, false)
}

func (s *UserService) setActive(ctx context.Context, access accessctx.Access, requestedTenant, userID uuid.UUID, active bool) (*UserResponse, error) {
	if err := access.RequireAdministrative(); err != nil {
		return nil, err
	}
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	if active {
		user.Activate(access.UserID, access.IP)
	} else {
		user.Deactivate(access.UserID, access.IP)
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// Delete soft-deletes a user
func (s *UserService) Delete(ctx context.Context, access accessctx.Access, requestedTenant, userID uuid.UUID) error {
	if err := access.RequireAdministrative(); err != nil {
		return err
	}
	tenantID, err := access.ResolveTenant(requestedTenant)
	if err != nil {
		return err
	}
	if access.UserID == userID {
		return shared.NewDomainError("INVALID_INPUT", "Users cannot delete their own account")
	}

	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return err
	}

	user.MarkDeleted(access.UserID)
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	s.logger.Info("User deleted",
		zap.String("user_id", userID.String()),
		zap.String("deleted_by", access.UserID.String()))
	return nil
}
