package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lms/backend/internal/application/accessctx"
	"github.com/lms/backend/internal/domain/identity"
	"github.com/lms/backend/internal/domain/shared"
)

func adminAccess(tenantID uuid.UUID) accessctx.Access {
	return accessctx.Access{
		UserID:   uuid.New(),
		Role:     identity.RoleTenantAdmin,
		TenantID: &tenantID,
		IP:       "10.0.0.1",
	}
}

func superAdminAccess() accessctx.Access {
	return accessctx.Access{
		UserID: uuid.New(),
		Role:   identity.RoleSuperAdmin,
		IP:     "10.0.0.1",
	}
}

func TestUserService_Create_Success(t *testing.T) {
	userRepo := new(MockSystemUserRepository)
	svc := NewUserService(userRepo, zap.NewNop())
	tenantID := uuid.New()
	access := adminAccess(tenantID)

	userRepo.On("ExistsByUsername", mock.Anything, &tenantID, "jdoe").Return(false, nil)
	userRepo.On("ExistsByEmail", mock.Anything, &tenantID, "jdoe@acme.example").Return(false, nil)
	userRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.SystemUser")).Return(nil)

	result, err := svc.Create(context.Background(), access, CreateUserRequest{
		Username: "jdoe",
		Email:    "jdoe@acme.example",
		Password: "s3cretpass",
		Role:     string(identity.RoleTeacher),
	})

	require.NoError(t, err)
	assert.Equal(t, "jdoe", result.Username)
	require.NotNil(t, result.TenantID)
	assert.Equal(t, tenantID, *result.TenantID)

	saved := userRepo.Calls[len(userRepo.Calls)-1].Arguments.Get(1).(*identity.SystemUser)
	assert.Equal(t, &access.UserID, saved.CreatedBy)
	assert.Equal(t, "10.0.0.1", saved.CreatedIP)
}

func TestUserService_Create_DuplicateUsername(t *testing.T) {
	userRepo := new(MockSystemUserRepository)
	svc := NewUserService(userRepo, zap.NewNop())
	tenantID := uuid.New()

	userRepo.On("ExistsByUsername", mock.Anything, &tenantID, "jdoe").Return(true, nil)

	_, err := svc.Create(context.Background(), adminAccess(tenantID), CreateUserRequest{
		Username: "jdoe",
		Email:    "jdoe@acme.example",
		Password: "s3cretpass",
		Role:     string(identity.RoleStudent),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestUserService_Create_NonAdminForbidden(t *testing.T) {
	userRepo := new(MockSystemUserRepository)
	svc := NewUserService(userRepo, zap.NewNop())
	tenantID := uuid.New()

	access := accessctx.Access{
		UserID:   uuid.New(),
		Role:     identity.RoleTeacher,
		TenantID: &tenantID,
	}

	_, err := svc.Create(context.Background(), access, CreateUserRequest{
		Username: "jdoe",
		Email:    "jdoe@acme.example",
		Password: "s3cretpass",
		Role:     string(identity.RoleStudent),
	})

	assert.ErrorIs(t, err, shared.ErrForbidden)
	userRepo.AssertNotCalled(t, "Save")
}

func TestUserService_Create_RejectsSuperAdminRole(t *testing.T) {
	userRepo := new(MockSystemUserRepository)
	svc := NewUserService(userRepo, zap.NewNop())

	_, err := svc.Create(context.Background(), adminAccess(uuid.New()), CreateUserRequest{
		Username: "root2",
		Email:    "root2@example.com",
		Password: "s3cretpass",
		Role:     string(identity.RoleSuperAdmin),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_ROLE", domainErr.Code)
}

func TestUserService_Create_CrossTenantForbidden(t *testing.T) {
	userRepo := new(MockSystemUserRepository)
	svc := NewUserService(userRepo, zap.NewNop())

	_, err := svc.Create(context.Background(), adminAccess(uuid.New()), CreateUserRequest{
		TenantID: uuid.New(), // different tenant than the caller's
		Username: "jdoe",
		Email:    "jdoe@acme.example",
		Password: "s3cretpass",
		Role:     string(identity.RoleStudent),
	})

	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestUserService_Create_SuperAdminMustNameTenant(t *testing.T) {
	userRepo := new(MockSystemUserRepository)
	svc := NewUserService(userRepo, zap.NewNop())

	_, err := svc.Create(context.Background(), superAdminAccess(), CreateUserRequest{
		Username: "jdoe",
		Email:    "jdoe@acme.example",
		Password: "s3cretpass",
		Role:     string(identity.RoleStudent),
	})

	assert.ErrorIs(t, err, shared.ErrTenantRequired)
}

func TestUserService_Update_SelfAllowedForNonAdmin(t *testing.T) {
	userRepo := new(MockSystemUserRepository)
	svc := NewUserService(userRepo, zap.NewNop())
	tenantID := uuid.New()

	user := newTenantUser(t, tenantID, "jdoe", "s3cretpass", identity.RoleStudent)
	access := accessctx.Access{
		UserID:   user.ID,
		Role:     identity.RoleStudent,
		TenantID: &tenantID,
		IP:       "10.0.0.1",
	}

	userRepo.On("FindByIDForTenant", mock.Anything, tenantID, user.ID).Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	displayName := "John Doe"
	result, err := svc.Update(context.Background(), access, uuid.Nil, user.ID, UpdateUserRequest{
		DisplayName: &displayName,
	})

	require.NoError(t, err)
	assert.Equal(t, "John Doe", result.DisplayName)
	assert.Equal(t, 2, user.Version)
	assert.Equal(t, &user.ID, user.UpdatedBy)
}

func TestUserService_Update_OtherUserForbiddenForNonAdmin(t *testing.T) {
	userRepo := new(MockSystemUserRepository)
	svc := NewUserService(userRepo, zap.NewNop())
	tenantID := uuid.New()

	access := accessctx.Access{
		UserID:   uuid.New(),
		Role:     identity.RoleStudent,
		TenantID: &tenantID,
	}

	_, err := svc.Update(context.Background(), access, uuid.Nil, uuid.New(), UpdateUserRequest{})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestUserService_Delete_SoftDeletesAndStampsActor(t *testing.T) {
	userRepo := new(MockSystemUserRepository)
	svc := NewUserService(userRepo, zap.NewNop())
	tenantID := uuid.New()
	access := adminAccess(tenantID)

	user := newTenantUser(t, tenantID, "jdoe", "s3cretpass", identity.RoleStudent)

	userRepo.On("FindByIDForTenant", mock.Anything, tenantID, user.ID).Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), access, uuid.Nil, user.ID))

	assert.True(t, user.IsDeleted)
	assert.False(t, user.IsActive)
	assert.Equal(t, &access.UserID, user.DeletedBy)
	require.NotNil(t, user.DeletedAt)
}

func TestUserService_Delete_SelfRejected(t *testing.T) {
	userRepo := new(MockSystemUserRepository)
	svc := NewUserService(userRepo, zap.NewNop())
	tenantID := uuid.New()
	access := adminAccess(tenantID)

	err := svc.Delete(context.Background(), access, uuid.Nil, access.UserID)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
}
