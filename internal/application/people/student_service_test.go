package people

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
	"github.com/lms/backend/internal/domain/org"
	"github.com/lms/backend/internal/domain/people"
	"github.com/lms/backend/internal/domain/shared"
)

// MockStudentRepository is a mock implementation of StudentRepository
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*people.Student, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*people.Student), args.Error(1)
}

func (m *MockStudentRepository) FindByUserID(ctx context.Context, tenantID, userID uuid.UUID) (*people.Student, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*people.Student), args.Error(1)
}

func (m *MockStudentRepository) FindByUsername(ctx context.Context, tenantID uuid.UUID, username string) (*people.Student, error) {
	args := m.Called(ctx, tenantID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*people.Student), args.Error(1)
}

func (m *MockStudentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]people.Student, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]people.Student), args.Error(1)
}

func (m *MockStudentRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStudentRepository) ExistsByUsername(ctx context.Context, tenantID uuid.UUID, username string) (bool, error) {
	args := m.Called(ctx, tenantID, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockStudentRepository) ExistsByEmail(ctx context.Context, tenantID uuid.UUID, address string) (bool, error) {
	args := m.Called(ctx, tenantID, address)
	return args.Bool(0), args.Error(1)
}

func (m *MockStudentRepository) Save(ctx context.Context, student *people.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) SaveWithEmails(ctx context.Context, student *people.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

// MockClientRepository is a mock implementation of ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*org.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*org.Client), args.Error(1)
}

func (m *MockClientRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*org.Client, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*org.Client), args.Error(1)
}

func (m *MockClientRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]org.Client, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]org.Client), args.Error(1)
}

func (m *MockClientRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, tenantID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *org.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) LinkTenant(ctx context.Context, link org.ClientTenant) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockClientRepository) UnlinkTenant(ctx context.Context, clientID, tenantID uuid.UUID) error {
	args := m.Called(ctx, clientID, tenantID)
	return args.Error(0)
}

func (m *MockClientRepository) FindLinkedTenantIDs(ctx context.Context, clientID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func adminAccess(tenantID uuid.UUID) accessctx.Access {
	return accessctx.Access{
		UserID:   uuid.New(),
		Role:     identity.RoleTenantAdmin,
		TenantID: &tenantID,
		IP:       "10.0.0.1",
	}
}

func newStudentService(studentRepo *MockStudentRepository, clientRepo *MockClientRepository) *StudentService {
	return NewStudentService(studentRepo, clientRepo, zap.NewNop())
}

func TestStudentService_Create_Success(t *testing.T) {
	repo := new(MockStudentRepository)
	svc := newStudentService(repo, new(MockClientRepository))
	tenantID := uuid.New()
	access := adminAccess(tenantID)

	repo.On("ExistsByUsername", mock.Anything, tenantID, "jdoe").Return(false, nil)
	repo.On("ExistsByEmail", mock.Anything, tenantID, "jdoe@acme.example").Return(false, nil)
	repo.On("SaveWithEmails", mock.Anything, mock.AnythingOfType("*people.Student")).Return(nil)

	result, err := svc.Create(context.Background(), access, CreateStudentRequest{
		Username:  "jdoe",
		Email:     "jdoe@acme.example",
		FirstName: "Jane",
		LastName:  "Doe",
		Phone:     "+1 555 0100",
	})

	require.NoError(t, err)
	assert.Equal(t, "jdoe", result.Username)
	assert.Equal(t, "+1 555 0100", result.Phone)
	require.Len(t, result.Emails, 1)
	assert.Equal(t, "jdoe@acme.example", result.Emails[0].Address)
	assert.True(t, result.Emails[0].IsPrimary)

	saved := repo.Calls[len(repo.Calls)-1].Arguments.Get(1).(*people.Student)
	assert.Equal(t, tenantID, saved.TenantID)
	require.NotNil(t, saved.CreatedBy)
	assert.Equal(t, access.UserID, *saved.CreatedBy)
	require.Len(t, saved.Emails, 1)
	assert.Equal(t, saved.ID, saved.Emails[0].StudentID)
}

func TestStudentService_Create_DuplicateUsername(t *testing.T) {
	repo := new(MockStudentRepository)
	svc := newStudentService(repo, new(MockClientRepository))
	tenantID := uuid.New()

	repo.On("ExistsByUsername", mock.Anything, tenantID, "jdoe").Return(true, nil)

	_, err := svc.Create(context.Background(), adminAccess(tenantID), CreateStudentRequest{
		Username:  "jdoe",
		Email:     "jdoe@acme.example",
		FirstName: "Jane",
		LastName:  "Doe",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	repo.AssertNotCalled(t, "SaveWithEmails")
}

func TestStudentService_Create_UnknownClientRejected(t *testing.T) {
	repo := new(MockStudentRepository)
	clientRepo := new(MockClientRepository)
	svc := newStudentService(repo, clientRepo)
	tenantID := uuid.New()
	clientID := uuid.New()

	repo.On("ExistsByUsername", mock.Anything, tenantID, "jdoe").Return(false, nil)
	repo.On("ExistsByEmail", mock.Anything, tenantID, "jdoe@acme.example").Return(false, nil)
	clientRepo.On("FindByIDForTenant", mock.Anything, tenantID, clientID).Return(nil, shared.ErrNotFound)

	_, err := svc.Create(context.Background(), adminAccess(tenantID), CreateStudentRequest{
		Username:  "jdoe",
		Email:     "jdoe@acme.example",
		FirstName: "Jane",
		LastName:  "Doe",
		ClientID:  &clientID,
	})

	assert.ErrorIs(t, err, shared.ErrNotFound)
	repo.AssertNotCalled(t, "SaveWithEmails")
}

func TestStudentService_GetByID_StudentReadsOwnProfile(t *testing.T) {
	repo := new(MockStudentRepository)
	svc := newStudentService(repo, new(MockClientRepository))
	tenantID := uuid.New()
	userID := uuid.New()

	student, err := people.NewStudent(tenantID, "jdoe", "jdoe@acme.example", "Jane", "Doe", uuid.New(), "127.0.0.1")
	require.NoError(t, err)
	student.AttachUser(userID)

	repo.On("FindByIDForTenant", mock.Anything, tenantID, student.ID).Return(student, nil)

	access := accessctx.Access{
		UserID:   userID,
		Role:     identity.RoleStudent,
		TenantID: &tenantID,
	}

	result, err := svc.GetByID(context.Background(), access, uuid.Nil, student.ID)
	require.NoError(t, err)
	assert.Equal(t, "jdoe", result.Username)
}

func TestStudentService_GetByID_StudentCannotReadOthers(t *testing.T) {
	repo := new(MockStudentRepository)
	svc := newStudentService(repo, new(MockClientRepository))
	tenantID := uuid.New()

	other, err := people.NewStudent(tenantID, "other", "other@acme.example", "Otto", "Other", uuid.New(), "127.0.0.1")
	require.NoError(t, err)
	otherUser := uuid.New()
	other.AttachUser(otherUser)

	repo.On("FindByIDForTenant", mock.Anything, tenantID, other.ID).Return(other, nil)

	access := accessctx.Access{
		UserID:   uuid.New(),
		Role:     identity.RoleStudent,
		TenantID: &tenantID,
	}

	_, err = svc.GetByID(context.Background(), access, uuid.Nil, other.ID)
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestStudentService_List_StudentForbidden(t *testing.T) {
	repo := new(MockStudentRepository)
	svc := newStudentService(repo, new(MockClientRepository))
	tenantID := uuid.New()

	access := accessctx.Access{
		UserID:   uuid.New(),
		Role:     identity.RoleStudent,
		TenantID: &tenantID,
	}

	_, _, err := svc.List(context.Background(), access, ListFilter{})
	assert.ErrorIs(t, err, shared.ErrForbidden)
	repo.AssertNotCalled(t, "FindAllForTenant")
}

func TestStudentService_AddEmail_DuplicateAcrossStudentsRejected(t *testing.T) {
	repo := new(MockStudentRepository)
	svc := newStudentService(repo, new(MockClientRepository))
	tenantID := uuid.New()
	studentID := uuid.New()

	repo.On("ExistsByEmail", mock.Anything, tenantID, "taken@acme.example").Return(true, nil)

	_, err := svc.AddEmail(context.Background(), adminAccess(tenantID), uuid.Nil, studentID, AddStudentEmailRequest{
		Address: "taken@acme.example",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	repo.AssertNotCalled(t, "SaveWithEmails")
}

func TestStudentService_AddEmail_AppendsSecondary(t *testing.T) {
	repo := new(MockStudentRepository)
	svc := newStudentService(repo, new(MockClientRepository))
	tenantID := uuid.New()
	access := adminAccess(tenantID)

	student, err := people.NewStudent(tenantID, "jdoe", "jdoe@acme.example", "Jane", "Doe", uuid.New(), "127.0.0.1")
	require.NoError(t, err)

	repo.On("ExistsByEmail", mock.Anything, tenantID, "second@acme.example").Return(false, nil)
	repo.On("FindByIDForTenant", mock.Anything, tenantID, student.ID).Return(student, nil)
	repo.On("SaveWithEmails", mock.Anything, student).Return(nil)

	result, err := svc.AddEmail(context.Background(), access, uuid.Nil, student.ID, AddStudentEmailRequest{
		Address: "second@acme.example",
	})

	require.NoError(t, err)
	require.Len(t, result.Emails, 2)
	assert.False(t, result.Emails[1].IsPrimary)
}

func TestStudentService_ActivateDeactivate_StampsActor(t *testing.T) {
	repo := new(MockStudentRepository)
	svc := newStudentService(repo, new(MockClientRepository))
	tenantID := uuid.New()
	access := adminAccess(tenantID)

	student, err := people.NewStudent(tenantID, "jdoe", "jdoe@acme.example", "Jane", "Doe", uuid.New(), "127.0.0.1")
	require.NoError(t, err)

	repo.On("FindByIDForTenant", mock.Anything, tenantID, student.ID).Return(student, nil)
	repo.On("Save", mock.Anything, student).Return(nil)

	require.NoError(t, svc.Deactivate(context.Background(), access, uuid.Nil, student.ID))
	assert.False(t, student.IsActive)
	require.NotNil(t, student.UpdatedBy)
	assert.Equal(t, access.UserID, *student.UpdatedBy)
	assert.Equal(t, access.IP, student.UpdatedIP)
	assert.Equal(t, 2, student.GetVersion())

	require.NoError(t, svc.Activate(context.Background(), access, uuid.Nil, student.ID))
	assert.True(t, student.IsActive)
	assert.Equal(t, 3, student.GetVersion())
}

func TestStudentService_Activate_RequiresAdmin(t *testing.T) {
	repo := new(MockStudentRepository)
	svc := newStudentService(repo, new(MockClientRepository))
	tenantID := uuid.New()

	access := accessctx.Access{
		UserID:   uuid.New(),
		Role:     identity.RoleStudent,
		TenantID: &tenantID,
	}

	err := svc.Activate(context.Background(), access, uuid.Nil, uuid.New())
	assert.ErrorIs(t, err, shared.ErrForbidden)
	repo.AssertNotCalled(t, "Save")
}

func TestStudentService_Delete_SoftDeletes(t *testing.T) {
	repo := new(MockStudentRepository)
	svc := newStudentService(repo, new(MockClientRepository))
	tenantID := uuid.New()
	access := adminAccess(tenantID)

	student, err := people.NewStudent(tenantID, "jdoe", "jdoe@acme.example", "Jane", "Doe", uuid.New(), "127.0.0.1")
	require.NoError(t, err)

	repo.On("FindByIDForTenant", mock.Anything, tenantID, student.ID).Return(student, nil)
	repo.On("Save", mock.Anything, student).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), access, uuid.Nil, student.ID))

	assert.True(t, student.IsDeleted)
	require.NotNil(t, student.DeletedBy)
	assert.Equal(t, access.UserID, *student.DeletedBy)
}
