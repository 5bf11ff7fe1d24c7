package enrollment

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lms/backend/internal/application/accessctx"
	"github.com/lms/backend/internal/domain/enrollment"
	"github.com/lms/backend/internal/domain/identity"
	"github.com/lms/backend/internal/domain/learning"
	"github.com/lms/backend/internal/domain/people"
	"github.com/lms/backend/internal/domain/shared"
)

// MockEnrollmentRepository is a mock implementation of Repository
type MockEnrollmentRepository struct {
	mock.Mock
}

func (m *MockEnrollmentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*enrollment.Enrollment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*enrollment.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) FindByStudentAndCourse(ctx context.Context, tenantID, studentID, courseID uuid.UUID) (*enrollment.Enrollment, error) {
	args := m.Called(ctx, tenantID, studentID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*enrollment.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) FindByStudent(ctx context.Context, tenantID, studentID uuid.UUID, filter shared.Filter) ([]enrollment.Enrollment, error) {
	args := m.Called(ctx, tenantID, studentID, filter)
	return args.Get(0).([]enrollment.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) FindByCourse(ctx context.Context, tenantID, courseID uuid.UUID, filter shared.Filter) ([]enrollment.Enrollment, error) {
	args := m.Called(ctx, tenantID, courseID, filter)
	return args.Get(0).([]enrollment.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEnrollmentRepository) Save(ctx context.Context, e *enrollment.Enrollment) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) FindProgress(ctx context.Context, tenantID, enrollmentID uuid.UUID) (*enrollment.CourseProgress, error) {
	args := m.Called(ctx, tenantID, enrollmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*enrollment.CourseProgress), args.Error(1)
}

func (m *MockEnrollmentRepository) SaveProgress(ctx context.Context, p *enrollment.CourseProgress) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) SaveWithProgress(ctx context.Context, e *enrollment.Enrollment, p *enrollment.CourseProgress) error {
	args := m.Called(ctx, e, p)
	return args.Error(0)
}

// MockCourseRepository is a mock implementation of CourseRepository
type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*learning.Course, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*learning.Course), args.Error(1)
}

func (m *MockCourseRepository) FindByIDWithContent(ctx context.Context, tenantID, id uuid.UUID) (*learning.Course, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*learning.Course), args.Error(1)
}

func (m *MockCourseRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]learning.Course, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]learning.Course), args.Error(1)
}

func (m *MockCourseRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCourseRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockCourseRepository) Save(ctx context.Context, course *learning.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseRepository) SaveModule(ctx context.Context, module *learning.CourseModule) error {
	args := m.Called(ctx, module)
	return args.Error(0)
}

func (m *MockCourseRepository) FindModuleByID(ctx context.Context, tenantID, id uuid.UUID) (*learning.CourseModule, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*learning.CourseModule), args.Error(1)
}

func (m *MockCourseRepository) SaveTopic(ctx context.Context, topic *learning.Topic) error {
	args := m.Called(ctx, topic)
	return args.Error(0)
}

func (m *MockCourseRepository) FindTopicByID(ctx context.Context, tenantID, id uuid.UUID) (*learning.Topic, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*learning.Topic), args.Error(1)
}

func (m *MockCourseRepository) SaveVideo(ctx context.Context, video *learning.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *MockCourseRepository) FindVideoByID(ctx context.Context, tenantID, id uuid.UUID) (*learning.Video, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*learning.Video), args.Error(1)
}

func (m *MockCourseRepository) AssignTeacher(ctx context.Context, assignment learning.TeacherCourse) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockCourseRepository) UnassignTeacher(ctx context.Context, tenantID, teacherID, courseID uuid.UUID) error {
	args := m.Called(ctx, tenantID, teacherID, courseID)
	return args.Error(0)
}

func (m *MockCourseRepository) FindTeacherIDs(ctx context.Context, tenantID, courseID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, tenantID, courseID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockCourseRepository) IsTeacherAssigned(ctx context.Context, tenantID, teacherID, courseID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, teacherID, courseID)
	return args.Bool(0), args.Error(1)
}

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

type fixture struct {
	enrollRepo  *MockEnrollmentRepository
	courseRepo  *MockCourseRepository
	studentRepo *MockStudentRepository
	svc         *EnrollmentService
}

func newFixture() *fixture {
	f := &fixture{
		enrollRepo:  new(MockEnrollmentRepository),
		courseRepo:  new(MockCourseRepository),
		studentRepo: new(MockStudentRepository),
	}
	f.svc = NewEnrollmentService(f.enrollRepo, f.courseRepo, f.studentRepo, zap.NewNop())
	return f
}

func newPublishedCourse(t *testing.T, tenantID uuid.UUID) *learning.Course {
	t.Helper()
	course, err := learning.NewCourse(tenantID, uuid.New(), "Intro to Go", "GO101", decimal.NewFromInt(99), uuid.New(), "127.0.0.1")
	require.NoError(t, err)
	require.NoError(t, course.Publish())
	return course
}

func newLinkedStudent(t *testing.T, tenantID, userID uuid.UUID) *people.Student {
	t.Helper()
	student, err := people.NewStudent(tenantID, "jdoe", "jdoe@acme.example", "Jane", "Doe", uuid.New(), "127.0.0.1")
	require.NoError(t, err)
	student.AttachUser(userID)
	return student
}

func studentAccess(tenantID, userID uuid.UUID) accessctx.Access {
	return accessctx.Access{
		UserID:   userID,
		Role:     identity.RoleStudent,
		TenantID: &tenantID,
		IP:       "10.0.0.5",
	}
}

func adminAccess(tenantID uuid.UUID) accessctx.Access {
	return accessctx.Access{
		UserID:   uuid.New(),
		Role:     identity.RoleTenantAdmin,
		TenantID: &tenantID,
		IP:       "10.0.0.1",
	}
}

func TestEnrollmentService_Enroll_StudentSelfEnrolls(t *testing.T) {
	f := newFixture()
	tenantID := uuid.New()
	userID := uuid.New()
	student := newLinkedStudent(t, tenantID, userID)
	course := newPublishedCourse(t, tenantID)

	f.studentRepo.On("FindByUserID", mock.Anything, tenantID, userID).Return(student, nil)
	f.courseRepo.On("FindByIDForTenant", mock.Anything, tenantID, course.ID).Return(course, nil)
	f.enrollRepo.On("FindByStudentAndCourse", mock.Anything, tenantID, student.ID, course.ID).Return(nil, shared.ErrNotFound)
	f.enrollRepo.On("SaveWithProgress", mock.Anything, mock.AnythingOfType("*enrollment.Enrollment"), mock.AnythingOfType("*enrollment.CourseProgress")).Return(nil)

	result, err := f.svc.Enroll(context.Background(), studentAccess(tenantID, userID), EnrollRequest{CourseID: course.ID})

	require.NoError(t, err)
	assert.Equal(t, student.ID, result.StudentID)
	assert.Equal(t, string(enrollment.StatusActive), result.Status)

	call := f.enrollRepo.Calls[len(f.enrollRepo.Calls)-1]
	savedProgress := call.Arguments.Get(2).(*enrollment.CourseProgress)
	savedEnrollment := call.Arguments.Get(1).(*enrollment.Enrollment)
	assert.Equal(t, savedEnrollment.ID, savedProgress.EnrollmentID)
	assert.Equal(t, 0, savedProgress.PercentComplete)
}

func TestEnrollmentService_Enroll_DraftCourseRejected(t *testing.T) {
	f := newFixture()
	tenantID := uuid.New()
	access := adminAccess(tenantID)
	studentID := uuid.New()

	draft, err := learning.NewCourse(tenantID, uuid.New(), "Hidden", "HID1", decimal.Zero, uuid.New(), "127.0.0.1")
	require.NoError(t, err)
	student, err := people.NewStudent(tenantID, "jdoe", "jdoe@acme.example", "Jane", "Doe", uuid.New(), "127.0.0.1")
	require.NoError(t, err)

	f.studentRepo.On("FindByIDForTenant", mock.Anything, tenantID, studentID).Return(student, nil)
	f.courseRepo.On("FindByIDForTenant", mock.Anything, tenantID, draft.ID).Return(draft, nil)

	_, err = f.svc.Enroll(context.Background(), access, EnrollRequest{StudentID: studentID, CourseID: draft.ID})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "COURSE_NOT_PUBLISHED", domainErr.Code)
	f.enrollRepo.AssertNotCalled(t, "SaveWithProgress")
}

func TestEnrollmentService_Enroll_ActiveEnrollmentRejected(t *testing.T) {
	f := newFixture()
	tenantID := uuid.New()
	access := adminAccess(tenantID)
	course := newPublishedCourse(t, tenantID)

	student, err := people.NewStudent(tenantID, "jdoe", "jdoe@acme.example", "Jane", "Doe", uuid.New(), "127.0.0.1")
	require.NoError(t, err)
	existing, err := enrollment.NewEnrollment(tenantID, student.ID, course.ID, uuid.New(), "127.0.0.1")
	require.NoError(t, err)

	f.studentRepo.On("FindByIDForTenant", mock.Anything, tenantID, student.ID).Return(student, nil)
	f.courseRepo.On("FindByIDForTenant", mock.Anything, tenantID, course.ID).Return(course, nil)
	f.enrollRepo.On("FindByStudentAndCourse", mock.Anything, tenantID, student.ID, course.ID).Return(existing, nil)

	_, err = f.svc.Enroll(context.Background(), access, EnrollRequest{StudentID: student.ID, CourseID: course.ID})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestEnrollmentService_Enroll_ReenrollAfterWithdrawal(t *testing.T) {
	f := newFixture()
	tenantID := uuid.New()
	access := adminAccess(tenantID)
	course := newPublishedCourse(t, tenantID)

	student, err := people.NewStudent(tenantID, "jdoe", "jdoe@acme.example", "Jane", "Doe", uuid.New(), "127.0.0.1")
	require.NoError(t, err)
	withdrawn, err := enrollment.NewEnrollment(tenantID, student.ID, course.ID, uuid.New(), "127.0.0.1")
	require.NoError(t, err)
	require.NoError(t, withdrawn.Withdraw())

	f.studentRepo.On("FindByIDForTenant", mock.Anything, tenantID, student.ID).Return(student, nil)
	f.courseRepo.On("FindByIDForTenant", mock.Anything, tenantID, course.ID).Return(course, nil)
	f.enrollRepo.On("FindByStudentAndCourse", mock.Anything, tenantID, student.ID, course.ID).Return(withdrawn, nil)
	f.enrollRepo.On("SaveWithProgress", mock.Anything, mock.AnythingOfType("*enrollment.Enrollment"), mock.AnythingOfType("*enrollment.CourseProgress")).Return(nil)

	result, err := f.svc.Enroll(context.Background(), access, EnrollRequest{StudentID: student.ID, CourseID: course.ID})

	require.NoError(t, err)
	assert.Equal(t, string(enrollment.StatusActive), result.Status)
	assert.NotEqual(t, withdrawn.ID, result.ID)
}

func TestEnrollmentService_Enroll_StudentCannotEnrollOthers(t *testing.T) {
	f := newFixture()
	tenantID := uuid.New()
	userID := uuid.New()
	student := newLinkedStudent(t, tenantID, userID)

	f.studentRepo.On("FindByUserID", mock.Anything, tenantID, userID).Return(student, nil)

	_, err := f.svc.Enroll(context.Background(), studentAccess(tenantID, userID), EnrollRequest{
		StudentID: uuid.New(),
		CourseID:  uuid.New(),
	})

	assert.ErrorIs(t, err, shared.ErrForbidden)
	f.courseRepo.AssertNotCalled(t, "FindByIDForTenant")
}

func TestEnrollmentService_Withdraw_StudentOwnOnly(t *testing.T) {
	f := newFixture()
	tenantID := uuid.New()
	userID := uuid.New()
	student := newLinkedStudent(t, tenantID, userID)

	other, err := enrollment.NewEnrollment(tenantID, uuid.New(), uuid.New(), uuid.New(), "127.0.0.1")
	require.NoError(t, err)

	f.enrollRepo.On("FindByIDForTenant", mock.Anything, tenantID, other.ID).Return(other, nil)
	f.studentRepo.On("FindByUserID", mock.Anything, tenantID, userID).Return(student, nil)

	_, err = f.svc.Withdraw(context.Background(), studentAccess(tenantID, userID), uuid.Nil, other.ID)
	assert.ErrorIs(t, err, shared.ErrForbidden)
	f.enrollRepo.AssertNotCalled(t, "Save")
}

func TestEnrollmentService_Withdraw_CompletedRejected(t *testing.T) {
	f := newFixture()
	tenantID := uuid.New()
	access := adminAccess(tenantID)

	enr, err := enrollment.NewEnrollment(tenantID, uuid.New(), uuid.New(), uuid.New(), "127.0.0.1")
	require.NoError(t, err)
	require.NoError(t, enr.Complete())

	f.enrollRepo.On("FindByIDForTenant", mock.Anything, tenantID, enr.ID).Return(enr, nil)

	_, err = f.svc.Withdraw(context.Background(), access, uuid.Nil, enr.ID)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestEnrollmentService_RecordProgress_NeverMovesBackwards(t *testing.T) {
	f := newFixture()
	tenantID := uuid.New()
	access := adminAccess(tenantID)

	enr, err := enrollment.NewEnrollment(tenantID, uuid.New(), uuid.New(), uuid.New(), "127.0.0.1")
	require.NoError(t, err)
	progress := enrollment.NewCourseProgress(tenantID, enr.ID, uuid.New(), "127.0.0.1")
	require.NoError(t, progress.Record(60, nil))

	f.enrollRepo.On("FindByIDForTenant", mock.Anything, tenantID, enr.ID).Return(enr, nil)
	f.enrollRepo.On("FindProgress", mock.Anything, tenantID, enr.ID).Return(progress, nil)
	f.enrollRepo.On("SaveProgress", mock.Anything, progress).Return(nil)

	result, err := f.svc.RecordProgress(context.Background(), access, uuid.Nil, enr.ID, RecordProgressRequest{PercentComplete: 40})

	require.NoError(t, err)
	assert.Equal(t, 60, result.PercentComplete)
}

func TestEnrollmentService_RecordProgress_FullProgressCompletesEnrollment(t *testing.T) {
	f := newFixture()
	tenantID := uuid.New()
	userID := uuid.New()
	student := newLinkedStudent(t, tenantID, userID)

	enr, err := enrollment.NewEnrollment(tenantID, student.ID, uuid.New(), uuid.New(), "127.0.0.1")
	require.NoError(t, err)
	progress := enrollment.NewCourseProgress(tenantID, enr.ID, uuid.New(), "127.0.0.1")

	f.enrollRepo.On("FindByIDForTenant", mock.Anything, tenantID, enr.ID).Return(enr, nil)
	f.studentRepo.On("FindByUserID", mock.Anything, tenantID, userID).Return(student, nil)
	f.enrollRepo.On("FindProgress", mock.Anything, tenantID, enr.ID).Return(progress, nil)
	f.enrollRepo.On("SaveWithProgress", mock.Anything, enr, progress).Return(nil)

	videoID := uuid.New()
	result, err := f.svc.RecordProgress(context.Background(), studentAccess(tenantID, userID), uuid.Nil, enr.ID, RecordProgressRequest{
		PercentComplete: 100,
		LastVideoID:     &videoID,
	})

	require.NoError(t, err)
	assert.Equal(t, 100, result.PercentComplete)
	assert.Equal(t, enrollment.StatusCompleted, enr.Status)
	require.NotNil(t, enr.CompletedAt)
	f.enrollRepo.AssertNotCalled(t, "SaveProgress")
}

func TestEnrollmentService_RecordProgress_WithdrawnRejected(t *testing.T) {
	f := newFixture()
	tenantID := uuid.New()
	access := adminAccess(tenantID)

	enr, err := enrollment.NewEnrollment(tenantID, uuid.New(), uuid.New(), uuid.New(), "127.0.0.1")
	require.NoError(t, err)
	require.NoError(t, enr.Withdraw())

	f.enrollRepo.On("FindByIDForTenant", mock.Anything, tenantID, enr.ID).Return(enr, nil)

	_, err = f.svc.RecordProgress(context.Background(), access, uuid.Nil, enr.ID, RecordProgressRequest{PercentComplete: 10})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestEnrollmentService_ListByCourse_StudentForbidden(t *testing.T) {
	f := newFixture()
	tenantID := uuid.New()

	_, err := f.svc.ListByCourse(context.Background(), studentAccess(tenantID, uuid.New()), ListFilter{CourseID: uuid.New()})
	assert.ErrorIs(t, err, shared.ErrForbidden)
	f.enrollRepo.AssertNotCalled(t, "FindByCourse")
}
