package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lms/backend/internal/domain/learning"
	"github.com/lms/backend/internal/domain/shared"
)

func newTestCourse(t *testing.T, tenantID uuid.UUID, code string) *learning.Course {
	t.Helper()
	course, err := learning.NewCourse(tenantID, uuid.New(), "Intro to Go", code, decimal.NewFromInt(99), uuid.New(), "10.0.0.1")
	require.NoError(t, err)
	return course
}

func TestGormCourseRepository_FindByIDWithContent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCourseRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()
	actor := uuid.New()

	course := newTestCourse(t, tenantID, "GO101")
	require.NoError(t, repo.Save(ctx, course))

	// Insert modules out of order to prove sort_order wins
	second, err := learning.NewCourseModule(tenantID, course.ID, "Concurrency", 2, actor, "10.0.0.1")
	require.NoError(t, err)
	require.NoError(t, repo.SaveModule(ctx, second))

	first, err := learning.NewCourseModule(tenantID, course.ID, "Basics", 1, actor, "10.0.0.1")
	require.NoError(t, err)
	require.NoError(t, repo.SaveModule(ctx, first))

	topic, err := learning.NewTopic(tenantID, first.ID, "Syntax", 1, actor, "10.0.0.1")
	require.NoError(t, err)
	require.NoError(t, repo.SaveTopic(ctx, topic))

	video, err := learning.NewVideo(tenantID, topic.ID, "Hello World", "https://cdn.example.com/v/1", 5*time.Minute, 1, actor, "10.0.0.1")
	require.NoError(t, err)
	require.NoError(t, repo.SaveVideo(ctx, video))

	loaded, err := repo.FindByIDWithContent(ctx, tenantID, course.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Modules, 2)
	assert.Equal(t, "Basics", loaded.Modules[0].Name)
	assert.Equal(t, "Concurrency", loaded.Modules[1].Name)
	require.Len(t, loaded.Modules[0].Topics, 1)
	require.Len(t, loaded.Modules[0].Topics[0].Videos, 1)
	assert.Equal(t, 5*time.Minute, loaded.Modules[0].Topics[0].Videos[0].Duration)
}

func TestGormCourseRepository_SoftDeletedModuleDisappearsFromTree(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCourseRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()
	actor := uuid.New()

	course := newTestCourse(t, tenantID, "GO101")
	require.NoError(t, repo.Save(ctx, course))

	module, err := learning.NewCourseModule(tenantID, course.ID, "Basics", 1, actor, "10.0.0.1")
	require.NoError(t, err)
	require.NoError(t, repo.SaveModule(ctx, module))

	module.MarkDeleted(actor)
	require.NoError(t, repo.SaveModule(ctx, module))

	loaded, err := repo.FindByIDWithContent(ctx, tenantID, course.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Modules)
}

func TestGormCourseRepository_TeacherAssignment(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCourseRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()
	teacherID := uuid.New()
	actor := uuid.New()

	course := newTestCourse(t, tenantID, "GO101")
	require.NoError(t, repo.Save(ctx, course))

	assignment := learning.NewTeacherCourse(tenantID, teacherID, course.ID, actor)
	require.NoError(t, repo.AssignTeacher(ctx, assignment))

	assigned, err := repo.IsTeacherAssigned(ctx, tenantID, teacherID, course.ID)
	require.NoError(t, err)
	assert.True(t, assigned)

	ids, err := repo.FindTeacherIDs(ctx, tenantID, course.ID)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, teacherID, ids[0])

	require.NoError(t, repo.UnassignTeacher(ctx, tenantID, teacherID, course.ID))

	assigned, err = repo.IsTeacherAssigned(ctx, tenantID, teacherID, course.ID)
	require.NoError(t, err)
	assert.False(t, assigned)

	err = repo.UnassignTeacher(ctx, tenantID, teacherID, course.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCourseRepository_ExistsByCode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCourseRepository(db)
	ctx := context.Background()
	tenantA := uuid.New()
	tenantB := uuid.New()

	course := newTestCourse(t, tenantA, "GO101")
	require.NoError(t, repo.Save(ctx, course))

	exists, err := repo.ExistsByCode(ctx, tenantA, "go101")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByCode(ctx, tenantB, "GO101")
	require.NoError(t, err)
	assert.False(t, exists)
}
