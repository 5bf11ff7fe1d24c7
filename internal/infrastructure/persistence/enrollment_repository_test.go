package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lms/backend/internal/domain/enrollment"
	"github.com/lms/backend/internal/domain/shared"
)

func TestGormEnrollmentRepository_SaveWithProgress(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormEnrollmentRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()
	actor := uuid.New()

	e, err := enrollment.NewEnrollment(tenantID, uuid.New(), uuid.New(), actor, "10.0.0.1")
	require.NoError(t, err)
	p := enrollment.NewCourseProgress(tenantID, e.ID, actor, "10.0.0.1")

	require.NoError(t, repo.SaveWithProgress(ctx, e, p))

	found, err := repo.FindByIDForTenant(ctx, tenantID, e.ID)
	require.NoError(t, err)
	assert.Equal(t, enrollment.StatusActive, found.Status)

	progress, err := repo.FindProgress(ctx, tenantID, e.ID)
	require.NoError(t, err)
	assert.Zero(t, progress.PercentComplete)
}

func TestGormEnrollmentRepository_FindByStudentAndCourseReturnsLatest(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormEnrollmentRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()
	studentID := uuid.New()
	courseID := uuid.New()
	actor := uuid.New()

	old, err := enrollment.NewEnrollment(tenantID, studentID, courseID, actor, "10.0.0.1")
	require.NoError(t, err)
	old.EnrolledAt = time.Now().Add(-48 * time.Hour)
	require.NoError(t, old.Withdraw())
	require.NoError(t, repo.Save(ctx, old))

	current, err := enrollment.NewEnrollment(tenantID, studentID, courseID, actor, "10.0.0.1")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, current))

	found, err := repo.FindByStudentAndCourse(ctx, tenantID, studentID, courseID)
	require.NoError(t, err)
	assert.Equal(t, current.ID, found.ID)
	assert.Equal(t, enrollment.StatusActive, found.Status)
}

func TestGormEnrollmentRepository_FindByStudentFiltersByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormEnrollmentRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()
	studentID := uuid.New()
	actor := uuid.New()

	active, err := enrollment.NewEnrollment(tenantID, studentID, uuid.New(), actor, "10.0.0.1")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, active))

	withdrawn, err := enrollment.NewEnrollment(tenantID, studentID, uuid.New(), actor, "10.0.0.1")
	require.NoError(t, err)
	require.NoError(t, withdrawn.Withdraw())
	require.NoError(t, repo.Save(ctx, withdrawn))

	filter := shared.DefaultFilter()
	filter.Filters["status"] = string(enrollment.StatusActive)

	found, err := repo.FindByStudent(ctx, tenantID, studentID, filter)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, active.ID, found[0].ID)
}

func TestGormEnrollmentRepository_ProgressUpdateRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormEnrollmentRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()
	actor := uuid.New()

	e, err := enrollment.NewEnrollment(tenantID, uuid.New(), uuid.New(), actor, "10.0.0.1")
	require.NoError(t, err)
	p := enrollment.NewCourseProgress(tenantID, e.ID, actor, "10.0.0.1")
	require.NoError(t, repo.SaveWithProgress(ctx, e, p))

	videoID := uuid.New()
	require.NoError(t, p.Record(40, &videoID))
	require.NoError(t, repo.SaveProgress(ctx, p))

	found, err := repo.FindProgress(ctx, tenantID, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, found.PercentComplete)
	require.NotNil(t, found.LastVideoID)
	assert.Equal(t, videoID, *found.LastVideoID)
}
